package bigquery

import (
	"strconv"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
)

func safeCastSQL(g *generator.Generator, e *core.Expr) string {
	return g.NormalizeFunc("SAFE_CAST") + "(" + g.Arg(e, "this") + " AS " + g.Arg(e, "to") + ")"
}

// formatFirst renders NAME(format, value), the argument order of the
// FORMAT_* and PARSE_* families.
func formatFirst(name string) generator.Transform {
	return func(g *generator.Generator, e *core.Expr) string {
		return g.Func(name, e.ArgExpr("format"), e.This())
	}
}

func unitSQL(g *generator.Generator, e *core.Expr) string {
	u := e.ArgExpr("unit")
	switch {
	case u == nil:
		return "DAY"
	case u.Is(core.KindVar):
		return u.Name()
	}
	return g.SQL(u)
}

// dateAddSQL renders NAME(date, INTERVAL n UNIT).
func dateAddSQL(name string) generator.Transform {
	return func(g *generator.Generator, e *core.Expr) string {
		return g.FuncSQL(name, g.Arg(e, "this"), "INTERVAL "+g.Arg(e, "expression")+" "+unitSQL(g, e))
	}
}

func dateTruncSQL(g *generator.Generator, e *core.Expr) string {
	return g.FuncSQL("DATE_TRUNC", g.Arg(e, "this"), unitSQL(g, e))
}

// strPositionSQL renders STRPOS, falling back to INSTR when a start
// position is given.
func strPositionSQL(g *generator.Generator, e *core.Expr) string {
	if e.Has("position") {
		return g.Func("INSTR", e.This(), e.ArgExpr("substr"), e.ArgExpr("position"))
	}
	return g.Func("STRPOS", e.This(), e.ArgExpr("substr"))
}

var epochFuncs = map[string]string{
	"":  "TIMESTAMP_SECONDS",
	"0": "TIMESTAMP_SECONDS",
	"3": "TIMESTAMP_MILLIS",
	"6": "TIMESTAMP_MICROS",
}

func unixToTimeSQL(g *generator.Generator, e *core.Expr) string {
	scale := e.Text("scale")
	name, ok := epochFuncs[scale]
	if !ok {
		g.Unsupported("epoch scale " + scale + " is not supported")
		name = "TIMESTAMP_SECONDS"
	}
	return g.Func(name, e.This())
}

// extractSQL renders a date part accessor as EXTRACT(part FROM value).
func extractSQL(part string) generator.Transform {
	return func(g *generator.Generator, e *core.Expr) string {
		return g.NormalizeFunc("EXTRACT") + "(" + part + " FROM " + g.Arg(e, "this") + ")"
	}
}

// dateTrunc builds DateTrunc from DATE_TRUNC(value, part).
func dateTrunc(args []*core.Expr) (*core.Expr, error) {
	if len(args) != 2 {
		return core.New(core.KindAnonymous, core.Args{"this": "DATE_TRUNC", "expressions": args}), nil
	}
	return core.New(core.KindDateTrunc, core.Args{"unit": dialect.DatePartVar(args[1]), "this": args[0]}), nil
}

// epoch builds UnixToTime for the TIMESTAMP_SECONDS family.
func epoch(scale int) func([]*core.Expr) (*core.Expr, error) {
	name := epochFuncs[strconv.Itoa(scale)]
	return func(args []*core.Expr) (*core.Expr, error) {
		if len(args) != 1 {
			return core.New(core.KindAnonymous, core.Args{"this": name, "expressions": args}), nil
		}
		e := core.New(core.KindUnixToTime, core.Args{"this": args[0]})
		if scale != 0 {
			e.Set("scale", core.Number(scale))
		}
		return e, nil
	}
}
