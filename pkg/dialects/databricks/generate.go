package databricks

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
)

func intDivSQL(g *generator.Generator, e *core.Expr) string {
	return g.Binary(e, "DIV")
}

func rlikeSQL(g *generator.Generator, e *core.Expr) string {
	if e.Has("flag") {
		return g.Default(e)
	}
	return g.Binary(e, "RLIKE")
}

func nullSafeEqSQL(g *generator.Generator, e *core.Expr) string {
	return g.Binary(e, "<=>")
}

func unit(e *core.Expr) string {
	if u := e.ArgExpr("unit"); u != nil {
		return strings.ToUpper(u.Name())
	}
	return "DAY"
}

// dateAddSQL renders DATEADD(unit, value, date). Subtraction negates the
// value.
func dateAddSQL(g *generator.Generator, e *core.Expr) string {
	value := g.Arg(e, "expression")
	if e.Is(core.KindDateSub) {
		if e.Expression().Kind().IsBinary() {
			value = "(" + value + ")"
		}
		value = "-" + value
	}
	return g.FuncSQL("DATEADD", unit(e), value, g.Arg(e, "this"))
}

// dateDiffSQL keeps the two argument DATEDIFF(end, start) for days.
func dateDiffSQL(g *generator.Generator, e *core.Expr) string {
	if u := unit(e); u != "DAY" {
		return g.FuncSQL("DATEDIFF", u, g.Arg(e, "expression"), g.Arg(e, "this"))
	}
	return g.Func("DATEDIFF", e.This(), e.Expression())
}

func dateTruncSQL(g *generator.Generator, e *core.Expr) string {
	return g.FuncSQL("DATE_TRUNC", g.QuoteString(unit(e)), g.Arg(e, "this"))
}

func locateSQL(g *generator.Generator, e *core.Expr) string {
	return g.Func("LOCATE", e.ArgExpr("substr"), e.This(), e.ArgExpr("position"))
}

// groupConcatSQL joins the collected values, as Databricks has no string
// aggregate.
func groupConcatSQL(g *generator.Generator, e *core.Expr) string {
	sep := g.Arg(e, "separator")
	if sep == "" {
		sep = g.QuoteString(",")
	}
	return g.FuncSQL("ARRAY_JOIN", g.Func("COLLECT_LIST", e.This()), sep)
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

// dateDiff builds DateDiff from DATEDIFF(end, start) in days or
// DATEDIFF(unit, start, end).
func dateDiff(args []*core.Expr) (*core.Expr, error) {
	switch len(args) {
	case 2:
		return core.New(core.KindDateDiff, core.Args{
			"this":       args[0],
			"expression": args[1],
			"unit":       core.Var("DAY"),
		}), nil
	case 3:
		return dialect.UnitFirst("DATEDIFF", core.KindDateDiff)(args)
	}
	return core.New(core.KindAnonymous, core.Args{"this": "DATEDIFF", "expressions": args}), nil
}

// dateTrunc builds DateTrunc from DATE_TRUNC('unit', value).
func dateTrunc(args []*core.Expr) (*core.Expr, error) {
	if len(args) != 2 {
		return core.New(core.KindAnonymous, core.Args{"this": "DATE_TRUNC", "expressions": args}), nil
	}
	return core.New(core.KindDateTrunc, core.Args{"unit": dialect.DatePartVar(args[0]), "this": args[1]}), nil
}

// locate builds StrPosition from LOCATE(substr, string[, start]).
func locate(args []*core.Expr) (*core.Expr, error) {
	if len(args) < 2 || len(args) > 3 {
		return core.New(core.KindAnonymous, core.Args{"this": "LOCATE", "expressions": args}), nil
	}
	e := core.New(core.KindStrPosition, core.Args{"this": args[1], "substr": args[0]})
	if len(args) == 3 {
		e.Set("position", args[2])
	}
	return e, nil
}

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
