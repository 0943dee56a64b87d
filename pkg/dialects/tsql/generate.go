package tsql

import (
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
)

// booleanSQL renders booleans as bits, or as a tautology where a predicate
// is expected.
func booleanSQL(_ *generator.Generator, e *core.Expr) string {
	if inPredicate(e) {
		if e.Bool("this") {
			return "(1 = 1)"
		}
		return "(1 = 0)"
	}
	if e.Bool("this") {
		return "1"
	}
	return "0"
}

func inPredicate(e *core.Expr) bool {
	parent := e.Parent()
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case core.KindWhere, core.KindHaving, core.KindAnd, core.KindOr, core.KindNot:
		return true
	case core.KindJoin:
		return e.ArgKey() == "on"
	case core.KindIf:
		return e.ArgKey() == "this"
	}
	return false
}

func currentTimestampSQL(g *generator.Generator, _ *core.Expr) string {
	return g.FuncSQL("GETDATE")
}

func concatSQL(g *generator.Generator, e *core.Expr) string {
	return g.Binary(e, "+")
}

func iifSQL(g *generator.Generator, e *core.Expr) string {
	return g.Func("IIF", e.This(), e.ArgExpr("true"), e.ArgExpr("false"))
}

func regexpLikeSQL(g *generator.Generator, e *core.Expr) string {
	g.Unsupported("regular expression matching is not supported")
	return g.Default(e)
}

func charIndexSQL(g *generator.Generator, e *core.Expr) string {
	return g.Func("CHARINDEX", e.ArgExpr("substr"), e.This(), e.ArgExpr("position"))
}

// strToTimeSQL reports format based parsing, which has no T-SQL
// equivalent, and renders a plain conversion.
func strToTimeSQL(target string) generator.Transform {
	return func(g *generator.Generator, e *core.Expr) string {
		g.Unsupported("parsing with a format string is not supported, rendering CAST")
		return g.NormalizeFunc("CAST") + "(" + g.Arg(e, "this") + " AS " + target + ")"
	}
}

func unit(e *core.Expr) *core.Expr {
	if u := e.ArgExpr("unit"); u != nil {
		return u
	}
	return core.Var("DAY")
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
	return g.FuncSQL("DATEADD", g.SQL(unit(e)), value, g.Arg(e, "this"))
}

func dateDiffSQL(g *generator.Generator, e *core.Expr) string {
	return g.Func("DATEDIFF", unit(e), e.Expression(), e.This())
}

// tsqlTruncUnits are the dateparts DATETRUNC accepts.
var tsqlTruncUnits = map[string]bool{
	"YEAR": true, "QUARTER": true, "MONTH": true, "DAYOFYEAR": true, "DAY": true,
	"WEEK": true, "WEEKISO": true, "HOUR": true, "MINUTE": true, "SECOND": true,
	"MILLISECOND": true, "MICROSECOND": true,
}

// dateTruncSQL renders DATETRUNC(unit, value), available from SQL Server 2022.
func dateTruncSQL(g *generator.Generator, e *core.Expr) string {
	u := unit(e)
	name := u.Name()
	if u.Is(core.KindVar) {
		if !tsqlTruncUnits[name] {
			g.Unsupported("DATETRUNC does not support unit " + name)
		}
		if name == "WEEKISO" {
			name = "ISO_WEEK"
		}
		return g.FuncSQL("DATETRUNC", name, g.Arg(e, "this"))
	}
	return g.FuncSQL("DATETRUNC", g.SQL(u), g.Arg(e, "this"))
}

func datePartSQL(g *generator.Generator, e *core.Expr) string {
	return g.Func("DATEPART", e.This(), e.Expression())
}

func dayOfWeekSQL(g *generator.Generator, e *core.Expr) string {
	return g.FuncSQL("DATEPART", "WEEKDAY", g.Arg(e, "this"))
}

// stringAggSQL renders STRING_AGG, which requires a separator.
func stringAggSQL(g *generator.Generator, e *core.Expr) string {
	sep := g.Arg(e, "separator")
	if sep == "" {
		sep = g.QuoteString(",")
	}
	return g.FuncSQL("STRING_AGG", g.Arg(e, "this"), sep)
}

// datePart builds Extract from DATEPART(part, value).
func datePart(args []*core.Expr) (*core.Expr, error) {
	if len(args) != 2 {
		return core.New(core.KindAnonymous, core.Args{"this": "DATEPART", "expressions": args}), nil
	}
	return core.New(core.KindExtract, core.Args{"this": dialect.DatePartVar(args[0]), "expression": args[1]}), nil
}

// charIndex builds StrPosition from CHARINDEX(substr, string[, start]).
func charIndex(args []*core.Expr) (*core.Expr, error) {
	if len(args) < 2 || len(args) > 3 {
		return core.New(core.KindAnonymous, core.Args{"this": "CHARINDEX", "expressions": args}), nil
	}
	e := core.New(core.KindStrPosition, core.Args{"this": args[1], "substr": args[0]})
	if len(args) == 3 {
		e.Set("position", args[2])
	}
	return e, nil
}
