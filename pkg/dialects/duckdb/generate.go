package duckdb

import (
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
)

func ifSQL(g *generator.Generator, e *core.Expr) string {
	return g.Func("IF", e.This(), e.ArgExpr("true"), e.ArgExpr("false"))
}

// listSQL renders arrays as list literals.
func listSQL(g *generator.Generator, e *core.Expr) string {
	return "[" + g.FlatList(e.Expressions(), ", ") + "]"
}

func intDivSQL(g *generator.Generator, e *core.Expr) string {
	return g.Binary(e, "//")
}

// unixToTimeSQL renders epoch seconds with TO_TIMESTAMP and epoch
// milliseconds with EPOCH_MS.
func unixToTimeSQL(g *generator.Generator, e *core.Expr) string {
	switch scale := e.Text("scale"); scale {
	case "", "0":
		return g.Func("TO_TIMESTAMP", e.This())
	case "3":
		return g.Func("EPOCH_MS", e.This())
	default:
		g.Unsupported("epoch scale " + scale + " is not supported")
		return g.Func("TO_TIMESTAMP", e.This())
	}
}

// unitSQL renders the date part of e, DAY when absent.
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

// dateAddSQL renders d + INTERVAL n UNIT. Amounts other than plain
// numbers are parenthesized.
func dateAddSQL(g *generator.Generator, e *core.Expr) string {
	op := " + "
	if e.Is(core.KindDateSub) {
		op = " - "
	}
	amount := g.Arg(e, "expression")
	if !e.Expression().IsNumber() {
		amount = "(" + amount + ")"
	}
	return g.Arg(e, "this") + op + "INTERVAL " + amount + " " + unitSQL(g, e)
}

// dateDiffSQL renders DATE_DIFF('unit', start, end).
func dateDiffSQL(g *generator.Generator, e *core.Expr) string {
	return g.FuncSQL("DATE_DIFF", g.QuoteString(unitSQL(g, e)), g.Arg(e, "expression"), g.Arg(e, "this"))
}

func dateTruncSQL(g *generator.Generator, e *core.Expr) string {
	return g.FuncSQL("DATE_TRUNC", g.QuoteString(unitSQL(g, e)), g.Arg(e, "this"))
}

// dateTrunc builds DateTrunc from DATE_TRUNC('part', value).
func dateTrunc(args []*core.Expr) (*core.Expr, error) {
	if len(args) != 2 {
		return core.New(core.KindAnonymous, core.Args{"this": "DATE_TRUNC", "expressions": args}), nil
	}
	return core.New(core.KindDateTrunc, core.Args{"unit": dialect.DatePartVar(args[0]), "this": args[1]}), nil
}

// epochMs builds UnixToTime with millisecond scale.
func epochMs(args []*core.Expr) (*core.Expr, error) {
	if len(args) != 1 {
		return core.New(core.KindAnonymous, core.Args{"this": "EPOCH_MS", "expressions": args}), nil
	}
	return core.New(core.KindUnixToTime, core.Args{"this": args[0], "scale": core.Number(3)}), nil
}
