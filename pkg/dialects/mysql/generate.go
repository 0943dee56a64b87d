package mysql

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/generator"
)

// castSQL renders CAST with the target types MySQL accepts: text becomes
// CHAR and integers become SIGNED or UNSIGNED.
func castSQL(g *generator.Generator, e *core.Expr) string {
	return g.NormalizeFunc("CAST") + "(" + g.Arg(e, "this") + " AS " + castTarget(g, e.ArgExpr("to")) + ")"
}

func castTarget(g *generator.Generator, to *core.Expr) string {
	t := to.TypeOf()
	switch {
	case core.IsTextType(t):
		if params := g.FlatList(to.Expressions(), ", "); params != "" && t != core.TypeText {
			return "CHAR(" + params + ")"
		}
		return "CHAR"
	case core.SignedIntegerTypes.Contains(t):
		return "SIGNED"
	case core.UnsignedIntegerTypes.Contains(t):
		return "UNSIGNED"
	}
	return g.SQL(to)
}

func tryCastSQL(g *generator.Generator, e *core.Expr) string {
	g.Unsupported("TRY_CAST is not supported, rendering CAST")
	return castSQL(g, e)
}

func regexpSQL(g *generator.Generator, e *core.Expr) string {
	if e.Has("flag") {
		return g.Default(e)
	}
	return g.Binary(e, "REGEXP")
}

// concatSQL renders a chain of || as a single CONCAT call.
func concatSQL(g *generator.Generator, e *core.Expr) string {
	var parts []*core.Expr
	n := e
	for n.Is(core.KindDPipe) {
		parts = append(parts, n.Expression())
		n = n.This()
	}
	parts = append(parts, n)
	slices.Reverse(parts)
	return g.Func("CONCAT", parts...)
}

func intDivSQL(g *generator.Generator, e *core.Expr) string {
	return g.Binary(e, "DIV")
}

func nullSafeEqSQL(g *generator.Generator, e *core.Expr) string {
	return g.Binary(e, "<=>")
}

// orderedSQL drops NULLS FIRST/LAST, which MySQL does not parse.
func orderedSQL(g *generator.Generator, e *core.Expr) string {
	sql := g.Arg(e, "this")
	switch {
	case e.Bool("desc"):
		sql += " DESC"
	case e.Has("desc"):
		sql += " ASC"
	}
	if e.Text("nulls") != "" {
		g.Unsupported("NULLS " + strings.ToUpper(e.Text("nulls")) + " ordering is not supported")
	}
	return sql
}

func unit(e *core.Expr) string {
	if u := e.ArgExpr("unit"); u != nil {
		return strings.ToUpper(u.Name())
	}
	return "DAY"
}

func dateAddSQL(name string) generator.Transform {
	return func(g *generator.Generator, e *core.Expr) string {
		return g.FuncSQL(name, g.Arg(e, "this"), "INTERVAL "+g.Arg(e, "expression")+" "+unit(e))
	}
}

// dateDiffSQL uses DATEDIFF for days, which MySQL defines as end minus
// start, and TIMESTAMPDIFF for every other unit.
func dateDiffSQL(g *generator.Generator, e *core.Expr) string {
	if u := unit(e); u != "DAY" {
		return g.FuncSQL("TIMESTAMPDIFF", u, g.Arg(e, "expression"), g.Arg(e, "this"))
	}
	return g.Func("DATEDIFF", e.This(), e.Expression())
}

// dateTruncSQL rewrites truncation, which MySQL lacks, for the units that
// can be rebuilt from date parts. Other units are reported.
func dateTruncSQL(g *generator.Generator, e *core.Expr) string {
	this := g.Arg(e, "this")
	year := g.FuncSQL("YEAR", this)
	switch unit(e) {
	case "DAY":
		return g.FuncSQL("DATE", this)
	case "MONTH":
		return g.FuncSQL("STR_TO_DATE",
			g.FuncSQL("CONCAT", year, g.QuoteString(" "), g.FuncSQL("MONTH", this), g.QuoteString(" 1")),
			g.QuoteString("%Y %c %e"))
	case "YEAR":
		return g.FuncSQL("STR_TO_DATE",
			g.FuncSQL("CONCAT", year, g.QuoteString(" 1 1")),
			g.QuoteString("%Y %c %e"))
	}
	g.Unsupported("DATE_TRUNC is not supported for unit " + unit(e))
	return g.Default(e)
}

func locateSQL(g *generator.Generator, e *core.Expr) string {
	return g.Func("LOCATE", e.ArgExpr("substr"), e.This(), e.ArgExpr("position"))
}

// groupConcatSQL renders the SEPARATOR clause inside the call.
func groupConcatSQL(g *generator.Generator, e *core.Expr) string {
	sql := g.Arg(e, "this")
	if sep := g.Arg(e, "separator"); sep != "" {
		sql += " SEPARATOR " + sep
	}
	return g.FuncSQL("GROUP_CONCAT", sql)
}

func approxDistinctSQL(g *generator.Generator, e *core.Expr) string {
	g.Unsupported("approximate distinct counts are not supported, rendering an exact count")
	return g.NormalizeFunc("COUNT") + "(DISTINCT " + g.Arg(e, "this") + ")"
}

// dateDiff builds DateDiff from DATEDIFF(end, start), which counts days.
func dateDiff(args []*core.Expr) (*core.Expr, error) {
	if len(args) != 2 {
		return core.New(core.KindAnonymous, core.Args{"this": "DATEDIFF", "expressions": args}), nil
	}
	return core.New(core.KindDateDiff, core.Args{
		"this":       args[0],
		"expression": args[1],
		"unit":       core.Var("DAY"),
	}), nil
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
