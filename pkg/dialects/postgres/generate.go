package postgres

import (
	"strings"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
)

func regexpLikeSQL(g *generator.Generator, e *core.Expr) string {
	if e.Has("flag") {
		return g.Func("REGEXP_LIKE", e.This(), e.Expression(), e.ArgExpr("flag"))
	}
	return g.Binary(e, "~")
}

// dateAddSQL renders date arithmetic with intervals: a literal amount goes
// inside the interval string, anything else scales a unit interval.
func dateAddSQL(g *generator.Generator, e *core.Expr) string {
	op := " + "
	if e.Is(core.KindDateSub) {
		op = " - "
	}
	unit := "DAY"
	if u := e.ArgExpr("unit"); u != nil {
		unit = strings.ToUpper(u.Name())
	}

	amount := e.Expression()
	var interval string
	if amount.Is(core.KindLiteral) {
		interval = "INTERVAL " + g.QuoteString(amount.Text("this")+" "+unit)
	} else {
		sql := g.SQL(amount)
		if amount.Kind().IsBinary() {
			sql = "(" + sql + ")"
		}
		interval = sql + " * INTERVAL " + g.QuoteString("1 "+unit)
	}
	return g.Arg(e, "this") + op + interval
}

// dateDiffSQL subtracts dates for day differences; other units have no
// direct equivalent.
func dateDiffSQL(g *generator.Generator, e *core.Expr) string {
	if u := e.ArgExpr("unit"); u != nil && u.Name() != "DAY" {
		g.Unsupported("DATEDIFF is only supported with DAY")
		return g.Default(e)
	}
	date := func(x *core.Expr) string {
		return g.NormalizeFunc("CAST") + "(" + g.SQL(x) + " AS DATE)"
	}
	return date(e.This()) + " - " + date(e.Expression())
}

// postgresTruncUnits are the fields DATE_TRUNC accepts.
var postgresTruncUnits = map[string]bool{
	"MICROSECOND": true, "MILLISECOND": true, "SECOND": true, "MINUTE": true,
	"HOUR": true, "DAY": true, "WEEK": true, "MONTH": true, "QUARTER": true,
	"YEAR": true, "DECADE": true, "CENTURY": true, "MILLENNIUM": true,
}

// dateTruncSQL renders DATE_TRUNC('unit', value) with the unit as a string.
func dateTruncSQL(g *generator.Generator, e *core.Expr) string {
	u := e.ArgExpr("unit")
	if u == nil || !u.Is(core.KindVar) {
		return g.FuncSQL("DATE_TRUNC", g.Arg(e, "unit"), g.Arg(e, "this"))
	}
	name := strings.ToUpper(u.Name())
	if name == "MILLENIUM" {
		name = "MILLENNIUM"
	}
	if !postgresTruncUnits[name] {
		g.Unsupported("DATE_TRUNC does not support unit " + name)
	}
	return g.FuncSQL("DATE_TRUNC", g.QuoteString(strings.ToLower(name)), g.Arg(e, "this"))
}

func unixToTimeSQL(g *generator.Generator, e *core.Expr) string {
	if e.Has("scale") {
		g.Unsupported("TO_TIMESTAMP does not take a scale")
	}
	return g.Func("TO_TIMESTAMP", e.This())
}

// stringAggSQL renders STRING_AGG, which requires a separator.
func stringAggSQL(g *generator.Generator, e *core.Expr) string {
	sep := g.Arg(e, "separator")
	if sep == "" {
		sep = g.QuoteString(",")
	}
	return g.FuncSQL("STRING_AGG", g.Arg(e, "this"), sep)
}

func approxDistinctSQL(g *generator.Generator, e *core.Expr) string {
	g.Unsupported("approximate distinct counts are not supported, rendering an exact count")
	return g.NormalizeFunc("COUNT") + "(DISTINCT " + g.Arg(e, "this") + ")"
}

func tryCastSQL(g *generator.Generator, e *core.Expr) string {
	g.Unsupported("TRY_CAST is not supported, rendering CAST")
	return g.NormalizeFunc("CAST") + "(" + g.Arg(e, "this") + " AS " + g.Arg(e, "to") + ")"
}

func extractSQL(part string) generator.Transform {
	return func(g *generator.Generator, e *core.Expr) string {
		return g.NormalizeFunc("EXTRACT") + "(" + part + " FROM " + g.Arg(e, "this") + ")"
	}
}

// toTimestamp builds StrToTime from TO_TIMESTAMP(text, format) and
// UnixToTime from the single argument epoch form.
func toTimestamp(args []*core.Expr) (*core.Expr, error) {
	if len(args) == 1 {
		return core.New(core.KindUnixToTime, core.Args{"this": args[0]}), nil
	}
	return dialect.FormatFunc("TO_TIMESTAMP", core.KindStrToTime, TimeFormat, dialect.FormatLast)(args)
}

// datePart builds Extract from DATE_PART('part', value).
func datePart(args []*core.Expr) (*core.Expr, error) {
	if len(args) != 2 {
		return core.New(core.KindAnonymous, core.Args{"this": "DATE_PART", "expressions": args}), nil
	}
	return core.New(core.KindExtract, core.Args{"this": dialect.DatePartVar(args[0]), "expression": args[1]}), nil
}
