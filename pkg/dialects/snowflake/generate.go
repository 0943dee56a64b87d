package snowflake

import (
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/generator"
)

func iffSQL(g *generator.Generator, e *core.Expr) string {
	return g.Func("IFF", e.This(), e.ArgExpr("true"), e.ArgExpr("false"))
}

// tryCastSQL keeps TRY_CAST for operands that may be strings. Snowflake
// rejects TRY_CAST on anything else, so those degrade to CAST.
func tryCastSQL(g *generator.Generator, e *core.Expr) string {
	if maybeString(e.This()) {
		return g.Default(e)
	}
	g.Unsupported("TRY_CAST only accepts string operands, rendering CAST")
	return g.NormalizeFunc("CAST") + "(" + g.Arg(e, "this") + " AS " + g.Arg(e, "to") + ")"
}

// maybeString reports whether e is a string or of unknown type.
func maybeString(e *core.Expr) bool {
	switch {
	case e.IsString():
		return true
	case e.Is(core.KindLiteral, core.KindBoolean):
		return false
	case e.Is(core.KindCast, core.KindTryCast):
		return core.IsTextType(e.ArgExpr("to").TypeOf())
	}
	if t := e.Type(); t != nil {
		return core.IsTextType(t.TypeOf())
	}
	return true
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

// dateDiffSQL renders DATEDIFF(unit, start, end).
func dateDiffSQL(g *generator.Generator, e *core.Expr) string {
	return g.Func("DATEDIFF", unit(e), e.Expression(), e.This())
}

func strPositionSQL(g *generator.Generator, e *core.Expr) string {
	return g.Func("POSITION", e.ArgExpr("substr"), e.This(), e.ArgExpr("position"))
}

func intDivSQL(g *generator.Generator, e *core.Expr) string {
	g.Unsupported("integer division has no exact equivalent, rendering a truncating cast")
	return g.Default(e)
}

// lambdaSQL reports lambdas that are not an argument of a function call;
// Snowflake only accepts them inside higher-order functions.
func lambdaSQL(g *generator.Generator, e *core.Expr) string {
	parent := e.Parent()
	if parent == nil || !(parent.Is(core.KindAnonymous) || parent.Kind().IsFunction()) {
		g.Unsupported("lambda expressions are only allowed as function arguments")
	}
	return g.Default(e)
}

// position builds StrPosition from POSITION(substr, string[, start]) and
// CHARINDEX with the same argument order.
func position(args []*core.Expr) (*core.Expr, error) {
	if len(args) < 2 || len(args) > 3 {
		return core.New(core.KindAnonymous, core.Args{"this": "POSITION", "expressions": args}), nil
	}
	e := core.New(core.KindStrPosition, core.Args{"this": args[1], "substr": args[0]})
	if len(args) == 3 {
		e.Set("position", args[2])
	}
	return e, nil
}
