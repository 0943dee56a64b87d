package generator_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/generator"
)

func col(name string) *core.Expr { return core.ToColumn(name) }

func bin(kind core.Kind, l, r *core.Expr) *core.Expr {
	return core.New(kind, core.Args{"this": l, "expression": r})
}

func render(t *testing.T, e *core.Expr, opts ...generator.Option) string {
	t.Helper()
	sql, err := generator.New(nil, opts...).Generate(e)
	require.NoError(t, err)
	return sql
}

func TestCast(t *testing.T) {
	c, err := core.Cast("x", "INT")
	require.NoError(t, err)
	assert.Equal(t, "CAST(x AS INT)", render(t, c))
}

func TestTypeMapping(t *testing.T) {
	settings := generator.NewSettings("test")
	settings.TypeMapping[core.TypeText] = "VARCHAR"

	c, err := core.Cast("a", core.TypeText)
	require.NoError(t, err)
	sql, err := generator.New(settings).Generate(c)
	require.NoError(t, err)
	assert.Equal(t, "CAST(a AS VARCHAR)", sql)
}

func TestDataTypes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"DECIMAL(10, 2)", "DECIMAL(10, 2)"},
		{"ARRAY<INT>", "ARRAY<INT>"},
		{"STRUCT<a INT, b TEXT>", "STRUCT<a INT, b TEXT>"},
		{"mood", "mood"},
		{"varchar(max)", "VARCHAR(MAX)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			dt, err := core.BuildDataType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, render(t, dt))
		})
	}
}

func TestSelectClauseOrder(t *testing.T) {
	sel, err := core.Select("a", "b").
		Limit(10).
		OrderBy("a").
		Having("b").
		GroupBy("a").
		Where("a").
		From("t").
		Join("u", nil, "left").
		Build()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT a, b FROM t LEFT JOIN u WHERE a GROUP BY a HAVING b ORDER BY a LIMIT 10",
		render(t, sel))
}

func TestNotIn(t *testing.T) {
	in := core.New(core.KindIn, core.Args{
		"this":        col("a"),
		"expressions": []*core.Expr{core.Number(1), core.Number(2), core.Number(3)},
	})
	not, err := core.Not(in)
	require.NoError(t, err)
	sel, err := core.Select("a").From("t").Where(not).Build()
	require.NoError(t, err)

	assert.Equal(t, "SELECT a FROM t WHERE NOT a IN (1, 2, 3)", render(t, sel))
}

func TestExpressions(t *testing.T) {
	// Each case owns its subquery; attaching a node reparents it.
	subquery := func() *core.Expr {
		sub, err := core.Select(core.Number(1)).Build()
		require.NoError(t, err)
		return core.Subquery(sub, "")
	}

	tests := []struct {
		name string
		expr *core.Expr
		want string
	}{
		{"add", bin(core.KindAdd, col("b"), core.Number(1)), "b + 1"},
		{"neg of neg", core.New(core.KindNeg, core.Args{"this": core.Number(-1)}), "- -1"},
		{"string escape", core.String("it's"), "'it''s'"},
		{"null safe", bin(core.KindNullSafeEQ, col("a"), core.Null()), "a IS NOT DISTINCT FROM NULL"},
		{"between", core.New(core.KindBetween, core.Args{"this": col("x"), "low": core.Number(1), "high": core.Number(5)}), "x BETWEEN 1 AND 5"},
		{"exists", core.New(core.KindExists, core.Args{"this": subquery()}), "EXISTS(SELECT 1)"},
		{"not exists", core.New(core.KindNot, core.Args{"this": core.New(core.KindExists, core.Args{"this": subquery()})}), "NOT EXISTS(SELECT 1)"},
		{"int div", bin(core.KindIntDiv, col("a"), col("b")), "CAST(a / b AS INT)"},
		{"current date", core.New(core.KindCurrentDate, nil), "CURRENT_DATE"},
		{"unsafe quoted", core.New(core.KindIdentifier, core.Args{"this": "my col"}), `"my col"`},
		{"extract", core.New(core.KindExtract, core.Args{"this": core.Var("YEAR"), "expression": col("d")}), "EXTRACT(YEAR FROM d)"},
		{"interval", core.Interval(core.String("1"), "DAY"), "INTERVAL '1' DAY"},
		{"anonymous", core.New(core.KindAnonymous, core.Args{"this": "my_udf", "expressions": []*core.Expr{col("a")}}), "MY_UDF(a)"},
		{"fallback", core.New(core.KindCoalesce, core.Args{"this": col("a"), "expressions": []*core.Expr{core.Number(0)}}), "COALESCE(a, 0)"},
		{"if as case", core.New(core.KindIf, core.Args{"this": col("c"), "true": core.Number(1), "false": core.Number(0)}), "CASE WHEN c THEN 1 ELSE 0 END"},
		{"dot", core.New(core.KindDot, core.Args{"this": core.New(core.KindDot, core.Args{"this": col("a"), "expression": core.ToIdentifier("b", false)}), "expression": core.ToIdentifier("c", false)}), "a.b.c"},
		{"lambda", core.New(core.KindLambda, core.Args{"this": bin(core.KindAdd, col("x"), core.Number(1)), "expressions": []*core.Expr{core.ToIdentifier("x", false)}}), "x -> x + 1"},
		{"like escape", core.New(core.KindLike, core.Args{"this": col("a"), "expression": core.String("x!%"), "escape": core.String("!")}), "a LIKE 'x!%' ESCAPE '!'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.expr))
		})
	}
}

func TestIdentifierOptions(t *testing.T) {
	id := core.ToIdentifier("Foo", false)
	assert.Equal(t, `"Foo"`, render(t, id, generator.Identify(true)))
	assert.Equal(t, "foo", render(t, id, generator.Normalize(true)))

	quoted := core.ToIdentifier("Foo", true)
	assert.Equal(t, `"Foo"`, render(t, quoted, generator.Normalize(true)))
}

func TestReservedWordsAreQuoted(t *testing.T) {
	s := generator.NewSettings("reserved")
	s.ReservedWords["select"] = struct{}{}
	sql, err := generator.New(s).Generate(core.ToColumn("t.select"))
	require.NoError(t, err)
	assert.Equal(t, `t."select"`, sql)
}

func TestSetOperations(t *testing.T) {
	a, err := core.Select("a").From("t").Build()
	require.NoError(t, err)
	b, err := core.Select("a").From("u").Build()
	require.NoError(t, err)
	c, err := core.Select("a").From("v").Build()
	require.NoError(t, err)

	all, err := core.Union(a, b, false)
	require.NoError(t, err)
	chain, err := core.Except(all, c, true)
	require.NoError(t, err)

	assert.Equal(t, "SELECT a FROM t UNION ALL SELECT a FROM u EXCEPT SELECT a FROM v", render(t, chain))
}

func TestConnectors(t *testing.T) {
	or := bin(core.KindOr, col("a"), col("b"))
	and := bin(core.KindAnd, core.Paren(or), col("c"))
	assert.Equal(t, "(a OR b) AND c", render(t, and))

	flat := bin(core.KindAnd, bin(core.KindAnd, col("a"), col("b")), col("c"))
	assert.Equal(t, "a AND b AND c", render(t, flat))
}

func TestDeepChainsDoNotOverflow(t *testing.T) {
	const depth = 5000
	add := col("x")
	and := col("x")
	for i := 0; i < depth; i++ {
		add = bin(core.KindAdd, add, core.Number(i))
		and = bin(core.KindAnd, and, col("y"))
	}
	sql := render(t, add)
	assert.Equal(t, depth, strings.Count(sql, " + "))
	sql = render(t, and)
	assert.Equal(t, depth, strings.Count(sql, " AND "))
}

func TestComments(t *testing.T) {
	c := col("a")
	c.AddComments("note")
	assert.Equal(t, "a /* note */", render(t, c))
	assert.Equal(t, "a", render(t, c, generator.Comments(false)))

	add := bin(core.KindAdd, col("a"), core.Number(1))
	add.AddComments("plus")
	assert.Equal(t, "a + /* plus */ 1", render(t, add))

	sel, err := core.Select("a").Build()
	require.NoError(t, err)
	sel.AddComments("head")
	assert.Equal(t, "/* head */ SELECT a", render(t, sel))
}

func TestPretty(t *testing.T) {
	sel, err := core.Select("a", "b").From("t").Where("a").Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT\n  a,\n  b\nFROM t\nWHERE\n  a", render(t, sel, generator.Pretty(true)))
}

func TestLimitStyles(t *testing.T) {
	sel, err := core.Select("a").From("t").Limit(10).Build()
	require.NoError(t, err)
	withOffset, err := core.Select("a").From("t").Limit(10).Offset(5).Build()
	require.NoError(t, err)

	top := generator.NewSettings("top")
	top.LimitStyle = generator.LimitTop
	fetch := generator.NewSettings("fetch")
	fetch.LimitStyle = generator.LimitFetch

	tests := []struct {
		name     string
		settings *generator.Settings
		expr     *core.Expr
		want     string
	}{
		{"clause", nil, withOffset, "SELECT a FROM t LIMIT 10 OFFSET 5"},
		{"top", top, sel, "SELECT TOP 10 a FROM t"},
		{"top with offset", top, withOffset, "SELECT a FROM t OFFSET 5 ROWS FETCH FIRST 10 ROWS ONLY"},
		{"fetch", fetch, sel, "SELECT a FROM t FETCH FIRST 10 ROWS ONLY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := generator.New(tt.settings).Generate(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
		})
	}
}

func unsupportedSettings() *generator.Settings {
	s := generator.NewSettings("strict")
	s.Transforms[core.KindIntDiv] = func(g *generator.Generator, e *core.Expr) string {
		g.Unsupported("integer division is not supported")
		return g.Default(e)
	}
	return s
}

func TestUnsupportedLevels(t *testing.T) {
	e := bin(core.KindAdd,
		bin(core.KindIntDiv, col("a"), col("b")),
		bin(core.KindIntDiv, col("c"), col("d")))

	t.Run("ignore", func(t *testing.T) {
		g := generator.New(unsupportedSettings(), generator.Unsupported(core.ErrorLevelIgnore))
		sql, err := g.Generate(e)
		require.NoError(t, err)
		assert.Equal(t, "CAST(a / b AS INT) + CAST(c / d AS INT)", sql)
		assert.Empty(t, g.UnsupportedMessages())
	})

	t.Run("warn", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		g := generator.New(unsupportedSettings(), generator.WithLogger(logger))
		sql, err := g.Generate(e)
		require.NoError(t, err)
		assert.NotEmpty(t, sql)
		assert.Len(t, g.UnsupportedMessages(), 2)
		assert.Contains(t, buf.String(), "integer division is not supported")
	})

	t.Run("raise", func(t *testing.T) {
		g := generator.New(unsupportedSettings(), generator.Unsupported(core.ErrorLevelRaise))
		sql, err := g.Generate(e)
		require.Error(t, err)
		assert.Empty(t, sql)
		var unsupported *generator.UnsupportedError
		require.ErrorAs(t, err, &unsupported)
		assert.Len(t, unsupported.Messages, 2)
		assert.Equal(t, "strict", unsupported.Dialect)
	})

	t.Run("immediate", func(t *testing.T) {
		g := generator.New(unsupportedSettings(), generator.Unsupported(core.ErrorLevelImmediate))
		_, err := g.Generate(e)
		var unsupported *generator.UnsupportedError
		require.ErrorAs(t, err, &unsupported)
		assert.Len(t, unsupported.Messages, 1)
	})
}

func TestUnsupportedErrorCapsMessages(t *testing.T) {
	err := &generator.UnsupportedError{Dialect: "x", Messages: []string{"a", "b", "c", "d"}, Max: 2}
	assert.Equal(t, "unsupported in x: a; b (and 2 more)", err.Error())
}

func TestUnhandledKind(t *testing.T) {
	_, err := generator.New(nil).Generate(core.New(core.KindInvalid, nil))
	var unhandled *generator.UnhandledKindError
	require.ErrorAs(t, err, &unhandled)
	assert.Equal(t, core.KindInvalid, unhandled.Kind)
}

func TestTransformOverridesBase(t *testing.T) {
	s := generator.NewSettings("renamed")
	s.Transforms[core.KindCoalesce] = generator.RenameFunc("IFNULL")
	s.FunctionNames[core.KindLength] = "LEN"
	s.FuncCase = generator.FuncLower

	coalesce := core.New(core.KindCoalesce, core.Args{"this": col("a"), "expressions": []*core.Expr{core.Number(0)}})
	length := core.New(core.KindLength, core.Args{"this": col("s")})

	g := generator.New(s)
	sql, err := g.Generate(coalesce)
	require.NoError(t, err)
	assert.Equal(t, "ifnull(a, 0)", sql)
	sql, err = g.Generate(length)
	require.NoError(t, err)
	assert.Equal(t, "len(s)", sql)
}
