package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		quoted bool
		want   bool
	}{
		{"a", false, false},
		{"a", true, true},
		{"my col", false, true},
		{"1abc", false, true},
		{"_x1", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToIdentifier(tt.name, tt.quoted).Bool("quoted"))
		})
	}
}

func TestToColumnAndTable(t *testing.T) {
	c := ToColumn("cat.db.tbl.col")
	assert.Equal(t, "col", c.Name())
	assert.Equal(t, "tbl", c.Text("table"))
	assert.Equal(t, "db", c.Text("db"))
	assert.Equal(t, "cat", c.Text("catalog"))

	tbl := ToTable("db.orders")
	assert.Equal(t, "orders", tbl.Name())
	assert.Equal(t, "db", tbl.Text("db"))
	assert.False(t, tbl.Has("catalog"))
}

func TestColumnTooManyQualifiers(t *testing.T) {
	_, err := Column("a", "t", "d", "c", "x")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
		neg  bool
	}{
		{"int", 42, "42", false},
		{"negative int", -7, "7", true},
		{"float", 0.1, "0.1", false},
		{"decimal", decimal.RequireFromString("12.50"), "12.5", false},
		{"numeric string", "003.10", "3.1", false},
		{"exponent string kept", "1e10", "1e10", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Number(tt.in)
			if tt.neg {
				require.True(t, got.Is(KindNeg))
				got = got.This()
			}
			assert.True(t, got.IsNumber())
			assert.Equal(t, tt.want, got.Text("this"))
		})
	}
}

func TestConvert(t *testing.T) {
	assert.True(t, Convert(nil).Is(KindNull))
	assert.True(t, Convert("x").IsString())
	assert.True(t, Convert(true).Bool("this"))
	assert.True(t, Convert(3).IsNumber())
	a := ToColumn("a")
	assert.Same(t, a, Convert(a))
}

func TestAndOrNot(t *testing.T) {
	a, b, c := ToColumn("a"), ToColumn("b"), ToColumn("c")

	or, err := Or(a, b)
	require.NoError(t, err)
	both, err := And(or, c)
	require.NoError(t, err)
	require.True(t, both.Is(KindAnd))
	assert.True(t, both.This().Is(KindParen), "nested connectors keep their grouping")

	single, err := And(c)
	require.NoError(t, err)
	assert.True(t, single.Is(KindColumn))

	_, err = And(nil)
	require.ErrorIs(t, err, ErrEmptyCondition)

	neg, err := Not(both)
	require.NoError(t, err)
	assert.True(t, neg.This().Is(KindParen))
}

func TestCastBuilder(t *testing.T) {
	c, err := Cast("x", "INT")
	require.NoError(t, err)
	assert.True(t, c.Is(KindCast))
	assert.Equal(t, "x", c.This().Name())
	assert.True(t, c.ArgExpr("to").IsType(TypeInt))

	c, err = Cast(Number(1), TypeText)
	require.NoError(t, err)
	assert.True(t, c.ArgExpr("to").IsType(TypeText))

	_, err = Cast("x", 12)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDot(t *testing.T) {
	_, err := Dot(ToIdentifier("a", false))
	require.ErrorIs(t, err, ErrTooFewParts)

	d, err := Dot(ToIdentifier("a", false), ToIdentifier("b", false), ToIdentifier("c", false))
	require.NoError(t, err)
	assert.Equal(t, "c", d.Name())
	assert.True(t, d.This().Is(KindDot))
}

func TestFunc(t *testing.T) {
	f, err := Func("coalesce", "a", "b", 0)
	require.NoError(t, err)
	assert.True(t, f.Is(KindCoalesce))
	assert.Equal(t, "a", f.This().Name())
	assert.Len(t, f.Expressions(), 2)

	f, err = Func("datediff", "a", "b", Var("day"))
	require.NoError(t, err)
	assert.True(t, f.Is(KindDateDiff))
	assert.Equal(t, "day", f.Text("unit"))

	f, err = Func("my_udf", 1)
	require.NoError(t, err)
	assert.True(t, f.Is(KindAnonymous))
	assert.Equal(t, "my_udf", f.Name())
}

func TestKindByFunctionName(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"DATEDIFF", KindDateDiff},
		{"date_diff", KindDateDiff},
		{"DateAdd", KindDateAdd},
		{"DATE_ADD", KindDateAdd},
		{"datesub", KindDateSub},
		{"DATE_SUB", KindDateSub},
		{"DATETRUNC", KindDateTrunc},
		{"date_trunc", KindDateTrunc},
		{"STRTOTIME", KindStrToTime},
		{"getdate", KindCurrentTimestamp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, ok := KindByFunctionName(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, k)
		})
	}

	_, ok := KindByFunctionName("DATE_DIFFS")
	assert.False(t, ok)

	// The first spelling is the canonical rendering name.
	assert.Equal(t, "DATE_DIFF", KindDateDiff.Info().SQLNames[0])
	assert.Equal(t, "DATE_TRUNC", KindDateTrunc.Info().SQLNames[0])
}

func TestSetOperationBuilders(t *testing.T) {
	left, err := Select("a").From("t").Build()
	require.NoError(t, err)
	right, err := Select("a").From("u").Build()
	require.NoError(t, err)

	u, err := Union(left, right, false)
	require.NoError(t, err)
	assert.True(t, u.Is(KindUnion))
	assert.False(t, u.Bool("distinct"))
}

func TestSelectBuilder(t *testing.T) {
	sel, err := Select("a", "b").
		Limit(10).
		OrderBy("a").
		Having("b").
		GroupBy("a").
		Where("a", "b").
		From("t").
		Join("u", nil, "left outer").
		Distinct().
		Build()
	require.NoError(t, err)

	assert.Len(t, sel.Expressions(), 2)
	assert.True(t, sel.Has("distinct"))
	assert.Equal(t, "t", sel.ArgExpr("from").This().Name())
	join := sel.ArgExprs("joins")[0]
	assert.Equal(t, "LEFT", join.Text("side"))
	assert.Equal(t, "OUTER", join.Text("kind"))
	assert.True(t, sel.ArgExpr("where").This().Is(KindAnd))
	assert.True(t, sel.ArgExpr("order").Expressions()[0].Is(KindOrdered))
	assert.Equal(t, "10", sel.ArgExpr("limit").Expression().Text("this"))
}

func TestSelectBuilderWhereAccumulates(t *testing.T) {
	sel, err := Select("x").Where("a").Where("b").Where("c").Build()
	require.NoError(t, err)
	operands := 0
	for range sel.ArgExpr("where").This().Flatten(false) {
		operands++
	}
	assert.Equal(t, 3, operands)
}

func TestSelectBuilderKeepsFirstError(t *testing.T) {
	_, err := Select("a").Join("u", nil, "sideways").Where("b").Build()
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSelectBuilderNeedsParserForFragments(t *testing.T) {
	// plain names never need a parser
	_, err := Select("a").From("db.t").Build()
	require.NoError(t, err)

	_, err = Select("a + 1").Build()
	require.ErrorIs(t, err, ErrNoParser)
}

func TestFromArgList(t *testing.T) {
	e := FromArgList(KindSubstring, []*Expr{ToColumn("s"), Number(1), Number(2)})
	assert.Equal(t, "s", e.This().Name())
	assert.Equal(t, "1", e.ArgExpr("start").Text("this"))
	assert.Equal(t, "2", e.ArgExpr("length").Text("this"))

	concat := FromArgList(KindConcat, []*Expr{ToColumn("a"), ToColumn("b"), ToColumn("c")})
	assert.Len(t, concat.Expressions(), 3)
}
