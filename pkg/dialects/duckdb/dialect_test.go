package duckdb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/glot/internal/testutil"
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/dialects/duckdb"
	"github.com/leapstack-labs/glot/pkg/generator"
)

func TestDialectRegistration(t *testing.T) {
	d, ok := dialect.Get("duckdb")
	require.True(t, ok)
	assert.Same(t, duckdb.DuckDB, d)
}

// ---------- Round Trip Tests ----------

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string // empty means identical to sql
	}{
		{name: "integer division", sql: "SELECT a // b FROM t"},
		{name: "if", sql: "SELECT IF(a > 1, 'x', 'y') FROM t"},
		{name: "strftime", sql: "SELECT STRFTIME(d, '%Y-%m-%d') FROM t"},
		{name: "strptime", sql: "SELECT STRPTIME(s, '%d/%m/%Y') FROM t"},
		{name: "date_diff", sql: "SELECT DATE_DIFF('DAY', a, b) FROM t"},
		{name: "datediff lowercase part", sql: "SELECT DATEDIFF('day', a, b)", want: "SELECT DATE_DIFF('DAY', a, b)"},
		{name: "date_trunc", sql: "SELECT DATE_TRUNC('month', d)", want: "SELECT DATE_TRUNC('MONTH', d)"},
		{name: "epoch seconds", sql: "SELECT TO_TIMESTAMP(1700000000)"},
		{name: "epoch millis", sql: "SELECT EPOCH_MS(1700000000000)"},
		{name: "approx count distinct", sql: "SELECT APPROX_COUNT_DISTINCT(a) FROM t"},
		{name: "regexp_matches", sql: "SELECT REGEXP_MATCHES(a, '^x') FROM t"},
		{name: "string_agg", sql: "SELECT STRING_AGG(a, ',') FROM t"},
		{name: "list literal", sql: "SELECT [1, 2, 3]"},
		{name: "array constructor", sql: "SELECT ARRAY[1, 2]", want: "SELECT [1, 2]"},
		{name: "lambda", sql: "SELECT LIST_TRANSFORM(l, x -> x + 1) FROM t"},
		{name: "semi join", sql: "SELECT a FROM t SEMI JOIN u ON t.id = u.id"},
		{name: "asof join", sql: "SELECT a FROM t ASOF JOIN u ON t.ts >= u.ts"},
		{name: "positional join", sql: "SELECT a FROM t POSITIONAL JOIN u"},
		{name: "ilike", sql: "SELECT a FROM t WHERE a ILIKE 'x%'"},
		{name: "cast operator", sql: "SELECT a::INT FROM t", want: "SELECT CAST(a AS INT) FROM t"},
		{name: "binary becomes blob", sql: "SELECT CAST(a AS VARBINARY)", want: "SELECT CAST(a AS BLOB)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.want
			if want == "" {
				want = tt.sql
			}
			assert.Equal(t, want, testutil.Roundtrip(t, duckdb.DuckDB, tt.sql))
		})
	}
}

func TestPositionalJoinNeedsNoCondition(t *testing.T) {
	stmt := testutil.ParseOne(t, duckdb.DuckDB, "SELECT a FROM t POSITIONAL JOIN u")

	join := stmt.Find(core.KindJoin)
	require.NotNil(t, join)
	assert.Equal(t, duckdb.JoinPositional, join.Text("kind"))
	assert.Nil(t, join.ArgExpr("on"))
}

// ---------- Transpile Tests ----------

func TestFromANSI(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{name: "if", sql: "SELECT IF(a, 1, 2)", want: "SELECT IF(a, 1, 2)"},
		{name: "date add", sql: "SELECT DATE_ADD(d, 1, DAY)", want: "SELECT d + INTERVAL 1 DAY"},
		{name: "date sub expression", sql: "SELECT DATE_SUB(d, n * 7, DAY)", want: "SELECT d - INTERVAL (n * 7) DAY"},
		{name: "date diff", sql: "SELECT DATE_DIFF(b, a, HOUR)", want: "SELECT DATE_DIFF('HOUR', a, b)"},
		{name: "date trunc", sql: "SELECT DATE_TRUNC(MONTH, d)", want: "SELECT DATE_TRUNC('MONTH', d)"},
		{name: "str to time", sql: "SELECT STR_TO_TIME(s, '%Y-%m-%d')", want: "SELECT STRPTIME(s, '%Y-%m-%d')"},
		{name: "time to str", sql: "SELECT TIME_TO_STR(d, '%H:%M')", want: "SELECT STRFTIME(d, '%H:%M')"},
		{name: "approx distinct", sql: "SELECT APPROX_DISTINCT(a)", want: "SELECT APPROX_COUNT_DISTINCT(a)"},
		{name: "regexp like", sql: "SELECT a RLIKE 'x'", want: "SELECT REGEXP_MATCHES(a, 'x')"},
		{name: "group concat", sql: "SELECT GROUP_CONCAT(a, '-')", want: "SELECT STRING_AGG(a, '-')"},
		{name: "timestamptz", sql: "SELECT CAST(a AS TIMESTAMPLTZ)", want: "SELECT CAST(a AS TIMESTAMPTZ)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testutil.Transpile(t, tt.sql, dialect.ANSI, duckdb.DuckDB))
		})
	}
}

func TestToANSI(t *testing.T) {
	got := testutil.Transpile(t, "SELECT a // b, EPOCH_MS(x), DATE_DIFF('day', a, b)", duckdb.DuckDB, dialect.ANSI)
	assert.Equal(t, "SELECT CAST(a / b AS INT), UNIX_TO_TIME(x, 3), DATE_DIFF(b, a, DAY)", got)
}

func TestUnsupportedEpochScale(t *testing.T) {
	e := core.New(core.KindUnixToTime, core.Args{"this": core.Number(1), "scale": core.Number(6)})

	sql, err := duckdb.DuckDB.Generate(e, generator.Unsupported(core.ErrorLevelIgnore))
	require.NoError(t, err)
	assert.Equal(t, "TO_TIMESTAMP(1)", sql)

	_, err = duckdb.DuckDB.Generate(e, generator.Unsupported(core.ErrorLevelRaise))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "epoch scale 6")
}
