package databricks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/glot/internal/testutil"
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/dialects/databricks"
	"github.com/leapstack-labs/glot/pkg/generator"
)

func TestDialectRegistration(t *testing.T) {
	for _, name := range []string{"databricks", "spark"} {
		d, ok := dialect.Get(name)
		require.True(t, ok, name)
		assert.Same(t, databricks.Databricks, d)
	}
}

func TestIdentifiers(t *testing.T) {
	d := databricks.Databricks

	assert.Equal(t, "my_table", d.NormalizeName("My_Table"))
	assert.Equal(t, "`a``b`", d.QuoteIdentifier("a`b"))
	assert.True(t, d.IsReservedWord("qualify"))
	assert.False(t, d.IsReservedWord("amount"))
}

// ---------- Round Trip Tests ----------

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string // empty means identical to sql
	}{
		{name: "backtick identifier", sql: "SELECT `my col` FROM t"},
		{name: "rlike", sql: "SELECT a FROM t WHERE a RLIKE '^x'"},
		{name: "ilike", sql: "SELECT a FROM t WHERE a ILIKE 'x%'"},
		{name: "cast operator", sql: "SELECT a::INT FROM t", want: "SELECT CAST(a AS INT) FROM t"},
		{name: "div", sql: "SELECT a DIV b FROM t"},
		{name: "null safe equality", sql: "SELECT a FROM t WHERE a <=> b"},
		{name: "semi join", sql: "SELECT a FROM t SEMI JOIN u ON t.id = u.id"},
		{name: "qualify", sql: "SELECT a FROM t QUALIFY ROW_NUMBER() OVER (PARTITION BY a ORDER BY b) = 1"},
		{name: "date_format", sql: "SELECT DATE_FORMAT(d, 'yyyy-MM-dd HH:mm:ss') FROM t"},
		{name: "to_timestamp", sql: "SELECT TO_TIMESTAMP(s, 'yyyy-MM-dd')"},
		{name: "dateadd", sql: "SELECT DATEADD(HOUR, 3, ts)"},
		{name: "dateadd lower case unit", sql: "SELECT DATEADD(day, 1, d)", want: "SELECT DATEADD(DAY, 1, d)"},
		{name: "datediff days", sql: "SELECT DATEDIFF(a, b) FROM t"},
		{name: "datediff unit", sql: "SELECT DATEDIFF(HOUR, a, b) FROM t"},
		{name: "date_trunc", sql: "SELECT DATE_TRUNC('MONTH', d)"},
		{name: "locate", sql: "SELECT LOCATE('x', a) FROM t"},
		{name: "instr", sql: "SELECT INSTR(a, 'x') FROM t", want: "SELECT LOCATE('x', a) FROM t"},
		{name: "collect_list", sql: "SELECT COLLECT_LIST(a) FROM t"},
		{name: "array", sql: "SELECT ARRAY(1, 2)"},
		{name: "timestamp_millis", sql: "SELECT TIMESTAMP_MILLIS(x)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.want
			if want == "" {
				want = tt.sql
			}
			assert.Equal(t, want, testutil.Roundtrip(t, databricks.Databricks, tt.sql))
		})
	}
}

// ---------- Transpile Tests ----------

func TestFromANSI(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{name: "text cast", sql: "SELECT CAST(a AS TEXT)", want: "SELECT CAST(a AS STRING)"},
		{
			name: "time to str",
			sql:  "SELECT TIME_TO_STR(d, '%Y-%m-%d')",
			want: "SELECT DATE_FORMAT(d, 'yyyy-MM-dd')",
		},
		{name: "date sub", sql: "SELECT DATE_SUB(d, 2, MONTH)", want: "SELECT DATEADD(MONTH, -2, d)"},
		{name: "date diff days", sql: "SELECT DATE_DIFF(b, a, DAY)", want: "SELECT DATEDIFF(b, a)"},
		{
			name: "group concat",
			sql:  "SELECT GROUP_CONCAT(a, '|') FROM t",
			want: "SELECT ARRAY_JOIN(COLLECT_LIST(a), '|') FROM t",
		},
		{name: "array agg", sql: "SELECT ARRAY_AGG(a) FROM t", want: "SELECT COLLECT_LIST(a) FROM t"},
		{name: "array", sql: "SELECT ARRAY[1, 2]", want: "SELECT ARRAY(1, 2)"},
		{name: "if", sql: "SELECT IF(a > 1, 1, 2)", want: "SELECT IF(a > 1, 1, 2)"},
		{name: "approx distinct", sql: "SELECT APPROX_DISTINCT(a) FROM t", want: "SELECT APPROX_COUNT_DISTINCT(a) FROM t"},
		{name: "regexp like", sql: "SELECT REGEXP_LIKE(a, 'x')", want: "SELECT a RLIKE 'x'"},
		{name: "quoted identifier", sql: `SELECT "my col" FROM t`, want: "SELECT `my col` FROM t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testutil.Transpile(t, tt.sql, dialect.ANSI, databricks.Databricks))
		})
	}
}

func TestToANSI(t *testing.T) {
	got := testutil.Transpile(t, "SELECT DATE_FORMAT(d, 'dd/MM/yyyy'), a DIV b", databricks.Databricks, dialect.ANSI)
	assert.Equal(t, "SELECT TIME_TO_STR(d, '%d/%m/%Y'), CAST(a / b AS INT)", got)
}

// ---------- Unsupported Tests ----------

func TestUnsupportedEpochScale(t *testing.T) {
	e := testutil.ParseOne(t, dialect.ANSI, "SELECT UNIX_TO_TIME(x, 9)")

	sql, err := databricks.Databricks.Generate(e, generator.Unsupported(core.ErrorLevelIgnore))
	require.NoError(t, err)
	assert.Equal(t, "SELECT TIMESTAMP_SECONDS(x)", sql)

	_, err = databricks.Databricks.Generate(e, generator.Unsupported(core.ErrorLevelRaise))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "epoch scale 9")
}
