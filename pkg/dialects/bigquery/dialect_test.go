package bigquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/glot/internal/testutil"
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/dialects/bigquery"
	"github.com/leapstack-labs/glot/pkg/generator"
)

func TestDialectRegistration(t *testing.T) {
	d, ok := dialect.Get("BigQuery")
	require.True(t, ok)
	assert.Same(t, bigquery.BigQuery, d)
}

func TestIdentifiers(t *testing.T) {
	d := bigquery.BigQuery

	assert.Equal(t, "my_table", d.NormalizeName("MY_TABLE"))
	assert.Equal(t, "`a\\`b`", d.QuoteIdentifier("a`b"))
	assert.True(t, d.IsReservedWord("unnest"))
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
		{name: "double quoted string", sql: `SELECT "x"`, want: "SELECT 'x'"},
		{name: "qualify", sql: "SELECT a FROM t QUALIFY ROW_NUMBER() OVER (PARTITION BY a ORDER BY b) = 1"},
		{name: "format_timestamp", sql: "SELECT FORMAT_TIMESTAMP('%Y-%m-%d', ts) FROM t"},
		{name: "format_date", sql: "SELECT FORMAT_DATE('%Y', d)", want: "SELECT FORMAT_TIMESTAMP('%Y', d)"},
		{name: "parse_date", sql: "SELECT PARSE_DATE('%Y-%m-%d', s)"},
		{name: "date_add", sql: "SELECT DATE_ADD(d, INTERVAL 1 DAY)"},
		{name: "timestamp_sub", sql: "SELECT TIMESTAMP_SUB(ts, INTERVAL 2 HOUR)", want: "SELECT DATE_SUB(ts, INTERVAL 2 HOUR)"},
		{name: "date_trunc", sql: "SELECT DATE_TRUNC(d, MONTH) FROM t"},
		{name: "div", sql: "SELECT DIV(a, b) FROM t"},
		{name: "regexp_contains", sql: "SELECT REGEXP_CONTAINS(a, 'x') FROM t"},
		{name: "edit_distance", sql: "SELECT EDIT_DISTANCE(a, b) FROM t"},
		{name: "strpos", sql: "SELECT STRPOS(a, 'x') FROM t"},
		{name: "timestamp_seconds", sql: "SELECT TIMESTAMP_SECONDS(x)"},
		{name: "timestamp_millis", sql: "SELECT TIMESTAMP_MILLIS(x)"},
		{name: "timestamp_micros", sql: "SELECT TIMESTAMP_MICROS(x)"},
		{name: "if", sql: "SELECT IF(a > 1, 'x', 'y') FROM t"},
		{name: "string_agg", sql: "SELECT STRING_AGG(a, ',') FROM t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.want
			if want == "" {
				want = tt.sql
			}
			assert.Equal(t, want, testutil.Roundtrip(t, bigquery.BigQuery, tt.sql))
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
		{name: "integer cast", sql: "SELECT CAST(a AS BIGINT)", want: "SELECT CAST(a AS INT64)"},
		{name: "boolean cast", sql: "SELECT CAST(a AS BOOLEAN)", want: "SELECT CAST(a AS BOOL)"},
		{name: "try cast", sql: "SELECT TRY_CAST(a AS DOUBLE)", want: "SELECT SAFE_CAST(a AS FLOAT64)"},
		{name: "ilike", sql: "SELECT a FROM t WHERE a ILIKE 'x%'", want: "SELECT a FROM t WHERE LOWER(a) LIKE LOWER('x%')"},
		{name: "time to str", sql: "SELECT TIME_TO_STR(d, '%Y')", want: "SELECT FORMAT_TIMESTAMP('%Y', d)"},
		{name: "str to date", sql: "SELECT STR_TO_DATE(s, '%Y')", want: "SELECT PARSE_DATE('%Y', s)"},
		{name: "date add", sql: "SELECT DATE_ADD(d, 1, DAY)", want: "SELECT DATE_ADD(d, INTERVAL 1 DAY)"},
		{name: "date add default unit", sql: "SELECT DATE_ADD(d, 1)", want: "SELECT DATE_ADD(d, INTERVAL 1 DAY)"},
		{name: "position", sql: "SELECT POSITION('x' IN a)", want: "SELECT STRPOS(a, 'x')"},
		{name: "group concat", sql: "SELECT GROUP_CONCAT(a) FROM t", want: "SELECT STRING_AGG(a) FROM t"},
		{name: "year", sql: "SELECT YEAR(d)", want: "SELECT EXTRACT(YEAR FROM d)"},
		{name: "day of week", sql: "SELECT DAY_OF_WEEK(d)", want: "SELECT EXTRACT(DAYOFWEEK FROM d)"},
		{name: "approx distinct", sql: "SELECT APPROX_DISTINCT(a) FROM t", want: "SELECT APPROX_COUNT_DISTINCT(a) FROM t"},
		{name: "levenshtein", sql: "SELECT LEVENSHTEIN(a, b)", want: "SELECT EDIT_DISTANCE(a, b)"},
		{name: "regexp like", sql: "SELECT REGEXP_LIKE(a, 'x')", want: "SELECT REGEXP_CONTAINS(a, 'x')"},
		{name: "quoted identifier", sql: `SELECT "my col" FROM t`, want: "SELECT `my col` FROM t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testutil.Transpile(t, tt.sql, dialect.ANSI, bigquery.BigQuery))
		})
	}
}

func TestToANSI(t *testing.T) {
	got := testutil.Transpile(t, "SELECT FORMAT_DATE('%Y', d), TIMESTAMP_MILLIS(x)", bigquery.BigQuery, dialect.ANSI)
	assert.Equal(t, "SELECT TIME_TO_STR(d, '%Y'), UNIX_TO_TIME(x, 3)", got)
}

// ---------- Unsupported Tests ----------

func TestUnsupportedEpochScale(t *testing.T) {
	e := testutil.ParseOne(t, dialect.ANSI, "SELECT UNIX_TO_TIME(x, 9)")

	sql, err := bigquery.BigQuery.Generate(e, generator.Unsupported(core.ErrorLevelIgnore))
	require.NoError(t, err)
	assert.Equal(t, "SELECT TIMESTAMP_SECONDS(x)", sql)

	_, err = bigquery.BigQuery.Generate(e, generator.Unsupported(core.ErrorLevelRaise))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "epoch scale 9")
}
