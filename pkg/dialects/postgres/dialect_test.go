package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/glot/internal/testutil"
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/dialects/postgres"
	"github.com/leapstack-labs/glot/pkg/generator"
	"github.com/leapstack-labs/glot/pkg/parser"
)

func TestDialectRegistration(t *testing.T) {
	for _, name := range []string{"postgres", "postgresql", "Postgres"} {
		d, ok := dialect.Get(name)
		require.True(t, ok, name)
		assert.Same(t, postgres.Postgres, d)
	}
}

func TestIdentifiers(t *testing.T) {
	d := postgres.Postgres

	assert.Equal(t, "my_table", d.NormalizeName("MY_TABLE"))
	assert.True(t, d.IsReservedWord("user"))
	assert.True(t, d.IsReservedWord("ORDER"))
	assert.False(t, d.IsReservedWord("amount"))
}

// ---------- Round Trip Tests ----------

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string // empty means identical to sql
	}{
		{name: "regex match", sql: "SELECT a FROM t WHERE a ~ '^x'"},
		{name: "ilike", sql: "SELECT a FROM t WHERE a ILIKE '%x%'"},
		{name: "to_char", sql: "SELECT TO_CHAR(d, 'YYYY-MM-DD HH24:MI:SS') FROM t"},
		{name: "to_char lowercase template", sql: "SELECT TO_CHAR(d, 'yyyy-mm-dd')", want: "SELECT TO_CHAR(d, 'YYYY-MM-DD')"},
		{name: "to_timestamp epoch", sql: "SELECT TO_TIMESTAMP(1700000000)"},
		{name: "to_timestamp format", sql: "SELECT TO_TIMESTAMP(s, 'YYYY-MM-DD')"},
		{name: "to_date", sql: "SELECT TO_DATE(s, 'DD/MM/YYYY')"},
		{name: "strpos", sql: "SELECT STRPOS(a, 'x') FROM t", want: "SELECT POSITION('x' IN a) FROM t"},
		{name: "position", sql: "SELECT POSITION('x' IN a) FROM t"},
		{name: "date_part", sql: "SELECT DATE_PART('year', d) FROM t", want: "SELECT EXTRACT(YEAR FROM d) FROM t"},
		{name: "cast operator", sql: "SELECT a::TEXT FROM t", want: "SELECT CAST(a AS TEXT) FROM t"},
		{name: "div", sql: "SELECT DIV(a, b) FROM t"},
		{name: "tinyint", sql: "SELECT CAST(a AS TINYINT)", want: "SELECT CAST(a AS SMALLINT)"},
		{name: "double", sql: "SELECT CAST(a AS DOUBLE)", want: "SELECT CAST(a AS DOUBLE PRECISION)"},
		{name: "lowercase identifiers stay unquoted", sql: "SELECT my_col FROM my_table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.want
			if want == "" {
				want = tt.sql
			}
			assert.Equal(t, want, testutil.Roundtrip(t, postgres.Postgres, tt.sql))
		})
	}
}

func TestQualifyRejected(t *testing.T) {
	_, err := parser.ParseOne("SELECT a FROM t QUALIFY a = 1", postgres.Postgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUALIFY")
}

// ---------- Transpile Tests ----------

func TestFromANSI(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{name: "date add literal", sql: "SELECT DATE_ADD(d, 1, DAY)", want: "SELECT d + INTERVAL '1 DAY'"},
		{name: "date sub literal", sql: "SELECT DATE_SUB(d, 2, MONTH)", want: "SELECT d - INTERVAL '2 MONTH'"},
		{name: "date add column", sql: "SELECT DATE_ADD(d, n, DAY)", want: "SELECT d + n * INTERVAL '1 DAY'"},
		{name: "date add expression", sql: "SELECT DATE_ADD(d, n + 1, DAY)", want: "SELECT d + (n + 1) * INTERVAL '1 DAY'"},
		{name: "date diff days", sql: "SELECT DATE_DIFF(a, b, DAY)", want: "SELECT CAST(a AS DATE) - CAST(b AS DATE)"},
		{name: "group concat", sql: "SELECT GROUP_CONCAT(a) FROM t", want: "SELECT STRING_AGG(a, ',') FROM t"},
		{name: "group concat separator", sql: "SELECT GROUP_CONCAT(a, '|') FROM t", want: "SELECT STRING_AGG(a, '|') FROM t"},
		{name: "regexp like", sql: "SELECT REGEXP_LIKE(a, 'x')", want: "SELECT a ~ 'x'"},
		{name: "year", sql: "SELECT YEAR(d)", want: "SELECT EXTRACT(YEAR FROM d)"},
		{name: "day of week", sql: "SELECT DAYOFWEEK(d)", want: "SELECT EXTRACT(DOW FROM d)"},
		{
			name: "time to str",
			sql:  "SELECT TIME_TO_STR(d, '%Y-%m-%d %H:%M')",
			want: "SELECT TO_CHAR(d, 'YYYY-MM-DD HH24:MI')",
		},
		{name: "blob", sql: "SELECT CAST(a AS BLOB)", want: "SELECT CAST(a AS BYTEA)"},
		{name: "date trunc", sql: "SELECT DATE_TRUNC(MONTH, d)", want: "SELECT DATE_TRUNC('month', d)"},
		{name: "date trunc abbreviation", sql: "SELECT DATE_TRUNC(yy, d)", want: "SELECT DATE_TRUNC('year', d)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testutil.Transpile(t, tt.sql, dialect.ANSI, postgres.Postgres))
		})
	}
}

func TestToANSI(t *testing.T) {
	got := testutil.Transpile(t, "SELECT a ~ 'x', TO_CHAR(d, 'YYYY')", postgres.Postgres, dialect.ANSI)
	assert.Equal(t, "SELECT REGEXP_LIKE(a, 'x'), TIME_TO_STR(d, '%Y')", got)

	got = testutil.Transpile(t, "SELECT DATE_TRUNC('week', d)", postgres.Postgres, dialect.ANSI)
	assert.Equal(t, "SELECT DATE_TRUNC(WEEK, d)", got)
}

// ---------- Unsupported Tests ----------

func TestUnsupported(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		ignored string
		message string
	}{
		{
			name:    "approx distinct",
			sql:     "SELECT APPROX_DISTINCT(a) FROM t",
			ignored: "SELECT COUNT(DISTINCT a) FROM t",
			message: "approximate distinct",
		},
		{
			name:    "try cast",
			sql:     "SELECT TRY_CAST(a AS INT)",
			ignored: "SELECT CAST(a AS INT)",
			message: "TRY_CAST",
		},
		{
			name:    "date diff months",
			sql:     "SELECT DATE_DIFF(a, b, MONTH)",
			ignored: "SELECT DATE_DIFF(a, b, MONTH)",
			message: "DATEDIFF",
		},
		{
			name:    "date trunc day of week",
			sql:     "SELECT DATE_TRUNC(DOW, d)",
			ignored: "SELECT DATE_TRUNC('dayofweek', d)",
			message: "DATE_TRUNC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testutil.ParseOne(t, dialect.ANSI, tt.sql)

			sql, err := postgres.Postgres.Generate(e, generator.Unsupported(core.ErrorLevelIgnore))
			require.NoError(t, err)
			assert.Equal(t, tt.ignored, sql)

			_, err = postgres.Postgres.Generate(e, generator.Unsupported(core.ErrorLevelRaise))
			var unsupported *generator.UnsupportedError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, "postgres", unsupported.Dialect)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
