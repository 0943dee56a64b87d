package tsql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/glot/internal/testutil"
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/dialects/tsql"
	"github.com/leapstack-labs/glot/pkg/generator"
)

func TestDialectRegistration(t *testing.T) {
	for _, name := range []string{"tsql", "sqlserver", "mssql"} {
		d, ok := dialect.Get(name)
		require.True(t, ok, name)
		assert.Same(t, tsql.TSQL, d)
	}
}

func TestIdentifiers(t *testing.T) {
	d := tsql.TSQL

	assert.Equal(t, "[a]]b]", d.QuoteIdentifier("a]b"))
	assert.True(t, d.IsReservedWord("TOP"))
	assert.False(t, d.IsReservedWord("amount"))
}

// ---------- Round Trip Tests ----------

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string // empty means identical to sql
	}{
		{name: "top", sql: "SELECT TOP 10 a FROM t"},
		{name: "bracket identifier", sql: "SELECT [my col] FROM t"},
		{name: "double quoted identifier", sql: `SELECT "my col" FROM t`, want: "SELECT [my col] FROM t"},
		{name: "offset fetch", sql: "SELECT a FROM t ORDER BY a OFFSET 5 ROWS FETCH FIRST 10 ROWS ONLY"},
		{name: "len", sql: "SELECT LEN(a) FROM t"},
		{name: "isnull", sql: "SELECT ISNULL(a, 0) FROM t", want: "SELECT COALESCE(a, 0) FROM t"},
		{name: "charindex", sql: "SELECT CHARINDEX('x', a) FROM t"},
		{name: "charindex with start", sql: "SELECT CHARINDEX('x', a, 2) FROM t"},
		{name: "iif", sql: "SELECT IIF(a > 1, 'x', 'y') FROM t"},
		{name: "dateadd", sql: "SELECT DATEADD(day, 1, d)", want: "SELECT DATEADD(DAY, 1, d)"},
		{name: "datediff", sql: "SELECT DATEDIFF(HOUR, a, b) FROM t"},
		{name: "datepart", sql: "SELECT DATEPART(year, d)", want: "SELECT DATEPART(YEAR, d)"},
		{name: "format", sql: "SELECT FORMAT(d, 'yyyy-MM-dd HH:mm:ss') FROM t"},
		{name: "getdate", sql: "SELECT GETDATE()"},
		{name: "ceiling", sql: "SELECT CEILING(a) FROM t"},
		{name: "string concatenation", sql: "SELECT a + b FROM t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.want
			if want == "" {
				want = tt.sql
			}
			assert.Equal(t, want, testutil.Roundtrip(t, tsql.TSQL, tt.sql))
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
		{name: "limit becomes top", sql: "SELECT a FROM t LIMIT 10", want: "SELECT TOP 10 a FROM t"},
		{
			name: "limit with offset becomes fetch",
			sql:  "SELECT a FROM t ORDER BY a LIMIT 10 OFFSET 5",
			want: "SELECT a FROM t ORDER BY a OFFSET 5 ROWS FETCH FIRST 10 ROWS ONLY",
		},
		{name: "text", sql: "SELECT CAST(a AS TEXT)", want: "SELECT CAST(a AS VARCHAR(MAX))"},
		{name: "boolean type", sql: "SELECT CAST(a AS BOOLEAN)", want: "SELECT CAST(a AS BIT)"},
		{name: "concat", sql: "SELECT 'a' || b || c", want: "SELECT 'a' + b + c"},
		{name: "boolean value", sql: "SELECT TRUE", want: "SELECT 1"},
		{name: "boolean predicate", sql: "SELECT a FROM t WHERE FALSE", want: "SELECT a FROM t WHERE (1 = 0)"},
		{name: "now", sql: "SELECT NOW()", want: "SELECT GETDATE()"},
		{name: "length", sql: "SELECT LENGTH(a)", want: "SELECT LEN(a)"},
		{name: "ln", sql: "SELECT LN(a)", want: "SELECT LOG(a)"},
		{name: "ceil", sql: "SELECT CEIL(a)", want: "SELECT CEILING(a)"},
		{name: "position", sql: "SELECT POSITION('x' IN a)", want: "SELECT CHARINDEX('x', a)"},
		{
			name: "time to str",
			sql:  "SELECT TIME_TO_STR(d, '%Y-%m-%d %H:%M')",
			want: "SELECT FORMAT(d, 'yyyy-MM-dd HH:mm')",
		},
		{name: "if", sql: "SELECT IF(a > 1, 1, 2)", want: "SELECT IIF(a > 1, 1, 2)"},
		{name: "date sub", sql: "SELECT DATE_SUB(d, 2, MONTH)", want: "SELECT DATEADD(MONTH, -2, d)"},
		{name: "extract", sql: "SELECT EXTRACT(YEAR FROM d)", want: "SELECT DATEPART(YEAR, d)"},
		{name: "ilike", sql: "SELECT a FROM t WHERE a ILIKE 'x'", want: "SELECT a FROM t WHERE LOWER(a) LIKE LOWER('x')"},
		{name: "group concat", sql: "SELECT GROUP_CONCAT(a) FROM t", want: "SELECT STRING_AGG(a, ',') FROM t"},
		{name: "date trunc", sql: "SELECT DATE_TRUNC(MONTH, d)", want: "SELECT DATETRUNC(MONTH, d)"},
		{name: "date trunc iso week", sql: "SELECT DATE_TRUNC(WEEK_ISO, d)", want: "SELECT DATETRUNC(ISO_WEEK, d)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testutil.Transpile(t, tt.sql, dialect.ANSI, tsql.TSQL))
		})
	}
}

func TestToANSI(t *testing.T) {
	got := testutil.Transpile(t, "SELECT TOP 5 FORMAT(d, 'dd/MM/yyyy') FROM t", tsql.TSQL, dialect.ANSI)
	assert.Equal(t, "SELECT TIME_TO_STR(d, '%d/%m/%Y') FROM t LIMIT 5", got)
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
			name:    "regexp",
			sql:     "SELECT a RLIKE 'x'",
			ignored: "SELECT REGEXP_LIKE(a, 'x')",
			message: "regular expression",
		},
		{
			name:    "str to time",
			sql:     "SELECT STR_TO_TIME(s, '%Y')",
			ignored: "SELECT CAST(s AS DATETIME2)",
			message: "format string",
		},
		{
			name:    "date trunc decade",
			sql:     "SELECT DATE_TRUNC(DECADE, d)",
			ignored: "SELECT DATETRUNC(DECADE, d)",
			message: "DATETRUNC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testutil.ParseOne(t, dialect.ANSI, tt.sql)

			sql, err := tsql.TSQL.Generate(e, generator.Unsupported(core.ErrorLevelIgnore))
			require.NoError(t, err)
			assert.Equal(t, tt.ignored, sql)

			_, err = tsql.TSQL.Generate(e, generator.Unsupported(core.ErrorLevelRaise))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
