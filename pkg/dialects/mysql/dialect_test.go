package mysql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/glot/internal/testutil"
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/dialects/mysql"
	"github.com/leapstack-labs/glot/pkg/generator"
)

func TestDialectRegistration(t *testing.T) {
	d, ok := dialect.Get("mysql")
	require.True(t, ok)
	assert.Same(t, mysql.MySQL, d)
}

func TestIdentifiers(t *testing.T) {
	d := mysql.MySQL

	assert.Equal(t, "MyTable", d.NormalizeName("MyTable"))
	assert.Equal(t, "`a``b`", d.QuoteIdentifier("a`b"))
	assert.True(t, d.IsReservedWord("div"))
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
		{name: "backslash escape", sql: `SELECT 'it\'s'`},
		{name: "date_format", sql: "SELECT DATE_FORMAT(d, '%Y-%m-%d %H:%i:%s') FROM t"},
		{name: "str_to_date", sql: "SELECT STR_TO_DATE(s, '%d/%m/%Y')"},
		{name: "date_add interval", sql: "SELECT DATE_ADD(d, INTERVAL 1 DAY)"},
		{name: "date_sub interval", sql: "SELECT DATE_SUB(d, INTERVAL 2 MONTH)"},
		{name: "adddate", sql: "SELECT ADDDATE(d, INTERVAL 3 DAY)", want: "SELECT DATE_ADD(d, INTERVAL 3 DAY)"},
		{name: "datediff", sql: "SELECT DATEDIFF(a, b) FROM t"},
		{name: "timestampdiff", sql: "SELECT TIMESTAMPDIFF(HOUR, a, b) FROM t"},
		{name: "locate", sql: "SELECT LOCATE('x', a) FROM t"},
		{name: "locate with start", sql: "SELECT LOCATE('x', a, 3) FROM t"},
		{name: "instr", sql: "SELECT INSTR(a, 'x') FROM t", want: "SELECT LOCATE('x', a) FROM t"},
		{name: "div", sql: "SELECT a DIV b FROM t"},
		{name: "null safe equality", sql: "SELECT a FROM t WHERE a <=> b"},
		{name: "rlike", sql: "SELECT a FROM t WHERE a RLIKE '^x'", want: "SELECT a FROM t WHERE a REGEXP '^x'"},
		{name: "cast char", sql: "SELECT CAST(a AS CHAR)"},
		{name: "char_length", sql: "SELECT CHAR_LENGTH(a) FROM t"},
		{name: "length", sql: "SELECT LENGTH(a) FROM t", want: "SELECT CHAR_LENGTH(a) FROM t"},
		{name: "ifnull", sql: "SELECT IFNULL(a, 0) FROM t", want: "SELECT COALESCE(a, 0) FROM t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.want
			if want == "" {
				want = tt.sql
			}
			assert.Equal(t, want, testutil.Roundtrip(t, mysql.MySQL, tt.sql))
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
		{name: "text cast", sql: "SELECT CAST(a AS TEXT)", want: "SELECT CAST(a AS CHAR)"},
		{name: "varchar cast keeps length", sql: "SELECT CAST(a AS VARCHAR(10))", want: "SELECT CAST(a AS CHAR(10))"},
		{name: "integer cast", sql: "SELECT CAST(a AS BIGINT)", want: "SELECT CAST(a AS SIGNED)"},
		{name: "decimal cast", sql: "SELECT CAST(a AS DECIMAL(10, 2))", want: "SELECT CAST(a AS DECIMAL(10, 2))"},
		{name: "ilike", sql: "SELECT a FROM t WHERE a ILIKE 'x%'", want: "SELECT a FROM t WHERE LOWER(a) LIKE LOWER('x%')"},
		{name: "concat", sql: "SELECT 'a' || b || c", want: "SELECT CONCAT('a', b, c)"},
		{
			name: "time to str",
			sql:  "SELECT TIME_TO_STR(d, '%Y-%m-%d %H:%M:%S')",
			want: "SELECT DATE_FORMAT(d, '%Y-%m-%d %H:%i:%s')",
		},
		{name: "month name", sql: "SELECT TIME_TO_STR(d, '%B %Y')", want: "SELECT DATE_FORMAT(d, '%M %Y')"},
		{name: "date add", sql: "SELECT DATE_ADD(d, 1, DAY)", want: "SELECT DATE_ADD(d, INTERVAL 1 DAY)"},
		{name: "date diff days", sql: "SELECT DATE_DIFF(b, a, DAY)", want: "SELECT DATEDIFF(b, a)"},
		{name: "date diff hours", sql: "SELECT DATE_DIFF(b, a, HOUR)", want: "SELECT TIMESTAMPDIFF(HOUR, a, b)"},
		{name: "group concat", sql: "SELECT GROUP_CONCAT(a, '|') FROM t", want: "SELECT GROUP_CONCAT(a SEPARATOR '|') FROM t"},
		{name: "position", sql: "SELECT POSITION('x' IN a)", want: "SELECT LOCATE('x', a)"},
		{name: "regexp like", sql: "SELECT REGEXP_LIKE(a, 'x')", want: "SELECT a REGEXP 'x'"},
		{name: "quoted identifier", sql: `SELECT "my col" FROM t`, want: "SELECT `my col` FROM t"},
		{name: "date trunc day", sql: "SELECT DATE_TRUNC(DAY, d)", want: "SELECT DATE(d)"},
		{
			name: "date trunc month",
			sql:  "SELECT DATE_TRUNC(MONTH, d)",
			want: "SELECT STR_TO_DATE(CONCAT(YEAR(d), ' ', MONTH(d), ' 1'), '%Y %c %e')",
		},
		{
			name: "date trunc year",
			sql:  "SELECT DATE_TRUNC(YEAR, d)",
			want: "SELECT STR_TO_DATE(CONCAT(YEAR(d), ' 1 1'), '%Y %c %e')",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testutil.Transpile(t, tt.sql, dialect.ANSI, mysql.MySQL))
		})
	}
}

func TestToANSI(t *testing.T) {
	e := testutil.ParseOne(t, mysql.MySQL, "SELECT DATE_FORMAT(d, '%i'), a DIV b")
	sql, err := dialect.ANSI.Generate(e)
	require.NoError(t, err)
	assert.Equal(t, "SELECT TIME_TO_STR(d, '%M'), CAST(a / b AS INT)", sql)
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
			name:    "nulls ordering",
			sql:     "SELECT a FROM t ORDER BY a DESC NULLS FIRST",
			ignored: "SELECT a FROM t ORDER BY a DESC",
			message: "NULLS FIRST",
		},
		{
			name:    "approx distinct",
			sql:     "SELECT APPROX_DISTINCT(a) FROM t",
			ignored: "SELECT COUNT(DISTINCT a) FROM t",
			message: "approximate distinct",
		},
		{
			name:    "try cast",
			sql:     "SELECT TRY_CAST(a AS TEXT)",
			ignored: "SELECT CAST(a AS CHAR)",
			message: "TRY_CAST",
		},
		{
			name:    "date trunc hour",
			sql:     "SELECT DATE_TRUNC(HOUR, d)",
			ignored: "SELECT DATE_TRUNC(HOUR, d)",
			message: "DATE_TRUNC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testutil.ParseOne(t, dialect.ANSI, tt.sql)

			sql, err := mysql.MySQL.Generate(e, generator.Unsupported(core.ErrorLevelIgnore))
			require.NoError(t, err)
			assert.Equal(t, tt.ignored, sql)

			_, err = mysql.MySQL.Generate(e, generator.Unsupported(core.ErrorLevelRaise))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
