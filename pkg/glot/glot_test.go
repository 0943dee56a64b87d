package glot_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
	"github.com/leapstack-labs/glot/pkg/glot"
)

// ---------- Parse Tests ----------

func TestParseRendersCanonically(t *testing.T) {
	e, err := glot.ParseOne("select a, b+1")
	require.NoError(t, err)

	sql, err := e.SQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT a, b + 1", sql)
}

func TestParseMultipleStatements(t *testing.T) {
	stmts, err := glot.Parse("SELECT 1; SELECT 2")
	require.NoError(t, err)
	assert.Len(t, stmts, 2)
}

func TestQuotedIdentifierIsDistinct(t *testing.T) {
	quoted, err := glot.ParseOne(`SELECT "a"`)
	require.NoError(t, err)
	plain, err := glot.ParseOne("SELECT a")
	require.NoError(t, err)

	assert.False(t, quoted.Equal(plain))
	assert.NotEqual(t, quoted.Hash(), plain.Hash())

	again, err := glot.ParseOne("SELECT a")
	require.NoError(t, err)
	assert.True(t, plain.Equal(again))
	assert.Equal(t, plain.Hash(), again.Hash())
}

func TestParseUnknownDialect(t *testing.T) {
	_, err := glot.Parse("SELECT 1", glot.Read("nosuchdb"))

	var unknown *dialect.UnknownDialectError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nosuchdb", unknown.Name)
}

// ---------- Transpile Tests ----------

func TestTranspile(t *testing.T) {
	tests := []struct {
		name  string
		sql   string
		read  string
		write string
		want  []string
	}{
		{
			name: "not in is hoisted",
			sql:  "SELECT * FROM t WHERE a NOT IN (1, 2, 3)",
			want: []string{"SELECT * FROM t WHERE NOT a IN (1, 2, 3)"},
		},
		{
			name:  "type mapping",
			sql:   "SELECT CAST(a AS TEXT)",
			write: "snowflake",
			want:  []string{"SELECT CAST(a AS VARCHAR)"},
		},
		{
			name:  "limit to top",
			sql:   "SELECT a::TEXT FROM t LIMIT 5",
			read:  "duckdb",
			write: "tsql",
			want:  []string{"SELECT TOP 5 CAST(a AS VARCHAR(MAX)) FROM t"},
		},
		{
			name:  "statement order is kept",
			sql:   "SELECT 1; SELECT `b` FROM t",
			read:  "mysql",
			write: "postgres",
			want:  []string{"SELECT 1", `SELECT "b" FROM t`},
		},
		{
			name: "write defaults to read",
			sql:  "SELECT DATEADD(yy, 1, d)",
			read: "snowflake",
			want: []string{"SELECT DATEADD(YEAR, 1, d)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := glot.Transpile(tt.sql, glot.Read(tt.read), glot.Write(tt.write))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranspileIdentify(t *testing.T) {
	got, err := glot.Transpile("SELECT a FROM t", glot.Write("postgres"), glot.Identify())
	require.NoError(t, err)
	assert.Equal(t, []string{`SELECT "a" FROM "t"`}, got)
}

func TestTranspilePretty(t *testing.T) {
	got, err := glot.Transpile("SELECT a, b FROM t WHERE a > 1", glot.Pretty())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "\n")
	assert.True(t, strings.HasPrefix(got[0], "SELECT"))
}

func TestTranspileDateTrunc(t *testing.T) {
	tests := []struct {
		write string
		want  string
	}{
		{"postgres", "SELECT DATE_TRUNC('month', d) FROM t"},
		{"mysql", "SELECT STR_TO_DATE(CONCAT(YEAR(d), ' ', MONTH(d), ' 1'), '%Y %c %e') FROM t"},
		{"tsql", "SELECT DATETRUNC(MONTH, d) FROM t"},
		{"duckdb", "SELECT DATE_TRUNC('MONTH', d) FROM t"},
	}
	for _, tt := range tests {
		t.Run(tt.write, func(t *testing.T) {
			got, err := glot.Transpile("SELECT DATE_TRUNC('month', d) FROM t",
				glot.Read("duckdb"), glot.Write(tt.write), glot.Unsupported(core.ErrorLevelImmediate))
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, got)
		})
	}

	_, err := glot.Transpile("SELECT DATE_TRUNC('hour', d) FROM t",
		glot.Read("duckdb"), glot.Write("mysql"), glot.Unsupported(core.ErrorLevelImmediate))
	var unsupported *generator.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "mysql", unsupported.Dialect)
}

// ---------- Unsupported Tests ----------

func TestTranspileUnsupportedLevels(t *testing.T) {
	const sql = "SELECT APPROX_DISTINCT(a) FROM t"

	t.Run("warn logs and returns text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		got, err := glot.Transpile(sql, glot.Write("postgres"), glot.WithLogger(logger))
		require.NoError(t, err)
		assert.Equal(t, []string{"SELECT COUNT(DISTINCT a) FROM t"}, got)
		assert.Contains(t, buf.String(), "unsupported syntax")
	})

	t.Run("ignore is silent", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		got, err := glot.Transpile(sql, glot.Write("postgres"),
			glot.Unsupported(core.ErrorLevelIgnore), glot.WithLogger(logger))
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Empty(t, buf.String())
	})

	t.Run("raise fails", func(t *testing.T) {
		_, err := glot.Transpile(sql, glot.Write("postgres"), glot.Unsupported(core.ErrorLevelRaise))

		var unsupported *generator.UnsupportedError
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, "postgres", unsupported.Dialect)
		assert.Len(t, unsupported.Messages, 1)
	})
}

// ---------- Builder Tests ----------

func TestCastBuilder(t *testing.T) {
	e, err := core.Cast("x", "INT")
	require.NoError(t, err)

	sql, err := e.SQL()
	require.NoError(t, err)
	assert.Equal(t, "CAST(x AS INT)", sql)
}

func TestSelectBuilderClauseOrder(t *testing.T) {
	sql, err := core.Select("a").
		Limit(10).
		OrderBy("a DESC").
		Where("b > 1").
		GroupBy("a").
		From("t").
		SQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t WHERE b > 1 GROUP BY a ORDER BY a DESC LIMIT 10", sql)
}

// ---------- Deep Tree Tests ----------

func TestDeepOperatorChains(t *testing.T) {
	for _, op := range []string{" + ", " AND ", " || "} {
		t.Run(strings.TrimSpace(op), func(t *testing.T) {
			terms := make([]string, 500)
			for i := range terms {
				terms[i] = "a"
			}
			sql := "SELECT " + strings.Join(terms, op)

			e, err := glot.ParseOne(sql)
			require.NoError(t, err)

			cp := e.Copy()
			assert.True(t, e.Equal(cp))
			assert.Equal(t, e.Hash(), cp.Hash())

			out, err := cp.SQL()
			require.NoError(t, err)
			assert.Equal(t, sql, out)
		})
	}
}
