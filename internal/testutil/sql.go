package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
	"github.com/leapstack-labs/glot/pkg/parser"
)

// ParseOne parses a single statement with d and fails the test on error.
func ParseOne(t testing.TB, d *dialect.Dialect, sql string) *core.Expr {
	t.Helper()
	e, err := parser.ParseOne(sql, d)
	require.NoError(t, err, sql)
	require.NotNil(t, e, sql)
	return e
}

// Roundtrip parses sql with d and renders it back with d.
func Roundtrip(t testing.TB, d *dialect.Dialect, sql string) string {
	t.Helper()
	return Transpile(t, sql, d, d)
}

// Transpile parses sql with read and renders it with write. Unsupported
// constructs fail the test.
func Transpile(t testing.TB, sql string, read, write *dialect.Dialect) string {
	t.Helper()
	e := ParseOne(t, read, sql)
	out, err := write.Generate(e, generator.Unsupported(core.ErrorLevelRaise))
	require.NoError(t, err, sql)
	return out
}
