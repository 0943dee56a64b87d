// Package duckdb provides the DuckDB SQL dialect definition.
// This package is pure Go with no database driver dependencies, so
// transpiling to DuckDB never needs a connection.
package duckdb

import (
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
	"github.com/leapstack-labs/glot/pkg/spi"
	"github.com/leapstack-labs/glot/pkg/token"
)

func init() {
	dialect.Register(DuckDB)
}

// DuckDB-specific join type tokens (not in standard token set)
var (
	TokenAsof       = token.Register("ASOF")
	TokenPositional = token.Register("POSITIONAL")
)

// DuckDB-specific join kinds.
const (
	JoinAsof       = "ASOF"       // Temporal join matching closest value
	JoinPositional = "POSITIONAL" // Joins by row position (no condition needed)
)

// --- DuckDB-specific Clause Definitions ---

// DuckDBOrderBy is ORDER BY with ALL support.
var DuckDBOrderBy = dialect.ClauseDef{
	Token:    token.ORDER,
	Handler:  parseOrderByWithAll,
	Slot:     spi.SlotOrderBy,
	Keywords: []string{"ORDER", "BY"},
}

// --- DuckDB-specific Join Types ---

var duckDBJoinTypes = []dialect.JoinTypeDef{
	{
		Token:       TokenAsof,
		Kind:        JoinAsof,
		RequiresOn:  true,
		AllowsUsing: false, // ASOF requires inequality conditions
	},
	{
		Token:       TokenPositional,
		Kind:        JoinPositional,
		RequiresOn:  false, // No condition for positional join
		AllowsUsing: false,
	},
}

var duckDBReservedWords = []string{
	"all", "analyse", "analyze", "and", "any", "array", "as", "asc",
	"asymmetric", "both", "case", "cast", "check", "collate", "column",
	"constraint", "create", "default", "deferrable", "desc", "describe",
	"distinct", "do", "else", "end", "except", "false", "fetch", "for",
	"foreign", "from", "grant", "group", "having", "in", "initially",
	"intersect", "into", "lateral", "leading", "limit", "not", "null",
	"offset", "on", "only", "or", "order", "pivot", "pivot_longer",
	"pivot_wider", "placing", "primary", "qualify", "references",
	"returning", "select", "show", "some", "summarize", "symmetric", "table",
	"then", "to", "trailing", "true", "union", "unique", "unpivot", "using",
	"variadic", "when", "where", "window", "with",
}

var duckDBTypes = map[core.Type]string{
	core.TypeBinary:       "BLOB",
	core.TypeVarbinary:    "BLOB",
	core.TypeDatetime:     "TIMESTAMP",
	core.TypeTimestampNTZ: "TIMESTAMP",
	core.TypeTimestampLTZ: "TIMESTAMPTZ",
	core.TypeTimestampTZ:  "TIMESTAMPTZ",
}

var duckDBFunctions = map[string]spi.FunctionBuilder{
	"STRPTIME":       dialect.FormatFunc("STRPTIME", core.KindStrToTime, nil, dialect.FormatLast),
	"STRFTIME":       dialect.FormatFunc("STRFTIME", core.KindTimeToStr, nil, dialect.FormatLast),
	"DATE_DIFF":      dialect.UnitFirst("DATE_DIFF", core.KindDateDiff),
	"DATEDIFF":       dialect.UnitFirst("DATEDIFF", core.KindDateDiff),
	"DATE_TRUNC":     dateTrunc,
	"TO_TIMESTAMP":   dialect.Renamed(core.KindUnixToTime),
	"EPOCH_MS":       epochMs,
	"REGEXP_MATCHES": dialect.Renamed(core.KindRegexpLike),
	"STRING_AGG":     dialect.Renamed(core.KindGroupConcat),
}

// DuckDB is the DuckDB dialect configuration.
// Uses explicit composition - no inheritance from ANSI.
var DuckDB = dialect.NewDialect("duckdb").
	// Static Configuration
	Identifiers(`"`, `"`, `""`, core.NormCaseInsensitive).
	// Clause Sequence - EXPLICIT, no inheritance
	// DuckDB uses standard ANSI clauses with overrides and additions
	Clauses(
		dialect.StandardWhere,
		dialect.GroupBy(dialect.GroupByOpts{AllowAll: true}), // GROUP BY ALL
		dialect.StandardHaving,
		dialect.StandardQualify,
		DuckDBOrderBy, // Override: ORDER BY ALL support
		dialect.StandardLimit,
		dialect.StandardOffset,
		dialect.StandardFetch,
	).
	// Operators - compose from standard + custom
	Operators(
		dialect.ANSIOperators,
		dialect.ILikeOperators,
		dialect.CastOperators,
		dialect.IntDivOperators,
	).
	// Join Types - compose from standard + custom
	JoinTypes(
		dialect.ANSIJoinTypes,
		dialect.SemiAntiJoinTypes,
		duckDBJoinTypes,
	).
	WithReservedWords(duckDBReservedWords...).
	TypeMapping(duckDBTypes).
	FunctionNames(map[core.Kind]string{
		core.KindApproxDistinct: "APPROX_COUNT_DISTINCT",
		core.KindRegexpLike:     "REGEXP_MATCHES",
	}).
	Transforms(map[core.Kind]generator.Transform{
		core.KindArray:       listSQL,
		core.KindIf:          ifSQL,
		core.KindIntDiv:      intDivSQL,
		core.KindStrToTime:   generator.RenameFunc("STRPTIME"),
		core.KindTimeToStr:   generator.RenameFunc("STRFTIME"),
		core.KindUnixToTime:  unixToTimeSQL,
		core.KindDateAdd:     dateAddSQL,
		core.KindDateSub:     dateAddSQL,
		core.KindDateDiff:    dateDiffSQL,
		core.KindDateTrunc:   dateTruncSQL,
		core.KindGroupConcat: generator.RenameFunc("STRING_AGG"),
	}).
	Functions(duckDBFunctions).
	Build()
