// Package postgres provides the PostgreSQL SQL dialect definition.
//
// PostgreSQL lower-cases unquoted identifiers, casts with ::, matches
// regular expressions with ~ and formats times with TO_CHAR templates.
package postgres

import (
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
	"github.com/leapstack-labs/glot/pkg/spi"
	"github.com/leapstack-labs/glot/pkg/token"
)

func init() {
	dialect.Register(Postgres, "postgresql")
}

// postgresReservedWords contains common PostgreSQL reserved words.
// This is a manually maintained list of frequently problematic identifiers.
// For a complete list, use pg_get_keywords() at runtime.
var postgresReservedWords = []string{
	"user", "order", "group", "table", "select", "from", "where", "index",
	"all", "and", "any", "array", "as", "asc", "asymmetric", "authorization",
	"between", "binary", "both", "case", "cast", "check", "collate", "column",
	"constraint", "create", "cross", "current_catalog", "current_date",
	"current_role", "current_schema", "current_time", "current_timestamp",
	"current_user", "default", "deferrable", "desc", "distinct", "do", "else",
	"end", "except", "false", "fetch", "for", "foreign", "freeze", "full",
	"grant", "having", "ilike", "in", "initially", "inner", "intersect",
	"into", "is", "isnull", "join", "lateral", "leading", "left", "like",
	"limit", "localtime", "localtimestamp", "natural", "not", "notnull",
	"null", "offset", "on", "only", "or", "outer", "overlaps", "placing",
	"primary", "references", "returning", "right", "session_user", "similar",
	"some", "symmetric", "then", "to", "trailing", "true", "union", "unique",
	"using", "variadic", "verbose", "when", "window", "with",
}

// TimeFormat maps TO_CHAR template patterns to strftime.
var TimeFormat = dialect.NewTimeFormat(map[string]string{
	"YYYY":  "%Y",
	"YY":    "%y",
	"MONTH": "%B",
	"MON":   "%b",
	"MM":    "%m",
	"DAY":   "%A",
	"DY":    "%a",
	"DDD":   "%j",
	"DD":    "%d",
	"D":     "%u",
	"HH24":  "%H",
	"HH12":  "%I",
	"HH":    "%I",
	"MI":    "%M",
	"SS":    "%S",
	"US":    "%f",
	"AM":    "%p",
	"PM":    "%p",
	"TZ":    "%Z",
	"OF":    "%z",
	"WW":    "%U",
}, dialect.FoldCase(), dialect.LiteralQuote('"'))

var postgresTypes = map[core.Type]string{
	core.TypeTinyInt:   "SMALLINT",
	core.TypeDouble:    "DOUBLE PRECISION",
	core.TypeFloat:     "REAL",
	core.TypeDatetime:  "TIMESTAMP",
	core.TypeBlob:      "BYTEA",
	core.TypeBinary:    "BYTEA",
	core.TypeVarbinary: "BYTEA",
	core.TypeLongText:  "TEXT",
}

var postgresOperators = []dialect.OperatorDef{
	{Token: token.TILDE, Precedence: spi.PrecedenceComparison, Kind: core.KindRegexpLike},
}

var postgresFunctions = map[string]spi.FunctionBuilder{
	"TO_CHAR":      dialect.FormatFunc("TO_CHAR", core.KindTimeToStr, TimeFormat, dialect.FormatLast),
	"TO_TIMESTAMP": toTimestamp,
	"TO_DATE":      dialect.FormatFunc("TO_DATE", core.KindStrToDate, TimeFormat, dialect.FormatLast),
	"STRPOS":       dialect.Renamed(core.KindStrPosition),
	"DIV":          dialect.Renamed(core.KindIntDiv),
	"DATE_PART":    datePart,
	"DATE_TRUNC":   dialect.TruncUnitFirst("DATE_TRUNC"),
}

// Postgres is the PostgreSQL dialect.
var Postgres = dialect.NewDialect("postgres").
	Clauses(dialect.StandardSelectClauses...).
	Operators(
		dialect.ANSIOperators,
		dialect.ILikeOperators,
		dialect.CastOperators,
		postgresOperators,
	).
	JoinTypes(dialect.ANSIJoinTypes).
	WithReservedWords(postgresReservedWords...).
	TypeMapping(postgresTypes).
	Transforms(map[core.Kind]generator.Transform{
		core.KindRegexpLike:     regexpLikeSQL,
		core.KindTimeToStr:      generator.RenameFunc("TO_CHAR"),
		core.KindStrToTime:      generator.RenameFunc("TO_TIMESTAMP"),
		core.KindStrToDate:      generator.RenameFunc("TO_DATE"),
		core.KindUnixToTime:     unixToTimeSQL,
		core.KindDateAdd:        dateAddSQL,
		core.KindDateSub:        dateAddSQL,
		core.KindDateDiff:       dateDiffSQL,
		core.KindDateTrunc:      dateTruncSQL,
		core.KindIntDiv:         generator.RenameFunc("DIV"),
		core.KindGroupConcat:    stringAggSQL,
		core.KindApproxDistinct: approxDistinctSQL,
		core.KindTryCast:        tryCastSQL,
		core.KindYear:           extractSQL("YEAR"),
		core.KindMonth:          extractSQL("MONTH"),
		core.KindDay:            extractSQL("DAY"),
		core.KindDayOfWeek:      extractSQL("DOW"),
	}).
	TimeFormat(TimeFormat).
	Functions(postgresFunctions).
	Build()
