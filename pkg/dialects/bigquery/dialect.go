// Package bigquery provides the Google BigQuery (GoogleSQL) dialect
// definition.
package bigquery

import (
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
	"github.com/leapstack-labs/glot/pkg/spi"
)

func init() {
	dialect.Register(BigQuery)
}

var bigqueryReservedWords = []string{
	"all", "and", "any", "array", "as", "asc", "assert_rows_modified", "at",
	"between", "by", "case", "cast", "collate", "contains", "create", "cross",
	"cube", "current", "default", "define", "desc", "distinct", "else", "end",
	"enum", "escape", "except", "exclude", "exists", "extract", "false",
	"fetch", "following", "for", "from", "full", "group", "grouping",
	"groups", "hash", "having", "if", "ignore", "in", "inner", "intersect",
	"interval", "into", "is", "join", "lateral", "left", "like", "limit",
	"lookup", "merge", "natural", "new", "no", "not", "null", "nulls", "of",
	"on", "or", "order", "outer", "over", "partition", "preceding", "proto",
	"qualify", "range", "recursive", "respect", "right", "rollup", "rows",
	"select", "set", "some", "struct", "tablesample", "then", "to", "treat",
	"true", "unbounded", "union", "unnest", "using", "when", "where",
	"window", "with", "within",
}

var bigqueryTypes = map[core.Type]string{
	core.TypeText:       "STRING",
	core.TypeVarchar:    "STRING",
	core.TypeChar:       "STRING",
	core.TypeNVarchar:   "STRING",
	core.TypeNChar:      "STRING",
	core.TypeTinyInt:    "INT64",
	core.TypeSmallInt:   "INT64",
	core.TypeInt:        "INT64",
	core.TypeBigInt:     "INT64",
	core.TypeDouble:     "FLOAT64",
	core.TypeFloat:      "FLOAT64",
	core.TypeDecimal:    "NUMERIC",
	core.TypeBigDecimal: "BIGNUMERIC",
	core.TypeBoolean:    "BOOL",
	core.TypeBlob:       "BYTES",
	core.TypeBinary:     "BYTES",
	core.TypeVarbinary:  "BYTES",
}

var bigqueryFunctions = map[string]spi.FunctionBuilder{
	"FORMAT_TIMESTAMP":  dialect.FormatFunc("FORMAT_TIMESTAMP", core.KindTimeToStr, nil, dialect.FormatFirst),
	"FORMAT_DATE":       dialect.FormatFunc("FORMAT_DATE", core.KindTimeToStr, nil, dialect.FormatFirst),
	"FORMAT_DATETIME":   dialect.FormatFunc("FORMAT_DATETIME", core.KindTimeToStr, nil, dialect.FormatFirst),
	"PARSE_TIMESTAMP":   dialect.FormatFunc("PARSE_TIMESTAMP", core.KindStrToTime, nil, dialect.FormatFirst),
	"PARSE_DATE":        dialect.FormatFunc("PARSE_DATE", core.KindStrToDate, nil, dialect.FormatFirst),
	"DATE_ADD":          dialect.IntervalArg(core.KindDateAdd),
	"DATE_SUB":          dialect.IntervalArg(core.KindDateSub),
	"TIMESTAMP_ADD":     dialect.IntervalArg(core.KindDateAdd),
	"TIMESTAMP_SUB":     dialect.IntervalArg(core.KindDateSub),
	"DATE_TRUNC":        dateTrunc,
	"DIV":               dialect.Renamed(core.KindIntDiv),
	"REGEXP_CONTAINS":   dialect.Renamed(core.KindRegexpLike),
	"EDIT_DISTANCE":     dialect.Renamed(core.KindLevenshtein),
	"STRPOS":            dialect.Renamed(core.KindStrPosition),
	"TIMESTAMP_SECONDS": epoch(0),
	"TIMESTAMP_MILLIS":  epoch(3),
	"TIMESTAMP_MICROS":  epoch(6),
}

// BigQuery is the BigQuery dialect.
var BigQuery = dialect.NewDialect("bigquery").
	Identifiers("`", "`", "\\`", core.NormCaseInsensitive).
	Strings('\'', `\'`, '"').
	LineComments("--", "#").
	Clauses(dialect.QualifySelectClauses...).
	Operators(dialect.ANSIOperators).
	JoinTypes(dialect.ANSIJoinTypes).
	WithReservedWords(bigqueryReservedWords...).
	TypeMapping(bigqueryTypes).
	FunctionNames(map[core.Kind]string{
		core.KindApproxDistinct: "APPROX_COUNT_DISTINCT",
		core.KindLevenshtein:    "EDIT_DISTANCE",
		core.KindRegexpLike:     "REGEXP_CONTAINS",
	}).
	Transforms(map[core.Kind]generator.Transform{
		core.KindTryCast:     safeCastSQL,
		core.KindILike:       generator.LowerLike,
		core.KindIf:          generator.RenameFunc("IF"),
		core.KindIntDiv:      generator.RenameFunc("DIV"),
		core.KindTimeToStr:   formatFirst("FORMAT_TIMESTAMP"),
		core.KindStrToTime:   formatFirst("PARSE_TIMESTAMP"),
		core.KindStrToDate:   formatFirst("PARSE_DATE"),
		core.KindDateAdd:     dateAddSQL("DATE_ADD"),
		core.KindDateSub:     dateAddSQL("DATE_SUB"),
		core.KindDateTrunc:   dateTruncSQL,
		core.KindStrPosition: strPositionSQL,
		core.KindGroupConcat: generator.RenameFunc("STRING_AGG"),
		core.KindUnixToTime:  unixToTimeSQL,
		core.KindYear:        extractSQL("YEAR"),
		core.KindMonth:       extractSQL("MONTH"),
		core.KindDay:         extractSQL("DAY"),
		core.KindDayOfWeek:   extractSQL("DAYOFWEEK"),
	}).
	Functions(bigqueryFunctions).
	Build()
