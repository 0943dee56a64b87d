// Package mysql provides the MySQL SQL dialect definition.
//
// MySQL quotes identifiers with backticks, keeps their case, accepts
// double-quoted strings and formats times with %-directives that differ
// from strftime for minutes, seconds and month names.
package mysql

import (
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
	"github.com/leapstack-labs/glot/pkg/spi"
)

func init() {
	dialect.Register(MySQL)
}

var mysqlReservedWords = []string{
	"accessible", "add", "all", "alter", "analyze", "and", "as", "asc",
	"before", "between", "bigint", "binary", "blob", "both", "by", "call",
	"cascade", "case", "change", "char", "character", "check", "collate",
	"column", "condition", "constraint", "continue", "convert", "create",
	"cross", "cube", "current_date", "current_time", "current_timestamp",
	"current_user", "cursor", "database", "databases", "day_hour", "dec",
	"decimal", "declare", "default", "delayed", "delete", "desc", "describe",
	"distinct", "div", "double", "drop", "dual", "each", "else", "elseif",
	"enclosed", "escaped", "except", "exists", "exit", "explain", "false",
	"fetch", "float", "for", "force", "foreign", "from", "fulltext",
	"function", "grant", "group", "grouping", "having", "if", "ignore", "in",
	"index", "infile", "inner", "insert", "int", "integer", "intersect",
	"interval", "into", "is", "join", "key", "keys", "kill", "lateral",
	"leading", "left", "like", "limit", "lines", "load", "localtime",
	"lock", "long", "loop", "match", "mod", "natural", "not", "null",
	"numeric", "of", "on", "optimize", "option", "or", "order", "out",
	"outer", "over", "partition", "precision", "primary", "procedure",
	"range", "rank", "read", "real", "references", "regexp", "rename",
	"repeat", "replace", "require", "restrict", "return", "revoke", "right",
	"rlike", "row", "rows", "schema", "select", "set", "show", "smallint",
	"sql", "table", "then", "to", "trailing", "trigger", "true", "union",
	"unique", "unlock", "unsigned", "update", "usage", "use", "using",
	"values", "varchar", "when", "where", "while", "window", "with", "write",
	"xor", "year_month", "zerofill",
}

// TimeFormat maps MySQL DATE_FORMAT directives that differ from strftime.
// Directives with the same meaning in both are passed through.
var TimeFormat = dialect.NewTimeFormat(map[string]string{
	"%i": "%M",
	"%M": "%B",
	"%s": "%S",
	"%W": "%A",
	"%h": "%I",
	"%c": "%-m",
	"%e": "%-d",
})

var mysqlTypes = map[core.Type]string{
	core.TypeBoolean:     "TINYINT(1)",
	core.TypeTimestampTZ: "TIMESTAMP",
	core.TypeStruct:      "JSON",
	core.TypeMap:         "JSON",
}

var mysqlFunctions = map[string]spi.FunctionBuilder{
	"DATE_FORMAT":   dialect.FormatFunc("DATE_FORMAT", core.KindTimeToStr, TimeFormat, dialect.FormatLast),
	"STR_TO_DATE":   dialect.FormatFunc("STR_TO_DATE", core.KindStrToTime, TimeFormat, dialect.FormatLast),
	"DATE_ADD":      dialect.IntervalArg(core.KindDateAdd),
	"DATE_SUB":      dialect.IntervalArg(core.KindDateSub),
	"ADDDATE":       dialect.IntervalArg(core.KindDateAdd),
	"SUBDATE":       dialect.IntervalArg(core.KindDateSub),
	"DATEDIFF":      dateDiff,
	"TIMESTAMPDIFF": dialect.UnitFirst("TIMESTAMPDIFF", core.KindDateDiff),
	"LOCATE":        locate,
	"INSTR":         dialect.Renamed(core.KindStrPosition),
}

// MySQL is the MySQL dialect.
var MySQL = dialect.NewDialect("mysql").
	Identifiers("`", "`", "``", core.NormCaseSensitive).
	Strings('\'', `\'`, '"').
	LineComments("--", "#").
	Clauses(dialect.StandardSelectClauses...).
	Operators(
		dialect.ANSIOperators,
		dialect.RLikeOperators,
		dialect.NullSafeOperators,
		dialect.DivOperators,
	).
	JoinTypes(dialect.ANSIJoinTypes).
	WithReservedWords(mysqlReservedWords...).
	TypeMapping(mysqlTypes).
	FunctionNames(map[core.Kind]string{
		core.KindLength: "CHAR_LENGTH",
	}).
	Transforms(map[core.Kind]generator.Transform{
		core.KindCast:           castSQL,
		core.KindTryCast:        tryCastSQL,
		core.KindILike:          generator.LowerLike,
		core.KindRegexpLike:     regexpSQL,
		core.KindDPipe:          concatSQL,
		core.KindIntDiv:         intDivSQL,
		core.KindOrdered:        orderedSQL,
		core.KindNullSafeEQ:     nullSafeEqSQL,
		core.KindTimeToStr:      generator.RenameFunc("DATE_FORMAT"),
		core.KindStrToTime:      generator.RenameFunc("STR_TO_DATE"),
		core.KindStrToDate:      generator.RenameFunc("STR_TO_DATE"),
		core.KindDateAdd:        dateAddSQL("DATE_ADD"),
		core.KindDateSub:        dateAddSQL("DATE_SUB"),
		core.KindDateDiff:       dateDiffSQL,
		core.KindDateTrunc:      dateTruncSQL,
		core.KindStrPosition:    locateSQL,
		core.KindGroupConcat:    groupConcatSQL,
		core.KindApproxDistinct: approxDistinctSQL,
	}).
	TimeFormat(TimeFormat).
	Functions(mysqlFunctions).
	Build()
