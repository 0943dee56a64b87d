// Package snowflake provides the Snowflake SQL dialect definition.
//
// Snowflake upper-cases unquoted identifiers, spells time formats with its
// own tokens (YYYY-MM-DD HH24:MI:SS) and puts the date part first in
// DATEADD and DATEDIFF. Parsing maps these spellings onto the canonical
// kinds; generation reverses the mapping.
package snowflake

import (
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
	"github.com/leapstack-labs/glot/pkg/spi"
)

func init() {
	dialect.Register(Snowflake)
}

// snowflakeReservedWords are the keywords Snowflake reserves as identifiers.
var snowflakeReservedWords = []string{
	"account", "all", "alter", "and", "any", "as", "between", "by", "case",
	"cast", "check", "column", "connect", "connection", "constraint", "create",
	"cross", "current", "current_date", "current_time", "current_timestamp",
	"current_user", "database", "delete", "distinct", "drop", "else", "exists",
	"false", "following", "for", "from", "full", "grant", "group", "gscluster",
	"having", "ilike", "in", "increment", "inner", "insert", "intersect",
	"into", "is", "issue", "join", "lateral", "left", "like", "localtime",
	"localtimestamp", "minus", "natural", "not", "null", "of", "on", "or",
	"order", "organization", "qualify", "regexp", "revoke", "right", "rlike",
	"row", "rows", "sample", "schema", "select", "set", "some", "start",
	"table", "tablesample", "then", "to", "trigger", "true", "try_cast",
	"union", "unique", "update", "using", "values", "view", "when",
	"whenever", "where", "with",
}

// TimeFormat maps Snowflake format tokens to strftime.
var TimeFormat = dialect.NewTimeFormat(map[string]string{
	"YYYY": "%Y",
	"YY":   "%y",
	"MMMM": "%B",
	"MON":  "%b",
	"MM":   "%m",
	"DD":   "%d",
	"DY":   "%a",
	"HH24": "%H",
	"HH12": "%I",
	"HH":   "%H",
	"MI":   "%M",
	"SS":   "%S",
	"FF":   "%f",
	"FF6":  "%f",
	"AM":   "%p",
	"PM":   "%p",
	"TZH":  "%z",
}, dialect.FoldCase(), dialect.LiteralQuote('"'))

var snowflakeTypes = map[core.Type]string{
	core.TypeText:         "VARCHAR",
	core.TypeStruct:       "OBJECT",
	core.TypeNested:       "OBJECT",
	core.TypeMap:          "OBJECT",
	core.TypeBigDecimal:   "DOUBLE",
	core.TypeDatetime:     "TIMESTAMP",
	core.TypeTimestampTZ:  "TIMESTAMP_TZ",
	core.TypeTimestampLTZ: "TIMESTAMP_LTZ",
	core.TypeTimestampNTZ: "TIMESTAMP_NTZ",
	core.TypeBlob:         "BINARY",
}

var snowflakeFunctionNames = map[core.Kind]string{
	core.KindApproxDistinct: "APPROX_COUNT_DISTINCT",
	core.KindLevenshtein:    "EDITDISTANCE",
	core.KindStartsWith:     "STARTSWITH",
	core.KindGroupConcat:    "LISTAGG",
	core.KindDayOfWeek:      "DAYOFWEEK",
}

var snowflakeFunctions = map[string]spi.FunctionBuilder{
	"DATEADD":          dialect.UnitFirst("DATEADD", core.KindDateAdd),
	"TIMEADD":          dialect.UnitFirst("TIMEADD", core.KindDateAdd),
	"TIMESTAMPADD":     dialect.UnitFirst("TIMESTAMPADD", core.KindDateAdd),
	"DATEDIFF":         dialect.UnitFirst("DATEDIFF", core.KindDateDiff),
	"TIMEDIFF":         dialect.UnitFirst("TIMEDIFF", core.KindDateDiff),
	"TIMESTAMPDIFF":    dialect.UnitFirst("TIMESTAMPDIFF", core.KindDateDiff),
	"TO_TIMESTAMP":     dialect.FormatFunc("TO_TIMESTAMP", core.KindStrToTime, TimeFormat, dialect.FormatLast),
	"TO_TIMESTAMP_NTZ": dialect.FormatFunc("TO_TIMESTAMP_NTZ", core.KindStrToTime, TimeFormat, dialect.FormatLast),
	"TO_DATE":          dialect.FormatFunc("TO_DATE", core.KindStrToDate, TimeFormat, dialect.FormatLast),
	"TO_CHAR":          dialect.FormatFunc("TO_CHAR", core.KindTimeToStr, TimeFormat, dialect.FormatLast),
	"TO_VARCHAR":       dialect.FormatFunc("TO_VARCHAR", core.KindTimeToStr, TimeFormat, dialect.FormatLast),
	"EDITDISTANCE":     dialect.Renamed(core.KindLevenshtein),
	"POSITION":         position,
	"CHARINDEX":        position,
}

// Snowflake is the Snowflake SQL dialect.
var Snowflake = dialect.NewDialect("snowflake").
	Identifiers(`"`, `"`, `""`, core.NormUppercase).
	Strings('\'', `\'`).
	LineComments("--", "//").
	Clauses(dialect.QualifySelectClauses...).
	Operators(
		dialect.ANSIOperators,
		dialect.ILikeOperators,
		dialect.RLikeOperators,
		dialect.CastOperators,
	).
	JoinTypes(dialect.ANSIJoinTypes).
	WithReservedWords(snowflakeReservedWords...).
	TypeMapping(snowflakeTypes).
	FunctionNames(snowflakeFunctionNames).
	Transforms(map[core.Kind]generator.Transform{
		core.KindIf:          iffSQL,
		core.KindTryCast:     tryCastSQL,
		core.KindDateAdd:     dateAddSQL,
		core.KindDateSub:     dateAddSQL,
		core.KindDateDiff:    dateDiffSQL,
		core.KindStrToTime:   generator.RenameFunc("TO_TIMESTAMP"),
		core.KindStrToDate:   generator.RenameFunc("TO_DATE"),
		core.KindTimeToStr:   generator.RenameFunc("TO_CHAR"),
		core.KindStrPosition: strPositionSQL,
		core.KindIntDiv:      intDivSQL,
		core.KindLambda:      lambdaSQL,
	}).
	TimeFormat(TimeFormat).
	DateParts(map[string]string{
		"NS":   "NANOSECOND",
		"NSEC": "NANOSECOND",
		"US":   "MICROSECOND",
		"MS":   "MILLISECOND",
	}).
	Functions(snowflakeFunctions).
	Build()
