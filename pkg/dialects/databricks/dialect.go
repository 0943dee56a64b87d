// Package databricks provides the Databricks SQL dialect definition.
//
// Databricks follows Spark SQL: backtick identifiers, Java style datetime
// patterns in DATE_FORMAT and TO_TIMESTAMP, and the DATEADD family with
// the unit first.
package databricks

import (
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
	"github.com/leapstack-labs/glot/pkg/spi"
)

func init() {
	dialect.Register(Databricks, "spark")
}

var databricksReservedWords = []string{
	"all", "alter", "and", "anti", "any", "array", "as", "at", "authorization",
	"between", "both", "by", "case", "cast", "check", "collate", "column",
	"commit", "constraint", "create", "cross", "cube", "current",
	"current_date", "current_time", "current_timestamp", "current_user",
	"delete", "describe", "distinct", "drop", "else", "end", "escape",
	"except", "exists", "external", "false", "fetch", "filter", "for",
	"foreign", "from", "full", "function", "global", "grant", "group",
	"grouping", "having", "in", "inner", "insert", "intersect", "interval",
	"into", "is", "join", "lateral", "leading", "left", "like", "local",
	"minus", "natural", "no", "not", "null", "of", "on", "only", "or",
	"order", "out", "outer", "overlaps", "partition", "position", "primary",
	"qualify", "range", "references", "revoke", "right", "rollback",
	"rollup", "row", "rows", "select", "semi", "session_user", "set", "some",
	"start", "table", "tablesample", "then", "time", "to", "trailing",
	"true", "truncate", "union", "unique", "unknown", "update", "user",
	"using", "values", "when", "where", "window", "with",
}

// TimeFormat maps Spark datetime patterns to strftime. Pattern letters
// are case sensitive.
var TimeFormat = dialect.NewTimeFormat(map[string]string{
	"yyyy":   "%Y",
	"yy":     "%y",
	"MMMM":   "%B",
	"MMM":    "%b",
	"MM":     "%m",
	"dd":     "%d",
	"EEEE":   "%A",
	"EEE":    "%a",
	"HH":     "%H",
	"hh":     "%I",
	"mm":     "%M",
	"ss":     "%S",
	"SSSSSS": "%f",
	"a":      "%p",
	"D":      "%j",
})

var databricksTypes = map[core.Type]string{
	core.TypeText:        "STRING",
	core.TypeVarchar:     "STRING",
	core.TypeNVarchar:    "STRING",
	core.TypeBlob:        "BINARY",
	core.TypeVarbinary:   "BINARY",
	core.TypeDatetime:    "TIMESTAMP",
	core.TypeTimestampTZ: "TIMESTAMP",
	core.TypeBigDecimal:  "DECIMAL",
}

var databricksFunctions = map[string]spi.FunctionBuilder{
	"DATE_FORMAT":       dialect.FormatFunc("DATE_FORMAT", core.KindTimeToStr, TimeFormat, dialect.FormatLast),
	"TO_TIMESTAMP":      dialect.FormatFunc("TO_TIMESTAMP", core.KindStrToTime, TimeFormat, dialect.FormatLast),
	"TO_DATE":           dialect.FormatFunc("TO_DATE", core.KindStrToDate, TimeFormat, dialect.FormatLast),
	"DATEADD":           dialect.UnitFirst("DATEADD", core.KindDateAdd),
	"TIMESTAMPADD":      dialect.UnitFirst("TIMESTAMPADD", core.KindDateAdd),
	"DATEDIFF":          dateDiff,
	"TIMESTAMPDIFF":     dialect.UnitFirst("TIMESTAMPDIFF", core.KindDateDiff),
	"DATE_TRUNC":        dateTrunc,
	"INSTR":             dialect.Renamed(core.KindStrPosition),
	"LOCATE":            locate,
	"COLLECT_LIST":      dialect.Renamed(core.KindArrayAgg),
	"TIMESTAMP_SECONDS": epoch(0),
	"TIMESTAMP_MILLIS":  epoch(3),
	"TIMESTAMP_MICROS":  epoch(6),
}

// Databricks is the Databricks SQL dialect.
var Databricks = dialect.NewDialect("databricks").
	Identifiers("`", "`", "``", core.NormCaseInsensitive).
	Strings('\'', `\'`, '"').
	Clauses(dialect.QualifySelectClauses...).
	Operators(
		dialect.ANSIOperators,
		dialect.ILikeOperators,
		dialect.RLikeOperators,
		dialect.CastOperators,
		dialect.NullSafeOperators,
		dialect.DivOperators,
	).
	JoinTypes(dialect.ANSIJoinTypes, dialect.SemiAntiJoinTypes).
	WithReservedWords(databricksReservedWords...).
	TypeMapping(databricksTypes).
	FunctionNames(map[core.Kind]string{
		core.KindApproxDistinct: "APPROX_COUNT_DISTINCT",
		core.KindArrayAgg:       "COLLECT_LIST",
	}).
	Transforms(map[core.Kind]generator.Transform{
		core.KindArray:       generator.RenameFunc("ARRAY"),
		core.KindIf:          generator.RenameFunc("IF"),
		core.KindIntDiv:      intDivSQL,
		core.KindRegexpLike:  rlikeSQL,
		core.KindNullSafeEQ:  nullSafeEqSQL,
		core.KindTimeToStr:   generator.RenameFunc("DATE_FORMAT"),
		core.KindStrToTime:   generator.RenameFunc("TO_TIMESTAMP"),
		core.KindStrToDate:   generator.RenameFunc("TO_DATE"),
		core.KindDateAdd:     dateAddSQL,
		core.KindDateSub:     dateAddSQL,
		core.KindDateDiff:    dateDiffSQL,
		core.KindDateTrunc:   dateTruncSQL,
		core.KindStrPosition: locateSQL,
		core.KindGroupConcat: groupConcatSQL,
		core.KindUnixToTime:  unixToTimeSQL,
	}).
	TimeFormat(TimeFormat).
	Functions(databricksFunctions).
	Build()
