// Package tsql provides the Transact-SQL (SQL Server) dialect definition.
//
// T-SQL quotes identifiers with brackets, limits rows with SELECT TOP,
// concatenates strings with + and has no boolean type.
package tsql

import (
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
	"github.com/leapstack-labs/glot/pkg/spi"
)

func init() {
	dialect.Register(TSQL, "sqlserver", "mssql")
}

var tsqlReservedWords = []string{
	"add", "all", "alter", "and", "any", "as", "asc", "authorization",
	"backup", "begin", "between", "break", "browse", "bulk", "by", "cascade",
	"case", "check", "checkpoint", "close", "clustered", "coalesce",
	"collate", "column", "commit", "compute", "constraint", "contains",
	"continue", "convert", "create", "cross", "current", "current_date",
	"current_time", "current_timestamp", "current_user", "cursor", "database",
	"deallocate", "declare", "default", "delete", "deny", "desc", "distinct",
	"drop", "else", "end", "escape", "except", "exec", "execute", "exists",
	"exit", "external", "fetch", "file", "for", "foreign", "from", "full",
	"function", "goto", "grant", "group", "having", "holdlock", "identity",
	"if", "in", "index", "inner", "insert", "intersect", "into", "is", "join",
	"key", "kill", "left", "like", "merge", "national", "nocheck", "not",
	"null", "nullif", "of", "off", "offsets", "on", "open", "option", "or",
	"order", "outer", "over", "percent", "pivot", "plan", "primary", "print",
	"proc", "procedure", "public", "raiserror", "read", "references",
	"restore", "restrict", "return", "revert", "revoke", "right", "rollback",
	"rowcount", "rule", "save", "schema", "select", "session_user", "set",
	"some", "table", "tablesample", "then", "to", "top", "tran",
	"transaction", "trigger", "truncate", "union", "unique", "unpivot",
	"update", "use", "user", "values", "varying", "view", "waitfor", "when",
	"where", "while", "with",
}

// TimeFormat maps .NET custom date format specifiers, as taken by FORMAT,
// to strftime. Specifiers are case sensitive.
var TimeFormat = dialect.NewTimeFormat(map[string]string{
	"yyyy":   "%Y",
	"yy":     "%y",
	"MMMM":   "%B",
	"MMM":    "%b",
	"MM":     "%m",
	"dddd":   "%A",
	"ddd":    "%a",
	"dd":     "%d",
	"HH":     "%H",
	"hh":     "%I",
	"mm":     "%M",
	"ss":     "%S",
	"ffffff": "%f",
	"tt":     "%p",
})

var tsqlTypes = map[core.Type]string{
	core.TypeText:        "VARCHAR(MAX)",
	core.TypeBoolean:     "BIT",
	core.TypeDouble:      "FLOAT",
	core.TypeTimestamp:   "DATETIME2",
	core.TypeTimestampTZ: "DATETIMEOFFSET",
	core.TypeBlob:        "VARBINARY(MAX)",
}

var tsqlFunctions = map[string]spi.FunctionBuilder{
	"DATEADD":   dialect.UnitFirst("DATEADD", core.KindDateAdd),
	"DATEDIFF":  dialect.UnitFirst("DATEDIFF", core.KindDateDiff),
	"DATEPART":  datePart,
	"DATETRUNC": dialect.TruncUnitFirst("DATETRUNC"),
	"FORMAT":    dialect.FormatFunc("FORMAT", core.KindTimeToStr, TimeFormat, dialect.FormatLast),
	"CHARINDEX": charIndex,
	"ISNULL":    dialect.Renamed(core.KindCoalesce),
}

// TSQL is the SQL Server dialect.
var TSQL = dialect.NewDialect("tsql").
	Identifiers("[", "]", "]]", core.NormCaseInsensitive).
	IdentifierQuote('"', '"').
	Clauses(
		dialect.StandardWhere,
		dialect.StandardGroupBy,
		dialect.StandardHaving,
		dialect.StandardOrderBy,
		dialect.StandardOffset,
		dialect.StandardFetch,
	).
	LimitStyle(generator.LimitTop).
	Operators(dialect.ANSIOperators).
	JoinTypes(dialect.ANSIJoinTypes).
	WithReservedWords(tsqlReservedWords...).
	TypeMapping(tsqlTypes).
	FunctionNames(map[core.Kind]string{
		core.KindLength:         "LEN",
		core.KindLn:             "LOG",
		core.KindCeil:           "CEILING",
		core.KindApproxDistinct: "APPROX_COUNT_DISTINCT",
	}).
	Transforms(map[core.Kind]generator.Transform{
		core.KindBoolean:          booleanSQL,
		core.KindCurrentTimestamp: currentTimestampSQL,
		core.KindDPipe:            concatSQL,
		core.KindIf:               iifSQL,
		core.KindILike:            generator.LowerLike,
		core.KindRegexpLike:       regexpLikeSQL,
		core.KindStrPosition:      charIndexSQL,
		core.KindTimeToStr:        generator.RenameFunc("FORMAT"),
		core.KindStrToTime:        strToTimeSQL("DATETIME2"),
		core.KindStrToDate:        strToTimeSQL("DATE"),
		core.KindDateAdd:          dateAddSQL,
		core.KindDateSub:          dateAddSQL,
		core.KindDateDiff:         dateDiffSQL,
		core.KindDateTrunc:        dateTruncSQL,
		core.KindExtract:          datePartSQL,
		core.KindDayOfWeek:        dayOfWeekSQL,
		core.KindGroupConcat:      stringAggSQL,
	}).
	TimeFormat(TimeFormat).
	Functions(tsqlFunctions).
	Build()
