package core

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"
)

// Kind identifies the variant of an expression node.
type Kind uint16

// KindInvalid is the zero Kind; no node ever carries it.
const KindInvalid Kind = 0

// ArgSpec declares one legal argument of a node kind.
type ArgSpec struct {
	Name     string
	Required bool
}

type kindFlag uint8

const (
	flagFunction kindFlag = 1 << iota
	flagBinary
	flagConnector
	flagPredicate
	flagQuery
	flagAggregate
)

// KindInfo is the registry entry for a node kind.
type KindInfo struct {
	Kind Kind
	// Name is the PascalCase variant name, e.g. "DateAdd".
	Name string
	// Key is the short lower-case tag used for dispatch and serialization, e.g. "dateadd".
	Key string
	// Args lists the legal arguments in canonical order.
	Args []ArgSpec
	// SQLNames are the function spellings the kind answers to. The first
	// entry is the canonical rendering name.
	SQLNames []string

	flags kindFlag
}

var (
	kindInfos   [kindCount]KindInfo
	kindsByKey  = make(map[string]Kind, kindCount)
	kindsByFunc = make(map[string]Kind)
)

// define registers the argument layout of a kind. args is a space separated
// list of argument names; a trailing '?' marks an optional argument.
func define(k Kind, args string, flags kindFlag, sqlNames ...string) {
	name := kindNames[k]
	info := KindInfo{
		Kind:  k,
		Name:  name,
		Key:   strings.ToLower(name),
		flags: flags,
	}
	for _, field := range strings.Fields(args) {
		required := !strings.HasSuffix(field, "?")
		info.Args = append(info.Args, ArgSpec{Name: strings.TrimSuffix(field, "?"), Required: required})
	}
	if flags&flagFunction != 0 {
		if len(sqlNames) == 0 {
			sqlNames = []string{strings.ToUpper(inflect.Underscore(name))}
		}
		info.SQLNames = sqlNames
		for _, n := range sqlNames {
			kindsByFunc[strings.ToUpper(n)] = k
		}
	}
	kindInfos[k] = info
	kindsByKey[info.Key] = k
}

const (
	fnKind    = flagFunction
	aggKind   = flagFunction | flagAggregate
	binKind   = flagBinary
	predKind  = flagBinary | flagPredicate
	connKind  = flagBinary | flagConnector
	queryKind = flagQuery
)

func init() {
	define(KindIdentifier, "this quoted?", 0)
	define(KindColumn, "this table? db? catalog?", 0)
	define(KindTable, "this db? catalog? alias?", 0)
	define(KindStar, "", 0)
	define(KindLiteral, "this is_string?", 0)
	define(KindNull, "", 0)
	define(KindBoolean, "this?", 0)
	define(KindVar, "this", 0)
	define(KindPlaceholder, "this?", 0)
	define(KindDot, "this expression", binKind)
	define(KindAlias, "this alias?", 0)
	define(KindTableAlias, "this? columns?", 0)
	define(KindParen, "this", 0)
	define(KindTuple, "expressions?", 0)
	define(KindArray, "expressions?", fnKind, "ARRAY")
	define(KindSubquery, "this alias?", queryKind)
	define(KindColumnDef, "this kind?", 0)

	define(KindSelect, "with? distinct? expressions? from? joins? where? group? having? qualify? order? limit? offset?", queryKind)
	define(KindUnion, "this expression distinct? with? order? limit? offset?", queryKind)
	define(KindIntersect, "this expression distinct? with? order? limit? offset?", queryKind)
	define(KindExcept, "this expression distinct? with? order? limit? offset?", queryKind)
	define(KindFrom, "this", 0)
	define(KindJoin, "this on? using? side? kind? comma?", 0)
	define(KindWhere, "this", 0)
	define(KindGroup, "expressions? all?", 0)
	define(KindHaving, "this", 0)
	define(KindQualify, "this", 0)
	define(KindOrder, "expressions", 0)
	define(KindOrdered, "this desc? nulls?", 0)
	define(KindLimit, "expression", 0)
	define(KindOffset, "expression", 0)
	define(KindWith, "expressions recursive?", 0)
	define(KindCTE, "this alias", 0)
	define(KindDistinct, "expressions? on?", 0)

	define(KindDataType, "this expressions? nested? kind?", 0)
	define(KindDataTypeParam, "this", 0)

	define(KindCast, "this to", fnKind, "CAST")
	define(KindTryCast, "this to", fnKind, "TRY_CAST")
	define(KindCase, "this? ifs default?", 0)
	define(KindIf, "this true false?", fnKind, "IF", "IIF", "IFF")
	define(KindNot, "this", 0)
	define(KindNeg, "this", 0)
	define(KindBitwiseNot, "this", 0)

	define(KindAnd, "this expression", connKind)
	define(KindOr, "this expression", connKind)
	define(KindAdd, "this expression", binKind)
	define(KindSub, "this expression", binKind)
	define(KindMul, "this expression", binKind)
	define(KindDiv, "this expression", binKind)
	define(KindIntDiv, "this expression", binKind)
	define(KindMod, "this expression", binKind)
	define(KindDPipe, "this expression", binKind)
	define(KindBitwiseAnd, "this expression", binKind)
	define(KindBitwiseOr, "this expression", binKind)
	define(KindBitwiseXor, "this expression", binKind)
	define(KindEQ, "this expression", predKind)
	define(KindNEQ, "this expression", predKind)
	define(KindGT, "this expression", predKind)
	define(KindGTE, "this expression", predKind)
	define(KindLT, "this expression", predKind)
	define(KindLTE, "this expression", predKind)
	define(KindNullSafeEQ, "this expression", predKind)
	define(KindIs, "this expression", predKind)
	define(KindLike, "this expression escape?", predKind)
	define(KindILike, "this expression escape?", predKind)
	define(KindRegexpLike, "this expression flag?", predKind|fnKind, "REGEXP_LIKE", "RLIKE", "REGEXP")
	define(KindIn, "this expressions? query?", flagPredicate)
	define(KindBetween, "this low high", flagPredicate)
	define(KindExists, "this", flagPredicate)
	define(KindAny, "this", fnKind, "ANY", "SOME")
	define(KindAll, "this", fnKind, "ALL")

	define(KindWindow, "this partition_by? order? spec? alias?", 0)
	define(KindWindowSpec, "kind? start? start_side? end? end_side?", 0)
	define(KindInterval, "this unit?", 0)
	define(KindExtract, "this expression", fnKind, "EXTRACT")
	define(KindBracket, "this expressions", 0)
	define(KindLambda, "this expressions", 0)
	define(KindAnonymous, "this expressions?", 0)

	define(KindCount, "this?", aggKind, "COUNT")
	define(KindSum, "this", aggKind)
	define(KindAvg, "this", aggKind)
	define(KindMin, "this expressions?", aggKind)
	define(KindMax, "this expressions?", aggKind)
	define(KindStddev, "this", aggKind, "STDDEV", "STDDEV_SAMP")
	define(KindVariance, "this", aggKind, "VARIANCE", "VAR_SAMP")
	define(KindApproxDistinct, "this accuracy?", aggKind, "APPROX_DISTINCT", "APPROX_COUNT_DISTINCT")
	define(KindArrayAgg, "this", aggKind)
	define(KindGroupConcat, "this separator?", aggKind, "GROUP_CONCAT", "LISTAGG", "STRING_AGG")
	define(KindCoalesce, "this expressions?", fnKind, "COALESCE", "IFNULL", "NVL")
	define(KindNullif, "this expression", fnKind)
	define(KindGreatest, "this expressions?", fnKind)
	define(KindLeast, "this expressions?", fnKind)
	define(KindConcat, "expressions", fnKind)
	define(KindUpper, "this", fnKind, "UPPER", "UCASE")
	define(KindLower, "this", fnKind, "LOWER", "LCASE")
	define(KindLength, "this", fnKind, "LENGTH", "LEN", "CHAR_LENGTH")
	define(KindSubstring, "this start? length?", fnKind, "SUBSTRING", "SUBSTR")
	define(KindTrim, "this expression? position?", fnKind)
	define(KindReplace, "this expression replacement?", fnKind)
	define(KindStrPosition, "this substr position?", fnKind)
	define(KindLeft, "this expression", fnKind)
	define(KindRight, "this expression", fnKind)
	define(KindSplit, "this expression", fnKind, "SPLIT", "STRING_SPLIT", "STR_SPLIT")
	define(KindAbs, "this", fnKind)
	define(KindRound, "this decimals?", fnKind)
	define(KindCeil, "this", fnKind, "CEIL", "CEILING")
	define(KindFloor, "this", fnKind)
	define(KindLn, "this", fnKind)
	define(KindPow, "this expression", fnKind, "POWER", "POW")
	define(KindSqrt, "this", fnKind)
	define(KindCurrentDate, "", fnKind)
	define(KindCurrentTimestamp, "this?", fnKind, "CURRENT_TIMESTAMP", "NOW", "GETDATE")
	define(KindDateAdd, "this expression unit?", fnKind, "DATE_ADD", "DATEADD")
	define(KindDateSub, "this expression unit?", fnKind, "DATE_SUB", "DATESUB")
	define(KindDateDiff, "this expression unit?", fnKind, "DATE_DIFF", "DATEDIFF")
	define(KindDateTrunc, "unit this", fnKind, "DATE_TRUNC", "DATETRUNC")
	define(KindYear, "this", fnKind)
	define(KindMonth, "this", fnKind)
	define(KindDay, "this", fnKind)
	define(KindDayOfWeek, "this", fnKind, "DAY_OF_WEEK", "DAYOFWEEK")
	define(KindStrToTime, "this format", fnKind, "STR_TO_TIME", "STRTOTIME")
	define(KindStrToDate, "this format", fnKind, "STR_TO_DATE", "STRTODATE")
	define(KindTimeToStr, "this format", fnKind)
	define(KindUnixToTime, "this scale?", fnKind)
	define(KindTimeToUnix, "this", fnKind)
	define(KindToChar, "this format?", fnKind)
	define(KindStartsWith, "this expression", fnKind, "STARTS_WITH", "STARTSWITH")
	define(KindLevenshtein, "this expression", fnKind)
	define(KindRowNumber, "", fnKind)
	define(KindRank, "expressions?", fnKind)
	define(KindLag, "this offset? default?", fnKind)
	define(KindLead, "this offset? default?", fnKind)
}

// Info returns the registry entry for k.
func (k Kind) Info() *KindInfo {
	if k == KindInvalid || int(k) >= len(kindInfos) {
		return &KindInfo{Name: "Invalid", Key: "invalid"}
	}
	return &kindInfos[k]
}

// String returns the PascalCase name of the kind.
func (k Kind) String() string {
	if k == KindInvalid || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", uint16(k))
	}
	return kindNames[k]
}

// Key returns the short lower-case tag of the kind.
func (k Kind) Key() string { return k.Info().Key }

// IsFunction reports whether the kind renders as a function call by default.
func (k Kind) IsFunction() bool { return k.Info().flags&flagFunction != 0 }

// IsBinary reports whether the kind is a two-operand operator (this, expression).
func (k Kind) IsBinary() bool { return k.Info().flags&flagBinary != 0 }

// IsConnector reports whether the kind is AND or OR.
func (k Kind) IsConnector() bool { return k.Info().flags&flagConnector != 0 }

// IsPredicate reports whether the kind yields a boolean.
func (k Kind) IsPredicate() bool { return k.Info().flags&flagPredicate != 0 }

// IsQuery reports whether the kind is a SELECT, set operation or subquery.
func (k Kind) IsQuery() bool { return k.Info().flags&flagQuery != 0 }

// IsAggregate reports whether the kind is an aggregate function.
func (k Kind) IsAggregate() bool { return k.Info().flags&flagAggregate != 0 }

// FunctionName returns the canonical SQL function name of the kind.
// Non-function kinds return an empty string.
func (k Kind) FunctionName() string {
	if names := k.Info().SQLNames; len(names) > 0 {
		return names[0]
	}
	return ""
}

// LookupKind returns the kind registered under the short tag key.
func LookupKind(key string) (Kind, bool) {
	k, ok := kindsByKey[strings.ToLower(key)]
	return k, ok
}

// KindByFunctionName resolves a SQL function spelling to its kind.
func KindByFunctionName(name string) (Kind, bool) {
	k, ok := kindsByFunc[strings.ToUpper(name)]
	return k, ok
}

// Kinds returns every registered kind in registry order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Kind(1); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
