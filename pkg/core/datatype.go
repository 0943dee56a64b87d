package core

import (
	"fmt"
	"strings"
	"unicode"
)

// Type is a canonical data type tag carried by DataType nodes.
type Type string

// Data type vocabulary.
const (
	TypeUnknown     Type = "UNKNOWN"
	TypeUserDefined Type = "USERDEFINED"
	TypeNull        Type = "NULL"

	TypeBoolean Type = "BOOLEAN"
	TypeBit     Type = "BIT"

	TypeTinyInt   Type = "TINYINT"
	TypeSmallInt  Type = "SMALLINT"
	TypeMediumInt Type = "MEDIUMINT"
	TypeInt       Type = "INT"
	TypeBigInt    Type = "BIGINT"
	TypeInt128    Type = "INT128"
	TypeInt256    Type = "INT256"
	TypeHugeInt   Type = "HUGEINT"

	TypeUTinyInt   Type = "UTINYINT"
	TypeUSmallInt  Type = "USMALLINT"
	TypeUMediumInt Type = "UMEDIUMINT"
	TypeUInt       Type = "UINT"
	TypeUBigInt    Type = "UBIGINT"
	TypeUInt128    Type = "UINT128"
	TypeUInt256    Type = "UINT256"
	TypeUHugeInt   Type = "UHUGEINT"

	TypeSerial      Type = "SERIAL"
	TypeSmallSerial Type = "SMALLSERIAL"
	TypeBigSerial   Type = "BIGSERIAL"

	TypeFloat  Type = "FLOAT"
	TypeDouble Type = "DOUBLE"

	TypeDecimal    Type = "DECIMAL"
	TypeDecimal32  Type = "DECIMAL32"
	TypeDecimal64  Type = "DECIMAL64"
	TypeDecimal128 Type = "DECIMAL128"
	TypeDecimal256 Type = "DECIMAL256"
	TypeUDecimal   Type = "UDECIMAL"
	TypeBigDecimal Type = "BIGDECIMAL"
	TypeMoney      Type = "MONEY"
	TypeSmallMoney Type = "SMALLMONEY"

	TypeChar       Type = "CHAR"
	TypeNChar      Type = "NCHAR"
	TypeVarchar    Type = "VARCHAR"
	TypeNVarchar   Type = "NVARCHAR"
	TypeBPChar     Type = "BPCHAR"
	TypeText       Type = "TEXT"
	TypeTinyText   Type = "TINYTEXT"
	TypeMediumText Type = "MEDIUMTEXT"
	TypeLongText   Type = "LONGTEXT"
	TypeName       Type = "NAME"

	TypeBinary     Type = "BINARY"
	TypeVarbinary  Type = "VARBINARY"
	TypeBlob       Type = "BLOB"
	TypeTinyBlob   Type = "TINYBLOB"
	TypeMediumBlob Type = "MEDIUMBLOB"
	TypeLongBlob   Type = "LONGBLOB"
	TypeImage      Type = "IMAGE"

	TypeDate          Type = "DATE"
	TypeDate32        Type = "DATE32"
	TypeDatetime      Type = "DATETIME"
	TypeDatetime2     Type = "DATETIME2"
	TypeDatetime64    Type = "DATETIME64"
	TypeSmallDatetime Type = "SMALLDATETIME"
	TypeTime          Type = "TIME"
	TypeTimeTZ        Type = "TIMETZ"
	TypeTimestamp     Type = "TIMESTAMP"
	TypeTimestampTZ   Type = "TIMESTAMPTZ"
	TypeTimestampLTZ  Type = "TIMESTAMPLTZ"
	TypeTimestampNTZ  Type = "TIMESTAMPNTZ"
	TypeTimestampS    Type = "TIMESTAMP_S"
	TypeTimestampMS   Type = "TIMESTAMP_MS"
	TypeTimestampNS   Type = "TIMESTAMP_NS"
	TypeInterval      Type = "INTERVAL"
	TypeYear          Type = "YEAR"

	TypeArray  Type = "ARRAY"
	TypeList   Type = "LIST"
	TypeMap    Type = "MAP"
	TypeStruct Type = "STRUCT"
	TypeObject Type = "OBJECT"
	TypeNested Type = "NESTED"
	TypeUnion  Type = "UNION"

	TypeJSON             Type = "JSON"
	TypeJSONB            Type = "JSONB"
	TypeVariant          Type = "VARIANT"
	TypeSuper            Type = "SUPER"
	TypeUUID             Type = "UUID"
	TypeUniqueIdentifier Type = "UNIQUEIDENTIFIER"
	TypeXML              Type = "XML"
	TypeHStore           Type = "HSTORE"
	TypeEnum             Type = "ENUM"
	TypeSetType          Type = "SET"
	TypeRowVersion       Type = "ROWVERSION"
	TypeVector           Type = "VECTOR"

	TypeInet      Type = "INET"
	TypeCIDR      Type = "CIDR"
	TypeIPAddress Type = "IPADDRESS"
	TypeIPv4      Type = "IPV4"
	TypeIPv6      Type = "IPV6"

	TypeGeography Type = "GEOGRAPHY"
	TypeGeometry  Type = "GEOMETRY"
	TypePoint     Type = "POINT"

	TypeInt4Range  Type = "INT4RANGE"
	TypeInt8Range  Type = "INT8RANGE"
	TypeNumRange   Type = "NUMRANGE"
	TypeTsRange    Type = "TSRANGE"
	TypeTsTZRange  Type = "TSTZRANGE"
	TypeDateRange  Type = "DATERANGE"
	TypeOID        Type = "OID"
	TypeRegClass   Type = "REGCLASS"
	TypeTDigest    Type = "TDIGEST"
	TypeHLLSketch  Type = "HLLSKETCH"
	TypeAggState   Type = "AGGREGATEFUNCTION"
	TypeNullable   Type = "NULLABLE"
	TypeLowCard    Type = "LOWCARDINALITY"
	TypeFixedStr   Type = "FIXEDSTRING"
	TypeBigNumeric Type = "BIGNUMERIC"
)

// TypeSet is a set of data type tags.
type TypeSet map[Type]struct{}

// Contains reports whether t is a member of the set.
func (s TypeSet) Contains(t Type) bool {
	_, ok := s[t]
	return ok
}

func typeSet(groups ...[]Type) TypeSet {
	s := make(TypeSet)
	for _, g := range groups {
		for _, t := range g {
			s[t] = struct{}{}
		}
	}
	return s
}

var (
	textTypes = []Type{
		TypeChar, TypeNChar, TypeVarchar, TypeNVarchar, TypeBPChar, TypeText,
		TypeTinyText, TypeMediumText, TypeLongText, TypeName, TypeFixedStr,
	}
	signedIntegerTypes = []Type{
		TypeTinyInt, TypeSmallInt, TypeMediumInt, TypeInt, TypeBigInt,
		TypeInt128, TypeInt256, TypeHugeInt, TypeSerial, TypeSmallSerial, TypeBigSerial,
	}
	unsignedIntegerTypes = []Type{
		TypeUTinyInt, TypeUSmallInt, TypeUMediumInt, TypeUInt, TypeUBigInt,
		TypeUInt128, TypeUInt256, TypeUHugeInt,
	}
	floatTypes = []Type{TypeFloat, TypeDouble}
	realTypes  = []Type{
		TypeDecimal, TypeDecimal32, TypeDecimal64, TypeDecimal128, TypeDecimal256,
		TypeUDecimal, TypeBigDecimal, TypeBigNumeric, TypeMoney, TypeSmallMoney,
	}
	temporalTypes = []Type{
		TypeDate, TypeDate32, TypeDatetime, TypeDatetime2, TypeDatetime64,
		TypeSmallDatetime, TypeTime, TypeTimeTZ, TypeTimestamp, TypeTimestampTZ,
		TypeTimestampLTZ, TypeTimestampNTZ, TypeTimestampS, TypeTimestampMS, TypeTimestampNS,
	}
	nestedTypes = []Type{
		TypeArray, TypeList, TypeMap, TypeStruct, TypeObject, TypeNested, TypeUnion,
	}
)

// Type groups used by classification queries.
var (
	TextTypes            = typeSet(textTypes)
	SignedIntegerTypes   = typeSet(signedIntegerTypes)
	UnsignedIntegerTypes = typeSet(unsignedIntegerTypes)
	IntegerTypes         = typeSet(signedIntegerTypes, unsignedIntegerTypes, []Type{TypeBit})
	FloatTypes           = typeSet(floatTypes)
	RealTypes            = typeSet(floatTypes, realTypes)
	NumericTypes         = typeSet(signedIntegerTypes, unsignedIntegerTypes, []Type{TypeBit}, floatTypes, realTypes)
	TemporalTypes        = typeSet(temporalTypes)
	NestedTypes          = typeSet(nestedTypes)
)

var knownTypes = typeSet(textTypes, signedIntegerTypes, unsignedIntegerTypes, floatTypes, realTypes, temporalTypes, nestedTypes, []Type{
	TypeUnknown, TypeUserDefined, TypeNull, TypeBoolean, TypeBit, TypeBinary, TypeVarbinary,
	TypeBlob, TypeTinyBlob, TypeMediumBlob, TypeLongBlob, TypeImage, TypeInterval, TypeYear,
	TypeJSON, TypeJSONB, TypeVariant, TypeSuper, TypeUUID, TypeUniqueIdentifier, TypeXML,
	TypeHStore, TypeEnum, TypeSetType, TypeRowVersion, TypeVector, TypeInet, TypeCIDR,
	TypeIPAddress, TypeIPv4, TypeIPv6, TypeGeography, TypeGeometry, TypePoint,
	TypeInt4Range, TypeInt8Range, TypeNumRange, TypeTsRange, TypeTsTZRange, TypeDateRange,
	TypeOID, TypeRegClass, TypeTDigest, TypeHLLSketch, TypeAggState, TypeNullable, TypeLowCard,
})

// typeAliases maps alternative spellings to canonical tags.
var typeAliases = map[string]Type{
	"INTEGER":                        TypeInt,
	"INT4":                           TypeInt,
	"INT32":                          TypeInt,
	"SIGNED":                         TypeInt,
	"INT2":                           TypeSmallInt,
	"INT16":                          TypeSmallInt,
	"SHORT":                          TypeSmallInt,
	"INT1":                           TypeTinyInt,
	"BYTE":                           TypeTinyInt,
	"INT8":                           TypeBigInt,
	"INT64":                          TypeBigInt,
	"LONG":                           TypeBigInt,
	"UINTEGER":                       TypeUInt,
	"UNSIGNED":                       TypeUInt,
	"BOOL":                           TypeBoolean,
	"LOGICAL":                        TypeBoolean,
	"REAL":                           TypeFloat,
	"FLOAT4":                         TypeFloat,
	"FLOAT8":                         TypeDouble,
	"FLOAT64":                        TypeDouble,
	"DOUBLE PRECISION":               TypeDouble,
	"NUMERIC":                        TypeDecimal,
	"DEC":                            TypeDecimal,
	"NUMBER":                         TypeDecimal,
	"STRING":                         TypeText,
	"CHARACTER":                      TypeChar,
	"CHARACTER VARYING":              TypeVarchar,
	"CHAR VARYING":                   TypeVarchar,
	"NATIONAL CHARACTER VARYING":     TypeNVarchar,
	"VARCHAR2":                       TypeVarchar,
	"NVARCHAR2":                      TypeNVarchar,
	"BYTEA":                          TypeVarbinary,
	"BYTES":                          TypeBinary,
	"TIMESTAMP WITH TIME ZONE":       TypeTimestampTZ,
	"TIMESTAMP WITHOUT TIME ZONE":    TypeTimestamp,
	"TIMESTAMP WITH LOCAL TIME ZONE": TypeTimestampLTZ,
	"TIME WITH TIME ZONE":            TypeTimeTZ,
	"TIME WITHOUT TIME ZONE":         TypeTime,
	"TIMESTAMP_LTZ":                  TypeTimestampLTZ,
	"TIMESTAMP_NTZ":                  TypeTimestampNTZ,
	"TIMESTAMP_TZ":                   TypeTimestampTZ,
	"BIGNUMERIC":                     TypeBigDecimal,
	"SERIAL4":                        TypeSerial,
	"SERIAL8":                        TypeBigSerial,
}

// LookupType resolves a type name, including multi-word and alternative
// spellings, to its canonical tag.
func LookupType(name string) (Type, bool) {
	upper := strings.ToUpper(strings.Join(strings.Fields(name), " "))
	if t, ok := typeAliases[upper]; ok {
		return t, true
	}
	t := Type(upper)
	return t, knownTypes.Contains(t)
}

// DataType builds a DataType node with optional parameters, which may be
// nodes or Go values converted with Convert.
func DataType(t Type, params ...any) *Expr {
	var exprs []*Expr
	for _, p := range params {
		exprs = append(exprs, dataTypeParam(p))
	}
	return New(KindDataType, Args{"this": string(t), "expressions": exprs})
}

func dataTypeParam(p any) *Expr {
	if e, ok := p.(*Expr); ok {
		if e.kind == KindDataType || e.kind == KindDataTypeParam || e.kind == KindColumnDef {
			return e
		}
		return New(KindDataTypeParam, Args{"this": e})
	}
	return New(KindDataTypeParam, Args{"this": Convert(p)})
}

// TypeOf returns the canonical tag of a DataType node, or TypeUnknown.
func (e *Expr) TypeOf() Type {
	if e == nil || e.kind != KindDataType {
		return TypeUnknown
	}
	return Type(e.Text("this"))
}

// IsType reports whether e is a DataType node of one of the given types.
// For other nodes the cached type annotation is consulted.
func (e *Expr) IsType(types ...Type) bool {
	if e == nil {
		return false
	}
	dt := e
	if e.kind != KindDataType {
		dt = e.typ
	}
	if dt == nil {
		return false
	}
	t := dt.TypeOf()
	for _, want := range types {
		if t == want {
			return true
		}
	}
	return false
}

// IsTextType reports whether t is a character type.
func IsTextType(t Type) bool { return TextTypes.Contains(t) }

// IsIntegerType reports whether t is a signed or unsigned integer type.
func IsIntegerType(t Type) bool { return IntegerTypes.Contains(t) }

// IsNumericType reports whether t is any numeric type.
func IsNumericType(t Type) bool { return NumericTypes.Contains(t) }

// IsTemporalType reports whether t is a date or time type.
func IsTemporalType(t Type) bool { return TemporalTypes.Contains(t) }

// IsNestedType reports whether t is a structured type.
func IsNestedType(t Type) bool { return NestedTypes.Contains(t) }

// BuildDataType parses a data type string such as "DECIMAL(10, 2)",
// "ARRAY<INT>", "STRUCT<a INT, b TEXT>" or "INT[]" into a DataType node.
// Unrecognized names become USERDEFINED types that keep their spelling.
func BuildDataType(s string) (*Expr, error) {
	p := &typeParser{src: s}
	p.scan()
	dt, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.toks) {
		return nil, fmt.Errorf("invalid data type %q: unexpected %q", s, p.toks[p.pos])
	}
	return dt, nil
}

type typeParser struct {
	src  string
	toks []string
	pos  int
}

func (p *typeParser) scan() {
	s := p.src
	for i := 0; i < len(s); {
		c := rune(s[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case strings.ContainsRune("()<>,[]", c):
			p.toks = append(p.toks, string(c))
			i++
		default:
			j := i
			for j < len(s) && !unicode.IsSpace(rune(s[j])) && !strings.ContainsRune("()<>,[]", rune(s[j])) {
				j++
			}
			p.toks = append(p.toks, s[i:j])
			i = j
		}
	}
}

func (p *typeParser) peek() string {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return ""
}

func (p *typeParser) next() string {
	t := p.peek()
	p.pos++
	return t
}

func (p *typeParser) expect(tok string) error {
	if got := p.next(); got != tok {
		return fmt.Errorf("invalid data type %q: expected %q, got %q", p.src, tok, got)
	}
	return nil
}

func isWord(tok string) bool {
	return tok != "" && !strings.ContainsAny(tok, "()<>,[]")
}

func (p *typeParser) parseType() (*Expr, error) {
	if !isWord(p.peek()) {
		return nil, fmt.Errorf("invalid data type %q: expected a type name", p.src)
	}
	// Greedily take the longest run of words that still names a type.
	start := p.pos
	end := p.pos
	for end < len(p.toks) && isWord(p.toks[end]) {
		end++
	}
	name := p.toks[start]
	typ, known := LookupType(name)
	used := start + 1
	for i := end; i > start+1; i-- {
		if t, ok := LookupType(strings.Join(p.toks[start:i], " ")); ok {
			typ, known, used = t, true, i
			break
		}
	}
	p.pos = used

	args := Args{"this": string(typ)}
	if !known {
		args["this"] = string(TypeUserDefined)
		args["kind"] = name
	}

	var exprs []*Expr
	if p.peek() == "(" {
		p.next()
		for p.peek() != ")" {
			tok := p.next()
			if tok == "" {
				return nil, fmt.Errorf("invalid data type %q: unterminated parameters", p.src)
			}
			if tok != "," {
				exprs = append(exprs, New(KindDataTypeParam, Args{"this": typeParamValue(tok)}))
			}
		}
		p.next()
	}
	if p.peek() == "<" {
		p.next()
		args["nested"] = true
		for {
			child, err := p.parseNestedMember(typ)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, child)
			if p.peek() != "," {
				break
			}
			p.next()
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
	}
	args["expressions"] = exprs
	dt := New(KindDataType, args)

	for p.peek() == "[" {
		p.next()
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		dt = New(KindDataType, Args{"this": string(TypeArray), "expressions": []*Expr{dt}, "nested": true})
	}
	return dt, nil
}

func (p *typeParser) parseNestedMember(parent Type) (*Expr, error) {
	if parent == TypeStruct || parent == TypeObject || parent == TypeNested {
		field := p.next()
		if !isWord(field) {
			return nil, fmt.Errorf("invalid data type %q: expected a field name", p.src)
		}
		kind, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return New(KindColumnDef, Args{"this": ToIdentifier(field, false), "kind": kind}), nil
	}
	return p.parseType()
}

func typeParamValue(tok string) *Expr {
	if tok != "" && strings.IndexFunc(tok, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		return New(KindLiteral, Args{"this": tok})
	}
	return New(KindVar, Args{"this": strings.ToUpper(tok)})
}
