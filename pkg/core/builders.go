package core

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var safeIdentifier = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*$`)

// ToIdentifier builds an identifier. Names that are not plain words are
// always quoted.
func ToIdentifier(name string, quoted bool) *Expr {
	args := Args{"this": name}
	if quoted || !safeIdentifier.MatchString(name) {
		args["quoted"] = true
	}
	return New(KindIdentifier, args)
}

// identifierOf accepts an identifier node or a name.
func identifierOf(v any) (*Expr, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		if val == "" {
			return nil, nil
		}
		if val == "*" {
			return New(KindStar, nil), nil
		}
		return ToIdentifier(val, false), nil
	case *Expr:
		return val, nil
	}
	return nil, fmt.Errorf("%w: cannot use %T as an identifier", ErrInvalidArgument, v)
}

func splitPath(path string) []string {
	return strings.Split(path, ".")
}

// ToColumn builds a column from a dotted path such as "db.tbl.col".
func ToColumn(path string) *Expr {
	parts := splitPath(path)
	col, _ := Column(parts[len(parts)-1], reverseQualifiers(parts[:len(parts)-1])...)
	return col
}

// ToTable builds a table from a dotted path such as "catalog.db.tbl".
func ToTable(path string) *Expr {
	parts := splitPath(path)
	args := Args{}
	keys := []string{"this", "db", "catalog"}
	for i := 0; i < len(parts) && i < len(keys); i++ {
		args[keys[i]] = ToIdentifier(parts[len(parts)-1-i], false)
	}
	return New(KindTable, args)
}

func reverseQualifiers(parts []string) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[len(parts)-1-i] = p
	}
	return out
}

// Column builds a column reference. Qualifiers are given innermost first:
// table, then db, then catalog.
func Column(col any, qualifiers ...string) (*Expr, error) {
	this, err := identifierOf(col)
	if err != nil {
		return nil, err
	}
	args := Args{"this": this}
	keys := []string{"table", "db", "catalog"}
	for i, q := range qualifiers {
		if i >= len(keys) {
			return nil, fmt.Errorf("%w: column has at most three qualifiers", ErrInvalidArgument)
		}
		if q != "" {
			args[keys[i]] = ToIdentifier(q, false)
		}
	}
	return New(KindColumn, args), nil
}

// Star builds a bare *.
func Star() *Expr { return New(KindStar, nil) }

// String builds a string literal.
func String(s string) *Expr {
	return New(KindLiteral, Args{"this": s, "is_string": true})
}

// Number builds a numeric literal. Negative values become a negation of a
// positive literal. Floats are rendered in their shortest exact decimal form.
func Number(v any) *Expr {
	var text string
	switch n := v.(type) {
	case int:
		text = strconv.Itoa(n)
	case int32:
		text = strconv.FormatInt(int64(n), 10)
	case int64:
		text = strconv.FormatInt(n, 10)
	case uint:
		text = strconv.FormatUint(uint64(n), 10)
	case uint64:
		text = strconv.FormatUint(n, 10)
	case float32:
		text = decimal.NewFromFloat32(n).String()
	case float64:
		if math.IsInf(n, 0) || math.IsNaN(n) {
			return New(KindCast, Args{"this": String(strconv.FormatFloat(n, 'f', -1, 64)), "to": DataType(TypeDouble)})
		}
		text = decimal.NewFromFloat(n).String()
	case decimal.Decimal:
		text = n.String()
	case string:
		if d, err := decimal.NewFromString(n); err == nil && !strings.ContainsAny(n, "eE") {
			text = d.String()
		} else {
			text = n
		}
	default:
		text = fmt.Sprint(v)
	}
	if rest, ok := strings.CutPrefix(text, "-"); ok {
		return New(KindNeg, Args{"this": New(KindLiteral, Args{"this": rest})})
	}
	return New(KindLiteral, Args{"this": text})
}

// Boolean builds TRUE or FALSE.
func Boolean(b bool) *Expr { return New(KindBoolean, Args{"this": b}) }

// Null builds NULL.
func Null() *Expr { return New(KindNull, nil) }

// Var builds a bare keyword-like word such as a date part.
func Var(name string) *Expr { return New(KindVar, Args{"this": name}) }

// Paren wraps e in parentheses.
func Paren(e *Expr) *Expr { return New(KindParen, Args{"this": e}) }

// Tuple builds a parenthesized list.
func Tuple(items ...*Expr) *Expr { return New(KindTuple, Args{"expressions": items}) }

// Placeholder builds a bind parameter. An empty name yields "?".
func Placeholder(name string) *Expr {
	if name == "" {
		return New(KindPlaceholder, nil)
	}
	return New(KindPlaceholder, Args{"this": name})
}

// Convert turns a Go value into a literal node. Nodes are returned as is.
func Convert(v any) *Expr {
	switch val := v.(type) {
	case nil:
		return Null()
	case *Expr:
		return val
	case string:
		return String(val)
	case bool:
		return Boolean(val)
	case int, int32, int64, uint, uint64, float32, float64, decimal.Decimal:
		return Number(val)
	}
	return String(fmt.Sprint(v))
}

// MaybeParse turns v into a node. Nodes are returned unchanged, plain
// dotted names become columns (or tables when kind is KindTable), other
// strings are parsed with the registered parser and Go scalars become
// literals.
func MaybeParse(v any, kind Kind, dialect string) (*Expr, error) {
	switch val := v.(type) {
	case *Expr:
		if val == nil {
			return nil, fmt.Errorf("%w: nil node", ErrInvalidArgument)
		}
		return val, nil
	case string:
		if isPlainPath(val) {
			switch kind {
			case KindTable:
				return ToTable(val), nil
			case KindInvalid, KindColumn, KindOrdered:
				return ToColumn(val), nil
			}
		}
		return ParseInto(kind, val, dialect)
	case Type:
		return DataType(val), nil
	}
	return Convert(v), nil
}

func isPlainPath(s string) bool {
	for _, part := range strings.Split(s, ".") {
		if !safeIdentifier.MatchString(part) {
			return false
		}
	}
	return s != ""
}

// Condition parses or converts v into a boolean expression.
func Condition(v any, dialect string) (*Expr, error) {
	return MaybeParse(v, KindInvalid, dialect)
}

// wrapConnector parenthesizes AND/OR operands so they keep their grouping
// when combined.
func wrapConnector(e *Expr) *Expr {
	if e.kind.IsConnector() {
		return Paren(e)
	}
	return e
}

func combine(kind Kind, operands []any, dialect string) (*Expr, error) {
	var conds []*Expr
	for _, op := range operands {
		if op == nil {
			continue
		}
		if e, ok := op.(*Expr); ok && e == nil {
			continue
		}
		c, err := Condition(op, dialect)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	if len(conds) == 0 {
		return nil, ErrEmptyCondition
	}
	this := conds[0]
	if len(conds) > 1 {
		this = wrapConnector(this)
	}
	for _, c := range conds[1:] {
		this = New(kind, Args{"this": this, "expression": wrapConnector(c)})
	}
	return this, nil
}

// And combines conditions with AND, parenthesizing nested connectors.
func And(conds ...any) (*Expr, error) { return combine(KindAnd, conds, "") }

// Or combines conditions with OR, parenthesizing nested connectors.
func Or(conds ...any) (*Expr, error) { return combine(KindOr, conds, "") }

// Not negates a condition.
func Not(cond any) (*Expr, error) {
	c, err := Condition(cond, "")
	if err != nil {
		return nil, err
	}
	return New(KindNot, Args{"this": wrapConnector(c)}), nil
}

// Binary builds a two-operand node of the given kind.
func Binary(kind Kind, left, right any) (*Expr, error) {
	if !kind.IsBinary() {
		return nil, fmt.Errorf("%w: %s is not a binary kind", ErrInvalidArgument, kind)
	}
	l, err := MaybeParse(left, KindInvalid, "")
	if err != nil {
		return nil, err
	}
	r, err := MaybeParse(right, KindInvalid, "")
	if err != nil {
		return nil, err
	}
	return New(kind, Args{"this": l, "expression": r}), nil
}

// Cast builds CAST(expr AS to). to may be a type string, a Type or a
// DataType node.
func Cast(expr any, to any) (*Expr, error) {
	return castOf(KindCast, expr, to)
}

// TryCast builds TRY_CAST(expr AS to).
func TryCast(expr any, to any) (*Expr, error) {
	return castOf(KindTryCast, expr, to)
}

func castOf(kind Kind, expr any, to any) (*Expr, error) {
	this, err := MaybeParse(expr, KindInvalid, "")
	if err != nil {
		return nil, err
	}
	var dt *Expr
	switch t := to.(type) {
	case string:
		dt, err = BuildDataType(t)
		if err != nil {
			return nil, err
		}
	case Type:
		dt = DataType(t)
	case *Expr:
		dt = t
	default:
		return nil, fmt.Errorf("%w: cannot use %T as a data type", ErrInvalidArgument, to)
	}
	return New(kind, Args{"this": this, "to": dt}), nil
}

// Alias builds "expr AS alias".
func Alias(expr any, alias string, quoted bool) (*Expr, error) {
	this, err := MaybeParse(expr, KindInvalid, "")
	if err != nil {
		return nil, err
	}
	if alias == "" {
		return this, nil
	}
	return New(KindAlias, Args{"this": this, "alias": ToIdentifier(alias, quoted)}), nil
}

// TableAlias builds the alias clause of a table or subquery.
func TableAlias(alias string, columns ...string) *Expr {
	var cols []*Expr
	for _, c := range columns {
		cols = append(cols, ToIdentifier(c, false))
	}
	return New(KindTableAlias, Args{"this": ToIdentifier(alias, false), "columns": cols})
}

// Subquery wraps a query in parentheses, optionally aliased.
func Subquery(query *Expr, alias string) *Expr {
	args := Args{"this": query}
	if alias != "" {
		args["alias"] = TableAlias(alias)
	}
	return New(KindSubquery, args)
}

// Dot builds a dotted access chain from at least two parts.
func Dot(parts ...*Expr) (*Expr, error) {
	if len(parts) < 2 {
		return nil, ErrTooFewParts
	}
	this := New(KindDot, Args{"this": parts[0], "expression": parts[1]})
	for _, p := range parts[2:] {
		this = New(KindDot, Args{"this": this, "expression": p})
	}
	return this, nil
}

// Func builds a function call. Names known to the kind registry produce
// their dedicated kind with arguments bound in declared order; anything
// else produces an Anonymous call.
func Func(name string, args ...any) (*Expr, error) {
	var exprs []*Expr
	for _, a := range args {
		e, err := MaybeParse(a, KindInvalid, "")
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	if kind, ok := KindByFunctionName(name); ok {
		return FromArgList(kind, exprs), nil
	}
	return New(KindAnonymous, Args{"this": name, "expressions": exprs}), nil
}

// FromArgList binds positional arguments to the declared arguments of
// kind. When the last declared argument is "expressions" it absorbs any
// surplus arguments.
func FromArgList(kind Kind, list []*Expr) *Expr {
	specs := kind.Info().Args
	args := Args{}
	for i, spec := range specs {
		if i >= len(list) {
			break
		}
		if spec.Name == "expressions" && i == len(specs)-1 {
			args[spec.Name] = list[i:]
			break
		}
		args[spec.Name] = list[i]
	}
	if n := len(specs); n > 0 && len(list) > n && specs[n-1].Name != "expressions" {
		args["expressions"] = list[n:]
	}
	return New(kind, args)
}

func setOperation(kind Kind, left, right any, distinct bool) (*Expr, error) {
	l, err := MaybeParse(left, KindSelect, "")
	if err != nil {
		return nil, err
	}
	r, err := MaybeParse(right, KindSelect, "")
	if err != nil {
		return nil, err
	}
	return New(kind, Args{"this": l, "expression": r, "distinct": distinct}), nil
}

// Union builds "left UNION [ALL] right".
func Union(left, right any, distinct bool) (*Expr, error) {
	return setOperation(KindUnion, left, right, distinct)
}

// Intersect builds "left INTERSECT [ALL] right".
func Intersect(left, right any, distinct bool) (*Expr, error) {
	return setOperation(KindIntersect, left, right, distinct)
}

// Except builds "left EXCEPT [ALL] right".
func Except(left, right any, distinct bool) (*Expr, error) {
	return setOperation(KindExcept, left, right, distinct)
}

// Interval builds INTERVAL 'value' unit.
func Interval(value any, unit string) *Expr {
	args := Args{"this": Convert(value)}
	if unit != "" {
		args["unit"] = Var(strings.ToUpper(unit))
	}
	return New(KindInterval, args)
}
