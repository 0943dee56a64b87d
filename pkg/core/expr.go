package core

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Args holds the arguments of a node keyed by argument name.
//
// Legal values are nil (absent), string, bool, int, int64, float64, a single
// child *Expr or an ordered []*Expr sequence.
type Args map[string]any

// Expr is a node of the SQL expression tree.
//
// A node exclusively owns the children stored in its args. The parent,
// argKey and index fields are non-owning back-references that record where
// the node sits inside its parent; they are cleared whenever the node is
// detached. Nodes are not safe for concurrent mutation.
type Expr struct {
	kind   Kind
	args   Args
	parent *Expr
	argKey string
	index  int

	// Comments attached to the node, without delimiters.
	Comments []string

	typ    *Expr
	meta   map[string]any
	hash   uint64
	hashed bool
}

// New builds a node of the given kind and links every child found in args.
func New(kind Kind, args Args) *Expr {
	e := &Expr{kind: kind, args: make(Args, len(args)), index: -1}
	for key, value := range args {
		e.setArg(key, value)
	}
	return e
}

// Kind returns the node's variant tag.
func (e *Expr) Kind() Kind { return e.kind }

// Is reports whether the node is one of the given kinds.
func (e *Expr) Is(kinds ...Kind) bool {
	if e == nil {
		return false
	}
	return slices.Contains(kinds, e.kind)
}

// Parent returns the node that owns e, or nil for a root.
func (e *Expr) Parent() *Expr { return e.parent }

// ArgKey returns the key under which e is stored in its parent.
func (e *Expr) ArgKey() string { return e.argKey }

// Index returns e's position in its parent's sequence, or -1.
func (e *Expr) Index() int { return e.index }

// Arg returns the raw argument value stored under key.
func (e *Expr) Arg(key string) any {
	if e == nil {
		return nil
	}
	return e.args[key]
}

// Has reports whether key holds a non-absent value.
func (e *Expr) Has(key string) bool {
	_, ok := e.args[key]
	return ok
}

// ArgExpr returns the single child stored under key.
func (e *Expr) ArgExpr(key string) *Expr {
	if e == nil {
		return nil
	}
	child, _ := e.args[key].(*Expr)
	return child
}

// ArgExprs returns the child sequence stored under key.
func (e *Expr) ArgExprs(key string) []*Expr {
	if e == nil {
		return nil
	}
	children, _ := e.args[key].([]*Expr)
	return children
}

// This returns the child under the conventional "this" key.
func (e *Expr) This() *Expr { return e.ArgExpr("this") }

// Expression returns the child under the conventional "expression" key.
func (e *Expr) Expression() *Expr { return e.ArgExpr("expression") }

// Expressions returns the sequence under the conventional "expressions" key.
func (e *Expr) Expressions() []*Expr { return e.ArgExprs("expressions") }

// Bool returns the boolean stored under key; absent means false.
func (e *Expr) Bool(key string) bool {
	if e == nil {
		return false
	}
	switch v := e.args[key].(type) {
	case bool:
		return v
	case *Expr:
		return v.kind == KindBoolean && v.Bool("this")
	}
	return false
}

// Text returns the textual content under key. Strings are returned as is,
// identifiers, literals and vars yield their name and anything else yields "".
func (e *Expr) Text(key string) string {
	if e == nil {
		return ""
	}
	switch v := e.args[key].(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case *Expr:
		switch v.kind {
		case KindIdentifier, KindLiteral, KindVar:
			return v.Text("this")
		case KindStar:
			return "*"
		}
	}
	return ""
}

// Name returns the name of the node: the identifier text for identifiers,
// columns, tables and similar nodes.
func (e *Expr) Name() string {
	if e == nil {
		return ""
	}
	switch e.kind {
	case KindStar:
		return "*"
	case KindDot:
		return e.Expression().Name()
	case KindAnonymous:
		return e.Text("this")
	}
	return e.Text("this")
}

// Alias returns the alias name of the node, if any.
func (e *Expr) Alias() string {
	if e == nil {
		return ""
	}
	if alias := e.ArgExpr("alias"); alias != nil && alias.kind == KindTableAlias {
		return alias.Name()
	}
	return e.Text("alias")
}

// AliasOrName returns the alias when present and the name otherwise.
func (e *Expr) AliasOrName() string {
	if alias := e.Alias(); alias != "" {
		return alias
	}
	return e.Name()
}

// OutputName returns the column name a projection produces.
func (e *Expr) OutputName() string {
	switch e.kind {
	case KindAlias, KindColumn, KindIdentifier:
		return e.AliasOrName()
	}
	return ""
}

// IsString reports whether the node is a string literal.
func (e *Expr) IsString() bool {
	return e != nil && e.kind == KindLiteral && e.Bool("is_string")
}

// IsNumber reports whether the node is a numeric literal, optionally negated.
func (e *Expr) IsNumber() bool {
	if e == nil {
		return false
	}
	if e.kind == KindNeg {
		return e.This().IsNumber()
	}
	return e.kind == KindLiteral && !e.Bool("is_string")
}

// IsStar reports whether the node is a star or a column whose name is a star.
func (e *Expr) IsStar() bool {
	if e == nil {
		return false
	}
	return e.kind == KindStar || (e.kind == KindColumn && e.This().Is(KindStar))
}

// Keys returns the argument names present on the node, in canonical order:
// declared arguments first, then any extra keys sorted by name.
func (e *Expr) Keys() []string {
	keys := make([]string, 0, len(e.args))
	seen := make(map[string]struct{}, len(e.args))
	for _, spec := range e.kind.Info().Args {
		if _, ok := e.args[spec.Name]; ok {
			keys = append(keys, spec.Name)
			seen[spec.Name] = struct{}{}
		}
	}
	var extra []string
	for key := range e.args {
		if _, ok := seen[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// Type returns the cached data-type annotation, if any.
func (e *Expr) Type() *Expr { return e.typ }

// SetType caches a data-type annotation on the node. The annotation does not
// participate in equality.
func (e *Expr) SetType(t *Expr) { e.typ = t }

// Meta returns the metadata value stored under key.
func (e *Expr) Meta(key string) any {
	if e.meta == nil {
		return nil
	}
	return e.meta[key]
}

// SetMeta stores a metadata value on the node.
func (e *Expr) SetMeta(key string, value any) {
	if e.meta == nil {
		e.meta = make(map[string]any)
	}
	e.meta[key] = value
}

// AddComments appends comments to the node.
func (e *Expr) AddComments(comments ...string) {
	e.Comments = append(e.Comments, comments...)
}

// PopComments removes and returns the node's comments.
func (e *Expr) PopComments() []string {
	comments := e.Comments
	e.Comments = nil
	return comments
}

// Root returns the topmost ancestor of e.
func (e *Expr) Root() *Expr {
	n := e
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Depth returns the number of ancestors of e.
func (e *Expr) Depth() int {
	depth := 0
	for n := e.parent; n != nil; n = n.parent {
		depth++
	}
	return depth
}

// ParentSelect returns the closest enclosing SELECT.
func (e *Expr) ParentSelect() *Expr {
	return e.FindAncestor(KindSelect)
}

// Unnest strips any Paren wrappers around the node.
func (e *Expr) Unnest() *Expr {
	n := e
	for n != nil && n.kind == KindParen {
		n = n.This()
	}
	return n
}

// UnaliasExpr returns the aliased expression when e is an Alias.
func (e *Expr) UnaliasExpr() *Expr {
	if e != nil && e.kind == KindAlias {
		return e.This()
	}
	return e
}

// Validate reports the required arguments that are missing.
func (e *Expr) Validate() []string {
	var missing []string
	for _, spec := range e.kind.Info().Args {
		if spec.Required && !e.Has(spec.Name) {
			missing = append(missing, fmt.Sprintf("required argument %q missing for %s", spec.Name, e.kind))
		}
	}
	return missing
}

// String returns a debug representation of the tree.
func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	writeDebug(&b, e)
	return b.String()
}

func writeDebug(b *strings.Builder, e *Expr) {
	b.WriteString(e.kind.String())
	b.WriteByte('(')
	for i, key := range e.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(key)
		b.WriteByte('=')
		switch v := e.args[key].(type) {
		case *Expr:
			writeDebug(b, v)
		case []*Expr:
			b.WriteByte('[')
			for j, child := range v {
				if j > 0 {
					b.WriteString(", ")
				}
				writeDebug(b, child)
			}
			b.WriteByte(']')
		default:
			fmt.Fprint(b, v)
		}
	}
	b.WriteByte(')')
}
