// Package spi holds the hooks dialects plug into the parser: clause,
// operator and function handlers plus the parser surface they drive.
package spi

import (
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/token"
)

// ParserOps is the parser as seen by a dialect handler.
type ParserOps interface {
	Token() token.Token
	Peek() token.Token

	Match(t token.TokenType) bool
	Expect(t token.TokenType) error
	NextToken()
	Check(t token.TokenType) bool

	ParseExpression() (*core.Expr, error)
	ParseExpressionList() ([]*core.Expr, error)
	ParseOrderByList() ([]*core.Expr, error)
	ParseIdentifier() (*core.Expr, error)
	ParseDataType() (*core.Expr, error)
	ParseQuery() (*core.Expr, error)

	AddError(msg string)
	Position() token.Position
}

// ClauseHandler parses the body of a clause whose keyword was already
// consumed and returns the clause node (Where, Group, Order, Limit, ...).
type ClauseHandler func(p ParserOps) (*core.Expr, error)

// InfixHandler parses the right side of a consumed infix operator.
type InfixHandler func(p ParserOps, left *core.Expr) (*core.Expr, error)

// PrefixHandler parses the operand of a consumed prefix operator.
type PrefixHandler func(p ParserOps) (*core.Expr, error)

// FunctionBuilder turns the parsed arguments of a function call into a
// node. Dialects use it to map their spellings onto canonical kinds, for
// example translating a native format string into strftime.
type FunctionBuilder func(args []*core.Expr) (*core.Expr, error)

// Binding powers, loosest first.
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 1
	PrecedenceAnd        = 2
	PrecedenceNot        = 3
	PrecedenceComparison = 4 // =, <>, <, >, <=, >=, LIKE, ILIKE, IN, BETWEEN
	PrecedenceBitwise    = 5 // &, |, ^
	PrecedenceAddition   = 6 // +, -, ||
	PrecedenceMultiply   = 7 // *, /, %
	PrecedenceUnary      = 8 // -, +, NOT
	PrecedencePostfix    = 9 // ::, [], ()
)

// ClauseSlot names the Select argument a dialect clause handler fills.
type ClauseSlot int

const (
	SlotWhere ClauseSlot = iota
	SlotGroupBy
	SlotHaving
	SlotQualify
	SlotOrderBy
	SlotLimit
	SlotOffset
	SlotFetch // FETCH FIRST n ROWS, stored under "limit"
)

var slots = [...]struct{ name, key string }{
	SlotWhere:   {"WHERE", "where"},
	SlotGroupBy: {"GROUP BY", "group"},
	SlotHaving:  {"HAVING", "having"},
	SlotQualify: {"QUALIFY", "qualify"},
	SlotOrderBy: {"ORDER BY", "order"},
	SlotLimit:   {"LIMIT", "limit"},
	SlotOffset:  {"OFFSET", "offset"},
	SlotFetch:   {"FETCH", "limit"},
}

func (s ClauseSlot) String() string {
	if s < 0 || int(s) >= len(slots) {
		return "UNKNOWN"
	}
	return slots[s].name
}

// Key returns the Select argument the slot fills, or "" for an unknown slot.
func (s ClauseSlot) Key() string {
	if s < 0 || int(s) >= len(slots) {
		return ""
	}
	return slots[s].key
}
