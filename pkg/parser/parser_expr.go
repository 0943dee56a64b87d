package parser

import (
	"fmt"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/spi"
	"github.com/leapstack-labs/glot/pkg/token"
)

// Expression precedence parsing using Pratt parser with dialect-aware precedence.
//
// Precedence levels (from spi package):
//
//	PrecedenceNone       = 0
//	PrecedenceOr         = 1
//	PrecedenceAnd        = 2
//	PrecedenceNot        = 3
//	PrecedenceComparison = 4  (=, <>, <, >, <=, >=, IS, IN, BETWEEN, LIKE, ILIKE)
//	PrecedenceBitwise    = 5  (&, |, ^)
//	PrecedenceAddition   = 6  (+, -, ||)
//	PrecedenceMultiply   = 7  (*, /, %)
//	PrecedenceUnary      = 8  (-, +, ~)
//	PrecedencePostfix    = 9  (::, [])
//
// The parser uses dialect.Precedence() to look up operator precedence and
// dialect.BinaryKind() for the node an operator builds, so dialects add
// operators (ILIKE, ::, //, <=>) without touching the parser. Tokens the
// dialect does not list are not operators at all.
//
// Left-associative chains are folded in a loop, so a long run of
// "a + b + c + ..." does not grow the call stack.

// parseExpression parses an expression.
func (p *Parser) parseExpression() *core.Expr {
	return p.parseExpressionWithPrecedence(spi.PrecedenceNone + 1)
}

// parseExpressionWithPrecedence implements Pratt parsing with dialect-aware precedence.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) *core.Expr {
	left := p.parsePrefixExpr()
	for left != nil && !p.failed() {
		prec := p.dialect.Precedence(p.token.Type)
		if prec == spi.PrecedenceNone || prec < minPrecedence {
			break
		}
		left = p.parseInfixExpr(left, prec)
	}
	return left
}

// parsePrefixExpr parses prefix expressions (unary operators and primary expressions).
func (p *Parser) parsePrefixExpr() *core.Expr {
	var (
		kind core.Kind
		prec int
	)
	switch p.token.Type {
	case token.NOT:
		kind, prec = core.KindNot, spi.PrecedenceNot
	case token.MINUS:
		kind, prec = core.KindNeg, spi.PrecedenceUnary
	case token.TILDE:
		kind, prec = core.KindBitwiseNot, spi.PrecedenceUnary
	case token.PLUS:
		p.nextToken()
		return p.parseExpressionWithPrecedence(spi.PrecedenceUnary)
	default:
		return p.parsePrimary()
	}

	comments := p.takeComments()
	p.nextToken()
	operand := p.parseExpressionWithPrecedence(prec)
	if operand == nil {
		return nil
	}
	e := core.New(kind, core.Args{"this": operand})
	e.AddComments(comments...)
	return e
}

// parseInfixExpr parses an infix expression given the left operand and current precedence.
func (p *Parser) parseInfixExpr(left *core.Expr, prec int) *core.Expr {
	op := p.token
	switch op.Type {
	case token.NOT:
		return p.parseNotInfixExpr(left)
	case token.IS:
		return p.parseIsExpr(left)
	case token.IN:
		p.nextToken()
		return p.parseInExpr(left)
	case token.BETWEEN:
		p.nextToken()
		return p.parseBetweenExpr(left)
	case token.LIKE, token.ILIKE, token.RLIKE:
		p.nextToken()
		return p.parseLikeExpr(left, op.Type)
	case token.DCOLON:
		p.nextToken()
		return p.parseCastSuffix(left)
	case token.LBRACKET:
		p.nextToken()
		return p.parseBracket(left)
	}

	// Dialect infix handler
	if handler := p.dialect.InfixHandler(op.Type); handler != nil {
		p.nextToken()
		e, err := handler(p, left)
		if err != nil {
			p.addError(err.Error())
			return nil
		}
		return e
	}

	kind, ok := p.dialect.BinaryKind(op.Type)
	if !ok {
		p.addError(fmt.Sprintf(ErrUnsupportedOperator, op.Type, p.dialect.Name))
		return nil
	}
	p.nextToken()

	// Right operand binds tighter, which makes the operator left-associative.
	right := p.parseExpressionWithPrecedence(prec + 1)
	if right == nil {
		if !p.failed() {
			p.addError(fmt.Sprintf("expected expression after %s", op.Type))
		}
		return nil
	}
	return core.New(kind, core.Args{"this": left, "expression": right})
}

// negatedPredicates lists the operators NOT may prefix in infix position.
var negatedPredicates = map[token.TokenType]bool{
	token.IN:      true,
	token.BETWEEN: true,
	token.LIKE:    true,
	token.ILIKE:   true,
	token.RLIKE:   true,
}

// parseNotInfixExpr handles NOT as an infix modifier (NOT IN, NOT BETWEEN,
// NOT LIKE). The negation is hoisted: "a NOT IN (1)" becomes NOT (a IN (1)).
func (p *Parser) parseNotInfixExpr(left *core.Expr) *core.Expr {
	p.nextToken() // consume NOT

	if !negatedPredicates[p.token.Type] || p.dialect.Precedence(p.token.Type) == spi.PrecedenceNone {
		p.addError(fmt.Sprintf("expected IN, BETWEEN or LIKE after NOT, got %s", p.describe(p.token)))
		return nil
	}
	inner := p.parseInfixExpr(left, spi.PrecedenceComparison)
	if inner == nil {
		return nil
	}
	return core.New(core.KindNot, core.Args{"this": inner})
}

// parseIsExpr parses IS [NOT] NULL / TRUE / FALSE and
// IS [NOT] DISTINCT FROM.
func (p *Parser) parseIsExpr(left *core.Expr) *core.Expr {
	p.nextToken() // consume IS

	negate := p.match(token.NOT)

	var e *core.Expr
	switch {
	case p.match(token.NULL):
		e = core.New(core.KindIs, core.Args{"this": left, "expression": core.Null()})
	case p.match(token.TRUE):
		e = core.New(core.KindIs, core.Args{"this": left, "expression": core.Boolean(true)})
	case p.match(token.FALSE):
		e = core.New(core.KindIs, core.Args{"this": left, "expression": core.Boolean(false)})
	case p.match(token.DISTINCT):
		if !p.expect(token.FROM) {
			return nil
		}
		right := p.parseExpressionWithPrecedence(spi.PrecedenceBitwise)
		if right == nil {
			return nil
		}
		// IS DISTINCT FROM is the negation of null-safe equality.
		e = core.New(core.KindNullSafeEQ, core.Args{"this": left, "expression": right})
		negate = !negate
	default:
		p.addError(fmt.Sprintf("expected NULL, TRUE, FALSE or DISTINCT FROM after IS, got %s", p.describe(p.token)))
		return nil
	}
	if negate {
		return core.New(core.KindNot, core.Args{"this": e})
	}
	return e
}

// parseInExpr parses the operand list or subquery of IN.
func (p *Parser) parseInExpr(left *core.Expr) *core.Expr {
	if !p.expect(token.LPAREN) {
		return nil
	}
	in := core.New(core.KindIn, core.Args{"this": left})

	if p.startsQuery() {
		q := p.parseQuery()
		if q == nil {
			return nil
		}
		in.Set("query", core.New(core.KindSubquery, core.Args{"this": q}))
	} else {
		in.Set("expressions", p.parseExpressionList())
	}

	if !p.expect(token.RPAREN) {
		return nil
	}
	return in
}

// parseBetweenExpr parses a BETWEEN expression.
func (p *Parser) parseBetweenExpr(left *core.Expr) *core.Expr {
	// Bounds bind tighter than AND so the separator is not swallowed.
	low := p.parseExpressionWithPrecedence(spi.PrecedenceBitwise)
	if low == nil || !p.expect(token.AND) {
		return nil
	}
	high := p.parseExpressionWithPrecedence(spi.PrecedenceBitwise)
	if high == nil {
		return nil
	}
	return core.New(core.KindBetween, core.Args{"this": left, "low": low, "high": high})
}

var likeKinds = map[token.TokenType]core.Kind{
	token.LIKE:  core.KindLike,
	token.ILIKE: core.KindILike,
	token.RLIKE: core.KindRegexpLike,
}

// parseLikeExpr parses a LIKE/ILIKE/RLIKE expression.
func (p *Parser) parseLikeExpr(left *core.Expr, op token.TokenType) *core.Expr {
	pattern := p.parseExpressionWithPrecedence(spi.PrecedenceBitwise)
	if pattern == nil {
		return nil
	}
	like := core.New(likeKinds[op], core.Args{"this": left, "expression": pattern})
	if op != token.RLIKE && p.match(token.ESCAPE) {
		esc := p.parsePrimary()
		if esc == nil {
			return nil
		}
		like.Set("escape", esc)
	}
	return like
}

// parseCastSuffix parses the type after "expr ::".
func (p *Parser) parseCastSuffix(left *core.Expr) *core.Expr {
	to := p.parseDataType()
	if to == nil {
		return nil
	}
	return core.New(core.KindCast, core.Args{"this": left, "to": to})
}

// parseBracket parses a subscript after "expr [".
func (p *Parser) parseBracket(left *core.Expr) *core.Expr {
	exprs := p.parseExpressionList()
	if !p.expect(token.RBRACKET) {
		return nil
	}
	return core.New(core.KindBracket, core.Args{"this": left, "expressions": exprs})
}

// parseExpressionList parses a comma-separated list of expressions.
func (p *Parser) parseExpressionList() []*core.Expr {
	var exprs []*core.Expr
	for {
		e := p.parseExpression()
		if e == nil {
			return exprs
		}
		exprs = append(exprs, e)
		if !p.match(token.COMMA) {
			return exprs
		}
	}
}
