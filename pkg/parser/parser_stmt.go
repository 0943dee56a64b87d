package parser

import (
	"fmt"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/token"
)

// Statement parsing: WITH clause, CTEs, set operations, SELECT, ORDER BY.
//
// Grammar:
//
//	statement     → query | projection
//	query         → [WITH [RECURSIVE] cte_list] query_term (set_op query_term)*
//	cte_list      → cte ("," cte)*
//	cte           → identifier ["(" ident_list ")"] AS "(" query ")"
//	set_op        → (UNION | INTERSECT | EXCEPT) [ALL | DISTINCT]
//	query_term    → select_core | "(" query ")"
//	select_core   → SELECT [DISTINCT [ON "(" expr_list ")"] | ALL] [TOP n] select_list
//	                [FROM from_clause]
//	                [clauses based on dialect sequence]
//	select_list   → projection ("," projection)*
//	projection    → "*" | table "." "*" | expr [[AS] identifier]
//	order_list    → order_item ("," order_item)*
//	order_item    → expr [ASC|DESC] [NULLS FIRST|LAST]
//
// The parser uses dialect.ClauseDef() to parse clauses for the current
// dialect, and to reject unsupported clauses (like QUALIFY in Postgres).
// Set operations fold left: "a UNION b UNION c" is (a UNION b) UNION c.

// parseStatement parses a complete SQL statement.
func (p *Parser) parseStatement() *core.Expr {
	if p.startsQuery() {
		return p.parseQuery()
	}
	return p.parseProjection()
}

var setOperations = map[token.TokenType]core.Kind{
	token.UNION:     core.KindUnion,
	token.INTERSECT: core.KindIntersect,
	token.EXCEPT:    core.KindExcept,
}

// setOpModifiers are written after the last operand but apply to the
// whole set operation.
var setOpModifiers = []string{"order", "limit", "offset"}

// parseQuery parses a query with optional WITH and set operations.
func (p *Parser) parseQuery() *core.Expr {
	var with *core.Expr
	if p.check(token.WITH) {
		with = p.parseWithClause()
		if with == nil {
			return nil
		}
	}

	left := p.parseQueryTerm()
	for left != nil && !p.failed() {
		kind, ok := setOperations[p.token.Type]
		if !ok {
			break
		}
		p.nextToken()

		distinct := true
		if p.match(token.ALL) {
			distinct = false
		} else {
			p.match(token.DISTINCT) // optional
		}

		right := p.parseQueryTerm()
		if right == nil {
			return nil
		}
		setOp := core.New(kind, core.Args{"this": left, "expression": right, "distinct": distinct})
		if right.Is(core.KindSelect) {
			for _, key := range setOpModifiers {
				if mod := right.ArgExpr(key); mod != nil {
					right.Set(key, nil)
					setOp.Set(key, mod)
				}
			}
		}
		left = setOp
	}
	if left == nil {
		return nil
	}

	if with != nil {
		target := left
		if target.Is(core.KindSubquery) {
			target = target.This()
		}
		target.Set("with", with)
	}
	return left
}

// parseQueryTerm parses a SELECT or a parenthesized query.
func (p *Parser) parseQueryTerm() *core.Expr {
	switch p.token.Type {
	case token.SELECT:
		return p.parseSelectCore()
	case token.LPAREN:
		p.nextToken()
		q := p.parseQuery()
		if q == nil || !p.expect(token.RPAREN) {
			return nil
		}
		return core.New(core.KindSubquery, core.Args{"this": q})
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), token.SELECT))
	return nil
}

// parseWithClause parses a WITH clause with CTEs.
func (p *Parser) parseWithClause() *core.Expr {
	p.nextToken() // WITH
	with := core.New(core.KindWith, nil)

	// Optional RECURSIVE
	if p.match(token.RECURSIVE) {
		with.Set("recursive", true)
	}

	// Parse CTE list
	for {
		cte := p.parseCTE()
		if cte == nil {
			return nil
		}
		with.Append("expressions", cte)

		if !p.match(token.COMMA) {
			break
		}
	}
	return with
}

// parseCTE parses a single CTE.
func (p *Parser) parseCTE() *core.Expr {
	// CTE name
	if !p.isAliasToken(p.token) && !isSoftKeyword(p.token.Type) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "CTE name"))
		return nil
	}
	alias := core.New(core.KindTableAlias, core.Args{"this": p.parseIdentifier()})
	if p.match(token.LPAREN) {
		alias.Set("columns", p.parseIdentifierList())
		if !p.expect(token.RPAREN) {
			return nil
		}
	}

	if !p.expect(token.AS) || !p.expect(token.LPAREN) {
		return nil
	}
	q := p.parseQuery()
	if q == nil || !p.expect(token.RPAREN) {
		return nil
	}
	return core.New(core.KindCTE, core.Args{"this": q, "alias": alias})
}

// parseSelectCore parses a single SELECT clause.
func (p *Parser) parseSelectCore() *core.Expr {
	comments := p.takeComments()
	p.nextToken() // SELECT
	sel := core.New(core.KindSelect, nil)
	sel.AddComments(comments...)

	// DISTINCT / ALL
	if p.match(token.DISTINCT) {
		distinct := core.New(core.KindDistinct, nil)
		if p.match(token.ON) {
			if !p.expect(token.LPAREN) {
				return nil
			}
			on := p.parseExpressionList()
			if !p.expect(token.RPAREN) {
				return nil
			}
			distinct.Set("on", core.Tuple(on...))
		}
		sel.Set("distinct", distinct)
	} else {
		p.match(token.ALL) // optional, consume if present
	}

	// TOP n (only lexed where the dialect registers TOP)
	if p.match(dialect.TokenTop) {
		n := p.parsePrimary()
		if n == nil {
			return nil
		}
		if n.Is(core.KindParen) {
			n = n.This()
		}
		sel.Set("limit", core.New(core.KindLimit, core.Args{"expression": n}))
	}

	// SELECT list
	for {
		item := p.parseProjection()
		if item == nil {
			return nil
		}
		sel.Append("expressions", item)
		if !p.match(token.COMMA) {
			break
		}
	}

	if p.match(token.FROM) {
		from, joins := p.parseFromClause()
		if from == nil {
			return nil
		}
		sel.Set("from", from)
		sel.Set("joins", joins)
	}

	// Parse optional clauses using dialect-driven approach
	p.parseClauses(sel)
	if p.failed() {
		return nil
	}
	return sel
}

// parseClauses parses clauses using dialect.ClauseDef() for both parsing
// logic and slot-based assignment. This is fully declarative - no
// hardcoded clause knowledge in the parser.
func (p *Parser) parseClauses(sel *core.Expr) {
	for !p.failed() && p.isClauseKeyword(p.token) {
		if _, isSetOp := setOperations[p.token.Type]; isSetOp {
			return
		}

		def, ok := p.dialect.ClauseDef(p.token.Type)
		if !ok {
			// Known globally but not in this dialect
			name, _ := dialect.IsKnownClause(p.token.Type)
			p.addError(fmt.Sprintf(ErrUnsupportedClause, name, p.dialect.Name))
			return
		}
		if def.Handler == nil {
			p.addError(fmt.Sprintf(ErrNoClauseHandler, def.Name()))
			return
		}

		key := def.Slot.Key()
		if sel.Has(key) {
			p.addError(fmt.Sprintf("duplicate %s clause", def.Name()))
			return
		}

		p.nextToken() // consume clause keyword
		result, err := def.Handler(p)
		if err != nil {
			p.addError(err.Error())
			return
		}
		// Use slot-based assignment (declarative)
		if result != nil {
			sel.Set(key, result)
		}
	}
}

// parseProjection parses a single SELECT item: an expression with an
// optional alias.
func (p *Parser) parseProjection() *core.Expr {
	expr := p.parseExpression()
	if expr == nil {
		if !p.failed() {
			p.addError(fmt.Sprintf(ErrUnexpectedInput, p.describe(p.token)))
		}
		return nil
	}

	// Optional alias
	if p.match(token.AS) {
		if !p.isAliasToken(p.token) && !isWordToken(p.token) {
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "alias"))
			return nil
		}
		expr = core.New(core.KindAlias, core.Args{"this": expr, "alias": p.parseIdentifier()})
	} else if p.isAliasToken(p.token) {
		// Alias without AS
		expr = core.New(core.KindAlias, core.Args{"this": expr, "alias": p.parseIdentifier()})
	}

	p.attachComments(expr)
	return expr
}

// parseOrderByList parses a list of ORDER BY items.
func (p *Parser) parseOrderByList() []*core.Expr {
	var items []*core.Expr
	for {
		item := p.parseOrdered()
		if item == nil {
			return items
		}
		items = append(items, item)
		if !p.match(token.COMMA) {
			return items
		}
	}
}

// parseOrdered parses a single ORDER BY item.
func (p *Parser) parseOrdered() *core.Expr {
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	ordered := core.New(core.KindOrdered, core.Args{"this": expr})

	// ASC / DESC
	if p.match(token.ASC) {
		ordered.Set("desc", false)
	} else if p.match(token.DESC) {
		ordered.Set("desc", true)
	}

	// NULLS FIRST / LAST
	if p.match(token.NULLS) {
		switch {
		case p.match(token.FIRST):
			ordered.Set("nulls", "FIRST")
		case p.match(token.LAST):
			ordered.Set("nulls", "LAST")
		default:
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "FIRST or LAST"))
			return nil
		}
	}
	return ordered
}
