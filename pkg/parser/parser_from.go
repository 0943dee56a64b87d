package parser

import (
	"fmt"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/token"
)

// FROM clause parsing: table references, derived tables, JOINs.
//
// Grammar:
//
//	from_clause   → table_ref (join)*
//	table_ref     → (table_name | table_func | derived_table) [[AS] alias]
//	table_name    → [[catalog "."] db "."] identifier
//	table_func    → name "(" [expr_list] ")"
//	derived_table → "(" query ")"
//	alias         → identifier ["(" identifier ("," identifier)* ")"]
//	join          → join_type JOIN table_ref [ON expr | USING "(" ident_list ")"] | "," table_ref
//	join_type     → [INNER] | LEFT [OUTER] | RIGHT [OUTER] | FULL [OUTER] | CROSS | dialect types
//
// Join types come from the dialect, so SEMI and ANTI joins only parse where
// the dialect registers them.

// parseFromClause parses the FROM clause. Joins are returned separately
// because they live on the SELECT.
func (p *Parser) parseFromClause() (*core.Expr, []*core.Expr) {
	source := p.parseTableSource()
	if source == nil {
		return nil, nil
	}
	from := core.New(core.KindFrom, core.Args{"this": source})

	var joins []*core.Expr
	for !p.failed() {
		join := p.parseJoin()
		if join == nil {
			break
		}
		joins = append(joins, join)
	}
	return from, joins
}

// parseTableSource parses a table reference with its alias.
func (p *Parser) parseTableSource() *core.Expr {
	var source *core.Expr
	switch {
	case p.check(token.LPAREN):
		source = p.parseDerivedTable()
	case isNameToken(p.token.Type):
		source = p.parseTableName()
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "table name"))
		return nil
	}
	if source == nil {
		return nil
	}

	if alias := p.parseTableAlias(); alias != nil {
		source.Set("alias", alias)
	}
	p.attachComments(source)
	return source
}

// parseTableName parses a table name with optional db/catalog, or a table
// valued function call.
func (p *Parser) parseTableName() *core.Expr {
	if p.checkPeek(token.LPAREN) {
		name := p.token.Literal
		p.nextToken()
		p.nextToken()
		fn := p.parseFunctionCall(name)
		if fn == nil {
			return nil
		}
		return core.New(core.KindTable, core.Args{"this": fn})
	}

	// Parse potentially qualified name: catalog.db.table
	parts := []*core.Expr{p.parseIdentifier()}
	for p.match(token.DOT) {
		if !isWordToken(p.token) && !p.check(token.QIDENT) {
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), token.IDENT))
			return nil
		}
		parts = append(parts, p.parseIdentifier())
	}
	if len(parts) > 3 {
		p.addError(fmt.Sprintf("table name has too many parts: %d", len(parts)))
		return nil
	}

	args := core.Args{"this": parts[len(parts)-1]}
	keys := []string{"db", "catalog"}
	qualifiers := parts[:len(parts)-1]
	for i, q := range qualifiers {
		args[keys[len(qualifiers)-1-i]] = q
	}
	return core.New(core.KindTable, args)
}

// parseDerivedTable parses a subquery in FROM.
func (p *Parser) parseDerivedTable() *core.Expr {
	p.nextToken() // (
	if !p.startsQuery() {
		// Parenthesized table reference: FROM (t)
		inner := p.parseTableSource()
		if inner == nil || !p.expect(token.RPAREN) {
			return nil
		}
		return inner
	}
	q := p.parseQuery()
	if q == nil || !p.expect(token.RPAREN) {
		return nil
	}
	return core.New(core.KindSubquery, core.Args{"this": q})
}

// parseTableAlias parses "[AS] alias [(col, ...)]".
func (p *Parser) parseTableAlias() *core.Expr {
	if p.match(token.AS) {
		if !p.check(token.IDENT) && !p.check(token.QIDENT) {
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "alias"))
			return nil
		}
	} else if !p.isAliasToken(p.token) || p.dialect.IsJoinTypeToken(p.token.Type) {
		return nil
	}

	alias := core.New(core.KindTableAlias, core.Args{"this": p.parseIdentifier()})
	if p.check(token.LPAREN) && (isNameToken(p.peek.Type)) {
		p.nextToken()
		alias.Set("columns", p.parseIdentifierList())
		if !p.expect(token.RPAREN) {
			return nil
		}
	}
	return alias
}

// parseIdentifierList parses "a, b, c".
func (p *Parser) parseIdentifierList() []*core.Expr {
	var idents []*core.Expr
	for {
		if !isNameToken(p.token.Type) {
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), token.IDENT))
			return idents
		}
		idents = append(idents, p.parseIdentifier())
		if !p.match(token.COMMA) {
			return idents
		}
	}
}

// parseJoin parses a JOIN clause. It returns nil when no join follows.
func (p *Parser) parseJoin() *core.Expr {
	// Comma join (implicit cross join) - hardcoded special case
	if p.match(token.COMMA) {
		source := p.parseTableSource()
		if source == nil {
			return nil
		}
		return core.New(core.KindJoin, core.Args{"this": source, "comma": true})
	}

	join := core.New(core.KindJoin, nil)
	name := "INNER"
	requiresOn, allowsUsing := true, true

	// Try dialect join type lookup (covers standard + extensions)
	if def, ok := p.dialect.JoinTypeDef(p.token.Type); ok {
		name = p.token.Type.String()
		p.nextToken()

		// Handle optional modifier (OUTER for LEFT/RIGHT/FULL)
		if def.OptionalToken != 0 {
			p.match(def.OptionalToken)
		}
		if def.Side != "" {
			join.Set("side", def.Side)
		}
		if def.Kind != "" {
			join.Set("kind", def.Kind)
		}

		// Compound syntax (LEFT SEMI, LEFT ANTI)
		if sub, ok := p.dialect.JoinTypeDef(p.token.Type); ok && sub.Side == "" && def.Kind == "" {
			p.nextToken()
			join.Set("kind", sub.Kind)
			def.RequiresOn, def.AllowsUsing = sub.RequiresOn, sub.AllowsUsing
		}
		requiresOn, allowsUsing = def.RequiresOn, def.AllowsUsing
	} else if !p.check(token.JOIN) {
		return nil // no join
	}

	if !p.expect(token.JOIN) {
		return nil
	}
	source := p.parseTableSource()
	if source == nil {
		return nil
	}
	join.Set("this", source)

	switch {
	case p.match(token.ON):
		cond := p.parseExpression()
		if cond == nil {
			return nil
		}
		join.Set("on", cond)
	case p.check(token.USING):
		if !allowsUsing {
			p.addError(fmt.Sprintf(ErrJoinNoUsing, name))
			return nil
		}
		p.nextToken()
		if !p.expect(token.LPAREN) {
			return nil
		}
		join.Set("using", p.parseIdentifierList())
		if !p.expect(token.RPAREN) {
			return nil
		}
	case requiresOn:
		p.addError(fmt.Sprintf(ErrJoinRequiresOn, name))
		return nil
	}
	return join
}
