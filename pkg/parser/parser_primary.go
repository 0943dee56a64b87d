package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/token"
)

// Primary expression parsing: literals, column refs, function calls.
//
// Grammar:
//
//	primary       → literal | column_ref | func_call | paren_expr | case_expr | cast_expr
//	              | exists_expr | interval | extract | lambda | array
//	literal       → NUMBER | STRING | TRUE | FALSE | NULL | PARAM
//	column_ref    → [[[catalog "."] db "."] table "."] (column | "*")
//	func_call     → name "(" [DISTINCT] [expr_list | "*"] ")" [OVER window_spec]
//	lambda        → name "->" expr

// parsePrimary parses primary expressions.
func (p *Parser) parsePrimary() *core.Expr {
	comments := p.takeComments()
	e := p.parsePrimaryInner()
	if e != nil && len(comments) > 0 {
		e.AddComments(comments...)
	}
	return e
}

func (p *Parser) parsePrimaryInner() *core.Expr {
	// Check for dialect-specific prefix handlers first
	if handler := p.dialect.PrefixHandler(p.token.Type); handler != nil {
		p.nextToken() // consume the prefix token
		expr, err := handler(p)
		if err != nil {
			p.addError(err.Error())
			return nil
		}
		return expr
	}

	switch p.token.Type {
	case token.NUMBER:
		lit := core.New(core.KindLiteral, core.Args{"this": p.token.Literal})
		p.nextToken()
		return lit

	case token.STRING:
		lit := core.String(p.token.Literal)
		p.nextToken()
		return lit

	case token.TRUE:
		p.nextToken()
		return core.Boolean(true)

	case token.FALSE:
		p.nextToken()
		return core.Boolean(false)

	case token.NULL:
		p.nextToken()
		return core.Null()

	case token.PARAM:
		name := p.token.Literal
		p.nextToken()
		if name == "?" {
			name = ""
		}
		return core.Placeholder(name)

	case token.STAR:
		p.nextToken()
		return core.Star()

	case token.CASE:
		return p.parseCaseExpr()

	case token.CAST:
		p.nextToken()
		if !p.expect(token.LPAREN) {
			return nil
		}
		return p.parseCastExpr(core.KindCast)

	case token.EXISTS:
		return p.parseExistsExpr()

	case token.INTERVAL:
		return p.parseIntervalExpr()

	case token.EXTRACT:
		return p.parseExtractExpr()

	case token.ANY, token.SOME, token.ALL:
		return p.parseQuantifiedExpr()

	case token.LPAREN:
		return p.parseParenExpr()

	case token.LBRACKET:
		p.nextToken()
		return p.parseArrayLiteral()
	}

	if isNameToken(p.token.Type) {
		return p.parseNameExpr()
	}

	p.addError(fmt.Sprintf("unexpected token %s in expression", p.describe(p.token)))
	return nil
}

// parseIdentifier turns the current name token into an Identifier.
func (p *Parser) parseIdentifier() *core.Expr {
	args := core.Args{"this": p.token.Literal}
	if p.token.Type == token.QIDENT {
		args["quoted"] = true
	}
	p.nextToken()
	return core.New(core.KindIdentifier, args)
}

// bareFunctions are called without parentheses.
var bareFunctions = map[string]core.Kind{
	"CURRENT_DATE":      core.KindCurrentDate,
	"CURRENT_TIMESTAMP": core.KindCurrentTimestamp,
}

// typedLiterals name the types that prefix a string literal.
var typedLiterals = map[string]bool{
	"DATE":      true,
	"TIME":      true,
	"TIMESTAMP": true,
	"DATETIME":  true,
}

// parseNameExpr parses everything that starts with a name: columns,
// function calls, lambdas, ARRAY[...] and bare functions.
func (p *Parser) parseNameExpr() *core.Expr {
	upper := strings.ToUpper(p.token.Literal)
	unquoted := p.token.Type != token.QIDENT

	switch {
	case p.checkPeek(token.LPAREN):
		name := p.token.Literal
		p.nextToken() // name
		p.nextToken() // (
		return p.parseFunctionCall(name)

	case p.checkPeek(token.ARROW) && p.dialect.Precedence(token.ARROW) == 0:
		param := p.parseIdentifier()
		p.nextToken() // ->
		body := p.parseExpression()
		if body == nil {
			return nil
		}
		return core.New(core.KindLambda, core.Args{"this": body, "expressions": []*core.Expr{param}})

	case unquoted && upper == "ARRAY" && p.checkPeek(token.LBRACKET):
		p.nextToken()
		p.nextToken()
		return p.parseArrayLiteral()

	case unquoted && p.checkPeek(token.STRING) && typedLiterals[upper]:
		// DATE '2024-01-01' is a cast of the string.
		to, err := core.BuildDataType(upper)
		if err != nil {
			p.addError(err.Error())
			return nil
		}
		p.nextToken()
		lit := core.String(p.token.Literal)
		p.nextToken()
		return core.New(core.KindCast, core.Args{"this": lit, "to": to})

	case unquoted && !p.checkPeek(token.DOT):
		if kind, ok := bareFunctions[upper]; ok {
			p.nextToken()
			return core.New(kind, nil)
		}
	}

	return p.parseColumnRef()
}

// parseColumnRef parses a possibly qualified column, "t.*" included.
// Qualified function calls such as "schema.fn(x)" are parsed here too.
func (p *Parser) parseColumnRef() *core.Expr {
	parts := []*core.Expr{p.parseIdentifier()}
	for p.check(token.DOT) {
		p.nextToken()
		switch {
		case p.check(token.STAR):
			p.nextToken()
			return columnOf(core.Star(), parts)
		case isNameToken(p.token.Type) || p.token.Literal != "" && isLetter(p.token.Literal[0]):
			if p.checkPeek(token.LPAREN) {
				names := make([]string, 0, len(parts)+1)
				for _, part := range parts {
					names = append(names, part.Name())
				}
				names = append(names, p.token.Literal)
				p.nextToken()
				p.nextToken()
				return p.parseFunctionCall(strings.Join(names, "."))
			}
			parts = append(parts, p.parseIdentifier())
		default:
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), token.IDENT))
			return nil
		}
	}
	last := parts[len(parts)-1]
	return columnOf(last, parts[:len(parts)-1])
}

// columnOf builds a column from its name and qualifiers, outermost first.
// Paths longer than catalog.db.table.column become dotted access.
func columnOf(this *core.Expr, qualifiers []*core.Expr) *core.Expr {
	if len(qualifiers) > 3 {
		parts := []*core.Expr{columnOf(qualifiers[3], qualifiers[:3])}
		parts = append(parts, qualifiers[4:]...)
		parts = append(parts, this)
		dot, _ := core.Dot(parts...)
		return dot
	}
	args := core.Args{"this": this}
	keys := []string{"table", "db", "catalog"}
	for i, q := range qualifiers {
		args[keys[len(qualifiers)-1-i]] = q
	}
	return core.New(core.KindColumn, args)
}

// castFunctions are written like functions but take "x AS type".
var castFunctions = map[string]core.Kind{
	"TRY_CAST":  core.KindTryCast,
	"SAFE_CAST": core.KindTryCast,
}

// parseFunctionCall parses the arguments after "name (" and an optional
// OVER clause. Dialect builders take precedence over the registry of
// known functions; anything else stays an anonymous call.
func (p *Parser) parseFunctionCall(name string) *core.Expr {
	upper := strings.ToUpper(name)
	if kind, ok := castFunctions[upper]; ok {
		return p.parseCastExpr(kind)
	}
	if upper == "POSITION" {
		return p.parsePositionExpr(name)
	}

	var args []*core.Expr
	distinct := p.match(token.DISTINCT)
	switch {
	case p.check(token.RPAREN):
	case p.check(token.STAR) && p.checkPeek(token.RPAREN):
		p.nextToken()
		args = []*core.Expr{core.Star()}
	default:
		args = p.parseExpressionList()
	}
	if p.failed() || !p.expect(token.RPAREN) {
		return nil
	}
	if distinct {
		args = []*core.Expr{core.New(core.KindDistinct, core.Args{"expressions": args})}
	}

	fn := p.buildFunction(name, upper, args)
	if fn == nil {
		return nil
	}
	if p.check(token.OVER) {
		p.nextToken()
		return p.parseWindow(fn)
	}
	return fn
}

func (p *Parser) buildFunction(name, upper string, args []*core.Expr) *core.Expr {
	if builder, ok := p.dialect.FunctionBuilder(upper); ok {
		fn, err := builder(args)
		if err != nil {
			p.addError(err.Error())
			return nil
		}
		return fn
	}
	if kind, ok := core.KindByFunctionName(upper); ok {
		return core.FromArgList(kind, args)
	}
	return core.New(core.KindAnonymous, core.Args{"this": name, "expressions": args})
}

// parseArrayLiteral parses the elements after "[" or "ARRAY[".
func (p *Parser) parseArrayLiteral() *core.Expr {
	var items []*core.Expr
	if !p.check(token.RBRACKET) {
		items = p.parseExpressionList()
	}
	if !p.expect(token.RBRACKET) {
		return nil
	}
	return core.New(core.KindArray, core.Args{"expressions": items})
}
