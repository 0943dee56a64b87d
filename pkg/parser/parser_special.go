package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/spi"
	"github.com/leapstack-labs/glot/pkg/token"
)

// Special expression parsing: CASE, CAST, EXISTS, parenthesized expressions,
// subqueries, INTERVAL, EXTRACT and data types.
//
// Grammar:
//
//	case_expr     → CASE [expr] (WHEN expr THEN expr)+ [ELSE expr] END
//	cast_expr     → (CAST | TRY_CAST) "(" expr AS type_name ")"
//	exists_expr   → EXISTS "(" query ")"
//	paren_expr    → "(" expression ")" | "(" query ")" | "(" expr_list ")" ["->" expr]
//	interval      → INTERVAL primary [date_part]
//	extract       → EXTRACT "(" date_part FROM expr ")"
//	position      → POSITION "(" expr IN expr ")" | POSITION "(" expr_list ")"
//	quantified    → (ANY | SOME | ALL) "(" (query | expr) ")"
//	type_name     → word+ ["(" params ")"] ["<" type_list ">"] ("[" "]")*

// parseCaseExpr parses a CASE expression.
func (p *Parser) parseCaseExpr() *core.Expr {
	p.nextToken() // CASE
	caseExpr := core.New(core.KindCase, nil)

	// Simple CASE: CASE expr WHEN ...
	if !p.check(token.WHEN) {
		subject := p.parseExpression()
		if subject == nil {
			return nil
		}
		caseExpr.Set("this", subject)
	}

	// WHEN clauses
	for p.match(token.WHEN) {
		cond := p.parseExpression()
		if cond == nil || !p.expect(token.THEN) {
			return nil
		}
		result := p.parseExpression()
		if result == nil {
			return nil
		}
		caseExpr.Append("ifs", core.New(core.KindIf, core.Args{"this": cond, "true": result}))
	}
	if len(caseExpr.ArgExprs("ifs")) == 0 {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), token.WHEN))
		return nil
	}

	// ELSE clause
	if p.match(token.ELSE) {
		def := p.parseExpression()
		if def == nil {
			return nil
		}
		caseExpr.Set("default", def)
	}

	if !p.expect(token.END) {
		return nil
	}
	return caseExpr
}

// parseCastExpr parses "expr AS type)" once "CAST(" or "TRY_CAST(" has
// been consumed.
func (p *Parser) parseCastExpr(kind core.Kind) *core.Expr {
	this := p.parseExpression()
	if this == nil || !p.expect(token.AS) {
		return nil
	}
	to := p.parseDataType()
	if to == nil || !p.expect(token.RPAREN) {
		return nil
	}
	return core.New(kind, core.Args{"this": this, "to": to})
}

// startsQuery reports whether the current token begins a query.
func (p *Parser) startsQuery() bool {
	switch p.token.Type {
	case token.SELECT, token.WITH:
		return true
	case token.LPAREN:
		return p.checkPeek(token.SELECT) || p.checkPeek(token.WITH)
	}
	return false
}

// parseParenExpr parses a parenthesized expression, subquery, tuple or the
// parameter list of a lambda.
func (p *Parser) parseParenExpr() *core.Expr {
	p.nextToken() // (

	if p.startsQuery() {
		q := p.parseQuery()
		if q == nil || !p.expect(token.RPAREN) {
			return nil
		}
		return core.New(core.KindSubquery, core.Args{"this": q})
	}

	if p.match(token.RPAREN) {
		return core.Tuple()
	}

	items := p.parseExpressionList()
	if p.failed() || !p.expect(token.RPAREN) {
		return nil
	}

	if p.check(token.ARROW) && p.dialect.Precedence(token.ARROW) == 0 {
		return p.parseLambdaBody(items)
	}
	if len(items) == 1 {
		return core.Paren(items[0])
	}
	return core.Tuple(items...)
}

// parseLambdaBody parses the body after "(a, b) ->".
func (p *Parser) parseLambdaBody(params []*core.Expr) *core.Expr {
	idents := make([]*core.Expr, 0, len(params))
	for _, param := range params {
		if !param.Is(core.KindColumn) || param.Has("table") {
			p.addError(fmt.Sprintf("invalid lambda parameter %s", param))
			return nil
		}
		idents = append(idents, param.This())
	}
	p.nextToken() // ->
	body := p.parseExpression()
	if body == nil {
		return nil
	}
	return core.New(core.KindLambda, core.Args{"this": body, "expressions": idents})
}

// parseExistsExpr parses an EXISTS expression.
func (p *Parser) parseExistsExpr() *core.Expr {
	p.nextToken() // EXISTS
	if !p.expect(token.LPAREN) {
		return nil
	}
	q := p.parseQuery()
	if q == nil || !p.expect(token.RPAREN) {
		return nil
	}
	return core.New(core.KindExists, core.Args{"this": q})
}

// parseQuantifiedExpr parses ANY / SOME / ALL over a subquery or array.
func (p *Parser) parseQuantifiedExpr() *core.Expr {
	kind := core.KindAny
	if p.check(token.ALL) {
		kind = core.KindAll
	}
	p.nextToken()
	if !p.expect(token.LPAREN) {
		return nil
	}
	var this *core.Expr
	if p.startsQuery() {
		this = p.parseQuery()
	} else {
		this = p.parseExpression()
	}
	if this == nil || !p.expect(token.RPAREN) {
		return nil
	}
	return core.New(kind, core.Args{"this": this})
}

// parseIntervalExpr parses INTERVAL value [unit]. The unit is only taken
// when it names a date part, so "INTERVAL '1 day' AS x" keeps its alias.
func (p *Parser) parseIntervalExpr() *core.Expr {
	p.nextToken() // INTERVAL
	value := p.parsePrimary()
	if value == nil {
		return nil
	}
	interval := core.New(core.KindInterval, core.Args{"this": value})
	if p.check(token.IDENT) && isIntervalUnit(p.token.Literal) {
		interval.Set("unit", core.Var(strings.ToUpper(p.token.Literal)))
		p.nextToken()
	}
	return interval
}

// isIntervalUnit accepts full date part names and their plurals, not
// one or two letter abbreviations that read like aliases.
func isIntervalUnit(word string) bool {
	return len(word) > 2 && dialect.IsDatePart(word)
}

// parseExtractExpr parses EXTRACT(part FROM expr).
func (p *Parser) parseExtractExpr() *core.Expr {
	p.nextToken() // EXTRACT
	if !p.expect(token.LPAREN) {
		return nil
	}
	if p.token.Literal == "" || p.check(token.STRING) {
		p.addError(fmt.Sprintf("expected date part in EXTRACT, got %s", p.describe(p.token)))
		return nil
	}
	part := core.Var(strings.ToUpper(p.token.Literal))
	p.nextToken()
	if !p.expect(token.FROM) {
		return nil
	}
	from := p.parseExpression()
	if from == nil || !p.expect(token.RPAREN) {
		return nil
	}
	return core.New(core.KindExtract, core.Args{"this": part, "expression": from})
}

// parsePositionExpr parses the arguments of POSITION after "(". The
// standard form is POSITION(substr IN string); the comma form goes through
// the dialect's function builders like any other call.
func (p *Parser) parsePositionExpr(name string) *core.Expr {
	// Stop below comparisons so IN is left for us.
	substr := p.parseExpressionWithPrecedence(spi.PrecedenceComparison + 1)
	if substr == nil {
		return nil
	}
	if !p.match(token.IN) {
		args := []*core.Expr{substr}
		for p.match(token.COMMA) {
			arg := p.parseExpression()
			if arg == nil {
				return nil
			}
			args = append(args, arg)
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		return p.buildFunction(name, strings.ToUpper(name), args)
	}
	this := p.parseExpression()
	if this == nil || !p.expect(token.RPAREN) {
		return nil
	}
	return core.New(core.KindStrPosition, core.Args{"this": this, "substr": substr})
}

// ---------- Data Types ----------

// parseDataType parses a type name such as DECIMAL(10, 2),
// TIMESTAMP WITH TIME ZONE, ARRAY<INT> or INT[].
func (p *Parser) parseDataType() *core.Expr {
	if !isWordToken(p.token) {
		p.addError(fmt.Sprintf("expected data type, got %s", p.describe(p.token)))
		return nil
	}
	parts := []string{p.token.Literal}
	p.nextToken()

	// Multi-word names: DOUBLE PRECISION, CHARACTER VARYING
	for p.check(token.IDENT) {
		if _, ok := core.LookupType(strings.Join(parts, " ") + " " + p.token.Literal); !ok {
			break
		}
		parts = append(parts, p.token.Literal)
		p.nextToken()
	}
	if p.zoneSuffixFollows() {
		parts = append(parts, p.parseZoneSuffix()...)
	}

	if p.check(token.LPAREN) {
		group, ok := p.collectBalanced(token.LPAREN, token.RPAREN)
		if !ok {
			return nil
		}
		parts = append(parts, group...)
	}
	if t, ok := core.LookupType(parts[0]); ok && core.IsNestedType(t) && p.check(token.LT) {
		group, ok := p.collectBalanced(token.LT, token.GT)
		if !ok {
			return nil
		}
		parts = append(parts, group...)
	}
	for p.check(token.LBRACKET) && p.checkPeek(token.RBRACKET) {
		p.nextToken()
		p.nextToken()
		parts = append(parts, "[", "]")
	}

	dt, err := core.BuildDataType(strings.Join(parts, " "))
	if err != nil {
		p.addError(err.Error())
		return nil
	}
	return dt
}

// zoneSuffixFollows reports whether WITH / WITHOUT [LOCAL] TIME ZONE
// follows a TIME or TIMESTAMP type.
func (p *Parser) zoneSuffixFollows() bool {
	if p.check(token.WITH) {
		return isWord(p.peek, "TIME") || isWord(p.peek, "LOCAL")
	}
	return isWord(p.token, "WITHOUT") && isWord(p.peek, "TIME")
}

func (p *Parser) parseZoneSuffix() []string {
	var words []string
	for p.token.Literal != "" && isWordToken(p.token) {
		words = append(words, strings.ToUpper(p.token.Literal))
		p.nextToken()
		if words[len(words)-1] == "ZONE" {
			break
		}
	}
	return words
}

// collectBalanced consumes a bracketed group and returns the literal
// spelling of its tokens.
func (p *Parser) collectBalanced(open, closing token.TokenType) ([]string, bool) {
	var parts []string
	depth := 0
	for {
		switch p.token.Type {
		case token.EOF:
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), closing))
			return nil, false
		case open:
			depth++
		case closing:
			depth--
		}
		parts = append(parts, p.token.Literal)
		p.nextToken()
		if depth == 0 {
			return parts, true
		}
	}
}

// isWordToken reports whether tok is spelled as a word, keywords included.
func isWordToken(tok token.Token) bool {
	if tok.Type == token.STRING || tok.Literal == "" {
		return false
	}
	return isLetter(tok.Literal[0]) || tok.Literal[0] == '_'
}

func isWord(tok token.Token, word string) bool {
	return tok.Type != token.QIDENT && tok.Type != token.STRING && strings.EqualFold(tok.Literal, word)
}
