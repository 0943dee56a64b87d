// Package parser provides SQL parsing with dialect-aware syntax validation.
//
// # Usage
//
//	stmts, err := parser.Parse("SELECT a, b FROM t", d)
//	if err != nil {
//	    // handle error
//	}
//
// The dialect decides how text is tokenized and which clauses, operators,
// join types and functions are accepted. Use the dialect registry to get a
// dialect by name:
//
//	d, err := dialect.GetOrRaise("duckdb")
//	stmt, err := parser.ParseOne(sql, d)
//
// Importing the package installs it as the parser behind core.ParseInto.
//
// # Grammar Overview
//
// The parser implements a recursive descent parser for queries and a Pratt
// parser for expressions:
//
//	statement     → query | expression
//	query         → [WITH cte_list] query_term ((UNION|INTERSECT|EXCEPT) [ALL|DISTINCT] query_term)*
//	query_term    → select_core | "(" query ")"
//	select_core   → SELECT [DISTINCT [ON (...)]] [TOP n] select_list
//	                [FROM from_clause]
//	                [clauses in the dialect's sequence]
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/token"
)

func init() {
	core.RegisterParser(parseHook)
}

// parseHook backs core.ParseInto. An empty dialect name uses the default
// dialect.
func parseHook(kind core.Kind, sql string, name string) (*core.Expr, error) {
	d, err := resolveDialect(name)
	if err != nil {
		return nil, err
	}
	return ParseInto(kind, sql, d)
}

func resolveDialect(name string) (*dialect.Dialect, error) {
	if strings.TrimSpace(name) == "" {
		return dialect.DefaultRegistry().Default(), nil
	}
	return dialect.GetOrRaise(name)
}

// Parser parses SQL into expression trees.
type Parser struct {
	lexer   *Lexer
	token   token.Token // current token
	peek    token.Token // lookahead token
	peek2   token.Token // second lookahead token
	errors  []error
	dialect *dialect.Dialect

	// comments holds comments seen on consumed tokens that no node has
	// claimed yet.
	comments []string
}

// NewParser creates a new parser for the given SQL input. A nil dialect
// uses the default dialect.
func NewParser(sql string, d *dialect.Dialect) *Parser {
	if d == nil {
		d = dialect.DefaultRegistry().Default()
	}
	p := &Parser{
		lexer:   NewLexer(sql, d),
		dialect: d,
	}
	// Read three tokens to initialize current, peek, and peek2
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses every statement of sql. Statements are separated by
// semicolons; empty statements are skipped.
func Parse(sql string, d *dialect.Dialect) ([]*core.Expr, error) {
	p := NewParser(sql, d)
	stmts := p.parseStatements()
	if err := p.err(); err != nil {
		return nil, err
	}
	return stmts, nil
}

// ParseOne parses sql, which must hold exactly one statement.
func ParseOne(sql string, d *dialect.Dialect) (*core.Expr, error) {
	stmts, err := Parse(sql, d)
	if err != nil {
		return nil, err
	}
	if len(stmts) != 1 {
		return nil, fmt.Errorf("expected one statement, got %d", len(stmts))
	}
	return stmts[0], nil
}

// ParseInto parses sql as a node of the given kind. KindInvalid accepts
// any statement or aliased expression. Tables, ordered terms, data types
// and queries have dedicated entry points; any other kind must be what
// the statement parses to.
func ParseInto(kind core.Kind, sql string, d *dialect.Dialect) (*core.Expr, error) {
	p := NewParser(sql, d)
	var e *core.Expr
	switch kind {
	case core.KindTable:
		e = p.parseTableSource()
	case core.KindOrdered:
		e = p.parseOrdered()
	case core.KindDataType:
		e = p.parseDataType()
	case core.KindSelect, core.KindUnion, core.KindIntersect, core.KindExcept:
		e = p.parseQuery()
	default:
		e = p.parseStatement()
	}
	p.match(token.SEMICOLON)
	if !p.check(token.EOF) {
		p.addError(fmt.Sprintf(ErrUnexpectedInput, p.describe(p.token)))
	}
	if err := p.err(); err != nil {
		return nil, err
	}
	if e == nil {
		return nil, &ParseError{Pos: p.token.Pos, Message: "empty input"}
	}
	if kind != core.KindInvalid && kind != core.KindTable && kind != core.KindOrdered &&
		!e.Is(kind) && !(kind == core.KindSelect && e.Kind().IsQuery()) {
		return nil, &ParseError{Message: fmt.Sprintf(ErrWrongKind, kind, e.Kind())}
	}
	p.attachComments(e)
	return e, nil
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Dialect {
	return p.dialect
}

// err returns the first lexical or parse error.
func (p *Parser) err() error {
	if errs := p.lexer.Errors(); len(errs) > 0 {
		return errs[0]
	}
	if len(p.errors) > 0 {
		return p.errors[0]
	}
	return nil
}

func (p *Parser) failed() bool {
	return len(p.errors) > 0 || len(p.lexer.Errors()) > 0
}

// parseStatements parses statements until EOF.
func (p *Parser) parseStatements() []*core.Expr {
	var stmts []*core.Expr
	for !p.check(token.EOF) && !p.failed() {
		if p.match(token.SEMICOLON) {
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			break
		}
		if !p.check(token.SEMICOLON) && !p.check(token.EOF) {
			p.addError(fmt.Sprintf(ErrUnexpectedInput, p.describe(p.token)))
			break
		}
		p.attachComments(stmt)
		stmts = append(stmts, stmt)
	}
	return stmts
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
	p.comments = append(p.comments, p.token.Comments...)
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// checkPeek2 returns true if the peek2 token is of the given type.
func (p *Parser) checkPeek2(t token.TokenType) bool {
	return p.peek2.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), t))
	return false
}

// addError adds a parse error.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

func (p *Parser) describe(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of input"
	}
	if tok.Literal != "" && tok.Literal != tok.Type.String() {
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	}
	return tok.Type.String()
}

// takeComments hands the unclaimed comments to the caller.
func (p *Parser) takeComments() []string {
	c := p.comments
	p.comments = nil
	return c
}

// attachComments gives the unclaimed comments to e.
func (p *Parser) attachComments(e *core.Expr) {
	if e == nil {
		return
	}
	if c := p.takeComments(); len(c) > 0 {
		e.AddComments(c...)
	}
}

// ---------- Keyword Helpers ----------

// isClauseKeyword returns true if token starts a new clause.
func (p *Parser) isClauseKeyword(tok token.Token) bool {
	switch tok.Type {
	case token.UNION, token.INTERSECT, token.EXCEPT:
		return true
	}
	if p.dialect.IsClauseToken(tok.Type) {
		return true
	}
	_, isKnown := dialect.IsKnownClause(tok.Type)
	return isKnown
}

// isAliasToken reports whether tok can be an alias without AS.
func (p *Parser) isAliasToken(tok token.Token) bool {
	return tok.Type == token.IDENT || tok.Type == token.QIDENT
}

// ---------- spi.ParserOps Implementation ----------
// These methods implement the spi.ParserOps interface for dialect handlers.

// Token returns the current token.
func (p *Parser) Token() token.Token {
	return p.token
}

// Peek returns the lookahead token.
func (p *Parser) Peek() token.Token {
	return p.peek
}

// Match consumes the current token if it matches.
func (p *Parser) Match(t token.TokenType) bool {
	return p.match(t)
}

// Expect consumes the current token if it matches, otherwise returns an error.
func (p *Parser) Expect(t token.TokenType) error {
	if p.check(t) {
		p.nextToken()
		return nil
	}
	return &ParseError{
		Pos:     p.token.Pos,
		Message: fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), t),
	}
}

// NextToken advances to the next token.
func (p *Parser) NextToken() {
	p.nextToken()
}

// Check returns true if the current token is of the given type.
func (p *Parser) Check(t token.TokenType) bool {
	return p.check(t)
}

// result converts the outcome of an internal parse into the (value, error)
// form handlers expect. Errors recorded since mark are reported.
func result[T any](p *Parser, mark int, v T) (T, error) {
	if len(p.errors) > mark {
		var zero T
		return zero, p.errors[mark]
	}
	return v, nil
}

// ParseExpression parses an expression.
func (p *Parser) ParseExpression() (*core.Expr, error) {
	mark := len(p.errors)
	return result(p, mark, p.parseExpression())
}

// ParseExpressionList parses a comma-separated list of expressions.
func (p *Parser) ParseExpressionList() ([]*core.Expr, error) {
	mark := len(p.errors)
	return result(p, mark, p.parseExpressionList())
}

// ParseOrderByList parses a list of ordering terms.
func (p *Parser) ParseOrderByList() ([]*core.Expr, error) {
	mark := len(p.errors)
	return result(p, mark, p.parseOrderByList())
}

// ParseIdentifier parses an identifier.
func (p *Parser) ParseIdentifier() (*core.Expr, error) {
	if !isNameToken(p.token.Type) {
		return nil, &ParseError{
			Pos:     p.token.Pos,
			Message: fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), token.IDENT),
		}
	}
	return p.parseIdentifier(), nil
}

// ParseDataType parses a data type such as DECIMAL(10, 2).
func (p *Parser) ParseDataType() (*core.Expr, error) {
	mark := len(p.errors)
	return result(p, mark, p.parseDataType())
}

// ParseQuery parses a query, including set operations and WITH.
func (p *Parser) ParseQuery() (*core.Expr, error) {
	mark := len(p.errors)
	return result(p, mark, p.parseQuery())
}

// AddError adds a parse error.
func (p *Parser) AddError(msg string) {
	p.addError(msg)
}

// Position returns the current token's position.
func (p *Parser) Position() token.Position {
	return p.token.Pos
}
