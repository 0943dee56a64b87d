package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/token"
)

// Lexer tokenizes SQL input according to a dialect's TokenizerConfig.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	dialect *dialect.Dialect
	config  dialect.TokenizerConfig

	// Comments collected during lexing, in source order.
	Comments []*token.Comment
	// pending holds comment bodies not yet handed out with a token.
	pending []string

	errors []error
}

// NewLexer creates a Lexer for the given input. A nil dialect uses the
// default dialect's conventions.
func NewLexer(input string, d *dialect.Dialect) *Lexer {
	if d == nil {
		d = dialect.DefaultRegistry().Default()
	}
	l := &Lexer{
		input:   input,
		line:    1,
		col:     0,
		dialect: d,
		config:  d.Tokenizer,
	}
	l.readChar()
	return l
}

// Errors returns the lexical errors found so far.
func (l *Lexer) Errors() []error {
	return l.errors
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

func (l *Lexer) lexError(pos token.Position, msg string) {
	l.errors = append(l.errors, &LexError{Pos: pos, Message: msg})
}

// NextToken returns the next token. Comments that precede it travel on
// the token.
func (l *Lexer) NextToken() token.Token {
	tok := l.scan()
	if len(l.pending) > 0 {
		tok.Comments = l.pending
		l.pending = nil
	}
	return tok
}

func (l *Lexer) scan() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()
	if l.atEOF() {
		return token.Token{Type: token.EOF, Pos: pos}
	}

	if closing, ok := l.config.IsIdentifierQuote(l.ch); ok {
		lit, ok := l.readQuoted(closing, false)
		if !ok {
			l.lexError(pos, "unterminated quoted identifier")
		}
		return token.Token{Type: token.QIDENT, Literal: lit, Pos: pos}
	}
	if l.config.IsStringQuote(l.ch) {
		lit, ok := l.readQuoted(l.ch, l.config.BackslashEscapes)
		if !ok {
			l.lexError(pos, ErrUnterminatedString)
		}
		return token.Token{Type: token.STRING, Literal: lit, Pos: pos}
	}

	// Dialect symbols first (longest match)
	if tok, ok := l.matchDialectSymbol(pos); ok {
		return tok
	}

	switch {
	case isLetter(l.ch) || l.ch == '_':
		return l.readWord(pos)
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		lit, ok := l.readNumber()
		if !ok {
			l.lexError(pos, ErrInvalidNumber)
		}
		return token.Token{Type: token.NUMBER, Literal: lit, Pos: pos}
	}

	if tok, ok := l.readParam(pos); ok {
		return tok
	}
	if t, lit, ok := l.matchOperator(); ok {
		return token.Token{Type: t, Literal: lit, Pos: pos}
	}

	ch := l.ch
	l.readChar()
	l.lexError(pos, fmt.Sprintf("unexpected character %q", ch))
	return token.Token{Type: token.ILLEGAL, Literal: string(ch), Pos: pos}
}

// operators lists the builtin punctuation, longest spellings first.
var operators = []struct {
	lit string
	typ token.TokenType
}{
	{"<>", token.NE},
	{"!=", token.NE},
	{"<=", token.LE},
	{">=", token.GE},
	{"||", token.DPIPE},
	{"->", token.ARROW},
	{"+", token.PLUS},
	{"-", token.MINUS},
	{"*", token.STAR},
	{"/", token.SLASH},
	{"%", token.PERCENT},
	{"=", token.EQ},
	{"<", token.LT},
	{">", token.GT},
	{"&", token.AMP},
	{"|", token.PIPE},
	{"^", token.CARET},
	{"~", token.TILDE},
	{".", token.DOT},
	{",", token.COMMA},
	{";", token.SEMICOLON},
	{":", token.COLON},
	{"(", token.LPAREN},
	{")", token.RPAREN},
	{"[", token.LBRACKET},
	{"]", token.RBRACKET},
	{"{", token.LBRACE},
	{"}", token.RBRACE},
}

func (l *Lexer) matchOperator() (token.TokenType, string, bool) {
	remaining := l.input[l.pos:]
	for _, op := range operators {
		if strings.HasPrefix(remaining, op.lit) {
			l.advance(len(op.lit))
			return op.typ, op.lit, true
		}
	}
	return token.ILLEGAL, "", false
}

func (l *Lexer) advance(n int) {
	for range n {
		l.readChar()
	}
}

// matchDialectSymbol checks if the current position matches a dialect-specific symbol.
// Returns the longest matching symbol (e.g., "::" before ":").
func (l *Lexer) matchDialectSymbol(pos token.Position) (token.Token, bool) {
	symbols := l.dialect.Symbols()
	if len(symbols) == 0 {
		return token.Token{}, false
	}

	remaining := l.input[l.pos:]
	symbol := ""
	for sym := range symbols {
		if len(sym) > len(symbol) && strings.HasPrefix(remaining, sym) {
			symbol = sym
		}
	}
	if symbol == "" {
		return token.Token{}, false
	}

	l.advance(len(symbol))
	return token.Token{Type: symbols[symbol], Literal: symbol, Pos: pos}, true
}

// readWord reads an identifier or keyword. Dialect keywords take
// precedence over the builtin ones.
func (l *Lexer) readWord(pos token.Position) token.Token {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '$' {
		l.readChar()
	}
	lit := l.input[start:l.pos]
	lower := strings.ToLower(lit)

	typ, ok := l.dialect.LookupKeyword(lower)
	if !ok {
		typ = token.LookupIdent(lower)
	}
	return token.Token{Type: typ, Literal: lit, Pos: pos}
}

// readParam reads ?, :name, $1 and @name parameters.
func (l *Lexer) readParam(pos token.Position) (token.Token, bool) {
	next := l.peekChar()
	switch {
	case l.ch == '?':
		l.readChar()
	case l.ch == ':' && (isLetter(next) || next == '_' || isDigit(next)):
		l.readChar()
		l.skipWordChars()
	case l.ch == '$' && isDigit(next):
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	case l.ch == '@' && (isLetter(next) || next == '_'):
		l.readChar()
		l.skipWordChars()
	default:
		return token.Token{}, false
	}
	return token.Token{Type: token.PARAM, Literal: l.input[pos.Offset:l.pos], Pos: pos}, true
}

func (l *Lexer) skipWordChars() {
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
}

// skipWhitespaceAndComments skips whitespace and collects comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}
		if l.atEOF() {
			return
		}

		remaining := l.input[l.pos:]
		if strings.HasPrefix(remaining, "/*") {
			l.collectBlockComment()
			continue
		}
		if marker := l.lineCommentMarker(remaining); marker != "" {
			l.collectLineComment()
			continue
		}
		return
	}
}

func (l *Lexer) lineCommentMarker(remaining string) string {
	for _, marker := range l.config.LineComments {
		if strings.HasPrefix(remaining, marker) {
			return marker
		}
	}
	return ""
}

func (l *Lexer) addComment(kind token.CommentKind, startPos token.Position, startOffset int) {
	c := &token.Comment{
		Kind: kind,
		Text: l.input[startOffset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	}
	l.Comments = append(l.Comments, c)
	l.pending = append(l.pending, c.Body())
}

// collectLineComment collects a line comment.
func (l *Lexer) collectLineComment() {
	startPos := l.currentPos()
	startOffset := l.pos

	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}
	l.addComment(token.LineComment, startPos, startOffset)
}

// collectBlockComment collects a block comment.
func (l *Lexer) collectBlockComment() {
	startPos := l.currentPos()
	startOffset := l.pos

	l.readChar() // skip '/'
	l.readChar() // skip '*'

	closed := false
	for !l.atEOF() {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			closed = true
			break
		}
		l.readChar()
	}
	if !closed {
		l.lexError(startPos, "unterminated block comment")
	}
	l.addComment(token.BlockComment, startPos, startOffset)
}

// readQuoted reads a quoted string or identifier. A doubled closing quote
// stands for the quote itself. It reports false when input ends first.
func (l *Lexer) readQuoted(closing byte, backslash bool) (string, bool) {
	l.readChar() // skip opening quote

	var result strings.Builder
	for !l.atEOF() {
		switch {
		case backslash && l.ch == '\\' && l.readPos < len(l.input):
			l.readChar()
			result.WriteByte(unescape(l.ch))
			l.readChar()
		case l.ch == closing && l.peekChar() == closing:
			result.WriteByte(closing)
			l.readChar()
			l.readChar()
		case l.ch == closing:
			l.readChar()
			return result.String(), true
		default:
			result.WriteByte(l.ch)
			l.readChar()
		}
	}
	return result.String(), false
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	}
	return c
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
func (l *Lexer) readNumber() (string, bool) {
	start := l.pos

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && (isDigit(l.peekChar()) || l.pos > start) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	ok := true
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if !isDigit(l.ch) {
			ok = false
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.pos], ok
}

// isLetter returns true if ch is a letter.
func isLetter(ch byte) bool {
	return ch >= 0x80 || unicode.IsLetter(rune(ch))
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns all tokens of the input in the given dialect, ending
// with EOF.
func Tokenize(input string, d *dialect.Dialect) ([]token.Token, error) {
	l := NewLexer(input, d)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	if len(l.errors) > 0 {
		return tokens, l.errors[0]
	}
	return tokens, nil
}
