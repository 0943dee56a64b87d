// Package dialect provides SQL dialect configuration.
//
// This package contains the public contract for dialect definitions used by
// the parser and the generator. A Dialect bundles how text is tokenized,
// which clauses and operators the parser accepts, and how trees are rendered
// back. Concrete dialect implementations are registered from
// pkg/dialects/*/ packages.
package dialect

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/generator"
	"github.com/leapstack-labs/glot/pkg/spi"
	"github.com/leapstack-labs/glot/pkg/token"
)

// JoinTypeDef defines a dialect-specific join type.
type JoinTypeDef struct {
	Token         token.TokenType // The trigger token for this join type
	Side          string          // LEFT, RIGHT or FULL
	Kind          string          // INNER, CROSS, SEMI, ANTI, ...
	OptionalToken token.TokenType // Optional modifier token (OUTER) - 0 means none
	RequiresOn    bool            // true if ON clause is required
	AllowsUsing   bool            // true if USING clause is allowed
}

// ClauseDef bundles clause parsing logic with storage destination.
type ClauseDef struct {
	Token    token.TokenType   // The trigger token for this clause (e.g., token.WHERE)
	Handler  spi.ClauseHandler // Handler function to parse the clause
	Slot     spi.ClauseSlot    // Where to store the parsed result
	Keywords []string          // Keywords naming the clause in messages (e.g. "GROUP", "BY")
}

// Name returns the display name of the clause.
func (c ClauseDef) Name() string {
	if len(c.Keywords) > 0 {
		return strings.Join(c.Keywords, " ")
	}
	return c.Token.String()
}

// OperatorDef defines an infix operator.
type OperatorDef struct {
	Token      token.TokenType
	Symbol     string    // Lexer spelling for operators without a builtin token
	Precedence int       // Binding power, see spi.Precedence*
	Kind       core.Kind // Node built for "left op right"; zero when the parser handles the token itself
	Handler    spi.InfixHandler
}

// TokenizerConfig describes the lexical conventions of a dialect.
type TokenizerConfig struct {
	// IdentifierQuotes maps each opening identifier quote to its closing quote.
	IdentifierQuotes map[byte]byte
	// StringQuotes open and close string literals.
	StringQuotes []byte
	// BackslashEscapes enables C-style escapes inside strings.
	BackslashEscapes bool
	// LineComments start a comment that runs to the end of the line.
	LineComments []string
}

// IsIdentifierQuote returns the closing quote for an opening identifier quote.
func (c TokenizerConfig) IsIdentifierQuote(ch byte) (byte, bool) {
	end, ok := c.IdentifierQuotes[ch]
	return end, ok
}

// IsStringQuote reports whether ch opens a string literal.
func (c TokenizerConfig) IsStringQuote(ch byte) bool {
	return slices.Contains(c.StringQuotes, ch)
}

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Identifiers core.IdentifierConfig
	Tokenizer   TokenizerConfig

	reservedWords map[string]struct{} // Words that need quoting when used as identifiers

	// Parsing behavior (for dialect-aware parsing)
	clauseSequence []token.TokenType                     // Order of clauses in SELECT statement
	clauseDefs     map[token.TokenType]ClauseDef         // Handler + Slot per clause
	symbols        map[string]token.TokenType            // Custom operators: "//" -> DSLASH
	dynamicKw      map[string]token.TokenType            // Custom keywords: "top" -> TOP
	precedence     map[token.TokenType]int               // Operator precedence for expressions
	binaryKinds    map[token.TokenType]core.Kind         // Node kind built by each binary operator
	infixHandlers  map[token.TokenType]spi.InfixHandler  // Optional custom infix parsing
	prefixHandlers map[token.TokenType]spi.PrefixHandler // Prefix expression handlers (e.g., [ for list literals)
	joinTypes      map[token.TokenType]JoinTypeDef       // Dialect-specific join types
	functions      map[string]spi.FunctionBuilder        // Upper-case function name -> builder

	// Generation behavior
	settings   *generator.Settings
	timeFormat *TimeFormat
	dateParts  map[string]string
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	return d.Identifiers.Normalize(name)
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToLower(word)]
	return ok
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	return d.Identifiers.QuoteIdentifier(name)
}

// QuoteIdentifierIfNeeded quotes an identifier only if it's a reserved word.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.IsReservedWord(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}

// ---------- Parsing Behavior Methods ----------

// ClauseSequence returns the ordered list of clause token types for this dialect.
func (d *Dialect) ClauseSequence() []token.TokenType {
	return d.clauseSequence
}

// ClauseDef returns the definition (handler + slot) for a clause token type.
func (d *Dialect) ClauseDef(t token.TokenType) (ClauseDef, bool) {
	def, ok := d.clauseDefs[t]
	return def, ok
}

// IsClauseToken returns true if this dialect supports the given clause token.
func (d *Dialect) IsClauseToken(t token.TokenType) bool {
	_, ok := d.clauseDefs[t]
	return ok
}

// Symbols returns the custom operators map for lexer symbol matching.
func (d *Dialect) Symbols() map[string]token.TokenType {
	return d.symbols
}

// LookupKeyword returns the token type for a dynamic keyword.
// Returns the token type and true if found, or IDENT and false if not.
func (d *Dialect) LookupKeyword(name string) (token.TokenType, bool) {
	if t, ok := d.dynamicKw[strings.ToLower(name)]; ok {
		return t, true
	}
	return token.IDENT, false
}

// Precedence returns the precedence level for an operator token.
// Returns 0 (PrecedenceNone) if the operator is not recognized.
func (d *Dialect) Precedence(t token.TokenType) int {
	if p, ok := d.precedence[t]; ok {
		return p
	}
	return spi.PrecedenceNone
}

// BinaryKind returns the node kind built by a binary operator token.
func (d *Dialect) BinaryKind(t token.TokenType) (core.Kind, bool) {
	k, ok := d.binaryKinds[t]
	return k, ok
}

// InfixHandler returns the custom infix handler for an operator token.
func (d *Dialect) InfixHandler(t token.TokenType) spi.InfixHandler {
	return d.infixHandlers[t]
}

// PrefixHandler returns the custom prefix handler for an operator token.
func (d *Dialect) PrefixHandler(t token.TokenType) spi.PrefixHandler {
	return d.prefixHandlers[t]
}

// JoinTypeDef returns the definition for a dialect-specific join type.
func (d *Dialect) JoinTypeDef(t token.TokenType) (JoinTypeDef, bool) {
	def, ok := d.joinTypes[t]
	return def, ok
}

// IsJoinTypeToken returns true if the token is a dialect-specific join type.
func (d *Dialect) IsJoinTypeToken(t token.TokenType) bool {
	_, ok := d.joinTypes[t]
	return ok
}

// FunctionBuilder returns the dialect's builder for a function name.
func (d *Dialect) FunctionBuilder(name string) (spi.FunctionBuilder, bool) {
	fn, ok := d.functions[strings.ToUpper(name)]
	return fn, ok
}

// ---------- Generation Behavior Methods ----------

// Settings returns the generator tables of the dialect.
func (d *Dialect) Settings() *generator.Settings {
	return d.settings
}

// TimeFormat returns the time format translator, or nil when the dialect
// uses strftime natively without translation.
func (d *Dialect) TimeFormat() *TimeFormat {
	return d.timeFormat
}

// NormalizeDatePart returns the canonical name of a date part, consulting
// the dialect's own abbreviations first.
func (d *Dialect) NormalizeDatePart(part string) string {
	if canonical, ok := d.dateParts[strings.ToUpper(part)]; ok {
		return canonical
	}
	return NormalizeDatePart(part)
}

// Generator returns a generator configured for the dialect.
func (d *Dialect) Generator(opts ...generator.Option) *generator.Generator {
	return generator.New(d.settings, opts...)
}

// Generate renders e in the dialect. The tree is prepared first (see
// Prepare); e itself is never modified.
func (d *Dialect) Generate(e *core.Expr, opts ...generator.Option) (string, error) {
	return d.Generator(opts...).Generate(d.Prepare(e))
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name.
// The builder starts from ANSI lexical conventions and an empty grammar;
// dialects compose clauses, operators and join types explicitly.
func NewDialect(name string) *Builder {
	ident := core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormLowercase,
	}
	settings := generator.NewSettings(name)
	settings.Identifiers = ident
	return &Builder{
		dialect: &Dialect{
			Name:        name,
			Identifiers: ident,
			Tokenizer: TokenizerConfig{
				IdentifierQuotes: map[byte]byte{'"': '"'},
				StringQuotes:     []byte{'\''},
				LineComments:     []string{"--"},
			},
			reservedWords:  make(map[string]struct{}),
			clauseDefs:     make(map[token.TokenType]ClauseDef),
			symbols:        make(map[string]token.TokenType),
			dynamicKw:      make(map[string]token.TokenType),
			precedence:     make(map[token.TokenType]int),
			binaryKinds:    make(map[token.TokenType]core.Kind),
			infixHandlers:  make(map[token.TokenType]spi.InfixHandler),
			prefixHandlers: make(map[token.TokenType]spi.PrefixHandler),
			joinTypes:      make(map[token.TokenType]JoinTypeDef),
			functions:      make(map[string]spi.FunctionBuilder),
			settings:       settings,
			dateParts:      make(map[string]string),
		},
	}
}

// Identifiers configures identifier quoting and normalization. The quote
// replaces the default identifier quote of the tokenizer.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm core.NormalizationStrategy) *Builder {
	cfg := core.IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	b.dialect.Identifiers = cfg
	b.dialect.settings.Identifiers = cfg
	b.dialect.Tokenizer.IdentifierQuotes = map[byte]byte{quote[0]: quoteEnd[0]}
	return b
}

// IdentifierQuote accepts an additional identifier quote pair when parsing.
func (b *Builder) IdentifierQuote(open, closing byte) *Builder {
	b.dialect.Tokenizer.IdentifierQuotes[open] = closing
	return b
}

// Strings configures string literals: the quote used on output, the escape
// that replaces an embedded quote, and any extra quotes accepted on input.
// An escape starting with a backslash enables backslash escapes.
func (b *Builder) Strings(quote byte, escape string, extraQuotes ...byte) *Builder {
	b.dialect.settings.StringQuote = string(quote)
	b.dialect.settings.StringEscape = escape
	b.dialect.Tokenizer.StringQuotes = append([]byte{quote}, extraQuotes...)
	b.dialect.Tokenizer.BackslashEscapes = strings.HasPrefix(escape, `\`)
	return b
}

// LineComments sets the markers that start a line comment.
func (b *Builder) LineComments(markers ...string) *Builder {
	b.dialect.Tokenizer.LineComments = markers
	return b
}

// WithReservedWords registers words that need quoting when used as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		lower := strings.ToLower(w)
		b.dialect.reservedWords[lower] = struct{}{}
		b.dialect.settings.ReservedWords[lower] = struct{}{}
	}
	return b
}

// ---------- Generation Builder Methods ----------

// TypeMapping overrides the rendered spelling of data types.
func (b *Builder) TypeMapping(m map[core.Type]string) *Builder {
	for t, name := range m {
		b.dialect.settings.TypeMapping[t] = name
	}
	return b
}

// FunctionNames overrides the rendered names of function kinds.
func (b *Builder) FunctionNames(m map[core.Kind]string) *Builder {
	for k, name := range m {
		b.dialect.settings.FunctionNames[k] = name
	}
	return b
}

// Transform overrides the rendering of one kind.
func (b *Builder) Transform(kind core.Kind, fn generator.Transform) *Builder {
	b.dialect.settings.Transforms[kind] = fn
	return b
}

// Transforms overrides the rendering of several kinds.
func (b *Builder) Transforms(m map[core.Kind]generator.Transform) *Builder {
	for k, fn := range m {
		b.dialect.settings.Transforms[k] = fn
	}
	return b
}

// FuncCase sets how function names are cased on output.
func (b *Builder) FuncCase(c generator.FuncCase) *Builder {
	b.dialect.settings.FuncCase = c
	return b
}

// LimitStyle sets how row limits are spelled. LimitTop also makes the
// parser accept SELECT TOP n.
func (b *Builder) LimitStyle(style generator.LimitStyle) *Builder {
	b.dialect.settings.LimitStyle = style
	if style == generator.LimitTop {
		b.AddKeyword("TOP", TokenTop)
	}
	return b
}

// TableAliasAs controls whether table aliases are introduced by AS.
func (b *Builder) TableAliasAs(on bool) *Builder {
	b.dialect.settings.TableAliasAs = on
	return b
}

// TimeFormat sets the time format translator.
func (b *Builder) TimeFormat(f *TimeFormat) *Builder {
	b.dialect.timeFormat = f
	return b
}

// DateParts adds dialect-specific date part abbreviations.
func (b *Builder) DateParts(m map[string]string) *Builder {
	for abbrev, canonical := range m {
		b.dialect.dateParts[strings.ToUpper(abbrev)] = canonical
	}
	return b
}

// Function registers a parser-side builder for a function name.
func (b *Builder) Function(name string, fn spi.FunctionBuilder) *Builder {
	b.dialect.functions[strings.ToUpper(name)] = fn
	return b
}

// Functions registers parser-side builders in bulk.
func (b *Builder) Functions(m map[string]spi.FunctionBuilder) *Builder {
	for name, fn := range m {
		b.Function(name, fn)
	}
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}

// ---------- Parsing Behavior Builder Methods ----------

// AddOperator registers a custom operator symbol for the lexer.
func (b *Builder) AddOperator(symbol string, t token.TokenType) *Builder {
	b.dialect.symbols[symbol] = t
	return b
}

// AddKeyword registers a dynamic keyword for the lexer.
func (b *Builder) AddKeyword(name string, t token.TokenType) *Builder {
	b.dialect.dynamicKw[strings.ToLower(name)] = t
	return b
}

// ClauseSequence sets the full clause sequence (for base dialects).
func (b *Builder) ClauseSequence(tokens ...token.TokenType) *Builder {
	b.dialect.clauseSequence = tokens
	return b
}

// ClauseHandler registers a handler for a clause token with storage slot.
func (b *Builder) ClauseHandler(t token.TokenType, handler spi.ClauseHandler, slot spi.ClauseSlot, keywords ...string) *Builder {
	def := ClauseDef{Token: t, Handler: handler, Slot: slot, Keywords: keywords}
	b.dialect.clauseDefs[t] = def
	// Register globally for error messages
	recordClause(t, def.Name())
	return b
}

// AddClauseAfter inserts a clause into the sequence after another clause.
func (b *Builder) AddClauseAfter(after token.TokenType, def ClauseDef) *Builder {
	for i, tok := range b.dialect.clauseSequence {
		if tok == after {
			b.dialect.clauseSequence = slices.Insert(slices.Clone(b.dialect.clauseSequence), i+1, def.Token)
			break
		}
	}
	b.dialect.clauseDefs[def.Token] = def
	b.registerDynamic(def.Token)
	recordClause(def.Token, def.Name())
	return b
}

// RemoveClause removes a clause from the sequence.
func (b *Builder) RemoveClause(t token.TokenType) *Builder {
	b.dialect.clauseSequence = slices.DeleteFunc(slices.Clone(b.dialect.clauseSequence), func(tok token.TokenType) bool {
		return tok == t
	})
	delete(b.dialect.clauseDefs, t)
	return b
}

// AddInfix registers an infix operator with precedence that builds kind.
func (b *Builder) AddInfix(t token.TokenType, precedence int, kind core.Kind) *Builder {
	b.dialect.precedence[t] = precedence
	if kind != core.KindInvalid {
		b.dialect.binaryKinds[t] = kind
	}
	return b
}

// AddInfixWithHandler registers an infix operator with custom handler.
func (b *Builder) AddInfixWithHandler(t token.TokenType, precedence int, handler spi.InfixHandler) *Builder {
	b.dialect.precedence[t] = precedence
	b.dialect.infixHandlers[t] = handler
	return b
}

// AddPrefix registers a prefix expression handler (e.g., [ for list literals).
func (b *Builder) AddPrefix(t token.TokenType, handler spi.PrefixHandler) *Builder {
	b.dialect.prefixHandlers[t] = handler
	return b
}

// AddJoinType registers a dialect-specific join type.
func (b *Builder) AddJoinType(def JoinTypeDef) *Builder {
	b.registerDynamic(def.Token)
	b.dialect.joinTypes[def.Token] = def
	return b
}

// ---------- Bulk Builder Methods (Toolbox Composition) ----------

// Clauses sets the clause sequence from a list of ClauseDefs.
// This replaces inheritance - explicitly list all supported clauses.
func (b *Builder) Clauses(defs ...ClauseDef) *Builder {
	b.dialect.clauseSequence = make([]token.TokenType, len(defs))
	for i, def := range defs {
		b.dialect.clauseSequence[i] = def.Token
		b.dialect.clauseDefs[def.Token] = def
		b.registerDynamic(def.Token)
		recordClause(def.Token, def.Name())
	}
	return b
}

// Operators adds operator definitions in bulk.
// If Symbol is provided, it's registered with the lexer.
func (b *Builder) Operators(sets ...[]OperatorDef) *Builder {
	for _, set := range sets {
		for _, op := range set {
			b.dialect.precedence[op.Token] = op.Precedence
			if op.Symbol == "" {
				b.registerDynamic(op.Token)
			}
			if op.Kind != core.KindInvalid {
				b.dialect.binaryKinds[op.Token] = op.Kind
			}
			if op.Handler != nil {
				b.dialect.infixHandlers[op.Token] = op.Handler
			}
			if op.Symbol != "" {
				b.dialect.symbols[op.Symbol] = op.Token
			}
		}
	}
	return b
}

// JoinTypes adds join type definitions in bulk.
func (b *Builder) JoinTypes(sets ...[]JoinTypeDef) *Builder {
	for _, set := range sets {
		for _, jt := range set {
			b.AddJoinType(jt)
		}
	}
	return b
}

// registerDynamic makes the lexer produce a dynamic token from its keyword.
func (b *Builder) registerDynamic(t token.TokenType) {
	if token.IsDynamic(t) {
		b.AddKeyword(t.String(), t)
	}
}
