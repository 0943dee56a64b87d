package generator

import (
	"maps"
	"strings"

	"github.com/leapstack-labs/glot/pkg/core"
)

// Transform renders one node. Dialects register transforms per kind to
// override the base rendering.
type Transform func(g *Generator, e *core.Expr) string

// LimitStyle selects how LIMIT and OFFSET are spelled.
type LimitStyle int

const (
	// LimitClause renders "LIMIT n OFFSET m".
	LimitClause LimitStyle = iota
	// LimitTop renders "SELECT TOP n"; an offset switches to FETCH.
	LimitTop
	// LimitFetch renders "OFFSET m ROWS FETCH FIRST n ROWS ONLY".
	LimitFetch
)

// FuncCase controls how function names are cased on output.
type FuncCase int

const (
	// FuncUpper upper-cases function names.
	FuncUpper FuncCase = iota
	// FuncLower lower-cases function names.
	FuncLower
	// FuncAsIs leaves function names untouched.
	FuncAsIs
)

// Settings holds the per-dialect generation tables. A Settings value is
// read-only once handed to a Generator.
type Settings struct {
	// Dialect names the owning dialect in unsupported messages.
	Dialect string

	Identifiers core.IdentifierConfig

	// StringQuote opens and closes string literals.
	StringQuote string
	// StringEscape replaces an embedded StringQuote.
	StringEscape string

	// TypeMapping overrides the spelling of data types.
	TypeMapping map[core.Type]string
	// FunctionNames overrides the rendered name of function kinds.
	FunctionNames map[core.Kind]string
	// Transforms override the base rendering of a kind.
	Transforms map[core.Kind]Transform
	// ReservedWords are always quoted when used as identifiers. Lower-case.
	ReservedWords map[string]struct{}

	FuncCase   FuncCase
	LimitStyle LimitStyle

	// TableAliasAs controls whether table aliases are introduced by AS.
	TableAliasAs bool
}

// NewSettings returns settings with ANSI defaults.
func NewSettings(dialect string) *Settings {
	return &Settings{
		Dialect: dialect,
		Identifiers: core.IdentifierConfig{
			Quote:         `"`,
			QuoteEnd:      `"`,
			Escape:        `""`,
			Normalization: core.NormLowercase,
		},
		StringQuote:   "'",
		StringEscape:  "''",
		TypeMapping:   make(map[core.Type]string),
		FunctionNames: make(map[core.Kind]string),
		Transforms:    make(map[core.Kind]Transform),
		ReservedWords: make(map[string]struct{}),
		TableAliasAs:  true,
	}
}

// Clone returns a deep copy so a derived dialect can extend the tables.
func (s *Settings) Clone() *Settings {
	c := *s
	c.TypeMapping = maps.Clone(s.TypeMapping)
	c.FunctionNames = maps.Clone(s.FunctionNames)
	c.Transforms = maps.Clone(s.Transforms)
	c.ReservedWords = maps.Clone(s.ReservedWords)
	return &c
}

// IsReserved reports whether word must be quoted as an identifier.
func (s *Settings) IsReserved(word string) bool {
	_, ok := s.ReservedWords[strings.ToLower(word)]
	return ok
}
