package core

import (
	"fmt"
	"sync"
)

// ParseFunc parses sql in the named dialect into a node of the requested
// kind. KindInvalid asks for any standalone expression or statement.
type ParseFunc func(kind Kind, sql string, dialect string) (*Expr, error)

// RenderFunc renders a tree to SQL text.
type RenderFunc func(e *Expr, opts SQLOptions) (string, error)

var (
	hookMu     sync.RWMutex
	parseHook  ParseFunc
	renderHook RenderFunc
)

// RegisterParser installs the process-wide parser used by ParseInto and by
// builders that accept SQL fragments. The parser package calls it from init.
func RegisterParser(fn ParseFunc) {
	hookMu.Lock()
	defer hookMu.Unlock()
	parseHook = fn
}

// RegisterRenderer installs the process-wide renderer used by (*Expr).SQL.
// The dialect package calls it from init.
func RegisterRenderer(fn RenderFunc) {
	hookMu.Lock()
	defer hookMu.Unlock()
	renderHook = fn
}

// ParseInto parses sql in the named dialect into a node of the given kind.
func ParseInto(kind Kind, sql string, dialect string) (*Expr, error) {
	hookMu.RLock()
	fn := parseHook
	hookMu.RUnlock()
	if fn == nil {
		return nil, ErrNoParser
	}
	e, err := fn(kind, sql, dialect)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", sql, err)
	}
	return e, nil
}

// SQLOptions configures (*Expr).SQL.
type SQLOptions struct {
	Dialect        string
	Pretty         bool
	Identify       bool
	Normalize      bool
	Unsupported    ErrorLevel
	MaxUnsupported int
	Comments       bool
}

// SQLOption mutates SQLOptions.
type SQLOption func(*SQLOptions)

// WithDialect selects the dialect to render in.
func WithDialect(name string) SQLOption {
	return func(o *SQLOptions) { o.Dialect = name }
}

// WithPretty enables multi-line output.
func WithPretty(pretty bool) SQLOption {
	return func(o *SQLOptions) { o.Pretty = pretty }
}

// WithIdentify quotes every identifier.
func WithIdentify(identify bool) SQLOption {
	return func(o *SQLOptions) { o.Identify = identify }
}

// WithNormalize lower-cases unquoted identifiers.
func WithNormalize(normalize bool) SQLOption {
	return func(o *SQLOptions) { o.Normalize = normalize }
}

// WithUnsupported sets the unsupported construct policy.
func WithUnsupported(level ErrorLevel) SQLOption {
	return func(o *SQLOptions) { o.Unsupported = level }
}

// WithComments toggles comment emission.
func WithComments(comments bool) SQLOption {
	return func(o *SQLOptions) { o.Comments = comments }
}

// DefaultSQLOptions returns the options used when none are given.
func DefaultSQLOptions() SQLOptions {
	return SQLOptions{
		Unsupported:    ErrorLevelWarn,
		MaxUnsupported: 3,
		Comments:       true,
	}
}

// SQL renders the tree rooted at e.
func (e *Expr) SQL(opts ...SQLOption) (string, error) {
	o := DefaultSQLOptions()
	for _, opt := range opts {
		opt(&o)
	}
	hookMu.RLock()
	fn := renderHook
	hookMu.RUnlock()
	if fn == nil {
		return "", ErrNoRenderer
	}
	return fn(e, o)
}
