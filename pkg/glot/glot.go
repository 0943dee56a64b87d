// Package glot parses, rewrites and transpiles SQL between dialects.
//
// Importing glot registers every bundled dialect:
//
//	out, err := glot.Transpile("SELECT a::TEXT FROM t LIMIT 5",
//		glot.Read("duckdb"), glot.Write("tsql"))
//	// out[0] == "SELECT TOP 5 CAST(a AS VARCHAR(MAX)) FROM t"
package glot

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
	"github.com/leapstack-labs/glot/pkg/parser"

	// Bundled dialects register themselves on import.
	_ "github.com/leapstack-labs/glot/pkg/dialects/bigquery"
	_ "github.com/leapstack-labs/glot/pkg/dialects/databricks"
	_ "github.com/leapstack-labs/glot/pkg/dialects/duckdb"
	_ "github.com/leapstack-labs/glot/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/glot/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/glot/pkg/dialects/snowflake"
	_ "github.com/leapstack-labs/glot/pkg/dialects/tsql"
)

type options struct {
	read, write string
	gen         []generator.Option
	level       core.ErrorLevel
	logger      *slog.Logger
}

// Option configures Parse and Transpile.
type Option func(*options)

// Read names the dialect the input is written in. Empty means the default
// dialect.
func Read(name string) Option { return func(o *options) { o.read = name } }

// Write names the dialect to render. Empty means the read dialect.
func Write(name string) Option { return func(o *options) { o.write = name } }

// Pretty renders multi-line output.
func Pretty() Option { return Generate(generator.Pretty(true)) }

// Identify quotes every identifier.
func Identify() Option { return Generate(generator.Identify(true)) }

// Unsupported sets how constructs the write dialect cannot express are
// reported. The default is core.ErrorLevelWarn.
func Unsupported(level core.ErrorLevel) Option { return func(o *options) { o.level = level } }

// WithLogger sets the logger receiving unsupported warnings.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// Generate passes generator options through unchanged.
func Generate(opts ...generator.Option) Option {
	return func(o *options) { o.gen = append(o.gen, opts...) }
}

func newOptions(opts []Option) *options {
	o := &options{level: core.ErrorLevelWarn}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) generatorOptions() []generator.Option {
	gen := []generator.Option{generator.Unsupported(o.level)}
	if o.logger != nil {
		gen = append(gen, generator.WithLogger(o.logger))
	}
	return append(gen, o.gen...)
}

// Parse parses every statement in sql with the Read dialect.
func Parse(sql string, opts ...Option) ([]*core.Expr, error) {
	o := newOptions(opts)
	d, err := dialect.GetOrRaise(o.read)
	if err != nil {
		return nil, err
	}
	return parser.Parse(sql, d)
}

// ParseOne parses a single statement with the Read dialect.
func ParseOne(sql string, opts ...Option) (*core.Expr, error) {
	o := newOptions(opts)
	d, err := dialect.GetOrRaise(o.read)
	if err != nil {
		return nil, err
	}
	return parser.ParseOne(sql, d)
}

// Transpile parses sql with the Read dialect and renders each statement
// with the Write dialect, in input order.
func Transpile(sql string, opts ...Option) ([]string, error) {
	o := newOptions(opts)
	read, err := dialect.GetOrRaise(o.read)
	if err != nil {
		return nil, err
	}
	write := read
	if o.write != "" {
		if write, err = dialect.GetOrRaise(o.write); err != nil {
			return nil, err
		}
	}

	stmts, err := parser.Parse(sql, read)
	if err != nil {
		return nil, err
	}
	gen := o.generatorOptions()
	out := make([]string, 0, len(stmts))
	for i, stmt := range stmts {
		s, err := write.Generate(stmt, gen...)
		if err != nil {
			return out, fmt.Errorf("statement %d: %w", i+1, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Dialects returns the canonical names of the registered dialects.
func Dialects() []string {
	return dialect.List()
}
