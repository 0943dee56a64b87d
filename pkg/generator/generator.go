// Package generator renders expression trees back to SQL text.
//
// A Generator walks the tree through a kind dispatch table. Dialects plug in
// by supplying Settings: type and function name tables plus per-kind
// transforms that take precedence over the base renderers.
package generator

import (
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/glot/pkg/core"
)

const (
	defaultPad          = 2
	defaultIndent       = 2
	defaultMaxTextWidth = 80
)

// Generator renders one tree at a time. It is not safe for concurrent use;
// create one per goroutine.
type Generator struct {
	settings *Settings

	pretty         bool
	identify       bool
	normalize      bool
	leadingComma   bool
	comments       bool
	pad            int
	indentWidth    int
	maxTextWidth   int
	level          core.ErrorLevel
	maxUnsupported int
	logger         *slog.Logger

	upper       cases.Caser
	lower       cases.Caser
	unsupported []string
}

// Option configures a Generator.
type Option func(*Generator)

// Pretty enables multi-line, indented output.
func Pretty(on bool) Option { return func(g *Generator) { g.pretty = on } }

// Identify quotes every identifier.
func Identify(on bool) Option { return func(g *Generator) { g.identify = on } }

// Normalize lower-cases unquoted identifiers.
func Normalize(on bool) Option { return func(g *Generator) { g.normalize = on } }

// LeadingComma puts list separators at the start of lines in pretty mode.
func LeadingComma(on bool) Option { return func(g *Generator) { g.leadingComma = on } }

// Comments toggles comment emission.
func Comments(on bool) Option { return func(g *Generator) { g.comments = on } }

// Pad sets the indentation of pretty-printed clause bodies.
func Pad(n int) Option { return func(g *Generator) { g.pad = n } }

// MaxTextWidth sets the width past which pretty lists wrap.
func MaxTextWidth(n int) Option { return func(g *Generator) { g.maxTextWidth = n } }

// Unsupported sets the policy for constructs the dialect cannot express.
func Unsupported(level core.ErrorLevel) Option { return func(g *Generator) { g.level = level } }

// MaxUnsupported caps how many messages an UnsupportedError prints.
func MaxUnsupported(n int) Option { return func(g *Generator) { g.maxUnsupported = n } }

// WithLogger sets the logger that receives unsupported warnings.
func WithLogger(l *slog.Logger) Option { return func(g *Generator) { g.logger = l } }

// FromSQLOptions converts the options accepted by (*core.Expr).SQL.
func FromSQLOptions(o core.SQLOptions) []Option {
	return []Option{
		Pretty(o.Pretty),
		Identify(o.Identify),
		Normalize(o.Normalize),
		Unsupported(o.Unsupported),
		MaxUnsupported(o.MaxUnsupported),
		Comments(o.Comments),
	}
}

// New creates a Generator for the given settings. A nil settings value uses
// the ANSI defaults.
func New(settings *Settings, opts ...Option) *Generator {
	if settings == nil {
		settings = NewSettings("")
	}
	g := &Generator{
		settings:       settings,
		comments:       true,
		pad:            defaultPad,
		indentWidth:    defaultIndent,
		maxTextWidth:   defaultMaxTextWidth,
		level:          core.ErrorLevelWarn,
		maxUnsupported: 3,
		logger:         slog.Default(),
		upper:          cases.Upper(language.Und),
		lower:          cases.Lower(language.Und),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Settings returns the tables the generator renders with.
func (g *Generator) Settings() *Settings { return g.settings }

// IsPretty reports whether pretty mode is on.
func (g *Generator) IsPretty() bool { return g.pretty }

// Generate renders e. Unsupported constructs are handled according to the
// configured ErrorLevel.
func (g *Generator) Generate(e *core.Expr) (sql string, err error) {
	g.unsupported = g.unsupported[:0]
	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			sql, err = "", a.err
		}
	}()

	sql = g.SQL(e)

	switch g.level {
	case core.ErrorLevelWarn:
		for _, msg := range g.unsupported {
			g.logger.Warn("unsupported syntax", slog.String("dialect", g.settings.Dialect), slog.String("message", msg))
		}
	case core.ErrorLevelRaise:
		if len(g.unsupported) > 0 {
			return "", g.unsupportedError(g.unsupported)
		}
	}
	return sql, nil
}

// UnsupportedMessages returns the messages recorded by the last Generate call.
func (g *Generator) UnsupportedMessages() []string {
	return append([]string(nil), g.unsupported...)
}

// Unsupported records that the current construct has no faithful rendering.
// In immediate mode it aborts the pass.
func (g *Generator) Unsupported(msg string) {
	if g.level == core.ErrorLevelImmediate {
		panic(abort{err: g.unsupportedError([]string{msg})})
	}
	if g.level != core.ErrorLevelIgnore {
		g.unsupported = append(g.unsupported, msg)
	}
}

func (g *Generator) unsupportedError(msgs []string) *UnsupportedError {
	return &UnsupportedError{
		Dialect:  g.settings.Dialect,
		Messages: append([]string(nil), msgs...),
		Max:      g.maxUnsupported,
	}
}

// SQL renders a single node, dispatching on its kind. A nil node renders
// as the empty string.
func (g *Generator) SQL(e *core.Expr) string {
	if e == nil {
		return ""
	}
	sql := g.render(e)
	if g.comments && len(e.Comments) > 0 && !e.Kind().IsBinary() {
		return g.withComments(e, sql)
	}
	return sql
}

// Arg renders the child stored under key.
func (g *Generator) Arg(e *core.Expr, key string) string {
	switch v := e.Arg(key).(type) {
	case *core.Expr:
		return g.SQL(v)
	case string:
		return v
	}
	return ""
}

func (g *Generator) render(e *core.Expr) string {
	kind := e.Kind()
	if fn, ok := g.settings.Transforms[kind]; ok {
		return fn(g, e)
	}
	if fn, ok := handlers[kind]; ok {
		return fn(g, e)
	}
	if kind.IsFunction() {
		return g.FunctionFallback(e)
	}
	panic(abort{err: &UnhandledKindError{Kind: kind}})
}

// Default renders e with the base handler, skipping any dialect transform.
// Transforms use it to decorate the standard output.
func (g *Generator) Default(e *core.Expr) string {
	if fn, ok := handlers[e.Kind()]; ok {
		return fn(g, e)
	}
	return g.FunctionFallback(e)
}

func (g *Generator) withComments(e *core.Expr, sql string) string {
	text := g.commentText(e.Comments)
	if text == "" {
		return sql
	}
	if e.Kind().IsQuery() && e.Kind() != core.KindSubquery {
		return text + g.sep(" ") + sql
	}
	return sql + " " + text
}

func (g *Generator) commentText(comments []string) string {
	parts := make([]string, 0, len(comments))
	for _, c := range comments {
		if c == "" {
			continue
		}
		parts = append(parts, "/*"+padComment(c)+"*/")
	}
	return strings.Join(parts, " ")
}

func padComment(c string) string {
	if !strings.HasPrefix(c, " ") {
		c = " " + c
	}
	if !strings.HasSuffix(c, " ") {
		c += " "
	}
	return c
}

// NormalizeFunc applies the configured function name casing.
func (g *Generator) NormalizeFunc(name string) string {
	switch g.settings.FuncCase {
	case FuncUpper:
		return g.upper.String(name)
	case FuncLower:
		return g.lower.String(name)
	}
	return name
}

// FunctionName returns the rendered name of a function kind.
func (g *Generator) FunctionName(kind core.Kind) string {
	if name, ok := g.settings.FunctionNames[kind]; ok {
		return name
	}
	return kind.FunctionName()
}

// FunctionFallback renders e as NAME(arg, ...) using its declared argument
// order. Sequences are expanded in place and flags are skipped.
func (g *Generator) FunctionFallback(e *core.Expr) string {
	name := g.FunctionName(e.Kind())
	if name == "" {
		name = strings.ToUpper(e.Kind().Key())
	}
	return g.funcSQLs(name, g.argSQLs(e)...)
}
