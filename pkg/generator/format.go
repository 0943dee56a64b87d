package generator

import (
	"strings"

	"github.com/leapstack-labs/glot/pkg/core"
)

// sep returns s in flat mode and a line break (keeping any non-space part
// of s) in pretty mode.
func (g *Generator) sep(s string) string {
	if g.pretty {
		return strings.TrimSpace(s) + "\n"
	}
	return s
}

// seg starts a new clause segment.
func (g *Generator) seg(sql string) string {
	return g.sep(" ") + sql
}

// segTight starts a segment that hugs the preceding text in flat mode.
func (g *Generator) segTight(sql string) string {
	return g.sep("") + sql
}

type indentOpts struct {
	level     int
	pad       int
	skipFirst bool
	skipLast  bool
}

// Indent prefixes every line of sql in pretty mode.
func (g *Generator) Indent(sql string) string {
	return g.indent(sql, indentOpts{pad: g.pad})
}

func (g *Generator) indent(sql string, o indentOpts) string {
	if !g.pretty || sql == "" {
		return sql
	}
	prefix := strings.Repeat(" ", o.level*g.indentWidth+o.pad)
	lines := strings.Split(sql, "\n")
	for i, line := range lines {
		if (o.skipFirst && i == 0) || (o.skipLast && i == len(lines)-1) {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// Wrap renders e inside parentheses. Queries are rendered whole; any other
// node contributes its "this" child.
func (g *Generator) Wrap(e *core.Expr) string {
	var inner string
	if e.Kind().IsQuery() && e.Kind() != core.KindSubquery {
		inner = g.SQL(e)
	} else {
		inner = g.Arg(e, "this")
	}
	return g.wrapSQL(inner)
}

func (g *Generator) wrapSQL(inner string) string {
	if inner == "" {
		return "()"
	}
	inner = g.indent(inner, indentOpts{level: 1})
	return "(" + g.sep("") + inner + g.segTight(")")
}

// listOpts mirrors the knobs of a rendered child list.
type listOpts struct {
	flat      bool
	noIndent  bool
	skipFirst bool
	skipLast  bool
	sep       string
	prefix    string
	// dynamic only breaks lines when the list is too wide.
	dynamic bool
	newLine bool
}

// Expressions renders the "expressions" sequence of e as a comma separated list.
func (g *Generator) Expressions(e *core.Expr) string {
	return g.list(e.Expressions(), listOpts{})
}

// FlatList renders nodes joined by sep on one line.
func (g *Generator) FlatList(nodes []*core.Expr, sep string) string {
	return g.list(nodes, listOpts{flat: true, sep: sep})
}

func (g *Generator) list(nodes []*core.Expr, o listOpts) string {
	if len(nodes) == 0 {
		return ""
	}
	sep := o.sep
	if sep == "" {
		sep = ", "
	}
	if o.flat {
		parts := make([]string, 0, len(nodes))
		for _, n := range nodes {
			if sql := g.SQL(n); sql != "" {
				parts = append(parts, sql)
			}
		}
		return strings.Join(parts, sep)
	}

	var parts []string
	for i, n := range nodes {
		sql := g.SQL(n)
		if sql == "" {
			continue
		}
		last := i+1 == len(nodes)
		switch {
		case g.pretty && g.leadingComma:
			if i > 0 {
				sql = sep + o.prefix + sql
			} else {
				sql = o.prefix + sql
			}
		default:
			sql = o.prefix + sql
			if !last {
				sql += sep
			}
		}
		parts = append(parts, sql)
	}

	var out string
	if g.pretty && (!o.dynamic || g.tooWide(parts)) {
		if o.newLine {
			parts = append(append([]string{""}, parts...), "")
		}
		for i := range parts {
			parts[i] = strings.TrimRight(parts[i], " ")
		}
		out = strings.Join(parts, "\n")
	} else {
		out = strings.Join(parts, "")
	}
	if o.noIndent {
		return out
	}
	return g.indent(out, indentOpts{pad: g.pad, skipFirst: o.skipFirst, skipLast: o.skipLast})
}

func (g *Generator) tooWide(parts []string) bool {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	return total > g.maxTextWidth
}

// Func renders name(args...) applying the function name casing.
func (g *Generator) Func(name string, args ...*core.Expr) string {
	sqls := make([]string, 0, len(args))
	for _, a := range args {
		if a == nil {
			continue
		}
		sqls = append(sqls, g.SQL(a))
	}
	return g.funcSQLs(name, sqls...)
}

// FuncSQL renders name(args...) from already rendered arguments. Empty
// arguments are dropped.
func (g *Generator) FuncSQL(name string, args ...string) string {
	return g.funcSQLs(name, args...)
}

func (g *Generator) funcSQLs(name string, args ...string) string {
	return g.NormalizeFunc(name) + "(" + g.formatArgs(args) + ")"
}

func (g *Generator) formatArgs(args []string) string {
	kept := args[:0:0]
	for _, a := range args {
		if a != "" {
			kept = append(kept, a)
		}
	}
	if g.pretty && g.tooWide(kept) {
		return g.indent("\n"+strings.Join(kept, ",\n")+"\n", indentOpts{pad: g.pad, skipFirst: true, skipLast: true})
	}
	return strings.Join(kept, ", ")
}

// Binary renders a chain of same-kind binary operators without recursing
// on the left spine.
func (g *Generator) Binary(e *core.Expr, op string) string {
	kind := e.Kind()
	var b strings.Builder
	stack := []any{e}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch v := top.(type) {
		case string:
			b.WriteString(v)
		case *core.Expr:
			if v == nil {
				continue
			}
			if v.Kind() != kind {
				b.WriteString(g.SQL(v))
				continue
			}
			sep := " " + op
			if g.comments {
				if text := g.commentText(v.Comments); text != "" {
					sep += " " + text
				}
			}
			stack = append(stack, v.Expression(), sep+" ", v.This())
		}
	}
	return b.String()
}

// connector renders AND/OR chains iteratively. Operators stay attached to
// the operand that follows them so pretty mode can break before each one.
func (g *Generator) connector(e *core.Expr) string {
	type opText string
	var sqls []string
	lastIsOp := false
	stack := []any{e}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		var sql string
		isOp := false
		switch v := top.(type) {
		case opText:
			sql, isOp = string(v), true
		case *core.Expr:
			if v == nil {
				continue
			}
			if v.Kind().IsConnector() {
				op := connectorOps[v.Kind()]
				if g.comments {
					if text := g.commentText(v.Comments); text != "" {
						op += " " + text
					}
				}
				stack = append(stack, v.Expression(), opText(op), v.This())
				continue
			}
			sql = g.SQL(v)
		}
		if len(sqls) > 0 && lastIsOp && !isOp {
			sqls[len(sqls)-1] += " " + sql
			lastIsOp = false
			continue
		}
		sqls = append(sqls, sql)
		lastIsOp = isOp
	}
	sep := " "
	if g.pretty && g.tooWide(sqls) {
		sep = "\n"
	}
	return strings.Join(sqls, sep)
}

var connectorOps = map[core.Kind]string{
	core.KindAnd: "AND",
	core.KindOr:  "OR",
}
