package generator

import (
	"strings"

	"github.com/leapstack-labs/glot/pkg/core"
)

func selectSQL(g *Generator, e *core.Expr) string {
	var b strings.Builder
	b.WriteString("SELECT")
	if distinct := g.Arg(e, "distinct"); distinct != "" {
		b.WriteString(" " + distinct)
	}
	if g.usesTop(e) {
		b.WriteString(" TOP " + g.SQL(e.ArgExpr("limit").Expression()))
	}
	if exprs := g.Expressions(e); exprs != "" {
		b.WriteString(g.sep(" ") + exprs)
	}
	b.WriteString(g.Arg(e, "from"))
	b.WriteString(g.QueryModifiers(e))
	return g.prependCTEs(e, b.String())
}

func (g *Generator) usesTop(e *core.Expr) bool {
	return g.settings.LimitStyle == LimitTop && e.Is(core.KindSelect) && e.Has("limit") && !e.Has("offset")
}

// QueryModifiers renders the trailing clauses of a query in their fixed
// order: joins, WHERE, GROUP BY, HAVING, QUALIFY, ORDER BY, LIMIT, OFFSET.
func (g *Generator) QueryModifiers(e *core.Expr) string {
	var b strings.Builder
	for _, join := range e.ArgExprs("joins") {
		b.WriteString(g.SQL(join))
	}
	for _, key := range []string{"where", "group", "having", "qualify", "order"} {
		b.WriteString(g.Arg(e, key))
	}
	b.WriteString(g.limitOffset(e))
	return b.String()
}

func (g *Generator) limitOffset(e *core.Expr) string {
	limit, offset := e.ArgExpr("limit"), e.ArgExpr("offset")
	if limit == nil && offset == nil {
		return ""
	}
	style := g.settings.LimitStyle
	if style == LimitTop {
		if g.usesTop(e) {
			return ""
		}
		style = LimitFetch
	}
	if style == LimitClause {
		return g.SQL(limit) + g.SQL(offset)
	}

	var b strings.Builder
	if offset != nil {
		b.WriteString(g.seg("OFFSET") + " " + g.SQL(offset.Expression()) + " ROWS")
	}
	if limit != nil {
		b.WriteString(g.seg("FETCH FIRST") + " " + g.SQL(limit.Expression()) + " ROWS ONLY")
	}
	return b.String()
}

func fromSQL(g *Generator, e *core.Expr) string {
	return g.seg("FROM") + " " + g.Arg(e, "this")
}

func joinSQL(g *Generator, e *core.Expr) string {
	this := g.Arg(e, "this")
	if e.Bool("comma") {
		return ", " + this
	}

	var words []string
	for _, key := range []string{"side", "kind"} {
		if w := e.Text(key); w != "" {
			words = append(words, w)
		}
	}
	words = append(words, "JOIN")
	op := strings.Join(words, " ")

	space := " "
	if g.pretty {
		space = g.seg(strings.Repeat(" ", g.pad))
	}
	var cond string
	if on := g.Arg(e, "on"); on != "" {
		cond = space + "ON " + g.indent(on, indentOpts{pad: g.pad, skipFirst: true})
	} else if using := e.ArgExprs("using"); len(using) > 0 {
		cond = space + "USING (" + g.FlatList(using, ", ") + ")"
	}
	return g.seg(op) + " " + this + cond
}

// clause renders "KEYWORD cond" with the condition indented in pretty mode.
func (g *Generator) clause(keyword string, e *core.Expr) string {
	return g.seg(keyword) + g.sep(" ") + g.Indent(g.Arg(e, "this"))
}

func whereSQL(g *Generator, e *core.Expr) string   { return g.clause("WHERE", e) }
func havingSQL(g *Generator, e *core.Expr) string  { return g.clause("HAVING", e) }
func qualifySQL(g *Generator, e *core.Expr) string { return g.clause("QUALIFY", e) }

// opExpressions renders "OP a, b". Flat forms are used inside windows.
func (g *Generator) opExpressions(op string, e *core.Expr, flat bool) string {
	if flat {
		return op + " " + g.FlatList(e.Expressions(), ", ")
	}
	exprs := g.Expressions(e)
	if exprs == "" {
		return g.seg(op)
	}
	return g.seg(op) + g.sep(" ") + exprs
}

func groupSQL(g *Generator, e *core.Expr) string {
	if e.Bool("all") {
		return g.seg("GROUP BY ALL")
	}
	return g.opExpressions("GROUP BY", e, false)
}

func orderSQL(g *Generator, e *core.Expr) string {
	return g.opExpressions("ORDER BY", e, false)
}

func orderedSQL(g *Generator, e *core.Expr) string {
	sql := g.Arg(e, "this")
	switch {
	case e.Bool("desc"):
		sql += " DESC"
	case e.Has("desc"):
		sql += " ASC"
	}
	if nulls := e.Text("nulls"); nulls != "" {
		sql += " NULLS " + strings.ToUpper(nulls)
	}
	return sql
}

func limitSQL(g *Generator, e *core.Expr) string {
	return g.seg("LIMIT") + " " + g.Arg(e, "expression")
}

func offsetSQL(g *Generator, e *core.Expr) string {
	return g.seg("OFFSET") + " " + g.Arg(e, "expression")
}

func distinctSQL(g *Generator, e *core.Expr) string {
	sql := "DISTINCT"
	if exprs := g.FlatList(e.Expressions(), ", "); exprs != "" {
		sql += " " + exprs
	}
	if on := g.Arg(e, "on"); on != "" {
		sql += " ON " + on
	}
	return sql
}

func withSQL(g *Generator, e *core.Expr) string {
	sep := ", "
	if g.pretty {
		sep = ",\n"
	}
	sql := "WITH "
	if e.Bool("recursive") {
		sql += "RECURSIVE "
	}
	return sql + g.FlatList(e.Expressions(), sep)
}

func cteSQL(g *Generator, e *core.Expr) string {
	return g.Arg(e, "alias") + " AS " + g.Wrap(e)
}

func (g *Generator) prependCTEs(e *core.Expr, sql string) string {
	if with := g.Arg(e, "with"); with != "" {
		return with + g.sep(" ") + sql
	}
	return sql
}

func subquerySQL(g *Generator, e *core.Expr) string {
	sql := g.Wrap(e)
	if alias := g.Arg(e, "alias"); alias != "" {
		sql += g.aliasSep() + alias
	}
	return sql
}

func (g *Generator) aliasSep() string {
	if g.settings.TableAliasAs {
		return " AS "
	}
	return " "
}

var setOpNames = map[core.Kind]string{
	core.KindUnion:     "UNION",
	core.KindIntersect: "INTERSECT",
	core.KindExcept:    "EXCEPT",
}

// SetOperationOp returns the operator text of a set operation node.
func (g *Generator) SetOperationOp(e *core.Expr) string {
	op := setOpNames[e.Kind()]
	if !e.Bool("distinct") {
		op += " ALL"
	}
	return op
}

func hasQueryModifiers(e *core.Expr) bool {
	return e.Has("with") || e.Has("order") || e.Has("limit") || e.Has("offset")
}

// setOperationSQL flattens left-deep chains of set operations with an
// explicit stack. Nested operations carrying their own modifiers are
// rendered whole.
func setOperationSQL(g *Generator, e *core.Expr) string {
	var parts []string
	stack := []any{e}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch v := top.(type) {
		case string:
			parts = append(parts, v)
		case *core.Expr:
			if _, ok := setOpNames[v.Kind()]; ok && (v == e || !hasQueryModifiers(v)) {
				op := g.SetOperationOp(v)
				if v != e && g.comments {
					if text := g.commentText(v.Comments); text != "" {
						op = text + g.sep(" ") + op
					}
				}
				stack = append(stack, v.Expression(), op, v.This())
				continue
			}
			parts = append(parts, g.SQL(v))
		}
	}
	sql := strings.Join(parts, g.sep(" "))
	sql += g.QueryModifiers(e)
	return g.prependCTEs(e, sql)
}
