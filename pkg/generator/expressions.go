package generator

import (
	"strings"

	"github.com/leapstack-labs/glot/pkg/core"
)

var handlers map[core.Kind]Transform

func init() {
	handlers = map[core.Kind]Transform{
		core.KindIdentifier:       identifierSQL,
		core.KindColumn:           columnSQL,
		core.KindTable:            tableSQL,
		core.KindStar:             constant("*"),
		core.KindLiteral:          literalSQL,
		core.KindNull:             constant("NULL"),
		core.KindBoolean:          booleanSQL,
		core.KindVar:              varSQL,
		core.KindPlaceholder:      placeholderSQL,
		core.KindDot:              dotSQL,
		core.KindAlias:            aliasSQL,
		core.KindTableAlias:       tableAliasSQL,
		core.KindParen:            parenSQL,
		core.KindTuple:            tupleSQL,
		core.KindArray:            arraySQL,
		core.KindSubquery:         subquerySQL,
		core.KindColumnDef:        columnDefSQL,
		core.KindSelect:           selectSQL,
		core.KindUnion:            setOperationSQL,
		core.KindIntersect:        setOperationSQL,
		core.KindExcept:           setOperationSQL,
		core.KindFrom:             fromSQL,
		core.KindJoin:             joinSQL,
		core.KindWhere:            whereSQL,
		core.KindGroup:            groupSQL,
		core.KindHaving:           havingSQL,
		core.KindQualify:          qualifySQL,
		core.KindOrder:            orderSQL,
		core.KindOrdered:          orderedSQL,
		core.KindLimit:            limitSQL,
		core.KindOffset:           offsetSQL,
		core.KindWith:             withSQL,
		core.KindCTE:              cteSQL,
		core.KindDistinct:         distinctSQL,
		core.KindDataType:         dataTypeSQL,
		core.KindDataTypeParam:    thisSQL,
		core.KindCast:             castSQL("CAST"),
		core.KindTryCast:          castSQL("TRY_CAST"),
		core.KindCase:             caseSQL,
		core.KindIf:               ifSQL,
		core.KindNot:              prefixSQL("NOT "),
		core.KindNeg:              negSQL,
		core.KindBitwiseNot:       prefixSQL("~"),
		core.KindAnd:              connectorSQL,
		core.KindOr:               connectorSQL,
		core.KindIntDiv:           intDivSQL,
		core.KindLike:             likeSQL("LIKE"),
		core.KindILike:            likeSQL("ILIKE"),
		core.KindRegexpLike:       functionSQL,
		core.KindIn:               inSQL,
		core.KindBetween:          betweenSQL,
		core.KindExists:           existsSQL,
		core.KindAny:              quantifierSQL("ANY"),
		core.KindAll:              quantifierSQL("ALL"),
		core.KindWindow:           windowSQL,
		core.KindWindowSpec:       windowSpecSQL,
		core.KindInterval:         intervalSQL,
		core.KindExtract:          extractSQL,
		core.KindBracket:          bracketSQL,
		core.KindLambda:           lambdaSQL,
		core.KindAnonymous:        anonymousSQL,
		core.KindCurrentDate:      constant("CURRENT_DATE"),
		core.KindCurrentTimestamp: currentTimestampSQL,
		core.KindTrim:             trimSQL,
		core.KindStrPosition:      strPositionSQL,
	}
	for kind, op := range BinaryOps {
		handlers[kind] = binaryOp(op)
	}
}

// BinaryOps maps operator kinds to their SQL operator.
var BinaryOps = map[core.Kind]string{
	core.KindAdd:        "+",
	core.KindSub:        "-",
	core.KindMul:        "*",
	core.KindDiv:        "/",
	core.KindMod:        "%",
	core.KindDPipe:      "||",
	core.KindBitwiseAnd: "&",
	core.KindBitwiseOr:  "|",
	core.KindBitwiseXor: "^",
	core.KindEQ:         "=",
	core.KindNEQ:        "<>",
	core.KindGT:         ">",
	core.KindGTE:        ">=",
	core.KindLT:         "<",
	core.KindLTE:        "<=",
	core.KindNullSafeEQ: "IS NOT DISTINCT FROM",
	core.KindIs:         "IS",
}

func thisSQL(g *Generator, e *core.Expr) string { return g.Arg(e, "this") }

func functionSQL(g *Generator, e *core.Expr) string { return g.FunctionFallback(e) }

func currentTimestampSQL(g *Generator, e *core.Expr) string {
	if e.Has("this") {
		return g.FunctionFallback(e)
	}
	return "CURRENT_TIMESTAMP"
}

func constant(sql string) Transform {
	return func(*Generator, *core.Expr) string { return sql }
}

func prefixSQL(prefix string) Transform {
	return func(g *Generator, e *core.Expr) string { return prefix + g.Arg(e, "this") }
}

func binaryOp(op string) Transform {
	return func(g *Generator, e *core.Expr) string { return g.Binary(e, op) }
}

// RenameFunc renders a function kind under a different name, keeping the
// declared argument order.
func RenameFunc(name string) Transform {
	return func(g *Generator, e *core.Expr) string {
		return g.funcSQLs(name, g.argSQLs(e)...)
	}
}

func (g *Generator) argSQLs(e *core.Expr) []string {
	var args []string
	for _, spec := range e.Kind().Info().Args {
		switch v := e.Arg(spec.Name).(type) {
		case *core.Expr:
			args = append(args, g.SQL(v))
		case []*core.Expr:
			for _, child := range v {
				args = append(args, g.SQL(child))
			}
		case string:
			args = append(args, v)
		}
	}
	return args
}

func identifierSQL(g *Generator, e *core.Expr) string {
	text := e.Text("this")
	quoted := e.Bool("quoted")
	if g.normalize && !quoted {
		text = strings.ToLower(text)
	}
	if quoted || g.identify || g.settings.IsReserved(text) || !isSafeIdentifier(text) {
		return g.settings.Identifiers.QuoteIdentifier(text)
	}
	return text
}

func isSafeIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '$'):
		default:
			return false
		}
	}
	return true
}

func (g *Generator) dotted(e *core.Expr, keys ...string) string {
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if part := g.Arg(e, key); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ".")
}

func columnSQL(g *Generator, e *core.Expr) string {
	return g.dotted(e, "catalog", "db", "table", "this")
}

func tableSQL(g *Generator, e *core.Expr) string {
	sql := g.dotted(e, "catalog", "db", "this")
	if alias := g.Arg(e, "alias"); alias != "" {
		sql += g.aliasSep() + alias
	}
	return sql
}

func tableAliasSQL(g *Generator, e *core.Expr) string {
	sql := g.Arg(e, "this")
	if cols := e.ArgExprs("columns"); len(cols) > 0 {
		sql += "(" + g.FlatList(cols, ", ") + ")"
	}
	return sql
}

func aliasSQL(g *Generator, e *core.Expr) string {
	sql := g.Arg(e, "this")
	if alias := g.Arg(e, "alias"); alias != "" {
		sql += " AS " + alias
	}
	return sql
}

// QuoteString renders text as a string literal of the dialect.
func (g *Generator) QuoteString(text string) string {
	s := g.settings
	if strings.HasPrefix(s.StringEscape, `\`) {
		text = strings.ReplaceAll(text, `\`, `\\`)
	}
	text = strings.ReplaceAll(text, s.StringQuote, s.StringEscape)
	return s.StringQuote + text + s.StringQuote
}

func literalSQL(g *Generator, e *core.Expr) string {
	if e.IsString() {
		return g.QuoteString(e.Text("this"))
	}
	return e.Text("this")
}

func booleanSQL(_ *Generator, e *core.Expr) string {
	if e.Bool("this") {
		return "TRUE"
	}
	return "FALSE"
}

func varSQL(_ *Generator, e *core.Expr) string { return e.Text("this") }

func placeholderSQL(_ *Generator, e *core.Expr) string {
	if name := e.Text("this"); name != "" {
		return name
	}
	return "?"
}

func dotSQL(g *Generator, e *core.Expr) string {
	var parts []string
	for node := e; ; node = node.This() {
		parts = append(parts, g.Arg(node, "expression"))
		if !node.This().Is(core.KindDot) {
			parts = append(parts, g.Arg(node, "this"))
			break
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

func parenSQL(g *Generator, e *core.Expr) string {
	inner := g.segTight(g.Indent(g.Arg(e, "this")))
	return "(" + inner + g.segTight(")")
}

func tupleSQL(g *Generator, e *core.Expr) string {
	return "(" + g.list(e.Expressions(), listOpts{dynamic: true, newLine: true, skipFirst: true, skipLast: true}) + ")"
}

func arraySQL(g *Generator, e *core.Expr) string {
	return "ARRAY[" + g.FlatList(e.Expressions(), ", ") + "]"
}

func bracketSQL(g *Generator, e *core.Expr) string {
	return g.Arg(e, "this") + "[" + g.FlatList(e.Expressions(), ", ") + "]"
}

func columnDefSQL(g *Generator, e *core.Expr) string {
	sql := g.Arg(e, "this")
	if kind := g.Arg(e, "kind"); kind != "" {
		sql += " " + kind
	}
	return sql
}

// TypeName returns the dialect spelling of t.
func (g *Generator) TypeName(t core.Type) string {
	if name, ok := g.settings.TypeMapping[t]; ok {
		return name
	}
	return string(t)
}

func dataTypeSQL(g *Generator, e *core.Expr) string {
	t := e.TypeOf()
	name := g.TypeName(t)
	if t == core.TypeUserDefined && e.Has("kind") {
		name = e.Text("kind")
	}
	interior := g.FlatList(e.Expressions(), ", ")
	if interior == "" || strings.Contains(name, "(") {
		return name
	}
	if e.Bool("nested") {
		return name + "<" + interior + ">"
	}
	return name + "(" + interior + ")"
}

func castSQL(name string) Transform {
	return func(g *Generator, e *core.Expr) string {
		return g.NormalizeFunc(name) + "(" + g.Arg(e, "this") + " AS " + g.Arg(e, "to") + ")"
	}
}

func caseSQL(g *Generator, e *core.Expr) string {
	return g.caseStatements(e.Arg("this"), e.ArgExprs("ifs"), e.ArgExpr("default"))
}

func (g *Generator) caseStatements(subject any, ifs []*core.Expr, def *core.Expr) string {
	statements := []string{"CASE"}
	if s, ok := subject.(*core.Expr); ok && s != nil {
		statements[0] = "CASE " + g.SQL(s)
	}
	for _, branch := range ifs {
		statements = append(statements, "WHEN "+g.Arg(branch, "this"), "THEN "+g.Arg(branch, "true"))
	}
	if d := g.SQL(def); d != "" {
		statements = append(statements, "ELSE "+d)
	}
	statements = append(statements, "END")
	if g.pretty && g.tooWide(statements) {
		return g.indent(strings.Join(statements, "\n"), indentOpts{pad: g.pad, skipFirst: true, skipLast: true})
	}
	return strings.Join(statements, " ")
}

// ifSQL renders IF as a searched CASE.
func ifSQL(g *Generator, e *core.Expr) string {
	return g.caseStatements(nil, []*core.Expr{e}, e.ArgExpr("false"))
}

func negSQL(g *Generator, e *core.Expr) string {
	this := g.Arg(e, "this")
	if strings.HasPrefix(this, "-") {
		return "- " + this
	}
	return "-" + this
}

func connectorSQL(g *Generator, e *core.Expr) string { return g.connector(e) }

// intDivSQL emulates integer division by truncating a regular division.
func intDivSQL(g *Generator, e *core.Expr) string {
	div := g.Arg(e, "this") + " / " + g.Arg(e, "expression")
	return g.NormalizeFunc("CAST") + "(" + div + " AS " + g.TypeName(core.TypeInt) + ")"
}

func likeSQL(op string) Transform {
	return func(g *Generator, e *core.Expr) string {
		sql := g.Binary(e, op)
		if esc := g.Arg(e, "escape"); esc != "" {
			sql += " ESCAPE " + esc
		}
		return sql
	}
}

// LowerLike renders ILIKE as LOWER(x) LIKE LOWER(y) for dialects without
// case-insensitive matching.
func LowerLike(g *Generator, e *core.Expr) string {
	sql := g.Func("LOWER", e.This()) + " LIKE " + g.Func("LOWER", e.Expression())
	if esc := g.Arg(e, "escape"); esc != "" {
		sql += " ESCAPE " + esc
	}
	return sql
}

// queryOperand renders a query in parentheses. Subqueries already carry them.
func (g *Generator) queryOperand(q *core.Expr) string {
	if q.Is(core.KindSubquery, core.KindParen, core.KindTuple) {
		return g.SQL(q)
	}
	return g.wrapSQL(g.SQL(q))
}

func inSQL(g *Generator, e *core.Expr) string {
	var in string
	if q := e.ArgExpr("query"); q != nil {
		in = g.queryOperand(q)
	} else {
		in = "(" + g.list(e.Expressions(), listOpts{dynamic: true, newLine: true, skipFirst: true, skipLast: true}) + ")"
	}
	return g.Arg(e, "this") + " IN " + in
}

func betweenSQL(g *Generator, e *core.Expr) string {
	return g.Arg(e, "this") + " BETWEEN " + g.Arg(e, "low") + " AND " + g.Arg(e, "high")
}

// existsSQL renders EXISTS(query), unwrapping one level of subquery so the
// parentheses are not doubled.
func existsSQL(g *Generator, e *core.Expr) string {
	q := e.This()
	if q.Is(core.KindSubquery) && !q.Has("alias") {
		q = q.This()
	}
	return "EXISTS" + g.wrapSQL(g.SQL(q))
}

func quantifierSQL(name string) Transform {
	return func(g *Generator, e *core.Expr) string {
		this := e.This()
		if this != nil && this.Kind().IsQuery() {
			return name + " " + g.queryOperand(this)
		}
		return g.Func(name, this)
	}
}

func windowSQL(g *Generator, e *core.Expr) string {
	this := g.Arg(e, "this")
	alias := g.Arg(e, "alias")
	var parts []string
	if partition := e.ArgExprs("partition_by"); len(partition) > 0 {
		parts = append(parts, "PARTITION BY "+g.FlatList(partition, ", "))
	}
	if order := e.ArgExpr("order"); order != nil {
		parts = append(parts, g.opExpressions("ORDER BY", order, true))
	}
	if spec := g.Arg(e, "spec"); spec != "" {
		parts = append(parts, spec)
	}
	if len(parts) == 0 && alias != "" {
		return this + " OVER " + alias
	}
	if alias != "" {
		parts = append([]string{alias}, parts...)
	}
	return this + " OVER (" + strings.Join(parts, " ") + ")"
}

func windowSpecSQL(g *Generator, e *core.Expr) string {
	bound := func(value, side string) string {
		v := g.Arg(e, value)
		if s := e.Text(side); s != "" {
			v += " " + s
		}
		return v
	}
	start := bound("start", "start_side")
	end := bound("end", "end_side")
	if end == "" {
		end = "CURRENT ROW"
	}
	kind := e.Text("kind")
	if kind == "" {
		kind = "ROWS"
	}
	return kind + " BETWEEN " + start + " AND " + end
}

func intervalSQL(g *Generator, e *core.Expr) string {
	sql := "INTERVAL " + g.Arg(e, "this")
	if unit := g.Arg(e, "unit"); unit != "" {
		sql += " " + unit
	}
	return sql
}

func extractSQL(g *Generator, e *core.Expr) string {
	return g.NormalizeFunc("EXTRACT") + "(" + g.Arg(e, "this") + " FROM " + g.Arg(e, "expression") + ")"
}

func lambdaSQL(g *Generator, e *core.Expr) string {
	params := e.Expressions()
	args := g.FlatList(params, ", ")
	if len(params) > 1 {
		args = "(" + args + ")"
	}
	return args + " -> " + g.Arg(e, "this")
}

func anonymousSQL(g *Generator, e *core.Expr) string {
	return g.Func(e.Text("this"), e.Expressions()...)
}

func trimSQL(g *Generator, e *core.Expr) string {
	chars := g.Arg(e, "expression")
	if chars == "" {
		return g.Func("TRIM", e.This())
	}
	inner := chars + " FROM " + g.Arg(e, "this")
	if pos := e.Text("position"); pos != "" {
		inner = strings.ToUpper(pos) + " " + inner
	}
	return g.NormalizeFunc("TRIM") + "(" + inner + ")"
}

func strPositionSQL(g *Generator, e *core.Expr) string {
	if e.Has("position") {
		return g.FunctionFallback(e)
	}
	return g.NormalizeFunc("POSITION") + "(" + g.Arg(e, "substr") + " IN " + g.Arg(e, "this") + ")"
}
