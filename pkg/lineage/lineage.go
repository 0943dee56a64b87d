// Package lineage traces output columns of a query back to the columns of
// the tables it reads.
package lineage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/parser"
)

// TransformType describes how source columns are transformed.
type TransformType string

const (
	// TransformDirect means the column is a direct copy (no transformation).
	TransformDirect TransformType = ""
	// TransformExpression means the column is derived from an expression.
	TransformExpression TransformType = "EXPR"
)

// SourceColumn represents a source column in the lineage.
type SourceColumn struct {
	Table  string `json:"table,omitempty"` // may be qualified: db.table
	Column string `json:"column"`
}

// ColumnLineage describes the lineage of a single output column.
type ColumnLineage struct {
	Name      string         `json:"name"`
	Sources   []SourceColumn `json:"sources,omitempty"`
	Transform TransformType  `json:"transform,omitempty"`
	Function  string         `json:"function,omitempty"` // aggregates, windows and column-free calls
}

// ModelLineage describes the complete lineage of a query.
type ModelLineage struct {
	Sources []string         `json:"sources"` // deduplicated, sorted
	Columns []*ColumnLineage `json:"columns"`
}

// Schema maps table names to their column names. Keys may be bare or
// qualified the way the query spells them.
type Schema map[string][]string

// ExtractLineageOptions configures the lineage extraction.
type ExtractLineageOptions struct {
	Dialect *dialect.Dialect // defaults to ANSI
	Schema  Schema           // needed to expand SELECT *
}

// ExtractLineage extracts column-level lineage from a SQL statement.
// The schema parameter is optional but required for SELECT * expansion.
func ExtractLineage(sql string, schema Schema) (*ModelLineage, error) {
	return ExtractLineageWithOptions(sql, ExtractLineageOptions{Schema: schema})
}

// ExtractLineageWithOptions extracts lineage with full configuration options.
func ExtractLineageWithOptions(sql string, opts ExtractLineageOptions) (*ModelLineage, error) {
	d := opts.Dialect
	if d == nil {
		d = dialect.ANSI
	}

	stmt, err := parser.ParseOne(sql, d)
	if err != nil {
		return nil, err
	}
	return FromExpr(stmt, opts.Schema)
}

// FromExpr extracts lineage from an already parsed query.
func FromExpr(stmt *core.Expr, schema Schema) (*ModelLineage, error) {
	if stmt == nil {
		return nil, fmt.Errorf("lineage: empty statement")
	}
	if !stmt.Kind().IsQuery() {
		return nil, fmt.Errorf("lineage: %s is not a query", stmt.Kind())
	}

	x := &extractor{
		schema:  schema,
		sources: make(map[string]struct{}),
	}
	columns := x.query(stmt, nil)

	return &ModelLineage{
		Sources: x.sortedSources(),
		Columns: columns,
	}, nil
}

// extractor walks a query tree collecting lineage. Sources accumulate
// across every nested query it visits.
type extractor struct {
	schema  Schema
	sources map[string]struct{}
}

// query returns the output columns of a SELECT, set operation or
// parenthesized query. outer is the enclosing scope, if any, and supplies
// CTEs and correlated references.
func (x *extractor) query(q *core.Expr, outer *scope) []*ColumnLineage {
	if q.Is(core.KindSubquery) {
		return x.query(q.This(), outer)
	}

	sc := newScope(outer)
	if with := q.ArgExpr("with"); with != nil {
		for _, cte := range with.Expressions() {
			// Each CTE sees the ones defined before it.
			columns := renameColumns(x.query(cte.This(), sc), cte.ArgExpr("alias"))
			sc.ctes[strings.ToLower(cte.Alias())] = columns
		}
	}

	switch q.Kind() {
	case core.KindSelect:
		return x.selectColumns(q, sc)
	case core.KindUnion, core.KindIntersect, core.KindExcept:
		columns := x.query(q.This(), sc)
		right := x.query(q.Expression(), sc)
		// Output names come from the left side, sources from both.
		for i, col := range columns {
			if i < len(right) {
				col.Sources = mergeSources(col.Sources, right[i].Sources)
				if col.Transform == TransformDirect {
					col.Transform = TransformExpression
				}
			}
		}
		return columns
	}
	return nil
}

func (x *extractor) selectColumns(sel *core.Expr, sc *scope) []*ColumnLineage {
	if from := sel.ArgExpr("from"); from != nil {
		x.register(sc, from.This())
	}
	for _, join := range sel.ArgExprs("joins") {
		x.register(sc, join.This())
	}

	var columns []*ColumnLineage
	for i, item := range sel.Expressions() {
		columns = append(columns, x.selectItem(sc, item, i)...)
	}
	return columns
}

// register adds a FROM or JOIN source to the scope.
func (x *extractor) register(sc *scope, source *core.Expr) {
	if source == nil {
		return
	}

	switch source.Kind() {
	case core.KindTable:
		if source.This().Is(core.KindIdentifier) {
			name := source.Name()
			if source.Text("db") == "" && source.Text("catalog") == "" {
				if columns, ok := sc.lookupCTE(name); ok {
					sc.add(&scopeEntry{name: source.AliasOrName(), columns: columns, derived: true})
					return
				}
			}
			qualified := qualifiedName(source)
			x.sources[qualified] = struct{}{}
			sc.add(&scopeEntry{
				name:    source.AliasOrName(),
				table:   qualified,
				columns: x.schemaColumns(qualified, name),
			})
			return
		}
		// Table valued function
		sc.add(&scopeEntry{name: source.Alias(), derived: true})

	case core.KindSubquery:
		columns := renameColumns(x.query(source.This(), sc), source.ArgExpr("alias"))
		sc.add(&scopeEntry{name: source.Alias(), columns: columns, derived: true})

	default:
		sc.add(&scopeEntry{name: source.Alias(), derived: true})
	}
}

func (x *extractor) schemaColumns(qualified, name string) []*ColumnLineage {
	names, ok := x.lookupSchema(qualified)
	if !ok {
		names, ok = x.lookupSchema(name)
	}
	if !ok {
		return nil
	}
	columns := make([]*ColumnLineage, len(names))
	for i, col := range names {
		columns[i] = &ColumnLineage{
			Name:      col,
			Sources:   []SourceColumn{{Table: qualified, Column: col}},
			Transform: TransformDirect,
		}
	}
	return columns
}

func (x *extractor) lookupSchema(table string) ([]string, bool) {
	if cols, ok := x.schema[table]; ok {
		return cols, true
	}
	for name, cols := range x.schema {
		if strings.EqualFold(name, table) {
			return cols, true
		}
	}
	return nil, false
}

// selectItem returns the lineage of one projection. Stars may expand into
// several columns.
func (x *extractor) selectItem(sc *scope, item *core.Expr, index int) []*ColumnLineage {
	expr := item.UnaliasExpr()
	if expr.Is(core.KindStar) {
		return x.expandStar(sc, "")
	}
	if expr.Is(core.KindColumn) && expr.This().Is(core.KindStar) {
		return x.expandStar(sc, expr.Text("table"))
	}

	col := x.expression(sc, expr)
	col.Name = item.Alias()
	if col.Name == "" {
		col.Name = inferColumnName(expr, index)
	}
	return []*ColumnLineage{col}
}

// expandStar expands * or table.* using the schema and derived columns.
// When any table's columns are unknown a single placeholder is returned.
func (x *extractor) expandStar(sc *scope, table string) []*ColumnLineage {
	placeholder := func() []*ColumnLineage {
		name := "*"
		if table != "" {
			name = table + ".*"
		}
		return []*ColumnLineage{{Name: name, Transform: TransformDirect}}
	}

	entries := sc.entries
	if table != "" {
		entry := sc.lookup(table)
		if entry == nil {
			return placeholder()
		}
		entries = []*scopeEntry{entry}
	}
	if len(entries) == 0 {
		return placeholder()
	}

	var columns []*ColumnLineage
	for _, entry := range entries {
		if entry.columns == nil {
			return placeholder()
		}
		for _, col := range entry.columns {
			columns = append(columns, col.clone())
		}
	}
	return columns
}

// expression classifies a projection expression.
func (x *extractor) expression(sc *scope, e *core.Expr) *ColumnLineage {
	switch {
	case e.Is(core.KindParen):
		return x.expression(sc, e.This())

	case e.Is(core.KindColumn):
		if derived := x.resolve(sc, e); derived != nil {
			return &ColumnLineage{
				Sources:   derived.Sources,
				Transform: derived.Transform,
				Function:  derived.Function,
			}
		}
		return &ColumnLineage{Transform: TransformDirect}

	case e.Is(core.KindLiteral, core.KindNull, core.KindBoolean):
		return &ColumnLineage{Transform: TransformExpression}

	case e.Is(core.KindCast, core.KindTryCast):
		inner := x.expression(sc, e.This())
		return &ColumnLineage{Sources: inner.Sources, Transform: TransformExpression}

	case e.Is(core.KindWindow):
		return &ColumnLineage{
			Sources:   x.collect(sc, e),
			Transform: TransformExpression,
			Function:  functionName(e.This()),
		}

	case e.Kind().IsAggregate():
		return &ColumnLineage{
			Sources:   x.collect(sc, e),
			Transform: TransformExpression,
			Function:  functionName(e),
		}

	case e.Kind().IsFunction() || e.Is(core.KindAnonymous):
		sources := x.collect(sc, e)
		switch len(sources) {
		case 0:
			return &ColumnLineage{Transform: TransformExpression, Function: functionName(e)}
		case 1:
			return &ColumnLineage{Sources: sources, Transform: TransformDirect}
		}
		return &ColumnLineage{Sources: sources, Transform: TransformExpression}
	}

	return &ColumnLineage{Sources: x.collect(sc, e), Transform: TransformExpression}
}

// collect gathers the distinct source columns referenced anywhere in e.
// Nested queries are extracted in a child scope so correlated references
// still resolve.
func (x *extractor) collect(sc *scope, e *core.Expr) []SourceColumn {
	var sources []SourceColumn
	isQuery := func(n *core.Expr) bool { return n != e && n.Kind().IsQuery() }

	for n := range e.DFS(isQuery) {
		switch {
		case isQuery(n):
			for _, col := range x.query(n, sc) {
				sources = mergeSources(sources, col.Sources)
			}
		case n.Is(core.KindColumn) && !n.This().Is(core.KindStar):
			if resolved := x.resolve(sc, n); resolved != nil {
				sources = mergeSources(sources, resolved.Sources)
			}
		}
	}
	return sources
}

// resolve maps a column reference to the lineage of the column it names.
func (x *extractor) resolve(sc *scope, col *core.Expr) *ColumnLineage {
	name := col.Name()
	table := col.Text("table")

	if table != "" {
		if entry := sc.lookup(table); entry != nil {
			return entry.column(name)
		}
		// Unknown qualifier, take it at its word.
		x.sources[table] = struct{}{}
		return direct(SourceColumn{Table: table, Column: name})
	}

	if entry := sc.owner(name); entry != nil {
		return entry.column(name)
	}
	return direct(SourceColumn{Column: name})
}

func (x *extractor) sortedSources() []string {
	sources := make([]string, 0, len(x.sources))
	for s := range x.sources {
		if s != "" {
			sources = append(sources, s)
		}
	}
	sort.Strings(sources)
	return sources
}

func direct(source SourceColumn) *ColumnLineage {
	return &ColumnLineage{Sources: []SourceColumn{source}, Transform: TransformDirect}
}

func (c *ColumnLineage) clone() *ColumnLineage {
	out := *c
	out.Sources = append([]SourceColumn(nil), c.Sources...)
	return &out
}

// renameColumns applies the column list of a table alias, as in
// "t(a, b)", to derived columns.
func renameColumns(columns []*ColumnLineage, alias *core.Expr) []*ColumnLineage {
	if alias == nil {
		return columns
	}
	for i, ident := range alias.ArgExprs("columns") {
		if i < len(columns) {
			columns[i].Name = ident.Name()
		}
	}
	return columns
}

// mergeSources merges two source lists, removing duplicates.
func mergeSources(a, b []SourceColumn) []SourceColumn {
	seen := make(map[SourceColumn]struct{}, len(a)+len(b))
	var result []SourceColumn
	for _, list := range [][]SourceColumn{a, b} {
		for _, s := range list {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				result = append(result, s)
			}
		}
	}
	return result
}

func qualifiedName(table *core.Expr) string {
	var parts []string
	for _, key := range []string{"catalog", "db"} {
		if part := table.Text(key); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(append(parts, table.Name()), ".")
}

func functionName(fn *core.Expr) string {
	if fn.Is(core.KindAnonymous) {
		return strings.ToLower(fn.Name())
	}
	return strings.ToLower(fn.Kind().FunctionName())
}

// inferColumnName infers a column name from an unaliased expression.
func inferColumnName(e *core.Expr, index int) string {
	switch {
	case e.Is(core.KindColumn):
		return e.Name()
	case e.Is(core.KindCast, core.KindTryCast, core.KindParen):
		return inferColumnName(e.This(), index)
	case e.Kind().IsFunction() || e.Is(core.KindAnonymous):
		return functionName(e)
	}
	return fmt.Sprintf("column%d", index)
}
