package core

import (
	"fmt"
	"strings"
)

// SelectBuilder assembles a SELECT statement clause by clause. Calls may
// come in any order; the rendered statement always uses SQL clause order.
// The first error is kept and returned by Build and SQL.
type SelectBuilder struct {
	expr    *Expr
	dialect string
	err     error
}

// Select starts a SELECT with the given projections. Strings are parsed as
// expressions.
func Select(exprs ...any) *SelectBuilder {
	b := &SelectBuilder{expr: New(KindSelect, nil)}
	return b.Columns(exprs...)
}

// Dialect sets the dialect used to parse string fragments.
func (b *SelectBuilder) Dialect(name string) *SelectBuilder {
	b.dialect = name
	return b
}

func (b *SelectBuilder) parse(v any, kind Kind) *Expr {
	if b.err != nil {
		return nil
	}
	e, err := MaybeParse(v, kind, b.dialect)
	if err != nil {
		b.err = err
		return nil
	}
	return e
}

// Columns appends projections.
func (b *SelectBuilder) Columns(exprs ...any) *SelectBuilder {
	for _, v := range exprs {
		if e := b.parse(v, KindInvalid); e != nil {
			b.expr.Append("expressions", e)
		}
	}
	return b
}

// Distinct marks the SELECT as SELECT DISTINCT.
func (b *SelectBuilder) Distinct() *SelectBuilder {
	b.expr.Set("distinct", New(KindDistinct, nil))
	return b
}

// From sets the FROM source. A string names a table or is parsed as one.
func (b *SelectBuilder) From(source any) *SelectBuilder {
	if e := b.parse(source, KindTable); e != nil {
		b.expr.Set("from", New(KindFrom, Args{"this": e}))
	}
	return b
}

// Join appends a join. joinType is a space separated list of the words
// LEFT, RIGHT, FULL, INNER, OUTER, CROSS, SEMI or ANTI and may be empty. on
// may be nil.
func (b *SelectBuilder) Join(source any, on any, joinType string) *SelectBuilder {
	table := b.parse(source, KindTable)
	if table == nil {
		return b
	}
	args := Args{"this": table}
	for _, word := range strings.Fields(strings.ToUpper(joinType)) {
		switch word {
		case "LEFT", "RIGHT", "FULL":
			args["side"] = word
		case "INNER", "OUTER", "CROSS", "SEMI", "ANTI":
			args["kind"] = word
		default:
			if b.err == nil {
				b.err = fmt.Errorf("%w: unknown join type %q", ErrInvalidArgument, joinType)
			}
			return b
		}
	}
	if on != nil {
		if cond := b.parse(on, KindInvalid); cond != nil {
			args["on"] = cond
		}
	}
	b.expr.Append("joins", New(KindJoin, args))
	return b
}

// conjoin ANDs conditions onto the clause stored under key.
func (b *SelectBuilder) conjoin(key string, clause Kind, conds []any) *SelectBuilder {
	var this *Expr
	if existing := b.expr.ArgExpr(key); existing != nil {
		this = existing.This()
	}
	for _, c := range conds {
		cond := b.parse(c, KindInvalid)
		if cond == nil {
			return b
		}
		if this == nil {
			this = cond
			continue
		}
		if this.kind == KindOr {
			this = Paren(this)
		}
		this = New(KindAnd, Args{"this": this, "expression": wrapConnector(cond)})
	}
	if this != nil {
		b.expr.Set(key, New(clause, Args{"this": this}))
	}
	return b
}

// Where ANDs conditions onto the WHERE clause.
func (b *SelectBuilder) Where(conds ...any) *SelectBuilder {
	return b.conjoin("where", KindWhere, conds)
}

// Having ANDs conditions onto the HAVING clause.
func (b *SelectBuilder) Having(conds ...any) *SelectBuilder {
	return b.conjoin("having", KindHaving, conds)
}

// Qualify ANDs conditions onto the QUALIFY clause.
func (b *SelectBuilder) Qualify(conds ...any) *SelectBuilder {
	return b.conjoin("qualify", KindQualify, conds)
}

// GroupBy appends grouping expressions.
func (b *SelectBuilder) GroupBy(exprs ...any) *SelectBuilder {
	group := b.expr.ArgExpr("group")
	if group == nil {
		group = New(KindGroup, nil)
	}
	for _, v := range exprs {
		if e := b.parse(v, KindInvalid); e != nil {
			group.Append("expressions", e)
		}
	}
	if len(group.Expressions()) > 0 {
		b.expr.Set("group", group)
	}
	return b
}

// OrderBy appends ordering terms. Strings such as "a DESC" are parsed.
func (b *SelectBuilder) OrderBy(exprs ...any) *SelectBuilder {
	order := b.expr.ArgExpr("order")
	if order == nil {
		order = New(KindOrder, nil)
	}
	for _, v := range exprs {
		e := b.parse(v, KindOrdered)
		if e == nil {
			continue
		}
		if e.kind != KindOrdered {
			e = New(KindOrdered, Args{"this": e})
		}
		order.Append("expressions", e)
	}
	if len(order.Expressions()) > 0 {
		b.expr.Set("order", order)
	}
	return b
}

// Limit sets the LIMIT clause.
func (b *SelectBuilder) Limit(n any) *SelectBuilder {
	if e := b.parse(n, KindInvalid); e != nil {
		b.expr.Set("limit", New(KindLimit, Args{"expression": e}))
	}
	return b
}

// Offset sets the OFFSET clause.
func (b *SelectBuilder) Offset(n any) *SelectBuilder {
	if e := b.parse(n, KindInvalid); e != nil {
		b.expr.Set("offset", New(KindOffset, Args{"expression": e}))
	}
	return b
}

// With adds a common table expression.
func (b *SelectBuilder) With(alias string, query any) *SelectBuilder {
	q := b.parse(query, KindSelect)
	if q == nil {
		return b
	}
	with := b.expr.ArgExpr("with")
	if with == nil {
		with = New(KindWith, nil)
	}
	with.Append("expressions", New(KindCTE, Args{"this": q, "alias": TableAlias(alias)}))
	b.expr.Set("with", with)
	return b
}

// Build returns the assembled SELECT node.
func (b *SelectBuilder) Build() (*Expr, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.expr, nil
}

// SQL renders the assembled statement.
func (b *SelectBuilder) SQL(opts ...SQLOption) (string, error) {
	e, err := b.Build()
	if err != nil {
		return "", err
	}
	return e.SQL(opts...)
}
