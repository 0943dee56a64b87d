// This file contains stateless clause handlers that form the "toolbox" of
// reusable parsing logic. These handlers are pure functions that accept
// spi.ParserOps and return the clause node.
package dialect

import (
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/spi"
	"github.com/leapstack-labs/glot/pkg/token"
)

// ---------- Standard Clause Handlers ----------
// These are stateless functions that can be composed into any dialect.
// The leading keyword has already been consumed when these are called.

func conditionClause(kind core.Kind) spi.ClauseHandler {
	return func(p spi.ParserOps) (*core.Expr, error) {
		cond, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return core.New(kind, core.Args{"this": cond}), nil
	}
}

// ParseWhere handles the standard WHERE clause.
// The WHERE keyword has already been consumed.
func ParseWhere(p spi.ParserOps) (*core.Expr, error) {
	return conditionClause(core.KindWhere)(p)
}

// ParseHaving handles the standard HAVING clause.
// The HAVING keyword has already been consumed.
func ParseHaving(p spi.ParserOps) (*core.Expr, error) {
	return conditionClause(core.KindHaving)(p)
}

// ParseQualify handles the QUALIFY clause (DuckDB, Snowflake, Databricks).
// The QUALIFY keyword has already been consumed.
func ParseQualify(p spi.ParserOps) (*core.Expr, error) {
	return conditionClause(core.KindQualify)(p)
}

// ParseGroupBy handles the standard GROUP BY clause.
// The GROUP keyword has already been consumed.
func ParseGroupBy(p spi.ParserOps) (*core.Expr, error) {
	if err := p.Expect(token.BY); err != nil {
		return nil, err
	}
	exprs, err := p.ParseExpressionList()
	if err != nil {
		return nil, err
	}
	return core.New(core.KindGroup, core.Args{"expressions": exprs}), nil
}

// ParseGroupByWithAll handles GROUP BY with optional ALL keyword.
// The GROUP keyword has already been consumed.
func ParseGroupByWithAll(p spi.ParserOps) (*core.Expr, error) {
	if p.Check(token.BY) && p.Peek().Type == token.ALL {
		p.NextToken()
		p.NextToken()
		return core.New(core.KindGroup, core.Args{"all": true}), nil
	}
	return ParseGroupBy(p)
}

// ParseOrderBy handles the standard ORDER BY clause.
// The ORDER keyword has already been consumed.
func ParseOrderBy(p spi.ParserOps) (*core.Expr, error) {
	if err := p.Expect(token.BY); err != nil {
		return nil, err
	}
	items, err := p.ParseOrderByList()
	if err != nil {
		return nil, err
	}
	return core.New(core.KindOrder, core.Args{"expressions": items}), nil
}

// ParseLimit handles the standard LIMIT clause.
// The LIMIT keyword has already been consumed.
func ParseLimit(p spi.ParserOps) (*core.Expr, error) {
	n, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return core.New(core.KindLimit, core.Args{"expression": n}), nil
}

// ParseOffset handles the standard OFFSET clause, with the optional
// ROW / ROWS noise word.
// The OFFSET keyword has already been consumed.
func ParseOffset(p spi.ParserOps) (*core.Expr, error) {
	n, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !p.Match(token.ROWS) {
		p.Match(token.ROW)
	}
	return core.New(core.KindOffset, core.Args{"expression": n}), nil
}

// ParseFetch handles the FETCH FIRST/NEXT clause (SQL:2008). The result is
// stored as a plain limit.
// The FETCH keyword has already been consumed.
func ParseFetch(p spi.ParserOps) (*core.Expr, error) {
	// FIRST or NEXT (semantically identical)
	if !p.Match(token.FIRST) && !p.Match(token.NEXT) {
		p.AddError("expected FIRST or NEXT after FETCH")
		return nil, nil
	}

	// Optional count expression (if not directly ROW/ROWS)
	count := core.Number(1)
	if !p.Check(token.ROW) && !p.Check(token.ROWS) {
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		count = expr
	}

	// ROW or ROWS (both valid, singular or plural)
	if !p.Match(token.ROW) && !p.Match(token.ROWS) {
		p.AddError("expected ROW or ROWS in FETCH clause")
	}
	if !p.Match(token.ONLY) {
		p.AddError("expected ONLY in FETCH clause")
	}
	return core.New(core.KindLimit, core.Args{"expression": count}), nil
}
