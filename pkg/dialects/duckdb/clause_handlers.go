package duckdb

import (
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/spi"
	"github.com/leapstack-labs/glot/pkg/token"
)

// orderByAll is the single sort key of ORDER BY ALL.
const orderByAll = "ALL"

// parseOrderByWithAll handles the ORDER BY clause with DuckDB's ALL support.
// ORDER BY ALL [ASC|DESC] is kept as one ordered key on the ALL variable.
// The ORDER keyword has already been consumed.
func parseOrderByWithAll(p spi.ParserOps) (*core.Expr, error) {
	if err := p.Expect(token.BY); err != nil {
		return nil, err
	}

	if p.Match(token.ALL) {
		ordered := core.New(core.KindOrdered, core.Args{"this": core.Var(orderByAll)})
		switch {
		case p.Match(token.DESC):
			ordered.Set("desc", true)
		case p.Match(token.ASC):
			ordered.Set("desc", false)
		}
		return core.New(core.KindOrder, core.Args{"expressions": []*core.Expr{ordered}}), nil
	}

	items, err := p.ParseOrderByList()
	if err != nil {
		return nil, err
	}
	return core.New(core.KindOrder, core.Args{"expressions": items}), nil
}

// IsOrderByAll reports whether an ORDER BY node sorts by every column.
func IsOrderByAll(order *core.Expr) bool {
	items := order.Expressions()
	if len(items) != 1 {
		return false
	}
	key := items[0].This()
	return key.Is(core.KindVar) && key.Name() == orderByAll
}
