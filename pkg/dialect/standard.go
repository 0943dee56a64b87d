// This file contains pre-built ClauseDef definitions - the "menu items" that
// dialects can compose from. Each ClauseDef bundles a token, handler, slot,
// and metadata together.
package dialect

import (
	"github.com/leapstack-labs/glot/pkg/spi"
	"github.com/leapstack-labs/glot/pkg/token"
)

// TokenTop is the SELECT TOP keyword of T-SQL style dialects.
var TokenTop = token.Register("TOP")

// --- Standard Clause Definitions ---
// These are pre-configured ClauseDefs that dialects can compose.

var (
	// StandardWhere is the standard WHERE clause definition.
	StandardWhere = ClauseDef{
		Token:   token.WHERE,
		Handler: ParseWhere,
		Slot:    spi.SlotWhere,
	}

	// StandardGroupBy is the standard GROUP BY clause definition.
	StandardGroupBy = ClauseDef{
		Token:    token.GROUP,
		Handler:  ParseGroupBy,
		Slot:     spi.SlotGroupBy,
		Keywords: []string{"GROUP", "BY"},
	}

	// StandardHaving is the standard HAVING clause definition.
	StandardHaving = ClauseDef{
		Token:   token.HAVING,
		Handler: ParseHaving,
		Slot:    spi.SlotHaving,
	}

	// StandardOrderBy is the standard ORDER BY clause definition.
	StandardOrderBy = ClauseDef{
		Token:    token.ORDER,
		Handler:  ParseOrderBy,
		Slot:     spi.SlotOrderBy,
		Keywords: []string{"ORDER", "BY"},
	}

	// StandardLimit is the standard LIMIT clause definition.
	StandardLimit = ClauseDef{
		Token:   token.LIMIT,
		Handler: ParseLimit,
		Slot:    spi.SlotLimit,
	}

	// StandardOffset is the standard OFFSET clause definition.
	StandardOffset = ClauseDef{
		Token:   token.OFFSET,
		Handler: ParseOffset,
		Slot:    spi.SlotOffset,
	}

	// StandardFetch is the standard FETCH clause definition (SQL:2008).
	StandardFetch = ClauseDef{
		Token:   token.FETCH,
		Handler: ParseFetch,
		Slot:    spi.SlotFetch,
	}

	// StandardQualify is the QUALIFY clause definition (DuckDB, Snowflake, Databricks).
	StandardQualify = ClauseDef{
		Token:   token.QUALIFY,
		Handler: ParseQualify,
		Slot:    spi.SlotQualify,
	}
)

// StandardSelectClauses is the typical ANSI SELECT clause sequence.
// Dialects can use this directly or compose their own from the individual defs.
var StandardSelectClauses = []ClauseDef{
	StandardWhere,
	StandardGroupBy,
	StandardHaving,
	StandardOrderBy,
	StandardLimit,
	StandardOffset,
	StandardFetch,
}

// QualifySelectClauses is the SELECT clause sequence of dialects with QUALIFY.
var QualifySelectClauses = []ClauseDef{
	StandardWhere,
	StandardGroupBy,
	StandardHaving,
	StandardQualify,
	StandardOrderBy,
	StandardLimit,
	StandardOffset,
	StandardFetch,
}

// --- Configurable Clause Factory Functions ---

// GroupByOpts configures GROUP BY clause behavior.
type GroupByOpts struct {
	AllowAll bool // Support GROUP BY ALL
}

// GroupBy returns a ClauseDef for GROUP BY with options.
func GroupBy(opts GroupByOpts) ClauseDef {
	if opts.AllowAll {
		return ClauseDef{
			Token:    token.GROUP,
			Handler:  ParseGroupByWithAll,
			Slot:     spi.SlotGroupBy,
			Keywords: []string{"GROUP", "BY"},
		}
	}
	return StandardGroupBy
}
