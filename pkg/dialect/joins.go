// This file contains join type definitions that form the "toolbox" of
// reusable join configurations. These can be composed into any dialect.
package dialect

import (
	"github.com/leapstack-labs/glot/pkg/token"
)

// Standard ANSI SQL join sides and kinds.
const (
	JoinInner = "INNER"
	JoinLeft  = "LEFT"
	JoinRight = "RIGHT"
	JoinFull  = "FULL"
	JoinCross = "CROSS"
	JoinSemi  = "SEMI"
	JoinAnti  = "ANTI"
)

// Dialect keywords without a builtin token.
var (
	TokenSemi = token.Register("SEMI")
	TokenAnti = token.Register("ANTI")
)

// ANSIJoinTypes contains standard SQL join types.
var ANSIJoinTypes = []JoinTypeDef{
	{
		Token:       token.INNER,
		Kind:        JoinInner,
		RequiresOn:  true,
		AllowsUsing: true,
	},
	{
		Token:         token.LEFT,
		Side:          JoinLeft,
		OptionalToken: token.OUTER,
		RequiresOn:    true,
		AllowsUsing:   true,
	},
	{
		Token:         token.RIGHT,
		Side:          JoinRight,
		OptionalToken: token.OUTER,
		RequiresOn:    true,
		AllowsUsing:   true,
	},
	{
		Token:         token.FULL,
		Side:          JoinFull,
		OptionalToken: token.OUTER,
		RequiresOn:    true,
		AllowsUsing:   true,
	},
	{
		Token: token.CROSS,
		Kind:  JoinCross,
	},
}

// SemiAntiJoinTypes adds SEMI and ANTI joins (DuckDB, Spark).
var SemiAntiJoinTypes = []JoinTypeDef{
	{
		Token:       TokenSemi,
		Kind:        JoinSemi,
		RequiresOn:  true,
		AllowsUsing: true,
	},
	{
		Token:       TokenAnti,
		Kind:        JoinAnti,
		RequiresOn:  true,
		AllowsUsing: true,
	},
}
