// This file contains operator definitions that form the "toolbox" of
// reusable operator configurations. These can be composed into any dialect.
package dialect

import (
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/spi"
	"github.com/leapstack-labs/glot/pkg/token"
)

// ANSIOperators contains standard SQL operators with their precedence.
var ANSIOperators = []OperatorDef{
	// Logical operators (lowest precedence)
	{Token: token.OR, Precedence: spi.PrecedenceOr, Kind: core.KindOr},
	{Token: token.AND, Precedence: spi.PrecedenceAnd, Kind: core.KindAnd},

	// Comparison operators
	{Token: token.EQ, Precedence: spi.PrecedenceComparison, Kind: core.KindEQ},
	{Token: token.NE, Precedence: spi.PrecedenceComparison, Kind: core.KindNEQ},
	{Token: token.LT, Precedence: spi.PrecedenceComparison, Kind: core.KindLT},
	{Token: token.GT, Precedence: spi.PrecedenceComparison, Kind: core.KindGT},
	{Token: token.LE, Precedence: spi.PrecedenceComparison, Kind: core.KindLTE},
	{Token: token.GE, Precedence: spi.PrecedenceComparison, Kind: core.KindGTE},
	{Token: token.LIKE, Precedence: spi.PrecedenceComparison},
	{Token: token.IN, Precedence: spi.PrecedenceComparison},
	{Token: token.BETWEEN, Precedence: spi.PrecedenceComparison},
	{Token: token.IS, Precedence: spi.PrecedenceComparison},
	{Token: token.NOT, Precedence: spi.PrecedenceComparison}, // x NOT IN / NOT LIKE / NOT BETWEEN

	// Bitwise operators
	{Token: token.AMP, Precedence: spi.PrecedenceBitwise, Kind: core.KindBitwiseAnd},
	{Token: token.PIPE, Precedence: spi.PrecedenceBitwise, Kind: core.KindBitwiseOr},
	{Token: token.CARET, Precedence: spi.PrecedenceBitwise, Kind: core.KindBitwiseXor},

	// Arithmetic operators
	{Token: token.PLUS, Precedence: spi.PrecedenceAddition, Kind: core.KindAdd},
	{Token: token.MINUS, Precedence: spi.PrecedenceAddition, Kind: core.KindSub},
	{Token: token.DPIPE, Precedence: spi.PrecedenceAddition, Kind: core.KindDPipe}, // || string concatenation

	// Multiplicative operators (highest precedence for binary ops)
	{Token: token.STAR, Precedence: spi.PrecedenceMultiply, Kind: core.KindMul},
	{Token: token.SLASH, Precedence: spi.PrecedenceMultiply, Kind: core.KindDiv},
	{Token: token.PERCENT, Precedence: spi.PrecedenceMultiply, Kind: core.KindMod},

	// Postfix
	{Token: token.LBRACKET, Precedence: spi.PrecedencePostfix},
}

// ILikeOperators adds ILIKE for dialects that support it natively.
var ILikeOperators = []OperatorDef{
	{Token: token.ILIKE, Precedence: spi.PrecedenceComparison},
}

// RLikeOperators adds RLIKE / REGEXP matching.
var RLikeOperators = []OperatorDef{
	{Token: token.RLIKE, Precedence: spi.PrecedenceComparison},
}

// CastOperators adds the :: cast postfix.
var CastOperators = []OperatorDef{
	{Token: token.DCOLON, Symbol: "::", Precedence: spi.PrecedencePostfix},
}

// NullSafeOperators adds <=> null-safe equality.
var NullSafeOperators = []OperatorDef{
	{Token: token.NSEQ, Symbol: "<=>", Precedence: spi.PrecedenceComparison, Kind: core.KindNullSafeEQ},
}

// IntDivOperators adds // integer division.
var IntDivOperators = []OperatorDef{
	{Token: token.DSLASH, Symbol: "//", Precedence: spi.PrecedenceMultiply, Kind: core.KindIntDiv},
}

// TokenDiv is the DIV integer division keyword.
var TokenDiv = token.Register("DIV")

// DivOperators adds the DIV keyword for integer division.
var DivOperators = []OperatorDef{
	{Token: TokenDiv, Precedence: spi.PrecedenceMultiply, Kind: core.KindIntDiv},
}
