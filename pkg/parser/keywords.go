package parser

import "github.com/leapstack-labs/glot/pkg/token"

// Soft keywords are keywords that have special meaning in specific contexts.
// They are not reserved words and can be used as identifiers elsewhere.
// Example: LEFT starts a join after a table, but LEFT(s, 2) is a function
// call and "SELECT first FROM t" names a column.
var softKeywords = map[token.TokenType]bool{
	token.LEFT:      true,
	token.RIGHT:     true,
	token.FIRST:     true,
	token.LAST:      true,
	token.NEXT:      true,
	token.ONLY:      true,
	token.ROW:       true,
	token.ROWS:      true,
	token.RANGE:     true,
	token.GROUPS:    true,
	token.FILTER:    true,
	token.CURRENT:   true,
	token.PRECEDING: true,
	token.FOLLOWING: true,
	token.UNBOUNDED: true,
	token.NULLS:     true,
	token.RECURSIVE: true,
	token.PARTITION: true,
	token.WINDOW:    true,
	token.WITHIN:    true,
	token.ESCAPE:    true,
}

// isSoftKeyword reports whether t may stand for an identifier.
func isSoftKeyword(t token.TokenType) bool {
	return softKeywords[t]
}

// isNameToken reports whether t can start a column reference or function
// call.
func isNameToken(t token.TokenType) bool {
	return t == token.IDENT || t == token.QIDENT || isSoftKeyword(t)
}
