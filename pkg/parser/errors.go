package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/glot/pkg/token"
)

// ErrSyntax is matched by every error the lexer and parser report, so
// callers can tell malformed SQL apart from other failures with errors.Is.
var ErrSyntax = errors.New("syntax error")

// ParseError is a parse failure at a source position.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return located("parse", e.Pos, e.Message)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }

// LexError is a tokenization failure at a source position.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e *LexError) Error() string {
	return located("tokenize", e.Pos, e.Message)
}

func (e *LexError) Unwrap() error { return ErrSyntax }

// located prefixes msg with the position when one is known. Errors raised
// after the token stream is exhausted (wrong statement kind) carry none.
func located(stage string, pos token.Position, msg string) string {
	if !pos.IsValid() {
		return stage + " error: " + msg
	}
	return fmt.Sprintf("%s error at %s: %s", stage, pos, msg)
}

// Message formats used with fmt.Sprintf by the lexer and parser.
const (
	ErrUnexpectedToken    = "unexpected token %s, expected %s"
	ErrUnexpectedInput    = "unexpected token %s"
	ErrUnterminatedString = "unterminated string literal"
	ErrInvalidNumber      = "invalid number literal"
	ErrWrongKind          = "expected %s, got %s"

	ErrUnsupportedClause   = "%s is not supported in %s dialect"
	ErrUnsupportedOperator = "operator %s is not supported in %s dialect"
	ErrNoClauseHandler     = "no handler registered for clause %s"
	ErrJoinRequiresOn      = "%s JOIN requires ON or USING"
	ErrJoinNoUsing         = "%s JOIN does not allow USING"
)
