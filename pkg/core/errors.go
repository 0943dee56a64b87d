package core

import "errors"

var (
	// ErrNoParser is returned when SQL text must be parsed but no parser
	// has been registered with RegisterParser.
	ErrNoParser = errors.New("no SQL parser registered (import github.com/leapstack-labs/glot/pkg/parser)")

	// ErrNoRenderer is returned by (*Expr).SQL when no generator has been
	// registered with RegisterRenderer.
	ErrNoRenderer = errors.New("no SQL renderer registered (import github.com/leapstack-labs/glot/pkg/dialect)")

	// ErrTooFewParts is returned when a dotted path is built from fewer than
	// two parts.
	ErrTooFewParts = errors.New("dot path requires at least two parts")

	// ErrInvalidArgument is returned when a builder receives a value it
	// cannot turn into a node.
	ErrInvalidArgument = errors.New("invalid builder argument")

	// ErrEmptyCondition is returned when a connector is built without operands.
	ErrEmptyCondition = errors.New("condition requires at least one operand")
)
