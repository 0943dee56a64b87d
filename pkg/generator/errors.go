package generator

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/glot/pkg/core"
)

// UnsupportedError reports constructs the target dialect cannot express.
type UnsupportedError struct {
	Dialect  string
	Messages []string
	// Max caps how many messages Error prints; zero prints all.
	Max int
}

func (e *UnsupportedError) Error() string {
	msgs := e.Messages
	more := 0
	if e.Max > 0 && len(msgs) > e.Max {
		more = len(msgs) - e.Max
		msgs = msgs[:e.Max]
	}
	var b strings.Builder
	b.WriteString("unsupported in ")
	if e.Dialect == "" {
		b.WriteString("default dialect")
	} else {
		b.WriteString(e.Dialect)
	}
	b.WriteString(": ")
	b.WriteString(strings.Join(msgs, "; "))
	if more > 0 {
		fmt.Fprintf(&b, " (and %d more)", more)
	}
	return b.String()
}

// UnhandledKindError is returned when a non-function kind has no rendering.
type UnhandledKindError struct {
	Kind core.Kind
}

func (e *UnhandledKindError) Error() string {
	return fmt.Sprintf("unsupported expression type %s", e.Kind)
}

// abort unwinds a generation pass; Generate recovers it.
type abort struct {
	err error
}
