package token

import "fmt"

// Position locates a token in the source. Line and Column count from 1,
// Offset is a byte offset from 0. The zero Position means unknown.
type Position struct {
	Line   int
	Column int
	Offset int
}

// IsValid reports whether p was set by the lexer.
func (p Position) IsValid() bool { return p.Line > 0 }

// String formats p as "line L, column C".
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Span is the half-open byte range [Start.Offset, End.Offset) of a token.
type Span struct {
	Start Position
	End   Position
}

// Len returns the byte length of the span.
func (s Span) Len() int { return s.End.Offset - s.Start.Offset }

// Text slices the span out of src.
func (s Span) Text(src string) string {
	if s.Start.Offset < 0 || s.End.Offset > len(src) || s.Len() < 0 {
		return ""
	}
	return src[s.Start.Offset:s.End.Offset]
}
