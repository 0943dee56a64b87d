package token

import "strings"

// CommentKind distinguishes line vs block comments.
type CommentKind int

// Comment kinds.
const (
	LineComment  CommentKind = iota // -- comment
	BlockComment                    // /* comment */
)

// Comment represents a SQL comment with position.
type Comment struct {
	Kind CommentKind
	Text string // includes delimiters (-- or /* */)
	Span Span
}

// Body returns the comment text without its delimiters.
// Surrounding whitespace is preserved so generation can round-trip it.
func (c *Comment) Body() string {
	text := c.Text
	if c.Kind == BlockComment {
		text = strings.TrimPrefix(text, "/*")
		return strings.TrimSuffix(text, "*/")
	}
	for _, marker := range []string{"--", "#", "//"} {
		if strings.HasPrefix(text, marker) {
			return strings.TrimPrefix(text, marker)
		}
	}
	return text
}
