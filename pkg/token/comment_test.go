package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommentBody(t *testing.T) {
	tests := []struct {
		name    string
		comment Comment
		want    string
	}{
		{"line", Comment{Kind: LineComment, Text: "-- hello"}, " hello"},
		{"hash", Comment{Kind: LineComment, Text: "#note"}, "note"},
		{"block", Comment{Kind: BlockComment, Text: "/* a\nb */"}, " a\nb "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.comment.Body())
		})
	}
}

func TestSpan(t *testing.T) {
	src := "SELECT abc FROM t"
	s := Span{Start: Position{Line: 1, Column: 8, Offset: 7}, End: Position{Line: 1, Column: 11, Offset: 10}}
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "abc", s.Text(src))
	assert.Equal(t, "line 1, column 11", s.End.String())

	assert.Empty(t, Span{End: Position{Offset: 99}}.Text(src))
	assert.False(t, Position{}.IsValid())
}
