package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenType
	}{
		{"select", SELECT},
		{"qualify", QUALIFY},
		{"ilike", ILIKE},
		{"exists", EXISTS},
		{"customer_id", IDENT},
		{"SELECT", IDENT}, // callers lower-case first
	}
	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupIdent(tt.ident))
		})
	}
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "SELECT", SELECT.String())
	assert.Equal(t, "::", DCOLON.String())
	assert.Equal(t, "<=>", NSEQ.String())
	assert.Equal(t, "TOKEN(998)", TokenType(998).String())
}

func TestTokenClassification(t *testing.T) {
	assert.True(t, IsKeyword(WHERE))
	assert.False(t, IsKeyword(IDENT))
	assert.True(t, IsOperator(ARROW))
	assert.False(t, IsOperator(SELECT))
	assert.Contains(t, Keywords(), "INTERVAL")
}
