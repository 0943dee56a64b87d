package token

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	top := Register("TEST_TOP")

	assert.Equal(t, top, Register("TEST_TOP"), "same keyword, same token")
	assert.Equal(t, top, Register("test_top"), "keywords are case-insensitive")
	assert.NotEqual(t, top, Register("TEST_ASOF"))
	assert.Equal(t, "TEST_TOP", Register("Test_Top").String())
}

func TestRegisterConcurrent(t *testing.T) {
	const workers = 64
	ids := make([]TokenType, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i] = Register("TEST_CONCURRENT")
		}()
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestIsDynamic(t *testing.T) {
	tests := []struct {
		name string
		tok  TokenType
		want bool
	}{
		{"builtin keyword", SELECT, false},
		{"builtin symbol", COMMA, false},
		{"eof", EOF, false},
		{"registered", Register("TEST_DYNAMIC"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDynamic(tt.tok))
		})
	}
}

func TestStringOfUnknownToken(t *testing.T) {
	_, ok := dynamicName(TokenType(99999))
	assert.False(t, ok)
	assert.Equal(t, "TOKEN(99999)", TokenType(99999).String())
}
