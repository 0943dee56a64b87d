package token

import (
	"strings"
	"sync"
)

// Dialect keywords with no builtin token get ids above maxBuiltin. The
// table is process wide so two dialects naming the same keyword share a
// token type.
var dynamic = struct {
	sync.RWMutex
	next   TokenType
	byID   map[TokenType]string
	byName map[string]TokenType
}{
	next:   maxBuiltin,
	byID:   make(map[TokenType]string),
	byName: make(map[string]TokenType),
}

// Register returns the token type for a dialect keyword such as TOP or
// ASOF, allocating one on first use. Names are case-insensitive and stored
// upper-cased, which is also how the token prints.
func Register(name string) TokenType {
	name = strings.ToUpper(name)

	dynamic.Lock()
	defer dynamic.Unlock()
	if t, ok := dynamic.byName[name]; ok {
		return t
	}
	dynamic.next++
	dynamic.byID[dynamic.next] = name
	dynamic.byName[name] = dynamic.next
	return dynamic.next
}

func dynamicName(t TokenType) (string, bool) {
	dynamic.RLock()
	defer dynamic.RUnlock()
	name, ok := dynamic.byID[t]
	return name, ok
}

// IsDynamic reports whether t was allocated by Register.
func IsDynamic(t TokenType) bool {
	return t > maxBuiltin
}
