package core

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sort"
	"strings"
)

const (
	hashSep   = 0x1f
	hashOpen  = 0x1e
	hashClose = 0x1d
)

// Hash returns the structural hash of the subtree rooted at e.
//
// The hash covers the kind and every argument. Comments, type annotations
// and metadata are ignored, and string arguments are compared
// case-insensitively except on identifiers and literals. Results are
// memoized per node and invalidated by any mutation below the node.
func (e *Expr) Hash() uint64 {
	if e.hashed {
		return e.hash
	}
	// Collect stale nodes top-down, then compute bottom-up so every child
	// hash is ready before its parent needs it.
	var stale []*Expr
	queue := []*Expr{e}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.hashed {
			continue
		}
		stale = append(stale, n)
		queue = append(queue, n.Children(false)...)
	}
	for i := len(stale) - 1; i >= 0; i-- {
		stale[i].computeHash()
	}
	return e.hash
}

func (e *Expr) computeHash() {
	h := fnv.New64a()
	var buf [8]byte
	h.Write([]byte(e.kind.Key()))
	caseSensitive := e.kind == KindIdentifier || e.kind == KindLiteral

	keys := make([]string, 0, len(e.args))
	for key := range e.args {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		v := e.args[key]
		if isEmptyArg(v) {
			continue
		}
		h.Write([]byte{hashSep})
		h.Write([]byte(key))
		h.Write([]byte{hashSep})
		switch val := v.(type) {
		case *Expr:
			binary.LittleEndian.PutUint64(buf[:], val.hash)
			h.Write(buf[:])
		case []*Expr:
			h.Write([]byte{hashOpen})
			for _, child := range val {
				binary.LittleEndian.PutUint64(buf[:], child.hash)
				h.Write(buf[:])
			}
			h.Write([]byte{hashClose})
		case string:
			if !caseSensitive {
				val = strings.ToLower(val)
			}
			h.Write([]byte("s:" + val))
		case bool:
			h.Write([]byte("b:1"))
		case int:
			binary.LittleEndian.PutUint64(buf[:], uint64(int64(val))) //nolint:gosec // bit pattern only
			h.Write([]byte("i:"))
			h.Write(buf[:])
		case int64:
			binary.LittleEndian.PutUint64(buf[:], uint64(val)) //nolint:gosec // bit pattern only
			h.Write([]byte("i:"))
			h.Write(buf[:])
		case float64:
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(val))
			h.Write([]byte("f:"))
			h.Write(buf[:])
		}
	}
	e.hash = h.Sum64()
	e.hashed = true
}

// isEmptyArg reports whether an argument value is ignored by equality.
func isEmptyArg(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case string:
		return val == ""
	case []*Expr:
		return len(val) == 0
	case *Expr:
		return val == nil
	}
	return false
}

// Equal reports whether e and other are structurally equal: same kind and
// same arguments under the comparison rules of Hash.
func (e *Expr) Equal(other *Expr) bool {
	if e == other {
		return true
	}
	if e == nil || other == nil || e.kind != other.kind {
		return false
	}
	if e.Hash() != other.Hash() {
		return false
	}
	return sameTree(e, other)
}

// sameTree compares two subtrees argument by argument after their hashes
// matched, so a hash collision never reports equality.
func sameTree(a, b *Expr) bool {
	stack := [][2]*Expr{{a, b}}
	for len(stack) > 0 {
		pair := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := pair[0], pair[1]
		if x == y {
			continue
		}
		if x.kind != y.kind || (x.hashed && y.hashed && x.hash != y.hash) {
			return false
		}
		caseSensitive := x.kind == KindIdentifier || x.kind == KindLiteral
		if countArgs(x) != countArgs(y) {
			return false
		}
		for key, xv := range x.args {
			if isEmptyArg(xv) {
				continue
			}
			yv := y.args[key]
			switch val := xv.(type) {
			case *Expr:
				other, ok := yv.(*Expr)
				if !ok || other == nil {
					return false
				}
				stack = append(stack, [2]*Expr{val, other})
			case []*Expr:
				other, ok := yv.([]*Expr)
				if !ok || len(other) != len(val) {
					return false
				}
				for i := range val {
					stack = append(stack, [2]*Expr{val[i], other[i]})
				}
			case string:
				other, ok := yv.(string)
				if !ok {
					return false
				}
				if caseSensitive && val != other || !caseSensitive && !strings.EqualFold(val, other) {
					return false
				}
			case bool:
				if flag, ok := yv.(bool); !ok || !flag {
					return false
				}
			case int, int64:
				if !sameInt(val, yv) {
					return false
				}
			case float64:
				other, ok := yv.(float64)
				if !ok || math.Float64bits(val) != math.Float64bits(other) {
					return false
				}
			}
		}
	}
	return true
}

// countArgs counts the arguments that take part in equality.
func countArgs(e *Expr) int {
	n := 0
	for _, v := range e.args {
		if !isEmptyArg(v) {
			n++
		}
	}
	return n
}

func sameInt(a, b any) bool {
	toInt := func(v any) (int64, bool) {
		switch n := v.(type) {
		case int:
			return int64(n), true
		case int64:
			return n, true
		}
		return 0, false
	}
	x, ok := toInt(a)
	y, ok2 := toInt(b)
	return ok && ok2 && x == y
}
