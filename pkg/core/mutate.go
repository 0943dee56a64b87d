package core

import "fmt"

// normalizeValue converts an argument value to its stored form. The second
// result is false when the value counts as absent.
func normalizeValue(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case *Expr:
		return v, v != nil
	case []*Expr:
		out := make([]*Expr, 0, len(v))
		for _, child := range v {
			if child != nil {
				out = append(out, child)
			}
		}
		return out, len(out) > 0
	case string, bool, int, int64, float64:
		return v, true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true //nolint:gosec // argument values are small counts
	case float32:
		return float64(v), true
	}
	panic(fmt.Sprintf("core: unsupported argument value of type %T", value))
}

// invalidate clears the memoized hash of e and its ancestors, stopping at
// the first ancestor that is already invalid.
func (e *Expr) invalidate() {
	for n := e; n != nil && n.hashed; n = n.parent {
		n.hashed = false
	}
}

// setArg stores value under key, releasing the children held there before
// and linking the new ones.
func (e *Expr) setArg(key string, value any) {
	v, present := normalizeValue(value)
	if old, ok := e.args[key]; ok {
		delete(e.args, key)
		e.release(old, key)
	}
	if !present {
		return
	}
	switch c := v.(type) {
	case *Expr:
		e.link(c, key, -1)
	case []*Expr:
		for i, child := range c {
			e.link(child, key, i)
		}
	}
	e.args[key] = v
}

// release clears the back-references of children that were stored under key.
func (e *Expr) release(old any, key string) {
	clear := func(c *Expr) {
		if c.parent == e && c.argKey == key {
			c.parent, c.argKey, c.index = nil, "", -1
		}
	}
	switch v := old.(type) {
	case *Expr:
		clear(v)
	case []*Expr:
		for _, c := range v {
			clear(c)
		}
	}
}

// link records e as the owner of child at (key, index), detaching the
// child from any other slot it currently occupies.
func (e *Expr) link(child *Expr, key string, index int) {
	if child.parent != nil && (child.parent != e || child.argKey != key) {
		child.detach()
	}
	child.parent = e
	child.argKey = key
	child.index = index
}

// detach removes e from its parent's args without touching e's subtree.
func (e *Expr) detach() {
	p := e.parent
	if p == nil {
		return
	}
	switch v := p.args[e.argKey].(type) {
	case *Expr:
		if v == e {
			delete(p.args, e.argKey)
		}
	case []*Expr:
		i := e.index
		if i < 0 || i >= len(v) || v[i] != e {
			i = -1
			for j, c := range v {
				if c == e {
					i = j
					break
				}
			}
		}
		if i >= 0 {
			out := make([]*Expr, 0, len(v)-1)
			out = append(out, v[:i]...)
			out = append(out, v[i+1:]...)
			for j := i; j < len(out); j++ {
				out[j].index = j
			}
			if len(out) == 0 {
				delete(p.args, e.argKey)
			} else {
				p.args[e.argKey] = out
			}
		}
	}
	p.invalidate()
	e.parent, e.argKey, e.index = nil, "", -1
}

// Set replaces the whole value stored under key. A nil value, a nil node
// or an empty sequence deletes the key.
func (e *Expr) Set(key string, value any) {
	e.invalidate()
	e.setArg(key, value)
}

// SetAt replaces the element at index of the sequence stored under key.
// A nil value deletes the element and shifts later elements down; a
// []*Expr value is spliced in place of the element. An index outside the
// sequence is a no-op. When key holds a single value instead of a
// sequence, the whole value is replaced.
func (e *Expr) SetAt(key string, index int, value any) {
	e.splice(key, index, value, true)
}

// InsertAt inserts value before the element at index of the sequence
// stored under key. An index outside the sequence is a no-op.
func (e *Expr) InsertAt(key string, index int, value any) {
	e.splice(key, index, value, false)
}

func (e *Expr) splice(key string, index int, value any, overwrite bool) {
	current, present := e.args[key]
	seq, isSeq := current.([]*Expr)
	if present && !isSeq {
		e.Set(key, value)
		return
	}
	if index < 0 || index >= len(seq) {
		return
	}
	e.invalidate()

	out := make([]*Expr, 0, len(seq)+1)
	out = append(out, seq[:index]...)
	switch v := value.(type) {
	case *Expr:
		if v != nil {
			out = append(out, v)
		}
	case []*Expr:
		out = append(out, v...)
	case nil:
	default:
		panic(fmt.Sprintf("core: cannot splice value of type %T", value))
	}
	if overwrite {
		out = append(out, seq[index+1:]...)
	} else {
		out = append(out, seq[index:]...)
	}
	e.setArg(key, out)
}

// Append adds child to the end of the sequence stored under key. A single
// value already stored under key becomes the first element.
func (e *Expr) Append(key string, child *Expr) {
	if child == nil {
		return
	}
	e.invalidate()
	if child.parent == e && child.argKey == key {
		child.detach()
	}
	var out []*Expr
	switch v := e.args[key].(type) {
	case []*Expr:
		out = make([]*Expr, len(v), len(v)+1)
		copy(out, v)
	case *Expr:
		out = []*Expr{v}
		v.index = 0
	}
	e.link(child, key, len(out))
	e.args[key] = append(out, child)
}

// Replace substitutes node for e inside e's parent and returns node. A nil
// node removes e. Without a parent the call is a no-op that returns node.
func (e *Expr) Replace(node *Expr) *Expr {
	p := e.parent
	if p == nil || node == e {
		return node
	}
	if e.index >= 0 {
		p.SetAt(e.argKey, e.index, node)
	} else {
		p.Set(e.argKey, node)
	}
	e.parent, e.argKey, e.index = nil, "", -1
	return node
}

// Pop removes e from its parent and returns it.
func (e *Expr) Pop() *Expr {
	e.Replace(nil)
	return e
}

// ReplaceChildren applies fn to every immediate child and rewrites the
// args in place. fn returns the nodes that take the child's place: none
// deletes it, one replaces it and several expand it.
func (e *Expr) ReplaceChildren(fn func(child *Expr) []*Expr) {
	for _, key := range e.Keys() {
		switch v := e.args[key].(type) {
		case *Expr:
			res := fn(v)
			switch {
			case len(res) == 0:
				e.Set(key, nil)
			case len(res) == 1 && res[0] == v:
			case len(res) == 1:
				e.Set(key, res[0])
			default:
				e.Set(key, res)
			}
		case []*Expr:
			out := make([]*Expr, 0, len(v))
			changed := false
			for _, c := range v {
				res := fn(c)
				if len(res) != 1 || res[0] != c {
					changed = true
				}
				out = append(out, res...)
			}
			if changed {
				e.Set(key, out)
			}
		}
	}
}
