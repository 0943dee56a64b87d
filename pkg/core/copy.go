package core

import (
	"iter"
	"maps"
	"slices"
)

// Copy returns a deep copy of the subtree rooted at e. The copy has no
// parent; comments, type annotations, metadata and memoized hashes are
// carried over.
func (e *Expr) Copy() *Expr {
	if e == nil {
		return nil
	}
	type pair struct{ src, dst *Expr }

	root := e.shallowCopy()
	stack := []pair{{e, root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for key, value := range p.src.args {
			switch v := value.(type) {
			case *Expr:
				c := v.shallowCopy()
				c.parent, c.argKey = p.dst, key
				p.dst.args[key] = c
				stack = append(stack, pair{v, c})
			case []*Expr:
				seq := make([]*Expr, len(v))
				for i, child := range v {
					c := child.shallowCopy()
					c.parent, c.argKey, c.index = p.dst, key, i
					seq[i] = c
					stack = append(stack, pair{child, c})
				}
				p.dst.args[key] = seq
			default:
				p.dst.args[key] = v
			}
		}
	}
	return root
}

func (e *Expr) shallowCopy() *Expr {
	return &Expr{
		kind:     e.kind,
		args:     make(Args, len(e.args)),
		index:    -1,
		Comments: slices.Clone(e.Comments),
		typ:      e.typ.Copy(),
		meta:     maps.Clone(e.meta),
		hash:     e.hash,
		hashed:   e.hashed,
	}
}

// TransformOption configures Transform.
type TransformOption func(*transformOptions)

type transformOptions struct {
	inPlace bool
}

// InPlace makes Transform rewrite the receiver instead of a copy.
func InPlace() TransformOption {
	return func(o *transformOptions) { o.inPlace = true }
}

// Transform rewrites the tree depth-first. fn is called on every node and
// returns its replacement: the node itself to keep it, another node to
// substitute it, or nil to delete it. The descendants of a replaced node
// are not visited and neither is the replacement. The returned tree is a
// copy unless InPlace is given.
func (e *Expr) Transform(fn func(*Expr) *Expr, opts ...TransformOption) *Expr {
	var o transformOptions
	for _, opt := range opts {
		opt(&o)
	}
	root := e
	if !o.inPlace {
		root = e.Copy()
	}

	var (
		result   *Expr
		replaced *Expr
		first    = true
	)
	prune := func(n *Expr) bool { return n == replaced }
	for node := range root.DFS(prune) {
		parent, key, index := node.parent, node.argKey, node.index
		out := fn(node)
		if first {
			result = out
			first = false
		}
		if out == node {
			continue
		}
		replaced = node
		if parent == nil {
			continue
		}
		if index >= 0 {
			parent.SetAt(key, index, out)
		} else {
			parent.Set(key, out)
		}
	}
	return result
}

// Flatten yields the operands of a chain of nodes of e's kind, left to
// right. With unnest set, parenthesized operands other than subqueries are
// unwrapped.
func (e *Expr) Flatten(unnest bool) iter.Seq[*Expr] {
	return func(yield func(*Expr) bool) {
		prune := func(n *Expr) bool { return n.parent != nil && n.kind != e.kind }
		for node := range e.DFS(prune) {
			if node.kind == e.kind {
				continue
			}
			if unnest && node.kind != KindSubquery {
				node = node.Unnest()
			}
			if !yield(node) {
				return
			}
		}
	}
}
