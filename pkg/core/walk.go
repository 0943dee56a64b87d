package core

import "iter"

// Children returns the immediate child nodes of e in canonical argument
// order, or in reverse of that order when reverse is set.
func (e *Expr) Children(reverse bool) []*Expr {
	var out []*Expr
	for _, key := range e.Keys() {
		switch v := e.args[key].(type) {
		case *Expr:
			out = append(out, v)
		case []*Expr:
			out = append(out, v...)
		}
	}
	if reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// Walk yields every node of the subtree rooted at e, starting with e.
// Traversal is breadth-first when bfs is set and depth-first otherwise.
// prune is consulted after a node has been yielded; returning true skips
// the node's descendants.
func (e *Expr) Walk(bfs bool, prune func(*Expr) bool) iter.Seq[*Expr] {
	if bfs {
		return e.BFS(prune)
	}
	return e.DFS(prune)
}

// DFS yields the subtree rooted at e in pre-order.
func (e *Expr) DFS(prune func(*Expr) bool) iter.Seq[*Expr] {
	return func(yield func(*Expr) bool) {
		stack := []*Expr{e}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(n) {
				return
			}
			if prune != nil && prune(n) {
				continue
			}
			stack = append(stack, n.Children(true)...)
		}
	}
}

// BFS yields the subtree rooted at e level by level.
func (e *Expr) BFS(prune func(*Expr) bool) iter.Seq[*Expr] {
	return func(yield func(*Expr) bool) {
		queue := []*Expr{e}
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			if !yield(n) {
				return
			}
			if prune != nil && prune(n) {
				continue
			}
			queue = append(queue, n.Children(false)...)
		}
	}
}

// FindAll yields every node of the given kinds in breadth-first order,
// including e itself.
func (e *Expr) FindAll(kinds ...Kind) iter.Seq[*Expr] {
	return func(yield func(*Expr) bool) {
		for n := range e.BFS(nil) {
			if n.Is(kinds...) && !yield(n) {
				return
			}
		}
	}
}

// Find returns the first node of the given kinds in breadth-first order.
func (e *Expr) Find(kinds ...Kind) *Expr {
	for n := range e.FindAll(kinds...) {
		return n
	}
	return nil
}

// FindAncestor returns the nearest ancestor of one of the given kinds.
func (e *Expr) FindAncestor(kinds ...Kind) *Expr {
	for n := e.parent; n != nil; n = n.parent {
		if n.Is(kinds...) {
			return n
		}
	}
	return nil
}

// Leaves yields the nodes of the subtree that have no children.
func (e *Expr) Leaves() iter.Seq[*Expr] {
	return func(yield func(*Expr) bool) {
		for n := range e.DFS(nil) {
			if len(n.Children(false)) == 0 && !yield(n) {
				return
			}
		}
	}
}
