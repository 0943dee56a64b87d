// Package core defines the SQL expression tree.
//
// A tree is made of *Expr nodes. Each node has a Kind from a closed
// registry and a map of named arguments holding scalars, a single child or
// an ordered sequence of children. Children keep a back-reference to the
// node that owns them, so a node can be replaced or removed in place.
//
// Equality is structural: two nodes are equal when they have the same kind
// and the same arguments, independent of how the tree was built or of the
// keyword spelling in the source text. Hashing, copying and rendering of
// long operator chains are iterative and safe on deep trees.
//
// Parsing and rendering live in other packages and are reached through
// ParseInto and (*Expr).SQL once those packages are imported:
//
//	import (
//		_ "github.com/leapstack-labs/glot/pkg/dialect"
//		_ "github.com/leapstack-labs/glot/pkg/parser"
//	)
package core
