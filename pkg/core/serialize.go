package core

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// wireNode is the msgpack form of one node. Children are referenced by
// their position in the flat node list, so neither encoding nor decoding
// recurses through the tree.
type wireNode struct {
	Kind     string             `msgpack:"k"`
	Strings  map[string]string  `msgpack:"s,omitempty"`
	Bools    map[string]bool    `msgpack:"b,omitempty"`
	Ints     map[string]int64   `msgpack:"i,omitempty"`
	Floats   map[string]float64 `msgpack:"f,omitempty"`
	Children map[string]int     `msgpack:"n,omitempty"`
	Seqs     map[string][]int   `msgpack:"q,omitempty"`
	Comments []string           `msgpack:"c,omitempty"`
}

type wireTree struct {
	Version int        `msgpack:"v"`
	Nodes   []wireNode `msgpack:"nodes"`
}

const wireVersion = 1

// Dump serializes the tree rooted at e with msgpack. Back-references,
// hashes, type annotations and metadata are not serialized.
func Dump(e *Expr) ([]byte, error) {
	ids := map[*Expr]int{e: 0}
	order := []*Expr{e}
	for i := 0; i < len(order); i++ {
		for _, c := range order[i].Children(false) {
			ids[c] = len(order)
			order = append(order, c)
		}
	}

	tree := wireTree{Version: wireVersion, Nodes: make([]wireNode, len(order))}
	for i, n := range order {
		w := wireNode{Kind: n.kind.Key(), Comments: n.Comments}
		for key, value := range n.args {
			switch v := value.(type) {
			case *Expr:
				if w.Children == nil {
					w.Children = make(map[string]int)
				}
				w.Children[key] = ids[v]
			case []*Expr:
				if w.Seqs == nil {
					w.Seqs = make(map[string][]int)
				}
				refs := make([]int, len(v))
				for j, c := range v {
					refs[j] = ids[c]
				}
				w.Seqs[key] = refs
			case string:
				if w.Strings == nil {
					w.Strings = make(map[string]string)
				}
				w.Strings[key] = v
			case bool:
				if w.Bools == nil {
					w.Bools = make(map[string]bool)
				}
				w.Bools[key] = v
			case int:
				if w.Ints == nil {
					w.Ints = make(map[string]int64)
				}
				w.Ints[key] = int64(v)
			case int64:
				if w.Ints == nil {
					w.Ints = make(map[string]int64)
				}
				w.Ints[key] = v
			case float64:
				if w.Floats == nil {
					w.Floats = make(map[string]float64)
				}
				w.Floats[key] = v
			}
		}
		tree.Nodes[i] = w
	}
	data, err := msgpack.Marshal(&tree)
	if err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	return data, nil
}

// Load decodes a tree produced by Dump.
func Load(data []byte) (*Expr, error) {
	var tree wireTree
	if err := msgpack.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	if tree.Version != wireVersion {
		return nil, fmt.Errorf("decode tree: unsupported version %d", tree.Version)
	}
	if len(tree.Nodes) == 0 {
		return nil, fmt.Errorf("decode tree: no nodes")
	}

	nodes := make([]*Expr, len(tree.Nodes))
	for i, w := range tree.Nodes {
		kind, ok := LookupKind(w.Kind)
		if !ok {
			return nil, fmt.Errorf("decode tree: unknown node kind %q", w.Kind)
		}
		nodes[i] = &Expr{kind: kind, args: make(Args), index: -1, Comments: w.Comments}
	}
	ref := func(id int) (*Expr, error) {
		if id <= 0 || id >= len(nodes) {
			return nil, fmt.Errorf("decode tree: invalid node reference %d", id)
		}
		return nodes[id], nil
	}
	// Link bottom-up so every child is complete before it is attached.
	for i := len(tree.Nodes) - 1; i >= 0; i-- {
		w, n := tree.Nodes[i], nodes[i]
		for k, v := range w.Strings {
			n.setArg(k, v)
		}
		for k, v := range w.Bools {
			n.setArg(k, v)
		}
		for k, v := range w.Ints {
			n.setArg(k, v)
		}
		for k, v := range w.Floats {
			n.setArg(k, v)
		}
		for k, id := range w.Children {
			c, err := ref(id)
			if err != nil {
				return nil, err
			}
			n.setArg(k, c)
		}
		for k, ids := range w.Seqs {
			seq := make([]*Expr, 0, len(ids))
			for _, id := range ids {
				c, err := ref(id)
				if err != nil {
					return nil, err
				}
				seq = append(seq, c)
			}
			n.setArg(k, seq)
		}
	}
	return nodes[0], nil
}

// ToMap converts the tree to nested maps suitable for YAML or JSON
// encoding. Each node becomes a map with a "kind" entry and one entry per
// argument.
func ToMap(e *Expr) map[string]any {
	type pending struct {
		src *Expr
		dst map[string]any
	}
	root := map[string]any{}
	stack := []pending{{e, root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		p.dst["kind"] = p.src.kind.String()
		if len(p.src.Comments) > 0 {
			p.dst["comments"] = p.src.Comments
		}
		for key, value := range p.src.args {
			switch v := value.(type) {
			case *Expr:
				child := map[string]any{}
				p.dst[key] = child
				stack = append(stack, pending{v, child})
			case []*Expr:
				list := make([]any, len(v))
				for i, c := range v {
					child := map[string]any{}
					list[i] = child
					stack = append(stack, pending{c, child})
				}
				p.dst[key] = list
			default:
				p.dst[key] = v
			}
		}
	}
	return root
}
