package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	code := render([]string{"Identifier", "Column"}).GoString()

	assert.Contains(t, code, "Code generated by genkinds. DO NOT EDIT.")
	assert.Contains(t, code, "KindIdentifier Kind = iota + 1")
	assert.Contains(t, code, "kindCount = 3")
	assert.Contains(t, code, "[...]string{")
	assert.Contains(t, code, "KindColumn:")
	assert.Contains(t, code, `"Column",`)
}

// generated is the declarations of a kinds_gen.go source.
type generated struct {
	consts []string
	count  string
	names  map[string]string
}

func decls(t *testing.T, src []byte) generated {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "kinds_gen.go", src, 0)
	require.NoError(t, err)

	g := generated{names: map[string]string{}}
	for _, d := range f.Decls {
		gen, ok := d.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range gen.Specs {
			vs := spec.(*ast.ValueSpec)
			switch name := vs.Names[0].Name; {
			case name == "kindCount":
				g.count = vs.Values[0].(*ast.BasicLit).Value
			case name == "kindNames":
				for _, elt := range vs.Values[0].(*ast.CompositeLit).Elts {
					kv := elt.(*ast.KeyValueExpr)
					g.names[kv.Key.(*ast.Ident).Name] = kv.Value.(*ast.BasicLit).Value
				}
			case gen.Tok == token.CONST:
				g.consts = append(g.consts, name)
			}
		}
	}
	return g
}

func TestCommittedFileIsCurrent(t *testing.T) {
	committed, err := os.ReadFile("../../pkg/core/kinds_gen.go")
	require.NoError(t, err)

	want := decls(t, []byte(render(kinds).GoString()))
	got := decls(t, committed)

	require.Len(t, want.consts, len(kinds))
	assert.Equal(t, want.consts, got.consts)
	assert.Equal(t, want.count, got.count)
	assert.Equal(t, want.names, got.names)
}
