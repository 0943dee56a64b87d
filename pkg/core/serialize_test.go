package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpLoadRoundTrip(t *testing.T) {
	sel, err := Select("a", ToColumn("t.b")).
		From("t").
		Where(New(KindEQ, Args{"this": ToColumn("a"), "expression": String("X")})).
		Limit(5).
		Build()
	require.NoError(t, err)
	sel.AddComments("top")

	data, err := Dump(sel)
	require.NoError(t, err)

	loaded, err := Load(data)
	require.NoError(t, err)
	assert.True(t, loaded.Equal(sel))
	assert.Equal(t, []string{"top"}, loaded.Comments)
	assert.Nil(t, loaded.Parent())

	where := loaded.ArgExpr("where")
	require.NotNil(t, where)
	assert.Same(t, loaded, where.Parent())
	assert.Equal(t, 1, loaded.Expressions()[1].Index())
}

func TestDumpLoadDeepChain(t *testing.T) {
	deep := chain(2000)
	data, err := Dump(deep)
	require.NoError(t, err)
	loaded, err := Load(data)
	require.NoError(t, err)
	assert.True(t, loaded.Equal(deep))
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load([]byte{0xc1})
	assert.Error(t, err)
}

func TestToMap(t *testing.T) {
	m := ToMap(New(KindAdd, Args{"this": ToColumn("a"), "expression": Number(1)}))
	assert.Equal(t, "Add", m["kind"])
	lit, ok := m["expression"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1", lit["this"])
}
