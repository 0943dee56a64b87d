package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupType(t *testing.T) {
	tests := []struct {
		name  string
		want  Type
		known bool
	}{
		{"int", TypeInt, true},
		{"INTEGER", TypeInt, true},
		{"string", TypeText, true},
		{"double   precision", TypeDouble, true},
		{"timestamp with time zone", TypeTimestampTZ, true},
		{"numeric", TypeDecimal, true},
		{"set", TypeSetType, true},
		{"my_enum", Type("MY_ENUM"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := LookupType(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestBuildDataType(t *testing.T) {
	tests := []struct {
		input  string
		want   Type
		params int
		nested bool
	}{
		{input: "INT", want: TypeInt},
		{input: "varchar(255)", want: TypeVarchar, params: 1},
		{input: "DECIMAL(10, 2)", want: TypeDecimal, params: 2},
		{input: "ARRAY<INT>", want: TypeArray, params: 1, nested: true},
		{input: "MAP<TEXT, INT>", want: TypeMap, params: 2, nested: true},
		{input: "STRUCT<a INT, b TEXT>", want: TypeStruct, params: 2, nested: true},
		{input: "INT[]", want: TypeArray, params: 1, nested: true},
		{input: "TIMESTAMP WITH TIME ZONE", want: TypeTimestampTZ},
		{input: "VARCHAR(MAX)", want: TypeVarchar, params: 1},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			dt, err := BuildDataType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, dt.TypeOf())
			assert.Len(t, dt.Expressions(), tt.params)
			assert.Equal(t, tt.nested, dt.Bool("nested"))
		})
	}
}

func TestBuildDataTypeStructFields(t *testing.T) {
	dt, err := BuildDataType("STRUCT<a INT, b ARRAY<TEXT>>")
	require.NoError(t, err)
	fields := dt.Expressions()
	require.Len(t, fields, 2)
	assert.True(t, fields[0].Is(KindColumnDef))
	assert.Equal(t, "a", fields[0].Name())
	assert.True(t, fields[1].ArgExpr("kind").IsType(TypeArray))
}

func TestBuildDataTypeUserDefined(t *testing.T) {
	dt, err := BuildDataType("mood")
	require.NoError(t, err)
	assert.Equal(t, TypeUserDefined, dt.TypeOf())
	assert.Equal(t, "mood", dt.Text("kind"))
}

func TestBuildDataTypeErrors(t *testing.T) {
	for _, input := range []string{"", "DECIMAL(10", "ARRAY<INT", "INT)"} {
		t.Run(input, func(t *testing.T) {
			_, err := BuildDataType(input)
			assert.Error(t, err)
		})
	}
}

func TestTypeGroups(t *testing.T) {
	assert.True(t, IsTextType(TypeVarchar))
	assert.True(t, IsIntegerType(TypeUBigInt))
	assert.True(t, IsNumericType(TypeDecimal))
	assert.True(t, IsNumericType(TypeDouble))
	assert.True(t, IsTemporalType(TypeTimestampTZ))
	assert.True(t, IsNestedType(TypeStruct))
	assert.False(t, IsTextType(TypeInt))
	assert.True(t, FloatTypes.Contains(TypeFloat))
	assert.False(t, SignedIntegerTypes.Contains(TypeUInt))

	custom := TypeSet{TypeSetType: {}, TypeEnum: {}}
	assert.True(t, custom.Contains(TypeSetType))
	assert.False(t, TextTypes.Contains(TypeSetType))
}

func TestIsTypeUsesAnnotation(t *testing.T) {
	c := ToColumn("a")
	assert.False(t, c.IsType(TypeInt))
	c.SetType(DataType(TypeInt))
	assert.True(t, c.IsType(TypeInt, TypeBigInt))
}
