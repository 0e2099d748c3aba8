package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_NonEnum(t *testing.T) {
	c := Classify(Record(F("a", "T"), Field{Name: "b", Type: "int", Skip: SkipDebug}))

	assert.False(t, c.IsEnum())
	require.Len(t, c.Arms, 1)

	arm := c.Arms[0]
	assert.False(t, arm.IsVariant())
	assert.Equal(t, ShapeRecord, arm.Kind)
	assert.Equal(t, []FieldRef{
		{Position: 0, Key: "a", Accessor: "a", Label: "a", Type: "T"},
		{Position: 1, Key: "b", Accessor: "b", Label: "b", Type: "int", Skip: SkipDebug},
	}, arm.Fields)
}

func TestClassify_Tuple(t *testing.T) {
	c := Classify(Tuple("int", "string"))

	require.Len(t, c.Arms, 1)
	assert.Equal(t, []FieldRef{
		{Position: 0, Key: "0", Accessor: "F0", Type: "int"},
		{Position: 1, Key: "1", Accessor: "F1", Type: "string"},
	}, c.Arms[0].Fields)
}

func TestClassify_Enum(t *testing.T) {
	c := Classify(Enum(nil,
		Variant{Name: "A", Shape: Tuple("T")},
		Variant{Name: "B", Shape: Record(F("x", "T"))},
		Variant{Name: "C", Shape: Unit()},
	))

	assert.True(t, c.IsEnum())
	require.Len(t, c.Arms, 3)

	for i, arm := range c.Arms {
		assert.True(t, arm.IsVariant())
		assert.Equal(t, i, arm.Index)
	}

	assert.Equal(t, ShapeTuple, c.Arms[0].Kind)
	assert.Equal(t, "F0", c.Arms[0].Fields[0].Accessor)
	assert.Equal(t, ShapeRecord, c.Arms[1].Kind)
	assert.Equal(t, ShapeUnit, c.Arms[2].Kind)
	assert.Empty(t, c.Arms[2].Fields)
}

func TestClassify_Unit(t *testing.T) {
	c := Classify(Unit())

	require.Len(t, c.Arms, 1)
	assert.Equal(t, ShapeUnit, c.Arms[0].Kind)
	assert.Empty(t, c.Arms[0].Fields)
}

func TestSkipSet(t *testing.T) {
	assert.Equal(t, "Debug,EqHashOrd", SkipAll.String())
	assert.True(t, SkipAll.Has(SkipDebug))
	assert.False(t, SkipDebug.Has(SkipCompare))

	s, ok := ParseSkipGroup(" EqHashOrd ")
	require.True(t, ok)
	assert.Equal(t, SkipCompare, s)

	_, ok = ParseSkipGroup("Hash")
	assert.False(t, ok)
}
