package analyze

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypePath(t *testing.T) {
	root := NewTypePath("Pair")
	assert.Equal(t, "Pair", root.String())

	memo := root.Field("memo")
	assert.Equal(t, "Pair.memo", memo.String())

	// Field does not modify the receiver
	assert.Equal(t, "Pair", root.String())
}

func TestTypeStringer(t *testing.T) {
	local := types.NewPackage("example.com/points", "points")
	other := types.NewPackage("example.com/geo/v2", "geo")

	localNamed := types.NewNamed(types.NewTypeName(0, local, "Point", nil), types.NewStruct(nil, nil), nil)
	otherNamed := types.NewNamed(types.NewTypeName(0, other, "Area", nil), types.Typ[types.Float64], nil)

	s := NewTypeStringer(local)

	assert.Equal(t, "Point", s.TypeString(localNamed))
	assert.Equal(t, "[]*geo.Area", s.TypeString(types.NewSlice(types.NewPointer(otherNamed))))
	assert.Equal(t, "map[string]Point", s.TypeString(types.NewMap(types.Typ[types.String], localNamed)))
	assert.Equal(t, "<nil>", s.TypeString(nil))

	anyParam := types.NewTypeParam(types.NewTypeName(0, local, "T", nil), types.Universe.Lookup("any").Type())
	assert.Equal(t, "", s.Constraint(anyParam))

	comparableParam := types.NewTypeParam(types.NewTypeName(0, local, "K", nil), types.Universe.Lookup("comparable").Type())
	assert.Equal(t, "comparable", s.Constraint(comparableParam))
}
