package gen

import (
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/internal/directive"
	"derive-generator/internal/schema"
)

func TestSynthesizeBounds_AutoBoundPerCapability(t *testing.T) {
	ts := &schema.TypeSchema{
		Name:     "Pair",
		Generics: []schema.Generic{{Name: "K"}, {Name: "V", Constraint: "fmt.Stringer"}},
		Shape:    schema.Tuple("K", "V"),
	}

	req, err := directive.Parse("K, V; Ord")
	require.NoError(t, err)

	clause, err := SynthesizeBounds(ts, req, directive.Ord)
	require.NoError(t, err)

	want := Clause{
		{Param: "K", Bounds: []Bound{{Name: "any"}, orderedBound}},
		{Param: "V", Bounds: []Bound{{Name: "fmt.Stringer"}, orderedBound}},
	}
	if diff := cmp.Diff(want, clause); diff != "" {
		t.Errorf("clause mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "[K cmp.Ordered, V interface{ fmt.Stringer; cmp.Ordered }]", clause.String())
	assert.False(t, clause.Unconditional(DeclaredClause(ts)))
}

func TestSynthesizeBounds_PartialBoundList(t *testing.T) {
	ts := &schema.TypeSchema{
		Name:     "Pair",
		Generics: []schema.Generic{{Name: "K"}, {Name: "V"}},
		Shape:    schema.Tuple("K", "V"),
	}

	req, err := directive.Parse("K; PartialEq")
	require.NoError(t, err)

	clause, err := SynthesizeBounds(ts, req, directive.PartialEq)
	require.NoError(t, err)

	assert.Equal(t, "[K comparable, V any]", clause.String())
}

func TestSynthesizeBounds_NoBoundList(t *testing.T) {
	ts := &schema.TypeSchema{
		Name:     "Box",
		Generics: []schema.Generic{{Name: "T", Constraint: "comparable"}},
		Shape:    schema.Record(schema.F("v", "T")),
	}

	req, err := directive.Parse("Ord")
	require.NoError(t, err)

	clause, err := SynthesizeBounds(ts, req, directive.Ord)
	require.NoError(t, err)

	assert.Equal(t, DeclaredClause(ts), clause)
	assert.True(t, clause.Unconditional(DeclaredClause(ts)))
}

func TestSynthesizeBounds_RepeatedTermsCollapse(t *testing.T) {
	ts := &schema.TypeSchema{
		Name:     "Box",
		Generics: []schema.Generic{{Name: "T", Constraint: "comparable"}},
		Shape:    schema.Record(schema.F("v", "T")),
	}

	req, err := directive.Parse("T, T: comparable; PartialEq")
	require.NoError(t, err)

	clause, err := SynthesizeBounds(ts, req, directive.PartialEq)
	require.NoError(t, err)

	assert.Equal(t, "[T comparable]", clause.String())
	assert.True(t, clause.Unconditional(DeclaredClause(ts)))
}

func TestSynthesizeBounds_UnknownParameter(t *testing.T) {
	ts := &schema.TypeSchema{Name: "Box", Generics: []schema.Generic{{Name: "T"}}, Shape: schema.Record(schema.F("v", "T"))}

	req, err := directive.Parse("[]T; Clone")
	require.NoError(t, err)

	_, err = SynthesizeBounds(ts, req, directive.Clone)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[]T is not a type parameter of Box")
}

func TestClause_Render(t *testing.T) {
	tests := []struct {
		name   string
		clause Clause
		want   string
	}{
		{"empty", nil, ""},
		{"any", Clause{{Param: "T", Bounds: []Bound{anyBound, anyBound}}}, "[T any]"},
		{"single", Clause{{Param: "T", Bounds: []Bound{anyBound, comparableBound}}}, "[T comparable]"},
		{"qualified", Clause{{Param: "T", Bounds: []Bound{orderedBound}}}, "[T cmp.Ordered]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := jen.NewFile("p")
			f.Func().Id("F").Add(tt.clause.Render()).Params().Block()

			assert.Contains(t, f.GoString(), "func F"+tt.want+"() {}")
			assert.Equal(t, tt.want, tt.clause.String())
		})
	}
}

func TestDescribe_Table(t *testing.T) {
	for _, c := range directive.Capabilities() {
		d := Describe(c)

		assert.Equal(t, c, d.Capability)
		assert.NotEmpty(t, d.FuncPrefix, c.String())
		assert.Equal(t, c.IsMarker(), d.Marker, c.String())
		assert.Equal(t, c.IsBinary(), d.Binary, c.String())
		assert.Equal(t, d.Marker, d.Path == "", c.String())
	}

	assert.Equal(t, orderedBound, Describe(directive.Ord).Bound)
	assert.Equal(t, comparableBound, Describe(directive.Hash).Bound)
	assert.Equal(t, anyBound, Describe(directive.Debug).Bound)
	assert.Panics(t, func() { Describe(directive.Capability(0)) })
}

func TestTarget_Names(t *testing.T) {
	exported := NewTarget(&schema.TypeSchema{Name: "Shape"}, "")
	assert.Equal(t, DefaultRuntimePath, exported.Runtime)
	assert.Equal(t, "CompareShape", exported.FuncName("Compare"))
	assert.Equal(t, "ShapeKind", exported.KindType())
	assert.Equal(t, "ShapeKindCircle", exported.KindConst("circle"))
	assert.Equal(t, "ShapeCircle", exported.PayloadType("circle"))

	unexported := NewTarget(&schema.TypeSchema{Name: "shape"}, "example.com/rt")
	assert.Equal(t, "example.com/rt", unexported.Runtime)
	assert.Equal(t, "compareShape", unexported.FuncName("Compare"))
	assert.Equal(t, "shapeKind", unexported.KindType())

	assert.Equal(t, "selfSomeField", selfAlias(schema.FieldRef{Key: "someField"}))
	assert.Equal(t, "other0", otherAlias(schema.FieldRef{Key: "0"}))

	names := newAliases([]schema.FieldRef{{Key: "x", Position: 0}, {Key: "X", Position: 1}})
	assert.Equal(t, []string{"selfX", "selfX1"}, names.self)
	assert.Equal(t, []string{"otherX", "otherX1"}, names.other)
}
