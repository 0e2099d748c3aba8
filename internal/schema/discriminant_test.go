package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/internal/diagnostic"
)

func units(names ...string) []Variant {
	vs := make([]Variant, len(names))
	for i, n := range names {
		vs[i] = Variant{Name: n, Index: i, Shape: Unit()}
	}

	return vs
}

func TestResolveDiscriminant(t *testing.T) {
	mixed := []Variant{
		{Name: "A", Index: 0, Shape: Tuple("int")},
		{Name: "B", Index: 1, Shape: Unit()},
	}

	tests := []struct {
		name     string
		layout   []string
		variants []Variant
		want     Discriminant
	}{
		{"single variant", []string{"repr(u8)"}, units("A"), Discriminant{Kind: DiscriminantSingle}},
		{"single variant ignores bad layout", []string{"repr"}, units("A"), Discriminant{Kind: DiscriminantSingle}},
		{"unit default", nil, units("A", "B"), Discriminant{Kind: DiscriminantUnitDefault}},
		{"unit repr", []string{"repr(u16)"}, units("A", "B"), Discriminant{Kind: DiscriminantUnitRepr, Repr: ReprU16}},
		{"repr", []string{"repr(i32)"}, mixed, Discriminant{Kind: DiscriminantRepr, Repr: ReprI32}},
		{"no width with payload", nil, mixed, Discriminant{Kind: DiscriminantUnknown}},
		{"C without width", []string{"repr(C)"}, units("A", "B"), Discriminant{Kind: DiscriminantUnknown}},
		{"C with width", []string{"repr(C, u8)"}, units("A", "B"), Discriminant{Kind: DiscriminantUnitRepr, Repr: ReprU8}},
		{"first width wins", []string{"repr(u8, u64)", "repr(i16)"}, mixed, Discriminant{Kind: DiscriminantRepr, Repr: ReprU8}},
		{"other directives ignored", []string{"packed", "align(8)", "repr(u32)"}, mixed, Discriminant{Kind: DiscriminantRepr, Repr: ReprU32}},
		{"go spelling", []string{"repr(uint16)"}, mixed, Discriminant{Kind: DiscriminantRepr, Repr: ReprU16}},
		{"empty list", []string{"repr()"}, units("A", "B"), Discriminant{Kind: DiscriminantUnitDefault}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDiscriminant(tt.layout, tt.variants)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDiscriminant_InvalidDirective(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
		start  int
	}{
		{"bare repr", []string{"repr"}, 0},
		{"name value form", []string{"repr = u8"}, 0},
		{"bad argument", []string{"repr(u8, 1x)"}, 9},
		{"error after width", []string{"repr(u8)", "repr"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveDiscriminant(tt.layout, units("A", "B"))
			require.Error(t, err)
			assert.True(t, errors.Is(err, diagnostic.ErrInvalidDirective))

			derr, ok := diagnostic.AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.start, derr.Span.Start)
		})
	}
}

func TestDiscriminant_GoType(t *testing.T) {
	tests := []struct {
		d    Discriminant
		want string
	}{
		{Discriminant{Kind: DiscriminantUnknown}, "int"},
		{Discriminant{Kind: DiscriminantSingle}, "int"},
		{Discriminant{Kind: DiscriminantUnitRepr, Repr: ReprU8}, "uint8"},
		{Discriminant{Kind: DiscriminantRepr, Repr: ReprU128}, "uint64"},
		{Discriminant{Kind: DiscriminantRepr, Repr: ReprISize}, "int"},
		{Discriminant{Kind: DiscriminantRepr, Repr: ReprUSize}, "uint"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.d.GoType(), tt.d.String())
	}

	assert.Equal(t, "repr(u8)", Discriminant{Kind: DiscriminantRepr, Repr: ReprU8}.String())
	assert.Equal(t, "unit-default", Discriminant{Kind: DiscriminantUnitDefault}.String())
}

func TestParseRepresentation(t *testing.T) {
	for r, info := range reprs {
		got, ok := ParseRepresentation(info.name)
		require.True(t, ok, info.name)
		assert.Equal(t, r, got)
		assert.Equal(t, info.name, r.String())
	}

	_, ok := ParseRepresentation("C")
	assert.False(t, ok)
	assert.Equal(t, "unknown", ReprNone.String())
}
