package schemafile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	f, err := Parse([]byte(shapesYAML))
	require.NoError(t, err)

	res := Validate(f)
	assert.True(t, res.IsValid(), res.Error())
	assert.Empty(t, res.Warnings)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		code string
	}{
		{"bad package", "package: 1x\ntypes:\n  - {name: A, derive: Clone, unit: true}\n", "invalid_package"},
		{"bad version", "version: \"2\"\npackage: p\ntypes:\n  - {name: A, derive: Clone, unit: true}\n", "unsupported_version"},
		{"missing name", "package: p\ntypes:\n  - {derive: Clone, unit: true}\n", "missing_name"},
		{"duplicate type", "package: p\ntypes:\n  - {name: A, derive: Clone, unit: true}\n  - {name: A, derive: Clone, unit: true}\n", "duplicate_type"},
		{"missing derive", "package: p\ntypes:\n  - {name: A, unit: true}\n", "missing_derive"},
		{"missing shape", "package: p\ntypes:\n  - {name: A, derive: Clone}\n", "missing_shape"},
		{"two shapes", "package: p\ntypes:\n  - {name: A, derive: Clone, unit: true, tuple: [int]}\n", "ambiguous_shape"},
		{"no variants", "package: p\ntypes:\n  - {name: A, derive: Clone, enum: {variants: []}}\n", "no_variants"},
		{"duplicate variant", "package: p\ntypes:\n  - {name: A, derive: Clone, enum: {variants: [{name: X}, {name: X}]}}\n", "duplicate_variant"},
		{"ambiguous variant", "package: p\ntypes:\n  - {name: A, derive: Clone, enum: {variants: [{name: X, tuple: [int], record: [{a: int}]}]}}\n", "ambiguous_variant"},
		{"missing field type", "package: p\ntypes:\n  - {name: A, derive: Clone, record: [{name: a, type: \"\"}]}\n", "missing_field_type"},
		{"bad skip group", "package: p\ntypes:\n  - {name: A, derive: Clone, tuple: [{type: int, skip: Hash}]}\n", "invalid_skip_group"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			res := Validate(f)
			require.True(t, res.HasErrors())

			codes := make([]string, 0, len(res.Errors))
			for _, d := range res.Errors {
				codes = append(codes, d.Code)
			}

			assert.Contains(t, codes, tt.code)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	res := Validate(nil)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "schema_is_nil", res.Errors[0].Code)
}

func TestValidate_NoTypesWarns(t *testing.T) {
	f, err := Parse([]byte("package: p\n"))
	require.NoError(t, err)

	res := Validate(f)
	assert.True(t, res.IsValid())
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "no_types", res.Warnings[0].Code)
}
