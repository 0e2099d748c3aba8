package schemafile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/internal/schema"
)

const shapesYAML = `
package: shapes
types:
  - name: Test
    derive: "T; Clone, Debug, PartialEq, PartialOrd, Hash, Ord"
    generics: T
    record:
      - a: T
  - name: Triple
    derive: "Clone, PartialEq, Ord"
    tuple: [int, int, {type: string, skip: EqHashOrd}]
  - name: Marker
    derive: "Clone, Copy, Debug"
    unit: true
  - name: Shape
    derive: "T; Clone, Debug, PartialEq, PartialOrd"
    generics: [T, {name: U, constraint: fmt.Stringer}]
    enum:
      layout: "repr(u8)"
      variants:
        - {name: A, tuple: [T]}
        - name: B
          record:
            - x: T
            - {name: y, type: U, skip: [Debug]}
        - {name: C}
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(shapesYAML))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "shapes", f.Package)
	require.Len(t, f.Types, 4)

	test := f.Types[0]
	assert.Equal(t, GenericList{{Name: "T"}}, test.Generics)
	assert.Equal(t, FieldList{{Name: "a", Type: "T"}}, test.Record)

	triple := f.Types[1]
	require.Len(t, triple.Tuple, 3)
	assert.Equal(t, "int", triple.Tuple[0].Type)
	assert.Equal(t, StringOrArray{"EqHashOrd"}, triple.Tuple[2].Skip)

	assert.True(t, f.Types[2].Unit)

	shape := f.Types[3]
	assert.Equal(t, GenericList{{Name: "T"}, {Name: "U", Constraint: "fmt.Stringer"}}, shape.Generics)
	require.NotNil(t, shape.Enum)
	assert.Equal(t, StringOrArray{"repr(u8)"}, shape.Enum.Layout)
	require.Len(t, shape.Enum.Variants, 3)
	assert.Equal(t, FieldList{
		{Name: "x", Type: "T"},
		{Name: "y", Type: "U", Skip: StringOrArray{"Debug"}},
	}, shape.Enum.Variants[1].Record)
	assert.Nil(t, shape.Enum.Variants[2].Record)
	assert.Nil(t, shape.Enum.Variants[2].Tuple)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"record not a list", "types:\n  - name: A\n    record: {a: int}\n"},
		{"record field not a map", "types:\n  - name: A\n    record: [int]\n"},
		{"record field with two keys", "types:\n  - name: A\n    record: [{a: int, b: int}]\n"},
		{"tuple not a list", "types:\n  - name: A\n    tuple: int\n"},
		{"generic list of lists", "types:\n  - name: A\n    generics: [[T]]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestToSchemas(t *testing.T) {
	f, err := Parse([]byte(shapesYAML))
	require.NoError(t, err)

	schemas, err := ToSchemas(f, "shapes.yaml")
	require.NoError(t, err)
	require.Len(t, schemas, 4)

	for _, s := range schemas {
		assert.Equal(t, schema.OriginSchemaFile, s.Origin)
		assert.Equal(t, "shapes", s.Package)
		require.NoError(t, schema.Validate(s), s.Name)
	}

	assert.Equal(t, "shapes.yaml:types[3]", schemas[3].Pos)

	want := schema.Enum([]string{"repr(u8)"},
		schema.Variant{Name: "A", Shape: schema.Tuple("T")},
		schema.Variant{Name: "B", Shape: schema.Record(
			schema.F("x", "T"),
			schema.Field{Name: "y", Type: "U", Skip: schema.SkipDebug},
		)},
		schema.Variant{Name: "C", Shape: schema.Unit()},
	)
	if diff := cmp.Diff(want, schemas[3].Shape); diff != "" {
		t.Errorf("enum shape mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, schema.SkipCompare, schemas[1].Shape.Fields[2].Skip)
	assert.Equal(t, schema.ShapeUnit, schemas[2].Shape.Kind)
}

func TestLoadFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shapes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(shapesYAML), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)

	schemas, err := ToSchemas(f, path)
	require.NoError(t, err)

	out := filepath.Join(dir, "again.yaml")
	require.NoError(t, WriteFile(FromSchemas("shapes", schemas), out))

	again, err := LoadFile(out)
	require.NoError(t, err)

	againSchemas, err := ToSchemas(again, path)
	require.NoError(t, err)

	if diff := cmp.Diff(schemas, againSchemas); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read schema file")
}
