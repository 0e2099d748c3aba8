package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/internal/schema"
)

func generate(t *testing.T, cfg GeneratorConfig, schemas ...*schema.TypeSchema) string {
	t.Helper()

	outputs := make([]*Output, len(schemas))
	for i, ts := range schemas {
		out, err := Derive(ts, Options{Runtime: cfg.Runtime})
		require.NoError(t, err)

		outputs[i] = out
	}

	files, err := NewGenerator(cfg).Generate(outputs)
	require.NoError(t, err)
	require.Len(t, files, 1)

	return string(files[0].Content)
}

func testConfig(t *testing.T) GeneratorConfig {
	t.Helper()

	cfg := DefaultGeneratorConfig()
	cfg.OutputDir = t.TempDir()

	return cfg
}

func TestGenerator_Generate_Record(t *testing.T) {
	content := generate(t, testConfig(t), recordTest())

	assert.Contains(t, content, "// Code generated by derive-generator. DO NOT EDIT.")
	assert.Contains(t, content, "package shapes")
	assert.Contains(t, content, `"derive-generator/derive"`)
	assert.Contains(t, content, `"hash/maphash"`)
	assert.Contains(t, content, `"cmp"`)

	// type declaration of a schema-file type
	assert.Contains(t, content, "type Test[T any] struct {\n\ta T\n}")

	// Clone
	assert.Contains(t, content, "func CloneTest[T any](v Test[T]) Test[T] {")
	assert.Contains(t, content, "selfA := v.a")
	assert.Contains(t, content, "return Test[T]{a: derive.Clone(selfA)}")
	assert.Contains(t, content, "func (v Test[T]) Clone() Test[T] {\n\treturn CloneTest(v)\n}")

	// Debug
	assert.Contains(t, content, "func GoStringTest[T any](v Test[T]) string {")
	assert.Contains(t, content, `return derive.DebugStruct("Test").Field("a", selfA).Finish()`)
	assert.Contains(t, content, "func (v Test[T]) GoString() string {")

	// PartialEq
	assert.Contains(t, content, "func EqualTest[T comparable](v, other Test[T]) bool {")
	assert.Contains(t, content, "selfA, otherA := v.a, other.a")
	assert.Contains(t, content, "eq = eq && derive.Equal(selfA, otherA)")
	assert.NotContains(t, content, ") Equal(other Test[T]) bool")

	// PartialOrd
	assert.Contains(t, content, "func PartialCompareTest[T cmp.Ordered](v, other Test[T]) (int, bool) {")
	assert.Contains(t, content, "if c, ok := derive.PartialCompare(selfA, otherA); !ok || c != 0 {\n\t\treturn c, ok\n\t}")
	assert.Contains(t, content, "return 0, true")

	// Hash
	assert.Contains(t, content, "func HashTest[T comparable](v Test[T], h *maphash.Hash) {")
	assert.Contains(t, content, "derive.Hash(h, selfA)")

	// Ord
	assert.Contains(t, content, "func CompareTest[T cmp.Ordered](v, other Test[T]) int {")
	assert.Contains(t, content, "if c := derive.Compare(selfA, otherA); c != 0 {\n\t\treturn c\n\t}")
}

func TestGenerator_Generate_OrdFoldKeepsFieldOrder(t *testing.T) {
	ts := &schema.TypeSchema{
		Name:      "Triple",
		Package:   "shapes",
		Shape:     schema.Tuple("int", "int", "int"),
		Directive: "Ord",
	}

	content := generate(t, testConfig(t), ts)

	first := strings.Index(content, "derive.Compare(self0, other0)")
	second := strings.Index(content, "derive.Compare(self1, other1)")
	third := strings.Index(content, "derive.Compare(self2, other2)")
	base := strings.Index(content, "return 0")

	require.Positive(t, first)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
	assert.Less(t, third, base)

	// unconditional without type parameters: the method is emitted
	assert.Contains(t, content, "func (v Triple) Compare(other Triple) int {\n\treturn CompareTriple(v, other)\n}")
	assert.Contains(t, content, "type Triple struct {\n\tF0 int\n\tF1 int\n\tF2 int\n}")
}

func TestGenerator_Generate_Enum(t *testing.T) {
	content := generate(t, testConfig(t), enumShape())

	// declarations
	assert.Contains(t, content, "type ShapeKind uint8")
	assert.Contains(t, content, "ShapeKindA ShapeKind = iota")
	assert.Contains(t, content, "type ShapeA[T any] struct {\n\tF0 T\n}")
	assert.Contains(t, content, "type ShapeB[T any] struct {\n\tx T\n}")
	assert.NotContains(t, content, "type ShapeC")
	assert.Contains(t, content, "Kind ShapeKind")

	// dispatch and invalid variants
	assert.Contains(t, content, "switch v.Kind {")
	assert.Contains(t, content, "case ShapeKindA:")
	assert.Contains(t, content, `panic(derive.InvalidVariant("Shape", v.Kind))`)

	// Clone rebuilds the active variant
	assert.Contains(t, content, "return Shape[T]{Kind: ShapeKindA, A: ShapeA[T]{F0: derive.Clone(self0)}}")
	assert.Contains(t, content, "return Shape[T]{Kind: ShapeKindC}")

	// Debug names the variant
	assert.Contains(t, content, `return derive.DebugTuple("A").Field(self0).Finish()`)
	assert.Contains(t, content, `return derive.DebugStruct("B").Field("x", selfX).Finish()`)
	assert.Contains(t, content, `return "C"`)

	// PartialEq compares discriminants first
	assert.Contains(t, content, "if v.Kind != other.Kind {\n\t\treturn false\n\t}")

	// Hash writes the discriminant first
	hashFn := content[strings.Index(content, "func HashShape"):]
	assert.Less(t, strings.Index(hashFn, "derive.Hash(h, v.Kind)"), strings.Index(hashFn, "switch v.Kind"))

	// Ord orders distinct variants by index
	compareFn := content[strings.Index(content, "func CompareShape"):]
	compareFn = compareFn[:strings.Index(compareFn, "\n}\n")]
	assert.Contains(t, compareFn, "switch other.Kind {")
	assert.Contains(t, compareFn, `panic(derive.InvalidVariant("Shape", other.Kind))`)
	assert.Equal(t, 3, strings.Count(compareFn, "return -1"))
	assert.Equal(t, 3, strings.Count(compareFn, "return 1"))

	partialFn := content[strings.Index(content, "func PartialCompareShape"):]
	partialFn = partialFn[:strings.Index(partialFn, "\n}\n")]
	assert.Equal(t, 3, strings.Count(partialFn, "return -1, true"))
	assert.Equal(t, 3, strings.Count(partialFn, "return 1, true"))
}

func TestGenerator_Generate_SingleVariantHasNoCrossArms(t *testing.T) {
	ts := &schema.TypeSchema{
		Name:    "Only",
		Package: "shapes",
		Shape: schema.Enum(nil,
			schema.Variant{Name: "One", Shape: schema.Tuple("int")},
		),
		Directive: "Ord",
	}

	content := generate(t, testConfig(t), ts)

	assert.NotContains(t, content, "return -1")
	assert.NotContains(t, content, "return 1\n")
	assert.Contains(t, content, "type OnlyKind int")
}

func TestGenerator_Generate_SkippedFields(t *testing.T) {
	ts := &schema.TypeSchema{
		Name:    "Cached",
		Package: "shapes",
		Shape: schema.Record(
			schema.F("key", "string"),
			schema.Field{Name: "memo", Type: "[]byte", Skip: schema.SkipAll},
		),
		Directive: "Clone, Debug, PartialEq, Hash",
	}

	content := generate(t, testConfig(t), ts)

	// Clone never skips
	assert.Contains(t, content, "return Cached{key: derive.Clone(selfKey), memo: derive.Clone(selfMemo)}")
	assert.Contains(t, content, `return derive.DebugStruct("Cached").Field("key", selfKey).FinishNonExhaustive()`)
	assert.NotContains(t, content, "derive.Equal(selfMemo")
	assert.NotContains(t, content, "derive.Hash(h, selfMemo)")
}

func TestGenerator_Generate_MarkersAndVerbatimBounds(t *testing.T) {
	ts := recordTest()
	ts.Directive = "T: fmt.Stringer; Copy, Eq, Debug"

	cfg := testConfig(t)
	cfg.EmitTypes = false
	content := generate(t, cfg, ts)

	assert.Contains(t, content, "func AssertCopyTest[T fmt.Stringer](Test[T]) {}")
	assert.Contains(t, content, "func AssertEqTest[T fmt.Stringer](Test[T]) {}")
	assert.Contains(t, content, "func GoStringTest[T fmt.Stringer](v Test[T]) string {")
	assert.Contains(t, content, `"fmt"`)
	assert.NotContains(t, content, "type Test")
	assert.NotContains(t, content, ") GoString() string")
}

func TestGenerator_Generate_MergedBound(t *testing.T) {
	ts := recordTest()
	ts.Generics = []schema.Generic{{Name: "T", Constraint: "fmt.Stringer"}}
	ts.Directive = "T; PartialEq"

	out := mustDerive(t, ts)
	assert.Equal(t, "[T interface{ fmt.Stringer; comparable }]", out.Impls[0].Clause.String())

	content := generate(t, testConfig(t), ts)

	fn := content[strings.Index(content, "func EqualTest[T interface"):]
	fn = fn[:strings.Index(fn, "bool {")]
	assert.Contains(t, fn, "fmt.Stringer")
	assert.Contains(t, fn, "comparable")
	assert.Contains(t, fn, "(v, other Test[T])")
}

func TestGenerator_Generate_GoSourceOrigin(t *testing.T) {
	dir := t.TempDir()
	ts := recordTest()
	ts.Origin = schema.OriginGoSource
	ts.Dir = dir

	cfg := testConfig(t)
	cfg.PackageName = "ignored"

	outputs := []*Output{mustDerive(t, ts)}
	files, err := NewGenerator(cfg).Generate(outputs)
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Equal(t, "shapes_derive.go", files[0].Filename)
	assert.Equal(t, dir, files[0].Dir)
	assert.Equal(t, filepath.Join(dir, "shapes_derive.go"), files[0].Path(cfg.OutputDir))
	assert.NotContains(t, string(files[0].Content), "type Test")
}

func TestGenerator_Generate_GroupsByPackage(t *testing.T) {
	a := recordTest()
	b := enumShape()
	c := recordTest()
	c.Package = "other"
	c.Name = "Other"

	files, err := NewGenerator(testConfig(t)).Generate([]*Output{mustDerive(t, a), mustDerive(t, b), mustDerive(t, c)})
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "shapes_derive.go", files[0].Filename)
	assert.Equal(t, "other_derive.go", files[1].Filename)
	assert.Contains(t, string(files[0].Content), "func CloneShape")
	assert.Contains(t, string(files[0].Content), "func CloneTest")
}

func TestWriteFiles(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested")
	files := []GeneratedFile{{Filename: "a_derive.go", Content: []byte("package a\n")}}

	written, err := WriteFiles(files, out)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(out, "a_derive.go")}, written)

	b, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Equal(t, "package a\n", string(b))
}

func mustDerive(t *testing.T, ts *schema.TypeSchema) *Output {
	t.Helper()

	out, err := Derive(ts, Options{})
	require.NoError(t, err)

	return out
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, "shapes_derive.go", []byte("package shapes\nfunc (")))

	b, err := os.ReadFile(filepath.Join(dir, "shapes_derive.unformatted.go"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "//go:build ignore\n\npackage shapes"))

	assert.NoError(t, writeDebugUnformatted("", "x.go", nil))
}
