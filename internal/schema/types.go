package schema

import (
	"strconv"
	"strings"

	"derive-generator/internal/common"
)

// TypeSchema describes one type the generator derives capabilities for.
type TypeSchema struct {
	// Name is the Go type name, e.g. "Shape".
	Name string
	// Package is the Go package name the type lives in.
	Package string
	// Generics lists the type parameters in declaration order.
	Generics []Generic
	// Shape is the structure of the type.
	Shape Shape
	// Directive is the raw derive directive, e.g. "T; Clone, PartialEq".
	Directive string
	// Pos is a human-readable source position used in diagnostics.
	Pos string
	// Origin tells where the schema was loaded from.
	Origin Origin
	// Dir is the source package directory; empty for schema-file types.
	Dir string
}

// Origin is the kind of input a TypeSchema was loaded from.
type Origin int

const (
	// OriginSchemaFile types are declared by the generator itself.
	OriginSchemaFile Origin = iota
	// OriginGoSource types already exist in a Go package.
	OriginGoSource
)

// String returns a human-readable representation of the Origin.
func (o Origin) String() string {
	switch o {
	case OriginSchemaFile:
		return "schema-file"
	case OriginGoSource:
		return "go-source"
	default:
		return common.UnknownStr
	}
}

// Generic is a type parameter together with its declared constraint.
type Generic struct {
	Name string
	// Constraint is the declared Go constraint; empty means "any".
	Constraint string
}

// DeclaredConstraint returns the constraint with the empty default filled in.
func (g Generic) DeclaredConstraint() string {
	if strings.TrimSpace(g.Constraint) == "" {
		return "any"
	}

	return g.Constraint
}

// HasGenerics reports whether the type declares type parameters.
func (t *TypeSchema) HasGenerics() bool {
	return len(t.Generics) > 0
}

// Generic returns the type parameter called name.
func (t *TypeSchema) Generic(name string) (Generic, bool) {
	for _, g := range t.Generics {
		if g.Name == name {
			return g, true
		}
	}

	return Generic{}, false
}

// TypeArgs returns the type parameter names in declaration order.
func (t *TypeSchema) TypeArgs() []string {
	names := make([]string, len(t.Generics))
	for i, g := range t.Generics {
		names[i] = g.Name
	}

	return names
}

// ShapeKind is the structural kind of a type or variant.
type ShapeKind int

const (
	ShapeUnknown ShapeKind = iota
	ShapeRecord            // named fields
	ShapeTuple             // positional fields
	ShapeUnit              // no fields
	ShapeEnum              // ordered variants
	ShapeUnion             // overlapping fields without discrimination
)

// String returns a human-readable representation of the ShapeKind.
func (k ShapeKind) String() string {
	switch k {
	case ShapeRecord:
		return "record"
	case ShapeTuple:
		return "tuple"
	case ShapeUnit:
		return "unit"
	case ShapeEnum:
		return "enum"
	case ShapeUnion:
		return "union"
	default:
		return common.UnknownStr
	}
}

// IsVariantShape reports whether k may be the shape of an enum variant.
func (k ShapeKind) IsVariantShape() bool {
	return k == ShapeRecord || k == ShapeTuple || k == ShapeUnit
}

// Shape is the structure of a type or of an enum variant.
type Shape struct {
	Kind ShapeKind
	// Fields holds record and tuple fields in declaration order.
	Fields []Field
	// Variants holds enum variants in declaration order.
	Variants []Variant
	// Layout holds the enum's raw layout directives, e.g. "repr(u8)".
	Layout []string
}

// Record creates a record shape.
func Record(fields ...Field) Shape {
	return Shape{Kind: ShapeRecord, Fields: fields}
}

// Tuple creates a tuple shape from field types.
func Tuple(types ...string) Shape {
	fields := make([]Field, len(types))
	for i, t := range types {
		fields[i] = Field{Type: t}
	}

	return Shape{Kind: ShapeTuple, Fields: fields}
}

// Unit creates a unit shape.
func Unit() Shape {
	return Shape{Kind: ShapeUnit}
}

// Enum creates an enum shape, assigning variant indices in order.
func Enum(layout []string, variants ...Variant) Shape {
	for i := range variants {
		variants[i].Index = i
	}

	return Shape{Kind: ShapeEnum, Variants: variants, Layout: layout}
}

// Variant is one alternative of an enum.
type Variant struct {
	Name string
	// Index is the declaration order; it is the enum's sort order.
	Index int
	Shape Shape
}

// Field is a record or tuple field.
type Field struct {
	// Name is empty for tuple fields.
	Name string
	// Type is the Go type expression, e.g. "T" or "[]string".
	Type string
	// Skip lists the capability groups this field is excluded from.
	Skip SkipSet
}

// F creates a named field.
func F(name, typ string) Field {
	return Field{Name: name, Type: typ}
}

// SkipSet is a bit set of capability groups a field is excluded from.
type SkipSet uint8

const (
	// SkipDebug hides the field from the debug rendering.
	SkipDebug SkipSet = 1 << iota
	// SkipCompare excludes the field from equality, hashing and ordering.
	SkipCompare

	SkipAll = SkipDebug | SkipCompare
)

// Has reports whether every group in o is set.
func (s SkipSet) Has(o SkipSet) bool {
	return s&o == o
}

// String renders the set in directive form, e.g. "Debug,EqHashOrd".
func (s SkipSet) String() string {
	var parts []string
	if s.Has(SkipDebug) {
		parts = append(parts, SkipGroupDebug)
	}

	if s.Has(SkipCompare) {
		parts = append(parts, SkipGroupCompare)
	}

	return strings.Join(parts, ",")
}

// Skip group names accepted by ParseSkipGroup.
const (
	SkipGroupDebug   = "Debug"
	SkipGroupCompare = "EqHashOrd"
)

// ParseSkipGroup parses a skip group name.
func ParseSkipGroup(name string) (SkipSet, bool) {
	switch strings.TrimSpace(name) {
	case SkipGroupDebug:
		return SkipDebug, true
	case SkipGroupCompare:
		return SkipCompare, true
	default:
		return 0, false
	}
}

// KindFieldName is the field of a generated enum struct holding the active
// variant.
const KindFieldName = "Kind"

// TupleFieldName returns the Go field name of the tuple field at index i.
func TupleFieldName(i int) string {
	return "F" + strconv.Itoa(i)
}
