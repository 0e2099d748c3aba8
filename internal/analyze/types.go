package analyze

import (
	"go/token"
	"reflect"

	"derive-generator/internal/schema"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "derive-generator/examples/points"
	Name    string // e.g., "Point"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeInfo describes one struct type annotated with a derive directive.
type TypeInfo struct {
	ID        TypeID
	Directive string           // Directive text after "//derive:"
	Pos       token.Position   // Position of the type name
	Generics  []schema.Generic // Type parameters with their constraints
	Fields    []FieldInfo      // Struct fields in declaration order
}

// IsUnit reports whether the struct has no fields.
func (t *TypeInfo) IsUnit() bool {
	return len(t.Fields) == 0
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Type     string            // Type expression relative to the declaring package
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
	Skip     schema.SkipSet    // Capability groups the field is excluded from
}

// HasTag returns true if the field has the specified tag.
func (f *FieldInfo) HasTag(key string) bool {
	_, ok := f.Tag.Lookup(key)
	return ok
}

// GetTag returns the value of the specified tag.
func (f *FieldInfo) GetTag(key string) string {
	return f.Tag.Get(key)
}

// TypeGraph holds all annotated types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all annotated types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
	// Order lists package paths in load order.
	Order []string
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package sources
	Types []TypeID // Annotated types in source order
}

// Schemas converts the graph into type schemas, packages in load order and
// types in source order.
func (g *TypeGraph) Schemas() []*schema.TypeSchema {
	var out []*schema.TypeSchema

	for _, path := range g.Order {
		pkg := g.Packages[path]

		for _, id := range pkg.Types {
			out = append(out, g.Types[id].Schema(pkg))
		}
	}

	return out
}

// Schema converts t into a TypeSchema of pkg.
func (t *TypeInfo) Schema(pkg *PackageInfo) *schema.TypeSchema {
	shape := schema.Unit()
	if !t.IsUnit() {
		fields := make([]schema.Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = schema.Field{Name: f.Name, Type: f.Type, Skip: f.Skip}
		}

		shape = schema.Record(fields...)
	}

	return &schema.TypeSchema{
		Name:      t.ID.Name,
		Package:   pkg.Name,
		Generics:  t.Generics,
		Shape:     shape,
		Directive: t.Directive,
		Pos:       t.Pos.String(),
		Origin:    schema.OriginGoSource,
		Dir:       pkg.Dir,
	}
}
