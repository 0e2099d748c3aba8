package schemafile

// File is the root of a schema file.
type File struct {
	// Version is the schema version; "1" when omitted.
	Version string `yaml:"version,omitempty"`
	// Package is the Go package the types are generated into.
	Package string    `yaml:"package"`
	Types   []TypeDef `yaml:"types"`
}

// TypeDef describes one type.
type TypeDef struct {
	Name string `yaml:"name"`
	// Derive is the derive directive, e.g. "T; Clone, PartialEq".
	Derive   string      `yaml:"derive"`
	Generics GenericList `yaml:"generics,omitempty"`
	Record   FieldList   `yaml:"record,omitempty"`
	Tuple    TupleList   `yaml:"tuple,omitempty"`
	Unit     bool        `yaml:"unit,omitempty"`
	Enum     *EnumDef    `yaml:"enum,omitempty"`
}

// EnumDef describes the variants of an enum type.
type EnumDef struct {
	// Layout lists layout directives such as "repr(u8)".
	Layout   StringOrArray `yaml:"layout,omitempty"`
	Variants []VariantDef  `yaml:"variants"`
}

// VariantDef describes one enum variant.
type VariantDef struct {
	Name   string    `yaml:"name"`
	Record FieldList `yaml:"record,omitempty"`
	Tuple  TupleList `yaml:"tuple,omitempty"`
}

// GenericDef is a type parameter with an optional constraint.
type GenericDef struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint,omitempty"`
}

// GenericList accepts "T", {name: T, constraint: C} or a list of both.
type GenericList []GenericDef

// FieldDef is a record field or tuple item.
type FieldDef struct {
	Name string        `yaml:"name,omitempty"`
	Type string        `yaml:"type"`
	Skip StringOrArray `yaml:"skip,omitempty"`
}

// FieldList is a list of record fields.
type FieldList []FieldDef

// TupleList is a list of tuple items.
type TupleList []FieldDef

// StringOrArray represents a YAML value that can be a string or array of strings.
type StringOrArray []string

// shapeCount returns how many shape keys a type sets.
func (t *TypeDef) shapeCount() int {
	n := 0
	for _, set := range []bool{t.Record != nil, t.Tuple != nil, t.Unit, t.Enum != nil} {
		if set {
			n++
		}
	}

	return n
}
