package schema

import "strconv"

// FieldRef is a field as seen by the body generator.
type FieldRef struct {
	// Position is the zero-based declaration position.
	Position int
	// Key identifies the field: its name for records, its position for tuples.
	Key string
	// Accessor is the Go selector of the field, e.g. "a" or "F0".
	Accessor string
	// Label is the debug label; empty for tuple fields.
	Label string
	Type  string
	Skip  SkipSet
}

// Arm is one dispatch arm: a whole non-enum type, or one enum variant.
type Arm struct {
	// Variant is the variant name, empty for non-enum types.
	Variant string
	// Index is the variant's declaration index (0 for non-enum types).
	Index int
	// Kind is ShapeRecord, ShapeTuple or ShapeUnit.
	Kind   ShapeKind
	Fields []FieldRef
}

// IsVariant reports whether the arm belongs to an enum.
func (a Arm) IsVariant() bool {
	return a.Variant != ""
}

// Classification is the flattened view of a type's shape.
type Classification struct {
	Kind ShapeKind
	Arms []Arm
}

// IsEnum reports whether the classified shape is an enum.
func (c Classification) IsEnum() bool {
	return c.Kind == ShapeEnum
}

// Classify flattens a shape into dispatch arms. It never fails: shapes are
// validated by the loaders before they reach the generator.
func Classify(s Shape) Classification {
	if s.Kind != ShapeEnum {
		return Classification{
			Kind: s.Kind,
			Arms: []Arm{{Kind: s.Kind, Fields: Fields(s)}},
		}
	}

	arms := make([]Arm, len(s.Variants))
	for i, v := range s.Variants {
		arms[i] = Arm{
			Variant: v.Name,
			Index:   v.Index,
			Kind:    v.Shape.Kind,
			Fields:  Fields(v.Shape),
		}
	}

	return Classification{Kind: ShapeEnum, Arms: arms}
}

// Fields extracts field references of a record or tuple shape; other shapes
// have none.
func Fields(s Shape) []FieldRef {
	var refs []FieldRef

	switch s.Kind {
	case ShapeRecord:
		for i, f := range s.Fields {
			refs = append(refs, FieldRef{
				Position: i,
				Key:      f.Name,
				Accessor: f.Name,
				Label:    f.Name,
				Type:     f.Type,
				Skip:     f.Skip,
			})
		}
	case ShapeTuple:
		for i, f := range s.Fields {
			refs = append(refs, FieldRef{
				Position: i,
				Key:      strconv.Itoa(i),
				Accessor: TupleFieldName(i),
				Type:     f.Type,
				Skip:     f.Skip,
			})
		}
	}

	return refs
}
