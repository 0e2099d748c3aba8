package schema

import (
	"go/token"

	"derive-generator/internal/diagnostic"
)

// Validate checks the structural invariants the generator relies on:
// identifiers are valid, field and variant names are unique, variant
// indices are contiguous from 0 in declaration order, and the shape is one
// the generator supports. Failures are KindUnsupportedShape errors.
func Validate(t *TypeSchema) error {
	span := diagnostic.Span{Source: t.Pos}

	if !token.IsIdentifier(t.Name) {
		return diagnostic.UnsupportedShape(span, "invalid type name %q", t.Name)
	}

	seen := make(map[string]bool, len(t.Generics))
	for _, g := range t.Generics {
		if !token.IsIdentifier(g.Name) {
			return diagnostic.UnsupportedShape(span, "invalid type parameter name %q", g.Name)
		}

		if seen[g.Name] {
			return diagnostic.UnsupportedShape(span, "duplicate type parameter %s", g.Name)
		}

		seen[g.Name] = true
	}

	switch t.Shape.Kind {
	case ShapeRecord, ShapeTuple:
		return validateFields(span, t.Name, t.Shape)

	case ShapeUnit:
		if t.HasGenerics() {
			return diagnostic.UnsupportedShape(span,
				"unit type %s cannot have type parameters: it holds no value that uses them", t.Name)
		}

		return nil

	case ShapeEnum:
		return validateEnum(span, t)

	case ShapeUnion:
		return diagnostic.UnsupportedShape(span,
			"union %s has no field discrimination and cannot be compared structurally", t.Name)

	default:
		return diagnostic.UnsupportedShape(span, "type %s has no shape", t.Name)
	}
}

func validateEnum(span diagnostic.Span, t *TypeSchema) error {
	if len(t.Shape.Variants) == 0 {
		return diagnostic.UnsupportedShape(span, "enum %s has no variants", t.Name)
	}

	names := make(map[string]bool, len(t.Shape.Variants))

	for i, v := range t.Shape.Variants {
		if !token.IsIdentifier(v.Name) {
			return diagnostic.UnsupportedShape(span, "invalid variant name %q in %s", v.Name, t.Name)
		}

		if names[v.Name] {
			return diagnostic.UnsupportedShape(span, "duplicate variant %s in %s", v.Name, t.Name)
		}

		if v.Name == KindFieldName {
			return diagnostic.UnsupportedShape(span, "variant name %s in %s collides with the discriminant field", v.Name, t.Name)
		}

		names[v.Name] = true

		if v.Index != i {
			return diagnostic.UnsupportedShape(span,
				"variant %s.%s has index %d, want declaration index %d", t.Name, v.Name, v.Index, i)
		}

		if !v.Shape.Kind.IsVariantShape() {
			return diagnostic.UnsupportedShape(span,
				"variant %s.%s has %s shape, want record, tuple or unit", t.Name, v.Name, v.Shape.Kind)
		}

		if err := validateFields(span, t.Name+"."+v.Name, v.Shape); err != nil {
			return err
		}
	}

	return nil
}

func validateFields(span diagnostic.Span, owner string, s Shape) error {
	if s.Kind != ShapeRecord {
		for _, f := range s.Fields {
			if f.Type == "" {
				return diagnostic.UnsupportedShape(span, "field of %s has no type", owner)
			}
		}

		return nil
	}

	names := make(map[string]bool, len(s.Fields))

	for _, f := range s.Fields {
		if !token.IsIdentifier(f.Name) {
			return diagnostic.UnsupportedShape(span, "invalid field name %q in %s", f.Name, owner)
		}

		if names[f.Name] {
			return diagnostic.UnsupportedShape(span, "duplicate field %s in %s", f.Name, owner)
		}

		names[f.Name] = true

		if f.Type == "" {
			return diagnostic.UnsupportedShape(span, "field %s of %s has no type", f.Name, owner)
		}
	}

	return nil
}
