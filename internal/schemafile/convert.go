package schemafile

import (
	"fmt"

	"derive-generator/internal/schema"
)

// ToSchemas converts a validated file into TypeSchemas. source names the
// file in diagnostic positions.
func ToSchemas(f *File, source string) ([]*schema.TypeSchema, error) {
	out := make([]*schema.TypeSchema, 0, len(f.Types))

	for i := range f.Types {
		t := &f.Types[i]

		shape, err := toShape(t)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", t.Name, err)
		}

		generics := make([]schema.Generic, len(t.Generics))
		for j, g := range t.Generics {
			generics[j] = schema.Generic{Name: g.Name, Constraint: g.Constraint}
		}

		out = append(out, &schema.TypeSchema{
			Name:      t.Name,
			Package:   f.Package,
			Generics:  generics,
			Shape:     shape,
			Directive: t.Derive,
			Pos:       fmt.Sprintf("%s:types[%d]", source, i),
			Origin:    schema.OriginSchemaFile,
		})
	}

	return out, nil
}

func toShape(t *TypeDef) (schema.Shape, error) {
	switch {
	case t.Enum != nil:
		variants := make([]schema.Variant, len(t.Enum.Variants))
		for i, v := range t.Enum.Variants {
			shape, err := variantShape(v)
			if err != nil {
				return schema.Shape{}, fmt.Errorf("variant %s: %w", v.Name, err)
			}

			variants[i] = schema.Variant{Name: v.Name, Shape: shape}
		}

		return schema.Enum(t.Enum.Layout, variants...), nil

	case t.Record != nil:
		return recordShape(t.Record)

	case t.Tuple != nil:
		return tupleShape(t.Tuple)

	default:
		return schema.Unit(), nil
	}
}

func variantShape(v VariantDef) (schema.Shape, error) {
	switch {
	case v.Record != nil:
		return recordShape(v.Record)
	case v.Tuple != nil:
		return tupleShape(v.Tuple)
	default:
		return schema.Unit(), nil
	}
}

func recordShape(defs FieldList) (schema.Shape, error) {
	fields := make([]schema.Field, len(defs))
	for i, d := range defs {
		skip, err := skipSet(d.Skip)
		if err != nil {
			return schema.Shape{}, err
		}

		fields[i] = schema.Field{Name: d.Name, Type: d.Type, Skip: skip}
	}

	return schema.Record(fields...), nil
}

func tupleShape(defs TupleList) (schema.Shape, error) {
	fields := make([]schema.Field, len(defs))
	for i, d := range defs {
		skip, err := skipSet(d.Skip)
		if err != nil {
			return schema.Shape{}, err
		}

		fields[i] = schema.Field{Type: d.Type, Skip: skip}
	}

	return schema.Shape{Kind: schema.ShapeTuple, Fields: fields}, nil
}

func skipSet(groups StringOrArray) (schema.SkipSet, error) {
	var set schema.SkipSet

	for _, g := range groups {
		s, ok := schema.ParseSkipGroup(g)
		if !ok {
			return 0, fmt.Errorf("invalid skip group %q", g)
		}

		set |= s
	}

	return set, nil
}

// FromSchemas builds a File from TypeSchemas of one package; the inverse of
// ToSchemas for the types it can express.
func FromSchemas(pkg string, schemas []*schema.TypeSchema) *File {
	f := &File{Version: currentVersion, Package: pkg}

	for _, s := range schemas {
		t := TypeDef{Name: s.Name, Derive: s.Directive}
		for _, g := range s.Generics {
			t.Generics = append(t.Generics, GenericDef{Name: g.Name, Constraint: g.Constraint})
		}

		switch s.Shape.Kind {
		case schema.ShapeEnum:
			t.Enum = &EnumDef{Layout: s.Shape.Layout}
			for _, v := range s.Shape.Variants {
				vd := VariantDef{Name: v.Name}
				switch v.Shape.Kind {
				case schema.ShapeRecord:
					vd.Record = fieldDefs(v.Shape.Fields)
				case schema.ShapeTuple:
					vd.Tuple = TupleList(fieldDefs(v.Shape.Fields))
				}

				t.Enum.Variants = append(t.Enum.Variants, vd)
			}
		case schema.ShapeRecord:
			t.Record = fieldDefs(s.Shape.Fields)
		case schema.ShapeTuple:
			t.Tuple = TupleList(fieldDefs(s.Shape.Fields))
		default:
			t.Unit = true
		}

		f.Types = append(f.Types, t)
	}

	return f
}

func fieldDefs(fields []schema.Field) FieldList {
	defs := make(FieldList, len(fields))
	for i, fl := range fields {
		defs[i] = FieldDef{Name: fl.Name, Type: fl.Type}
		if fl.Skip.Has(schema.SkipDebug) {
			defs[i].Skip = append(defs[i].Skip, schema.SkipGroupDebug)
		}

		if fl.Skip.Has(schema.SkipCompare) {
			defs[i].Skip = append(defs[i].Skip, schema.SkipGroupCompare)
		}
	}

	return defs
}
