package gen

import (
	"github.com/dave/jennifer/jen"

	"derive-generator/internal/schema"
)

// declareType renders the declaration of a schema-file type: a struct for
// records, tuples and units; for enums the Kind type, its constants, one
// payload struct per non-unit variant and the tagged struct itself.
func declareType(f *jen.File, o *Output) {
	t := o.Schema
	tp := typeParams(t)

	if t.Shape.Kind != schema.ShapeEnum {
		f.Type().Id(t.Name).Add(tp).Struct(structFields(t.Shape)...)
		f.Line()

		return
	}

	target := o.Target
	backing := "int"
	if o.Discriminant != nil {
		backing = o.Discriminant.GoType()
	}

	f.Commentf("%s selects the active variant of %s.", target.KindType(), t.Name)
	f.Type().Id(target.KindType()).Id(backing)
	f.Line()

	consts := make([]jen.Code, len(t.Shape.Variants))
	for i, v := range t.Shape.Variants {
		if i == 0 {
			consts[i] = jen.Id(target.KindConst(v.Name)).Id(target.KindType()).Op("=").Iota()
		} else {
			consts[i] = jen.Id(target.KindConst(v.Name))
		}
	}

	f.Const().Defs(consts...)
	f.Line()

	fields := []jen.Code{jen.Id(kindField).Id(target.KindType())}

	for _, v := range t.Shape.Variants {
		if v.Shape.Kind == schema.ShapeUnit {
			continue
		}

		f.Type().Id(target.PayloadType(v.Name)).Add(tp).Struct(structFields(v.Shape)...)
		f.Line()

		fields = append(fields, jen.Id(v.Name).Add(target.Payload(v.Name)))
	}

	f.Type().Id(t.Name).Add(tp).Struct(fields...)
	f.Line()
}

func typeParams(t *schema.TypeSchema) *jen.Statement {
	if !t.HasGenerics() {
		return jen.Null()
	}

	params := make([]jen.Code, len(t.Generics))
	for i, g := range t.Generics {
		params[i] = jen.Id(g.Name).Id(g.DeclaredConstraint())
	}

	return jen.Types(params...)
}

func structFields(s schema.Shape) []jen.Code {
	refs := schema.Fields(s)
	fields := make([]jen.Code, len(refs))

	for i, f := range refs {
		fields[i] = jen.Id(f.Accessor).Id(f.Type)
	}

	return fields
}
