package gen

import (
	"github.com/dave/jennifer/jen"

	"derive-generator/internal/directive"
	"derive-generator/internal/schema"
)

func (b *bodyBuilder) partial() bool {
	return b.desc.Capability == directive.PartialOrd
}

// result renders a comparison result for the capability: c, or c, true.
func (b *bodyBuilder) result(c jen.Code) jen.Code {
	if b.partial() {
		return jen.Return(c, jen.True())
	}

	return jen.Return(c)
}

// fold right-folds the field comparisons: starting from "equal", each field
// from last to first is prepended as an early return taken when that field
// does not compare equal.
func (b *bodyBuilder) fold(fields []schema.FieldRef, names aliases) []jen.Code {
	acc := []jen.Code{b.result(jen.Lit(0))}

	for i := len(fields) - 1; i >= 0; i-- {
		args := []jen.Code{jen.Id(names.self[i]), jen.Id(names.other[i])}

		var step jen.Code
		if b.partial() {
			step = jen.If(
				jen.List(jen.Id("c"), jen.Id("ok")).Op(":=").Add(b.call(args...)),
				jen.Op("!").Id("ok").Op("||").Id("c").Op("!=").Lit(0),
			).Block(jen.Return(jen.Id("c"), jen.Id("ok")))
		} else {
			step = jen.If(
				jen.Id("c").Op(":=").Add(b.call(args...)),
				jen.Id("c").Op("!=").Lit(0),
			).Block(jen.Return(jen.Id("c")))
		}

		acc = append([]jen.Code{step}, acc...)
	}

	return acc
}

// order compares field by field within one arm; values of distinct variants
// order by declaration index.
func (b *bodyBuilder) order() []jen.Code {
	if !b.cls.IsEnum() {
		arm := b.cls.Arms[0]
		fields := b.fields(arm)
		names := newAliases(fields)

		return append(b.bindBoth(arm, fields, names), b.fold(fields, names)...)
	}

	return b.dispatch(selfParam, func(arm schema.Arm) []jen.Code {
		fields := b.fields(arm)
		names := newAliases(fields)
		stmts := b.bindSelf(arm, fields, names)

		cases := make([]jen.Code, 0, len(b.cls.Arms)+1)
		for _, other := range b.cls.Arms {
			kind := jen.Id(b.target.KindConst(other.Variant))

			if other.Index == arm.Index {
				inner := append(b.bindOther(arm, fields, names), b.fold(fields, names)...)
				cases = append(cases, jen.Case(kind).Block(inner...))

				continue
			}

			sign := 1
			if arm.Index < other.Index {
				sign = -1
			}

			cases = append(cases, jen.Case(kind).Block(b.result(jen.Lit(sign))))
		}

		cases = append(cases, b.invalidVariant(otherParam))

		return append(stmts, jen.Switch(jen.Id(otherParam).Dot(kindField)).Block(cases...))
	})
}
