package gen

import (
	"strconv"

	"github.com/dave/jennifer/jen"

	"derive-generator/internal/directive"
	"derive-generator/internal/schema"
)

// bodyBuilder generates the body of one capability for one type.
type bodyBuilder struct {
	target Target
	desc   Descriptor
	cls    schema.Classification
}

// Body generates the statements implementing capability c for the type
// described by target. Marker capabilities have an empty body.
func Body(target Target, c directive.Capability) []jen.Code {
	b := &bodyBuilder{
		target: target,
		desc:   Describe(c),
		cls:    schema.Classify(target.Schema.Shape),
	}

	switch c {
	case directive.Clone:
		return b.clone()
	case directive.Debug:
		return b.debug()
	case directive.Hash:
		return b.hash()
	case directive.PartialEq:
		return b.equal()
	case directive.Ord, directive.PartialOrd:
		return b.order()
	default:
		return nil
	}
}

// fields returns the arm's fields taking part in the capability.
func (b *bodyBuilder) fields(arm schema.Arm) []schema.FieldRef {
	var skip schema.SkipSet

	switch b.desc.Capability {
	case directive.Debug:
		skip = schema.SkipDebug
	case directive.Hash, directive.PartialEq, directive.Ord, directive.PartialOrd:
		skip = schema.SkipCompare
	}

	if skip == 0 {
		return arm.Fields
	}

	var out []schema.FieldRef

	for _, f := range arm.Fields {
		if !f.Skip.Has(skip) {
			out = append(out, f)
		}
	}

	return out
}

// aliases names the per-field locals of an arm, keeping names unique.
type aliases struct {
	self, other []string
}

func newAliases(fields []schema.FieldRef) aliases {
	a := aliases{
		self:  make([]string, len(fields)),
		other: make([]string, len(fields)),
	}
	seen := make(map[string]bool)

	for i, f := range fields {
		s, o := selfAlias(f), otherAlias(f)
		if seen[s] {
			suffix := strconv.Itoa(f.Position)
			s, o = s+suffix, o+suffix
		}

		seen[s] = true
		a.self[i], a.other[i] = s, o
	}

	return a
}

// bindSelf declares the receiver aliases of fields.
func (b *bodyBuilder) bindSelf(arm schema.Arm, fields []schema.FieldRef, names aliases) []jen.Code {
	stmts := make([]jen.Code, len(fields))
	for i, f := range fields {
		stmts[i] = jen.Id(names.self[i]).Op(":=").Add(b.target.access(selfParam, arm, f))
	}

	return stmts
}

// bindOther declares the other operand's aliases of fields.
func (b *bodyBuilder) bindOther(arm schema.Arm, fields []schema.FieldRef, names aliases) []jen.Code {
	stmts := make([]jen.Code, len(fields))
	for i, f := range fields {
		stmts[i] = jen.Id(names.other[i]).Op(":=").Add(b.target.access(otherParam, arm, f))
	}

	return stmts
}

// bindBoth declares both aliases of every field in one statement each.
func (b *bodyBuilder) bindBoth(arm schema.Arm, fields []schema.FieldRef, names aliases) []jen.Code {
	stmts := make([]jen.Code, len(fields))
	for i, f := range fields {
		stmts[i] = jen.List(jen.Id(names.self[i]), jen.Id(names.other[i])).Op(":=").List(
			b.target.access(selfParam, arm, f),
			b.target.access(otherParam, arm, f),
		)
	}

	return stmts
}

// call renders a runtime helper call on the capability's path.
func (b *bodyBuilder) call(args ...jen.Code) *jen.Statement {
	return b.target.Qual(b.desc.Path).Call(args...)
}

// dispatch wraps per-arm statements into a switch on the receiver's Kind,
// or returns the single arm's statements for non-enum types.
func (b *bodyBuilder) dispatch(root string, arm func(schema.Arm) []jen.Code) []jen.Code {
	if !b.cls.IsEnum() {
		return arm(b.cls.Arms[0])
	}

	cases := make([]jen.Code, 0, len(b.cls.Arms)+1)
	for _, a := range b.cls.Arms {
		cases = append(cases, jen.Case(jen.Id(b.target.KindConst(a.Variant))).Block(arm(a)...))
	}

	cases = append(cases, b.invalidVariant(root))

	return []jen.Code{jen.Switch(jen.Id(root).Dot(kindField)).Block(cases...)}
}

func (b *bodyBuilder) invalidVariant(root string) jen.Code {
	return jen.Default().Block(
		jen.Panic(b.target.Qual("InvalidVariant").Call(jen.Lit(b.target.Name()), jen.Id(root).Dot(kindField))),
	)
}

// clone rebuilds the value with every field cloned.
func (b *bodyBuilder) clone() []jen.Code {
	return b.dispatch(selfParam, func(arm schema.Arm) []jen.Code {
		fields := b.fields(arm)
		names := newAliases(fields)
		stmts := b.bindSelf(arm, fields, names)

		values := make([]jen.Code, len(fields))
		for i, f := range fields {
			values[i] = jen.Id(f.Accessor).Op(":").Add(b.call(jen.Id(names.self[i])))
		}

		if !arm.IsVariant() {
			return append(stmts, jen.Return(b.target.Literal(values...)))
		}

		outer := []jen.Code{jen.Id(kindField).Op(":").Id(b.target.KindConst(arm.Variant))}
		if arm.Kind != schema.ShapeUnit {
			outer = append(outer, jen.Id(arm.Variant).Op(":").Add(b.target.Payload(arm.Variant).Values(values...)))
		}

		return append(stmts, jen.Return(b.target.Literal(outer...)))
	})
}

// debug renders Name { a: .. }, Name(..) or the bare name.
func (b *bodyBuilder) debug() []jen.Code {
	return b.dispatch(selfParam, func(arm schema.Arm) []jen.Code {
		name := b.target.Name()
		if arm.IsVariant() {
			name = arm.Variant
		}

		if arm.Kind == schema.ShapeUnit {
			return []jen.Code{jen.Return(jen.Lit(name))}
		}

		fields := b.fields(arm)
		names := newAliases(fields)
		stmts := b.bindSelf(arm, fields, names)

		var chain *jen.Statement

		if arm.Kind == schema.ShapeRecord {
			chain = b.target.Qual("DebugStruct").Call(jen.Lit(name))
			for i, f := range fields {
				chain = chain.Dot("Field").Call(jen.Lit(f.Label), jen.Id(names.self[i]))
			}
		} else {
			chain = b.target.Qual("DebugTuple").Call(jen.Lit(name))
			for i := range fields {
				chain = chain.Dot("Field").Call(jen.Id(names.self[i]))
			}
		}

		finish := "Finish"
		if len(fields) < len(arm.Fields) {
			finish = "FinishNonExhaustive"
		}

		return append(stmts, jen.Return(chain.Dot(finish).Call()))
	})
}

// hash writes the discriminant, then every field in order.
func (b *bodyBuilder) hash() []jen.Code {
	var stmts []jen.Code
	if b.cls.IsEnum() {
		stmts = append(stmts, b.call(jen.Id(hashParam), jen.Id(selfParam).Dot(kindField)))
	}

	body := b.dispatch(selfParam, func(arm schema.Arm) []jen.Code {
		fields := b.fields(arm)
		names := newAliases(fields)
		out := b.bindSelf(arm, fields, names)

		for i := range fields {
			out = append(out, b.call(jen.Id(hashParam), jen.Id(names.self[i])))
		}

		return out
	})

	return append(stmts, body...)
}

// equal requires equal discriminants, then AND-reduces the fields of the
// matching arm.
func (b *bodyBuilder) equal() []jen.Code {
	var stmts []jen.Code
	if b.cls.IsEnum() {
		stmts = append(stmts, jen.If(jen.Id(selfParam).Dot(kindField).Op("!=").Id(otherParam).Dot(kindField)).Block(
			jen.Return(jen.False()),
		))
	}

	stmts = append(stmts, jen.Id("eq").Op(":=").True())

	body := b.dispatch(selfParam, func(arm schema.Arm) []jen.Code {
		fields := b.fields(arm)
		names := newAliases(fields)
		out := b.bindBoth(arm, fields, names)

		for i := range fields {
			out = append(out, jen.Id("eq").Op("=").Id("eq").Op("&&").Add(
				b.call(jen.Id(names.self[i]), jen.Id(names.other[i])),
			))
		}

		return out
	})

	stmts = append(stmts, body...)

	return append(stmts, jen.Return(jen.Id("eq")))
}
