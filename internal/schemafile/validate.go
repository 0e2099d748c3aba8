package schemafile

import (
	"fmt"
	"go/token"

	"derive-generator/internal/diagnostic"
	"derive-generator/internal/match"
	"derive-generator/internal/schema"
)

// Validate checks the file's structure. Deeper shape rules (unit types with
// type parameters, variant indexing) are enforced by schema.Validate during
// generation.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("schema_is_nil", "schema file is nil", "", diagnostic.Span{})
		return res
	}

	if f.Version != currentVersion {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported schema version %q", f.Version), "", diagnostic.Span{})
	}

	if !token.IsIdentifier(f.Package) {
		res.AddError("invalid_package", fmt.Sprintf("invalid package name %q", f.Package), "", diagnostic.Span{})
	}

	if len(f.Types) == 0 {
		res.AddWarning("no_types", "schema file declares no types", "", diagnostic.Span{})
	}

	seen := make(map[string]bool, len(f.Types))

	for i := range f.Types {
		t := &f.Types[i]
		span := typeSpan(i, t)

		if t.Name == "" {
			res.AddError("missing_name", "type must specify a name", "", span)
			continue
		}

		if seen[t.Name] {
			res.AddError("duplicate_type", fmt.Sprintf("duplicate type %q", t.Name), t.Name, span)
			continue
		}

		seen[t.Name] = true

		validateType(res, t, span)
	}

	return res
}

func typeSpan(i int, t *TypeDef) diagnostic.Span {
	return diagnostic.Span{Source: fmt.Sprintf("types[%d]", i)}
}

func validateType(res *diagnostic.Diagnostics, t *TypeDef, span diagnostic.Span) {
	if t.Derive == "" {
		res.AddError("missing_derive", "type must specify a derive directive", t.Name, span)
	}

	switch t.shapeCount() {
	case 0:
		res.AddError("missing_shape", "type must specify one of record, tuple, unit or enum", t.Name, span)
	case 1:
	default:
		res.AddError("ambiguous_shape", "type must specify only one of record, tuple, unit or enum", t.Name, span)
	}

	for _, g := range t.Generics {
		if g.Name == "" {
			res.AddError("missing_generic_name", "type parameter must specify a name", t.Name, span)
		}
	}

	validateFields(res, t.Name, span, t.Record, t.Tuple)

	if t.Enum == nil {
		return
	}

	if len(t.Enum.Variants) == 0 {
		res.AddError("no_variants", "enum must declare at least one variant", t.Name, span)
	}

	variants := make(map[string]bool, len(t.Enum.Variants))

	for _, v := range t.Enum.Variants {
		switch {
		case v.Name == "":
			res.AddError("missing_variant_name", "variant must specify a name", t.Name, span)
		case variants[v.Name]:
			res.AddError("duplicate_variant", fmt.Sprintf("duplicate variant %q", v.Name), t.Name, span)
		}

		variants[v.Name] = true

		if v.Record != nil && v.Tuple != nil {
			res.AddError("ambiguous_variant", fmt.Sprintf("variant %q must specify only one of record or tuple", v.Name),
				t.Name, span)
		}

		validateFields(res, t.Name, span, v.Record, v.Tuple)
	}
}

func validateFields(res *diagnostic.Diagnostics, typeName string, span diagnostic.Span, record FieldList, tuple TupleList) {
	for _, f := range record {
		if f.Name == "" {
			res.AddError("missing_field_name", "record field must specify a name", typeName, span)
		}

		if f.Type == "" {
			res.AddError("missing_field_type", fmt.Sprintf("field %q must specify a type", f.Name), typeName, span)
		}

		validateSkip(res, typeName, span, f)
	}

	for i, f := range tuple {
		if f.Type == "" {
			res.AddError("missing_field_type", fmt.Sprintf("tuple item %d must specify a type", i), typeName, span)
		}

		validateSkip(res, typeName, span, f)
	}
}

func validateSkip(res *diagnostic.Diagnostics, typeName string, span diagnostic.Span, f FieldDef) {
	for _, group := range f.Skip {
		if _, ok := schema.ParseSkipGroup(group); !ok {
			res.AddError("invalid_skip_group",
				fmt.Sprintf("invalid skip group %q (expected %q or %q)%s", group, schema.SkipGroupDebug, schema.SkipGroupCompare,
					match.Hint(group, []string{schema.SkipGroupDebug, schema.SkipGroupCompare})),
				typeName, span)
		}
	}
}
