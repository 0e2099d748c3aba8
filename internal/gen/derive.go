package gen

import (
	"fmt"

	"derive-generator/internal/diagnostic"
	"derive-generator/internal/directive"
	"derive-generator/internal/schema"
)

// Output is the result of deriving capabilities for one type.
type Output struct {
	Schema  *schema.TypeSchema
	Request *directive.Request
	Target  Target
	// Discriminant is nil for non-enum types.
	Discriminant *schema.Discriminant
	// Impls are in request order.
	Impls []*Impl
}

// Options tune a Derive run.
type Options struct {
	// Runtime is the import path of the runtime helper package.
	Runtime string
}

// Derive parses t's directive and generates one implementation per
// requested capability. The first failure aborts the run; the returned
// error is a *diagnostic.Error.
func Derive(t *schema.TypeSchema, opts Options) (*Output, error) {
	req, err := directive.Parse(t.Directive)
	if err != nil {
		return nil, err
	}

	return DeriveRequest(t, req, opts)
}

// DeriveRequest is Derive with an already parsed request.
func DeriveRequest(t *schema.TypeSchema, req *directive.Request, opts Options) (*Output, error) {
	if err := schema.Validate(t); err != nil {
		return nil, err
	}

	out := &Output{
		Schema:  t,
		Request: req,
		Target:  NewTarget(t, opts.Runtime),
	}

	if t.Shape.Kind == schema.ShapeEnum {
		d, err := schema.ResolveDiscriminant(t.Shape.Layout, t.Shape.Variants)
		if err != nil {
			return nil, err
		}

		out.Discriminant = &d
	}

	if err := checkBoundTargets(t, req); err != nil {
		return nil, err
	}

	declared := DeclaredClause(t)

	for _, c := range req.Capabilities {
		desc := Describe(c)
		impl := desc.Signature(out.Target, Body(out.Target, c))

		clause, err := SynthesizeBounds(t, req, c)
		if err != nil {
			return nil, err
		}

		impl.Clause = clause
		impl.Unconditional = clause.Unconditional(declared)
		out.Impls = append(out.Impls, impl)
	}

	if err := checkMethodCollisions(t, out.Impls); err != nil {
		return nil, err
	}

	return out, nil
}

// checkMethodCollisions rejects a forwarding method named like a field of
// the type's struct: Go forbids a field and a method sharing a name.
func checkMethodCollisions(t *schema.TypeSchema, impls []*Impl) error {
	owners := make(map[string]string)

	switch t.Shape.Kind {
	case schema.ShapeRecord:
		for _, f := range t.Shape.Fields {
			owners[f.Name] = "field"
		}
	case schema.ShapeEnum:
		for _, v := range t.Shape.Variants {
			if v.Shape.Kind != schema.ShapeUnit {
				owners[v.Name] = "variant"
			}
		}
	}

	for _, impl := range impls {
		if impl.IsMarker() || !impl.Unconditional {
			continue
		}

		if what, ok := owners[impl.Method]; ok {
			return diagnostic.UnsupportedShape(diagnostic.Span{Source: t.Pos},
				"%s %s of %s collides with the %s method generated for %s",
				what, impl.Method, t.Name, impl.Method, impl.Capability)
		}
	}

	return nil
}

// checkBoundTargets rejects bound entries naming anything other than a
// declared type parameter before any body is generated.
func checkBoundTargets(t *schema.TypeSchema, req *directive.Request) error {
	for _, gc := range req.Constraints {
		if _, ok := t.Generic(gc.Type); !ok {
			return diagnostic.Syntax(gc.Span, "%s is not a type parameter of %s", gc.Type, t.Name)
		}
	}

	return nil
}

// Impl returns the implementation of c, or nil when it was not requested.
func (o *Output) Impl(c directive.Capability) *Impl {
	for _, impl := range o.Impls {
		if impl.Capability == c {
			return impl
		}
	}

	return nil
}

// String summarizes the output, e.g. "Shape[T]: Clone, PartialEq (repr(u8))".
func (o *Output) String() string {
	s := o.Schema.Name + DeclaredClause(o.Schema).String() + ":"
	for i, impl := range o.Impls {
		if i > 0 {
			s += ","
		}

		s += " " + impl.Capability.String()
	}

	if o.Discriminant != nil {
		s += fmt.Sprintf(" (%s)", o.Discriminant)
	}

	return s
}
