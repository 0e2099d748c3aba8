package gen

import (
	"slices"
	"strings"

	"github.com/dave/jennifer/jen"

	"derive-generator/internal/diagnostic"
	"derive-generator/internal/directive"
	"derive-generator/internal/schema"
)

// Bound is one constraint term of a type parameter.
type Bound struct {
	// Path is the import path of a qualified constraint, e.g. "cmp".
	Path string
	// Name is the constraint identifier, or the verbatim user constraint
	// when Path is empty.
	Name string
}

var (
	anyBound        = Bound{Name: "any"}
	comparableBound = Bound{Name: "comparable"}
	orderedBound    = Bound{Path: "cmp", Name: "Ordered"}
)

// String renders the bound as source text.
func (b Bound) String() string {
	if b.Path == "" {
		return b.Name
	}

	return b.Path[strings.LastIndex(b.Path, "/")+1:] + "." + b.Name
}

// IsAny reports whether the bound constrains nothing.
func (b Bound) IsAny() bool {
	return b.Path == "" && (b.Name == "any" || b.Name == "interface{}")
}

func (b Bound) code() jen.Code {
	if b.Path != "" {
		return jen.Qual(b.Path, b.Name)
	}

	return jen.Id(b.Name)
}

// Predicate lists the constraint terms of one type parameter.
type Predicate struct {
	Param  string
	Bounds []Bound
}

// effective returns the distinct non-any terms in first-occurrence order.
func (p Predicate) effective() []Bound {
	var out []Bound

	for _, b := range p.Bounds {
		if b.IsAny() || slices.Contains(out, b) {
			continue
		}

		out = append(out, b)
	}

	return out
}

// Clause is the constraint clause of a generated function, one predicate per
// type parameter in declaration order.
type Clause []Predicate

// DeclaredClause returns the clause the type itself declares.
func DeclaredClause(t *schema.TypeSchema) Clause {
	clause := make(Clause, len(t.Generics))
	for i, g := range t.Generics {
		clause[i] = Predicate{Param: g.Name, Bounds: []Bound{{Name: g.DeclaredConstraint()}}}
	}

	return clause
}

func (c Clause) clone() Clause {
	out := make(Clause, len(c))
	for i, p := range c {
		out[i] = Predicate{Param: p.Param, Bounds: slices.Clone(p.Bounds)}
	}

	return out
}

func (c Clause) index(param string) int {
	return slices.IndexFunc(c, func(p Predicate) bool { return p.Param == param })
}

// Predicate returns the predicate of param.
func (c Clause) Predicate(param string) (Predicate, bool) {
	i := c.index(param)
	if i < 0 {
		return Predicate{}, false
	}

	return c[i], true
}

// Unconditional reports whether c constrains no parameter beyond declared.
func (c Clause) Unconditional(declared Clause) bool {
	for _, p := range c {
		d, _ := declared.Predicate(p.Param)
		have := d.effective()

		for _, b := range p.effective() {
			if !slices.Contains(have, b) {
				return false
			}
		}
	}

	return true
}

// Render renders the clause as a type-parameter list, merging the terms of
// each parameter into any, the single term, or an interface of all terms.
func (c Clause) Render() *jen.Statement {
	if len(c) == 0 {
		return jen.Null()
	}

	params := make([]jen.Code, len(c))
	for i, p := range c {
		params[i] = jen.Id(p.Param).Add(p.constraint())
	}

	return jen.Types(params...)
}

// String renders the clause as source text, e.g. "[T interface{ comparable; fmt.Stringer }]".
func (c Clause) String() string {
	if len(c) == 0 {
		return ""
	}

	parts := make([]string, len(c))
	for i, p := range c {
		terms := p.effective()

		switch len(terms) {
		case 0:
			parts[i] = p.Param + " any"
		case 1:
			parts[i] = p.Param + " " + terms[0].String()
		default:
			names := make([]string, len(terms))
			for j, b := range terms {
				names[j] = b.String()
			}

			parts[i] = p.Param + " interface{ " + strings.Join(names, "; ") + " }"
		}
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func (p Predicate) constraint() jen.Code {
	terms := p.effective()

	switch len(terms) {
	case 0:
		return jen.Any()
	case 1:
		return terms[0].code()
	default:
		codes := make([]jen.Code, len(terms))
		for i, b := range terms {
			codes[i] = b.code()
		}

		return jen.Interface(codes...)
	}
}

// SynthesizeBounds computes the constraint clause of capability c for t.
//
// Without a bound list the declared clause is reused as is. Otherwise every
// entry adds a term to its type parameter: the verbatim constraint for
// "T: C" entries, the capability's own bound for bare "T" entries.
func SynthesizeBounds(t *schema.TypeSchema, req *directive.Request, c directive.Capability) (Clause, error) {
	declared := DeclaredClause(t)
	if !req.HasConstraints() {
		return declared, nil
	}

	clause := declared.clone()
	auto := Describe(c).Bound

	for _, gc := range req.Constraints {
		i := clause.index(gc.Type)
		if i < 0 {
			return nil, diagnostic.Syntax(gc.Span, "%s is not a type parameter of %s", gc.Type, t.Name)
		}

		b := auto
		if gc.Kind == directive.ConstraintCustom {
			b = Bound{Name: gc.Constraint}
		}

		clause[i].Bounds = append(clause[i].Bounds, b)
	}

	return clause, nil
}
