package analyze

import (
	"go/types"
	"strings"
)

// TypePath builds a readable path string for a field, e.g. "Pair.memo".
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// TypeStringer renders type expressions as they are spelled inside one
// package: local names stay bare and imported names use the package name.
type TypeStringer struct {
	pkg *types.Package
}

// NewTypeStringer creates a TypeStringer relative to pkg.
func NewTypeStringer(pkg *types.Package) *TypeStringer {
	return &TypeStringer{pkg: pkg}
}

// TypeString returns the source spelling of t.
func (s *TypeStringer) TypeString(t types.Type) string {
	if t == nil {
		return "<nil>"
	}

	return types.TypeString(t, s.qualifier)
}

// Constraint returns the constraint of a type parameter; an empty string
// stands for any.
func (s *TypeStringer) Constraint(tp *types.TypeParam) string {
	c := s.TypeString(tp.Constraint())
	if c == "any" || c == "interface{}" {
		return ""
	}

	return c
}

func (s *TypeStringer) qualifier(p *types.Package) string {
	if p == s.pkg {
		return ""
	}

	return p.Name()
}
