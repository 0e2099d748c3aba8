package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"derive-generator/internal/directive"
)

// Descriptor is the static description of one capability.
type Descriptor struct {
	Capability directive.Capability
	// Path is the runtime helper invoked on every field, empty for markers.
	Path string
	// Method is the method name on the type, empty for markers.
	Method string
	// FuncPrefix prefixes the type name to form the free function name.
	FuncPrefix string
	// Bound is the constraint a bare bound entry resolves to.
	Bound Bound
	// Binary capabilities take a second operand of the same type.
	Binary bool
	// Marker capabilities have an empty body and no method.
	Marker bool
}

var descriptors = map[directive.Capability]Descriptor{
	directive.Clone: {
		Path: "Clone", Method: "Clone", FuncPrefix: "Clone", Bound: anyBound,
	},
	directive.Copy: {
		FuncPrefix: "AssertCopy", Bound: anyBound, Marker: true,
	},
	directive.Debug: {
		Path: "Debug", Method: "GoString", FuncPrefix: "GoString", Bound: anyBound,
	},
	directive.Eq: {
		FuncPrefix: "AssertEq", Bound: comparableBound, Marker: true,
	},
	directive.Hash: {
		Path: "Hash", Method: "Hash", FuncPrefix: "Hash", Bound: comparableBound,
	},
	directive.Ord: {
		Path: "Compare", Method: "Compare", FuncPrefix: "Compare", Bound: orderedBound, Binary: true,
	},
	directive.PartialEq: {
		Path: "Equal", Method: "Equal", FuncPrefix: "Equal", Bound: comparableBound, Binary: true,
	},
	directive.PartialOrd: {
		Path: "PartialCompare", Method: "PartialCompare", FuncPrefix: "PartialCompare", Bound: orderedBound,
		Binary: true,
	},
}

// Describe returns the descriptor of c. It panics on a capability outside
// the closed set, which the directive parser never produces.
func Describe(c directive.Capability) Descriptor {
	d, ok := descriptors[c]
	if !ok {
		panic(fmt.Sprintf("gen: no descriptor for capability %d", int(c)))
	}

	d.Capability = c

	return d
}

// Impl is one generated capability implementation: a free function and,
// when its clause is unconditional, a forwarding method.
type Impl struct {
	Capability directive.Capability
	// Func is the free function name, e.g. CompareTest.
	Func string
	// Method is the forwarding method name, empty for markers.
	Method string
	// Params are the function parameters, receiver operand first.
	Params []jen.Code
	// MethodParams are the method parameters, without the receiver.
	MethodParams []jen.Code
	// Args are the names forwarded by the method to the free function.
	Args    []jen.Code
	Results []jen.Code
	Body    []jen.Code
	// Clause is the constraint clause of the free function.
	Clause Clause
	// Unconditional is set when Clause adds nothing to the declared one.
	Unconditional bool
}

// Signature wraps a body into the capability's function signature for
// target. Marker bodies are dropped.
func (d Descriptor) Signature(target Target, body []jen.Code) *Impl {
	impl := &Impl{
		Capability: d.Capability,
		Func:       target.FuncName(d.FuncPrefix),
		Method:     d.Method,
	}

	switch d.Capability {
	case directive.Copy, directive.Eq:
		impl.Params = []jen.Code{target.Type()}

		return impl
	case directive.Clone:
		impl.Params = []jen.Code{jen.Id(selfParam).Add(target.Type())}
		impl.Results = []jen.Code{target.Type()}
	case directive.Debug:
		impl.Params = []jen.Code{jen.Id(selfParam).Add(target.Type())}
		impl.Results = []jen.Code{jen.String()}
	case directive.Hash:
		impl.Params = []jen.Code{
			jen.Id(selfParam).Add(target.Type()),
			jen.Id(hashParam).Op("*").Qual("hash/maphash", "Hash"),
		}
		impl.MethodParams = []jen.Code{jen.Id(hashParam).Op("*").Qual("hash/maphash", "Hash")}
		impl.Args = []jen.Code{jen.Id(selfParam), jen.Id(hashParam)}
	case directive.Ord:
		impl.Params = []jen.Code{jen.List(jen.Id(selfParam), jen.Id(otherParam)).Add(target.Type())}
		impl.Results = []jen.Code{jen.Int()}
	case directive.PartialEq:
		impl.Params = []jen.Code{jen.List(jen.Id(selfParam), jen.Id(otherParam)).Add(target.Type())}
		impl.Results = []jen.Code{jen.Bool()}
	case directive.PartialOrd:
		impl.Params = []jen.Code{jen.List(jen.Id(selfParam), jen.Id(otherParam)).Add(target.Type())}
		impl.Results = []jen.Code{jen.Int(), jen.Bool()}
	}

	if d.Binary {
		impl.MethodParams = []jen.Code{jen.Id(otherParam).Add(target.Type())}
		impl.Args = []jen.Code{jen.Id(selfParam), jen.Id(otherParam)}
	} else if impl.Args == nil {
		impl.Args = []jen.Code{jen.Id(selfParam)}
	}

	impl.Body = body

	return impl
}

// IsMarker reports whether the implementation has no body.
func (i *Impl) IsMarker() bool {
	return i.Method == ""
}
