// Package analyze loads Go packages and collects the struct types that carry
// a derive directive.
//
// It uses golang.org/x/tools/go/packages with AST and go/types. A struct is
// selected by a directive line in its doc comment:
//
//	//derive:T; Clone, Debug, PartialEq
//	type Test[T any] struct {
//		a T
//	}
//
// Field tags exclude fields from capability groups: `derive:"skip"`,
// `derive:"skip(Debug)"` or `derive:"skip(EqHashOrd)"`.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: one annotated struct with its directive, type parameters and fields
//   - FieldInfo: field name, type expression, tag and skip set
package analyze
