// Package gen turns a TypeSchema and its derive directive into Go code.
//
// Generation is built on github.com/dave/jennifer: every capability becomes
// a generic free function whose type-parameter list carries the synthesized
// constraint clause, plus a forwarding method when that clause adds nothing
// beyond the declared one.
//
// Body patterns:
//   - Clone rebuilds the value field by field
//   - Debug builds a derive.DebugStruct / derive.DebugTuple chain
//   - Hash writes the enum discriminant first, then every field
//   - PartialEq checks the discriminant, then AND-reduces fields
//   - Ord and PartialOrd right-fold fields into early returns, and order
//     distinct variants by declaration index
//   - Copy and Eq are markers with an empty body
package gen
