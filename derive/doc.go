// Package derive is the runtime support imported by code that
// derive-generator emits.
//
// Generated functions invoke one helper per field: Clone, Equal, Compare,
// PartialCompare, Hash and Debug. Each helper dispatches in the same order:
//
//  1. a capability method on the value (Clone() T, Equal(T) bool,
//     Compare(T) int, PartialCompare(T) (int, bool), Hash(*maphash.Hash),
//     GoString() string), which is how generated and hand-written types
//     nest inside each other;
//  2. builtin semantics for predeclared kinds;
//  3. a structural fallback over slices, arrays, maps, structs, pointers and
//     interfaces that agrees with the builtin semantics: pointers compare by
//     identity, -0 equals +0, and NaN is unordered for PartialCompare.
package derive
