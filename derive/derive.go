package derive

import (
	"fmt"
	"hash/maphash"
	"reflect"
)

// Cloner is implemented by types with a Clone method.
type Cloner[T any] interface {
	Clone() T
}

// Equaler is implemented by types with structural equality.
type Equaler[T any] interface {
	Equal(other T) bool
}

// Comparer is implemented by totally ordered types.
type Comparer[T any] interface {
	Compare(other T) int
}

// PartialComparer is implemented by partially ordered types. The boolean is
// false when the two values are unordered.
type PartialComparer[T any] interface {
	PartialCompare(other T) (int, bool)
}

// Hasher is implemented by types that write themselves into a hash.
type Hasher interface {
	Hash(h *maphash.Hash)
}

// InvalidVariant returns the panic value used when an enum's Kind holds a
// value outside its declared variants.
func InvalidVariant(typeName string, kind any) error {
	return fmt.Errorf("derive: invalid %s variant %v", typeName, kind)
}

// valueOf returns an addressable reflect.Value holding v, keeping interface
// types intact.
func valueOf[T any](v *T) reflect.Value {
	return reflect.ValueOf(v).Elem()
}

// method returns v's exported method called name when its signature is
// func(in...) out, with "self" standing for v's own type.
func method(v reflect.Value, name string, in []reflect.Type, out []reflect.Type) (reflect.Value, bool) {
	if !v.IsValid() || !v.CanInterface() {
		return reflect.Value{}, false
	}

	if (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) && v.IsNil() {
		return reflect.Value{}, false
	}

	m := v.MethodByName(name)
	if !m.IsValid() {
		return reflect.Value{}, false
	}

	t := m.Type()
	if t.NumIn() != len(in) || t.NumOut() != len(out) {
		return reflect.Value{}, false
	}

	for i, want := range in {
		if want == nil {
			want = v.Type()
		}

		if t.In(i) != want {
			return reflect.Value{}, false
		}
	}

	for i, want := range out {
		if want == nil {
			want = v.Type()
		}

		if t.Out(i) != want {
			return reflect.Value{}, false
		}
	}

	return m, true
}

var (
	boolType  = reflect.TypeFor[bool]()
	intType   = reflect.TypeFor[int]()
	hashType  = reflect.TypeFor[*maphash.Hash]()
	stringTyp = reflect.TypeFor[string]()
)

// self marks "the receiver's own type" in method signatures.
var self reflect.Type
