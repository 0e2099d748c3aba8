package derive

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
)

// Compare returns -1, 0 or +1 ordering a before, equal to or after b.
//
// Builtin numbers and strings follow cmp.Compare and false orders before
// true. Slices and arrays compare lexicographically, structs field by field,
// and pointers by address.
// Compare panics for values without an order (maps, functions, channels)
// and for float NaN, which Equal reports unequal even to itself.
func Compare[T any](a, b T) int {
	if c, ok := any(a).(Comparer[T]); ok {
		return c.Compare(b)
	}

	c, ok := compareValue(valueOf(&a), valueOf(&b), false)
	if !ok {
		panic(fmt.Sprintf("derive: %T values are unordered", a))
	}

	return c
}

// PartialCompare is Compare for partially ordered values: the boolean is
// false when a and b are unordered, such as when either is a float NaN.
func PartialCompare[T any](a, b T) (int, bool) {
	if c, ok := any(a).(PartialComparer[T]); ok {
		return c.PartialCompare(b)
	}

	if c, ok := any(a).(Comparer[T]); ok {
		return c.Compare(b), true
	}

	return compareValue(valueOf(&a), valueOf(&b), true)
}

var (
	partialOut = []reflect.Type{intType, boolType}
	totalOut   = []reflect.Type{intType}
)

func compareValue(a, b reflect.Value, partial bool) (int, bool) {
	if partial {
		if m, ok := method(a, "PartialCompare", []reflect.Type{self}, partialOut); ok && b.CanInterface() {
			out := m.Call([]reflect.Value{b})
			return int(out[0].Int()), out[1].Bool()
		}
	}

	if m, ok := method(a, "Compare", []reflect.Type{self}, totalOut); ok && b.CanInterface() {
		return int(m.Call([]reflect.Value{b})[0].Int()), true
	}

	switch a.Kind() {
	case reflect.Bool:
		return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool())), true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int()), true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint()), true

	case reflect.Float32, reflect.Float64:
		// NaN is unordered in both modes so Compare never reports equal
		// where Equal reports a difference.
		x, y := a.Float(), b.Float()
		if math.IsNaN(x) || math.IsNaN(y) {
			return 0, false
		}

		return cmp.Compare(x, y), true

	case reflect.String:
		return cmp.Compare(a.String(), b.String()), true

	case reflect.Slice, reflect.Array:
		n := min(a.Len(), b.Len())
		for i := range n {
			if c, ok := compareValue(a.Index(i), b.Index(i), partial); !ok || c != 0 {
				return c, ok
			}
		}

		return cmp.Compare(a.Len(), b.Len()), true

	case reflect.Struct:
		for i := range a.NumField() {
			if c, ok := compareValue(a.Field(i), b.Field(i), partial); !ok || c != 0 {
				return c, ok
			}
		}

		return 0, true

	case reflect.Pointer:
		// Identity, to agree with Equal.
		return cmp.Compare(a.Pointer(), b.Pointer()), true

	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return cmp.Compare(nilRank(a), nilRank(b)), true
		}

		if a.Elem().Type() != b.Elem().Type() {
			return 0, false
		}

		return compareValue(a.Elem(), b.Elem(), partial)

	default:
		return 0, false
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}

	return 0
}

// nilRank orders nil before non-nil.
func nilRank(v reflect.Value) int {
	if v.IsNil() {
		return 0
	}

	return 1
}
