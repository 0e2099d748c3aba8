package derive

import "reflect"

// Equal reports whether a and b are structurally equal.
func Equal[T any](a, b T) bool {
	if e, ok := any(a).(Equaler[T]); ok {
		return e.Equal(b)
	}

	return equalValue(valueOf(&a), valueOf(&b))
}

func equalValue(a, b reflect.Value) bool {
	if m, ok := method(a, "Equal", []reflect.Type{self}, []reflect.Type{boolType}); ok && b.CanInterface() {
		return m.Call([]reflect.Value{b})[0].Bool()
	}

	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool()

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()

	case reflect.Float32, reflect.Float64:
		return a.Float() == b.Float()

	case reflect.Complex64, reflect.Complex128:
		return a.Complex() == b.Complex()

	case reflect.String:
		return a.String() == b.String()

	case reflect.Slice:
		if a.IsNil() != b.IsNil() {
			return false
		}

		fallthrough

	case reflect.Array:
		if a.Len() != b.Len() {
			return false
		}

		for i := range a.Len() {
			if !equalValue(a.Index(i), b.Index(i)) {
				return false
			}
		}

		return true

	case reflect.Map:
		if a.IsNil() != b.IsNil() || a.Len() != b.Len() {
			return false
		}

		iter := a.MapRange()
		for iter.Next() {
			bv := b.MapIndex(iter.Key())
			if !bv.IsValid() || !equalValue(iter.Value(), bv) {
				return false
			}
		}

		return true

	case reflect.Struct:
		for i := range a.NumField() {
			if !equalValue(a.Field(i), b.Field(i)) {
				return false
			}
		}

		return true

	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}

		if a.Elem().Type() != b.Elem().Type() {
			return false
		}

		return equalValue(a.Elem(), b.Elem())

	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()

	case reflect.Func:
		return a.IsNil() && b.IsNil()

	default:
		return !a.IsValid() && !b.IsValid()
	}
}
