package derive

import "reflect"

// Clone duplicates v. Values implementing Cloner are cloned by their method;
// slices, maps and arrays are copied element by element; everything else is
// copied by value.
func Clone[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}

	var res T

	valueOf(&res).Set(cloneValue(valueOf(&v)))

	return res
}

func cloneValue(v reflect.Value) reflect.Value {
	if m, ok := method(v, "Clone", nil, []reflect.Type{self}); ok {
		return m.Call(nil)[0]
	}

	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return v
		}

		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := range v.Len() {
			out.Index(i).Set(cloneValue(v.Index(i)))
		}

		return out

	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := range v.Len() {
			out.Index(i).Set(cloneValue(v.Index(i)))
		}

		return out

	case reflect.Map:
		if v.IsNil() {
			return v
		}

		out := reflect.MakeMapWithSize(v.Type(), v.Len())

		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}

		return out

	default:
		return v
	}
}
