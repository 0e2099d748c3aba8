package derive

import (
	"encoding/binary"
	"hash/maphash"
	"math"
	"reflect"
	"slices"
)

// Hash writes v into h so that values Equal reports equal produce the same
// hash input.
func Hash[T any](h *maphash.Hash, v T) {
	if x, ok := any(v).(Hasher); ok {
		x.Hash(h)
		return
	}

	hashValue(h, valueOf(&v))
}

// Sum64 runs write against a fresh hash with the given seed and returns the
// resulting sum.
func Sum64(seed maphash.Seed, write func(h *maphash.Hash)) uint64 {
	var h maphash.Hash

	h.SetSeed(seed)
	write(&h)

	return h.Sum64()
}

var hashIn = []reflect.Type{hashType}

func hashValue(h *maphash.Hash, v reflect.Value) {
	if m, ok := method(v, "Hash", hashIn, nil); ok {
		m.Call([]reflect.Value{reflect.ValueOf(h)})
		return
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			_ = h.WriteByte(1)
		} else {
			_ = h.WriteByte(0)
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		writeUint64(h, uint64(v.Int()))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		writeUint64(h, v.Uint())

	case reflect.Float32, reflect.Float64:
		writeFloat(h, v.Float())

	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		writeFloat(h, real(c))
		writeFloat(h, imag(c))

	case reflect.String:
		// Length prefix keeps ("ab", "c") apart from ("a", "bc").
		writeUint64(h, uint64(v.Len()))
		_, _ = h.WriteString(v.String())

	case reflect.Slice, reflect.Array:
		writeUint64(h, uint64(v.Len()))

		for i := range v.Len() {
			hashValue(h, v.Index(i))
		}

	case reflect.Map:
		hashMap(h, v)

	case reflect.Struct:
		for i := range v.NumField() {
			hashValue(h, v.Field(i))
		}

	case reflect.Interface:
		if v.IsNil() {
			_ = h.WriteByte(0)
			return
		}

		_ = h.WriteByte(1)
		_, _ = h.WriteString(v.Elem().Type().String())
		hashValue(h, v.Elem())

	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer, reflect.Func:
		writeUint64(h, uint64(v.Pointer()))
	}
}

// hashMap combines per-entry hashes independently of iteration order.
func hashMap(h *maphash.Hash, v reflect.Value) {
	sums := make([]uint64, 0, v.Len())

	iter := v.MapRange()
	for iter.Next() {
		sums = append(sums, Sum64(h.Seed(), func(eh *maphash.Hash) {
			hashValue(eh, iter.Key())
			hashValue(eh, iter.Value())
		}))
	}

	slices.Sort(sums)

	writeUint64(h, uint64(len(sums)))

	for _, s := range sums {
		writeUint64(h, s)
	}
}

func writeFloat(h *maphash.Hash, f float64) {
	switch {
	case f == 0:
		// -0 and +0 are equal.
		writeUint64(h, 0)
	case math.IsNaN(f):
		writeUint64(h, math.Float64bits(math.NaN()))
	default:
		writeUint64(h, math.Float64bits(f))
	}
}

func writeUint64(h *maphash.Hash, x uint64) {
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], x)
	_, _ = h.Write(buf[:])
}
