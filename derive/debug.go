package derive

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// maxDebugDepth bounds the structural fallback on cyclic pointer graphs.
const maxDebugDepth = 32

// Debug renders v in debug form: strings are quoted, structs render as
// "Name { field: value }" and values implementing fmt.GoStringer render
// through their GoString method.
func Debug[T any](v T) string {
	if s, ok := any(v).(fmt.GoStringer); ok {
		return s.GoString()
	}

	var sb strings.Builder

	debugValue(&sb, valueOf(&v), 0)

	return sb.String()
}

var goStringOut = []reflect.Type{stringTyp}

func debugValue(sb *strings.Builder, v reflect.Value, depth int) {
	if depth > maxDebugDepth {
		sb.WriteString("...")
		return
	}

	if m, ok := method(v, "GoString", nil, goStringOut); ok {
		sb.WriteString(m.Call(nil)[0].String())
		return
	}

	switch v.Kind() {
	case reflect.Bool:
		sb.WriteString(strconv.FormatBool(v.Bool()))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		sb.WriteString(strconv.FormatInt(v.Int(), 10))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		sb.WriteString(strconv.FormatUint(v.Uint(), 10))

	case reflect.Float32, reflect.Float64:
		sb.WriteString(formatFloat(v.Float(), v.Type().Bits()))

	case reflect.Complex64, reflect.Complex128:
		sb.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, v.Type().Bits()))

	case reflect.String:
		sb.WriteString(strconv.Quote(v.String()))

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			sb.WriteString("[]")
			return
		}

		sb.WriteByte('[')

		for i := range v.Len() {
			if i > 0 {
				sb.WriteString(", ")
			}

			debugValue(sb, v.Index(i), depth+1)
		}

		sb.WriteByte(']')

	case reflect.Map:
		debugMap(sb, v, depth)

	case reflect.Struct:
		b := DebugStruct(v.Type().Name())
		for i := range v.NumField() {
			var field strings.Builder

			debugValue(&field, v.Field(i), depth+1)
			b.raw(v.Type().Field(i).Name, field.String())
		}

		sb.WriteString(b.Finish())

	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			sb.WriteString("nil")
			return
		}

		debugValue(sb, v.Elem(), depth+1)

	case reflect.Invalid:
		sb.WriteString("nil")

	default:
		fmt.Fprintf(sb, "%s(%#x)", v.Type(), v.Pointer())
	}
}

// debugMap renders entries sorted by their rendered key.
func debugMap(sb *strings.Builder, v reflect.Value, depth int) {
	type entry struct{ key, value string }

	entries := make([]entry, 0, v.Len())

	iter := v.MapRange()
	for iter.Next() {
		var k, val strings.Builder

		debugValue(&k, iter.Key(), depth+1)
		debugValue(&val, iter.Value(), depth+1)
		entries = append(entries, entry{k.String(), val.String()})
	}

	slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.key, b.key) })

	sb.WriteByte('{')

	for i, e := range entries {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(e.key)
		sb.WriteString(": ")
		sb.WriteString(e.value)
	}

	sb.WriteByte('}')
}

// formatFloat keeps a fractional part on integral values, so 1 renders as
// "1.0" and stays distinguishable from an integer.
func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsAny(s, ".e") {
		return s
	}

	return s + ".0"
}

// StructBuilder renders "Name { a: 1, b: 2 }".
type StructBuilder struct {
	name   string
	fields []string
}

// DebugStruct starts the debug rendering of a record named name.
func DebugStruct(name string) *StructBuilder {
	return &StructBuilder{name: name}
}

// Field appends a named field rendered with Debug.
func (b *StructBuilder) Field(name string, v any) *StructBuilder {
	return b.raw(name, Debug(v))
}

func (b *StructBuilder) raw(name, rendered string) *StructBuilder {
	b.fields = append(b.fields, name+": "+rendered)
	return b
}

// Finish returns the rendering; a record without fields renders as its name.
func (b *StructBuilder) Finish() string {
	if len(b.fields) == 0 {
		return b.name
	}

	return b.name + " { " + strings.Join(b.fields, ", ") + " }"
}

// FinishNonExhaustive marks that some fields were left out: "Name { a: 1, .. }".
func (b *StructBuilder) FinishNonExhaustive() string {
	return b.name + " { " + strings.Join(append(slices.Clone(b.fields), ".."), ", ") + " }"
}

// TupleBuilder renders "Name(1, 2)".
type TupleBuilder struct {
	name   string
	fields []string
}

// DebugTuple starts the debug rendering of a tuple named name.
func DebugTuple(name string) *TupleBuilder {
	return &TupleBuilder{name: name}
}

// Field appends a positional field rendered with Debug.
func (b *TupleBuilder) Field(v any) *TupleBuilder {
	b.fields = append(b.fields, Debug(v))
	return b
}

// Finish returns the rendering; a tuple without fields renders as its name.
func (b *TupleBuilder) Finish() string {
	if len(b.fields) == 0 {
		return b.name
	}

	return b.name + "(" + strings.Join(b.fields, ", ") + ")"
}

// FinishNonExhaustive marks that some fields were left out: "Name(1, ..)".
func (b *TupleBuilder) FinishNonExhaustive() string {
	return b.name + "(" + strings.Join(append(slices.Clone(b.fields), ".."), ", ") + ")"
}
