// Package schemafile provides the YAML schema format, parsing, validation
// and conversion to schema.TypeSchema.
//
// Schema files describe types the generator declares itself, which is how
// enums, tuples and layout directives reach the generator: Go source has no
// syntax for them.
//
// # Schema Overview
//
//	version: "1"
//	package: shapes
//	types:
//	  - name: Test
//	    derive: "T; Clone, Debug, PartialEq, PartialOrd, Hash, Ord"
//	    generics: [T]
//	    record:
//	      - a: T
//	  - name: Triple
//	    derive: "Clone, PartialEq, Ord"
//	    tuple: [int, int, int]
//	  - name: Shape
//	    derive: "T; Clone, Debug, PartialEq, PartialOrd"
//	    generics: [T, {name: U, constraint: fmt.Stringer}]
//	    enum:
//	      layout: "repr(u8)"
//	      variants:
//	        - {name: A, tuple: [T]}
//	        - name: B
//	          record:
//	            - x: T
//	            - {name: y, type: U, skip: [Debug]}
//	        - {name: C}
//
// A type has exactly one of record, tuple, unit or enum; a variant without
// record or tuple is a unit variant. Record fields are either a single-key
// map {name: type} or the long form with skip groups. Tuple items are a
// type string or the long form {type: ..., skip: [...]}.
package schemafile
