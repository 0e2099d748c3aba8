// Package diagnostic provides structured errors and warnings for the derive
// generator.
//
// Key capabilities:
//   - Typed generation errors (syntax, unsupported capability, invalid
//     layout directive, unsupported shape) carrying a source span
//   - A collector for reporting problems across many types in one run
//   - Human-readable rendering with the offending token underlined
package diagnostic
