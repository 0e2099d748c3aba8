// Package match suggests the closest known name for a misspelled one, so
// diagnostics can say "did you mean PartialEq?".
package match
