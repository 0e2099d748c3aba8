// Package schema models the types the derive generator works on.
//
// A TypeSchema is produced by a loader (Go source or YAML schema file) and is
// immutable for the duration of generation. The package also hosts the two
// leaf components of the generator:
//   - Classify: flattens a Shape into dispatch arms with per-field accessors
//   - ResolveDiscriminant: decides how an enum's variant selector is backed
package schema
