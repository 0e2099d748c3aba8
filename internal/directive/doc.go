// Package directive parses derive directives.
//
// A directive names the capabilities to derive, optionally preceded by a
// list of generic constraints:
//
//	directive       := capability-list | bound-list ";" capability-list
//	capability-list := capability ("," capability)*
//	capability      := "Clone" | "Copy" | "Debug" | "Eq" | "Hash" | "Ord" | "PartialEq" | "PartialOrd"
//	bound-list      := bound ("," bound)*
//	bound           := type ":" constraint | type
//
// The two forms are told apart by attempt order rather than lookahead: the
// whole input is first parsed as a capability list, and only if that fails
// is it re-parsed as bounds followed by capabilities. A bound list always
// contains a ";" and possibly a ":", neither of which the capability-list
// grammar accepts, so a bound-list input can never be taken for a
// capability list.
package directive
