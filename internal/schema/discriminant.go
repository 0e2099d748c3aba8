package schema

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"

	"derive-generator/internal/common"
	"derive-generator/internal/diagnostic"
)

// DiscriminantKind is how an enum's variant selector is realised.
type DiscriminantKind int

const (
	// DiscriminantUnknown: non-unit variants without an explicit width, or a
	// cross-language layout without an integer width.
	DiscriminantUnknown DiscriminantKind = iota
	// DiscriminantSingle: exactly one variant.
	DiscriminantSingle
	// DiscriminantUnitDefault: only unit variants, default layout.
	DiscriminantUnitDefault
	// DiscriminantUnitRepr: only unit variants, explicit width.
	DiscriminantUnitRepr
	// DiscriminantRepr: some non-unit variant, explicit width.
	DiscriminantRepr
)

// String returns a human-readable representation of the DiscriminantKind.
func (k DiscriminantKind) String() string {
	switch k {
	case DiscriminantUnknown:
		return "unknown"
	case DiscriminantSingle:
		return "single"
	case DiscriminantUnitDefault:
		return "unit-default"
	case DiscriminantUnitRepr:
		return "unit-repr"
	case DiscriminantRepr:
		return "repr"
	default:
		return common.UnknownStr
	}
}

// Discriminant is the resolved variant selector of an enum.
type Discriminant struct {
	Kind DiscriminantKind
	// Repr is set for DiscriminantUnitRepr and DiscriminantRepr.
	Repr Representation
}

// HasRepr reports whether an explicit backing width was declared.
func (d Discriminant) HasRepr() bool {
	return d.Kind == DiscriminantUnitRepr || d.Kind == DiscriminantRepr
}

// GoType returns the Go integer type backing the enum's Kind type.
func (d Discriminant) GoType() string {
	if d.HasRepr() {
		return d.Repr.GoType()
	}

	return "int"
}

// String renders e.g. "repr(u8)" or "unit-default".
func (d Discriminant) String() string {
	if d.HasRepr() {
		return fmt.Sprintf("%s(%s)", d.Kind, d.Repr)
	}

	return d.Kind.String()
}

// Representation is an explicit integer backing width.
type Representation int

const (
	ReprNone Representation = iota
	ReprU8
	ReprU16
	ReprU32
	ReprU64
	ReprU128
	ReprUSize
	ReprI8
	ReprI16
	ReprI32
	ReprI64
	ReprI128
	ReprISize
)

type reprInfo struct {
	name   string
	goType string
}

// u128 and i128 have no Go integer counterpart and are backed by the widest
// Go integer of the same signedness.
var reprs = map[Representation]reprInfo{
	ReprU8:    {"u8", "uint8"},
	ReprU16:   {"u16", "uint16"},
	ReprU32:   {"u32", "uint32"},
	ReprU64:   {"u64", "uint64"},
	ReprU128:  {"u128", "uint64"},
	ReprUSize: {"usize", "uint"},
	ReprI8:    {"i8", "int8"},
	ReprI16:   {"i16", "int16"},
	ReprI32:   {"i32", "int32"},
	ReprI64:   {"i64", "int64"},
	ReprI128:  {"i128", "int64"},
	ReprISize: {"isize", "int"},
}

// reprNames accepts both the short width names and the Go spellings.
var reprNames = map[string]Representation{
	"u8": ReprU8, "u16": ReprU16, "u32": ReprU32, "u64": ReprU64, "u128": ReprU128, "usize": ReprUSize,
	"i8": ReprI8, "i16": ReprI16, "i32": ReprI32, "i64": ReprI64, "i128": ReprI128, "isize": ReprISize,
	"uint8": ReprU8, "uint16": ReprU16, "uint32": ReprU32, "uint64": ReprU64, "uint": ReprUSize,
	"int8": ReprI8, "int16": ReprI16, "int32": ReprI32, "int64": ReprI64, "int": ReprISize,
}

// ParseRepresentation parses a width name.
func ParseRepresentation(name string) (Representation, bool) {
	r, ok := reprNames[name]
	return r, ok
}

// String returns the short width name.
func (r Representation) String() string {
	if info, ok := reprs[r]; ok {
		return info.name
	}

	return common.UnknownStr
}

// GoType returns the Go integer type for the width.
func (r Representation) GoType() string {
	if info, ok := reprs[r]; ok {
		return info.goType
	}

	return "int"
}

// layoutDirectiveName is the only layout directive the resolver interprets.
const layoutDirectiveName = "repr"

// crossLanguageLayout is the argument requesting a C-compatible layout.
const crossLanguageLayout = "C"

// ResolveDiscriminant determines the enum's discriminant from its layout
// directives and variants. A single variant short-circuits every other check.
// The first explicit width, in directive order, wins.
func ResolveDiscriminant(layout []string, variants []Variant) (Discriminant, error) {
	if len(variants) == 1 {
		return Discriminant{Kind: DiscriminantSingle}, nil
	}

	var (
		repr  = ReprNone
		isC   bool
		found bool
	)

	for i, directive := range layout {
		name, args, err := parseLayoutDirective(i, directive)
		if err != nil {
			return Discriminant{}, err
		}

		if name != layoutDirectiveName || found {
			continue
		}

		for _, arg := range args {
			if arg == crossLanguageLayout {
				isC = true
				continue
			}

			if r, ok := ParseRepresentation(arg); ok {
				repr = r
				found = true

				break
			}
		}
	}

	isUnit := true

	for _, v := range variants {
		if v.Shape.Kind != ShapeUnit {
			isUnit = false
			break
		}
	}

	switch {
	case found && isUnit:
		return Discriminant{Kind: DiscriminantUnitRepr, Repr: repr}, nil
	case found:
		return Discriminant{Kind: DiscriminantRepr, Repr: repr}, nil
	case isUnit && !isC:
		return Discriminant{Kind: DiscriminantUnitDefault}, nil
	default:
		return Discriminant{Kind: DiscriminantUnknown}, nil
	}
}

// parseLayoutDirective splits "name(a, b)" into its name and arguments.
// Directives other than repr are returned with nil arguments and never fail.
func parseLayoutDirective(i int, directive string) (string, []string, error) {
	source := fmt.Sprintf("layout[%d]", i)
	text := strings.TrimSpace(directive)

	open := strings.IndexByte(text, '(')

	name := text
	if end := strings.IndexFunc(text, func(r rune) bool { return !isIdentRune(r) }); end >= 0 {
		name = text[:end]
	}

	if name != layoutDirectiveName {
		return name, nil, nil
	}

	if open < 0 || strings.TrimSpace(text[len(name):open]) != "" || !strings.HasSuffix(text, ")") {
		return "", nil, diagnostic.InvalidDirective(
			diagnostic.NewSpan(source, 0, len(directive)),
			"expected list form %s(...), got %q", layoutDirectiveName, directive)
	}

	inner := text[open+1 : len(text)-1]
	if strings.TrimSpace(inner) == "" {
		return name, nil, nil
	}

	var args []string

	offset := strings.Index(directive, "(") + 1

	for _, part := range strings.Split(inner, ",") {
		arg := strings.TrimSpace(part)
		if !token.IsIdentifier(arg) {
			start := offset + strings.Index(part, arg)
			if arg == "" {
				start = offset
			}

			return "", nil, diagnostic.InvalidDirective(
				diagnostic.NewSpan(source, start, start+max(len(arg), 1)),
				"invalid %s argument %q", layoutDirectiveName, arg)
		}

		args = append(args, arg)
		offset += len(part) + 1
	}

	return name, args, nil
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
