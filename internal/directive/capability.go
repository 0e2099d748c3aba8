package directive

//go:generate go tool stringer -type=Capability -output=capability_string.go

// Capability is a behaviour the generator can derive. The constant names are
// the directive spellings.
type Capability int

const (
	_ Capability = iota // zero value is invalid

	Clone      // duplicate by value
	Copy       // zero-cost duplication marker, no body
	Debug      // debug-style textual dump
	Eq         // total equality marker, no body
	Hash       // hash contribution
	Ord        // total order
	PartialEq  // structural equality
	PartialOrd // partial order

	// CapabilityTotal is the number of valid capabilities plus one.
	CapabilityTotal = int(iota)
)

// Capabilities lists every capability in declaration order.
func Capabilities() []Capability {
	all := make([]Capability, 0, CapabilityTotal-1)
	for c := Capability(1); int(c) < CapabilityTotal; c++ {
		all = append(all, c)
	}

	return all
}

func capabilityNames() []string {
	all := Capabilities()

	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.String()
	}

	return names
}

// ParseCapability maps a directive spelling to its Capability.
func ParseCapability(name string) (Capability, bool) {
	for _, c := range Capabilities() {
		if c.String() == name {
			return c, true
		}
	}

	return 0, false
}

// IsValid reports whether c is one of the declared capabilities.
func (c Capability) IsValid() bool {
	return c > 0 && int(c) < CapabilityTotal
}

// IsMarker reports whether c has no generated body.
func (c Capability) IsMarker() bool {
	return c == Copy || c == Eq
}

// IsBinary reports whether c compares the value with a second operand.
func (c Capability) IsBinary() bool {
	switch c {
	case PartialEq, Ord, PartialOrd:
		return true
	default:
		return false
	}
}

// IsOrdering reports whether c is Ord or PartialOrd.
func (c Capability) IsOrdering() bool {
	return c == Ord || c == PartialOrd
}
