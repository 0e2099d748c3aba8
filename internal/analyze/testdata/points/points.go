package points

import "fmt"

//derive:Clone, Debug, PartialEq, Hash, Ord
type Point struct {
	X, Y int
}

// Pair holds a key and a value.
//
//derive:K, V: fmt.Stringer; Clone, Debug, PartialEq
type Pair[K comparable, V fmt.Stringer] struct {
	Key   K
	Value V
	memo  []byte `derive:"skip"`
	note  string `derive:"skip(Debug)"`
	_     int
}

type (
	//derive:Debug, Copy
	Marker struct{}

	// Plain has no directive.
	Plain struct {
		A int
	}
)

func (p Pair[K, V]) String() string {
	return fmt.Sprint(p.Key, p.memo, p.note)
}
