package swap

import (
	"fmt"

	"github.com/dshills/swapsel/internal/engine/buffer"
)

// Pair is the two non-empty spans eligible for swapping, in encounter order.
type Pair struct {
	First  buffer.Span
	Second buffer.Span
}

// String returns a human-readable representation of the pair.
func (p Pair) String() string {
	return fmt.Sprintf("Pair(%s, %s)", p.First.Range(), p.Second.Range())
}

// Reverse returns the pair with its elements exchanged.
func (p Pair) Reverse() Pair {
	return Pair{First: p.Second, Second: p.First}
}

// Classify returns the candidate pair of spans, if one exists.
//
// Spans whose text is empty are ignored. If exactly two spans remain they are
// returned in the order encountered; otherwise ok is false. The scan stops at
// the third non-empty span.
func Classify(spans []buffer.Span) (pair Pair, ok bool) {
	var found [2]buffer.Span
	n := 0

	for _, span := range spans {
		if span.Text() == "" {
			continue
		}
		if n == len(found) {
			return Pair{}, false
		}
		found[n] = span
		n++
	}

	if n != len(found) {
		return Pair{}, false
	}
	return Pair{First: found[0], Second: found[1]}, true
}
