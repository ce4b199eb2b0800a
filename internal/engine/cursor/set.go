package cursor

import "github.com/dshills/swapsel/internal/engine/buffer"

// Set is an ordered collection of selections.
// Order is the order in which selections were reported; it is never sorted
// or merged.
type Set struct {
	selections []Selection
}

// NewSet creates a set holding sels in the given order.
func NewSet(sels ...Selection) *Set {
	s := &Set{selections: make([]Selection, len(sels))}
	copy(s.selections, sels)
	return s
}

// All returns a copy of all selections.
// The returned slice is safe to modify without affecting the Set.
func (s *Set) All() []Selection {
	result := make([]Selection, len(s.selections))
	copy(result, s.selections)
	return result
}

// Count returns the number of selections, carets included.
func (s *Set) Count() int {
	return len(s.selections)
}

// Get returns the selection at the given index.
// Returns an empty selection if index is out of range.
func (s *Set) Get(index int) Selection {
	if index < 0 || index >= len(s.selections) {
		return Selection{}
	}
	return s.selections[index]
}

// Add appends a selection.
func (s *Set) Add(sel Selection) {
	s.selections = append(s.selections, sel)
}

// SetAll replaces all selections.
func (s *Set) SetAll(sels []Selection) {
	s.selections = make([]Selection, len(sels))
	copy(s.selections, sels)
}

// HasSelection returns true if any selection is non-empty (has extent).
func (s *Set) HasSelection() bool {
	for _, sel := range s.selections {
		if !sel.IsEmpty() {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return NewSet(s.selections...)
}

// Spans resolves every selection into a span of snap, in set order.
// Selections are clamped to the snapshot bounds first.
func (s *Set) Spans(snap *buffer.Snapshot) []buffer.Span {
	spans := make([]buffer.Span, 0, len(s.selections))
	for _, sel := range s.selections {
		r := sel.Clamp(snap.Len()).Range()
		span, err := snap.SpanOf(r)
		if err != nil {
			continue
		}
		spans = append(spans, span)
	}
	return spans
}
