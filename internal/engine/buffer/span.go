package buffer

import "fmt"

// Span is an immutable reference to a range of text in one snapshot.
// It is defined by a start offset, a length, and the snapshot it belongs to.
// The zero Span has no snapshot and extracts as empty text.
type Span struct {
	snapshot *Snapshot
	start    ByteOffset
	length   ByteOffset
}

// NewSpan creates a span of length bytes starting at start in snap.
func NewSpan(snap *Snapshot, start, length ByteOffset) (Span, error) {
	if snap == nil {
		return Span{}, ErrNoSnapshot
	}
	if start < 0 || length < 0 || start+length > snap.Len() {
		return Span{}, ErrOffsetOutOfRange
	}
	return Span{snapshot: snap, start: start, length: length}, nil
}

// Snapshot returns the snapshot the span refers into.
func (s Span) Snapshot() *Snapshot {
	return s.snapshot
}

// Version returns the revision of the span's snapshot.
func (s Span) Version() RevisionID {
	if s.snapshot == nil {
		return 0
	}
	return s.snapshot.revisionID
}

// Start returns the inclusive start offset.
func (s Span) Start() ByteOffset {
	return s.start
}

// End returns the exclusive end offset.
func (s Span) End() ByteOffset {
	return s.start + s.length
}

// Len returns the span length in bytes.
func (s Span) Len() ByteOffset {
	return s.length
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.length == 0
}

// Range returns the span's byte range.
func (s Span) Range() Range {
	return Range{Start: s.start, End: s.start + s.length}
}

// Text returns the spanned text as of the span's snapshot.
func (s Span) Text() string {
	if s.snapshot == nil || s.length == 0 {
		return ""
	}
	return s.snapshot.text[s.start : s.start+s.length]
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("Span%s@%s", s.Range().String(), s.Version().String())
}
