package buffer

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	text       string
	revisionID RevisionID
	lineEnding LineEnding
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return s.text
}

// TextRange returns text in the given byte range.
// The range is clamped to the snapshot bounds.
func (s *Snapshot) TextRange(start, end ByteOffset) string {
	n := ByteOffset(len(s.text))
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return ""
	}
	return s.text[start:end]
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return ByteOffset(len(s.text))
}

// IsEmpty returns true if the snapshot is empty.
func (s *Snapshot) IsEmpty() bool {
	return len(s.text) == 0
}

// RevisionID returns the revision ID of this snapshot.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// LineEnding returns the snapshot's line ending style.
func (s *Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// Span returns the span covering [start, end) in this snapshot.
func (s *Snapshot) Span(start, end ByteOffset) (Span, error) {
	if end < start {
		return Span{}, ErrRangeInvalid
	}
	return NewSpan(s, start, end-start)
}

// SpanOf returns the span covering r in this snapshot.
func (s *Snapshot) SpanOf(r Range) (Span, error) {
	return s.Span(r.Start, r.End)
}
