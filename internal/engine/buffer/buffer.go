package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/dshills/swapsel/internal/engine/history"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("edits overlap")
	ErrNoSnapshot       = errors.New("span has no snapshot")
	ErrSnapshotMismatch = errors.New("span belongs to a different snapshot")
	ErrStaleSnapshot    = errors.New("buffer changed since the edit was created")
	ErrEditClosed       = errors.New("edit already applied or cancelled")
	ErrReadOnly         = errors.New("buffer is read-only")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingLF:
		return "\\n"
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is the mutable text store targeted by edits.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       string
	revisionID RevisionID
	lineEnding LineEnding
	readOnly   bool
	verbatim   bool
	history    *history.History
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.history == nil {
		b.history = history.NewHistory(history.DefaultMaxEntries)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
// The content is converted to the buffer's line ending unless the buffer
// was created WithVerbatimContent.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	if b.verbatim {
		b.text = s
	} else {
		b.text = b.NormalizeLineEndings(s)
	}
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read all content first to handle line ending normalization correctly
	// (CRLF sequences may be split across read boundaries)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return NewBufferFromString(string(data), opts...), nil
}

// NormalizeLineEndings converts all line endings in s to the buffer's style.
func (b *Buffer) NormalizeLineEndings(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if b.lineEnding != LineEndingLF {
		s = strings.ReplaceAll(s, "\n", b.lineEnding.Sequence())
	}
	return s
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// TextRange returns text in the given byte range.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	return b.Snapshot().TextRange(start, end)
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text) == 0
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// ReadOnly returns true if the buffer rejects edits.
func (b *Buffer) ReadOnly() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readOnly
}

// SetReadOnly sets whether the buffer rejects edits.
func (b *Buffer) SetReadOnly(readOnly bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readOnly = readOnly
}

// History returns the buffer's undo history.
func (b *Buffer) History() *history.History {
	return b.history
}

// Snapshot returns a read-only snapshot of the current buffer state.
// Safe for concurrent access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

func (b *Buffer) snapshotLocked() *Snapshot {
	return &Snapshot{
		text:       b.text, // Strings are immutable, safe to share
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
	}
}

// Write Operations

// Replace replaces text in the given range with new text as one undoable edit.
// Line endings in text are converted to the buffer's style first.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	text = b.NormalizeLineEndings(text)
	edit := b.CreateEdit()
	span, err := edit.Snapshot().Span(start, end)
	if err != nil {
		edit.Cancel()
		return 0, ErrRangeInvalid
	}
	if err := edit.Replace(span, text); err != nil {
		edit.Cancel()
		return 0, err
	}
	if _, err := edit.Apply(); err != nil {
		return 0, err
	}
	return start + ByteOffset(len(text)), nil
}

// Undo reverts the last committed edit.
// Returns the edits that were applied, in the coordinates of the text
// before the undo.
func (b *Buffer) Undo() ([]Edit, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return nil, ErrReadOnly
	}
	tx, err := b.history.Undo(history.TargetFunc(b.applyOperationsLocked))
	if err != nil {
		return nil, err
	}
	return editsFromOperations(tx.Operations), nil
}

// Redo re-applies the last undone edit.
func (b *Buffer) Redo() ([]Edit, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return nil, ErrReadOnly
	}
	tx, err := b.history.Redo(history.TargetFunc(b.applyOperationsLocked))
	if err != nil {
		return nil, err
	}
	return editsFromOperations(tx.Operations), nil
}

// applyOperationsLocked replaces the buffer text with the result of ops.
// Operations must be sorted by start offset and non-overlapping.
// The caller must hold the write lock.
func (b *Buffer) applyOperationsLocked(ops []history.Operation) error {
	textLen := ByteOffset(len(b.text))
	var last ByteOffset
	for _, op := range ops {
		if op.Start < last || op.End < op.Start || op.End > textLen {
			return ErrRangeInvalid
		}
		last = op.End
	}

	var sb strings.Builder
	var pos ByteOffset
	for _, op := range ops {
		sb.WriteString(b.text[pos:op.Start])
		sb.WriteString(op.NewText)
		pos = op.End
	}
	sb.WriteString(b.text[pos:])

	b.text = sb.String()
	b.revisionID = NewRevisionID()
	return nil
}

func editsFromOperations(ops []history.Operation) []Edit {
	edits := make([]Edit, len(ops))
	for i, op := range ops {
		edits[i] = Edit{Range: Range{Start: op.Start, End: op.End}, NewText: op.NewText}
	}
	return edits
}
