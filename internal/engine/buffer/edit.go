package buffer

import (
	"fmt"
	"sort"

	"github.com/dshills/swapsel/internal/engine/history"
)

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Range   Range  // The range to replace
	NewText string // The replacement text
}

// NewEdit creates a new Edit.
func NewEdit(r Range, newText string) Edit {
	return Edit{Range: r, NewText: newText}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// Delta returns the change in buffer length caused by this edit.
func (e Edit) Delta() ByteOffset {
	return ByteOffset(len(e.NewText)) - e.Range.Len()
}

// TextEdit is a scoped edit transaction against one buffer snapshot.
//
// Replacements are queued in the coordinates of Snapshot() and applied
// together by Apply, as a single revision and a single undo step, or not at
// all. After Apply or Cancel the edit is closed.
type TextEdit interface {
	// Snapshot returns the snapshot the edit is expressed against.
	Snapshot() *Snapshot

	// Replace queues replacing the text at span with text.
	// The text is inserted exactly as given.
	Replace(span Span, text string) error

	// Apply commits all queued replacements and returns the new snapshot.
	Apply() (*Snapshot, error)

	// Cancel discards all queued replacements.
	Cancel()
}

// textEdit is the Buffer implementation of TextEdit.
type textEdit struct {
	buf    *Buffer
	base   *Snapshot
	edits  []Edit
	closed bool
}

// CreateEdit opens a scoped edit transaction on the current snapshot.
func (b *Buffer) CreateEdit() TextEdit {
	return &textEdit{
		buf:  b,
		base: b.Snapshot(),
	}
}

// Snapshot implements TextEdit.Snapshot.
func (e *textEdit) Snapshot() *Snapshot {
	return e.base
}

// Replace implements TextEdit.Replace.
func (e *textEdit) Replace(span Span, text string) error {
	if e.closed {
		return ErrEditClosed
	}
	if span.snapshot == nil {
		return ErrNoSnapshot
	}
	if span.snapshot.revisionID != e.base.revisionID {
		return ErrSnapshotMismatch
	}

	r := span.Range()
	if !r.Within(e.base.Len()) {
		return ErrRangeInvalid
	}
	for _, queued := range e.edits {
		if queued.Range.Overlaps(r) {
			return ErrEditsOverlap
		}
	}

	e.edits = append(e.edits, Edit{Range: r, NewText: text})
	return nil
}

// Apply implements TextEdit.Apply.
func (e *textEdit) Apply() (*Snapshot, error) {
	if e.closed {
		return nil, ErrEditClosed
	}

	b := e.buf
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return nil, ErrReadOnly
	}
	if b.revisionID != e.base.revisionID {
		return nil, ErrStaleSnapshot
	}

	e.closed = true
	if len(e.edits) == 0 {
		return b.snapshotLocked(), nil
	}

	ops := make([]history.Operation, len(e.edits))
	for i, edit := range e.edits {
		ops[i] = history.Operation{
			Start:   edit.Range.Start,
			End:     edit.Range.End,
			OldText: e.base.text[edit.Range.Start:edit.Range.End],
			NewText: edit.NewText,
		}
	}
	tx := history.NewTransaction("edit", ops)

	if err := b.applyOperationsLocked(tx.Operations); err != nil {
		return nil, err
	}
	if !tx.IsNoop() {
		b.history.Push(tx)
	}

	return b.snapshotLocked(), nil
}

// Cancel implements TextEdit.Cancel.
func (e *textEdit) Cancel() {
	e.closed = true
	e.edits = nil
}

// SortEdits returns a copy of edits sorted by ascending start offset.
func SortEdits(edits []Edit) []Edit {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Range.Start < sorted[j].Range.Start
	})
	return sorted
}
