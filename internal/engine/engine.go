package engine

import (
	"io"
	"sync"

	"github.com/dshills/swapsel/internal/engine/buffer"
	"github.com/dshills/swapsel/internal/engine/cursor"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Range represents a byte range in the buffer.
	Range = buffer.Range

	// Edit represents a single replacement.
	Edit = buffer.Edit

	// Span is an immutable reference to text in one snapshot.
	Span = buffer.Span

	// Selection represents a caret or a selected range.
	Selection = cursor.Selection

	// LineEnding specifies the line ending style.
	LineEnding = buffer.LineEnding

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID
)

// Re-export constants.
const (
	LineEndingLF   = buffer.LineEndingLF
	LineEndingCRLF = buffer.LineEndingCRLF
	LineEndingCR   = buffer.LineEndingCR
)

// Engine is an editor view: one buffer and the selections made in it.
//
// Selections are kept in the order they were reported and are mapped
// through every edit committed via CreateEdit, Undo or Redo, so a selection
// keeps covering the text it selected.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	buf        *buffer.Buffer
	selections *cursor.Set

	// Configuration
	lineEnding     buffer.LineEnding
	maxUndoEntries int
	readOnly       bool
	verbatim       bool

	// Initialization
	initContent    string
	initSelections []cursor.Selection
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		lineEnding:     buffer.LineEndingLF,
		maxUndoEntries: DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) bufferOptions() []buffer.Option {
	opts := []buffer.Option{
		buffer.WithLineEnding(e.lineEnding),
		buffer.WithHistoryLimit(e.maxUndoEntries),
		buffer.WithReadOnly(e.readOnly),
	}
	if e.verbatim {
		opts = append(opts, buffer.WithVerbatimContent())
	}
	return opts
}

func (e *Engine) initSelectionSet() {
	if len(e.initSelections) == 0 {
		e.selections = cursor.NewSet(cursor.NewCursorSelection(0))
		return
	}
	e.selections = cursor.NewSet(e.initSelections...)
	e.initSelections = nil
}

// New creates a new Engine with the given options.
// Without WithSelections the engine holds a single caret at offset 0.
func New(opts ...Option) *Engine {
	e := newEngine(opts)
	e.buf = buffer.NewBufferFromString(e.initContent, e.bufferOptions()...)
	e.initContent = ""
	e.initSelectionSet()
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := newEngine(opts)

	var err error
	e.buf, err = buffer.NewBufferFromReader(r, e.bufferOptions()...)
	if err != nil {
		return nil, err
	}
	e.initSelectionSet()
	return e, nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full buffer content.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// TextRange returns text in the given byte range.
func (e *Engine) TextRange(start, end ByteOffset) string {
	return e.buf.TextRange(start, end)
}

// Len returns the total byte length of the buffer.
func (e *Engine) Len() ByteOffset {
	return e.buf.Len()
}

// Snapshot returns the current buffer snapshot.
func (e *Engine) Snapshot() *buffer.Snapshot {
	return e.buf.Snapshot()
}

// RevisionID returns the current buffer revision.
func (e *Engine) RevisionID() RevisionID {
	return e.buf.RevisionID()
}

// LineEnding returns the buffer's line ending style.
func (e *Engine) LineEnding() LineEnding {
	return e.buf.LineEnding()
}

// ReadOnly reports whether edits are rejected.
func (e *Engine) ReadOnly() bool {
	return e.buf.ReadOnly()
}

// SetReadOnly switches read-only mode.
func (e *Engine) SetReadOnly(readOnly bool) {
	e.buf.SetReadOnly(readOnly)
}

// Buffer returns the underlying buffer.
// Edits made directly on it do not move the engine's selections.
func (e *Engine) Buffer() *buffer.Buffer {
	return e.buf
}

// ============================================================================
// Selections
// ============================================================================

// Selections returns a copy of the selections in reporting order.
func (e *Engine) Selections() []Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selections.All()
}

// SetSelections replaces all selections.
// Selections beyond the buffer end are clamped when resolved.
func (e *Engine) SetSelections(sels ...Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selections.SetAll(sels)
}

// AddSelection appends a selection.
func (e *Engine) AddSelection(sel Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selections.Add(sel)
}

// SelectionCount returns the number of selections, carets included.
func (e *Engine) SelectionCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selections.Count()
}

// SelectedSpans resolves the selections against the current snapshot.
func (e *Engine) SelectedSpans() []Span {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selections.Spans(e.buf.Snapshot())
}

// ============================================================================
// Edit Operations
// ============================================================================

// CreateEdit opens an edit transaction against the current snapshot.
// Applying it moves the selections through the committed replacements.
func (e *Engine) CreateEdit() buffer.TextEdit {
	return &trackedEdit{TextEdit: e.buf.CreateEdit(), engine: e}
}

// Replace replaces the text in [start, end) as one undoable edit and moves
// the selections accordingly. Line endings in text are converted to the
// buffer's style.
func (e *Engine) Replace(start, end ByteOffset, text string) error {
	text = e.buf.NormalizeLineEndings(text)
	edit := e.CreateEdit()
	span, err := edit.Snapshot().Span(start, end)
	if err != nil {
		edit.Cancel()
		return ErrRangeInvalid
	}
	if err := edit.Replace(span, text); err != nil {
		edit.Cancel()
		return err
	}
	_, err = edit.Apply()
	return err
}

func (e *Engine) transformSelections(edits []Edit) {
	if len(edits) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	cursor.TransformSet(e.selections, edits)
}

// trackedEdit records replacements so the engine can map its selections
// once the buffer commits them.
type trackedEdit struct {
	buffer.TextEdit
	engine *Engine
	edits  []Edit
}

func (t *trackedEdit) Replace(span Span, text string) error {
	if err := t.TextEdit.Replace(span, text); err != nil {
		return err
	}
	t.edits = append(t.edits, buffer.NewEdit(span.Range(), text))
	return nil
}

func (t *trackedEdit) Apply() (*buffer.Snapshot, error) {
	snap, err := t.TextEdit.Apply()
	if err != nil {
		return nil, err
	}
	t.engine.transformSelections(t.edits)
	return snap, nil
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo reverts the last committed edit.
func (e *Engine) Undo() error {
	edits, err := e.buf.Undo()
	if err != nil {
		return err
	}
	e.transformSelections(edits)
	return nil
}

// Redo re-applies the last undone edit.
func (e *Engine) Redo() error {
	edits, err := e.buf.Redo()
	if err != nil {
		return err
	}
	e.transformSelections(edits)
	return nil
}

// CanUndo returns true if there are operations to undo.
func (e *Engine) CanUndo() bool {
	return e.buf.History().CanUndo()
}

// CanRedo returns true if there are operations to redo.
func (e *Engine) CanRedo() bool {
	return e.buf.History().CanRedo()
}

// UndoCount returns the number of operations that can be undone.
func (e *Engine) UndoCount() int {
	return e.buf.History().UndoCount()
}

// ClearHistory clears all undo/redo history.
func (e *Engine) ClearHistory() {
	e.buf.History().Clear()
}
