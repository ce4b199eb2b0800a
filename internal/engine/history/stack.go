package history

import (
	"errors"
	"sync"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is the undo depth used when none is configured.
const DefaultMaxEntries = 1000

// Target applies operations to a text store.
type Target interface {
	ApplyOperations(ops []Operation) error
}

// TargetFunc is a function adapter for Target.
type TargetFunc func(ops []Operation) error

// ApplyOperations implements Target.ApplyOperations.
func (f TargetFunc) ApplyOperations(ops []Operation) error {
	return f(ops)
}

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []*Transaction
	redoStack []*Transaction

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Push adds a transaction to the undo stack.
// Clears the redo stack.
func (h *History) Push(tx *Transaction) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, tx)

	// Clear redo stack
	h.redoStack = nil

	// Enforce max entries
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo applies the inverse of the last transaction to target.
// The lock is released while the target applies operations.
func (h *History) Undo(target Target) (*Transaction, error) {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return nil, ErrNothingToUndo
	}

	tx := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	inv := tx.Invert()
	if err := target.ApplyOperations(inv.Operations); err != nil {
		// Restore entry on failure
		h.mu.Lock()
		h.undoStack = append(h.undoStack, tx)
		h.mu.Unlock()
		return nil, err
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, tx)
	h.mu.Unlock()
	return inv, nil
}

// Redo re-applies the last undone transaction to target.
func (h *History) Redo(target Target) (*Transaction, error) {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return nil, ErrNothingToRedo
	}

	tx := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := target.ApplyOperations(tx.Operations); err != nil {
		h.mu.Lock()
		h.redoStack = append(h.redoStack, tx)
		h.mu.Unlock()
		return nil, err
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, tx)
	h.mu.Unlock()
	return tx, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// MaxEntries returns the undo depth limit.
func (h *History) MaxEntries() int {
	return h.maxEntries
}

// Clear drops all undo and redo entries.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
}
