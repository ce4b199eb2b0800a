// Package history provides undo/redo for committed buffer edits.
//
// # Transactions
//
// A Transaction is one undoable unit: every replacement committed by a
// single scoped edit. Its Operations are sorted, non-overlapping, and
// expressed in the coordinates of the text before the edit:
//   - The range that was modified
//   - The old and new text
//
// Invert re-expresses the operations in the coordinates of the text after
// the edit, with old and new text exchanged, so applying the inverse
// restores the original text exactly.
//
// # History Stack
//
// The History type manages undo/redo stacks:
//
//	history := NewHistory(1000) // Max 1000 undo entries
//
//	history.Push(tx)
//
//	// Undo/redo against any Target
//	history.Undo(target)
//	history.Redo(target)
//
// Pushing a new transaction clears the redo stack.
package history
