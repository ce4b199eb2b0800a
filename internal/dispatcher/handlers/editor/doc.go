// Package editor provides handlers for text editing operations.
//
// # Swap Operations
//
// The SwapHandler type exchanges the text of two selections:
//   - editor.swapSelections: Swap the text of exactly two non-empty
//     selections in one undoable edit
//
// The command is only visible and enabled while the active view holds
// exactly two non-empty selections. Invoking it in any other state is a
// no-op, not an error.
//
// # Undo/Redo Operations
//
// The HistoryHandler type provides:
//   - editor.undo: Revert the last edit
//   - editor.redo: Re-apply the last reverted edit
//
// # Usage
//
// Register the combined handler with the dispatcher:
//
//	dispatcher.RegisterNamespace("editor", editor.NewCombinedHandler())
//
// Dispatch editor actions:
//
//	result := dispatcher.Dispatch(handler.NewAction(editor.ActionSwapSelections))
package editor
