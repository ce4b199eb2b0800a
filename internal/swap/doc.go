// Package swap exchanges the text of exactly two selections in place.
//
// The package has two entry points for an editor host:
//
//   - IsSwapApplicable reports whether the current selection holds exactly
//     two non-empty spans. It is cheap and side-effect free, so a host can
//     call it on every status refresh to show or hide the command.
//   - PerformSwap re-reads the current selection, and if it still qualifies,
//     replaces each span's text with the other's in one edit transaction.
//
// Both take the host's capabilities as small interfaces instead of reaching
// for global editor state:
//
//	ok := swap.IsSwapApplicable(view)
//	swapped, err := swap.PerformSwap(view, view)
//
// A selection that does not qualify is never an error: IsSwapApplicable
// returns false and PerformSwap does nothing. Errors only come from the
// buffer rejecting the edit, and are returned unchanged.
package swap
