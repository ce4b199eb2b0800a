// Package cursor provides selection management for text editing.
//
// The cursor package handles:
//
//   - Text selections with anchor/head model via Selection type
//   - Ordered selection sets that preserve the host's report order
//   - Resolving selections into buffer spans
//   - Selection transformation after buffer edits
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection represents just a caret with no
// selected text. The selection can extend forward (head > anchor) or
// backward (head < anchor), preserving the user's selection direction.
//
// Selection Sets:
//
// Unlike a multi-cursor set that sorts and merges, Set keeps selections
// exactly as reported, including carets interleaved with real selections.
// Commands that depend on "first" and "second" selection rely on that order.
//
// Basic usage:
//
//	set := cursor.NewSet(
//	    cursor.NewSelection(0, 3),
//	    cursor.NewCursorSelection(5),
//	    cursor.NewSelection(8, 11),
//	)
//	spans := set.Spans(buf.Snapshot())
//
//	// Transform after an edit batch
//	cursor.TransformSet(set, edits)
//
// Thread Safety:
//
// Selection is an immutable value type and safe for concurrent use. Set is
// not thread-safe and should be protected by external synchronization if
// accessed concurrently.
package cursor
