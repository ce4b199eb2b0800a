package cursor

import "github.com/dshills/swapsel/internal/engine/buffer"

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

// TransformOffset updates an offset after an edit.
// Returns the new offset position.
//
// Transformation rules:
//   - If edit is entirely before offset: adjust offset by the edit's delta
//   - If edit starts at or after offset: offset unchanged
//   - If edit spans offset: move offset to end of new text
func TransformOffset(offset ByteOffset, edit Edit) ByteOffset {
	// Edit is entirely before offset: adjust by delta
	if edit.Range.End <= offset {
		return offset + edit.Delta()
	}

	// Edit starts at or after offset: no change needed
	if edit.Range.Start >= offset {
		return offset
	}

	// Edit spans offset: move to end of new text
	return edit.Range.Start + ByteOffset(len(edit.NewText))
}

// TransformSelection updates a selection after an edit.
// Both anchor and head are transformed independently, so a selection that
// exactly covers the edited range covers the new text afterwards.
func TransformSelection(sel Selection, edit Edit) Selection {
	return Selection{
		Anchor: TransformOffset(sel.Anchor, edit),
		Head:   TransformOffset(sel.Head, edit),
	}
}

// TransformSelections updates selections after a batch of edits.
// Edits are expressed in the coordinates of the text before the batch and
// must not overlap.
func TransformSelections(sels []Selection, edits []Edit) []Selection {
	result := make([]Selection, len(sels))
	copy(result, sels)

	// Process edits from the highest offset down: each edit then only shifts
	// offsets that are still in original coordinates.
	sorted := buffer.SortEdits(edits)
	for i := len(sorted) - 1; i >= 0; i-- {
		for j := range result {
			result[j] = TransformSelection(result[j], sorted[i])
		}
	}
	return result
}

// TransformSet updates all selections in a set after a batch of edits.
func TransformSet(s *Set, edits []Edit) {
	s.selections = TransformSelections(s.selections, edits)
}
