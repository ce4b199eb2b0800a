package swap

import "github.com/dshills/swapsel/internal/engine/buffer"

// SelectionProvider reports the current selection of an editor view.
type SelectionProvider interface {
	// SelectedSpans returns the selection spans in the order the host
	// reports them, carets included.
	SelectedSpans() []buffer.Span
}

// Editor opens scoped edit transactions against a buffer.
type Editor interface {
	CreateEdit() buffer.TextEdit
}

// IsSwapApplicable reports whether sel currently holds exactly two
// non-empty spans.
func IsSwapApplicable(sel SelectionProvider) bool {
	_, ok := Classify(sel.SelectedSpans())
	return ok
}

// PerformSwap swaps the text of the two non-empty spans currently selected.
//
// The pair is derived from sel at call time. If there is no pair, nothing is
// modified and PerformSwap returns false with a nil error. Edit rejections
// from the buffer are returned unchanged.
func PerformSwap(ed Editor, sel SelectionProvider) (bool, error) {
	pair, ok := Classify(sel.SelectedSpans())
	if !ok {
		return false, nil
	}
	if err := Execute(ed, pair); err != nil {
		return false, err
	}
	return true, nil
}

// Execute replaces the text at each span of pair with the text at the other,
// as one edit transaction.
//
// Both texts are read from the pair's snapshot before anything is modified,
// and both replacements are expressed in that snapshot's coordinates. Either
// both replacements are committed or neither is.
func Execute(ed Editor, pair Pair) error {
	first := pair.First.Text()
	second := pair.Second.Text()

	edit := ed.CreateEdit()
	if err := edit.Replace(pair.First, second); err != nil {
		edit.Cancel()
		return err
	}
	if err := edit.Replace(pair.Second, first); err != nil {
		edit.Cancel()
		return err
	}

	if _, err := edit.Apply(); err != nil {
		edit.Cancel()
		return err
	}
	return nil
}
