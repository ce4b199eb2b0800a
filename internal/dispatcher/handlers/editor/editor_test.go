package editor_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/swapsel/internal/dispatcher/execctx"
	"github.com/dshills/swapsel/internal/dispatcher/handler"
	editorhandler "github.com/dshills/swapsel/internal/dispatcher/handlers/editor"
	"github.com/dshills/swapsel/internal/engine"
	"github.com/dshills/swapsel/internal/engine/buffer"
	"github.com/dshills/swapsel/internal/engine/cursor"
)

func newContext(e *engine.Engine) *execctx.ExecutionContext {
	return execctx.New().WithEngine(e)
}

func newEngine(content string, sels ...cursor.Selection) *engine.Engine {
	return engine.New(engine.WithContent(content), engine.WithSelections(sels...))
}

// TestSwapHandlerNamespace verifies the SwapHandler returns correct namespace.
func TestSwapHandlerNamespace(t *testing.T) {
	h := editorhandler.NewSwapHandler()
	if h.Namespace() != "editor" {
		t.Errorf("expected namespace 'editor', got %q", h.Namespace())
	}
}

// TestCombinedHandlerCanHandle verifies routing of all editor actions.
func TestCombinedHandlerCanHandle(t *testing.T) {
	h := editorhandler.NewCombinedHandler()

	tests := []struct {
		action   string
		expected bool
	}{
		{editorhandler.ActionSwapSelections, true},
		{editorhandler.ActionUndo, true},
		{editorhandler.ActionRedo, true},
		{"editor.unknown", false},
		{"cursor.moveLeft", false},
	}

	for _, tc := range tests {
		if h.CanHandle(tc.action) != tc.expected {
			t.Errorf("CanHandle(%q) = %v, want %v", tc.action, h.CanHandle(tc.action), tc.expected)
		}
	}

	want := []string{editorhandler.ActionSwapSelections, editorhandler.ActionUndo, editorhandler.ActionRedo}
	if diff := cmp.Diff(want, h.Actions()); diff != "" {
		t.Errorf("Actions() mismatch (-want +got):\n%s", diff)
	}
}

func TestSwapHandlerQueryStatus(t *testing.T) {
	h := editorhandler.NewSwapHandler()

	tests := []struct {
		name string
		sels []cursor.Selection
		want handler.Status
	}{
		{"two selections", []cursor.Selection{cursor.NewSelection(0, 3), cursor.NewSelection(8, 11)}, handler.Available},
		{"one selection", []cursor.Selection{cursor.NewSelection(0, 3)}, handler.Status{}},
		{"three selections", []cursor.Selection{
			cursor.NewSelection(0, 3), cursor.NewSelection(4, 7), cursor.NewSelection(8, 11),
		}, handler.Status{}},
		{"two with caret", []cursor.Selection{
			cursor.NewSelection(0, 3), cursor.NewCursorSelection(5), cursor.NewSelection(8, 11),
		}, handler.Available},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newEngine("foo bar baz", tc.sels...)
			if got := h.QueryStatus(editorhandler.ActionSwapSelections, newContext(e)); got != tc.want {
				t.Errorf("QueryStatus() = %+v, want %+v", got, tc.want)
			}
			if e.Text() != "foo bar baz" {
				t.Error("QueryStatus must not modify the buffer")
			}
		})
	}
}

func TestSwapHandlerQueryStatusNoEngine(t *testing.T) {
	h := editorhandler.NewSwapHandler()
	if got := h.QueryStatus(editorhandler.ActionSwapSelections, execctx.New()); got != (handler.Status{}) {
		t.Errorf("expected hidden status without an engine, got %+v", got)
	}
}

func TestSwapHandlerSwaps(t *testing.T) {
	h := editorhandler.NewSwapHandler()
	e := newEngine("foo bar baz", cursor.NewSelection(0, 3), cursor.NewSelection(8, 11))

	result := h.HandleAction(handler.NewAction(editorhandler.ActionSwapSelections), newContext(e))

	if result.Status != handler.StatusOK {
		t.Fatalf("expected StatusOK, got %v (%v)", result.Status, result.Error)
	}
	if !result.GetDataBool(editorhandler.DataSwapped) {
		t.Error("expected swapped=true")
	}
	if e.Text() != "baz bar foo" {
		t.Errorf("expected %q, got %q", "baz bar foo", e.Text())
	}

	wantEdits := []handler.Edit{
		{Range: buffer.NewRange(0, 3), NewText: "baz", OldText: "foo"},
		{Range: buffer.NewRange(8, 11), NewText: "foo", OldText: "baz"},
	}
	if diff := cmp.Diff(wantEdits, result.Edits); diff != "" {
		t.Errorf("edits mismatch (-want +got):\n%s", diff)
	}
}

func TestSwapHandlerNoPair(t *testing.T) {
	h := editorhandler.NewSwapHandler()
	e := newEngine("a b c", cursor.NewSelection(0, 1), cursor.NewSelection(2, 3), cursor.NewSelection(4, 5))
	rev := e.RevisionID()

	result := h.HandleAction(handler.NewAction(editorhandler.ActionSwapSelections), newContext(e))

	if result.Status != handler.StatusNoOp {
		t.Errorf("expected StatusNoOp, got %v", result.Status)
	}
	if result.Error != nil {
		t.Errorf("no pair must not be an error, got %v", result.Error)
	}
	if e.RevisionID() != rev || e.CanUndo() {
		t.Error("no-op swap must not touch the buffer")
	}
}

func TestSwapHandlerDryRun(t *testing.T) {
	h := editorhandler.NewSwapHandler()
	e := newEngine("foo bar baz", cursor.NewSelection(0, 3), cursor.NewSelection(8, 11))

	result := h.HandleAction(handler.NewAction(editorhandler.ActionSwapSelections), newContext(e).WithDryRun(true))

	if result.Status != handler.StatusOK {
		t.Fatalf("expected StatusOK, got %v", result.Status)
	}
	if len(result.Edits) != 2 {
		t.Errorf("dry run should describe 2 edits, got %d", len(result.Edits))
	}
	if e.Text() != "foo bar baz" {
		t.Errorf("dry run modified the buffer: %q", e.Text())
	}
}

func TestSwapHandlerReadOnly(t *testing.T) {
	h := editorhandler.NewSwapHandler()
	e := engine.New(
		engine.WithContent("foo bar baz"),
		engine.WithSelections(cursor.NewSelection(0, 3), cursor.NewSelection(8, 11)),
		engine.WithReadOnly(),
	)

	result := h.HandleAction(handler.NewAction(editorhandler.ActionSwapSelections), newContext(e))

	if result.Status != handler.StatusError {
		t.Fatalf("expected StatusError, got %v", result.Status)
	}
	if result.Error != buffer.ErrReadOnly {
		t.Errorf("expected the buffer error unchanged, got %v", result.Error)
	}
	if e.Text() != "foo bar baz" {
		t.Errorf("read-only buffer was modified: %q", e.Text())
	}
}

func TestSwapHandlerMissingEngine(t *testing.T) {
	h := editorhandler.NewSwapHandler()
	result := h.HandleAction(handler.NewAction(editorhandler.ActionSwapSelections), execctx.New())

	if !errors.Is(result.Error, execctx.ErrMissingEngine) {
		t.Errorf("expected ErrMissingEngine, got %v", result.Error)
	}
}

func TestHistoryHandler(t *testing.T) {
	h := editorhandler.NewCombinedHandler()
	e := newEngine("foo bar baz", cursor.NewSelection(0, 3), cursor.NewSelection(8, 11))
	ctx := newContext(e)

	if got := h.QueryStatus(editorhandler.ActionUndo, ctx); got.Enabled {
		t.Error("undo should be disabled before any edit")
	}
	if result := h.HandleAction(handler.NewAction(editorhandler.ActionUndo), ctx); result.Status != handler.StatusNoOp {
		t.Errorf("undo with empty history should be a no-op, got %v", result.Status)
	}

	h.HandleAction(handler.NewAction(editorhandler.ActionSwapSelections), ctx)
	if got := h.QueryStatus(editorhandler.ActionUndo, ctx); !got.Enabled {
		t.Error("undo should be enabled after a swap")
	}

	if result := h.HandleAction(handler.NewAction(editorhandler.ActionUndo), ctx); !result.IsOK() {
		t.Fatalf("undo failed: %v", result.Error)
	}
	if e.Text() != "foo bar baz" {
		t.Errorf("undo should restore the original, got %q", e.Text())
	}

	if result := h.HandleAction(handler.NewAction(editorhandler.ActionRedo), ctx); !result.IsOK() {
		t.Fatalf("redo failed: %v", result.Error)
	}
	if e.Text() != "baz bar foo" {
		t.Errorf("redo should re-apply the swap, got %q", e.Text())
	}
}
