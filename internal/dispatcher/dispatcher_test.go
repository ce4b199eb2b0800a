package dispatcher_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dshills/swapsel/internal/dispatcher"
	"github.com/dshills/swapsel/internal/dispatcher/execctx"
	"github.com/dshills/swapsel/internal/dispatcher/handler"
	editorhandler "github.com/dshills/swapsel/internal/dispatcher/handlers/editor"
	"github.com/dshills/swapsel/internal/engine"
	"github.com/dshills/swapsel/internal/engine/buffer"
	"github.com/dshills/swapsel/internal/engine/cursor"
)

func newEditorDispatcher(t *testing.T, e *engine.Engine) *dispatcher.Dispatcher {
	t.Helper()
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.RegisterNamespace("editor", editorhandler.NewCombinedHandler())
	d.SetEngine(e)
	return d
}

func TestNewWithDefaults(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	if d.Registry() == nil {
		t.Error("expected non-nil registry")
	}
	if d.Router() == nil {
		t.Error("expected non-nil router")
	}
	if d.Metrics() != nil {
		t.Error("expected nil metrics by default")
	}
	if !d.Config().RecoverFromPanic {
		t.Error("expected panic recovery by default")
	}
}

func TestDispatchUnknownAction(t *testing.T) {
	d := newEditorDispatcher(t, engine.New())

	result := d.Dispatch(handler.NewAction("editor.swapSelection"))

	if result.Status != handler.StatusError {
		t.Fatalf("expected StatusError for unknown action, got %v", result.Status)
	}
	if !errors.Is(result.Error, dispatcher.ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction, got %v", result.Error)
	}

	var unknown *dispatcher.UnknownActionError
	if !errors.As(result.Error, &unknown) {
		t.Fatalf("expected *UnknownActionError, got %T", result.Error)
	}
	if unknown.Suggestion != editorhandler.ActionSwapSelections {
		t.Errorf("expected suggestion %q, got %q", editorhandler.ActionSwapSelections, unknown.Suggestion)
	}
	if !strings.Contains(result.Error.Error(), "did you mean") {
		t.Errorf("expected suggestion in message, got %q", result.Error.Error())
	}
}

func TestDispatchUnknownActionNoSuggestion(t *testing.T) {
	d := newEditorDispatcher(t, engine.New())

	result := d.Dispatch(handler.NewAction("completely.different.thing"))

	var unknown *dispatcher.UnknownActionError
	if !errors.As(result.Error, &unknown) {
		t.Fatalf("expected *UnknownActionError, got %T", result.Error)
	}
	if unknown.Suggestion != "" {
		t.Errorf("expected no suggestion, got %q", unknown.Suggestion)
	}
}

func TestRegisterHandlerFunc(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	called := false
	d.RegisterHandlerFunc("test.action", func(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})

	result := d.Dispatch(handler.NewAction("test.action"))

	if !called {
		t.Error("expected handler to be called")
	}
	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}

	d.UnregisterHandler("test.action")
	if result := d.Dispatch(handler.NewAction("test.action")); result.Status != handler.StatusError {
		t.Errorf("expected StatusError after unregister, got %v", result.Status)
	}
}

func TestDispatchSwap(t *testing.T) {
	e := engine.New(
		engine.WithContent("foo bar baz"),
		engine.WithSelections(cursor.NewSelection(0, 3), cursor.NewSelection(8, 11)),
	)
	d := newEditorDispatcher(t, e)

	if status := d.QueryStatus(editorhandler.ActionSwapSelections); status != handler.Available {
		t.Fatalf("expected swap to be available, got %+v", status)
	}

	result := d.Dispatch(handler.NewAction(editorhandler.ActionSwapSelections))
	if !result.IsOK() {
		t.Fatalf("swap failed: %v", result.Error)
	}
	if e.Text() != "baz bar foo" {
		t.Errorf("expected %q, got %q", "baz bar foo", e.Text())
	}

	stats := d.Metrics().ActionStats(editorhandler.ActionSwapSelections)
	if stats == nil || stats.DispatchCount != 1 {
		t.Errorf("expected one recorded dispatch, got %+v", stats)
	}
}

func TestQueryStatusNoPair(t *testing.T) {
	e := engine.New(engine.WithContent("foo"), engine.WithSelections(cursor.NewSelection(0, 3)))
	d := newEditorDispatcher(t, e)

	if status := d.QueryStatus(editorhandler.ActionSwapSelections); status.Visible || status.Enabled {
		t.Errorf("expected hidden swap, got %+v", status)
	}

	result := d.Dispatch(handler.NewAction(editorhandler.ActionSwapSelections))
	if result.Status != handler.StatusNoOp {
		t.Errorf("expected StatusNoOp, got %v", result.Status)
	}
	if d.Metrics().Snapshot().TotalNoOps != 1 {
		t.Error("expected the no-op to be counted")
	}
}

func TestQueryStatusUnknownAndPlainHandlers(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandlerFunc("test.action", successFn)

	if status := d.QueryStatus("missing.action"); status != (handler.Status{}) {
		t.Errorf("unknown action should be hidden, got %+v", status)
	}
	if status := d.QueryStatus("test.action"); status != handler.Available {
		t.Errorf("plain handler should be available, got %+v", status)
	}
}

func TestDispatchReadOnlyError(t *testing.T) {
	e := engine.New(
		engine.WithContent("foo bar baz"),
		engine.WithSelections(cursor.NewSelection(0, 3), cursor.NewSelection(8, 11)),
		engine.WithReadOnly(),
	)
	d := newEditorDispatcher(t, e)

	result := d.Dispatch(handler.NewAction(editorhandler.ActionSwapSelections))

	if result.Error != buffer.ErrReadOnly {
		t.Errorf("expected buffer.ErrReadOnly unchanged, got %v", result.Error)
	}
	if d.Metrics().Snapshot().TotalErrors != 1 {
		t.Error("expected the error to be counted")
	}
}

func TestPanicRecovery(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.RegisterHandlerFunc("test.panic", func(handler.Action, *execctx.ExecutionContext) handler.Result {
		panic("boom")
	})

	result := d.Dispatch(handler.NewAction("test.panic"))

	if result.Status != handler.StatusError {
		t.Fatalf("expected StatusError, got %v", result.Status)
	}
	if !errors.Is(result.Error, dispatcher.ErrPanic) {
		t.Errorf("expected ErrPanic, got %v", result.Error)
	}
	if d.Metrics().Snapshot().TotalPanics != 1 {
		t.Error("expected the panic to be counted")
	}
}

func TestPreHookCancels(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	called := false
	d.RegisterHandlerFunc("test.action", func(handler.Action, *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})
	d.RegisterPreHook(dispatcher.PreDispatchFunc(func(*handler.Action, *execctx.ExecutionContext) bool {
		return false
	}))

	result := d.Dispatch(handler.NewAction("test.action"))

	if result.Status != handler.StatusCancelled {
		t.Errorf("expected StatusCancelled, got %v", result.Status)
	}
	if called {
		t.Error("handler should not run after a cancelling hook")
	}
}

func TestPostHookSeesResult(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandlerFunc("test.action", successFn)

	var seen handler.ResultStatus = 99
	d.RegisterPostHook(dispatcher.PostDispatchFunc(func(_ *handler.Action, _ *execctx.ExecutionContext, r *handler.Result) {
		seen = r.Status
	}))

	d.Dispatch(handler.NewAction("test.action"))
	if seen != handler.StatusOK {
		t.Errorf("post hook saw %v", seen)
	}
}

func TestLoggingHook(t *testing.T) {
	var lines []string
	logHook := dispatcher.NewLoggingHook(func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})

	d := dispatcher.NewWithDefaults()
	d.RegisterHandlerFunc("test.action", successFn)
	d.RegisterPreHook(logHook)
	d.RegisterPostHook(logHook)

	d.Dispatch(handler.NewAction("test.action"))

	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[1], "test.action -> ok") {
		t.Errorf("unexpected log line %q", lines[1])
	}
}

func TestMetricsTopActions(t *testing.T) {
	e := engine.New(
		engine.WithContent("foo bar baz"),
		engine.WithSelections(cursor.NewSelection(0, 3), cursor.NewSelection(8, 11)),
	)
	d := newEditorDispatcher(t, e)

	for i := 0; i < 3; i++ {
		d.Dispatch(handler.NewAction(editorhandler.ActionSwapSelections))
	}
	d.Dispatch(handler.NewAction(editorhandler.ActionUndo))

	top := d.Metrics().TopActions(1)
	if len(top) != 1 || top[0].Name != editorhandler.ActionSwapSelections || top[0].DispatchCount != 3 {
		t.Fatalf("unexpected top actions %+v", top)
	}
	if avg := top[0].AverageActionDuration(); avg < 0 || avg > top[0].MaxDuration {
		t.Errorf("average %v outside [0, %v]", avg, top[0].MaxDuration)
	}
	if all := d.Metrics().TopActions(10); len(all) != 2 {
		t.Errorf("expected 2 actions, got %d", len(all))
	}
	if (&dispatcher.ActionMetrics{}).AverageActionDuration() != 0 {
		t.Error("average without dispatches should be zero")
	}
}

func TestActions(t *testing.T) {
	d := newEditorDispatcher(t, engine.New())
	d.RegisterHandlerFunc("app.quit", successFn)

	got := d.Actions()
	want := []string{"app.quit", editorhandler.ActionRedo, editorhandler.ActionSwapSelections, editorhandler.ActionUndo}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Actions() = %v, want %v", got, want)
	}
}
