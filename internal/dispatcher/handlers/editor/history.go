package editor

import (
	"errors"

	"github.com/dshills/swapsel/internal/dispatcher/execctx"
	"github.com/dshills/swapsel/internal/dispatcher/handler"
	"github.com/dshills/swapsel/internal/engine/history"
)

// Action names for undo/redo operations.
const (
	ActionUndo = "editor.undo"
	ActionRedo = "editor.redo"
)

// HistoryHandler handles undo and redo.
type HistoryHandler struct{}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler() *HistoryHandler {
	return &HistoryHandler{}
}

// Namespace returns the editor namespace.
func (h *HistoryHandler) Namespace() string {
	return Namespace
}

// CanHandle returns true if this handler can process the action.
func (h *HistoryHandler) CanHandle(actionName string) bool {
	return actionName == ActionUndo || actionName == ActionRedo
}

// Actions returns the actions this handler provides.
func (h *HistoryHandler) Actions() []string {
	return []string{ActionUndo, ActionRedo}
}

// QueryStatus reports undo and redo as enabled when there is anything to
// revert or re-apply.
func (h *HistoryHandler) QueryStatus(actionName string, ctx *execctx.ExecutionContext) handler.Status {
	if ctx.Validate() != nil {
		return handler.Status{}
	}
	switch actionName {
	case ActionUndo:
		return handler.Status{Visible: true, Enabled: ctx.Engine.CanUndo()}
	case ActionRedo:
		return handler.Status{Visible: true, Enabled: ctx.Engine.CanRedo()}
	}
	return handler.Status{}
}

// HandleAction processes an undo or redo action.
func (h *HistoryHandler) HandleAction(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	var err error
	switch action.Name {
	case ActionUndo:
		err = ctx.Engine.Undo()
	case ActionRedo:
		err = ctx.Engine.Redo()
	default:
		return handler.Errorf("unknown history action: %s", action.Name)
	}

	switch {
	case errors.Is(err, history.ErrNothingToUndo), errors.Is(err, history.ErrNothingToRedo):
		return handler.NoOpWithMessage(err.Error())
	case err != nil:
		return handler.Error(err)
	}
	return handler.Success()
}
