package editor

import (
	"github.com/dshills/swapsel/internal/dispatcher/execctx"
	"github.com/dshills/swapsel/internal/dispatcher/handler"
)

// CombinedHandler handles all editor operations by delegating to specialized handlers.
type CombinedHandler struct {
	swap    *SwapHandler
	history *HistoryHandler
}

// NewCombinedHandler creates a handler that combines all editor handlers.
func NewCombinedHandler() *CombinedHandler {
	return &CombinedHandler{
		swap:    NewSwapHandler(),
		history: NewHistoryHandler(),
	}
}

// Namespace returns the editor namespace.
func (h *CombinedHandler) Namespace() string {
	return Namespace
}

// CanHandle returns true if this handler can process the action.
func (h *CombinedHandler) CanHandle(actionName string) bool {
	return h.swap.CanHandle(actionName) || h.history.CanHandle(actionName)
}

// Actions returns every action of the editor namespace.
func (h *CombinedHandler) Actions() []string {
	return append(h.swap.Actions(), h.history.Actions()...)
}

// QueryStatus reports the status of an editor action.
func (h *CombinedHandler) QueryStatus(actionName string, ctx *execctx.ExecutionContext) handler.Status {
	if h.swap.CanHandle(actionName) {
		return h.swap.QueryStatus(actionName, ctx)
	}
	if h.history.CanHandle(actionName) {
		return h.history.QueryStatus(actionName, ctx)
	}
	return handler.Status{}
}

// HandleAction processes an editor action by delegating to the appropriate handler.
func (h *CombinedHandler) HandleAction(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	if h.swap.CanHandle(action.Name) {
		return h.swap.HandleAction(action, ctx)
	}
	if h.history.CanHandle(action.Name) {
		return h.history.HandleAction(action, ctx)
	}

	return handler.Errorf("unknown editor action: %s", action.Name)
}
