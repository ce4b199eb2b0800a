package editor

import (
	"github.com/dshills/swapsel/internal/dispatcher/execctx"
	"github.com/dshills/swapsel/internal/dispatcher/handler"
	"github.com/dshills/swapsel/internal/swap"
)

// Namespace is the action namespace served by this package.
const Namespace = "editor"

// Action names for swap operations.
const (
	ActionSwapSelections = "editor.swapSelections"
)

// Result data keys.
const (
	DataSwapped = "swapped"
)

// SwapHandler handles the swap-selections command.
type SwapHandler struct{}

// NewSwapHandler creates a new swap handler.
func NewSwapHandler() *SwapHandler {
	return &SwapHandler{}
}

// Namespace returns the editor namespace.
func (h *SwapHandler) Namespace() string {
	return Namespace
}

// CanHandle returns true if this handler can process the action.
func (h *SwapHandler) CanHandle(actionName string) bool {
	return actionName == ActionSwapSelections
}

// Actions returns the actions this handler provides.
func (h *SwapHandler) Actions() []string {
	return []string{ActionSwapSelections}
}

// QueryStatus reports the command as visible and enabled only while the
// active view holds exactly two non-empty selections.
func (h *SwapHandler) QueryStatus(actionName string, ctx *execctx.ExecutionContext) handler.Status {
	if ctx.Validate() != nil || !swap.IsSwapApplicable(ctx.Engine) {
		return handler.Status{}
	}
	return handler.Available
}

// HandleAction processes a swap action.
func (h *SwapHandler) HandleAction(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionSwapSelections:
		return h.swapSelections(ctx)
	default:
		return handler.Errorf("unknown swap action: %s", action.Name)
	}
}

// swapSelections re-reads the selection and swaps the pair it holds.
func (h *SwapHandler) swapSelections(ctx *execctx.ExecutionContext) handler.Result {
	pair, ok := swap.Classify(ctx.Engine.SelectedSpans())
	if !ok {
		return handler.NoOpWithMessage("swap needs exactly two non-empty selections").
			WithData(DataSwapped, false)
	}
	if ctx.DryRun {
		return handler.Success().WithEdits(pairEdits(pair)...).WithData(DataSwapped, false)
	}

	if err := swap.Execute(ctx.Engine, pair); err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithEdits(pairEdits(pair)...).WithData(DataSwapped, true)
}

// pairEdits describes the two replacements of a swap in pre-edit coordinates.
func pairEdits(pair swap.Pair) []handler.Edit {
	first, second := pair.First.Text(), pair.Second.Text()
	return []handler.Edit{
		{Range: pair.First.Range(), NewText: second, OldText: first},
		{Range: pair.Second.Range(), NewText: first, OldText: second},
	}
}
