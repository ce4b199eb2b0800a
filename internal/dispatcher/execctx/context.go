// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/dshills/swapsel/internal/engine/buffer"
)

// EngineInterface abstracts the active editor view for handlers.
type EngineInterface interface {
	// Selection
	SelectedSpans() []buffer.Span
	SelectionCount() int

	// Editing
	CreateEdit() buffer.TextEdit
	ReadOnly() bool

	// Read operations
	Text() string
	Len() buffer.ByteOffset
	RevisionID() buffer.RevisionID

	// Undo/redo
	Undo() error
	Redo() error
	CanUndo() bool
	CanRedo() bool
}

// ExecutionContext provides context for action execution.
// It carries the editor view the action runs against.
type ExecutionContext struct {
	// Engine provides access to the active view.
	Engine EngineInterface

	// Buffer metadata
	FilePath string

	// Execution options
	DryRun bool // If true, don't apply changes (for status queries and previews)

	// Data holds handler-specific context data.
	Data map[string]interface{}
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Data: make(map[string]interface{}),
	}
}

// WithEngine returns the context with the engine set.
func (ctx *ExecutionContext) WithEngine(engine EngineInterface) *ExecutionContext {
	ctx.Engine = engine
	return ctx
}

// WithFilePath returns the context with the file path set.
func (ctx *ExecutionContext) WithFilePath(path string) *ExecutionContext {
	ctx.FilePath = path
	return ctx
}

// WithDryRun returns the context with dry run mode enabled.
func (ctx *ExecutionContext) WithDryRun(dryRun bool) *ExecutionContext {
	ctx.DryRun = dryRun
	return ctx
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value interface{}) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]interface{})
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (interface{}, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from context data.
func (ctx *ExecutionContext) GetDataString(key string) string {
	if v, ok := ctx.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Validate checks that the context has all required components.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}
