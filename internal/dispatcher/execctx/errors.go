package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingEngine indicates no editor view is active.
	ErrMissingEngine = errors.New("execution context: engine is required")
)
