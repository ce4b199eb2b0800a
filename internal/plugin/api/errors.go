package api

import (
	"errors"
	"fmt"
)

// ErrScriptsDisabled is returned when scripts are turned off.
var ErrScriptsDisabled = errors.New("scripts are disabled")

// ScriptError reports a failed script.
type ScriptError struct {
	// Chunk is the script name.
	Chunk string
	// Message is the Lua error message.
	Message string
	// Err is the underlying cause, such as context.DeadlineExceeded.
	Err error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %s", e.Chunk, e.Message)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
