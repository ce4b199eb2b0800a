package dispatcher

import (
	"errors"
	"fmt"
)

// Dispatcher errors.
var (
	// ErrUnknownAction indicates no handler was found for an action.
	ErrUnknownAction = errors.New("dispatcher: unknown action")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")
)

// UnknownActionError reports an action with no handler, with the closest
// registered action name when one is near enough.
type UnknownActionError struct {
	Name       string
	Suggestion string
}

// Error implements the error interface.
func (e *UnknownActionError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s (did you mean %s?)", ErrUnknownAction, e.Name, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", ErrUnknownAction, e.Name)
}

// Is reports whether target is ErrUnknownAction.
func (e *UnknownActionError) Is(target error) bool {
	return target == ErrUnknownAction
}
