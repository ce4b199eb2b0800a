package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	logLevels   = []string{"debug", "info", "warn", "error"}
	lineEndings = []string{"lf", "crlf", "cr", "auto"}
)

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error

	if !oneOf(c.Logging.Level, logLevels) {
		errs = append(errs, enumError("logging.level", c.Logging.Level, logLevels))
	}
	if !oneOf(c.Editor.LineEnding, lineEndings) {
		errs = append(errs, enumError("editor.line_ending", c.Editor.LineEnding, lineEndings))
	}
	if c.Editor.UndoLimit < 1 {
		errs = append(errs, &ValidationError{
			Path:    "editor.undo_limit",
			Message: "must be at least 1",
			Value:   c.Editor.UndoLimit,
			Code:    ErrCodeOutOfRange,
		})
	}
	if c.Plugin.TimeoutMS < 0 {
		errs = append(errs, &ValidationError{
			Path:    "plugin.timeout_ms",
			Message: "must not be negative",
			Value:   c.Plugin.TimeoutMS,
			Code:    ErrCodeOutOfRange,
		})
	}

	return errors.Join(errs...)
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

func enumError(path, value string, allowed []string) *ValidationError {
	return &ValidationError{
		Path:    path,
		Message: fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")),
		Value:   value,
		Code:    ErrCodeInvalidEnum,
	}
}
