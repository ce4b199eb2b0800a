// Package config loads swapsel settings.
//
// Settings come from three layers, each overriding the one below:
//
//	built-in defaults  (Default)
//	TOML file          (Load, LoadFromReader)
//	environment        (ApplyEnv, SWAPSEL_* variables)
//
// Command-line flags are applied by the caller after ApplyEnv.
//
// A configuration file looks like:
//
//	[logging]
//	level = "info"
//
//	[editor]
//	line_ending = "auto"
//	read_only = false
//	undo_limit = 500
//
//	[dispatcher]
//	recover_from_panic = true
//	enable_metrics = false
//
//	[plugin]
//	enabled = true
//	timeout_ms = 2000
//
// Unknown keys are rejected with a ParseError carrying the line and column.
// Out-of-range or unknown enum values are reported as ValidationErrors,
// which match ErrValidationFailed.
package config
