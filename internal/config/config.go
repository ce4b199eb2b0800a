package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the complete swapsel configuration.
type Config struct {
	Logging    LoggingConfig    `toml:"logging"`
	Editor     EditorConfig     `toml:"editor"`
	Dispatcher DispatcherConfig `toml:"dispatcher"`
	Plugin     PluginConfig     `toml:"plugin"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// Level is the minimum level logged ("debug", "info", "warn", "error").
	Level string `toml:"level"`

	// Prefix is prepended to every log line.
	Prefix string `toml:"prefix"`
}

// EditorConfig controls how documents are opened and edited.
type EditorConfig struct {
	// LineEnding is the buffer line ending ("lf", "crlf", "cr", or "auto"
	// to detect it from the document).
	LineEnding string `toml:"line_ending"`

	// ReadOnly opens documents read-only; edits are rejected.
	ReadOnly bool `toml:"read_only"`

	// UndoLimit is the maximum number of undo steps kept.
	UndoLimit int `toml:"undo_limit"`
}

// DispatcherConfig controls command dispatch.
type DispatcherConfig struct {
	// RecoverFromPanic turns handler panics into error results.
	RecoverFromPanic bool `toml:"recover_from_panic"`

	// EnableMetrics collects per-action dispatch statistics.
	EnableMetrics bool `toml:"enable_metrics"`
}

// PluginConfig controls script execution.
type PluginConfig struct {
	// Enabled allows scripts to run.
	Enabled bool `toml:"enabled"`

	// TimeoutMS bounds a script's run time in milliseconds; 0 means no limit.
	TimeoutMS int `toml:"timeout_ms"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Prefix: "swapsel",
		},
		Editor: EditorConfig{
			LineEnding: "auto",
			UndoLimit:  1000,
		},
		Dispatcher: DispatcherConfig{
			RecoverFromPanic: true,
		},
		Plugin: PluginConfig{
			Enabled:   true,
			TimeoutMS: 5000,
		},
	}
}

// Load reads the TOML file at path over the defaults.
// A missing file is reported as ErrFileNotFound.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

// LoadFromReader reads TOML from r over the defaults.
// source names the input in error messages.
func LoadFromReader(source string, r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(source, data)
}

// parse decodes data over the defaults and validates the result.
// Unknown keys are rejected.
func parse(source string, data []byte) (*Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, toParseError(source, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

// toParseError converts a go-toml error into a ParseError with position.
func toParseError(source string, err error) error {
	pe := &ParseError{
		Path:    source,
		Message: err.Error(),
		Err:     err,
	}

	var strict *toml.StrictMissingError
	if errors.As(err, &strict) && len(strict.Errors) > 0 {
		first := &strict.Errors[0]
		pe.Line, pe.Column = first.Position()
		pe.Message = "unknown setting " + strings.Join(first.Key(), ".")
		return pe
	}

	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		pe.Line, pe.Column = decodeErr.Position()
	}
	return pe
}

// Encode writes the configuration to w as a TOML document.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
