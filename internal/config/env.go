package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of all environment overrides.
const EnvPrefix = "SWAPSEL_"

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// envSetting applies one environment variable to a config.
type envSetting struct {
	path  string
	apply func(c *Config, value string) error
}

// envMapping maps environment variables (without prefix) to settings.
var envMapping = map[string]envSetting{
	"LOG_LEVEL":         {"logging.level", func(c *Config, v string) error { c.Logging.Level = strings.ToLower(v); return nil }},
	"LOG_PREFIX":        {"logging.prefix", func(c *Config, v string) error { c.Logging.Prefix = v; return nil }},
	"LINE_ENDING":       {"editor.line_ending", func(c *Config, v string) error { c.Editor.LineEnding = strings.ToLower(v); return nil }},
	"READ_ONLY":         {"editor.read_only", boolSetting(func(c *Config) *bool { return &c.Editor.ReadOnly })},
	"UNDO_LIMIT":        {"editor.undo_limit", intSetting(func(c *Config) *int { return &c.Editor.UndoLimit })},
	"METRICS":           {"dispatcher.enable_metrics", boolSetting(func(c *Config) *bool { return &c.Dispatcher.EnableMetrics })},
	"PLUGINS":           {"plugin.enabled", boolSetting(func(c *Config) *bool { return &c.Plugin.Enabled })},
	"PLUGIN_TIMEOUT_MS": {"plugin.timeout_ms", intSetting(func(c *Config) *int { return &c.Plugin.TimeoutMS })},
}

// ApplyEnv overrides settings from SWAPSEL_* environment variables.
func (c *Config) ApplyEnv() error {
	return c.ApplyEnvFrom(os.LookupEnv)
}

// ApplyEnvFrom overrides settings from variables found by lookup, then
// validates the result. Empty values are treated as set.
func (c *Config) ApplyEnvFrom(lookup LookupFunc) error {
	var errs []error
	for name, setting := range envMapping {
		value, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		if err := setting.apply(c, value); err != nil {
			errs = append(errs, &ValidationError{
				Path:    setting.path,
				Message: EnvPrefix + name + ": " + err.Error(),
				Value:   value,
				Code:    ErrCodeTypeMismatch,
			})
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return c.Validate()
}

func boolSetting(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func intSetting(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.New("expected an integer")
		}
		*field(c) = n
		return nil
	}
}

// parseBool accepts the usual spellings of on and off.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, errors.New("expected a boolean")
}
