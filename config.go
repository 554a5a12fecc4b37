package applogger

import (
	"strconv"
	"strings"
)

// DefaultConfig returns the configuration a Logger starts from before Options
// are applied: info threshold, console on, "./logs" directory, "de-DE" locale,
// rotation off with a 20 MB / 14 day policy should it be enabled.
func DefaultConfig() Config {
	return Config{
		MinLevel:  DefaultMinLevel,
		Console:   true,
		Directory: DefaultDirectory,
		Locale:    DefaultLocale,
		Rotate:    false,
		MaxSize:   DefaultMaxSize,
		MaxRetain: DefaultMaxRetain,
	}
}

// WithMinLevel returns an Option that sets the minimum severity to emit.
//
// Example:
//
//	logger, err := New("svc", WithMinLevel(DebugIssuer))
func WithMinLevel(level Severity) Option {
	return func(c *Config) {
		c.MinLevel = level
	}
}

// WithMinLevelName is WithMinLevel taking the severity by name; unknown names
// surface as a ConfigurationError when the configuration is validated.
func WithMinLevelName(name string) Option {
	return func(c *Config) {
		if level, err := ParseSeverity(name); err == nil {
			c.MinLevel = level
		} else {
			c.MinLevel = severityCount // rejected by Validate
		}
	}
}

// WithConsole returns an Option that enables or disables the console sink.
func WithConsole(enabled bool) Option {
	return func(c *Config) {
		c.Console = enabled
	}
}

// WithDirectory returns an Option that sets the base path for log files.
// The directory is created recursively when sinks are built.
func WithDirectory(dir string) Option {
	return func(c *Config) {
		c.Directory = dir
	}
}

// WithLocale returns an Option that sets the BCP-47 date locale used for
// timestamp rendering, e.g. "de-DE" or "en-US".
func WithLocale(locale string) Option {
	return func(c *Config) {
		c.Locale = locale
	}
}

// WithRotation returns an Option that switches between the single append-only
// file sink (false) and the rotating file sink (true).
func WithRotation(enabled bool) Option {
	return func(c *Config) {
		c.Rotate = enabled
	}
}

// WithMaxSize returns an Option that sets the rotation size threshold, e.g.
// "20m" or "1g". Only consulted when rotation is enabled.
func WithMaxSize(size string) Option {
	return func(c *Config) {
		c.MaxSize = size
	}
}

// WithMaxRetain returns an Option that sets the rotation retention policy:
// an age such as "14d", or a bare number for a file count. Only consulted
// when rotation is enabled.
func WithMaxRetain(retain string) Option {
	return func(c *Config) {
		c.MaxRetain = retain
	}
}

// Validate checks every field of the configuration and returns the first
// ConfigurationError found, or nil. New and UpdateConfig validate before any
// sink is touched, so an invalid configuration never leaves partial state.
func (c Config) Validate() error {
	if c.MinLevel >= severityCount {
		return &ConfigurationError{
			Field:  "minimum level",
			Value:  strconv.FormatUint(uint64(c.MinLevel), 10),
			Reason: "unknown severity",
		}
	}
	if strings.TrimSpace(c.Directory) == "" {
		return &ConfigurationError{Field: "directory", Value: c.Directory, Reason: "must not be empty"}
	}
	if _, err := timeLayout(c.Locale); err != nil {
		return err
	}
	if c.Rotate {
		if _, err := parseSize(c.MaxSize); err != nil {
			return err
		}
		if _, err := parseRetention(c.MaxRetain); err != nil {
			return err
		}
	}
	return nil
}

// parseSize converts a human-friendly size string into whole megabytes, the
// granularity the rotating sink works in. Accepted forms: "500k", "20m",
// "1g", or a bare number of megabytes. Kilobyte values round up to at least
// one megabyte.
func parseSize(s string) (int, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	bad := func(reason string) (int, error) {
		return 0, &ConfigurationError{Field: "max size", Value: s, Reason: reason}
	}
	if in == "" {
		return bad("must not be empty")
	}
	unit := "m"
	switch in[len(in)-1] {
	case 'k', 'm', 'g':
		unit = in[len(in)-1:]
		in = in[:len(in)-1]
	}
	n, err := strconv.Atoi(in)
	if err != nil || n <= 0 {
		return bad("want a positive number with optional k/m/g suffix")
	}
	switch unit {
	case "k":
		mb := (n + 1023) / 1024
		if mb < 1 {
			mb = 1
		}
		return mb, nil
	case "g":
		return n * 1024, nil
	default:
		return n, nil
	}
}

// retention is a parsed MaxRetain value. Exactly one field is set: an age in
// days (e.g. "14d") or a backup count (bare number).
type retention struct {
	days  int
	count int
}

func parseRetention(s string) (retention, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	bad := func(reason string) (retention, error) {
		return retention{}, &ConfigurationError{Field: "max retain", Value: s, Reason: reason}
	}
	if in == "" {
		return bad("must not be empty")
	}
	byAge := strings.HasSuffix(in, "d")
	if byAge {
		in = strings.TrimSuffix(in, "d")
	}
	n, err := strconv.Atoi(in)
	if err != nil || n <= 0 {
		return bad("want a positive number, optionally with a d suffix for days")
	}
	if byAge {
		return retention{days: n}, nil
	}
	return retention{count: n}, nil
}
