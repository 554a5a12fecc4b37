package applogger

import (
	"errors"
	"fmt"
)

// ErrClosed is returned, possibly wrapped, by every operation invoked after
// Close. Calls on a closed Logger fail deterministically instead of silently
// dropping records.
var ErrClosed = errors.New("applogger: logger is closed")

// ConfigurationError reports an invalid configuration value: an unknown
// severity name, an unparsable locale, a malformed size or retention string,
// or an unusable log directory. It is raised synchronously by New and
// UpdateConfig; a failed UpdateConfig leaves the previous configuration and
// sinks fully in effect.
type ConfigurationError struct {
	Field  string // the offending configuration field
	Value  string // the rejected value, as given
	Reason string // human-readable cause
	Err    error  // underlying cause, if any
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("applogger: invalid %s %q: %s: %v", e.Field, e.Value, e.Reason, e.Err)
	}
	return fmt.Sprintf("applogger: invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// FormatError reports a payload that could not be serialized. It fails only
// the log call that carried the payload; the Logger stays usable.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("applogger: payload not serializable: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// SinkWriteError reports an I/O failure on one sink during a log call or
// during Close. Other sinks for the same call still attempt delivery; when
// several fail, the call's error aggregates one SinkWriteError per failed
// sink, so partial delivery is visible to the caller.
type SinkWriteError struct {
	Sink string // sink identifier, e.g. "console" or "file"
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("applogger: %s sink: %v", e.Sink, e.Err)
}

func (e *SinkWriteError) Unwrap() error { return e.Err }
