// Package applogger provides a leveled logging facade with console and file
// sinks, optional rotation, and locale-aware timestamp formatting.
//
// Key features:
//   - Seven severity levels (Exception, Error, Warn, Info, HTTP, Trace, Debug)
//     with fixed-width labels and per-level console colors
//   - Date-locale-aware timestamps ("de-DE" renders 26.05.2025, "en-US" 05/26/2025)
//   - Console, single-file, and size-rotating file sinks with retention
//   - Full configuration replacement at runtime with atomic sink rebuild
//   - Thread-safe logging from concurrent callers with drain-on-close
package applogger

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// New creates a Logger with the given logical name and configuration options
// applied over DefaultConfig. The logger derives its route (the file-stem
// identifier <name>-<YYYYMMDD>) from the current date once; the route stays
// fixed for the logger's lifetime even across midnight. Sinks are built
// immediately, creating the log directory if needed.
//
// Parameters:
//   - logicalName: identifier used in the route and file names, e.g. "svc".
//   - opts: functional options customizing the configuration
//     (e.g. WithMinLevel, WithRotation, WithLocale).
//
// Returns a ConfigurationError and no Logger when the name is empty, the
// configuration does not validate, or the sinks cannot be built.
func New(logicalName string, opts ...Option) (*Logger, error) {
	if logicalName == "" {
		return nil, &ConfigurationError{Field: "name", Value: logicalName, Reason: "must not be empty"}
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layout, err := timeLayout(cfg.Locale)
	if err != nil {
		return nil, err
	}
	route := deriveRoute(logicalName, now())
	sinks, err := buildSinks(logicalName, route, cfg)
	if err != nil {
		return nil, err
	}
	return &Logger{
		name:   logicalName,
		route:  route,
		layout: layout,
		config: cfg,
		sinks:  sinks,
	}, nil
}

// Name returns the logger's logical name as passed to New.
func (l *Logger) Name() string {
	return l.name
}

// Route returns the derived file-stem identifier, <name>-<YYYYMMDD>.
func (l *Logger) Route() string {
	return l.route
}

// Config returns a snapshot of the current configuration. The snapshot is a
// copy: mutating it has no effect on the logger, and repeated calls without
// an intervening UpdateConfig return equal values.
func (l *Logger) Config() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.config
}

// UpdateConfig merges the given options into a copy of the current
// configuration, validates the result, and rebuilds the whole sink set from
// it. The rebuild is atomic: concurrent log calls observe either the old or
// the new sinks, never a mixture, and on any validation or build failure the
// previous configuration and sinks remain fully in effect. The already
// derived route does not change.
//
// A non-nil return after a successful swap reports release failures of the
// superseded sinks; the new configuration is in effect regardless.
func (l *Logger) UpdateConfig(opts ...Option) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return fmt.Errorf("update config: %w", ErrClosed)
	}
	next := l.config
	for _, opt := range opts {
		opt(&next)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	layout, err := timeLayout(next.Locale)
	if err != nil {
		return err
	}
	sinks, err := buildSinks(l.name, l.route, next)
	if err != nil {
		return err
	}
	old := l.sinks
	l.config = next
	l.layout = layout
	l.sinks = sinks
	return releaseSinks(old)
}

// Close flushes and releases every sink and transitions the logger to its
// terminal state. In-flight log calls issued before Close complete first;
// any operation invoked afterwards fails with an error wrapping ErrClosed.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return fmt.Errorf("close: %w", ErrClosed)
	}
	l.closed = true
	sinks := l.sinks
	l.sinks = nil
	return releaseSinks(sinks)
}

// Log emits a record at the severity named by levelName. The message may be
// any value and is coerced to text; an optional payload is serialized as
// compact JSON and appended to the line. Unknown level names yield a
// ConfigurationError.
//
// Example:
//
//	logger.Log("warn", "queue depth high", map[string]any{"depth": 512})
func (l *Logger) Log(levelName string, msg any, payload ...any) error {
	level, err := ParseSeverity(levelName)
	if err != nil {
		return err
	}
	return l.emit(level, coerce(msg), payload)
}

// emit is the core path shared by every logging operation. It filters by the
// configured minimum level, renders the line once, and writes it to every
// active sink. Failures are collected per sink, so one call can report
// partial delivery (e.g. console wrote, file failed) without affecting other
// calls or the logger's lifecycle.
func (l *Logger) emit(level Severity, msg string, payload []any) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return fmt.Errorf("log %s: %w", level, ErrClosed)
	}
	if !level.Enabled(l.config.MinLevel) {
		return nil
	}
	line, err := render(newEvent(level, msg, payload), l.layout, now())
	if err != nil {
		return err
	}
	var errs *multierror.Error
	for _, s := range l.sinks {
		if err := s.write(level, line); err != nil {
			errs = multierror.Append(errs, &SinkWriteError{Sink: s.name(), Err: err})
		}
	}
	return errs.ErrorOrNil()
}

// newEvent packs a log call into an event. A single payload value is carried
// as-is, several are carried as a slice, and an omitted or nil payload leaves
// the line without a payload segment.
func newEvent(level Severity, msg string, payload []any) event {
	e := event{level: level, message: msg}
	switch {
	case len(payload) == 0:
	case len(payload) == 1 && payload[0] == nil:
	case len(payload) == 1:
		e.payload, e.hasPayload = payload[0], true
	default:
		e.payload, e.hasPayload = payload, true
	}
	return e
}

// Exception logs a message at the exception level, the most severe.
func (l *Logger) Exception(msg string, payload ...any) error {
	return l.emit(ExceptionIssuer, msg, payload)
}

// Exceptionf logs a formatted message at the exception level.
func (l *Logger) Exceptionf(format string, args ...any) error {
	return l.emit(ExceptionIssuer, fmt.Sprintf(format, args...), nil)
}

// Error logs a message at the error level.
func (l *Logger) Error(msg string, payload ...any) error {
	return l.emit(ErrorIssuer, msg, payload)
}

// Errorf logs a formatted message at the error level.
func (l *Logger) Errorf(format string, args ...any) error {
	return l.emit(ErrorIssuer, fmt.Sprintf(format, args...), nil)
}

// Warn logs a message at the warn level.
func (l *Logger) Warn(msg string, payload ...any) error {
	return l.emit(WarnIssuer, msg, payload)
}

// Warnf logs a formatted message at the warn level.
func (l *Logger) Warnf(format string, args ...any) error {
	return l.emit(WarnIssuer, fmt.Sprintf(format, args...), nil)
}

// Info logs a message at the info level.
func (l *Logger) Info(msg string, payload ...any) error {
	return l.emit(InfoIssuer, msg, payload)
}

// Infof logs a formatted message at the info level.
func (l *Logger) Infof(format string, args ...any) error {
	return l.emit(InfoIssuer, fmt.Sprintf(format, args...), nil)
}

// HTTP logs a message at the http level, intended for request traffic.
func (l *Logger) HTTP(msg string, payload ...any) error {
	return l.emit(HTTPIssuer, msg, payload)
}

// HTTPf logs a formatted message at the http level.
func (l *Logger) HTTPf(format string, args ...any) error {
	return l.emit(HTTPIssuer, fmt.Sprintf(format, args...), nil)
}

// Trace logs a message at the trace level.
func (l *Logger) Trace(msg string, payload ...any) error {
	return l.emit(TraceIssuer, msg, payload)
}

// Tracef logs a formatted message at the trace level.
func (l *Logger) Tracef(format string, args ...any) error {
	return l.emit(TraceIssuer, fmt.Sprintf(format, args...), nil)
}

// Debug logs a message at the debug level, the least severe.
func (l *Logger) Debug(msg string, payload ...any) error {
	return l.emit(DebugIssuer, msg, payload)
}

// Debugf logs a formatted message at the debug level.
func (l *Logger) Debugf(format string, args ...any) error {
	return l.emit(DebugIssuer, fmt.Sprintf(format, args...), nil)
}
