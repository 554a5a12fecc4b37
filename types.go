package applogger

import (
	"sync"
	"time"
)

// Severity defines the logging severity level as an unsigned 32-bit integer.
// Lower values indicate higher priority messages: ExceptionIssuer has rank 0
// and DebugIssuer has rank 6. The set of levels is fixed; there is no dynamic
// registration.
type Severity uint32

// Config holds the effective configuration of a Logger instance. It is a plain
// value object: snapshots obtained through Logger.Config are copies, and
// mutating a snapshot never affects the Logger that produced it.
type Config struct {
	// MinLevel is the least severe level that is still emitted. Calls with a
	// level ranked numerically above MinLevel are silently discarded.
	MinLevel Severity

	// Console enables the console sink in addition to the file sink.
	Console bool

	// Directory is the base path for log files. It is created (recursively)
	// when sinks are built if it does not exist.
	Directory string

	// Locale is a BCP-47 identifier (e.g. "de-DE", "en-US") that selects the
	// timestamp rendering convention.
	Locale string

	// Rotate selects the rotating file sink instead of the single append-only
	// file. Rotation is size-triggered with age- or count-based retention.
	Rotate bool

	// MaxSize is the rotation size threshold, e.g. "20m" or "1g".
	// Only consulted when Rotate is true.
	MaxSize string

	// MaxRetain is the retention policy for rotated files: an age such as
	// "14d", or a bare number for a file count. Only consulted when Rotate
	// is true.
	MaxRetain string
}

// Option defines a functional option mutating a Config. Options are applied
// to a copy of the current configuration, both at construction time and by
// Logger.UpdateConfig, which makes every update a full replace-and-rebuild
// rather than an incremental patch.
type Option func(*Config)

// Logger is the sink router and logging facade. It owns its sinks exclusively;
// sinks are recreated, not mutated, on configuration updates. A Logger moves
// through two states after construction: Ready (serving log calls) and Closed
// (terminal, entered by Close).
//
// Log calls hold the read side of the mutex so they can proceed concurrently;
// UpdateConfig and Close hold the write side, so a sink rebuild appears atomic
// to every log call and Close drains in-flight writes before releasing sinks.
type Logger struct {
	mu     sync.RWMutex
	name   string // logical name, as passed to New
	route  string // <name>-<YYYYMMDD>, fixed at construction
	layout string // timestamp layout resolved from the configured locale
	config Config // last applied configuration
	sinks  []sink // active destinations, rebuilt on UpdateConfig
	closed bool
}

// event is a single log call in flight. It is built at call time, rendered
// synchronously, and discarded after the line has been written.
type event struct {
	level      Severity
	message    string
	payload    any
	hasPayload bool
}

// sink is a destination for rendered log lines. Writes of a single line are
// atomic with respect to other writes on the same sink; implementations
// serialize internally.
type sink interface {
	// write delivers one rendered line. The level is provided so display-only
	// concerns (console coloring) can be applied without altering the line
	// that file sinks receive.
	write(level Severity, line string) error

	// flush forces buffered data towards stable storage where the underlying
	// destination supports it.
	flush() error

	// release closes the sink and frees its resources. The sink must not be
	// written to afterwards.
	release() error

	// name identifies the sink in error reports, e.g. "console" or "file".
	name() string
}

// now is stubbed in tests to pin route derivation to a known date.
var now = time.Now
