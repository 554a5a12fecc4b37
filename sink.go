package applogger

import (
	"io"
	"os"
	"sync"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/natefinch/lumberjack.v2"
)

// consoleWriter is the destination of console sinks. Tests swap it for a
// buffer; production code leaves it on stdout.
var consoleWriter io.Writer = os.Stdout

// consoleSink writes lines to the console, tinted per severity. Coloring is
// handled by fatih/color, which disables itself on non-terminals and when
// NO_COLOR is set, so redirected output stays plain. A write completes once
// the destination has accepted the bytes; no durability is implied.
type consoleSink struct {
	mu  sync.Mutex
	out io.Writer
}

func newConsoleSink() *consoleSink {
	return &consoleSink{out: consoleWriter}
}

func (c *consoleSink) write(level Severity, line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := severityColors[level].Fprintln(c.out, line)
	return err
}

func (c *consoleSink) flush() error { return nil }

func (c *consoleSink) release() error { return nil }

func (c *consoleSink) name() string { return "console" }

// fileSink appends lines to a single fixed-name file for the lifetime of the
// logger. Writes complete once the OS has accepted them; the file is fsynced
// on flush and close, not per line.
type fileSink struct {
	mu   sync.Mutex
	file *os.File
}

func newFileSink(path string) (*fileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &fileSink{file: f}, nil
}

func (s *fileSink) write(_ Severity, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.file, line+"\n")
	return err
}

func (s *fileSink) flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Sync()
}

func (s *fileSink) release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

func (s *fileSink) name() string { return "file" }

// rotatingSink writes to a lumberjack-managed file family: the active file
// rotates once it exceeds the size threshold, rotated members carry the
// rotation timestamp in their name, and members past the retention policy
// are deleted. lumberjack serializes writes internally and does not fsync
// per line; a write completes once its buffered write returns.
type rotatingSink struct {
	out *lumberjack.Logger
}

func newRotatingSink(path string, maxSizeMB int, keep retention) *rotatingSink {
	return &rotatingSink{out: &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxAge:     keep.days,
		MaxBackups: keep.count,
		LocalTime:  true,
	}}
}

func (s *rotatingSink) write(_ Severity, line string) error {
	_, err := io.WriteString(s.out, line+"\n")
	return err
}

func (s *rotatingSink) flush() error { return nil }

func (s *rotatingSink) release() error { return s.out.Close() }

func (s *rotatingSink) name() string { return "file" }

// buildSinks constructs the sink set for a validated configuration. It
// creates the log directory if absent (the only filesystem mutation besides
// writing lines) and returns fully constructed sinks or no sinks at all.
func buildSinks(logicalName, route string, cfg Config) ([]sink, error) {
	if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
		return nil, &ConfigurationError{Field: "directory", Value: cfg.Directory, Reason: "cannot create", Err: err}
	}

	var sinks []sink
	if cfg.Console {
		sinks = append(sinks, newConsoleSink())
	}
	if cfg.Rotate {
		size, err := parseSize(cfg.MaxSize)
		if err != nil {
			return nil, err
		}
		keep, err := parseRetention(cfg.MaxRetain)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, newRotatingSink(rotatingFilePath(cfg.Directory, logicalName), size, keep))
		return sinks, nil
	}
	fs, err := newFileSink(singleFilePath(cfg.Directory, route))
	if err != nil {
		return nil, &ConfigurationError{Field: "directory", Value: cfg.Directory, Reason: "cannot open log file", Err: err}
	}
	sinks = append(sinks, fs)
	return sinks, nil
}

// releaseSinks flushes and releases every sink, reporting each failure
// against the sink that caused it.
func releaseSinks(sinks []sink) error {
	var errs *multierror.Error
	for _, s := range sinks {
		if err := s.flush(); err != nil {
			errs = multierror.Append(errs, &SinkWriteError{Sink: s.name(), Err: err})
		}
		if err := s.release(); err != nil {
			errs = multierror.Append(errs, &SinkWriteError{Sink: s.name(), Err: err})
		}
	}
	return errs.ErrorOrNil()
}
