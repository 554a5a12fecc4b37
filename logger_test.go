package applogger

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineFormat is the canonical shape of one emitted line under the default
// de-DE locale.
var lineFormat = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}, \d{2}:\d{2}:\d{2} \|\s+INFO \| start \|$`)

// pinNow freezes the clock for the duration of the test.
func pinNow(t *testing.T, at time.Time) {
	t.Helper()
	old := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = old })
}

// captureConsole redirects console sinks built during the test into a buffer
// and forces plain output.
func captureConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	oldWriter, oldNoColor := consoleWriter, color.NoColor
	buf := new(bytes.Buffer)
	consoleWriter = buf
	color.NoColor = true
	t.Cleanup(func() {
		consoleWriter = oldWriter
		color.NoColor = oldNoColor
	})
	return buf
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	trimmed := strings.TrimRight(string(data), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

func newFileLogger(t *testing.T, opts ...Option) (*Logger, string) {
	t.Helper()
	dir := t.TempDir()
	logger, err := New("svc", append([]Option{WithDirectory(dir), WithConsole(false)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })
	return logger, filepath.Join(dir, logger.Route()+".log")
}

func TestNewEmptyName(t *testing.T) {
	_, err := New("")
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}

func TestNewInvalidLocale(t *testing.T) {
	_, err := New("svc", WithDirectory(t.TempDir()), WithLocale("no such locale"))
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "locale", cfgErr.Field)
}

// TestEndToEnd runs the canonical scenario: a non-rotating logger writes one
// info line to <dir>/<name>-<YYYYMMDD>.log in the default de-DE format.
func TestEndToEnd(t *testing.T) {
	logger, path := newFileLogger(t)

	require.NoError(t, logger.Info("start"))
	require.NoError(t, logger.Close())

	assert.Equal(t, "svc-"+time.Now().Format("20060102"), logger.Route())
	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Regexp(t, lineFormat, lines[0])
}

// TestRouteFixedAtConstruction verifies the route is derived once from the
// construction date and is insensitive to the time of day.
func TestRouteFixedAtConstruction(t *testing.T) {
	pinNow(t, time.Date(2025, 5, 26, 23, 59, 59, 0, time.Local))
	late, err := New("svc", WithDirectory(t.TempDir()), WithConsole(false))
	require.NoError(t, err)
	defer late.Close()

	pinNow(t, time.Date(2025, 5, 26, 0, 0, 1, 0, time.Local))
	early, err := New("svc", WithDirectory(t.TempDir()), WithConsole(false))
	require.NoError(t, err)
	defer early.Close()

	assert.Equal(t, "svc-20250526", late.Route())
	assert.Equal(t, late.Route(), early.Route())
}

func TestSeverityFiltering(t *testing.T) {
	logger, path := newFileLogger(t, WithMinLevel(ErrorIssuer))

	require.NoError(t, logger.Debug("filtered out"))
	require.NoError(t, logger.Info("filtered out"))
	assert.Empty(t, readLines(t, path))

	require.NoError(t, logger.Error("kept"))
	require.NoError(t, logger.Exception("kept"))
	assert.Len(t, readLines(t, path), 2)
}

func TestPayloadRendering(t *testing.T) {
	logger, path := newFileLogger(t)

	require.NoError(t, logger.Info("Temp ok", map[string]any{"temp": 25.5}))
	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Temp ok")
	assert.True(t, strings.HasSuffix(lines[0], `| {"temp":25.5}`), lines[0])
}

func TestUnserializablePayloadFailsCallOnly(t *testing.T) {
	logger, path := newFileLogger(t)

	err := logger.Info("bad", make(chan int))
	var fmtErr *FormatError
	require.True(t, errors.As(err, &fmtErr))
	assert.Empty(t, readLines(t, path))

	// The logger stays usable after a failed call.
	require.NoError(t, logger.Info("good"))
	assert.Len(t, readLines(t, path), 1)
}

func TestGenericLog(t *testing.T) {
	logger, path := newFileLogger(t, WithMinLevel(DebugIssuer))

	require.NoError(t, logger.Log("warn", 42))
	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "| 42 |")

	err := logger.Log("loud", "nope")
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Len(t, readLines(t, path), 1)
}

func TestConfigSnapshot(t *testing.T) {
	logger, _ := newFileLogger(t)

	first := logger.Config()
	second := logger.Config()
	assert.Equal(t, first, second)

	// Mutating a snapshot must not leak into the logger.
	first.MinLevel = DebugIssuer
	first.Directory = "/elsewhere"
	assert.Equal(t, second, logger.Config())
}

func TestUpdateConfigThreshold(t *testing.T) {
	logger, path := newFileLogger(t, WithMinLevel(DebugIssuer))

	require.NoError(t, logger.Debug("before"))
	require.NoError(t, logger.UpdateConfig(WithMinLevel(ErrorIssuer)))

	require.NoError(t, logger.Debug("dropped"))
	assert.Len(t, readLines(t, path), 1)

	require.NoError(t, logger.Error("kept"))
	assert.Len(t, readLines(t, path), 2)
}

// TestUpdateConfigFailureKeepsOldState verifies the no-partial-rebuild
// guarantee: a rejected update leaves configuration and sinks untouched.
func TestUpdateConfigFailureKeepsOldState(t *testing.T) {
	logger, path := newFileLogger(t)
	before := logger.Config()

	err := logger.UpdateConfig(WithLocale("no such locale"))
	require.Error(t, err)
	assert.Equal(t, before, logger.Config())

	require.NoError(t, logger.Info("still works"))
	assert.Len(t, readLines(t, path), 1)
}

func TestUpdateConfigDoesNotChangeRoute(t *testing.T) {
	logger, _ := newFileLogger(t)
	route := logger.Route()

	require.NoError(t, logger.UpdateConfig(WithMinLevel(TraceIssuer)))
	assert.Equal(t, route, logger.Route())
}

// TestClosedState checks the terminal-state contract: every operation after
// Close fails with an error wrapping ErrClosed instead of silently dropping.
func TestClosedState(t *testing.T) {
	logger, path := newFileLogger(t)
	require.NoError(t, logger.Info("last line"))
	require.NoError(t, logger.Close())

	assert.ErrorIs(t, logger.Info("too late"), ErrClosed)
	assert.ErrorIs(t, logger.Log("error", "too late"), ErrClosed)
	assert.ErrorIs(t, logger.UpdateConfig(WithMinLevel(DebugIssuer)), ErrClosed)
	assert.ErrorIs(t, logger.Close(), ErrClosed)

	assert.Len(t, readLines(t, path), 1)
}

func TestConsoleSink(t *testing.T) {
	buf := captureConsole(t)
	logger, err := New("svc", WithDirectory(t.TempDir()))
	require.NoError(t, err)
	defer logger.Close()

	require.NoError(t, logger.Info("start"))
	assert.Regexp(t, lineFormat, strings.TrimRight(buf.String(), "\n"))
}

// failingWriter rejects every write, standing in for a broken console stream.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, fmt.Errorf("stream gone")
}

// TestPartialSinkFailure verifies independent delivery: when the console sink
// fails, the call reports a SinkWriteError naming it, and the file sink still
// receives the line.
func TestPartialSinkFailure(t *testing.T) {
	oldWriter, oldNoColor := consoleWriter, color.NoColor
	consoleWriter = failingWriter{}
	color.NoColor = true
	t.Cleanup(func() {
		consoleWriter = oldWriter
		color.NoColor = oldNoColor
	})

	dir := t.TempDir()
	logger, err := New("svc", WithDirectory(dir))
	require.NoError(t, err)
	defer logger.Close()

	err = logger.Info("start")
	var sinkErr *SinkWriteError
	require.True(t, errors.As(err, &sinkErr))
	assert.Equal(t, "console", sinkErr.Sink)

	lines := readLines(t, filepath.Join(dir, logger.Route()+".log"))
	assert.Len(t, lines, 1)
}

// TestRotatingActiveFilename checks the corrected single-date convention: the
// rotating sink's active file is named after the bare logical name so rotated
// members carry exactly one date token, the rotation timestamp.
func TestRotatingActiveFilename(t *testing.T) {
	dir := t.TempDir()
	logger, err := New("svc", WithDirectory(dir), WithConsole(false), WithRotation(true))
	require.NoError(t, err)
	defer logger.Close()

	require.NoError(t, logger.Info("start"))

	active := filepath.Join(dir, "svc.log")
	_, statErr := os.Stat(active)
	require.NoError(t, statErr)
	assert.Empty(t, stemDate.FindAllString(filepath.Base(active), -1))
	assert.Empty(t, dashDate.FindAllString(filepath.Base(active), -1))

	assert.Len(t, readLines(t, active), 1)
}

// TestConcurrentWrites issues log calls from many goroutines and asserts
// every line lands intact: the per-sink serialization must never interleave
// two lines.
func TestConcurrentWrites(t *testing.T) {
	logger, path := newFileLogger(t)

	const workers = 8
	const perWorker = 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				assert.NoError(t, logger.Info("start"))
			}
		}()
	}
	wg.Wait()
	require.NoError(t, logger.Close())

	lines := readLines(t, path)
	require.Len(t, lines, workers*perWorker)
	for _, line := range lines {
		assert.Regexp(t, lineFormat, line)
	}
}
