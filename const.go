package applogger

import "github.com/fatih/color"

// Predefined severity levels for logging. The rank order is fixed: lower
// values are more severe. A level is emitted when its rank is less than or
// equal to the configured minimum level's rank.
const (
	// ExceptionIssuer represents unrecoverable faults, the most severe level
	ExceptionIssuer Severity = iota

	// ErrorIssuer denotes failures in specific operations or components
	ErrorIssuer

	// WarnIssuer signifies potential issues that don't disrupt core functionality
	WarnIssuer

	// InfoIssuer indicates normal operational messages for tracking progress
	InfoIssuer

	// HTTPIssuer records request/response traffic
	HTTPIssuer

	// TraceIssuer carries fine-grained execution traces
	TraceIssuer

	// DebugIssuer represents debug-level messages for development diagnostics
	DebugIssuer

	// severityCount bounds the valid severity range.
	severityCount
)

// Default configuration values, applied by DefaultConfig and overridable
// through Options.
const (
	DefaultMinLevel  = InfoIssuer
	DefaultDirectory = "./logs"
	DefaultLocale    = "de-DE"
	DefaultMaxSize   = "20m"
	DefaultMaxRetain = "14d"
)

// labelWidth is the fixed width of the rendered severity field. "EXCEPTION",
// the longest name, is exactly this wide; shorter names are right-justified.
const labelWidth = 9

// severityNames maps ranks to their canonical lower-case names.
var severityNames = [severityCount]string{
	"exception",
	"error",
	"warn",
	"info",
	"http",
	"trace",
	"debug",
}

// severityColors maps ranks to their console display color. The table is
// immutable for the process lifetime; console sinks read it, file sinks
// never see color.
var severityColors = [severityCount]*color.Color{
	color.New(color.FgHiRed, color.Bold),
	color.New(color.FgRed),
	color.New(color.FgYellow),
	color.New(color.FgGreen),
	color.New(color.FgMagenta),
	color.New(color.FgCyan),
	color.New(color.FgBlue),
}
