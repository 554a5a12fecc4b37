package applogger

import (
	"fmt"
	"strings"
)

// String returns the canonical lower-case name of the severity, or "unknown"
// for values outside the fixed set.
func (s Severity) String() string {
	if s >= severityCount {
		return "unknown"
	}
	return severityNames[s]
}

// Label returns the display form of the severity: the name upper-cased and
// right-justified to a fixed 9-character field, for column alignment across
// log lines.
func (s Severity) Label() string {
	return fmt.Sprintf("%*s", labelWidth, strings.ToUpper(s.String()))
}

// Enabled reports whether a message at this severity passes the given minimum
// level. Lower ranks are more severe, so the check is rank(s) <= rank(min).
func (s Severity) Enabled(min Severity) bool {
	return s <= min
}

// ParseSeverity resolves a severity by its name, case-insensitively.
// Unrecognized names yield a ConfigurationError.
func ParseSeverity(name string) (Severity, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for rank, n := range severityNames {
		if n == want {
			return Severity(rank), nil
		}
	}
	return 0, &ConfigurationError{Field: "level", Value: name, Reason: "unknown severity name"}
}
