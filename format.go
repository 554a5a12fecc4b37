package applogger

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// supportedLocales are the locales with a known date rendering convention.
// The first entry doubles as the fallback for locales the matcher cannot
// place. Order is significant: localeLayouts is index-parallel.
var supportedLocales = []language.Tag{
	language.MustParse("de-DE"),
	language.MustParse("en-US"),
	language.MustParse("en-GB"),
	language.MustParse("fr-FR"),
	language.MustParse("es-ES"),
	language.MustParse("it-IT"),
	language.MustParse("nl-NL"),
	language.MustParse("sv-SE"),
	language.MustParse("ja-JP"),
}

// localeLayouts holds the fixed-field timestamp layout per supported locale:
// 2-digit day, month, hour, minute, second and a 4-digit year, ordered the
// way the locale conventionally orders them. Time-of-day always trails the
// date after a comma.
var localeLayouts = []string{
	"02.01.2006, 15:04:05", // de-DE
	"01/02/2006, 15:04:05", // en-US
	"02/01/2006, 15:04:05", // en-GB
	"02/01/2006, 15:04:05", // fr-FR
	"02/01/2006, 15:04:05", // es-ES
	"02/01/2006, 15:04:05", // it-IT
	"02-01-2006, 15:04:05", // nl-NL
	"2006-01-02, 15:04:05", // sv-SE
	"2006/01/02, 15:04:05", // ja-JP
}

var localeMatcher = language.NewMatcher(supportedLocales)

// timeLayout resolves a BCP-47 locale identifier to its timestamp layout.
// Related locales match their base convention (e.g. "de-AT" renders like
// "de-DE"); locales outside the supported set fall back to the first entry.
// A syntactically invalid identifier is a ConfigurationError.
func timeLayout(locale string) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", &ConfigurationError{Field: "locale", Value: locale, Reason: "not a valid BCP-47 tag", Err: err}
	}
	_, idx, _ := localeMatcher.Match(tag)
	return localeLayouts[idx], nil
}

// render converts one event into its single-line textual form:
//
//	<timestamp> | <9-char label> | <message> |
//
// followed by a space and the payload as compact JSON when one is present.
// The timestamp reflects the moment of emission, not event creation. The
// returned line carries no trailing newline; sinks append it when writing.
func render(e event, layout string, at time.Time) (string, error) {
	var b strings.Builder
	b.Grow(128)
	b.WriteString(at.Format(layout))
	b.WriteString(" | ")
	b.WriteString(e.level.Label())
	b.WriteString(" | ")
	b.WriteString(e.message)
	b.WriteString(" |")
	if e.hasPayload {
		body, err := json.Marshal(e.payload)
		if err != nil {
			return "", &FormatError{Err: err}
		}
		b.WriteByte(' ')
		b.Write(body)
	}
	return b.String(), nil
}

// coerce turns any message value into text. Strings pass through; errors use
// their Error form; everything else goes through fmt.
func coerce(msg any) string {
	switch m := msg.(type) {
	case string:
		return m
	case error:
		return m.Error()
	default:
		return fmt.Sprint(m)
	}
}
