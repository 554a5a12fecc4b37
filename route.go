package applogger

import (
	"path/filepath"
	"time"
)

// routeDateLayout renders the date embedded in a route. The stem is always
// year-month-day, zero-padded and without separators, independent of the
// display locale.
const routeDateLayout = "20060102"

// deriveRoute builds the file-stem identifier for a logger: the logical name
// joined with the creation date as YYYYMMDD. The result depends only on the
// date portion of the given instant, never on the time of day, and is fixed
// for the lifetime of the logger even if the wall-clock date changes.
func deriveRoute(logicalName string, at time.Time) string {
	return logicalName + "-" + at.Format(routeDateLayout)
}

// singleFilePath is the destination of a non-rotating logger: one append-only
// file named after the route. The embedded creation date is the filename's
// only date token.
func singleFilePath(dir, route string) string {
	return filepath.Join(dir, route+".log")
}

// rotatingFilePath is the active file of a rotating logger. It deliberately
// uses the bare logical name, not the route: rotated members get the rotation
// timestamp inserted before the extension, and a route-based name would embed
// the creation date next to it, producing filenames with two date tokens.
func rotatingFilePath(dir, logicalName string) string {
	return filepath.Join(dir, logicalName+".log")
}
