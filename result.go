package linkexport

import (
	"strings"
	"time"
)

// ResultSet is the deduplicated, filtered and sorted output of one extraction.
type ResultSet []string

// Text serializes the result set as newline-joined URLs without a trailing newline.
func (r ResultSet) Text() string {
	return strings.Join(r, "\n")
}

// ExportFilename returns the suggested file name for exporting results at t,
// e.g. urls-2025-01-15T10-00-00-000Z.txt.
func ExportFilename(t time.Time) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05.000Z")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return "urls-" + stamp + ".txt"
}
