package dateformat

import (
	"fmt"
	"time"
)

// =============================================================================
// ISO-8601 FALLBACK
// =============================================================================
//
// GRAMMAR:
//   value = date [ sep time [ zone ] ]
//   date  = YYYY "-" MM "-" DD
//   sep   = "T" | " "
//   time  = HH ":" MM [ ":" SS [ "." fraction ] ]
//   zone  = "Z" | ("+" | "-") HH ":" MM
//
//   A missing zone means UTC. Field ranges are enforced by time.Parse, so
//   "2020-02-30" or "24:00" are rejected.

// isoLayouts are tried in order. When parsing, Go accepts a fractional second
// after the seconds field even though the layout does not show one.
var isoLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
}

const isoOutputLayout = "2006-01-02T15:04:05.000Z"

// parseISO parses a value of the grammar above.
func parseISO(s string) (time.Time, error) {
	if len(s) < len("2006-01-02") {
		return time.Time{}, fmt.Errorf("invalid iso value %q", s)
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid iso value %q", s)
}
