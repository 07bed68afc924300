// =============================================================================
// Time-Series Chart Renderer - Key Column Format Detection
// =============================================================================
//
// This module infers the semantic type of the key (first) column of a block
// from its sample values alone, and supplies the matching parse and format
// functions.
//
// DETECTION:
//   The candidate kinds are tried in a fixed priority order. The first kind for
//   which EVERY sample matches wins. There is no scoring.
//
//   1. YYYY-MM-DD      2020-01-31
//   2. YYYY-MM         2020-01
//   3. YYYY            2020
//   4. HH:MM:SS        13:45:10
//   5. HH:MM           13:45
//   6. HH              13
//   7. unix-seconds    10 digits
//   8. unix-ms         13 digits
//   9. unix-us         16 digits
//  10. number          -?\d+
//  11. iso             ISO-8601 date-time (see iso.go)
//
//   Order matters: "2020" is a year before it is a number, "13" is an hour
//   before it is a number.
//
// FORMATTING:
//   The formatter mirrors the detected pattern. A YYYY-MM-DD column always
//   formats as YYYY-MM-DD regardless of the value range.
//
// =============================================================================

package dateformat

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/ginjaninja78/timeseries-chart/internal/types"
)

// =============================================================================
// FORMAT KINDS
// =============================================================================

// Kind is one variant of the closed set of key-column formats.
type Kind int

const (
	KindDate Kind = iota
	KindYearMonth
	KindYear
	KindClock
	KindHourMinute
	KindHour
	KindUnixSeconds
	KindUnixMillis
	KindUnixMicros
	KindNumber
	KindISO
)

// candidates is the detection order. It is load-bearing: specific patterns
// must precede generic ones.
var candidates = [...]Kind{
	KindDate,
	KindYearMonth,
	KindYear,
	KindClock,
	KindHourMinute,
	KindHour,
	KindUnixSeconds,
	KindUnixMillis,
	KindUnixMicros,
	KindNumber,
	KindISO,
}

// spec holds the pattern-based parts of a kind.
type spec struct {
	tag     string
	pattern *regexp.Regexp
	layout  string
}

var specs = map[Kind]spec{
	KindDate:        {tag: "YYYY-MM-DD", pattern: regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), layout: "2006-01-02"},
	KindYearMonth:   {tag: "YYYY-MM", pattern: regexp.MustCompile(`^\d{4}-\d{2}$`), layout: "2006-01"},
	KindYear:        {tag: "YYYY", pattern: regexp.MustCompile(`^\d{4}$`), layout: "2006"},
	KindClock:       {tag: "HH:MM:SS", pattern: regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`), layout: "15:04:05"},
	KindHourMinute:  {tag: "HH:MM", pattern: regexp.MustCompile(`^\d{2}:\d{2}$`), layout: "15:04"},
	KindHour:        {tag: "HH", pattern: regexp.MustCompile(`^\d{2}$`), layout: "15"},
	KindUnixSeconds: {tag: "unix-seconds", pattern: regexp.MustCompile(`^\d{10}$`)},
	KindUnixMillis:  {tag: "unix-ms", pattern: regexp.MustCompile(`^\d{13}$`)},
	KindUnixMicros:  {tag: "unix-us", pattern: regexp.MustCompile(`^\d{16}$`)},
	KindNumber:      {tag: "number", pattern: regexp.MustCompile(`^-?\d+$`)},
	KindISO:         {tag: "iso"},
}

// clockEpoch anchors clock-only values on a calendar day.
var clockEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Candidates returns the kinds in detection order.
func Candidates() []Kind {
	out := make([]Kind, len(candidates))
	copy(out, candidates[:])
	return out
}

// String returns the type tag of the kind.
func (k Kind) String() string {
	if s, ok := specs[k]; ok {
		return s.tag
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsDate reports whether values of this kind are instants.
func (k Kind) IsDate() bool {
	return k != KindNumber
}

// Matches reports whether a sample has the shape of this kind.
func (k Kind) Matches(sample string) bool {
	if k == KindISO {
		_, err := parseISO(sample)
		return err == nil
	}
	s, ok := specs[k]
	if !ok {
		return false
	}
	return s.pattern.MatchString(sample)
}

// Parse converts a sample into a Value.
//
// PARAMETERS:
//   - sample: A trimmed key-column cell.
//
// RETURNS:
//   - A time Value for date-like kinds, a number Value for KindNumber.
//   - An error if the sample is not a valid instance of the kind (for example
//     "2020-02-30" for KindDate or "25" for KindHour).
func (k Kind) Parse(sample string) (types.Value, error) {
	switch k {
	case KindDate, KindYearMonth, KindYear:
		t, err := time.ParseInLocation(specs[k].layout, sample, time.UTC)
		if err != nil {
			return types.Value{}, fmt.Errorf("invalid %s value %q: %w", k, sample, err)
		}
		return types.TimeValue(t), nil

	case KindClock, KindHourMinute, KindHour:
		t, err := time.ParseInLocation(specs[k].layout, sample, time.UTC)
		if err != nil {
			return types.Value{}, fmt.Errorf("invalid %s value %q: %w", k, sample, err)
		}
		return types.TimeValue(clockEpoch.Add(time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second)), nil

	case KindUnixSeconds, KindUnixMillis, KindUnixMicros:
		n, err := strconv.ParseInt(sample, 10, 64)
		if err != nil {
			return types.Value{}, fmt.Errorf("invalid %s value %q: %w", k, sample, err)
		}
		switch k {
		case KindUnixSeconds:
			return types.TimeValue(time.Unix(n, 0)), nil
		case KindUnixMillis:
			return types.TimeValue(time.UnixMilli(n)), nil
		default:
			return types.TimeValue(time.UnixMicro(n)), nil
		}

	case KindNumber:
		n, err := strconv.ParseFloat(sample, 64)
		if err != nil {
			return types.Value{}, fmt.Errorf("invalid number %q: %w", sample, err)
		}
		return types.NumberValue(n), nil

	case KindISO:
		t, err := parseISO(sample)
		if err != nil {
			return types.Value{}, err
		}
		return types.TimeValue(t), nil
	}

	return types.Value{}, fmt.Errorf("unknown format kind %d", int(k))
}

// Format renders a value with the granularity of this kind.
//
// Unix kinds are zero-padded to their fixed width so that every matching
// sample survives Format(Parse(s)) unchanged.
func (k Kind) Format(v types.Value) string {
	switch k {
	case KindDate, KindYearMonth, KindYear, KindClock, KindHourMinute, KindHour:
		return v.Time().UTC().Format(specs[k].layout)
	case KindUnixSeconds:
		return fmt.Sprintf("%010d", v.Time().Unix())
	case KindUnixMillis:
		return fmt.Sprintf("%013d", v.Time().UnixMilli())
	case KindUnixMicros:
		return fmt.Sprintf("%016d", v.Time().UnixMicro())
	case KindNumber:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case KindISO:
		return v.Time().UTC().Format(isoOutputLayout)
	}
	return ""
}

// =============================================================================
// DETECTION
// =============================================================================

// Detect selects the first kind, in priority order, that matches every sample.
//
// PARAMETERS:
//   - samples: Key-column values of all candidate data rows.
//
// RETURNS:
//   - The selected kind.
//   - false when samples is empty or no kind matches all of them. This is a
//     normal outcome, not a failure.
func Detect(samples []string) (Kind, bool) {
	if len(samples) == 0 {
		return 0, false
	}

	for _, kind := range candidates {
		if matchesAll(kind, samples) {
			return kind, true
		}
	}

	return 0, false
}

// matchesAll reports whether every sample matches the kind.
func matchesAll(kind Kind, samples []string) bool {
	for _, s := range samples {
		if !kind.Matches(s) {
			return false
		}
	}
	return true
}
