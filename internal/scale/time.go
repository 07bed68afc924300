package scale

import (
	"math"
	"sort"
	"time"
)

// =============================================================================
// TIME SCALE
// =============================================================================
//
// TICK INTERVALS:
//   The tick interval is the calendar interval whose duration is closest (by
//   ratio) to span/count:
//
//     1, 5, 15, 30 seconds      1, 5, 15, 30 minutes
//     1, 3, 6, 12 hours         1, 2 days
//     1 week (Sunday)           1, 3 months
//
//   Spans finer than one second use millisecond steps and spans coarser than
//   one year use a nice number of years. Ticks sit on calendar boundaries in
//   UTC, e.g. every 2 days means day-of-month 1, 3, 5, ...

// Time maps an interval of instants onto a pixel range.
type Time struct {
	d0, d1 time.Time
	r0, r1 float64
}

// NewTime creates a time scale from domain [d0, d1] to range [r0, r1].
func NewTime(d0, d1 time.Time, r0, r1 float64) Time {
	return Time{d0: d0.UTC(), d1: d1.UTC(), r0: r0, r1: r1}
}

// Domain returns the domain bounds.
func (s Time) Domain() (time.Time, time.Time) { return s.d0, s.d1 }

// Map converts an instant into the range. A degenerate domain maps every
// instant to the middle of the range.
func (s Time) Map(t time.Time) float64 {
	return NewLinear(millis(s.d0), millis(s.d1), s.r0, s.r1).Map(millis(t))
}

// Ticks returns about count instants on calendar boundaries inside the domain,
// both ends included.
func (s Time) Ticks(count int) []time.Time {
	start, stop := s.d0, s.d1
	reverse := stop.Before(start)
	if reverse {
		start, stop = stop, start
	}
	if count <= 0 {
		return nil
	}
	if start.Equal(stop) {
		return []time.Time{start}
	}

	iv := chooseInterval(start, stop, count)
	ticks := iv.rangeInclusive(start, stop)

	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// TickFormat labels an instant by the coarsest calendar boundary it sits on:
// ".000" for sub-second ticks, ":05" for seconds, "03:04" for minutes,
// "03 PM" for hours, "Mon 02" for days, "Jan 02" for week starts, "January"
// for months and "2006" for years.
func TickFormat(t time.Time) string {
	t = t.UTC()
	switch {
	case unitSecond.floor(t).Before(t):
		return t.Format(".000")
	case unitMinute.floor(t).Before(t):
		return t.Format(":05")
	case unitHour.floor(t).Before(t):
		return t.Format("03:04")
	case unitDay.floor(t).Before(t):
		return t.Format("03 PM")
	case unitMonth.floor(t).Before(t):
		if unitWeek.floor(t).Before(t) {
			return t.Format("Mon 02")
		}
		return t.Format("Jan 02")
	case unitYear.floor(t).Before(t):
		return t.Format("January")
	default:
		return t.Format("2006")
	}
}

// millis returns milliseconds since the Unix epoch without int64 nanosecond
// overflow for distant years.
func millis(t time.Time) float64 {
	return float64(t.Unix())*1e3 + float64(t.Nanosecond())/1e6
}

// =============================================================================
// CALENDAR UNITS
// =============================================================================

type unit int

const (
	unitMillisecond unit = iota
	unitSecond
	unitMinute
	unitHour
	unitDay
	unitWeek
	unitMonth
	unitYear
)

const (
	durationSecond = 1e3
	durationMinute = durationSecond * 60
	durationHour   = durationMinute * 60
	durationDay    = durationHour * 24
	durationWeek   = durationDay * 7
	durationMonth  = durationDay * 30
	durationYear   = durationDay * 365
)

// floor returns the latest boundary of the unit at or before t.
func (u unit) floor(t time.Time) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	switch u {
	case unitMillisecond:
		return time.Date(y, mo, d, h, mi, s, t.Nanosecond()/1e6*1e6, time.UTC)
	case unitSecond:
		return time.Date(y, mo, d, h, mi, s, 0, time.UTC)
	case unitMinute:
		return time.Date(y, mo, d, h, mi, 0, 0, time.UTC)
	case unitHour:
		return time.Date(y, mo, d, h, 0, 0, 0, time.UTC)
	case unitDay:
		return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	case unitWeek:
		return time.Date(y, mo, d-int(t.Weekday()), 0, 0, 0, 0, time.UTC)
	case unitMonth:
		return time.Date(y, mo, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

// next returns the boundary following the boundary b.
func (u unit) next(b time.Time) time.Time {
	switch u {
	case unitMillisecond:
		return b.Add(time.Millisecond)
	case unitSecond:
		return b.Add(time.Second)
	case unitMinute:
		return b.Add(time.Minute)
	case unitHour:
		return b.Add(time.Hour)
	case unitDay:
		return b.AddDate(0, 0, 1)
	case unitWeek:
		return b.AddDate(0, 0, 7)
	case unitMonth:
		return b.AddDate(0, 1, 0)
	default:
		return b.AddDate(1, 0, 0)
	}
}

// ceil returns the earliest boundary of the unit at or after t.
func (u unit) ceil(t time.Time) time.Time {
	b := u.floor(t)
	if b.Before(t) {
		b = u.next(b)
	}
	return b
}

// field is the calendar field a stepped interval filters on.
func (u unit) field(t time.Time) int {
	switch u {
	case unitSecond:
		return t.Second()
	case unitMinute:
		return t.Minute()
	case unitHour:
		return t.Hour()
	case unitDay:
		return t.Day() - 1
	case unitMonth:
		return int(t.Month()) - 1
	case unitYear:
		return t.Year()
	default:
		return 0
	}
}

func mod(a, b int64) int64 {
	return ((a % b) + b) % b
}

// =============================================================================
// INTERVAL SELECTION
// =============================================================================

// interval is a unit taken every step boundaries.
type interval struct {
	unit unit
	step int
}

type tickInterval struct {
	interval
	duration float64
}

var tickIntervals = []tickInterval{
	{interval{unitSecond, 1}, durationSecond},
	{interval{unitSecond, 5}, 5 * durationSecond},
	{interval{unitSecond, 15}, 15 * durationSecond},
	{interval{unitSecond, 30}, 30 * durationSecond},
	{interval{unitMinute, 1}, durationMinute},
	{interval{unitMinute, 5}, 5 * durationMinute},
	{interval{unitMinute, 15}, 15 * durationMinute},
	{interval{unitMinute, 30}, 30 * durationMinute},
	{interval{unitHour, 1}, durationHour},
	{interval{unitHour, 3}, 3 * durationHour},
	{interval{unitHour, 6}, 6 * durationHour},
	{interval{unitHour, 12}, 12 * durationHour},
	{interval{unitDay, 1}, durationDay},
	{interval{unitDay, 2}, 2 * durationDay},
	{interval{unitWeek, 1}, durationWeek},
	{interval{unitMonth, 1}, durationMonth},
	{interval{unitMonth, 3}, 3 * durationMonth},
	{interval{unitYear, 1}, durationYear},
}

// chooseInterval picks the tick interval for start < stop.
func chooseInterval(start, stop time.Time, count int) interval {
	lo, hi := millis(start), millis(stop)
	target := math.Abs(hi-lo) / float64(count)

	i := sort.Search(len(tickIntervals), func(i int) bool {
		return tickIntervals[i].duration > target
	})

	if i == len(tickIntervals) {
		step := TickStep(lo/durationYear, hi/durationYear, count)
		return interval{unitYear, int(math.Max(1, math.Floor(step)))}
	}
	if i == 0 {
		step := math.Max(TickStep(lo, hi, count), 1)
		return interval{unitMillisecond, int(math.Floor(step))}
	}

	if target/tickIntervals[i-1].duration < tickIntervals[i].duration/target {
		return tickIntervals[i-1].interval
	}
	return tickIntervals[i].interval
}

// accepts reports whether the boundary b belongs to the stepped interval.
func (iv interval) accepts(b time.Time) bool {
	if iv.step <= 1 {
		return true
	}
	if iv.unit == unitMillisecond {
		return mod(b.UnixMilli(), int64(iv.step)) == 0
	}
	return mod(int64(iv.unit.field(b)), int64(iv.step)) == 0
}

// rangeInclusive lists the accepted boundaries in [start, stop].
func (iv interval) rangeInclusive(start, stop time.Time) []time.Time {
	var ticks []time.Time
	for b := iv.unit.ceil(start); !b.After(stop); b = iv.unit.next(b) {
		if iv.accepts(b) {
			ticks = append(ticks, b)
		}
	}
	return ticks
}
