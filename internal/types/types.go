// =============================================================================
// Time-Series Chart Renderer - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - dateformat (produces Values)
//   - csvparser  (produces ParsedRows)
//   - converter  (builds Series)
//   - chart      (consumes Series)
//
// =============================================================================

package types

import (
	"time"
)

// =============================================================================
// KEY COLUMN VALUES
// =============================================================================

// Value is a parsed key-column cell. It is either an instant in time or a
// plain number, never both.
type Value struct {
	t      time.Time
	n      float64
	isTime bool
}

// TimeValue wraps an instant. The instant is normalized to UTC.
func TimeValue(t time.Time) Value {
	return Value{t: t.UTC(), isTime: true}
}

// NumberValue wraps a plain number.
func NumberValue(n float64) Value {
	return Value{n: n}
}

// IsTime reports whether the value holds an instant.
func (v Value) IsTime() bool { return v.isTime }

// Time returns the instant. It is the zero time for number values.
func (v Value) Time() time.Time { return v.t }

// Number returns the plain number. It is 0 for time values.
func (v Value) Number() float64 { return v.n }

// Float returns the value on a continuous axis: milliseconds since the Unix
// epoch (with sub-millisecond fraction) for instants, the number otherwise.
func (v Value) Float() float64 {
	if v.isTime {
		return float64(v.t.Unix())*1e3 + float64(v.t.Nanosecond())/1e6
	}
	return v.n
}

// =============================================================================
// ROW AND SERIES TYPES
// =============================================================================

// ParsedRow represents one valid data line of a block.
type ParsedRow struct {
	// X is the parsed key-column value.
	X Value

	// Values holds one number per value column, in header order.
	// Values[i] belongs to the (i+1)-th header field.
	Values []float64

	// Line is the 1-indexed line number of the row in the block (after blank
	// lines were dropped). Useful for error reporting.
	Line int
}

// Point is a single (x, y) pair of a series.
type Point struct {
	X Value
	Y float64
}

// Series represents one plotted line: a named, ordered sequence of points.
type Series struct {
	// Name is the value-column header.
	Name string

	// Points has exactly one entry per parsed row, in row order.
	Points []Point
}
