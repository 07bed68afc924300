package scale

import (
	"math"
)

// Linear maps a numeric domain onto a pixel range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear creates a linear scale from domain [d0, d1] to range [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the domain bounds.
func (s Linear) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the range bounds.
func (s Linear) Range() (float64, float64) { return s.r0, s.r1 }

// Map converts a domain value into the range. A degenerate domain maps every
// value to the middle of the range.
func (s Linear) Map(v float64) float64 {
	span := s.d1 - s.d0
	t := 0.5
	if span != 0 {
		t = (v - s.d0) / span
	}
	return s.r0 + t*(s.r1-s.r0)
}

// Ticks returns about count nicely rounded values inside the domain.
func (s Linear) Ticks(count int) []float64 {
	return Ticks(s.d0, s.d1, count)
}

// Nice extends the domain outward so that both bounds are multiples of the
// tick increment for count ticks. The increment is recomputed until it is
// stable; if it does not settle within ten rounds the domain is kept as is.
func (s Linear) Nice(count int) Linear {
	start, stop := s.d0, s.d1
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	var prestep float64
	for iter := 0; iter < 10; iter++ {
		step := TickIncrement(start, stop, count)
		if step == prestep {
			if reverse {
				start, stop = stop, start
			}
			return Linear{d0: start, d1: stop, r0: s.r0, r1: s.r1}
		}

		if step > 0 {
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		} else if step < 0 {
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		} else {
			break
		}
		prestep = step
	}

	return s
}
