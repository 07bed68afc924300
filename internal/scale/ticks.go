// =============================================================================
// Time-Series Chart Renderer - Scales
// =============================================================================
//
// This package maps data domains onto pixel ranges and generates "nice" tick
// values for both axes.
//
// TICK INCREMENTS:
//   Linear ticks step by 1, 2 or 5 times a power of ten. For a span split into
//   n parts the raw step is span/n; the factor is picked with the thresholds
//   sqrt(50), sqrt(10) and sqrt(2) on the step's mantissa.
//
//   Fractional increments are stored as their inverse (a negative "inc"), and
//   tick values are computed by division, so 0.1 steps produce 0.3 rather than
//   0.30000000000000004.
//
// =============================================================================

package scale

import (
	"math"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// round rounds half up, like the browser's Math.round.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// tickSpec computes the integer tick indices and the increment for
// [start, stop] with start <= stop. A negative inc means the step is 1/-inc.
func tickSpec(start, stop float64, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	if !(step > 0) || math.IsInf(step, 0) {
		return 0, -1, 0
	}

	// math.Log10 is off by one ulp on some exact powers of ten.
	power := math.Floor(math.Log10(step))
	if math.Pow(10, power+1) <= step {
		power++
	} else if math.Pow(10, power) > step {
		power--
	}
	mantissa := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case mantissa >= e10:
		factor = 10
	case mantissa >= e5:
		factor = 5
	case mantissa >= e2:
		factor = 2
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = round(start * inc)
		i2 = round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = round(start / inc)
		i2 = round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}

	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}

	return i1, i2, inc
}

// Ticks returns about count nicely rounded values covering [start, stop].
// The values are in ascending order when start <= stop and descending
// otherwise. A degenerate span returns the single value start.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}

	reverse := stop < start
	lo, hi := start, stop
	if reverse {
		lo, hi = stop, start
	}

	i1, i2, inc := tickSpec(lo, hi, float64(count))
	if !(i2 >= i1) || inc == 0 {
		return nil
	}

	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := 0; i < n; i++ {
		if inc < 0 {
			ticks[i] = (i1 + float64(i)) / -inc
		} else {
			ticks[i] = (i1 + float64(i)) * inc
		}
	}

	if reverse {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}

	return ticks
}

// TickIncrement returns the signed increment Ticks would use for start <= stop.
// A negative result -k means a step of 1/k. It is 0 when no step exists.
func TickIncrement(start, stop float64, count int) float64 {
	_, _, inc := tickSpec(start, stop, float64(count))
	return inc
}

// TickStep returns the plain step Ticks would use between start and stop.
func TickStep(start, stop float64, count int) float64 {
	reverse := stop < start
	var inc float64
	if reverse {
		inc = TickIncrement(stop, start, count)
	} else {
		inc = TickIncrement(start, stop, count)
	}

	step := inc
	if inc < 0 {
		step = 1 / -inc
	}
	if reverse {
		return -step
	}
	return step
}
