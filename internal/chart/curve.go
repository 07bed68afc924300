package chart

import (
	"math"

	"github.com/ginjaninja78/timeseries-chart/internal/drawtree"
)

// =============================================================================
// MONOTONE-X CURVE
// =============================================================================
//
// The curve passes through every point and is monotone in y between
// consecutive points whenever the data is, so it never overshoots a local
// extremum. Tangents follow Steffen's method: each interior tangent is limited
// by the secant slopes on both sides and is zero at extrema. End tangents are
// derived from the neighboring tangent.
//
//   0 points  -> no segments
//   1 point   -> M, Z
//   2 points  -> M, L
//   n points  -> M, then n-1 cubic segments
//
// Consecutive coincident points are dropped.

// Pt is a point in pixel space.
type Pt struct {
	X, Y float64
}

// MonotoneX returns the path segments of the monotone-X curve through pts.
func MonotoneX(pts []Pt) []drawtree.Segment {
	c := monotoneX{
		x0: math.NaN(), y0: math.NaN(),
		x1: math.NaN(), y1: math.NaN(),
		t0: math.NaN(),
	}
	for _, p := range pts {
		c.point(p.X, p.Y)
	}
	c.end()
	return c.segments
}

type monotoneX struct {
	segments []drawtree.Segment
	x0, y0   float64
	x1, y1   float64
	t0       float64
	state    int
}

func (c *monotoneX) point(x, y float64) {
	if x == c.x1 && y == c.y1 {
		return
	}

	t1 := math.NaN()
	switch c.state {
	case 0:
		c.state = 1
		c.segments = append(c.segments, drawtree.Segment{Op: drawtree.MoveTo, X: x, Y: y})
	case 1:
		c.state = 2
	case 2:
		c.state = 3
		t1 = c.slope3(x, y)
		c.bezier(c.slope2(t1), t1)
	default:
		t1 = c.slope3(x, y)
		c.bezier(c.t0, t1)
	}

	c.x0, c.x1 = c.x1, x
	c.y0, c.y1 = c.y1, y
	c.t0 = t1
}

func (c *monotoneX) end() {
	switch c.state {
	case 1:
		c.segments = append(c.segments, drawtree.Segment{Op: drawtree.Close})
	case 2:
		c.segments = append(c.segments, drawtree.Segment{Op: drawtree.LineTo, X: c.x1, Y: c.y1})
	case 3:
		c.bezier(c.t0, c.slope2(c.t0))
	}
}

// bezier draws the cubic from (x0, y0) to (x1, y1) with tangents t0 and t1.
func (c *monotoneX) bezier(t0, t1 float64) {
	dx := (c.x1 - c.x0) / 3
	c.segments = append(c.segments, drawtree.Segment{
		Op: drawtree.CurveTo,
		X1: c.x0 + dx,
		Y1: c.y0 + dx*t0,
		X2: c.x1 - dx,
		Y2: c.y1 - dx*t1,
		X:  c.x1,
		Y:  c.y1,
	})
}

// slope3 is the tangent at (x1, y1) given the next point (x2, y2).
func (c *monotoneX) slope3(x2, y2 float64) float64 {
	h0 := c.x1 - c.x0
	h1 := x2 - c.x1
	s0 := (c.y1 - c.y0) / zeroDivisor(h0, h1)
	s1 := (y2 - c.y1) / zeroDivisor(h1, h0)
	p := (s0*h1 + s1*h0) / (h0 + h1)

	t := (sign(s0) + sign(s1)) * math.Min(math.Min(math.Abs(s0), math.Abs(s1)), 0.5*math.Abs(p))
	if math.IsNaN(t) || t == 0 {
		return 0
	}
	return t
}

// slope2 is the end tangent derived from the neighboring tangent t.
func (c *monotoneX) slope2(t float64) float64 {
	h := c.x1 - c.x0
	if h == 0 || math.IsNaN(h) {
		return t
	}
	return (3*(c.y1-c.y0)/h - t) / 2
}

// zeroDivisor returns h unless it is zero, in which case the zero is signed
// by the other interval so the slope takes the direction of travel.
func zeroDivisor(h, other float64) float64 {
	if h != 0 && !math.IsNaN(h) {
		return h
	}
	if other < 0 {
		return math.Copysign(0, -1)
	}
	return 0
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
