// =============================================================================
// Time-Series Chart Renderer - Chart Geometry Builder
// =============================================================================
//
// This module turns a set of series into a draw tree: scales, axes, ticks,
// grid lines, an optional legend, title and background, and one curve per
// series. It performs no I/O and never fails.
//
// LAYOUT:
//   The plot area is the view box minus the fixed margins. The title sits at
//   (W/2, 20), the legend 20px above the plot, x tick labels 20px below it
//   and y tick labels 10px left of it.
//
//     +--------------------------------------+
//     |            title                     |
//     |   [#] a   [#] b                      |
//     |   +----------------------------------|
//     |   |- - - - - - - - - - - - - - grid  |
//     |   |                                  |
//     |   +----------------------------------|
//     |       |         |         |          |
//     +--------------------------------------+
//
// PAINT ORDER:
//   background, title, legend, axes, x ticks, y ticks and grid, series.
//
// =============================================================================

package chart

import (
	"math"
	"strconv"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/ginjaninja78/timeseries-chart/internal/dateformat"
	"github.com/ginjaninja78/timeseries-chart/internal/drawtree"
	"github.com/ginjaninja78/timeseries-chart/internal/scale"
	"github.com/ginjaninja78/timeseries-chart/internal/types"
)

const (
	// xTickSpacing is the approximate pixel distance between x ticks.
	xTickSpacing = 80

	// yTickCount is the requested number of y ticks.
	yTickCount = 5

	// yNiceCount is the tick count the y domain is rounded for.
	yNiceCount = 10

	tickLength       = 6
	xLabelOffset     = 20
	yLabelOffset     = 10
	legendOffset     = 20
	legendSpacing    = 100
	legendSwatchSize = 12
	legendEllipsis   = "…"
	titleY           = 20
	titleFontSize    = 16
	textFontSize     = 10
	seriesWidth      = 1.5
	gridColor        = "#ccc"
	gridDashArray    = "2,2"
	axisColor        = "#000"
)

// =============================================================================
// BUILD
// =============================================================================

// Build lays out the chart for the given series.
//
// PARAMETERS:
//   - series: One series per value column, all sharing the same x values.
//   - format: The detected key-column format. Date-like formats get a time
//     axis, the number format a linear one.
//   - spec: Size, margins and styling.
//
// RETURNS:
//   - The draw tree with view box 0 0 spec.Width spec.Height.
func Build(series []types.Series, format dateformat.Kind, spec Spec) *drawtree.Tree {
	left, top, right, bottom := spec.plotArea()
	textColor := spec.textColor()

	x := newXAxis(series, format, left, right)
	y := newYScale(series, bottom, top)

	var nodes []drawtree.Node

	if spec.BackgroundColor != "" {
		nodes = append(nodes, drawtree.Rect{
			Width:  spec.Width,
			Height: spec.Height,
			Style:  drawtree.Style{Fill: spec.BackgroundColor},
			Role:   drawtree.RoleBackground,
		})
	}

	if spec.Title != "" {
		title := text(spec.Width/2, titleY, spec.Title, textColor, drawtree.RoleTitle)
		title.Style.FontSize = titleFontSize
		nodes = append(nodes, title)
	}

	if len(series) > 1 {
		nodes = append(nodes, legend(series, spec, textColor)...)
	}

	// Axes.
	nodes = append(nodes,
		line(left, bottom, right, bottom, drawtree.RoleAxis),
		line(left, top, left, bottom, drawtree.RoleAxis),
	)

	// X ticks and labels.
	count := int(math.Max(1, math.Floor((right-left)/xTickSpacing)))
	for _, tick := range x.ticks(count) {
		nodes = append(nodes,
			line(tick.pos, bottom, tick.pos, bottom+tickLength, drawtree.RoleTickMark),
			text(tick.pos, bottom+xLabelOffset, tick.label, textColor, drawtree.RoleTickLabel),
		)
	}

	// Y ticks, labels and grid lines.
	for _, t := range y.Ticks(yTickCount) {
		pos := y.Map(t)

		label := text(left-yLabelOffset, pos+3, strconv.FormatFloat(t, 'f', -1, 64), textColor, drawtree.RoleTickLabel)
		label.Style.TextAnchor = "end"

		grid := line(left, pos, right, pos, drawtree.RoleGridLine)
		grid.Style.Stroke = gridColor
		grid.Style.DashArray = gridDashArray

		nodes = append(nodes, line(left-tickLength, pos, left, pos, drawtree.RoleTickMark), label, grid)
	}

	// Data paths.
	for i, s := range series {
		pts := make([]Pt, len(s.Points))
		for j, p := range s.Points {
			pts[j] = Pt{X: x.mapValue(p.X), Y: y.Map(p.Y)}
		}
		nodes = append(nodes, drawtree.Path{
			Segments: MonotoneX(pts),
			Style: drawtree.Style{
				Fill:        "none",
				Stroke:      Color(i),
				StrokeWidth: seriesWidth,
				LineJoin:    "round",
				LineCap:     "round",
			},
			Role: drawtree.RoleSeries,
		})
	}

	return drawtree.New(spec.Width, spec.Height, nodes)
}

// legend lays out one swatch and label per series along the top margin.
func legend(series []types.Series, spec Spec, textColor string) []drawtree.Node {
	legendY := spec.Margin.Top - legendOffset
	nodes := make([]drawtree.Node, 0, 2*len(series))

	for i, s := range series {
		x0 := spec.Margin.Left + float64(i*legendSpacing)

		name := s.Name
		if spec.LegendLabelWidth > 0 {
			name = runewidth.Truncate(name, spec.LegendLabelWidth, legendEllipsis)
		}

		label := text(x0+legendSwatchSize+4, legendY+2, name, textColor, drawtree.RoleLegendLabel)
		label.Style.TextAnchor = "start"

		nodes = append(nodes,
			drawtree.Rect{
				X:      x0,
				Y:      legendY - 8,
				Width:  legendSwatchSize,
				Height: legendSwatchSize,
				Style:  drawtree.Style{Fill: Color(i)},
				Role:   drawtree.RoleLegendSwatch,
			},
			label,
		)
	}

	return nodes
}

// =============================================================================
// SCALES
// =============================================================================

type xTick struct {
	pos   float64
	label string
}

// xAxis hides whether the key column is on a time or a linear scale.
type xAxis interface {
	mapValue(v types.Value) float64
	ticks(count int) []xTick
}

type timeAxis struct {
	scale scale.Time
}

func (a timeAxis) mapValue(v types.Value) float64 { return a.scale.Map(v.Time()) }

func (a timeAxis) ticks(count int) []xTick {
	instants := a.scale.Ticks(count)
	ticks := make([]xTick, len(instants))
	for i, t := range instants {
		ticks[i] = xTick{pos: a.scale.Map(t), label: scale.TickFormat(t)}
	}
	return ticks
}

type linearAxis struct {
	scale  scale.Linear
	format dateformat.Kind
}

func (a linearAxis) mapValue(v types.Value) float64 { return a.scale.Map(v.Float()) }

func (a linearAxis) ticks(count int) []xTick {
	values := a.scale.Ticks(count)
	ticks := make([]xTick, len(values))
	for i, v := range values {
		ticks[i] = xTick{pos: a.scale.Map(v), label: a.format.Format(types.NumberValue(v))}
	}
	return ticks
}

// newXAxis spans the extent of all x values over [left, right].
func newXAxis(series []types.Series, format dateformat.Kind, left, right float64) xAxis {
	if format.IsDate() {
		var lo, hi time.Time
		first := true
		for _, s := range series {
			for _, p := range s.Points {
				t := p.X.Time()
				if first || t.Before(lo) {
					lo = t
				}
				if first || t.After(hi) {
					hi = t
				}
				first = false
			}
		}
		return timeAxis{scale: scale.NewTime(lo, hi, left, right)}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, p := range s.Points {
			lo = math.Min(lo, p.X.Float())
			hi = math.Max(hi, p.X.Float())
		}
	}
	if lo > hi {
		lo, hi = 0, 0
	}
	return linearAxis{scale: scale.NewLinear(lo, hi, left, right), format: format}
}

// newYScale maps [0, max y] (nicely rounded) onto [bottom, top].
func newYScale(series []types.Series, bottom, top float64) scale.Linear {
	yMax := math.Inf(-1)
	for _, s := range series {
		for _, p := range s.Points {
			yMax = math.Max(yMax, p.Y)
		}
	}
	if math.IsInf(yMax, -1) {
		yMax = 0
	}
	return scale.NewLinear(0, yMax, bottom, top).Nice(yNiceCount)
}

// =============================================================================
// SHAPE HELPERS
// =============================================================================

// line draws a segment with the default axis stroke.
func line(x1, y1, x2, y2 float64, role drawtree.Role) drawtree.Line {
	return drawtree.Line{
		X1:    x1,
		Y1:    y1,
		X2:    x2,
		Y2:    y2,
		Style: drawtree.Style{Stroke: axisColor},
		Role:  role,
	}
}

// text draws a small centered label.
func text(x, y float64, content, color string, role drawtree.Role) drawtree.Text {
	return drawtree.Text{
		X:       x,
		Y:       y,
		Content: content,
		Style: drawtree.Style{
			Fill:       color,
			FontSize:   textFontSize,
			TextAnchor: "middle",
		},
		Role: role,
	}
}
