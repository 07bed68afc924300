package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/timeseries-chart/internal/dateformat"
	"github.com/ginjaninja78/timeseries-chart/internal/drawtree"
	"github.com/ginjaninja78/timeseries-chart/internal/types"
)

func dailySeries(names ...string) []types.Series {
	days := []time.Time{
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC),
	}

	series := make([]types.Series, len(names))
	for i, name := range names {
		series[i].Name = name
		for j, d := range days {
			series[i].Points = append(series[i].Points, types.Point{
				X: types.TimeValue(d),
				Y: float64(5 + j*(i+1)),
			})
		}
	}
	return series
}

func texts(tree *drawtree.Tree, role drawtree.Role) []drawtree.Text {
	var out []drawtree.Text
	for _, n := range tree.Filter(role) {
		out = append(out, n.(drawtree.Text))
	}
	return out
}

func TestBuild_SingleSeriesHasNoLegend(t *testing.T) {
	tree := Build(dailySeries("a"), dateformat.KindDate, DefaultSpec())

	assert.Equal(t, 0, tree.Count(drawtree.RoleLegendSwatch))
	assert.Equal(t, 0, tree.Count(drawtree.RoleLegendLabel))
	assert.Equal(t, 1, tree.Count(drawtree.RoleSeries))
	assert.Equal(t, 2, tree.Count(drawtree.RoleAxis))
	assert.Equal(t, 0, tree.Count(drawtree.RoleTitle))
	assert.Equal(t, 0, tree.Count(drawtree.RoleBackground))
	assert.Equal(t, 640.0, tree.Width())
	assert.Equal(t, 300.0, tree.Height())
}

func TestBuild_LegendForMultipleSeries(t *testing.T) {
	tree := Build(dailySeries("a", "b", "c"), dateformat.KindDate, DefaultSpec())

	swatches := tree.Filter(drawtree.RoleLegendSwatch)
	require.Len(t, swatches, 3)
	for i, n := range swatches {
		r := n.(drawtree.Rect)
		assert.Equal(t, 50.0+float64(i)*100, r.X)
		assert.Equal(t, 12.0, r.Y)
		assert.Equal(t, 12.0, r.Width)
		assert.Equal(t, Color(i), r.Style.Fill)
	}

	labels := texts(tree, drawtree.RoleLegendLabel)
	require.Len(t, labels, 3)
	assert.Equal(t, "b", labels[1].Content)
	assert.Equal(t, 166.0, labels[1].X)
	assert.Equal(t, 22.0, labels[1].Y)
	assert.Equal(t, "start", labels[1].Style.TextAnchor)

	paths := tree.Filter(drawtree.RoleSeries)
	require.Len(t, paths, 3)
	for i, n := range paths {
		p := n.(drawtree.Path)
		assert.Equal(t, Color(i), p.Style.Stroke)
		assert.Equal(t, "none", p.Style.Fill)
		assert.Equal(t, 1.5, p.Style.StrokeWidth)
	}
}

func TestBuild_LegendLabelsTruncated(t *testing.T) {
	spec := DefaultSpec()
	spec.LegendLabelWidth = 14
	tree := Build(dailySeries("a very long series name", "b"), dateformat.KindDate, spec)

	labels := texts(tree, drawtree.RoleLegendLabel)
	require.Len(t, labels, 2)
	assert.Equal(t, "a very long s…", labels[0].Content)
	assert.Equal(t, "b", labels[1].Content)

	spec.LegendLabelWidth = 0
	tree = Build(dailySeries("a very long series name", "b"), dateformat.KindDate, spec)
	assert.Equal(t, "a very long series name", texts(tree, drawtree.RoleLegendLabel)[0].Content)
}

func TestBuild_YDomainStartsAtZero(t *testing.T) {
	// Values 5, 6, 7 nice to [0, 7] with ticks every 1.
	tree := Build(dailySeries("a"), dateformat.KindDate, DefaultSpec())

	grid := tree.Filter(drawtree.RoleGridLine)
	require.Len(t, grid, 8)

	bottom := grid[0].(drawtree.Line)
	assert.Equal(t, 270.0, bottom.Y1)
	assert.Equal(t, 50.0, bottom.X1)
	assert.Equal(t, 620.0, bottom.X2)
	assert.Equal(t, "#ccc", bottom.Style.Stroke)
	assert.Equal(t, "2,2", bottom.Style.DashArray)

	top := grid[len(grid)-1].(drawtree.Line)
	assert.Equal(t, 40.0, top.Y1)

	var yLabels []drawtree.Text
	for _, l := range texts(tree, drawtree.RoleTickLabel) {
		if l.Style.TextAnchor == "end" {
			yLabels = append(yLabels, l)
		}
	}
	require.Len(t, yLabels, 8)
	assert.Equal(t, "0", yLabels[0].Content)
	assert.Equal(t, 40.0, yLabels[0].X)
	assert.Equal(t, 273.0, yLabels[0].Y)
	assert.Equal(t, "7", yLabels[7].Content)
}

func TestBuild_DateTicksUseCalendarLabels(t *testing.T) {
	tree := Build(dailySeries("a"), dateformat.KindDate, DefaultSpec())

	var xLabels []string
	for _, l := range texts(tree, drawtree.RoleTickLabel) {
		if l.Y == 290 {
			xLabels = append(xLabels, l.Content)
		}
	}

	// Two days at 7 ticks step by 6 hours.
	assert.Equal(t, []string{
		"2020", "06 AM", "12 PM", "06 PM",
		"Thu 02", "06 AM", "12 PM", "06 PM",
		"Fri 03",
	}, xLabels)
}

func TestBuild_NumberKeyUsesLinearAxis(t *testing.T) {
	series := []types.Series{{
		Name: "v",
		Points: []types.Point{
			{X: types.NumberValue(0), Y: 1},
			{X: types.NumberValue(50), Y: 3},
			{X: types.NumberValue(100), Y: 2},
		},
	}}

	tree := Build(series, dateformat.KindNumber, DefaultSpec())

	var xLabels []string
	for _, l := range texts(tree, drawtree.RoleTickLabel) {
		if l.Y == 290 {
			xLabels = append(xLabels, l.Content)
		}
	}
	assert.Equal(t, []string{"0", "20", "40", "60", "80", "100"}, xLabels)

	path := tree.Filter(drawtree.RoleSeries)[0].(drawtree.Path)
	require.Len(t, path.Segments, 3)
	assert.Equal(t, drawtree.MoveTo, path.Segments[0].Op)
	assert.Equal(t, 50.0, path.Segments[0].X)
	assert.Equal(t, 620.0, path.Segments[2].X)
}

func TestBuild_TitleAndBackground(t *testing.T) {
	spec := DefaultSpec()
	spec.Title = "Sales"
	spec.BackgroundColor = "#fafafa"
	spec.TextColor = "#333"

	tree := Build(dailySeries("a"), dateformat.KindDate, spec)

	nodes := tree.Nodes()
	require.NotEmpty(t, nodes)
	bg, ok := nodes[0].(drawtree.Rect)
	require.True(t, ok)
	assert.Equal(t, drawtree.RoleBackground, bg.Role)
	assert.Equal(t, "#fafafa", bg.Style.Fill)
	assert.Equal(t, 640.0, bg.Width)

	titles := texts(tree, drawtree.RoleTitle)
	require.Len(t, titles, 1)
	assert.Equal(t, "Sales", titles[0].Content)
	assert.Equal(t, 320.0, titles[0].X)
	assert.Equal(t, 20.0, titles[0].Y)
	assert.Equal(t, 16.0, titles[0].Style.FontSize)
	assert.Equal(t, "#333", titles[0].Style.Fill)

	for _, l := range texts(tree, drawtree.RoleTickLabel) {
		assert.Equal(t, "#333", l.Style.Fill)
	}
}

func TestBuild_SingleRowDegenerateDomain(t *testing.T) {
	series := []types.Series{{
		Name:   "a",
		Points: []types.Point{{X: types.TimeValue(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)), Y: 4}},
	}}

	tree := Build(series, dateformat.KindDate, DefaultSpec())

	path := tree.Filter(drawtree.RoleSeries)[0].(drawtree.Path)
	assert.Equal(t, []drawtree.Op{drawtree.MoveTo, drawtree.Close}, ops(path.Segments))
	assert.Equal(t, 335.0, path.Segments[0].X)
}
