package converter

import (
	"github.com/ginjaninja78/timeseries-chart/internal/csvparser"
	"github.com/ginjaninja78/timeseries-chart/internal/types"
)

// BuildSeries pivots the rows of a table into one series per value column,
// in header order. Every series has one point per row, in row order.
func BuildSeries(table *csvparser.Table) []types.Series {
	series := make([]types.Series, len(table.Columns))

	for i, name := range table.Columns {
		points := make([]types.Point, len(table.Rows))
		for j, row := range table.Rows {
			points[j] = types.Point{X: row.X, Y: row.Values[i]}
		}
		series[i] = types.Series{Name: name, Points: points}
	}

	return series
}
