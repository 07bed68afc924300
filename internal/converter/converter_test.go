package converter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/timeseries-chart/internal/config"
	"github.com/ginjaninja78/timeseries-chart/internal/csvparser"
	"github.com/ginjaninja78/timeseries-chart/internal/dateformat"
	"github.com/ginjaninja78/timeseries-chart/internal/drawtree"
	"github.com/ginjaninja78/timeseries-chart/internal/types"
	"github.com/ginjaninja78/timeseries-chart/pkg/utils"
)

const threeRows = "date,a,b\n2020-01-01,1,4\n2020-01-02,2,5\n2020-01-03,3,6"

func newTestConverter(options config.ChartOptions) *Converter {
	return New(options, config.CSVSettings{Delimiter: ","}, nil)
}

func TestBuildSeries_OneSeriesPerValueColumn(t *testing.T) {
	table, err := csvparser.Parse(threeRows, config.CSVSettings{})
	require.NoError(t, err)

	series := BuildSeries(table)

	require.Len(t, series, 2)
	assert.Equal(t, "a", series[0].Name)
	assert.Equal(t, "b", series[1].Name)
	for _, s := range series {
		require.Len(t, s.Points, 3)
		for i, p := range s.Points {
			assert.Equal(t, table.Rows[i].X, p.X)
		}
	}
	assert.Equal(t, []float64{4, 5, 6}, []float64{series[1].Points[0].Y, series[1].Points[1].Y, series[1].Points[2].Y})
}

func TestBuildSeries_DuplicateHeadersStaySeparate(t *testing.T) {
	table, err := csvparser.Parse("x,v,v\n1,10,20\n2,11,21", config.CSVSettings{})
	require.NoError(t, err)

	series := BuildSeries(table)

	require.Len(t, series, 2)
	assert.Equal(t, 10.0, series[0].Points[0].Y)
	assert.Equal(t, 20.0, series[1].Points[0].Y)
}

func TestConvert_ValidBlock(t *testing.T) {
	c := newTestConverter(config.ChartOptions{})

	result, err := c.Convert(threeRows)
	require.NoError(t, err)

	assert.Equal(t, dateformat.KindDate, result.Table.Format)
	assert.Len(t, result.Series, 2)
	assert.Equal(t, 2, result.Tree.Count(drawtree.RoleSeries))
	assert.Equal(t, 2, result.Tree.Count(drawtree.RoleLegendSwatch))
	assert.Equal(t, 640.0, result.Tree.Width())
}

func TestConvert_RejectsBadBlocks(t *testing.T) {
	c := newTestConverter(config.ChartOptions{})

	tests := []struct {
		name string
		raw  string
		kind types.ErrorKind
	}{
		{name: "header only", raw: "date,a", kind: types.StructuralError},
		{name: "single column", raw: "date\n2020-01-01", kind: types.StructuralError},
		{name: "mixed key formats", raw: "k,v\n2020-01-01,1\nhello,2", kind: types.FormatDetectionError},
		{name: "non-numeric value", raw: "k,v\n2020-01-01,1\n2020-01-02,abc", kind: types.ValueParseError},
		{name: "invalid calendar date", raw: "k,v\n2020-02-30,1", kind: types.ValueParseError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := c.Convert(tc.raw)
			assert.Nil(t, result)

			var blockErr *types.BlockError
			require.True(t, errors.As(err, &blockErr), "error %v", err)
			assert.Equal(t, tc.kind, blockErr.Kind)
		})
	}
}

func TestConvert_UsesChartOptions(t *testing.T) {
	c := newTestConverter(config.ChartOptions{Width: 800, Height: 400, Title: "Sales"})

	tree, err := c.RenderBlock(threeRows)
	require.NoError(t, err)

	assert.Equal(t, 800.0, tree.Width())
	assert.Equal(t, 400.0, tree.Height())
	assert.Equal(t, 1, tree.Count(drawtree.RoleTitle))
	assert.Equal(t, 800.0, c.Spec().Width)
	assert.Equal(t, "csv", c.Options().CodeLanguage)
}

func TestAdapter_RendersMarkdownEndToEnd(t *testing.T) {
	keep := false
	c := newTestConverter(config.ChartOptions{SaveOriginal: &keep})

	src := "Intro\n\n```csv\n" + threeRows + "\n```\n\n```csv\ndate,a\n2020-01-01,oops\n```\n"
	out, stats, err := c.Adapter().TransformMarkdown([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Blocks)
	assert.Equal(t, 1, stats.Rendered)
	assert.Equal(t, 1, stats.Skipped)

	s := string(out)
	assert.Equal(t, 1, strings.Count(s, "<svg"))
	assert.NotContains(t, s, "timeseries-chart-container")
	assert.Contains(t, s, `<path d="M50,`)
	assert.Contains(t, s, "2020-01-01,oops")
}

func TestRenderFile_MarkdownBecomesHTML(t *testing.T) {
	root := t.TempDir()
	fm := utils.NewFileManager(filepath.Join(root, "in"), filepath.Join(root, "out"), filepath.Join(root, "archive"))
	require.NoError(t, fm.EnsureDirectories())

	input := filepath.Join(fm.InputDir, "report.md")
	require.NoError(t, os.WriteFile(input, []byte("```csv\n"+threeRows+"\n```\n"), 0644))

	c := newTestConverter(config.ChartOptions{})
	result := c.RenderFile(input, fm, FileOptions{Archive: true})

	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.Equal(t, filepath.Join(fm.OutputDir, "report.html"), result.OutputFile)
	assert.Equal(t, filepath.Join(fm.ArchiveDir, "report.md"), result.ArchivePath)
	assert.Equal(t, 1, result.Stats.Blocks)
	assert.Equal(t, 1, result.Stats.Rendered)
	assert.Zero(t, result.Stats.Skipped)

	data, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<div class="timeseries-chart-container"><svg`)
	assert.NoFileExists(t, input)
}

func TestRenderFile_DryRunWritesNothing(t *testing.T) {
	root := t.TempDir()
	fm := utils.NewFileManager(root, filepath.Join(root, "out"), "")

	input := filepath.Join(root, "page.html")
	require.NoError(t, os.WriteFile(input, []byte(`<pre><code class="language-csv">`+threeRows+`</code></pre>`), 0644))

	c := newTestConverter(config.ChartOptions{})
	result := c.RenderFile(input, fm, FileOptions{DryRun: true, Archive: true})

	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.Empty(t, result.OutputFile)
	assert.Equal(t, 1, result.Stats.Rendered)
	assert.NoDirExists(t, fm.OutputDir)
	assert.FileExists(t, input)
}

func TestRenderFile_MissingInput(t *testing.T) {
	fm := utils.NewFileManager(t.TempDir(), t.TempDir(), "")

	result := newTestConverter(config.ChartOptions{}).RenderFile(filepath.Join(fm.InputDir, "nope.md"), fm, FileOptions{})

	assert.False(t, result.Success)
	assert.Error(t, result.Error)
}

func TestIsMarkdown(t *testing.T) {
	assert.True(t, IsMarkdown("a/b.MD"))
	assert.True(t, IsMarkdown("notes.markdown"))
	assert.False(t, IsMarkdown("page.html"))
}
