package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMainConfig_AppliesDocumentedDefaults(t *testing.T) {
	config := DefaultMainConfig()

	assert.Equal(t, "./input", config.InputDir)
	assert.Equal(t, "./output", config.OutputDir)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "{original}{ext}", config.OutputNameFormat)
	assert.Equal(t, 4, config.MaxConcurrency)
	assert.Equal(t, ",", config.CSV.Delimiter)

	assert.Equal(t, 640, config.Chart.Width)
	assert.Equal(t, 300, config.Chart.Height)
	assert.Equal(t, "#000", config.Chart.TextColor)
	assert.Empty(t, config.Chart.BackgroundColor)
	assert.Equal(t, "timeseries-chart-container", config.Chart.ContainerClass)
	assert.Equal(t, "csv", config.Chart.CodeLanguage)
	assert.True(t, config.Chart.KeepOriginal())
	assert.Zero(t, config.Chart.LegendLabelWidth)
}

func TestParseMainConfig_LegendLabelWidth(t *testing.T) {
	config, err := ParseMainConfig([]byte("chart:\n  legend_label_width: 0\n"))
	require.NoError(t, err)
	assert.Zero(t, config.Chart.LegendLabelWidth)
	assert.Zero(t, config.Chart.ChartSpec().LegendLabelWidth)

	config, err = ParseMainConfig([]byte("chart:\n  legend_label_width: 12\n"))
	require.NoError(t, err)
	assert.Equal(t, 12, config.Chart.LegendLabelWidth)
	assert.Equal(t, 12, config.Chart.ChartSpec().LegendLabelWidth)
}

func TestParseMainConfig_KeepsExplicitFalseSaveOriginal(t *testing.T) {
	config, err := ParseMainConfig([]byte("chart:\n  save_original: false\n  title: Load\n"))
	require.NoError(t, err)

	assert.False(t, config.Chart.KeepOriginal())
	assert.Equal(t, "Load", config.Chart.Title)
	assert.Equal(t, 640, config.Chart.Width)
}

func TestParseMainConfig_RejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"log level":   "log_level: loud\n",
		"concurrency": "max_concurrency: -2\n",
		"width":       "chart:\n  width: 60\n",
		"height":      "chart:\n  height: 50\n",
		"legend":      "chart:\n  legend_label_width: -1\n",
		"yaml":        "chart: [\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseMainConfig([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadMainConfig_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_dir: docs\ncsv:\n  delimiter: pipe\n"), 0o600))

	config, err := LoadMainConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "docs", config.InputDir)
	assert.Equal(t, "pipe", config.CSV.Delimiter)
}

func TestLoadMainConfigOrDefault_FallsBack_When_FileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	_, err := LoadMainConfig(missing)
	require.Error(t, err)

	config, err := LoadMainConfigOrDefault(missing)
	require.NoError(t, err)
	assert.Equal(t, DefaultMainConfig(), config)
}

func TestChartSpec_CarriesOptions(t *testing.T) {
	options := ChartOptions{Width: 800, Height: 400, Title: "T", BackgroundColor: "#fff"}
	ApplyChartDefaults(&options)

	spec := options.ChartSpec()
	assert.Equal(t, 800.0, spec.Width)
	assert.Equal(t, 400.0, spec.Height)
	assert.Equal(t, "T", spec.Title)
	assert.Equal(t, "#fff", spec.BackgroundColor)
	assert.Equal(t, "csv", spec.Language)
	assert.True(t, spec.SaveOriginal)
	assert.Equal(t, 40.0, spec.Margin.Top)
	assert.Equal(t, 50.0, spec.Margin.Left)
}
