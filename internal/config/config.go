// =============================================================================
// Time-Series Chart Renderer - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the configuration file.
// It covers both the application settings (directories, logging, concurrency)
// and the chart options applied to every rendered block.
//
// CONFIGURATION FILE (config.yaml):
//   input_dir: ./input
//   output_dir: ./output
//   csv:
//     delimiter: ","
//   chart:
//     width: 640
//     height: 300
//     code_language: csv
//     save_original: true
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/timeseries-chart/internal/chart"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory scanned for documents to render.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where rendered documents are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is the directory where source documents are moved after a
	// successful render, when ArchiveInputs is set.
	// Default: "./archive"
	ArchiveDir string `yaml:"archive_dir"`

	// ArchiveInputs moves each source document to ArchiveDir once rendered.
	// Default: false
	ArchiveInputs bool `yaml:"archive_inputs"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is the path to the application log file. Empty means stderr.
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines the file name of each rendered document.
	// Placeholders:
	//   {original}  - Source file name without extension
	//   {ext}       - Output extension including the dot (".html")
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {time}      - Current time (HHMMSS)
	// Default: "{original}{ext}"
	OutputNameFormat string `yaml:"output_name_format"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of documents rendered concurrently.
	// Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// CSV contains settings for splitting block text into fields.
	CSV CSVSettings `yaml:"csv"`

	// Chart contains the options applied to every rendered chart.
	Chart ChartOptions `yaml:"chart"`
}

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for splitting block text.
type CSVSettings struct {
	// Delimiter is the character used to separate fields.
	// Common values: "," (comma), "|" or "pipe", "\t" or "tab", ";" or "semicolon"
	// Default: ","
	Delimiter string `yaml:"delimiter"`
}

// =============================================================================
// CHART OPTIONS STRUCTURE
// =============================================================================

// ChartOptions are the recognized options of the document adapter and the
// chart geometry builder.
type ChartOptions struct {
	// Width of the chart viewBox in pixels. Default: 640
	Width int `yaml:"width"`

	// Height of the chart viewBox in pixels. Default: 300
	Height int `yaml:"height"`

	// Title is drawn centered above the plot when set.
	Title string `yaml:"title"`

	// TextColor is the CSS color of all labels. Default: "#000"
	TextColor string `yaml:"text_color"`

	// BackgroundColor fills the whole viewBox when set. Default: none
	BackgroundColor string `yaml:"background_color"`

	// ContainerClass is the CSS class of the wrapping <div>.
	// Default: "timeseries-chart-container"
	ContainerClass string `yaml:"container_class"`

	// CodeLanguage is the fenced block language that qualifies for charting.
	// Blocks are matched by the "language-<CodeLanguage>" class.
	// Default: "csv"
	CodeLanguage string `yaml:"code_language"`

	// SaveOriginal keeps the source block next to the chart.
	// A pointer so that an explicit false survives defaulting.
	// Default: true
	SaveOriginal *bool `yaml:"save_original"`

	// LegendLabelWidth truncates legend labels wider than this many terminal
	// cells. 0 keeps labels whole. Default: 0
	LegendLabelWidth int `yaml:"legend_label_width"`
}

// KeepOriginal reports the effective save-original flag.
func (o ChartOptions) KeepOriginal() bool {
	return o.SaveOriginal == nil || *o.SaveOriginal
}

// ChartSpec converts the options into the geometry builder's spec.
func (o ChartOptions) ChartSpec() chart.Spec {
	return chart.Spec{
		Width:            float64(o.Width),
		Height:           float64(o.Height),
		Margin:           chart.DefaultMargins(),
		Title:            o.Title,
		TextColor:        o.TextColor,
		BackgroundColor:  o.BackgroundColor,
		Language:         o.CodeLanguage,
		SaveOriginal:     o.KeepOriginal(),
		LegendLabelWidth: o.LegendLabelWidth,
	}
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// DefaultMainConfig returns a configuration with every default applied.
func DefaultMainConfig() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file. An empty path
//     yields the defaults.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	if configPath == "" {
		return DefaultMainConfig(), nil
	}

	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseMainConfig(data)
}

// LoadMainConfigOrDefault behaves like LoadMainConfig but falls back to the
// defaults when the file does not exist.
func LoadMainConfigOrDefault(configPath string) (*MainConfig, error) {
	config, err := LoadMainConfig(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultMainConfig(), nil
	}
	return config, err
}

// ParseMainConfig parses, defaults and validates a YAML document.
func ParseMainConfig(data []byte) (*MainConfig, error) {
	// Parse the YAML.
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply default values.
	applyMainConfigDefaults(&config)

	// Validate the configuration.
	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.ArchiveDir == "" {
		config.ArchiveDir = "./archive"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{original}{ext}"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
	if config.CSV.Delimiter == "" {
		config.CSV.Delimiter = ","
	}
	ApplyChartDefaults(&config.Chart)
}

// ApplyChartDefaults sets default values for unset chart options.
func ApplyChartDefaults(options *ChartOptions) {
	if options.Width == 0 {
		options.Width = 640
	}
	if options.Height == 0 {
		options.Height = 300
	}
	if options.TextColor == "" {
		options.TextColor = "#000"
	}
	if options.ContainerClass == "" {
		options.ContainerClass = "timeseries-chart-container"
	}
	if options.CodeLanguage == "" {
		options.CodeLanguage = "csv"
	}
	if options.SaveOriginal == nil {
		keep := true
		options.SaveOriginal = &keep
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", config.MaxConcurrency)
	}

	margins := chart.DefaultMargins()
	if float64(config.Chart.Width) <= margins.Left+margins.Right {
		return fmt.Errorf("chart.width must exceed %g, got %d", margins.Left+margins.Right, config.Chart.Width)
	}
	if float64(config.Chart.Height) <= margins.Top+margins.Bottom {
		return fmt.Errorf("chart.height must exceed %g, got %d", margins.Top+margins.Bottom, config.Chart.Height)
	}
	if config.Chart.LegendLabelWidth < 0 {
		return fmt.Errorf("chart.legend_label_width must not be negative")
	}

	return nil
}
