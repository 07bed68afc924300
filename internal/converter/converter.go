// =============================================================================
// Time-Series Chart Renderer - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It runs the block pipeline
// (text to chart) and, in file.go, the pipeline for one whole document.
//
// BLOCK PIPELINE:
//   1. Parse the block text into a table (format detection included)
//   2. Build one series per value column
//   3. Lay out the chart geometry
//
// Any step may reject the block with a *types.BlockError; the rest of the
// document is unaffected.
//
// CONCURRENCY:
//   A Converter holds no mutable state after construction and can be shared
//   by goroutines processing different files.
//
// =============================================================================

package converter

import (
	"fmt"
	"log/slog"

	"github.com/ginjaninja78/timeseries-chart/internal/chart"
	"github.com/ginjaninja78/timeseries-chart/internal/config"
	"github.com/ginjaninja78/timeseries-chart/internal/csvparser"
	"github.com/ginjaninja78/timeseries-chart/internal/document"
	"github.com/ginjaninja78/timeseries-chart/internal/drawtree"
	"github.com/ginjaninja78/timeseries-chart/internal/types"
)

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter renders chart blocks.
type Converter struct {
	// options are the chart options with defaults applied.
	options config.ChartOptions

	// csv holds the delimiter settings for block text.
	csv config.CSVSettings

	// spec is the geometry spec derived from options.
	spec chart.Spec

	// logger is used for logging.
	logger Logger
}

// Logger is an interface for logging. Arguments after the message are
// alternating keys and values; *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Chart is the outcome of a successful block conversion.
type Chart struct {
	// Table is the parsed block.
	Table *csvparser.Table

	// Series has one entry per value column.
	Series []types.Series

	// Tree is the laid-out chart.
	Tree *drawtree.Tree
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - options: The chart options. Unset options get their defaults.
//   - csv: The delimiter settings.
//   - logger: The logger, or nil to discard log output.
//
// RETURNS:
//   - A new Converter instance.
func New(options config.ChartOptions, csv config.CSVSettings, logger Logger) *Converter {
	config.ApplyChartDefaults(&options)

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Converter{
		options: options,
		csv:     csv,
		spec:    options.ChartSpec(),
		logger:  logger,
	}
}

// Spec returns the geometry spec used for every chart.
func (c *Converter) Spec() chart.Spec { return c.spec }

// Options returns the chart options with defaults applied.
func (c *Converter) Options() config.ChartOptions { return c.options }

// =============================================================================
// BLOCK PIPELINE
// =============================================================================

// Convert runs the block pipeline on the text of one block.
//
// PARAMETERS:
//   - raw: The block text, header line first.
//
// RETURNS:
//   - The parsed table, its series and the chart.
//   - A *types.BlockError if the block cannot be charted.
func (c *Converter) Convert(raw string) (*Chart, error) {
	table, err := csvparser.Parse(raw, c.csv)
	if err != nil {
		return nil, fmt.Errorf("failed to parse block: %w", err)
	}

	if table.Discarded > 0 {
		c.logger.Debug("discarded rows with wrong field count",
			"discarded", table.Discarded, "kept", len(table.Rows))
	}

	series := BuildSeries(table)
	tree := chart.Build(series, table.Format, c.spec)

	c.logger.Debug("rendered block",
		"format", table.Format.String(),
		"rows", len(table.Rows),
		"series", len(series))

	return &Chart{Table: table, Series: series, Tree: tree}, nil
}

// RenderBlock returns only the chart of a block.
func (c *Converter) RenderBlock(raw string) (*drawtree.Tree, error) {
	result, err := c.Convert(raw)
	if err != nil {
		return nil, err
	}
	return result.Tree, nil
}

// Adapter returns a document adapter that renders blocks with c.
func (c *Converter) Adapter() *document.Adapter {
	return document.NewAdapter(c, document.Options{
		Language:       c.options.CodeLanguage,
		ContainerClass: c.options.ContainerClass,
		SaveOriginal:   c.options.KeepOriginal(),
	}, c.logger)
}
