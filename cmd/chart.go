// =============================================================================
// Time-Series Chart Renderer - Chart Command
// =============================================================================
//
// COMMAND USAGE:
//   tschart chart FILE [flags]
//
// FILE is a CSV file, or an XLSX workbook whose first sheet holds the block.
//
// FLAGS:
//   -o, --output : The SVG file to write (default: FILE with an .svg extension)
//   --xlsx       : Also export the parsed table to this workbook
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/timeseries-chart/internal/config"
	"github.com/ginjaninja78/timeseries-chart/internal/converter"
	"github.com/ginjaninja78/timeseries-chart/internal/csvparser"
	"github.com/ginjaninja78/timeseries-chart/internal/svgwriter"
	"github.com/ginjaninja78/timeseries-chart/internal/xlsxexport"
)

// chartOutput is the SVG file to write.
var chartOutput string

// chartXLSX is the optional workbook export path.
var chartXLSX string

// chartCmd represents the 'chart' command.
var chartCmd = &cobra.Command{
	Use:   "chart FILE",
	Short: "Render one CSV file to a standalone SVG",
	Long: `The chart command reads one CSV file (or the first sheet of an XLSX
workbook), renders it with the configured chart options and writes a
standalone SVG document.

With --xlsx the parsed table is also written to a workbook, with keys in the
detected format and values as numbers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChart(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "", "The SVG file to write")
	chartCmd.Flags().StringVar(&chartXLSX, "xlsx", "", "Also export the parsed table to this XLSX file")
}

func runChart(cmd *cobra.Command, inputPath string) error {
	mainConfig, logger, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	raw, err := readBlockFile(inputPath, mainConfig.CSV)
	if err != nil {
		return err
	}

	conv := converter.New(mainConfig.Chart, mainConfig.CSV, logger)
	result, err := conv.Convert(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	svg, err := svgwriter.GenerateWithOptions(result.Tree, svgwriter.StandaloneOptions(result.Tree))
	if err != nil {
		return fmt.Errorf("failed to generate SVG: %w", err)
	}

	outputPath := chartOutput
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".svg"
	}
	if err := os.WriteFile(outputPath, svg, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("wrote chart", "file", outputPath, "series", len(result.Series), "rows", len(result.Table.Rows))

	if chartXLSX != "" {
		if err := xlsxexport.Export(result.Table, chartXLSX); err != nil {
			return err
		}
		logger.Info("exported table", "file", chartXLSX)
	}

	fmt.Fprintln(cmd.OutOrStdout(), outputPath)
	return nil
}

// readBlockFile returns the block text of a CSV file or an XLSX workbook.
func readBlockFile(path string, settings config.CSVSettings) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return xlsxexport.ReadBlock(path, csvparser.Delimiter(settings))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}
