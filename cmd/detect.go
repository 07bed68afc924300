package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/timeseries-chart/internal/csvparser"
	"github.com/ginjaninja78/timeseries-chart/internal/types"
)

// detectCmd represents the 'detect' command.
var detectCmd = &cobra.Command{
	Use:   "detect FILE",
	Short: "Report how a CSV file would be read",
	Long: `The detect command parses one CSV file (or the first sheet of an XLSX
workbook) and reports the detected key-column format, the series it would
chart and how many rows were kept. If the block cannot be charted it reports
why, and exits with status 1.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDetect(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, inputPath string) error {
	mainConfig, _, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	raw, err := readBlockFile(inputPath, mainConfig.CSV)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	table, err := csvparser.Parse(raw, mainConfig.CSV)
	if err != nil {
		var blockErr *types.BlockError
		if errors.As(err, &blockErr) {
			fmt.Fprintf(out, "Chartable:  no (%s)\n", blockErr.Kind)
		}
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	fmt.Fprintf(out, "Chartable:  yes\n")
	fmt.Fprintf(out, "Key column: %s\n", table.KeyColumn())
	fmt.Fprintf(out, "Format:     %s\n", table.Format)
	fmt.Fprintf(out, "Date axis:  %t\n", table.Format.IsDate())
	fmt.Fprintf(out, "Series:     %s\n", strings.Join(table.Columns, ", "))
	fmt.Fprintf(out, "Rows:       %d", len(table.Rows))
	if table.Discarded > 0 {
		fmt.Fprintf(out, " (%d discarded)", table.Discarded)
	}
	fmt.Fprintln(out)

	return nil
}
