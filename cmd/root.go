// =============================================================================
// Time-Series Chart Renderer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (tschart)
//   ├── renderCmd  (tschart render)
//   ├── chartCmd   (tschart chart)
//   ├── detectCmd  (tschart detect)
//   └── versionCmd (tschart version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration file
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/timeseries-chart/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tschart",
	Short: "Time-Series Chart Renderer - Turn CSV blocks into inline SVG line charts",
	Long: `tschart finds fenced CSV blocks in HTML and Markdown documents and replaces
each one with an inline SVG line chart. The first column of a block is the
x axis (dates, times, Unix timestamps or plain numbers); every other column
becomes one line.

Blocks that cannot be charted are left exactly as they were.

Example Usage:
  tschart render                     # Render every document in the input directory
  tschart render --file notes.md     # Render a single document
  tschart chart sales.csv -o out.svg # Render one CSV file to a standalone SVG
  tschart detect sales.csv           # Show how a CSV file would be read`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// setup loads the configuration and builds the logger every command uses.
//
// RETURNS:
//   - The main configuration with defaults applied.
//   - The logger.
//   - A function that closes the log file, if one was opened.
//   - An error if the configuration or the log file cannot be loaded.
func setup() (*config.MainConfig, *slog.Logger, func(), error) {
	mainConfig, err := config.LoadMainConfigOrDefault(cfgFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load main config: %w", err)
	}

	logger, closer, err := newLogger(mainConfig.LogLevel, mainConfig.LogFile, verbose)
	if err != nil {
		return nil, nil, nil, err
	}

	return mainConfig, logger, func() { closer.Close() }, nil
}

// newLogger creates a text logger writing to stderr or to logFile.
func newLogger(level, logFile string, debug bool) (*slog.Logger, io.Closer, error) {
	var out io.WriteCloser = nopCloser{os.Stderr}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: logLevel(level, debug)})
	return slog.New(handler), out, nil
}

// logLevel maps a configured level name to a slog level.
func logLevel(level string, debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}

	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
