// =============================================================================
// Time-Series Chart Renderer - Render Command
// =============================================================================
//
// This file defines the 'render' command, which rewrites documents so that
// every CSV block becomes an inline chart.
//
// COMMAND USAGE:
//   tschart render [flags]
//
// FLAGS:
//   --file        : Render only this document instead of the input directory
//   --dry-run     : Render without writing output files or archiving inputs
//   --summary-log : Write a render summary file to the output directory
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover documents in the input directory (or take --file)
//   3. Render each document concurrently, up to max_concurrency at a time
//   4. Archive rendered inputs if archive_inputs is set
//   5. Print a summary, and write it to a file if requested
//
// =============================================================================

package cmd

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/timeseries-chart/internal/converter"
	"github.com/ginjaninja78/timeseries-chart/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// renderFilePath is a single document to render (--file).
var renderFilePath string

// dryRun renders without writing output files.
var dryRun bool

// summaryLog writes the render summary to the output directory.
var summaryLog bool

// =============================================================================
// RENDER COMMAND DEFINITION
// =============================================================================

// renderCmd represents the 'render' command.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Replace CSV blocks in HTML and Markdown documents with charts",
	Long: `The render command scans the input directory for .html, .htm, .md and
.markdown documents and writes a copy of each one to the output directory in
which every CSV block has been replaced by an inline SVG line chart.

Markdown documents are converted to HTML first, so their output is .html.

Each document is processed independently. A block that cannot be charted is
left unchanged and does not fail its document; a document that cannot be read
or written fails on its own without affecting the others.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(
		&renderFilePath,
		"file",
		"",
		"Render only this document",
	)

	renderCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Render without writing output files or archiving inputs",
	)

	renderCmd.Flags().BoolVar(
		&summaryLog,
		"summary-log",
		false,
		"Write a render summary file to the output directory",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runRender orchestrates the render pipeline.
func runRender(cmd *cobra.Command) error {
	startTime := time.Now()

	mainConfig, logger, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	archiveDir := ""
	if mainConfig.ArchiveInputs {
		archiveDir = mainConfig.ArchiveDir
	}
	fm := utils.NewFileManager(mainConfig.InputDir, mainConfig.OutputDir, archiveDir)

	if !dryRun {
		if err := fm.EnsureDirectories(); err != nil {
			return err
		}
	}

	// =========================================================================
	// STEP 1: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if renderFilePath != "" {
		inputFiles = []string{renderFilePath}
	} else {
		inputFiles, err = fm.DiscoverInputFiles(converter.SourceExtensions)
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(inputFiles) == 0 {
		logger.Info("no documents found", "input_dir", mainConfig.InputDir)
		return nil
	}

	logger.Info("rendering documents", "count", len(inputFiles), "concurrency", mainConfig.MaxConcurrency)

	// =========================================================================
	// STEP 2: RENDER FILES CONCURRENTLY
	// =========================================================================

	conv := converter.New(mainConfig.Chart, mainConfig.CSV, logger)
	options := converter.FileOptions{
		OutputNameFormat: mainConfig.OutputNameFormat,
		Archive:          mainConfig.ArchiveInputs,
		DryRun:           dryRun,
	}

	results := renderAll(conv, fm, inputFiles, options, mainConfig.MaxConcurrency)

	// =========================================================================
	// STEP 3: SUMMARY
	// =========================================================================

	summary := summarize(startTime, results)
	printSummary(cmd.OutOrStdout(), summary)

	if summaryLog && !dryRun {
		path, err := utils.WriteSummaryLog(summary, mainConfig.OutputDir)
		if err != nil {
			logger.Error("failed to write summary log", "error", err)
		} else {
			logger.Info("wrote summary log", "file", path)
		}
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d document(s) failed", summary.FailedFiles, summary.TotalFiles)
	}

	return nil
}

// renderAll renders files with at most limit documents in flight. Results
// are returned sorted by input path.
func renderAll(conv *converter.Converter, fm *utils.FileManager, files []string, options converter.FileOptions, limit int) []converter.Result {
	if limit < 1 {
		limit = 1
	}

	var wg sync.WaitGroup
	results := make(chan converter.Result, len(files))
	slots := make(chan struct{}, limit)

	for _, file := range files {
		wg.Add(1)

		go func(filePath string) {
			defer wg.Done()

			slots <- struct{}{}
			defer func() { <-slots }()

			results <- conv.RenderFile(filePath, fm, options)
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]converter.Result, 0, len(files))
	for result := range results {
		collected = append(collected, result)
	}

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].FilePath < collected[j].FilePath
	})

	return collected
}

// summarize folds results into a processing summary.
func summarize(startTime time.Time, results []converter.Result) utils.ProcessingSummary {
	summary := utils.ProcessingSummary{
		StartTime:  startTime,
		TotalFiles: len(results),
	}

	for _, result := range results {
		summary.TotalBlocks += result.Stats.Blocks
		summary.RenderedBlocks += result.Stats.Rendered
		summary.SkippedBlocks += result.Stats.Skipped

		if !result.Success {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    result.FilePath,
				ErrorMessage: result.Error.Error(),
			})
			continue
		}

		summary.SuccessfulFiles++
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:   result.FilePath,
			OutputFile:  result.OutputFile,
			ArchivePath: result.ArchivePath,
			Blocks:      result.Stats.Blocks,
			Rendered:    result.Stats.Rendered,
			ProcessTime: result.Stats.ProcessingTime,
		})
	}

	summary.EndTime = time.Now()
	return summary
}
