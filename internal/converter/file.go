package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/timeseries-chart/internal/document"
	"github.com/ginjaninja78/timeseries-chart/pkg/utils"
)

// =============================================================================
// FILE PIPELINE
// =============================================================================
//
// PROCESSING STEPS:
//   1. Read the input document
//   2. Render Markdown to HTML if the input is Markdown
//   3. Replace every chart block (blocks that fail are left as they are)
//   4. Write the output document (always HTML)
//   5. Archive the input if requested

// SourceExtensions lists the input extensions the render command accepts.
var SourceExtensions = []string{".html", ".htm", ".md", ".markdown"}

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the rendered document.
	// This is empty if processing failed or nothing was written.
	OutputFile string

	// ArchivePath is where the input was moved, if it was archived.
	ArchivePath string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Blocks is the number of chart blocks found.
	Blocks int

	// Rendered is the number of blocks replaced by a chart.
	Rendered int

	// Skipped is the number of blocks left unchanged.
	Skipped int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// FileOptions controls where a rendered document goes.
type FileOptions struct {
	// OutputNameFormat is the output file name format, see
	// utils.GenerateOutputFileName.
	OutputNameFormat string

	// Archive moves the input to the archive directory after success.
	Archive bool

	// DryRun renders without writing or archiving anything.
	DryRun bool
}

// IsMarkdown reports whether a path names a Markdown document.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// RenderFile runs the file pipeline on one document.
//
// PARAMETERS:
//   - path: The input document.
//   - fm: Resolves output and archive locations.
//   - options: Naming, archival and dry-run settings.
//
// RETURNS:
//   - A Result describing the outcome. Block failures are not file failures;
//     they only show up in Stats.Skipped.
func (c *Converter) RenderFile(path string, fm *utils.FileManager, options FileOptions) Result {
	startTime := time.Now()
	result := Result{FilePath: path}

	c.logger.Info("processing file", "file", path)

	src, err := os.ReadFile(path)
	if err != nil {
		result.Error = fmt.Errorf("failed to read input: %w", err)
		return result
	}

	out, stats, err := c.transform(path, src)
	if err != nil {
		result.Error = err
		return result
	}

	result.Stats = ProcessingStats{
		Blocks:   stats.Blocks,
		Rendered: stats.Rendered,
		Skipped:  stats.Skipped,
	}
	if stats.Skipped > 0 {
		c.logger.Warn("left blocks unchanged", "file", path, "skipped", stats.Skipped)
	}

	format := options.OutputNameFormat
	if format == "" {
		format = "{original}{ext}"
	}

	base := filepath.Base(path)
	fileName := utils.GenerateOutputFileName(format, map[string]string{
		"original": strings.TrimSuffix(base, filepath.Ext(base)),
		"ext":      outputExtension(path),
	})
	outputPath := fm.OutputPath(fileName)

	if options.DryRun {
		c.logger.Info("dry run, not writing output", "file", path, "output", outputPath)
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}
	result.OutputFile = outputPath
	c.logger.Info("wrote output", "file", outputPath, "charts", stats.Rendered)

	if options.Archive {
		archivePath, err := fm.ArchiveInputFile(path)
		if err != nil {
			// Log the error but don't fail the processing.
			c.logger.Warn("failed to archive input", "file", path, "error", err)
		} else {
			result.ArchivePath = archivePath
		}
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

// transform rewrites a document according to its type.
func (c *Converter) transform(path string, src []byte) ([]byte, document.Stats, error) {
	adapter := c.Adapter()

	if IsMarkdown(path) {
		out, stats, err := adapter.TransformMarkdown(src)
		if err != nil {
			return nil, stats, fmt.Errorf("failed to transform Markdown: %w", err)
		}
		return out, stats, nil
	}

	out, stats, err := adapter.TransformHTML(src)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to transform HTML: %w", err)
	}
	return out, stats, nil
}

// outputExtension is the extension of the rendered document.
func outputExtension(path string) string {
	if IsMarkdown(path) {
		return ".html"
	}
	return filepath.Ext(path)
}
