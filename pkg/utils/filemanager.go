// =============================================================================
// Time-Series Chart Renderer - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the render command:
//   - Input discovery by extension
//   - Output naming with placeholders
//   - Archival of processed inputs
//   - Run summary logs
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to the archive directory after they rendered
//   - Failed files remain in their original location
//   - Outputs are never archived; they are the product of the run
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the render command.
type FileManager struct {
	// InputDir is the directory where input documents are placed.
	InputDir string

	// OutputDir is the directory where rendered documents are written.
	OutputDir string

	// ArchiveDir is the directory for archived input documents.
	ArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: archive/2024/01/15/report.md
	UseTimestampSubdirs bool
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, archiveDir string) *FileManager {
	return &FileManager{
		InputDir:   inputDir,
		OutputDir:  outputDir,
		ArchiveDir: archiveDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all configured directories if they don't exist.
//
// RETURNS:
//   - An error if any directory cannot be created.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{
		fm.InputDir,
		fm.OutputDir,
		fm.ArchiveDir,
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the regular files of the input directory whose
// extension is one of extensions (case-insensitive), sorted by path.
//
// PARAMETERS:
//   - extensions: Extensions including the dot, e.g. ".md".
//
// RETURNS:
//   - A slice of file paths.
//   - An error if the directory cannot be read.
func (fm *FileManager) DiscoverInputFiles(extensions []string) ([]string, error) {
	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[strings.ToLower(ext)] = true
	}

	var result []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if wanted[strings.ToLower(filepath.Ext(entry.Name()))] {
			result = append(result, filepath.Join(fm.InputDir, entry.Name()))
		}
	}

	sort.Strings(result)
	return result, nil
}

// OutputPath returns the path of an output file name in the output directory.
func (fm *FileManager) OutputPath(fileName string) string {
	return filepath.Join(fm.OutputDir, fileName)
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves a rendered input into the archive directory. An
// earlier archive of the same name is kept: the new copy gets a numeric
// suffix ("report_1.md", "report_2.md", ...).
//
// PARAMETERS:
//   - filePath: The input document.
//
// RETURNS:
//   - Where the document now lives.
//   - An error if no archive directory is configured or the move fails.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if fm.ArchiveDir == "" {
		return "", fmt.Errorf("no archive directory configured")
	}

	target := fm.archiveTarget(filePath)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := moveFile(filePath, target); err != nil {
		return "", err
	}
	return target, nil
}

// archiveTarget picks a free path for filePath under the archive directory,
// inside a year/month/day subdirectory when UseTimestampSubdirs is set.
func (fm *FileManager) archiveTarget(filePath string) string {
	dir := fm.ArchiveDir
	if fm.UseTimestampSubdirs {
		now := time.Now()
		dir = filepath.Join(dir, now.Format("2006"), now.Format("01"), now.Format("02"))
	}

	name := filepath.Base(filePath)
	target := filepath.Join(dir, name)

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; FileExists(target); n++ {
		target = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
	}
	return target
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name from a format string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {original}  - Input file name without extension (param)
//               {ext}       - Output extension including the dot (param)
//   - params: A map of placeholder values. Any key becomes a placeholder.
//
// RETURNS:
//   - The generated file name. When params["ext"] is set the name is
//     guaranteed to end with it.
//
// EXAMPLE:
//   format: "{original}_{date}{ext}"
//   params: {"original": "report", "ext": ".html"}
//   output: "report_20240115.html"
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	// Build replacements.
	replacements := map[string]string{
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		replacements["{uuid}"] = uuid.New().String()
	}

	// Add custom params.
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	// Apply replacements in a stable order.
	placeholders := make([]string, 0, len(replacements))
	for placeholder := range replacements {
		placeholders = append(placeholders, placeholder)
	}
	sort.Strings(placeholders)

	result := format
	for _, placeholder := range placeholders {
		result = strings.ReplaceAll(result, placeholder, replacements[placeholder])
	}

	// Ensure the output extension.
	if ext := params["ext"]; ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}

	return result
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a render run.
type ProcessingSummary struct {
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int
	TotalBlocks     int
	RenderedBlocks  int
	SkippedBlocks   int
	ProcessedFiles  []ProcessedFileInfo
	FailedFilesList []FailedFileInfo
}

// ProcessedFileInfo contains information about a successfully processed file.
type ProcessedFileInfo struct {
	InputFile   string
	OutputFile  string
	ArchivePath string
	Blocks      int
	Rendered    int
	ProcessTime time.Duration
}

// FailedFileInfo contains information about a failed file.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

// WriteSummaryLog writes a render summary to
// <outputDir>/render_summary_<EndTime>.txt.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	path := filepath.Join(outputDir, "render_summary_"+summary.EndTime.Format("20060102_150405")+".txt")

	rule := strings.Repeat("=", 80)
	divider := strings.Repeat("-", 80)

	var b strings.Builder
	fmt.Fprintf(&b, "Time-Series Chart Renderer - Render Summary\n%s\n\n", rule)

	b.WriteString("Run Information:\n")
	writeFields(&b, 15, [][2]string{
		{"Start Time", summary.StartTime.Format(time.DateTime)},
		{"End Time", summary.EndTime.Format(time.DateTime)},
		{"Duration", summary.EndTime.Sub(summary.StartTime).String()},
	})

	b.WriteString("Statistics:\n")
	writeFields(&b, 15, [][2]string{
		{"Documents", strconv.Itoa(summary.TotalFiles)},
		{"Successful", strconv.Itoa(summary.SuccessfulFiles)},
		{"Failed", strconv.Itoa(summary.FailedFiles)},
		{"Chart Blocks", strconv.Itoa(summary.TotalBlocks)},
		{"Rendered", strconv.Itoa(summary.RenderedBlocks)},
		{"Unchanged", strconv.Itoa(summary.SkippedBlocks)},
	})

	if len(summary.ProcessedFiles) > 0 {
		fmt.Fprintf(&b, "Successful Files:\n%s\n", divider)
		for _, pf := range summary.ProcessedFiles {
			fields := [][2]string{
				{"Input", pf.InputFile},
				{"Output", pf.OutputFile},
			}
			if pf.ArchivePath != "" {
				fields = append(fields, [2]string{"Archived To", pf.ArchivePath})
			}
			fields = append(fields,
				[2]string{"Charts", fmt.Sprintf("%d of %d", pf.Rendered, pf.Blocks)},
				[2]string{"Process Time", pf.ProcessTime.String()},
			)
			writeFields(&b, 13, fields)
		}
	}

	if len(summary.FailedFilesList) > 0 {
		fmt.Fprintf(&b, "Failed Files:\n%s\n", divider)
		for _, ff := range summary.FailedFilesList {
			writeFields(&b, 6, [][2]string{
				{"File", ff.InputFile},
				{"Error", ff.ErrorMessage},
			})
		}
	}

	fmt.Fprintf(&b, "%s\nEnd of Summary\n", rule)

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write summary file: %w", err)
	}
	return path, nil
}

// writeFields writes indented "Label: value" lines with labels padded to
// width, followed by a blank line.
func writeFields(b *strings.Builder, width int, fields [][2]string) {
	for _, f := range fields {
		fmt.Fprintf(b, "  %-*s %s\n", width, f[0]+":", f[1])
	}
	b.WriteString("\n")
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// moveFile renames src to dst, copying and removing src when a rename is
// not possible (different filesystems).
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("failed to copy file to archive: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove original file: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// FileExists reports whether anything exists at path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
