package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/ginjaninja78/timeseries-chart/pkg/utils"
)

// summaryStyles holds the styles of the render summary. The zero value
// prints plain text.
type summaryStyles struct {
	title   lipgloss.Style
	ok      lipgloss.Style
	failed  lipgloss.Style
	muted   lipgloss.Style
	box     lipgloss.Style
	enabled bool
}

func newSummaryStyles(w io.Writer) summaryStyles {
	if !isTTYWriter(w) {
		return summaryStyles{}
	}

	return summaryStyles{
		title:   lipgloss.NewStyle().Bold(true),
		ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		box:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		enabled: true,
	}
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (s summaryStyles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

// printSummary writes one line per document followed by the run totals.
func printSummary(w io.Writer, summary utils.ProcessingSummary) {
	styles := newSummaryStyles(w)

	for _, pf := range summary.ProcessedFiles {
		target := pf.OutputFile
		if target == "" {
			target = styles.render(styles.muted, "(dry run)")
		}
		fmt.Fprintf(w, "  %s %s -> %s %s\n",
			styles.render(styles.ok, "✓"),
			filepath.Base(pf.InputFile),
			target,
			styles.render(styles.muted, fmt.Sprintf("[%d/%d charts]", pf.Rendered, pf.Blocks)))
	}
	for _, ff := range summary.FailedFilesList {
		fmt.Fprintf(w, "  %s %s: %s\n",
			styles.render(styles.failed, "✗"),
			filepath.Base(ff.InputFile),
			ff.ErrorMessage)
	}

	lines := []string{
		styles.render(styles.title, "Render Complete"),
		fmt.Sprintf("Documents:      %d", summary.TotalFiles),
		fmt.Sprintf("Successful:     %d", summary.SuccessfulFiles),
		fmt.Sprintf("Failed:         %d", summary.FailedFiles),
		fmt.Sprintf("Charts:         %d of %d", summary.RenderedBlocks, summary.TotalBlocks),
		fmt.Sprintf("Time elapsed:   %s", summary.EndTime.Sub(summary.StartTime).Round(time.Millisecond)),
	}
	if summary.FailedFiles > 0 {
		lines[3] = styles.render(styles.failed, lines[3])
	}

	body := strings.Join(lines, "\n")
	if styles.enabled {
		body = styles.box.Render(body)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, body)
}
