// =============================================================================
// Time-Series Chart Renderer - Block Row Parser
// =============================================================================
//
// This module turns the raw text of a fenced block into validated rows. It is
// the only place where block content is validated; everything downstream
// assumes well-formed rows.
//
// PARSING PROCESS:
//   1. Split into trimmed, non-empty lines (at least a header and one row)
//   2. Split the header on the configured delimiter (at least 2 fields)
//   3. Split data rows the same way, discarding rows with the wrong field count
//   4. Detect the key-column format over the remaining rows
//   5. Parse every key and every value cell; any failure aborts the block
//
// The parser fails fast: a block either yields every row or none, so a chart
// is never drawn from a mixture of good and bad rows.
//
// =============================================================================

package csvparser

import (
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ginjaninja78/timeseries-chart/internal/config"
	"github.com/ginjaninja78/timeseries-chart/internal/dateformat"
	"github.com/ginjaninja78/timeseries-chart/internal/types"
)

// =============================================================================
// TABLE STRUCTURE
// =============================================================================

// Table represents a parsed block.
type Table struct {
	// Headers contains every header field, key column first.
	Headers []string

	// Columns contains the value-column names (Headers without the key).
	Columns []string

	// Rows contains the parsed data rows in input order.
	Rows []types.ParsedRow

	// Format is the detected key-column format.
	Format dateformat.Kind

	// Discarded is the number of data lines dropped for having the wrong
	// number of fields.
	Discarded int
}

// KeyColumn returns the header of the key column.
func (t *Table) KeyColumn() string {
	return t.Headers[0]
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads block text and returns the parsed table.
//
// PARAMETERS:
//   - raw: The text content of the block.
//   - settings: The delimiter settings.
//
// RETURNS:
//   - A pointer to the Table.
//   - A *types.BlockError describing why the block cannot be charted.
func Parse(raw string, settings config.CSVSettings) (*Table, error) {
	lines := splitLines(raw)
	if len(lines) < 2 {
		return nil, types.Structural("need a header and at least one data row, got %d line(s)", len(lines))
	}

	records := readRecords(lines, settings)

	headers := trimFields(records[0])
	if len(headers) < 2 {
		return nil, types.Structural("need a key column and at least one value column, got %d column(s)", len(headers))
	}

	// Keep only rows with the header's field count.
	var rows [][]string
	var lineNumbers []int
	discarded := 0
	for i, record := range records[1:] {
		if len(record) != len(headers) {
			discarded++
			continue
		}
		rows = append(rows, trimFields(record))
		lineNumbers = append(lineNumbers, i+2)
	}

	if len(rows) == 0 {
		return nil, types.Structural("no data row has %d fields", len(headers))
	}

	// Detect the key-column format.
	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = row[0]
	}

	format, ok := dateformat.Detect(keys)
	if !ok {
		return nil, types.Detection("no format matches every value of column %q", headers[0])
	}

	table := &Table{
		Headers:   headers,
		Columns:   headers[1:],
		Rows:      make([]types.ParsedRow, 0, len(rows)),
		Format:    format,
		Discarded: discarded,
	}

	for i, row := range rows {
		parsed, err := parseRow(row, headers, format, lineNumbers[i])
		if err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, parsed)
	}

	return table, nil
}

// parseRow converts one row of trimmed fields.
func parseRow(row, headers []string, format dateformat.Kind, line int) (types.ParsedRow, error) {
	x, err := format.Parse(row[0])
	if err != nil {
		return types.ParsedRow{}, types.ValueParse(line, err, "key %q is not a valid %s", row[0], format)
	}
	if format.IsDate() && !x.IsTime() {
		return types.ParsedRow{}, types.ValueParse(line, nil, "key %q is not a date", row[0])
	}

	values := make([]float64, len(row)-1)
	for col := 1; col < len(row); col++ {
		n, err := parseNumber(row[col])
		if err != nil {
			return types.ParsedRow{}, types.ValueParse(line, err, "column %q", headers[col])
		}
		values[col-1] = n
	}

	return types.ParsedRow{X: x, Values: values, Line: line}, nil
}

// parseNumber coerces a value cell to a finite number. An empty cell is 0.
func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("value %q is not finite", s)
	}
	return n, nil
}

// =============================================================================
// FIELD SPLITTING
// =============================================================================

// splitLines returns the trimmed, non-empty lines of raw.
func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// readRecords splits every line into fields. Lines are split independently,
// so a quote never spans a line break.
func readRecords(lines []string, settings config.CSVSettings) [][]string {
	records := make([][]string, len(lines))
	for i, line := range lines {
		records[i] = splitFields(line, settings)
	}
	return records
}

// splitFields splits one line. A line that is not well-formed CSV, such as
// one with an unclosed quote, is split on the bare delimiter instead.
func splitFields(line string, settings config.CSVSettings) []string {
	reader := csv.NewReader(strings.NewReader(line))
	configureReader(reader, settings)

	record, err := reader.Read()
	if err != nil {
		return strings.Split(line, string(Delimiter(settings)))
	}
	return record
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	reader.Comma = Delimiter(settings)

	// Rows with the wrong field count are discarded later, not rejected here.
	reader.FieldsPerRecord = -1

	// Trim leading space from fields.
	reader.TrimLeadingSpace = true
}

// Delimiter resolves the configured delimiter, including its named aliases.
func Delimiter(settings config.CSVSettings) rune {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	default:
		if len(settings.Delimiter) > 0 {
			return rune(settings.Delimiter[0])
		}
		return ','
	}
}

// trimFields trims surrounding whitespace from every field.
func trimFields(fields []string) []string {
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = strings.TrimSpace(field)
	}
	return out
}
