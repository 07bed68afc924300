// =============================================================================
// Time-Series Chart Renderer - XLSX Workbook Support
// =============================================================================
//
// This module moves chart data between blocks and XLSX workbooks:
//   - Export writes a parsed table to a single-sheet workbook
//   - ReadBlock turns the first sheet of a workbook back into block text
//
// SHEET LAYOUT:
//
//   | Column A   | Column B | Column C | ...
//   |------------|----------|----------|
//   | date       | sales    | costs    |   <- header row
//   | 2020-01-01 | 10       | 4        |   <- one row per data row
//
//   Keys are written as text in the block's own format so that a workbook
//   read back with ReadBlock detects the same format. Values are numbers.
//
// =============================================================================

package xlsxexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/timeseries-chart/internal/csvparser"
)

// SheetName is the name of the sheet Export writes.
const SheetName = "Data"

// =============================================================================
// EXPORT
// =============================================================================

// Export writes a table to an XLSX workbook.
//
// PARAMETERS:
//   - table: A parsed block.
//   - path: The workbook to create. An existing file is overwritten.
//
// RETURNS:
//   - An error if a cell cannot be set or the file cannot be saved.
func Export(table *csvparser.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range table.Rows {
		cells := make([]interface{}, 0, len(row.Values)+1)
		cells = append(cells, table.Format.Format(row.X))
		for _, v := range row.Values {
			cells = append(cells, v)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// =============================================================================
// IMPORT
// =============================================================================

// ReadBlock reads the first sheet of a workbook as block text.
//
// PARAMETERS:
//   - path: The workbook to read.
//   - delimiter: The field delimiter of the returned text.
//
// RETURNS:
//   - The rows of the sheet, one line each, padded to the width of the
//     first row. Empty rows are skipped.
//   - An error if the workbook cannot be opened or has no sheets.
func ReadBlock(path string, delimiter rune) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return "", fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return "", fmt.Errorf("failed to read rows: %w", err)
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	writer.Comma = delimiter

	// GetRows drops trailing empty cells; pad rows back to the header width.
	width := -1
	for _, row := range rows {
		if isRowEmpty(row) {
			continue
		}
		if width < 0 {
			width = len(row)
		}
		for len(row) < width {
			row = append(row, "")
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return strings.TrimRight(buffer.String(), "\n"), nil
}

// isRowEmpty checks if all cells in a row are empty.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
