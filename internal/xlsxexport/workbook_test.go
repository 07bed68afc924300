package xlsxexport

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/timeseries-chart/internal/config"
	"github.com/ginjaninja78/timeseries-chart/internal/csvparser"
	"github.com/ginjaninja78/timeseries-chart/internal/dateformat"
)

func parse(t *testing.T, raw, delimiter string) *csvparser.Table {
	t.Helper()
	table, err := csvparser.Parse(raw, config.CSVSettings{Delimiter: delimiter})
	require.NoError(t, err)
	return table
}

func TestExport_WritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	table := parse(t, "date,sales,costs\n2020-01-01,10,4\n2020-01-02,12.5,6", ",")

	require.NoError(t, Export(table, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"date", "sales", "costs"},
		{"2020-01-01", "10", "4"},
		{"2020-01-02", "12.5", "6"},
	}, rows)
}

func TestExport_RoundTripsThroughReadBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unix.xlsx")
	table := parse(t, "ts;v\n1577836800;1\n1577923200;2", ";")
	require.Equal(t, dateformat.KindUnixSeconds, table.Format)

	require.NoError(t, Export(table, path))

	raw, err := ReadBlock(path, ';')
	require.NoError(t, err)
	assert.Equal(t, "ts;v\n1577836800;1\n1577923200;2", raw)

	again := parse(t, raw, ";")
	assert.Equal(t, table.Format, again.Format)
	assert.Equal(t, len(table.Rows), len(again.Rows))
}

func TestReadBlock_SkipsEmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "x"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "y"))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", 1))
	require.NoError(t, f.SetCellValue("Sheet1", "B3", 2))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	raw, err := ReadBlock(path, ',')
	require.NoError(t, err)
	assert.Equal(t, "x,y\n1,2", raw)
}

func TestReadBlock_PadsTrailingBlankCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blanks.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"date", "a", "b"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"2020-01-01", 1, 2}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"2020-01-02", 3}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	raw, err := ReadBlock(path, ',')
	require.NoError(t, err)
	assert.Equal(t, "date,a,b\n2020-01-01,1,2\n2020-01-02,3,", raw)

	table := parse(t, raw, ",")
	assert.Zero(t, table.Discarded)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []float64{3, 0}, table.Rows[1].Values)
}

func TestReadBlock_MissingFile(t *testing.T) {
	_, err := ReadBlock(filepath.Join(t.TempDir(), "missing.xlsx"), ',')
	assert.Error(t, err)
}
