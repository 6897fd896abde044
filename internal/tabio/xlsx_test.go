package tabio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("data")
	require.NoError(t, err)

	for _, cells := range rows {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().Value = v
		}
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"x", "y", "names"},
		{"36.12", "28.21", "geography"},
		{"", "", "location"},
	})

	ds, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y", "names"}, ds.Names())
	assert.Equal(t, 2, ds.Len())

	x, _ := ds.Column("x")
	assert.Equal(t, []any{36.12, nil}, x.Values)

	names, _ := ds.Column("names")
	assert.Equal(t, []any{"geography", "location"}, names.Values)
}

func TestReadXLSX_SheetByName(t *testing.T) {
	path := writeWorkbook(t, [][]string{{"a"}, {"1"}})

	ds, err := ReadXLSX(path, XLSXOptions{SheetName: "data"})
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())

	_, err = ReadXLSX(path, XLSXOptions{SheetName: "missing"})
	assert.Error(t, err)
}

func TestReadXLSX_SheetIndexOutOfRange(t *testing.T) {
	path := writeWorkbook(t, [][]string{{"a"}})
	_, err := ReadXLSX(path, XLSXOptions{SheetIndex: 5})
	assert.Error(t, err)
}

func TestReadXLSX_MissingFile(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), XLSXOptions{})
	assert.Error(t, err)
}
