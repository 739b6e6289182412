package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/peaksheet/internal/types"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName = "Results"

	minColWidth = 10
	maxColWidth = 40
)

// OutputPath derives the combined table path for an input. A file input
// becomes <stem>_combined.<format> beside it, a directory input gets
// <dir>/<dirname>_combined.<format>.
func OutputPath(input, format string) string {
	input = filepath.Clean(input)
	ext := "." + strings.ToLower(format)

	if info, err := os.Stat(input); err == nil && info.IsDir() {
		return filepath.Join(input, filepath.Base(input)+"_combined"+ext)
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "_combined" + ext
}

// Write saves table to path, choosing the format from the extension.
func Write(table *types.Table, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return WriteCSV(table, path)
	case ".xlsx":
		return WriteXLSX(table, path)
	default:
		return fmt.Errorf("unsupported output type: %s", filepath.Ext(path))
	}
}

// WriteCSV writes the table with a header row. Missing cells are empty and
// values keep their original text.
func WriteCSV(table *types.Table, path string) error {
	outFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer outFile.Close()

	records := make([][]string, 0, len(table.Rows)+1)
	records = append(records, table.Columns)
	for _, row := range table.Rows {
		record := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			record[i] = row.Value(col).String()
		}
		records = append(records, record)
	}

	writer := csv.NewWriter(outFile)
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	return outFile.Close()
}

// WriteXLSX streams the table into a single sheet with a bold, frozen header
// row. Number cells are stored as numbers so they stay usable in formulas.
func WriteXLSX(table *types.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for i, col := range table.Columns {
		width := float64(min(max(len(col)+2, minColWidth), maxColWidth))
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return err
		}
	}

	if err := sw.SetPanes(&excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = excelize.Cell{StyleID: bold, Value: col}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for rowIdx, row := range table.Rows {
		values := make([]interface{}, len(table.Columns))
		for i, col := range table.Columns {
			c := row.Value(col)
			switch c.Kind {
			case types.Number:
				values[i] = c.Num
			case types.Text:
				values[i] = c.Raw
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}
