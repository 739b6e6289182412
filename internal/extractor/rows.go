package extractor

import (
	"math"
	"strconv"
	"strings"

	"github.com/nconklindev/peaksheet/internal/types"
)

// ParseCell types a single field. Empty fields are Missing, fields that parse
// as finite numbers are Number, everything else (flag codes, vial ids, "N/F")
// is kept as Text.
func ParseCell(s string) types.Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return types.Cell{Kind: types.Missing}
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return types.Cell{Kind: types.Number, Raw: s, Num: v}
	}
	return types.Cell{Kind: types.Text, Raw: s}
}

// AssembleRows turns the lines of every block into rows under the header's
// columns, stamped with the block label and the file's base name. Fields
// missing at the end of a line become Missing cells. The second return value
// counts fields beyond the header width, which are dropped.
func AssembleRows(header *types.Header, blocks []types.Block, file, delim string) ([]types.Row, int) {
	columns := types.UniqueColumns(header.Columns)

	var rows []types.Row
	overflow := 0
	for _, b := range blocks {
		for _, line := range b.Lines {
			fields := strings.Split(line, delim)
			if len(fields) > len(columns) {
				overflow += len(fields) - len(columns)
			}

			cells := make(map[string]types.Cell, len(columns))
			for j, col := range columns {
				if j < len(fields) {
					cells[col] = ParseCell(fields[j])
				} else {
					cells[col] = types.Cell{Kind: types.Missing}
				}
			}

			rows = append(rows, types.Row{
				Cells:   cells,
				Analyte: b.Label,
				File:    file,
			})
		}
	}
	return rows, overflow
}
