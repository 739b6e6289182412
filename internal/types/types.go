package types

import "strconv"

// Provenance columns appended to every combined table.
const (
	AnalyteColumn = "Analyte"
	FileColumn    = "File"
)

// Header is the canonical header of one export file and every line position
// where it recurs.
type Header struct {
	Text      string
	Columns   []string
	Positions []int
}

// Block is the run of tab-delimited lines owned by one header occurrence.
// Start and End form the half-open line range following the header line.
type Block struct {
	Header int
	Label  *string
	Start  int
	End    int
	Lines  []string
}

type CellKind int

const (
	Missing CellKind = iota
	Text
	Number
)

func (k CellKind) String() string {
	switch k {
	case Text:
		return "text"
	case Number:
		return "number"
	default:
		return "missing"
	}
}

// Cell is a loosely typed table value. Raw keeps the field exactly as it
// appeared in the export, Num is only meaningful for Number cells.
type Cell struct {
	Kind CellKind
	Raw  string
	Num  float64
}

func (c Cell) String() string {
	if c.Kind == Missing {
		return ""
	}
	return c.Raw
}

// Float returns the numeric value of the cell and whether it has one.
func (c Cell) Float() (float64, bool) {
	if c.Kind != Number {
		return 0, false
	}
	return c.Num, true
}

type Row struct {
	Cells   map[string]Cell
	Analyte *string
	File    string
}

// Value returns the cell stored under column, including the provenance
// columns. Unknown columns are Missing.
func (r Row) Value(column string) Cell {
	switch column {
	case AnalyteColumn:
		if r.Analyte == nil {
			return Cell{Kind: Missing}
		}
		return Cell{Kind: Text, Raw: *r.Analyte}
	case FileColumn:
		return Cell{Kind: Text, Raw: r.File}
	}
	if c, ok := r.Cells[column]; ok {
		return c
	}
	return Cell{Kind: Missing}
}

type ParsedFile struct {
	Name    string
	Path    string
	Size    int64
	Columns []string
	Rows    []Row
	Blocks  int
}

// Table is the combined result of a batch.
type Table struct {
	Columns []string
	Rows    []Row
}

type FileFailure struct {
	Path string
	Err  error
}

type BatchResult struct {
	Table    *Table
	Parsed   []ParsedFile
	Failures []FileFailure
}

// UniqueColumns keeps header order but suffixes repeated names so that every
// column stays addressable: Area, Area_2, Area_3.
func UniqueColumns(cols []string) []string {
	seen := make(map[string]int, len(cols))
	out := make([]string, len(cols))
	for i, c := range cols {
		seen[c]++
		if n := seen[c]; n > 1 {
			out[i] = c + "_" + strconv.Itoa(n)
			continue
		}
		out[i] = c
	}
	return out
}
