package extractor

import (
	"strings"

	"github.com/nconklindev/peaksheet/internal/types"
)

// Segment splits lines into one block per header occurrence. A block runs
// from the line after its header up to the next occurrence, or to the end of
// the file, and keeps only lines containing delim.
//
// The label is the line directly above the header. It is nil for a header on
// the first line and for a header directly below another occurrence, so a
// label is never borrowed from a neighbouring section.
func Segment(lines []string, positions []int, delim string) []types.Block {
	blocks := make([]types.Block, 0, len(positions))
	for i, p := range positions {
		end := len(lines)
		if i+1 < len(positions) {
			end = positions[i+1]
		}

		var label *string
		if p > 0 && (i == 0 || positions[i-1] != p-1) {
			l := strings.TrimSpace(lines[p-1])
			label = &l
		}

		var kept []string
		for _, line := range lines[p+1 : end] {
			if strings.Contains(line, delim) {
				kept = append(kept, line)
			}
		}

		blocks = append(blocks, types.Block{
			Header: p,
			Label:  label,
			Start:  p + 1,
			End:    end,
			Lines:  kept,
		})
	}
	return blocks
}
