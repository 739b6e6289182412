package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nconklindev/peaksheet/internal/types"
)

// keywordPattern matches any keyword as a standalone token.
func keywordPattern(keywords []string) *regexp.Regexp {
	quoted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			quoted = append(quoted, regexp.QuoteMeta(k))
		}
	}
	if len(quoted) == 0 {
		return keywordPattern(DefaultKeywords)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// HeaderCandidates returns the lines that repeat verbatim, contain the
// delimiter and mention at least one keyword, in order of first appearance.
// The export format repeats its header above every analyte section, so a
// repeated line that looks like column names is a header.
func HeaderCandidates(lines []string, delim string, keywords []string) []string {
	counts := make(map[string]int, len(lines))
	for _, line := range lines {
		counts[line]++
	}

	kw := keywordPattern(keywords)
	seen := make(map[string]bool)
	var candidates []string
	for _, line := range lines {
		if counts[line] < 2 || seen[line] {
			continue
		}
		seen[line] = true
		if strings.Contains(line, delim) && kw.MatchString(line) {
			candidates = append(candidates, line)
		}
	}
	return candidates
}

// FindOccurrences returns every position whose line is within tolerance of
// header, in ascending order.
func FindOccurrences(lines []string, header string, tolerance float64) []int {
	var positions []int
	for i, line := range lines {
		if line == header || WithinTolerance(line, header, tolerance) {
			positions = append(positions, i)
		}
	}
	return positions
}

// DetectHeader picks the canonical header of a file and locates all of its
// occurrences, including truncated or corrupted copies. The first candidate
// defines the column schema for the whole file.
func DetectHeader(lines []string, opts Options) (*types.Header, error) {
	opts = opts.withDefaults()

	candidates := HeaderCandidates(lines, opts.Delimiter, opts.Keywords)
	if len(candidates) == 0 {
		return nil, types.ErrHeaderNotFound
	}
	text := candidates[0]

	positions := FindOccurrences(lines, text, opts.Tolerance)
	if len(positions) == 0 {
		return nil, fmt.Errorf("%w: %q", types.ErrHeaderMatch, text)
	}

	for _, p := range positions {
		if lines[p] != text {
			opts.Logger.Debug("approximate header occurrence",
				"position", p,
				"similarity", Similarity(lines[p], text))
		}
	}

	return &types.Header{
		Text:      text,
		Columns:   headerColumns(text, opts.Delimiter),
		Positions: positions,
	}, nil
}

// headerColumns splits a header line into column names. A blank name gets
// its 1-based position, so "Name\t\tRT" yields Name, Column2, RT.
func headerColumns(text, delim string) []string {
	columns := strings.Split(text, delim)
	for i, c := range columns {
		if c = strings.TrimSpace(c); c == "" {
			c = fmt.Sprintf("Column%d", i+1)
		}
		columns[i] = c
	}
	return columns
}
