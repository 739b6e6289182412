package extractor

import (
	"math"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// MaxDistance is the largest edit distance from header that still counts as
// a match under tolerance.
func MaxDistance(header string, tolerance float64) int {
	return int(math.Floor(tolerance * float64(utf8.RuneCountInString(header))))
}

// WithinTolerance reports whether line is an approximate copy of header.
func WithinTolerance(line, header string, tolerance float64) bool {
	limit := MaxDistance(header, tolerance)
	diff := utf8.RuneCountInString(line) - utf8.RuneCountInString(header)
	if diff < 0 {
		diff = -diff
	}
	// The length difference is a lower bound on the distance.
	if diff > limit {
		return false
	}
	return levenshtein.ComputeDistance(line, header) <= limit
}

// Similarity is the normalized Levenshtein ratio of a and b in [0, 1].
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	denom := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if denom == 0 {
		return 1
	}
	return math.Max(0, 1-float64(levenshtein.ComputeDistance(a, b))/float64(denom))
}
