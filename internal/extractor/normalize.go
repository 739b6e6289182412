package extractor

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeLines decodes raw export content and returns its non-blank lines,
// trimmed, in file order. A UTF-8 or UTF-16 byte order mark selects the
// decoding; without one the content is read as UTF-8 and ill-formed bytes
// become U+FFFD. Positions in the result refer to the filtered sequence.
func NormalizeLines(raw []byte) []string {
	t := transform.Chain(unicode.BOMOverride(runes.ReplaceIllFormed()), norm.NFC)
	decoded, _, err := transform.Bytes(t, raw)
	if err != nil {
		decoded = []byte(strings.ToValidUTF8(string(raw), "\uFFFD"))
	}

	text := strings.ReplaceAll(string(decoded), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "\uFEFF", ""))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
