package extractor

import (
	"io"
	"log/slog"
)

const (
	// DefaultTolerance is the share of the header's length, in runes, that a
	// line may differ by (Levenshtein distance) and still count as a header
	// occurrence.
	DefaultTolerance = 0.10
	DefaultDelimiter = "\t"
)

// DefaultKeywords are the column names that mark a repeated tab-delimited
// line as a header rather than a repeated data row.
var DefaultKeywords = []string{"RT", "Area", "Name"}

type Options struct {
	Tolerance float64
	Keywords  []string
	Delimiter string
	Logger    *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Tolerance: DefaultTolerance,
		Keywords:  append([]string(nil), DefaultKeywords...),
		Delimiter: DefaultDelimiter,
	}
}

// withDefaults fills zero fields so callers may pass a partial Options.
func (o Options) withDefaults() Options {
	if o.Delimiter == "" {
		o.Delimiter = DefaultDelimiter
	}
	if len(o.Keywords) == 0 {
		o.Keywords = DefaultKeywords
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
