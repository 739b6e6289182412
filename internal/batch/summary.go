package batch

import "github.com/nconklindev/peaksheet/internal/types"

type Summary struct {
	Files    int
	Parsed   int
	Failed   int
	Rows     int
	Blocks   int
	Analytes int
	Bytes    int64
}

// Summarize counts what a batch produced. Analytes counts distinct labels
// across all parsed files; unlabeled blocks are not counted.
func Summarize(res *types.BatchResult) Summary {
	if res == nil {
		return Summary{}
	}

	s := Summary{
		Parsed: len(res.Parsed),
		Failed: len(res.Failures),
	}
	s.Files = s.Parsed + s.Failed

	analytes := make(map[string]bool)
	for _, pf := range res.Parsed {
		s.Rows += len(pf.Rows)
		s.Blocks += pf.Blocks
		s.Bytes += pf.Size
		for _, r := range pf.Rows {
			if r.Analyte != nil {
				analytes[*r.Analyte] = true
			}
		}
	}
	s.Analytes = len(analytes)
	return s
}
