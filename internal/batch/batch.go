// Package batch runs the extractor over many exports and combines the
// results into one table.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/nconklindev/peaksheet/internal/config"
	"github.com/nconklindev/peaksheet/internal/extractor"
	"github.com/nconklindev/peaksheet/internal/types"

	"golang.org/x/sync/errgroup"
)

type Options struct {
	Extract extractor.Options
	Workers int
	Logger  *slog.Logger
}

func OptionsFromConfig(cfg *config.Config, log *slog.Logger) Options {
	return Options{
		Extract: extractor.Options{
			Tolerance: cfg.Extract.Tolerance,
			Keywords:  cfg.Extract.Keywords,
			Delimiter: extractor.DefaultDelimiter,
			Logger:    log,
		},
		Workers: cfg.Batch.Workers,
		Logger:  log,
	}
}

// Progress is told how many files have finished out of total. It may be
// called from several workers at once.
type Progress func(done, total int)

type outcome struct {
	file *types.ParsedFile
	err  error
}

// Run parses every input on a bounded worker pool. A file that fails is
// recorded in Failures and logged; it never stops the others. Parsed files
// and the combined table keep input order.
//
// When no file parses, Run returns the result with its failures together
// with types.ErrNothingParsed.
func Run(ctx context.Context, inputs []string, opts Options, progress Progress) (*types.BatchResult, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]outcome, len(inputs))
	var done atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, path := range inputs {
		if ctx.Err() != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			pf, err := extractor.ParseFile(path, opts.Extract)
			results[i] = outcome{file: pf, err: err}
			if progress != nil {
				progress(int(done.Add(1)), len(inputs))
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &types.BatchResult{}
	for i, r := range results {
		if r.err != nil {
			log.Warn("skipping export", "file", inputs[i], "error", r.err)
			res.Failures = append(res.Failures, types.FileFailure{
				Path: inputs[i],
				Err:  &types.FileError{Path: inputs[i], Err: r.err},
			})
			continue
		}
		log.Info("parsed export", "file", inputs[i], "rows", len(r.file.Rows), "blocks", r.file.Blocks)
		res.Parsed = append(res.Parsed, *r.file)
	}

	if len(res.Parsed) == 0 {
		return res, fmt.Errorf("%w: %d of %d files failed", types.ErrNothingParsed, len(res.Failures), len(inputs))
	}
	res.Table = Combine(res.Parsed)
	return res, nil
}

// Combine concatenates the rows of files under the union of their columns in
// first-seen order, followed by the Analyte and File columns.
func Combine(files []types.ParsedFile) *types.Table {
	seen := map[string]bool{types.AnalyteColumn: true, types.FileColumn: true}
	table := &types.Table{}
	for _, f := range files {
		for _, c := range f.Columns {
			if !seen[c] {
				seen[c] = true
				table.Columns = append(table.Columns, c)
			}
		}
		table.Rows = append(table.Rows, f.Rows...)
	}
	table.Columns = append(table.Columns, types.AnalyteColumn, types.FileColumn)
	return table
}
