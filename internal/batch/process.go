package batch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nconklindev/peaksheet/internal/config"
	"github.com/nconklindev/peaksheet/internal/export"
	"github.com/nconklindev/peaksheet/internal/types"
)

// Report describes one end-to-end run over an input path.
type Report struct {
	Input   string
	Output  string
	Files   []string
	Result  *types.BatchResult
	Summary Summary
}

// Process resolves input, parses every export and writes the combined table.
// Path errors abort before any file is read. When nothing parsed, the report
// is returned with types.ErrNothingParsed and no output is written.
func Process(ctx context.Context, input string, cfg *config.Config, log *slog.Logger, progress Progress) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	files, err := ResolveInputs(input, cfg.Batch.Extension)
	if err != nil {
		return nil, err
	}

	report := &Report{Input: input, Files: files}
	res, err := Run(ctx, files, OptionsFromConfig(cfg, log), progress)
	report.Result = res
	report.Summary = Summarize(res)
	if err != nil {
		return report, err
	}

	report.Output = cfg.Output.Path
	if report.Output == "" {
		report.Output = export.OutputPath(input, cfg.Output.Format)
	}
	if err := export.Write(res.Table, report.Output); err != nil {
		return report, fmt.Errorf("failed to write %s: %w", report.Output, err)
	}
	if log != nil {
		log.Info("wrote combined table", "output", report.Output, "rows", len(res.Table.Rows))
	}
	return report, nil
}
