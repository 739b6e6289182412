package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/nconklindev/peaksheet/internal/batch"
	"github.com/nconklindev/peaksheet/internal/config"
	"github.com/nconklindev/peaksheet/internal/logging"
	"github.com/nconklindev/peaksheet/internal/types"
	"github.com/nconklindev/peaksheet/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("peaksheet", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		flagVersion   bool
		flagConfig    string
		flagOutput    string
		flagFormat    string
		flagWorkers   int
		flagTolerance float64
		flagLevel     string
	)
	fs.BoolVar(&flagVersion, "version", false, "print version and exit")
	fs.BoolVar(&flagVersion, "v", false, "print version and exit (shorthand)")
	fs.StringVar(&flagConfig, "config", "", "YAML config file")
	fs.StringVar(&flagOutput, "o", "", "output file (default <input>_combined.<format>)")
	fs.StringVar(&flagFormat, "format", "", "output format: xlsx or csv")
	fs.IntVar(&flagWorkers, "workers", 0, "files parsed in parallel")
	fs.Float64Var(&flagTolerance, "tolerance", -1, "header match tolerance as a fraction of header length")
	fs.StringVar(&flagLevel, "log-level", "", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if flagVersion {
		fmt.Fprintf(stdout, "peaksheet %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
		return 0
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if flagOutput != "" {
		cfg.Output.Path = flagOutput
		if f := config.FormatForPath(flagOutput); f != "" && flagFormat == "" {
			cfg.Output.Format = f
		}
	}
	if flagFormat != "" {
		cfg.Output.Format = strings.ToLower(flagFormat)
	}
	if flagWorkers > 0 {
		cfg.Batch.Workers = flagWorkers
	}
	if flagTolerance >= 0 {
		cfg.Extract.Tolerance = flagTolerance
	}
	if flagLevel != "" {
		cfg.Logging.Level = flagLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if fs.NArg() == 0 {
		return runTUI(cfg, stderr)
	}
	return runHeadless(fs.Arg(0), cfg, stdout, stderr)
}

func runHeadless(input string, cfg *config.Config, stdout, stderr io.Writer) int {
	log := logging.New(cfg.Logging, stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := batch.Process(ctx, input, cfg, log, nil)
	if report != nil && report.Result != nil {
		for _, f := range report.Result.Failures {
			fmt.Fprintf(stdout, "skipped %s: %v\n", filepath.Base(f.Path), errors.Unwrap(f.Err))
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}

	sum := report.Summary
	fmt.Fprintf(stdout, "parsed %d of %d files (%s), %s rows, %d analytes\n",
		sum.Parsed, sum.Files, humanize.Bytes(uint64(sum.Bytes)), humanize.Comma(int64(sum.Rows)), sum.Analytes)
	fmt.Fprintf(stdout, "wrote %s\n", report.Output)
	return 0
}

func runTUI(cfg *config.Config, stderr io.Writer) int {
	logFile, err := logging.OpenFile(cfg.Logging.File)
	var log *slog.Logger
	if err != nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	} else {
		defer logFile.Close()
		log = logging.New(cfg.Logging, logFile)
	}

	p := tea.NewProgram(ui.InitialModel(cfg, log), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// exitCode reports a batch where every file failed as 3, apart from path
// and write errors.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, types.ErrNothingParsed):
		return 3
	default:
		return 1
	}
}
