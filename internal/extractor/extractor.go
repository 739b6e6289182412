// Package extractor turns an LC-MS text export into rows. An export repeats
// one tab-delimited header above every analyte section, with the analyte
// name on the line above it and no end-of-section marker, so sections are
// found by locating every copy of the header.
package extractor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nconklindev/peaksheet/internal/types"
)

// ParseFile reads the export at path and extracts its rows.
func ParseFile(path string, opts Options) (*types.ParsedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	pf, err := ParseContent(filepath.Base(path), raw, opts)
	if err != nil {
		return nil, err
	}
	pf.Path = path
	pf.Size = int64(len(raw))
	return pf, nil
}

// ParseContent runs normalization, header detection, segmentation and row
// assembly over one file's content. name is recorded in the File column.
func ParseContent(name string, raw []byte, opts Options) (*types.ParsedFile, error) {
	opts = opts.withDefaults()
	log := opts.Logger.With("file", name)

	lines := NormalizeLines(raw)
	if len(lines) == 0 {
		return nil, types.ErrEmptyFile
	}

	header, err := DetectHeader(lines, Options{
		Tolerance: opts.Tolerance,
		Keywords:  opts.Keywords,
		Delimiter: opts.Delimiter,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}

	blocks := Segment(lines, header.Positions, opts.Delimiter)
	rows, overflow := AssembleRows(header, blocks, name, opts.Delimiter)
	if overflow > 0 {
		log.Debug("dropped fields beyond header width", "fields", overflow)
	}

	return &types.ParsedFile{
		Name:    name,
		Columns: types.UniqueColumns(header.Columns),
		Rows:    rows,
		Blocks:  len(blocks),
	}, nil
}
