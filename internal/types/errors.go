package types

import (
	"errors"
	"fmt"
)

// Per-file errors. These never abort a batch.
var (
	ErrEmptyFile      = errors.New("no usable lines after normalization")
	ErrHeaderNotFound = errors.New("no header found")
	ErrHeaderMatch    = errors.New("no fuzzy match for header")
)

// Input resolution and batch outcome errors.
var (
	ErrPathNotFound    = errors.New("path not found")
	ErrNoMatchingFiles = errors.New("no matching files")
	ErrNothingParsed   = errors.New("no file parsed successfully")
)

// FileError ties a per-file error to the file that produced it.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
