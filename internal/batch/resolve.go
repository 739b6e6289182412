package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/peaksheet/internal/types"
)

// ResolveInputs expands path into the export files to process. A file must
// carry ext (compared case-insensitively). A directory yields every matching
// file directly inside it, without descending into subdirectories, sorted by
// name.
func ResolveInputs(path, ext string) ([]string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", types.ErrPathNotFound, path)
	}
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !hasExt(path, ext) {
			return nil, fmt.Errorf("%w: %s is not a %s file", types.ErrNoMatchingFiles, path, ext)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !hasExt(entry.Name(), ext) {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no %s files in %s", types.ErrNoMatchingFiles, ext, path)
	}
	return files, nil
}

func hasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}
