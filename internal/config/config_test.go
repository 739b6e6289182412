package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.10, cfg.Extract.Tolerance)
	assert.Equal(t, []string{"RT", "Area", "Name"}, cfg.Extract.Keywords)
	assert.Equal(t, ".txt", cfg.Batch.Extension)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, "xlsx", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("PEAKSHEET_EXTRACT_TOLERANCE", "0.2")
	t.Setenv("PEAKSHEET_BATCH_WORKERS", "2")
	t.Setenv("PEAKSHEET_EXTRACT_KEYWORDS", "RT,Peak")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.2, cfg.Extract.Tolerance)
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.Equal(t, []string{"RT", "Peak"}, cfg.Extract.Keywords)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peaksheet.yaml")
	data := []byte(`
extract:
  tolerance: 0.05
batch:
  extension: TXT
output:
  format: CSV
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.Extract.Tolerance)
	assert.Equal(t, ".txt", cfg.Batch.Extension)
	assert.Equal(t, "csv", cfg.Output.Format)
	// Untouched keys keep their defaults.
	assert.Equal(t, 4, cfg.Batch.Workers)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults", func(*Config) {}, false},
		{"Zero tolerance", func(c *Config) { c.Extract.Tolerance = 0 }, false},
		{"Negative tolerance", func(c *Config) { c.Extract.Tolerance = -0.1 }, true},
		{"Tolerance of one", func(c *Config) { c.Extract.Tolerance = 1 }, true},
		{"Blank keywords", func(c *Config) { c.Extract.Keywords = []string{" ", ""} }, true},
		{"No workers", func(c *Config) { c.Batch.Workers = 0 }, true},
		{"Empty extension", func(c *Config) { c.Batch.Extension = "" }, true},
		{"Unknown format", func(c *Config) { c.Output.Format = "parquet" }, true},
		{"Output path matches format", func(c *Config) { c.Output.Path = "out/combined.XLSX" }, false},
		{"Output path without extension", func(c *Config) { c.Output.Path = "out/combined" }, true},
		{"Output path format mismatch", func(c *Config) { c.Output.Path = "combined.csv" }, true},
		{"Unknown level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"Unknown log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Default()
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, "csv", FormatForPath("a/b.CSV"))
	assert.Equal(t, "xlsx", FormatForPath("b.xlsx"))
	assert.Equal(t, "", FormatForPath("b"))
	assert.Equal(t, "", FormatForPath("b.txt"))
}
