package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const EnvPrefix = "PEAKSHEET"

// Config represents the complete application configuration
type Config struct {
	Extract ExtractConfig `yaml:"extract" envconfig:"EXTRACT"`
	Batch   BatchConfig   `yaml:"batch" envconfig:"BATCH"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// ExtractConfig tunes header detection
type ExtractConfig struct {
	Tolerance float64  `yaml:"tolerance" envconfig:"TOLERANCE" default:"0.10"`
	Keywords  []string `yaml:"keywords" envconfig:"KEYWORDS" default:"RT,Area,Name"`
}

// BatchConfig controls input resolution and the worker pool
type BatchConfig struct {
	Extension string `yaml:"extension" envconfig:"EXTENSION" default:".txt"`
	Workers   int    `yaml:"workers" envconfig:"WORKERS" default:"4"`
}

// OutputConfig selects the combined table format
type OutputConfig struct {
	Format string `yaml:"format" envconfig:"FORMAT" default:"xlsx"`
	Path   string `yaml:"path" envconfig:"DESTINATION"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text"`
	File   string `yaml:"file" envconfig:"FILE" default:"peaksheet.log"`
}

// Default returns the configuration built from struct defaults and the
// environment only.
func Default() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	return &cfg, nil
}

// Load reads defaults and environment variables, then overlays the YAML file
// at path when one is given.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Batch.Extension = normalizeExtension(cfg.Batch.Extension)
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot use.
func (c *Config) Validate() error {
	if c.Extract.Tolerance < 0 || c.Extract.Tolerance >= 1 {
		return fmt.Errorf("extract.tolerance must be in [0, 1), got %v", c.Extract.Tolerance)
	}

	keywords := 0
	for _, k := range c.Extract.Keywords {
		if strings.TrimSpace(k) != "" {
			keywords++
		}
	}
	if keywords == 0 {
		return fmt.Errorf("extract.keywords must name at least one column")
	}

	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be positive, got %d", c.Batch.Workers)
	}
	if c.Batch.Extension == "" || c.Batch.Extension == "." {
		return fmt.Errorf("batch.extension must not be empty")
	}

	switch c.Output.Format {
	case "xlsx", "csv":
	default:
		return fmt.Errorf("output.format must be xlsx or csv, got %q", c.Output.Format)
	}
	if c.Output.Path != "" {
		if ext := strings.ToLower(filepath.Ext(c.Output.Path)); ext != "."+c.Output.Format {
			return fmt.Errorf("output.path %q must end in .%s to match output.format", c.Output.Path, c.Output.Format)
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// FormatForPath returns the output format implied by path's extension, or ""
// when the extension is not a supported format.
func FormatForPath(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".csv":
		return ext[1:]
	}
	return ""
}
