// Package config loads framescan configuration. Defaults are explicit
// values threaded into each entry point; there is no process-wide mutable
// configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/harrison/framescan/internal/filelock"
)

// DefaultFileName is the per-user config file name, looked up in the home
// directory.
const DefaultFileName = ".framescan.yaml"

// Config represents framescan configuration options.
type Config struct {
	// Recursive enables descending into child directories while scanning.
	Recursive bool `yaml:"recursive"`

	// IgnorePadding groups files regardless of frame padding. When false,
	// differently padded files form separate sequences.
	IgnorePadding bool `yaml:"ignore_padding"`

	// IncludeExts restricts classification to these extensions when
	// non-empty (dot-less, case-insensitive).
	IncludeExts []string `yaml:"include_exts"`

	// ExcludeExts always excludes these extensions.
	ExcludeExts []string `yaml:"exclude_exts"`

	// CollectStats gathers filesystem metadata for every scanned file.
	CollectStats bool `yaml:"collect_stats"`

	// CSV treats manifests as separator-delimited listings.
	CSV bool `yaml:"csv"`

	// CSVSeparator is the manifest column separator.
	CSVSeparator string `yaml:"csv_separator"`

	// StatOrder names the stat fields carried by manifest CSV columns.
	StatOrder []string `yaml:"stat_order"`

	// Format is the sequence format template used for reports.
	Format string `yaml:"format"`

	// LogLevel sets logging verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config with the built-in default values.
func Default() *Config {
	return &Config{
		Recursive:     false,
		IgnorePadding: true,
		IncludeExts:   nil,
		ExcludeExts:   nil,
		CollectStats:  false,
		CSV:           false,
		CSVSeparator:  "\t",
		StatOrder:     nil,
		Format:        "%H%P%T %R (%f frames)",
		LogLevel:      "info",
	}
}

// DefaultPath returns the per-user config file path. It falls back to the
// bare file name when the home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, DefaultFileName)
}

// Load loads configuration from the specified file path. A missing file
// returns the defaults without error; a malformed file returns an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Decode over a zeroed shadow so absent keys can be told apart from
	// explicit zero values, then merge non-zero values onto the defaults.
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if fileCfg.Recursive {
		cfg.Recursive = fileCfg.Recursive
	}
	if hasKey(data, "ignore_padding") {
		cfg.IgnorePadding = fileCfg.IgnorePadding
	}
	if fileCfg.IncludeExts != nil {
		cfg.IncludeExts = fileCfg.IncludeExts
	}
	if fileCfg.ExcludeExts != nil {
		cfg.ExcludeExts = fileCfg.ExcludeExts
	}
	if fileCfg.CollectStats {
		cfg.CollectStats = fileCfg.CollectStats
	}
	if fileCfg.CSV {
		cfg.CSV = fileCfg.CSV
	}
	if fileCfg.CSVSeparator != "" {
		cfg.CSVSeparator = fileCfg.CSVSeparator
	}
	if fileCfg.StatOrder != nil {
		cfg.StatOrder = fileCfg.StatOrder
	}
	if fileCfg.Format != "" {
		cfg.Format = fileCfg.Format
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}

	if len(cfg.CSVSeparator) != 1 && cfg.CSVSeparator != "\\t" {
		return nil, fmt.Errorf("csv_separator must be a single character, got %q", cfg.CSVSeparator)
	}

	return cfg, nil
}

// Separator returns the CSV separator as a rune, translating the literal
// two-character "\t" escape users commonly write in YAML.
func (c *Config) Separator() rune {
	if c.CSVSeparator == "\\t" || c.CSVSeparator == "" {
		return '\t'
	}
	return rune(c.CSVSeparator[0])
}

// WriteDefault writes the default configuration to path as YAML. The write
// is lock-guarded and atomic so concurrent invocations cannot interleave.
// An existing file is not overwritten.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := filelock.LockAndWrite(path, data); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// hasKey reports whether a top-level key appears in the YAML document.
// Boolean fields whose default is true need this to honor an explicit
// "false" in the file.
func hasKey(data []byte, key string) bool {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false
	}
	_, ok := doc[key]
	return ok
}
