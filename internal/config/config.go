// Package config loads the inspector's small set of tunables from an
// optional YAML file, unmarshaled with gopkg.in/yaml.v3.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the inspector's ambient settings. None of these affect the
// segmentation itself (which is a pure function of the file's bytes) —
// they only control logging verbosity and report rendering.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
	// TruncateBinaryBytes bounds how many raw bytes JSONEncode embeds
	// inline before switching to a truncated preview.
	TruncateBinaryBytes int `yaml:"truncate_binary_bytes"`
	// StatsStringTruncateChars bounds FormatStatsValue's string/hex
	// display length.
	StatsStringTruncateChars int `yaml:"stats_string_truncate_chars"`
	// JSONIndent is the indent string used for the CLI's JSON output.
	JSONIndent string `yaml:"json_indent"`
	// WarnLogsPerSecond bounds the page-walker's decode-warning rate.
	WarnLogsPerSecond int `yaml:"warn_logs_per_second"`
}

// DefaultConfig returns the settings the CLI uses when no --config file
// is given.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:                 "info",
		TruncateBinaryBytes:      32,
		StatsStringTruncateChars: 256,
		JSONIndent:               "  ",
		WarnLogsPerSecond:        5,
	}
}

// Load reads and unmarshals a YAML config file over top of DefaultConfig,
// so a file only needs to set the fields it wants to override.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %q", path)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %q", path)
	}
	return cfg, nil
}
