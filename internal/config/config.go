// Package config loads the reasoner's optional TOML configuration file
// (SPEC_FULL.md §7.3). A missing or malformed config is never fatal —
// the CLI falls back to defaults and logs a warning — since the
// ontology file and class name on the command line are always
// sufficient to run a query on their own.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config mirrors the fields a reasoner.toml file may set.
type Config struct {
	// DefaultFormat is the ontology source format passed to
	// internal/loader.Parse when --format is not given on the command
	// line: "auto" (detect from the file extension), "obo", or "owl".
	DefaultFormat string `toml:"default_format"`
	// OutputFormat selects the CLI's result serialization when
	// --output-format is not given: "text" (one subsumer per line, the
	// canonical form spec.md §6 mandates) or "json".
	OutputFormat string `toml:"output_format"`
	CacheEnabled bool   `toml:"cache_enabled"`
	LogLevel     string `toml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DefaultFormat: "auto",
		OutputFormat:  "text",
		CacheEnabled:  true,
		LogLevel:      "info",
	}
}

// Load reads path and merges it over Default(). If path is empty or the
// file does not exist, Default() is returned with a nil error — only a
// file that exists but fails to parse is reported as an error, so the
// caller can log it before falling back.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}
