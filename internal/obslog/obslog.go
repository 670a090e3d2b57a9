// Package obslog constructs the zap logger used throughout the CLI and
// reasoner core (SPEC_FULL.md §7.2): a quiet production config by
// default, or a verbose development config — caller locations, stack
// traces on error, human-readable timestamps — when the operator passes
// --verbose.
package obslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. verbose selects zap's development
// preset; levelName (from config, e.g. "debug"/"info"/"warn"/"error")
// sets the minimum level and is ignored if it fails to parse.
func New(verbose bool, levelName string) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	if levelName != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(levelName)); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	return cfg.Build()
}
