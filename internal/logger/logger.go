package logger

import "go.uber.org/zap"

// Log is the package-level logger used by background paths.
// Initialize replaces the default no-op logger at process start.
var Log = zap.NewNop()

// Initialize sets up the global logger with the given level.
func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = l
	return nil
}
