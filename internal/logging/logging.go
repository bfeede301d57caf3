// Package logging builds the zap logger used for diagnostics.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to w. Verbose loggers emit debug
// entries with timestamps; otherwise only errors are logged, since warnings
// are already part of the run summary.
func New(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.ErrorLevel
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	if verbose {
		level = zapcore.DebugLevel
	} else {
		cfg.TimeKey = ""
		cfg.CallerKey = ""
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core)
}
