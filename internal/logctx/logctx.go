// Package logctx builds the structured logger the CLI and library callers
// share, following the slog.Logger-from-flags shape used by the reference
// pack's command tree (NewRoot's PersistentPreRun): a log level string is
// parsed and a single *slog.Logger is installed as the process default.
package logctx

import (
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger New builds.
type Options struct {
	// Level is one of DEBUG, INFO, WARN, ERROR (case-insensitive). Defaults
	// to INFO on an empty string or a parse failure.
	Level string
	// JSON selects slog.JSONHandler over slog.TextHandler.
	JSON bool
	// FilePath, when non-empty, routes output through a rotating
	// lumberjack sink instead of stderr.
	FilePath string
}

// New builds a *slog.Logger per opts and, as a side effect, installs it as
// slog's process-wide default so library code that logs through
// slog.Default() picks it up without an explicit logger threaded through.
func New(opts Options) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(opts.Level))); err != nil {
		level = slog.LevelInfo
	}

	var w *os.File
	var sink interface {
		Write([]byte) (int, error)
	}
	if opts.FilePath != "" {
		sink = &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	} else {
		w = os.Stderr
		sink = w
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(sink, handlerOpts)
	} else {
		handler = slog.NewTextHandler(sink, handlerOpts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithRunID returns a logger that tags every record with the given run
// correlation id, mirroring the slog.With(...) pattern used to attach
// request-scoped fields throughout the reference pack.
func WithRunID(logger *slog.Logger, runID string) *slog.Logger {
	return logger.With(slog.String("run_id", runID))
}
