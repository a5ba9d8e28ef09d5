package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger receives every diagnostic record edi writes. The root command
// replaces it from the -v and --json flags before any configuration is
// loaded.
var Logger *slog.Logger

var level = new(slog.LevelVar)

func init() {
	Logger = newLogger(false, os.Stderr)
}

func newLogger(jsonOutput bool, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if jsonOutput {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup switches the diagnostic stream. verbose lowers the threshold to
// debug; jsonOutput selects JSON lines instead of logfmt. A nil w means
// standard error.
func Setup(verbose bool, jsonOutput bool, w io.Writer) {
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
	if w == nil {
		w = os.Stderr
	}
	Logger = newLogger(jsonOutput, w)
}

// DebugEnabled reports whether debug records reach the log. The resolver
// checks it before serializing the load time context and the merged
// configuration, and the playbook runner passes -vvvv to ansible when it
// is set.
func DebugEnabled() bool {
	return Logger.Enabled(context.Background(), slog.LevelDebug)
}

func Debug(msg string, args ...any) { Logger.Debug(msg, args...) }
func Info(msg string, args ...any)  { Logger.Info(msg, args...) }
func Warn(msg string, args ...any)  { Logger.Warn(msg, args...) }
func Error(msg string, args ...any) { Logger.Error(msg, args...) }

// With returns a logger that tags each record, e.g. with the playbook
// being applied.
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}
