package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Verbosity levels
const (
	LevelQuiet   = iota // Default: only errors and warnings
	LevelVerbose        // -v: progress messages, raw check output, counts
	LevelDebug          // -d: external commands, query URLs, timing
)

var (
	verbosity  int
	logger     *slog.Logger
	output     io.Writer
	inProgress bool // tracks if we have an in-progress line
)

// Initialize sets up the global logger with the specified verbosity level
func Initialize(level int, w io.Writer) {
	verbosity = level
	output = w

	// Map our verbosity to slog levels
	var slogLevel slog.Level
	switch {
	case level >= LevelDebug:
		slogLevel = slog.LevelDebug
	case level >= LevelVerbose:
		slogLevel = slog.LevelInfo
	default:
		slogLevel = slog.LevelWarn
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slogLevel,
	})
	logger = slog.New(handler)
}

// Info logs at info level (-v)
func Info(msg string, args ...any) {
	if verbosity >= LevelVerbose {
		clearProgress()
		logger.Info(msg, args...)
	}
}

// Debug logs at debug level (-d)
func Debug(msg string, args ...any) {
	if verbosity >= LevelDebug {
		clearProgress()
		logger.Debug(msg, args...)
	}
}

// Warn logs at warn level (always visible)
func Warn(msg string, args ...any) {
	clearProgress()
	logger.Warn(msg, args...)
}

// Error logs at error level (always visible)
func Error(msg string, args ...any) {
	clearProgress()
	logger.Error(msg, args...)
}

// Progress prints a progress message with carriage return (no newline)
// Only shown at verbose level or higher
func Progress(format string, args ...any) {
	if verbosity >= LevelVerbose {
		inProgress = true
		_, _ = fmt.Fprintf(output, "\r"+format, args...)
	}
}

// ProgressDone completes a progress line with "done" and newline
func ProgressDone() {
	if verbosity >= LevelVerbose && inProgress {
		_, _ = fmt.Fprintln(output, " done")
		inProgress = false
	}
}

// ProgressClear clears the current progress line
func ProgressClear() {
	if inProgress {
		_, _ = fmt.Fprint(output, "\r\033[K") // carriage return + clear to end of line
		inProgress = false
	}
}

// clearProgress ensures we don't write over a progress line
func clearProgress() {
	if inProgress {
		_, _ = fmt.Fprintln(output) // just add a newline to preserve the progress
		inProgress = false
	}
}

// IsVerbose returns true if verbose-level logging is enabled
func IsVerbose() bool {
	return verbosity >= LevelVerbose
}

// IsDebug returns true if debug-level logging is enabled
func IsDebug() bool {
	return verbosity >= LevelDebug
}

// Verbosity returns the current verbosity level
func Verbosity() int {
	return verbosity
}

// SetOutput changes the output writer (useful for testing)
func SetOutput(w io.Writer) {
	output = w
}

func init() {
	// Default initialization with quiet mode to stderr
	output = os.Stderr
	verbosity = LevelQuiet
	logger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}
