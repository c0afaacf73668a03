// Package logger provides the process-wide structured logger: log/slog
// with a colored text handler for terminals.
package logger

import (
	"log/slog"
	"os"
	"sync"

	"golang.org/x/term"
)

var (
	mu       sync.RWMutex
	level    = new(slog.LevelVar)
	slogger  *slog.Logger
	useColor = term.IsTerminal(int(os.Stderr.Fd()))
)

func init() {
	rebuild()
}

func rebuild() {
	slogger = slog.New(NewColorTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}, useColor))
}

// SetVerbose switches between info and debug level.
func SetVerbose(verbose bool) {
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// SetColor enables or disables ANSI colors.
func SetColor(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	useColor = enabled
	rebuild()
}

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return slogger
}

// Debug logs at debug level with key/value attributes.
func Debug(msg string, args ...any) { get().Debug(msg, args...) }

// Info logs at info level with key/value attributes.
func Info(msg string, args ...any) { get().Info(msg, args...) }

// Warn logs at warn level with key/value attributes.
func Warn(msg string, args ...any) { get().Warn(msg, args...) }

// Error logs at error level with key/value attributes.
func Error(msg string, args ...any) { get().Error(msg, args...) }
