// Package log provides structured logging for dex.
//
// The Logger interface is backed by Go's stdlib slog. Diagnostic output
// (Debug/Info/Warn/Error) goes to stderr; command results and progress are
// printed to stdout by the callers themselves.
//
// Verbosity levels map to flags in cmd/dex:
//   - ERROR (--quiet): errors only
//   - WARN (default): warnings and user output
//   - INFO (--verbose): operational context
//   - DEBUG (--debug): internal state for troubleshooting
package log

import (
	"log/slog"
	"sync"
)

// Logger is the interface for structured logging. Method signatures match
// slog for easy integration.
type Logger interface {
	// Debug logs internal state useful only for troubleshooting, such as
	// classification results and asset scores.
	Debug(msg string, args ...any)

	// Info logs operational context like "resolving release assets".
	Info(msg string, args ...any)

	// Warn logs recoverable issues like "could not remove archive".
	Warn(msg string, args ...any)

	// Error logs failures that prevent the operation from completing.
	Error(msg string, args ...any)

	// With returns a Logger that includes the given key-value pairs in all
	// subsequent entries.
	With(args ...any) Logger
}

type slogLogger struct {
	l *slog.Logger
}

// New creates a Logger backed by slog with the given handler.
func New(h slog.Handler) Logger {
	return &slogLogger{l: slog.New(h)}
}

func (s *slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

func (s *slogLogger) With(args ...any) Logger {
	return &slogLogger{l: s.l.With(args...)}
}

type noopLogger struct{}

// NewNoop returns a logger that discards all output. Useful in tests.
func NewNoop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) With(...any) Logger   { return noopLogger{} }

var (
	defaultLogger Logger = noopLogger{}
	defaultMu     sync.RWMutex
)

// Default returns the global logger configured at startup. Returns a noop
// logger if SetDefault has not been called.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the global logger. Called once from main() after parsing
// verbosity flags.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
