// Package logging holds the process-wide logger.
//
// The logger is built on first use and writes human-readable lines to
// stderr through a charmbracelet/log handler. Callers log through the
// log/slog API.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

var (
	mu     sync.Mutex
	logger *slog.Logger
	level  = slog.LevelInfo
)

// Logger returns the process-wide logger, creating it on first call.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = New(os.Stderr, level)
	}
	return logger
}

// SetLogger replaces the process-wide logger and returns the previous one.
// A nil l resets to lazy initialization.
func SetLogger(l *slog.Logger) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	prev := logger
	logger = l
	return prev
}

// SetLevel changes the level used by the lazily built logger. It drops any
// logger already built so the next Logger call picks the level up.
func SetLevel(l slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
	logger = nil
}

// New builds a logger writing to w at the given level.
func New(w io.Writer, l slog.Level) *slog.Logger {
	h := charmlog.NewWithOptions(w, charmlog.Options{
		Level:  charmlog.Level(l),
		Prefix: "todotxt",
	})
	return slog.New(h)
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// is info and reports false.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
