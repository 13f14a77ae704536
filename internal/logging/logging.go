// Package logging builds the leveled loggers injected into the server.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// BackupCount is how many rotated log files are kept.
const BackupCount = 3

// NewLogger creates a text logger writing to w.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// New opens the log destination. A path of "-" or "" logs to stderr;
// anything else is a file rotated at midnight keeping BackupCount backups.
// The returned closer must be closed on shutdown.
func New(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if path == "" || path == "-" {
		return NewLogger(os.Stderr, level), nopCloser{}, nil
	}

	f, err := OpenDailyRotatingFile(path, BackupCount)
	if err != nil {
		return nil, nil, err
	}
	return NewLogger(f, level), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewDiscardLogger creates a logger that drops everything. Useful in tests.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(100)}))
}

// LevelFromString converts debug, info, warn or error (any case) to a level.
// Unrecognized strings give slog.LevelInfo.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
