// Package logging sets up the structured logger. Records go to a file in
// the data directory because the terminal is owned by the UI while it runs.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"counter-terminal/pkg/config"
)

// Setup opens the log file named by cfg and installs a JSON logger as the
// slog default. The returned closer flushes and closes the file.
func Setup(cfg config.AppConfig) (*slog.Logger, io.Closer, error) {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, errors.Wrap(err, "failed to create data directory")
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open log file")
	}

	logger := New(file, level)
	slog.SetDefault(logger)
	return logger, file, nil
}

// New creates a JSON logger writing to w
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})
	return slog.New(handler).With("app", config.AppName)
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
