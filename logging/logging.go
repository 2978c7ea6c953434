// SPDX-License-Identifier: MIT

// Package logging configures the structured logger the command-line
// front-end and the training loop share.
//
// Output follows CLI conventions: human-readable text on stderr by
// default, optionally a machine-parseable JSON file per day when a log
// directory is configured. Both destinations receive the same records
// through one fan-out handler, so level filtering and attributes stay
// consistent.
//
//	log, err := logging.New(logging.Config{
//	    Level:  slog.LevelDebug,
//	    LogDir: "runs/logs",
//	})
//	defer log.Close()
//	log.Info("training started", "dataset", "wisconsin")
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// DefaultService tags every record when Config.Service is empty.
const DefaultService = "gnnlab"

// Config selects destinations and verbosity.
//
// The zero value logs Info and above as text to stderr.
type Config struct {
	// Level is the minimum severity that passes the filter.
	Level slog.Level

	// LogDir, when non-empty, adds a JSON file destination named
	// {service}_{YYYY-MM-DD}.log inside the directory. The directory
	// is created if missing.
	LogDir string

	// Service is attached to every record as the "service" attribute.
	// Empty means DefaultService.
	Service string

	// JSON switches the stderr destination to JSON records. File
	// output is always JSON.
	JSON bool

	// Quiet drops the stderr destination. Without a LogDir this
	// leaves stderr as the fallback so records are never lost.
	Quiet bool
}

// Logger couples the slog.Logger handed to the rest of the program
// with the file handle that must be flushed at exit.
type Logger struct {
	*slog.Logger
	file *os.File
}

// New builds the logger described by cfg. It fails only when the file
// destination cannot be prepared.
func New(cfg Config) (*Logger, error) {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handlers []slog.Handler
	if !cfg.Quiet {
		if cfg.JSON {
			handlers = append(handlers, slog.NewJSONHandler(os.Stderr, opts))
		} else {
			handlers = append(handlers, slog.NewTextHandler(os.Stderr, opts))
		}
	}

	l := &Logger{}
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0o750); err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		name := fmt.Sprintf("%s_%s.log", serviceName(cfg), time.Now().Format("2006-01-02"))
		f, err := os.OpenFile(filepath.Join(cfg.LogDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		l.file = f
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
	}

	var h slog.Handler
	switch len(handlers) {
	case 0:
		h = slog.NewTextHandler(os.Stderr, opts)
	case 1:
		h = handlers[0]
	default:
		h = fanoutHandler(handlers)
	}
	h = h.WithAttrs([]slog.Attr{slog.String("service", serviceName(cfg))})

	l.Logger = slog.New(h)
	return l, nil
}

// Default returns a stderr text logger at Info level.
func Default() *Logger {
	l, _ := New(Config{})
	return l
}

// Close flushes and releases the file destination, if any. The logger
// must not be used afterwards.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("logging: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// ParseLevel converts a CLI level string ("debug", "info", "warn",
// "error", case-insensitive, slog offsets allowed) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("logging: level %q: %w", s, err)
	}
	return l, nil
}

func serviceName(cfg Config) string {
	if cfg.Service == "" {
		return DefaultService
	}
	return cfg.Service
}
