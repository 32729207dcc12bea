// Package logger builds the portal's slog logger: tint on stdout in dev, JSON in prod,
// and an optional Fluent Bit sink.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/lmittmann/tint"
)

// Config describes which sinks the logger writes to
type Config struct {
	Writer   io.Writer
	Level    string
	JSON     bool
	UseColor bool

	FluentEnabled bool
	FluentHost    string
	FluentPort    int
	FluentLevel   string
	TagPrefix     string
}

// New creates the application logger. The returned closer flushes the Fluent client
// and is never nil.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	level := ParseLevel(cfg.Level)

	var stdout slog.Handler
	switch {
	case cfg.JSON:
		stdout = slog.NewJSONHandler(cfg.Writer, &slog.HandlerOptions{Level: level})
	case cfg.UseColor:
		stdout = tint.NewHandler(cfg.Writer, &tint.Options{
			Level:      level,
			TimeFormat: "2006-01-02 15:04:05",
		})
	default:
		stdout = slog.NewTextHandler(cfg.Writer, &slog.HandlerOptions{Level: level})
	}

	if !cfg.FluentEnabled {
		return slog.New(stdout), nopCloser{}, nil
	}

	if cfg.TagPrefix == "" {
		return nil, nil, fmt.Errorf("fluent tag prefix is required")
	}
	client, err := fluent.New(fluent.Config{
		FluentHost: cfg.FluentHost,
		FluentPort: cfg.FluentPort,
		TagPrefix:  cfg.TagPrefix,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create fluent client: %w", err)
	}

	handler := NewMultiHandler(stdout, NewFluentHandler(client, ParseLevel(cfg.FluentLevel)))
	return slog.New(handler), client, nil
}

// ParseLevel maps a textual level to slog; unknown values fall back to info
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
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

// Discard returns a logger that drops everything, handy in tests
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
