package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"catalogue/internal/config"
)

// NewLogger returns a slog.Logger configured by LOG_FORMAT and LOG_LEVEL.
func NewLogger(cfg *config.Config) *slog.Logger {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// accessLogWriter receives Fiber's access log lines and re-emits them through slog.
type accessLogWriter struct {
	logger *slog.Logger
}

func (w accessLogWriter) Write(p []byte) (int, error) {
	w.logger.Info("HTTP request", "access", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
