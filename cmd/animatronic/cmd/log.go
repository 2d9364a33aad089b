package cmd

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/go-drift/animatronic/cmd/animatronic/internal/config"
)

// newLogger creates a logger writing to w at level, with short timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "animatronic",
	})
}

type ctxKey int

const (
	loggerKey ctxKey = iota
	configKey
)

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

func withConfig(ctx context.Context, cfg *config.Resolved) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext returns the resolved config attached to ctx, or the
// built-in defaults.
func configFromContext(ctx context.Context) *config.Resolved {
	if cfg, ok := ctx.Value(configKey).(*config.Resolved); ok {
		return cfg
	}
	d := config.Default()
	return &config.Resolved{
		FPS:           d.Engine.FPS,
		Strict:        d.Engine.Strict,
		PixelsPerCell: d.TUI.PixelsPerCell,
		Watch:         d.TUI.Watch,
		LogLevel:      log.InfoLevel,
	}
}
