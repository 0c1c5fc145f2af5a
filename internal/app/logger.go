package app

import (
	"log/slog"
	"os"

	"quickbite-orders/internal/logx"
)

// NewLogger builds the process-wide JSON logger. Every entry carries the
// service name so the api and worker binaries can share one log stream.
func NewLogger() logx.Logger {
	base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return logx.NewSlogAdapter(base).With(logx.String("service", "quickbite-orders"))
}
