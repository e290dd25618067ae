package obs

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"innkeeper/internal/domain/shared/events"
)

// NewLogger configures slog with colorful dev output and JSON for
// production-like envs.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	writer := os.Stdout
	if env == "dev" || env == "local" {
		handler := tint.NewHandler(writer, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC3339,
			AddSource:  true,
		})
		return slog.New(handler)
	}
	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})
	return slog.New(handler)
}

// EventLogger is an events.Publisher that writes to the log; it backs the
// in-memory deployment where no broker is configured.
type EventLogger struct {
	Logger *slog.Logger
}

func (p EventLogger) Publish(ctx context.Context, batch []events.DomainEvent) error {
	if p.Logger == nil {
		return nil
	}
	for _, event := range batch {
		p.Logger.Info("domain event", "name", event.EventName(), "aggregate_id", event.AggregateID(), "occurred_at", event.OccurredAt())
	}
	return nil
}
