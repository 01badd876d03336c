// Package notify delivers presentation changes and location errors to the presentation layer.
package notify

import (
	"context"
	"log/slog"
	"math"

	"github.com/UnknownOlympus/geotourist/internal/models"
)

// Notifier receives every presentation the engine emits and every location error it observes.
// Implementations must not block for long; delivery failures are theirs to log.
type Notifier interface {
	Present(ctx context.Context, presentation models.Presentation)
	LocationError(ctx context.Context, locErr models.LocationError)
}

// Multi fans out to each notifier in order.
type Multi []Notifier

func (m Multi) Present(ctx context.Context, presentation models.Presentation) {
	for _, n := range m {
		n.Present(ctx, presentation)
	}
}

func (m Multi) LocationError(ctx context.Context, locErr models.LocationError) {
	for _, n := range m {
		n.LocationError(ctx, locErr)
	}
}

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Present(ctx context.Context, presentation models.Presentation) {
	if !presentation.HasPoint() {
		n.log.InfoContext(ctx, "No nearby points")
		return
	}

	result := presentation.Result
	n.log.InfoContext(ctx, "Presenting point",
		"id", result.Point.ID,
		"name", result.Point.Name,
		"distance_m", WholeMeters(result.Distance),
	)
}

func (n *LogNotifier) LocationError(ctx context.Context, locErr models.LocationError) {
	n.log.WarnContext(ctx, "Location source error", "kind", locErr.Kind, "message", locErr.Kind.Message())
}

// WholeMeters rounds a distance for display.
func WholeMeters(distance float64) int64 {
	return int64(math.Round(distance))
}
