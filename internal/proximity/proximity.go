// Package proximity answers "which stored points lie within a radius of a fix".
package proximity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/UnknownOlympus/geotourist/internal/geo"
	"github.com/UnknownOlympus/geotourist/internal/metrics"
	"github.com/UnknownOlympus/geotourist/internal/models"
)

// PointReader enumerates every stored point.
type PointReader interface {
	QueryAll(ctx context.Context) ([]models.PointOfInterest, error)
}

// Engine performs radius queries over a PointReader.
type Engine struct {
	store   PointReader
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewEngine creates a query engine reading from store.
func NewEngine(store PointReader, log *slog.Logger, metrics *metrics.Metrics) *Engine {
	return &Engine{store: store, log: log, metrics: metrics}
}

// ValidateRadius reports models.ErrInvalidRadius unless meters is a positive finite number.
func ValidateRadius(meters float64) error {
	if math.IsNaN(meters) || math.IsInf(meters, 0) || meters <= 0 {
		return fmt.Errorf("%w: %v", models.ErrInvalidRadius, meters)
	}
	return nil
}

// FindWithinRadius returns every stored point whose distance from origin is at most radius
// meters, in the order the store enumerates them. The boundary is inclusive.
//
// Errors:
// - models.ErrLocationUnavailable if origin is not a valid fix.
// - models.ErrInvalidRadius if radius is not a positive finite number.
// - geo.ErrInvalidCoordinate if origin is out of range.
// - models.ErrQueryFailed if the store cannot be read or holds a point with invalid coordinates.
func (e *Engine) FindWithinRadius(
	ctx context.Context,
	origin models.LocationFix,
	radius float64,
) ([]models.NearbyResult, error) {
	if !origin.Valid {
		return nil, models.ErrLocationUnavailable
	}
	if err := ValidateRadius(radius); err != nil {
		return nil, err
	}
	if err := geo.ValidateCoordinates(origin.Coordinates()); err != nil {
		return nil, err
	}

	start := time.Now()
	results, err := e.find(ctx, origin.Coordinates(), radius)
	e.metrics.QuerySeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		e.metrics.QueriesTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	e.metrics.QueriesTotal.WithLabelValues("success").Inc()
	e.metrics.CandidateCount.Observe(float64(len(results)))
	e.log.DebugContext(ctx, "Proximity query completed",
		"latitude", origin.Latitude,
		"longitude", origin.Longitude,
		"radius", radius,
		"found", len(results),
	)

	return results, nil
}

func (e *Engine) find(ctx context.Context, origin models.Coordinates, radius float64) ([]models.NearbyResult, error) {
	points, err := e.store.QueryAll(ctx)
	if err != nil {
		if errors.Is(err, models.ErrQueryFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", models.ErrQueryFailed, err)
	}

	results := make([]models.NearbyResult, 0, len(points))
	for _, point := range points {
		distance, errDist := geo.Distance(origin, point.Coordinates())
		if errDist != nil {
			return nil, fmt.Errorf("%w: point %d: %w", models.ErrQueryFailed, point.ID, errDist)
		}
		if distance <= radius {
			results = append(results, models.NearbyResult{Point: point, Distance: distance})
		}
	}

	return results, nil
}
