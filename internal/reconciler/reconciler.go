// Package reconciler decides which single nearby point is presented as fixes and user choices arrive.
//
// The reconciler is a state machine over {no selection, selected(id)}. It is not safe for
// concurrent use; service.Engine serializes every call onto one goroutine.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/geotourist/internal/metrics"
	"github.com/UnknownOlympus/geotourist/internal/models"
	"github.com/UnknownOlympus/geotourist/internal/notify"
	"github.com/UnknownOlympus/geotourist/internal/proximity"
)

// Transition kinds recorded in metrics.
const (
	transitionRetained = "retained"
	transitionNearest  = "nearest"
	transitionFallback = "fallback"
	transitionCleared  = "cleared"
	transitionUser     = "user"
)

// Finder computes the candidate set for a fix.
type Finder interface {
	FindWithinRadius(ctx context.Context, origin models.LocationFix, radius float64) ([]models.NearbyResult, error)
}

type Reconciler struct {
	log      *slog.Logger
	finder   Finder
	notifier notify.Notifier
	metrics  *metrics.Metrics

	radius     float64
	lastFix    models.LocationFix
	candidates []models.NearbyResult
	selected   int64
	isSelected bool
	presented  models.Presentation
}

// New creates a reconciler in the no-selection state with the given initial radius in meters.
func New(
	log *slog.Logger,
	finder Finder,
	notifier notify.Notifier,
	metrics *metrics.Metrics,
	radius float64,
) (*Reconciler, error) {
	if err := proximity.ValidateRadius(radius); err != nil {
		return nil, err
	}

	return &Reconciler{
		log:      log,
		finder:   finder,
		notifier: notifier,
		metrics:  metrics,
		radius:   radius,
	}, nil
}

// OnLocationUpdate recomputes the candidate set for fix and reconciles the selection against it.
// A selection still present in the new set is kept. Otherwise the nearest candidate is chosen,
// ties going to the smallest id, or the selection is cleared when nothing is in range.
//
// If the query fails the state and the presented point are left as they were and nothing is emitted.
func (r *Reconciler) OnLocationUpdate(ctx context.Context, fix models.LocationFix) (models.Presentation, error) {
	results, err := r.finder.FindWithinRadius(ctx, fix, r.radius)
	if err != nil {
		r.logQueryError(ctx, err)
		return r.presented, fmt.Errorf("failed to evaluate location update: %w", err)
	}

	r.lastFix = fix
	r.candidates = results

	if r.isSelected {
		if result, ok := lookup(results, r.selected); ok {
			return r.present(ctx, result, transitionRetained), nil
		}
	}

	if len(results) == 0 {
		return r.clear(ctx), nil
	}

	kind := transitionNearest
	if r.isSelected {
		kind = transitionFallback
	}

	return r.present(ctx, nearest(results), kind), nil
}

// OnUserSelect selects the point with the given id from the last candidate set.
// An id that is not in that set is rejected with models.ErrStaleSelection and the state is kept.
func (r *Reconciler) OnUserSelect(ctx context.Context, id int64) (models.Presentation, error) {
	result, ok := lookup(r.candidates, id)
	if !ok {
		r.log.DebugContext(ctx, "Rejected stale selection", "id", id, "candidates", len(r.candidates))
		return r.presented, fmt.Errorf("%w: point %d is not among the current candidates", models.ErrStaleSelection, id)
	}

	return r.present(ctx, result, transitionUser), nil
}

// SetRadius changes the query radius. When a fix is known the candidate set is
// re-evaluated immediately; otherwise the radius applies to the next fix.
func (r *Reconciler) SetRadius(ctx context.Context, meters float64) (models.Presentation, error) {
	if err := proximity.ValidateRadius(meters); err != nil {
		r.log.DebugContext(ctx, "Rejected radius", "meters", meters)
		return r.presented, err
	}

	r.radius = meters
	r.log.InfoContext(ctx, "Radius changed", "meters", meters)

	if !r.lastFix.Valid {
		return r.presented, nil
	}

	return r.OnLocationUpdate(ctx, r.lastFix)
}

// OnLocationError forwards a location source error. The selection is not affected.
func (r *Reconciler) OnLocationError(ctx context.Context, locErr models.LocationError) {
	r.metrics.LocationErrors.WithLabelValues(string(locErr.Kind)).Inc()
	r.log.WarnContext(ctx, "Location source reported an error", "kind", locErr.Kind, "error", locErr.Error())
	r.notifier.LocationError(ctx, locErr)
}

// Candidates returns a copy of the last computed candidate set in store order.
func (r *Reconciler) Candidates() []models.NearbyResult {
	out := make([]models.NearbyResult, len(r.candidates))
	copy(out, r.candidates)
	return out
}

// Presented returns the last emitted presentation.
func (r *Reconciler) Presented() models.Presentation {
	return r.presented
}

func (r *Reconciler) Radius() float64 {
	return r.radius
}

// Selected returns the selected id, or false in the no-selection state.
func (r *Reconciler) Selected() (int64, bool) {
	return r.selected, r.isSelected
}

func (r *Reconciler) present(ctx context.Context, result models.NearbyResult, kind string) models.Presentation {
	if !r.isSelected || r.selected != result.Point.ID {
		r.log.InfoContext(ctx, "Selection changed", "id", result.Point.ID, "kind", kind)
	}

	r.selected = result.Point.ID
	r.isSelected = true
	r.presented = models.Present(result)
	r.metrics.Transitions.WithLabelValues(kind).Inc()
	r.notifier.Present(ctx, r.presented)

	return r.presented
}

func (r *Reconciler) clear(ctx context.Context) models.Presentation {
	if r.isSelected {
		r.log.InfoContext(ctx, "Selection cleared, no points in range", "radius", r.radius)
	}

	r.selected = 0
	r.isSelected = false
	r.presented = models.NoNearbyPoints()
	r.metrics.Transitions.WithLabelValues(transitionCleared).Inc()
	r.notifier.Present(ctx, r.presented)

	return r.presented
}

func (r *Reconciler) logQueryError(ctx context.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidRadius), errors.Is(err, models.ErrLocationUnavailable):
		r.log.DebugContext(ctx, "Location update rejected", "error", err)
	default:
		r.log.ErrorContext(ctx, "Proximity query failed, keeping current selection", "error", err)
	}
}

func lookup(results []models.NearbyResult, id int64) (models.NearbyResult, bool) {
	for _, result := range results {
		if result.Point.ID == id {
			return result, true
		}
	}
	return models.NearbyResult{}, false
}

// nearest returns the result with the smallest distance; equal distances go to the smallest id.
// results must not be empty.
func nearest(results []models.NearbyResult) models.NearbyResult {
	best := results[0]
	for _, result := range results[1:] {
		if result.Distance < best.Distance ||
			(result.Distance == best.Distance && result.Point.ID < best.Point.ID) {
			best = result
		}
	}
	return best
}
