package service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/UnknownOlympus/geotourist/internal/location"
	"github.com/UnknownOlympus/geotourist/internal/models"
	"github.com/UnknownOlympus/geotourist/internal/reconciler"
)

// ErrEngineStopped is returned by Engine methods when Run is not executing.
var ErrEngineStopped = errors.New("engine is not running")

type command func(ctx context.Context)

// Engine serializes location events, user selections and radius changes onto a single
// goroutine that owns the reconciler. Every event runs to completion before the next one.
type Engine struct {
	log        *slog.Logger
	source     location.Source
	reconciler *reconciler.Reconciler

	commands chan command
	running  atomic.Bool
	stopped  chan struct{}
}

func NewEngine(log *slog.Logger, source location.Source, rec *reconciler.Reconciler) *Engine {
	return &Engine{
		log:        log,
		source:     source,
		reconciler: rec,
		commands:   make(chan command),
		stopped:    make(chan struct{}),
	}
}

// Run subscribes to the location source and processes events until ctx is cancelled.
// The source is stopped on every exit path. Run must be called at most once.
func (e *Engine) Run(ctx context.Context) {
	defer close(e.stopped)
	defer e.running.Store(false)
	defer e.source.Stop()

	e.running.Store(true)

	events, err := e.source.Start(ctx)
	if err != nil {
		e.log.ErrorContext(ctx, "Failed to start location source", "error", err)
		e.reconciler.OnLocationError(ctx, models.LocationError{Kind: models.LocationErrorUnavailable, Err: err})
	}

	e.log.InfoContext(ctx, "Engine started")

	for {
		select {
		case <-ctx.Done():
			e.log.InfoContext(ctx, "Engine stopped")
			return
		case event, ok := <-events:
			if !ok {
				events = nil
				if ctx.Err() == nil {
					e.reconciler.OnLocationError(ctx, models.LocationError{Kind: models.LocationErrorClosed})
				}
				continue
			}
			e.handle(ctx, event)
		case cmd := <-e.commands:
			cmd(ctx)
		}
	}
}

func (e *Engine) handle(ctx context.Context, event location.Event) {
	if event.Err != nil {
		e.reconciler.OnLocationError(ctx, *event.Err)
		return
	}

	// Errors are logged by the reconciler; the next fix is the retry.
	_, _ = e.reconciler.OnLocationUpdate(ctx, event.Fix)
}

// SetRadius changes the query radius and re-evaluates against the last fix.
func (e *Engine) SetRadius(ctx context.Context, meters float64) (models.Presentation, error) {
	return call(ctx, e, func(runCtx context.Context) (models.Presentation, error) {
		return e.reconciler.SetRadius(runCtx, meters)
	})
}

// SelectPoint selects a point from the last candidate set. See reconciler.Reconciler.OnUserSelect.
func (e *Engine) SelectPoint(ctx context.Context, id int64) (models.Presentation, error) {
	return call(ctx, e, func(runCtx context.Context) (models.Presentation, error) {
		return e.reconciler.OnUserSelect(runCtx, id)
	})
}

// Candidates returns the last computed candidate set.
func (e *Engine) Candidates(ctx context.Context) ([]models.NearbyResult, error) {
	return call(ctx, e, func(context.Context) ([]models.NearbyResult, error) {
		return e.reconciler.Candidates(), nil
	})
}

// Presented returns the last emitted presentation.
func (e *Engine) Presented(ctx context.Context) (models.Presentation, error) {
	return call(ctx, e, func(context.Context) (models.Presentation, error) {
		return e.reconciler.Presented(), nil
	})
}

// Radius returns the current query radius in meters.
func (e *Engine) Radius(ctx context.Context) (float64, error) {
	return call(ctx, e, func(context.Context) (float64, error) {
		return e.reconciler.Radius(), nil
	})
}

type result[T any] struct {
	value T
	err   error
}

// call runs fn on the engine goroutine and waits for its result.
func call[T any](ctx context.Context, e *Engine, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if !e.running.Load() {
		return zero, ErrEngineStopped
	}

	done := make(chan result[T], 1)
	cmd := func(runCtx context.Context) {
		value, err := fn(runCtx)
		done <- result[T]{value: value, err: err}
	}

	select {
	case e.commands <- cmd:
	case <-e.stopped:
		return zero, ErrEngineStopped
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	select {
	case res := <-done:
		return res.value, res.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
