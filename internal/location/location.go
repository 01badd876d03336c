// Package location provides the sources of position fixes consumed by the engine.
package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/geotourist/internal/geo"
	"github.com/UnknownOlympus/geotourist/internal/models"
)

// DefaultInterval is how often a source re-delivers its latest fix.
const DefaultInterval = 10 * time.Second

const pendingErrors = 16

var (
	ErrAlreadyStarted = errors.New("location source already started")
	ErrErrorQueueFull = errors.New("location error queue is full")
)

// Event is either a fix or a location error. Exactly one of Fix.Valid and Err is set.
type Event struct {
	Fix models.LocationFix
	Err *models.LocationError
}

// Source delivers location events on a channel between Start and Stop.
// The channel is closed when the source stops.
type Source interface {
	Start(ctx context.Context) (<-chan Event, error)
	Stop()
}

// PushSource is a Source fed by Push and PushError, typically from the HTTP API.
// A pushed fix is delivered at once and then re-delivered every interval until replaced.
type PushSource struct {
	interval time.Duration
	log      *slog.Logger

	mu      sync.Mutex
	latest  models.LocationFix
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	pending chan struct{}
	errs    chan models.LocationError
}

func NewPushSource(interval time.Duration, log *slog.Logger) *PushSource {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &PushSource{
		interval: interval,
		log:      log,
		pending:  make(chan struct{}, 1),
		errs:     make(chan models.LocationError, pendingErrors),
	}
}

// Push records coords as the latest fix. Coordinates out of range are rejected.
func (s *PushSource) Push(coords models.Coordinates) error {
	if err := geo.ValidateCoordinates(coords); err != nil {
		return err
	}

	s.mu.Lock()
	s.latest = models.NewFix(coords.Latitude, coords.Longitude)
	s.mu.Unlock()

	select {
	case s.pending <- struct{}{}:
	default:
	}

	return nil
}

// PushError queues a location error for delivery.
func (s *PushSource) PushError(kind models.LocationErrorKind) error {
	select {
	case s.errs <- models.LocationError{Kind: kind}:
		return nil
	default:
		return fmt.Errorf("%w: dropped %s", ErrErrorQueueFull, kind)
	}
}

// Start begins delivery. The returned channel is closed after Stop or when ctx is done.
func (s *PushSource) Start(ctx context.Context) (<-chan Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil, ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	// run delivers the latest fix on entry, so an earlier Push needs no second delivery.
	select {
	case <-s.pending:
	default:
	}

	events := make(chan Event)
	s.wg.Add(1)
	go s.run(ctx, events)

	s.log.InfoContext(ctx, "Location source started", "interval", s.interval)

	return events, nil
}

// Stop ends delivery and waits for the delivery goroutine to exit. It is safe to call more than once.
func (s *PushSource) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.log.Info("Location source stopped")
}

func (s *PushSource) run(ctx context.Context, events chan<- Event) {
	defer s.wg.Done()
	defer close(events)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if !s.emitLatest(ctx, events) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case locErr := <-s.errs:
			if !emit(ctx, events, Event{Err: &locErr}) {
				return
			}
		case <-s.pending:
			ticker.Reset(s.interval)
			if !s.emitLatest(ctx, events) {
				return
			}
		case <-ticker.C:
			if !s.emitLatest(ctx, events) {
				return
			}
		}
	}
}

// emitLatest delivers the latest fix if there is one. It reports false when ctx is done.
func (s *PushSource) emitLatest(ctx context.Context, events chan<- Event) bool {
	s.mu.Lock()
	fix := s.latest
	s.mu.Unlock()

	if !fix.Valid {
		return ctx.Err() == nil
	}

	return emit(ctx, events, Event{Fix: fix})
}

func emit(ctx context.Context, events chan<- Event, event Event) bool {
	select {
	case events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}
