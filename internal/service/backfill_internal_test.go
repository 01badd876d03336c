package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/UnknownOlympus/geotourist/internal/metrics"
	"github.com/UnknownOlympus/geotourist/internal/models"
	"github.com/UnknownOlympus/geotourist/internal/repository"
	"github.com/UnknownOlympus/geotourist/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProcessBatch(t *testing.T) {
	mockRepo := mocks.NewInterface(t)
	mockProvider := mocks.NewProvider(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	reg := prometheus.NewRegistry()
	metrics := metrics.NewMetrics(reg)
	ctx := t.Context()
	service := NewAddressBackfillService(logger, mockRepo, mockProvider, "nominatim", metrics, 2, time.Second)

	gorkyPark := models.PointOfInterest{ID: 6, Name: "Gorky Park", Latitude: 55.7298, Longitude: 37.6010}

	t.Run("successfull processing", func(t *testing.T) {
		mockRepo.On("FetchPointsWithoutAddress", ctx, 100).Return([]models.PointOfInterest{gorkyPark}, nil).Once()
		mockProvider.On("ReverseGeocode", ctx, gorkyPark.Coordinates()).Return("Krymsky Val, 9, Moscow", nil).Once()
		mockRepo.On("UpdatePointAddress", ctx, int64(6), "Krymsky Val, 9, Moscow").Return(nil).Once()

		processed := service.processBatch(ctx)

		assert.Equal(t, 1, processed)
		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.PointsProcessed.WithLabelValues("success")), 0)
	})

	t.Run("fetch points return error", func(t *testing.T) {
		mockRepo.On("FetchPointsWithoutAddress", ctx, 100).Return(nil, assert.AnError).Once()

		processed := service.processBatch(ctx)

		assert.Zero(t, processed)
		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("fetch points return empty list", func(t *testing.T) {
		mockRepo.On("FetchPointsWithoutAddress", ctx, 100).Return([]models.PointOfInterest{}, nil).Once()

		processed := service.processBatch(ctx)

		assert.Zero(t, processed)
		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("geocoding provider returns error", func(t *testing.T) {
		geocodeErr := errors.New("reverse geocoding failed")

		mockRepo.On("FetchPointsWithoutAddress", ctx, 100).Return([]models.PointOfInterest{gorkyPark}, nil).Once()
		mockProvider.On("ReverseGeocode", ctx, gorkyPark.Coordinates()).Return("", geocodeErr).Once()
		mockRepo.On("IncrementFailureCount", ctx, int64(6), "reverse geocoding failed").Return(nil).Once()

		service.processBatch(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.APIErrors), 0)
	})

	t.Run("failure count cannot be recorded", func(t *testing.T) {
		mockRepo.On("FetchPointsWithoutAddress", ctx, 100).Return([]models.PointOfInterest{gorkyPark}, nil).Once()
		mockProvider.On("ReverseGeocode", ctx, gorkyPark.Coordinates()).Return("", errors.New("timeout")).Once()
		mockRepo.On("IncrementFailureCount", ctx, int64(6), "timeout").Return(assert.AnError).Once()

		processed := service.processBatch(ctx)

		assert.Equal(t, 1, processed)
		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
		assert.InDelta(t, 2, testutil.ToFloat64(metrics.APIErrors), 0)
	})

	t.Run("error to update point address", func(t *testing.T) {
		mockRepo.On("FetchPointsWithoutAddress", ctx, 100).Return([]models.PointOfInterest{gorkyPark}, nil).Once()
		mockProvider.On("ReverseGeocode", ctx, gorkyPark.Coordinates()).Return("Krymsky Val, 9, Moscow", nil).Once()
		mockRepo.On("UpdatePointAddress", ctx, int64(6), "Krymsky Val, 9, Moscow").Return(assert.AnError).Once()

		service.processBatch(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
		assert.InDelta(t, 3, testutil.ToFloat64(metrics.PointsProcessed.WithLabelValues("failure")), 0)
	})

	t.Run("batch is spread across workers", func(t *testing.T) {
		points := make([]models.PointOfInterest, 10)
		for i := range points {
			points[i] = models.PointOfInterest{ID: int64(i + 100), Latitude: float64(i), Longitude: float64(i)}
		}

		mockRepo.On("FetchPointsWithoutAddress", ctx, 100).Return(points, nil).Once()
		mockProvider.On("ReverseGeocode", ctx, mock.Anything).Return("somewhere", nil).Times(len(points))
		mockRepo.On("UpdatePointAddress", ctx, mock.Anything, "somewhere").Return(nil).Times(len(points))

		processed := service.processBatch(ctx)

		assert.Equal(t, len(points), processed)
		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
		assert.InDelta(t, 0, testutil.ToFloat64(metrics.ActiveWorkers), 0)
	})

	t.Run("start context cancelled", func(t *testing.T) {
		tctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		mockRepo.On("FetchPointsWithoutAddress", tctx, 100).Return([]models.PointOfInterest{}, nil).Once()

		service.Run(tctx)
	})
}

// memoryStore keeps points in memory and applies the same attempt limit as the SQL store.
type memoryStore struct {
	mu       sync.Mutex
	points   map[int64]*models.PointOfInterest
	attempts map[int64]int
}

func newMemoryStore(points ...models.PointOfInterest) *memoryStore {
	store := &memoryStore{points: make(map[int64]*models.PointOfInterest), attempts: make(map[int64]int)}
	for _, point := range points {
		store.points[point.ID] = &point
	}
	return store
}

func (s *memoryStore) FetchPointsWithoutAddress(_ context.Context, limit int) ([]models.PointOfInterest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.points))
	for id, point := range s.points {
		if point.Address == "" && s.attempts[id] < repository.MaxGeocodingAttempts {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	var result []models.PointOfInterest
	for _, id := range ids {
		if len(result) == limit {
			break
		}
		result = append(result, *s.points[id])
	}

	return result, nil
}

func (s *memoryStore) UpdatePointAddress(_ context.Context, pointID int64, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.points[pointID].Address = address
	return nil
}

func (s *memoryStore) IncrementFailureCount(_ context.Context, pointID int64, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts[pointID]++
	return nil
}

func (s *memoryStore) address(pointID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.points[pointID].Address
}

// oceanProvider cannot geocode points south of latitude 50.
type oceanProvider struct {
	calls atomic.Int64
}

func (p *oceanProvider) ReverseGeocode(_ context.Context, coords models.Coordinates) (string, error) {
	p.calls.Add(1)
	if coords.Latitude < 50 {
		return "", errors.New("unable to geocode")
	}
	return "Krymsky Val, 9, Moscow", nil
}

func TestProcessBatch_ExhaustedPointsAreSkipped(t *testing.T) {
	points := make([]models.PointOfInterest, 0, backfillBatchSize+1)
	for id := int64(1); id <= backfillBatchSize; id++ {
		points = append(points, models.PointOfInterest{ID: id, Latitude: 10, Longitude: -30})
	}
	gorkyPark := models.PointOfInterest{ID: backfillBatchSize + 1, Name: "Gorky Park", Latitude: 55.7298, Longitude: 37.6010}
	points = append(points, gorkyPark)

	store := newMemoryStore(points...)
	provider := &oceanProvider{}
	logger := slog.New(slog.DiscardHandler)
	service := NewAddressBackfillService(
		logger, store, provider, "nominatim", metrics.NewMetrics(prometheus.NewRegistry()), 4, time.Second,
	)
	ctx := t.Context()

	for range repository.MaxGeocodingAttempts {
		assert.Equal(t, backfillBatchSize, service.processBatch(ctx))
	}
	assert.Empty(t, store.address(gorkyPark.ID))

	assert.Equal(t, 1, service.processBatch(ctx))
	assert.Equal(t, "Krymsky Val, 9, Moscow", store.address(gorkyPark.ID))
	assert.Equal(t, int64(backfillBatchSize*repository.MaxGeocodingAttempts+1), provider.calls.Load())

	assert.Zero(t, service.processBatch(ctx))
	assert.Equal(t, int64(backfillBatchSize*repository.MaxGeocodingAttempts+1), provider.calls.Load())
}
