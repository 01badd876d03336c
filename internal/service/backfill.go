package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/geotourist/internal/geocoding"
	"github.com/UnknownOlympus/geotourist/internal/metrics"
	"github.com/UnknownOlympus/geotourist/internal/models"
	"github.com/UnknownOlympus/geotourist/internal/repository"
)

const backfillBatchSize = 100

// AddressBackfillService fills in the address of points created before the address
// column existed, by reverse geocoding their coordinates.
type AddressBackfillService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Interface for data repository access
	provider     geocoding.Provider   // Reverse geocoding provider
	providerName string               // Name of the provider for metrics labeling
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	numWorkers   int                  // Number of concurrent workers for processing
	pollInterval time.Duration        // Interval between backfill passes
}

// NewAddressBackfillService creates a new instance of AddressBackfillService.
func NewAddressBackfillService(
	log *slog.Logger,
	repo repository.Interface,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
) *AddressBackfillService {
	if numWorkers < 1 {
		numWorkers = 1
	}

	return &AddressBackfillService{
		log:          log,
		repo:         repo,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
		numWorkers:   numWorkers,
		pollInterval: pollInterval,
	}
}

// Run processes a first batch at once and then one batch per poll interval until ctx is cancelled.
func (bs *AddressBackfillService) Run(ctx context.Context) {
	ticker := time.NewTicker(bs.pollInterval)
	defer ticker.Stop()

	bs.log.InfoContext(ctx, "Address backfill started", "interval", bs.pollInterval)
	bs.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			bs.log.InfoContext(ctx, "Address backfill stopped")
			return
		case <-ticker.C:
			bs.log.DebugContext(ctx, "Polling for points without address")
			bs.processBatch(ctx)
		}
	}
}

// processBatch fetches points without address and resolves them in a worker pool.
// It returns the number of points that were fetched.
func (bs *AddressBackfillService) processBatch(ctx context.Context) int {
	points, err := bs.repo.FetchPointsWithoutAddress(ctx, backfillBatchSize)
	if err != nil {
		bs.log.ErrorContext(ctx, "Failed to fetch points without address", "error", err)
		return 0
	}
	if len(points) == 0 {
		bs.log.DebugContext(ctx, "No points to process")
		return 0
	}

	bs.log.InfoContext(ctx, "Found points to process. Starting worker pool.",
		"jobs", len(points),
		"num_workers", bs.numWorkers,
	)

	jobs := make(chan models.PointOfInterest, len(points))
	var wgr sync.WaitGroup

	for i := 1; i <= bs.numWorkers; i++ {
		wgr.Add(1)
		go bs.worker(ctx, i, &wgr, jobs)
	}

	for _, point := range points {
		jobs <- point
	}
	close(jobs)

	wgr.Wait()
	bs.log.InfoContext(ctx, "Processing batch finished")

	return len(points)
}

func (bs *AddressBackfillService) worker(
	ctx context.Context,
	idx int,
	wg *sync.WaitGroup,
	jobs <-chan models.PointOfInterest,
) {
	defer wg.Done()
	for point := range jobs {
		bs.metrics.ActiveWorkers.Inc()
		bs.resolve(ctx, idx, point)
		bs.metrics.ActiveWorkers.Dec()
	}
}

func (bs *AddressBackfillService) resolve(ctx context.Context, idx int, point models.PointOfInterest) {
	bs.log.DebugContext(ctx, "Processing point", "worker", idx, "point", point.ID)

	startTime := time.Now()
	address, err := bs.provider.ReverseGeocode(ctx, point.Coordinates())
	bs.metrics.RequestSeconds.WithLabelValues(bs.providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		bs.log.ErrorContext(ctx, "Failed to reverse geocode", "worker", idx, "point", point.ID, "error", err)
		bs.metrics.PointsProcessed.WithLabelValues("failure").Inc()
		bs.metrics.APIErrors.Inc()

		if err = bs.repo.IncrementFailureCount(ctx, point.ID, err.Error()); err != nil {
			bs.log.ErrorContext(ctx, "Could not update failure count for point", "worker", idx, "point", point.ID, "error", err)
		}
		return
	}

	if err = bs.repo.UpdatePointAddress(ctx, point.ID, address); err != nil {
		bs.log.ErrorContext(ctx, "Failed to update address for point", "worker", idx, "point", point.ID, "error", err)
		bs.metrics.PointsProcessed.WithLabelValues("failure").Inc()
		return
	}

	bs.metrics.PointsProcessed.WithLabelValues("success").Inc()
	bs.log.DebugContext(ctx, "Worker successfully processed the point", "worker", idx, "point", point.ID)
}
