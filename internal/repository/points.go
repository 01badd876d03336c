package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/geotourist/internal/models"
	"github.com/jackc/pgx/v5"
)

// ErrPointNotFound is returned when an update targets a point that does not exist.
var ErrPointNotFound = errors.New("point not found")

// MaxGeocodingAttempts is the number of failed reverse geocoding attempts after which
// a point is no longer returned by FetchPointsWithoutAddress.
const MaxGeocodingAttempts = 5

const selectPointsQuery = `
	SELECT id, name, COALESCE(description, ''), COALESCE(address, ''), latitude, longitude, COALESCE(image_path, '')
	FROM points
	ORDER BY id ASC;
`

const selectPointsWithoutAddressQuery = `
	SELECT id, name, COALESCE(description, ''), COALESCE(address, ''), latitude, longitude, COALESCE(image_path, '')
	FROM points
	WHERE (address IS NULL OR address = '')
		AND geocoding_attempts < $2
	ORDER BY id ASC
	LIMIT $1;
`

const updatePointAddressQuery = `
	UPDATE points
	SET address = $1, geocoding_error = NULL
	WHERE id = $2;
`

const incrementFailureCountQuery = `
	UPDATE points
	SET
		geocoding_attempts = geocoding_attempts + 1,
		geocoding_error = $1
	WHERE id = $2;
`

// QueryAll returns every stored point in ascending id order.
//
// Errors:
// - models.ErrStorageUnavailable if Initialize has not succeeded or the store is closed.
// - models.ErrQueryFailed if the read or a row scan fails.
func (r *Repository) QueryAll(ctx context.Context) ([]models.PointOfInterest, error) {
	if !r.open.Load() {
		return nil, models.ErrStorageUnavailable
	}

	rows, err := r.db.Query(ctx, selectPointsQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query points: %w", models.ErrQueryFailed, err)
	}

	points, err := scanPoints(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrQueryFailed, err)
	}

	r.log.DebugContext(ctx, "Points loaded from storage", "count", len(points))

	return points, nil
}

// FetchPointsWithoutAddress retrieves up to limit points whose address is NULL or empty,
// ordered by id. Rows created before the address column existed fall in this set.
// Points that failed MaxGeocodingAttempts times are skipped.
func (r *Repository) FetchPointsWithoutAddress(ctx context.Context, limit int) ([]models.PointOfInterest, error) {
	if !r.open.Load() {
		return nil, models.ErrStorageUnavailable
	}

	rows, err := r.db.Query(ctx, selectPointsWithoutAddressQuery, limit, MaxGeocodingAttempts)
	if err != nil {
		return nil, fmt.Errorf("failed to query points without address: %w", err)
	}

	points, err := scanPoints(rows)
	if err != nil {
		return nil, err
	}

	for _, point := range points {
		r.log.DebugContext(ctx, "A point without address has been received.", "ID", point.ID, "Name", point.Name)
	}

	return points, nil
}

// UpdatePointAddress sets the address of the point identified by pointID.
func (r *Repository) UpdatePointAddress(ctx context.Context, pointID int64, address string) error {
	if !r.open.Load() {
		return models.ErrStorageUnavailable
	}

	tag, err := r.db.Exec(ctx, updatePointAddressQuery, address, pointID)
	if err != nil {
		return fmt.Errorf("failed to update point address: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", ErrPointNotFound, pointID)
	}

	return nil
}

// IncrementFailureCount records a failed reverse geocoding attempt for the point with the error message.
func (r *Repository) IncrementFailureCount(ctx context.Context, pointID int64, errMsg string) error {
	if !r.open.Load() {
		return models.ErrStorageUnavailable
	}

	_, err := r.db.Exec(ctx, incrementFailureCountQuery, errMsg, pointID)
	if err != nil {
		return fmt.Errorf("failed to update geocoding error and number of attempts: %w", err)
	}

	return nil
}

func scanPoints(rows pgx.Rows) ([]models.PointOfInterest, error) {
	defer rows.Close()

	var points []models.PointOfInterest
	for rows.Next() {
		var point models.PointOfInterest
		if err := rows.Scan(
			&point.ID,
			&point.Name,
			&point.Description,
			&point.Address,
			&point.Latitude,
			&point.Longitude,
			&point.ImagePath,
		); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		points = append(points, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return points, nil
}
