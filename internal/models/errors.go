package models

import "errors"

var (
	// ErrStorageUnavailable is returned when the point storage cannot be opened or is not open.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrSchemaBootstrapFailed is returned when the bootstrap script could not be applied.
	ErrSchemaBootstrapFailed = errors.New("schema bootstrap failed")
	// ErrSchemaMigrationFailed is returned when an additive migration could not be applied.
	ErrSchemaMigrationFailed = errors.New("schema migration failed")
	// ErrQueryFailed is returned when points could not be read from storage.
	ErrQueryFailed = errors.New("query failed")
	// ErrInvalidRadius is returned for a radius that is not a positive finite number of meters.
	ErrInvalidRadius = errors.New("invalid radius")
	// ErrLocationUnavailable is returned when a query is attempted without a valid fix.
	ErrLocationUnavailable = errors.New("location unavailable")
	// ErrStaleSelection is returned when the user selects a point that is not in the last result set.
	ErrStaleSelection = errors.New("stale selection")
)
