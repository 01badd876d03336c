package repository

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"sync/atomic"

	"github.com/UnknownOlympus/geotourist/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is the subset of the pgx pool used by the repository.
// It is satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type Database interface {
	Ping(ctx context.Context) error
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// Repository is the point store. It owns the points table and its schema lifecycle.
type Repository struct {
	db     Database
	script Script
	log    *slog.Logger
	open   atomic.Bool
}

// Interface describes the data-management operations used by the address backfill.
type Interface interface {
	FetchPointsWithoutAddress(ctx context.Context, limit int) ([]models.PointOfInterest, error)
	UpdatePointAddress(ctx context.Context, pointID int64, address string) error
	IncrementFailureCount(ctx context.Context, pointID int64, errMsg string) error
}

// NewRepository creates a new instance of Repository with the provided Database and bootstrap script.
// The repository refuses reads until Initialize succeeds.
func NewRepository(db Database, script Script, log *slog.Logger) *Repository {
	return &Repository{db: db, script: script, log: log}
}

// NewDatabase opens a pgx connection pool to the given PostgreSQL database.
// Any failure is reported as models.ErrStorageUnavailable.
func NewDatabase(ctx context.Context, host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     net.JoinHostPort(host, port),
		Path:     name,
		RawQuery: "sslmode=disable",
	}

	pool, err := pgxpool.New(ctx, dsn.String())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create connection pool: %w", models.ErrStorageUnavailable, err)
	}

	return pool, nil
}

// Close marks the store as closed and releases the underlying connections.
func (r *Repository) Close() {
	r.open.Store(false)
	r.db.Close()
}

// Ping checks that the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", models.ErrStorageUnavailable, err)
	}
	return nil
}
