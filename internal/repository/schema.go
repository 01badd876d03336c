package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/geotourist/internal/models"
	"github.com/jackc/pgx/v5"
)

const pointsTable = "points"

// column is a column the current schema version expects on the points table.
// Only additive columns may be created by migration; the others come from the bootstrap script.
type column struct {
	name       string
	definition string
	additive   bool
}

var pointColumns = []column{
	{name: "id", definition: "BIGINT PRIMARY KEY"},
	{name: "name", definition: "TEXT NOT NULL"},
	{name: "description", definition: "TEXT NOT NULL DEFAULT ''"},
	{name: "address", definition: "TEXT", additive: true},
	{name: "latitude", definition: "DOUBLE PRECISION NOT NULL"},
	{name: "longitude", definition: "DOUBLE PRECISION NOT NULL"},
	{name: "image_path", definition: "TEXT NOT NULL DEFAULT ''"},
	{name: "geocoding_attempts", definition: "INTEGER NOT NULL DEFAULT 0", additive: true},
	{name: "geocoding_error", definition: "TEXT", additive: true},
}

const tableExistsQuery = `
	SELECT EXISTS (
		SELECT 1
		FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = $1
	);
`

const tableColumnsQuery = `
	SELECT column_name
	FROM information_schema.columns
	WHERE table_schema = current_schema() AND table_name = $1;
`

// schemaLockKey identifies the advisory lock serializing schema changes across processes.
const schemaLockKey int64 = 0x67656f746f7572

const schemaLockQuery = `SELECT pg_advisory_xact_lock($1);`

// Initialize opens the store for reads. It creates the points table from the bootstrap script
// when it does not exist, or adds the additive columns the current schema expects when it does.
// Schema changes run under a transaction-scoped advisory lock, so concurrent processes
// initializing the same database do not race on CREATE TABLE.
//
// Errors:
// - models.ErrStorageUnavailable when the database cannot be reached or inspected.
// - models.ErrSchemaBootstrapFailed when the script fails; nothing it created is kept.
// - models.ErrSchemaMigrationFailed when a column cannot be added.
//
// Initialize is idempotent: calling it on an up-to-date schema changes nothing.
func (r *Repository) Initialize(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: failed to ping database: %w", models.ErrStorageUnavailable, err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, tableExistsQuery, pointsTable).Scan(&exists); err != nil {
		return fmt.Errorf("%w: failed to inspect schema: %w", models.ErrStorageUnavailable, err)
	}

	bootstrapped := false
	var err error
	if exists {
		err = r.migrate(ctx)
	} else {
		bootstrapped, err = r.bootstrap(ctx)
	}
	if err != nil {
		return err
	}

	r.open.Store(true)
	r.log.InfoContext(ctx, "Point store initialized", "bootstrapped", bootstrapped)

	return nil
}

// bootstrap runs every statement of the script and the column check in a single transaction.
// When another process created the table while this one waited for the lock, the script is
// skipped and only the column check runs. It reports whether the script was executed.
func (r *Repository) bootstrap(ctx context.Context) (bool, error) {
	statements, err := r.script.Statements()
	if err != nil {
		return false, fmt.Errorf("%w: %w", models.ErrSchemaBootstrapFailed, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: failed to begin transaction: %w", models.ErrSchemaBootstrapFailed, err)
	}

	if err = lockSchema(ctx, tx); err != nil {
		r.rollback(ctx, tx)
		return false, fmt.Errorf("%w: %w", models.ErrSchemaBootstrapFailed, err)
	}

	var exists bool
	if err = tx.QueryRow(ctx, tableExistsQuery, pointsTable).Scan(&exists); err != nil {
		r.rollback(ctx, tx)
		return false, fmt.Errorf("%w: failed to inspect schema: %w", models.ErrSchemaBootstrapFailed, err)
	}

	if exists {
		r.log.InfoContext(ctx, "Points table was created concurrently, skipping bootstrap script")
	} else {
		r.log.InfoContext(ctx, "Points table not found, running bootstrap script", "statements", len(statements))

		for idx, stmt := range statements {
			if _, err = tx.Exec(ctx, stmt); err != nil {
				r.rollback(ctx, tx)
				return false, fmt.Errorf("%w: statement %d failed: %w", models.ErrSchemaBootstrapFailed, idx+1, err)
			}
		}
	}

	if _, err = r.ensureColumns(ctx, tx); err != nil {
		r.rollback(ctx, tx)
		return false, fmt.Errorf("%w: %w", models.ErrSchemaBootstrapFailed, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("%w: failed to commit: %w", models.ErrSchemaBootstrapFailed, err)
	}

	return !exists, nil
}

// migrate adds the missing additive columns to an existing points table.
func (r *Repository) migrate(ctx context.Context) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", models.ErrSchemaMigrationFailed, err)
	}

	if err = lockSchema(ctx, tx); err != nil {
		r.rollback(ctx, tx)
		return fmt.Errorf("%w: %w", models.ErrSchemaMigrationFailed, err)
	}

	added, err := r.ensureColumns(ctx, tx)
	if err != nil {
		r.rollback(ctx, tx)
		return fmt.Errorf("%w: %w", models.ErrSchemaMigrationFailed, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit: %w", models.ErrSchemaMigrationFailed, err)
	}

	if len(added) == 0 {
		r.log.DebugContext(ctx, "Points table schema is up to date")
	}

	return nil
}

// lockSchema blocks until this transaction holds the schema lock. The lock is released on commit or rollback.
func lockSchema(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, schemaLockQuery, schemaLockKey); err != nil {
		return fmt.Errorf("failed to acquire schema lock: %w", err)
	}

	return nil
}

// ensureColumns compares the table against pointColumns and adds the missing additive columns.
// It returns the names of the columns it added.
func (r *Repository) ensureColumns(ctx context.Context, tx pgx.Tx) ([]string, error) {
	rows, err := tx.Query(ctx, tableColumnsQuery, pointsTable)
	if err != nil {
		return nil, fmt.Errorf("failed to query table columns: %w", err)
	}

	existing := make(map[string]bool)
	for rows.Next() {
		var name string
		if errScan := rows.Scan(&name); errScan != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan table column: %w", errScan)
		}
		existing[name] = true
	}
	rows.Close()

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table columns: %w", err)
	}

	var added []string
	for _, col := range pointColumns {
		if existing[col.name] {
			continue
		}
		if !col.additive {
			return nil, fmt.Errorf("points table is missing required column %q", col.name)
		}

		stmt := fmt.Sprintf(
			"ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s",
			pgx.Identifier{pointsTable}.Sanitize(),
			pgx.Identifier{col.name}.Sanitize(),
			col.definition,
		)
		if _, err = tx.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("failed to add column %q: %w", col.name, err)
		}

		r.log.InfoContext(ctx, "Added column to points table", "column", col.name)
		added = append(added, col.name)
	}

	return added, nil
}

func (r *Repository) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil {
		r.log.ErrorContext(ctx, "Failed to roll back schema transaction", "error", err)
	}
}
