// Package pgstore is the production job.Store backend: PostgreSQL via
// jackc/pgx/v5 for queries, golang-migrate/migrate/v4 with embedded
// migrations for schema management — grounded in the teacher's
// pkg/database/client.go (embed.FS + iofs source + postgres driver) and
// pkg/queue/worker.go's "SELECT ... FOR UPDATE SKIP LOCKED" claim
// pattern, adapted here to plain SQL since the teacher's claim query runs
// through the generated ent client this repo doesn't carry forward.
package pgstore

import (
	"context"
	stdsql "database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver for migrate

	"github.com/codeready-toolchain/ctrleval/pkg/job"
)

//go:embed migrations
var migrationsFS embed.FS

// Store is a PostgreSQL-backed job.Store.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to databaseURL, applies pending migrations, and returns a
// ready Store.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	if err := runMigrations(databaseURL); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	return &Store{pool: pool}, nil
}

func runMigrations(databaseURL string) error {
	db, err := stdsql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("opening migration connection: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("creating postgres migrate driver: %w", err)
	}
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("creating migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", driver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return sourceDriver.Close()
}

func (s *Store) Put(ctx context.Context, j *job.Job) error {
	itemsJSON, err := json.Marshal(j.Items)
	if err != nil {
		return fmt.Errorf("marshaling items: %w", err)
	}
	resultsJSON, err := json.Marshal(j.Results)
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO jobs (id, state, correlation_id, submitted_at, started_at, completed_at, progress, items,
		                  results, error_kind, error_message, retention_seconds, cancel_requested, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 1)
		ON CONFLICT (id) DO UPDATE SET
			state = EXCLUDED.state, correlation_id = EXCLUDED.correlation_id,
			submitted_at = EXCLUDED.submitted_at, started_at = EXCLUDED.started_at,
			completed_at = EXCLUDED.completed_at, progress = EXCLUDED.progress,
			items = EXCLUDED.items, results = EXCLUDED.results, error_kind = EXCLUDED.error_kind,
			error_message = EXCLUDED.error_message, retention_seconds = EXCLUDED.retention_seconds,
			cancel_requested = EXCLUDED.cancel_requested`,
		j.ID, j.State, j.CorrelationID, j.SubmittedAt, j.StartedAt, j.CompletedAt, j.Progress, itemsJSON,
		resultsJSON, j.ErrorKind, j.ErrorMessage, j.RetentionSec, j.CancelRequested)
	if err != nil {
		return fmt.Errorf("inserting job %s: %w", j.ID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*job.Job, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, state, correlation_id, submitted_at, started_at, completed_at,
		       progress, items, results, error_kind, error_message, retention_seconds,
		       cancel_requested, version
		FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, job.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading job %s: %w", id, err)
	}
	return j, nil
}

func scanJob(row pgx.Row) (*job.Job, error) {
	var j job.Job
	var itemsJSON, resultsJSON []byte
	if err := row.Scan(
		&j.ID, &j.State, &j.CorrelationID, &j.SubmittedAt, &j.StartedAt, &j.CompletedAt,
		&j.Progress, &itemsJSON, &resultsJSON, &j.ErrorKind, &j.ErrorMessage, &j.RetentionSec,
		&j.CancelRequested, &j.Version,
	); err != nil {
		return nil, err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &j.Items); err != nil {
			return nil, fmt.Errorf("unmarshaling items: %w", err)
		}
	}
	if len(resultsJSON) > 0 {
		if err := json.Unmarshal(resultsJSON, &j.Results); err != nil {
			return nil, fmt.Errorf("unmarshaling results: %w", err)
		}
	}
	return &j, nil
}

func (s *Store) CompareAndSet(ctx context.Context, id string, expectedState job.State, newJob *job.Job) error {
	resultsJSON, err := json.Marshal(newJob.Results)
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE jobs SET
			state = $1, started_at = $2, completed_at = $3, progress = $4,
			results = $5, error_kind = $6, error_message = $7,
			cancel_requested = $8, retention_seconds = $11, version = version + 1
		WHERE id = $9 AND state = $10`,
		newJob.State, newJob.StartedAt, newJob.CompletedAt, newJob.Progress,
		resultsJSON, newJob.ErrorKind, newJob.ErrorMessage, newJob.CancelRequested,
		id, expectedState, newJob.RetentionSec)
	if err != nil {
		return fmt.Errorf("updating job %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := s.Get(ctx, id); errors.Is(getErr, job.ErrNotFound) {
			return job.ErrNotFound
		}
		return job.ErrVersionConflict
	}
	return nil
}

func (s *Store) Enqueue(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO job_queue (job_id) VALUES ($1)`, id)
	if err != nil {
		return fmt.Errorf("enqueuing job %s: %w", id, err)
	}
	return nil
}

// Dequeue claims the oldest pending queue row with SELECT ... FOR UPDATE
// SKIP LOCKED so concurrent workers never contend on the same row, then
// deletes it within the same transaction.
func (s *Store) Dequeue(ctx context.Context) (string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("starting dequeue transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var seq int64
	var jobID string
	err = tx.QueryRow(ctx, `
		SELECT seq, job_id FROM job_queue
		ORDER BY seq ASC
		FOR UPDATE SKIP LOCKED
		LIMIT 1`).Scan(&seq, &jobID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", job.ErrQueueEmpty
	}
	if err != nil {
		return "", fmt.Errorf("claiming queue row: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM job_queue WHERE seq = $1`, seq); err != nil {
		return "", fmt.Errorf("removing claimed queue row: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("committing dequeue: %w", err)
	}
	return jobID, nil
}

func (s *Store) QueueDepth(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM job_queue`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting queue depth: %w", err)
	}
	return n, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting job %s: %w", id, err)
	}
	return nil
}

func (s *Store) ListExpired(ctx context.Context, now time.Time, hardCeiling time.Duration) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id FROM jobs
		WHERE (state = 'RUNNING' AND started_at IS NOT NULL AND started_at < $1)
		   OR (state IN ('COMPLETED', 'FAILED', 'CANCELLED', 'EXPIRED')
		       AND completed_at IS NOT NULL
		       AND completed_at + make_interval(secs => retention_seconds) < $2)`,
		now.Add(-hardCeiling), now)
	if err != nil {
		return nil, fmt.Errorf("listing expired jobs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning expired job id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
