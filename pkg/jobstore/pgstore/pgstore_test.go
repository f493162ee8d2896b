package pgstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/codeready-toolchain/ctrleval/pkg/job"
)

// newTestStore spins up a disposable Postgres container, applies the
// store's own embedded migrations through New, and tears the container
// down at the end of the test.
func newTestStore(t *testing.T) *Store {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("ctrleval_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestPgStore_PutGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	j := &job.Job{ID: "j1", State: job.StateSubmitted, SubmittedAt: time.Now()}
	require.NoError(t, s.Put(ctx, j))

	got, err := s.Get(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, job.StateSubmitted, got.State)
}

func TestPgStore_Get_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestPgStore_CompareAndSet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, &job.Job{ID: "j1", State: job.StateSubmitted, SubmittedAt: time.Now()}))

	queued := &job.Job{ID: "j1", State: job.StateQueued}
	require.NoError(t, s.CompareAndSet(ctx, "j1", job.StateSubmitted, queued))

	got, err := s.Get(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, job.StateQueued, got.State)
}

func TestPgStore_CompareAndSet_Conflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, &job.Job{ID: "j1", State: job.StateSubmitted, SubmittedAt: time.Now()}))

	err := s.CompareAndSet(ctx, "j1", job.StateRunning, &job.Job{ID: "j1", State: job.StateQueued})
	assert.ErrorIs(t, err, job.ErrVersionConflict)
}

func TestPgStore_EnqueueDequeueFIFO(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Enqueue(ctx, "a"))
	require.NoError(t, s.Enqueue(ctx, "b"))

	depth, err := s.QueueDepth(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, depth)

	id, err := s.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", id)

	depth, err = s.QueueDepth(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, depth)
}

func TestPgStore_Dequeue_Empty(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Dequeue(context.Background())
	assert.ErrorIs(t, err, job.ErrQueueEmpty)
}

func TestPgStore_ListExpired(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	expiredAt := time.Now().Add(-2 * time.Hour)
	freshAt := time.Now()

	require.NoError(t, s.Put(ctx, &job.Job{ID: "old", State: job.StateSubmitted, SubmittedAt: time.Now()}))
	require.NoError(t, s.CompareAndSet(ctx, "old", job.StateSubmitted, &job.Job{ID: "old", State: job.StateCompleted, CompletedAt: &expiredAt, RetentionSec: 60}))

	require.NoError(t, s.Put(ctx, &job.Job{ID: "fresh", State: job.StateSubmitted, SubmittedAt: time.Now()}))
	require.NoError(t, s.CompareAndSet(ctx, "fresh", job.StateSubmitted, &job.Job{ID: "fresh", State: job.StateCompleted, CompletedAt: &freshAt, RetentionSec: 604800}))

	ids, err := s.ListExpired(ctx, time.Now(), time.Hour)
	require.NoError(t, err)
	assert.Contains(t, ids, "old")
	assert.NotContains(t, ids, "fresh")
}
