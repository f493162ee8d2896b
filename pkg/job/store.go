package job

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store operations that address a job id that
// doesn't exist.
var ErrNotFound = errors.New("job: not found")

// ErrVersionConflict is returned by CompareAndSet when another writer won
// the race — the caller that loses discards its result (spec.md §4.6
// at-most-once delivery guarantee).
var ErrVersionConflict = errors.New("job: version conflict")

// ErrQueueEmpty is returned by Dequeue when no job id is pending.
var ErrQueueEmpty = errors.New("job: queue empty")

// Store is the nine-operation durable-store abstraction spec.md §4.6
// requires of the Job Manager: a key-value mapping from jobId to Job plus
// a FIFO queue of pending jobIds. Every backend (memory, Postgres, Redis)
// implements this same interface.
type Store interface {
	// Put persists job, overwriting any existing record for job.ID.
	Put(ctx context.Context, j *Job) error
	// Get returns the job for id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Job, error)
	// CompareAndSet atomically replaces the stored job for newJob.ID with
	// newJob, but only if the stored job's state equals expectedState.
	// Returns ErrVersionConflict if another writer already transitioned it.
	CompareAndSet(ctx context.Context, id string, expectedState State, newJob *Job) error
	// Enqueue appends id to the pending-work FIFO queue.
	Enqueue(ctx context.Context, id string) error
	// Dequeue pops the next pending job id, or ErrQueueEmpty.
	Dequeue(ctx context.Context) (string, error)
	// QueueDepth returns the number of ids currently pending in the FIFO
	// queue, used by the HTTP Facade's BUSY backpressure check.
	QueueDepth(ctx context.Context) (int, error)
	// Delete removes a job record entirely (used by the retention reaper).
	Delete(ctx context.Context, id string) error
	// ListExpired returns the ids of jobs whose completedAt+retention is
	// before now, plus orphaned RUNNING jobs older than hardCeiling.
	ListExpired(ctx context.Context, now time.Time, hardCeiling time.Duration) ([]string, error)
	// Close releases any resources the store holds (connections, pools).
	Close() error
}
