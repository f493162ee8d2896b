package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/codeready-toolchain/ctrleval/pkg/batch"
	"github.com/codeready-toolchain/ctrleval/pkg/models"
)

// Runner executes one job's batch of items; implemented by pkg/batch's
// Coordinator in production, and by a stub in tests.
type Runner interface {
	RunBatch(ctx context.Context, items []models.EvaluationItem, perItemTimeout time.Duration, correlationID string, progress batch.ProgressFunc) []models.EvaluationResult
}

// Manager is the Job Manager (spec.md §4.6): submit/status/results/cancel
// over a pluggable Store, plus the worker and reaper background loops.
type Manager struct {
	store          Store
	runner         Runner
	perItemTimeout time.Duration
	jobTimeout     time.Duration
	reaperInterval time.Duration
	hardCeiling    time.Duration
}

// NewManager constructs a Manager. perItemTimeout is forwarded to the
// Batch Coordinator for each item; jobTimeout bounds one job's RUNNING
// phase; reaperInterval paces the retention reaper.
func NewManager(store Store, runner Runner, perItemTimeout, jobTimeout, reaperInterval time.Duration) *Manager {
	return &Manager{
		store:          store,
		runner:         runner,
		perItemTimeout: perItemTimeout,
		jobTimeout:     jobTimeout,
		reaperInterval: reaperInterval,
		hardCeiling:    jobTimeout * 2,
	}
}

// Submit persists a new job in SUBMITTED, transitions it to QUEUED, and
// enqueues it. Not idempotent: each call mints a fresh job id.
func (m *Manager) Submit(ctx context.Context, items []models.EvaluationItem, correlationID string, retentionSeconds int) (string, time.Duration, error) {
	id, err := NewID()
	if err != nil {
		return "", 0, err
	}

	j := &Job{
		ID:            id,
		State:         StateSubmitted,
		CorrelationID: correlationID,
		SubmittedAt:   time.Now(),
		Items:         items,
		RetentionSec:  retentionSeconds,
	}
	if err := m.store.Put(ctx, j); err != nil {
		return "", 0, fmt.Errorf("persisting submitted job: %w", err)
	}

	queued := *j
	queued.State = StateQueued
	if err := m.store.CompareAndSet(ctx, id, StateSubmitted, &queued); err != nil {
		return "", 0, fmt.Errorf("transitioning job to queued: %w", err)
	}
	if err := m.store.Enqueue(ctx, id); err != nil {
		return "", 0, fmt.Errorf("enqueuing job: %w", err)
	}

	return id, EstimateDuration(len(items)), nil
}

// QueueDepth reports how many jobs are currently pending, used by the
// HTTP Facade's BUSY backpressure check (spec.md §4.6, §4.7).
func (m *Manager) QueueDepth(ctx context.Context) (int, error) {
	return m.store.QueueDepth(ctx)
}

// Status returns a job's lifecycle snapshot, or ErrNotFound.
func (m *Manager) Status(ctx context.Context, id string) (*Job, error) {
	return m.store.Get(ctx, id)
}

// ErrNotReady is returned by Results while a job is not yet terminal.
var ErrNotReady = errors.New("job: results not ready")

// Results returns the job once it is COMPLETED, FAILED, CANCELLED or
// EXPIRED, so the caller can surface its results or errorKind/errorMessage.
// Returns ErrNotReady for a job in any other state.
func (m *Manager) Results(ctx context.Context, id string) (*Job, error) {
	j, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch j.State {
	case StateCompleted, StateFailed, StateCancelled, StateExpired:
		return j, nil
	default:
		return nil, ErrNotReady
	}
}

// Cancel sets the cancel flag on a job in SUBMITTED, QUEUED, or RUNNING;
// the worker observes it at the next task boundary (spec.md §4.6, §5).
func (m *Manager) Cancel(ctx context.Context, id string) error {
	j, err := m.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if j.State.IsTerminal() {
		return fmt.Errorf("job %s is already in terminal state %s", id, j.State)
	}

	cancelled := *j
	cancelled.CancelRequested = true
	if j.State != StateRunning {
		// Not yet picked up by a worker: cancel immediately.
		now := time.Now()
		cancelled.State = StateCancelled
		cancelled.CompletedAt = &now
	}
	return m.store.CompareAndSet(ctx, id, j.State, &cancelled)
}

// watchCancellation polls the store for id's CancelRequested flag and
// invokes batchCancel the moment it observes it set, short-circuiting a
// running batch instead of waiting for RunBatch to drain every item first.
// It returns on its own once ctx is done (job finished or timed out).
func (m *Manager) watchCancellation(ctx context.Context, id string, batchCancel context.CancelFunc) {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j, err := m.store.Get(ctx, id)
			if err != nil {
				continue
			}
			if j.CancelRequested {
				batchCancel()
				return
			}
		}
	}
}

// RunWorker runs a single dequeue worker loop until ctx is cancelled. The
// Job Manager typically starts several of these (spec.md §5).
func (m *Manager) RunWorker(ctx context.Context, workerID string) {
	log := slog.With("worker_id", workerID)
	log.Info("job worker started")
	defer log.Info("job worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		id, err := m.store.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, ErrQueueEmpty) {
				select {
				case <-ctx.Done():
					return
				case <-time.After(500 * time.Millisecond):
				}
				continue
			}
			log.Error("dequeue failed", "error", err)
			continue
		}

		m.processJob(ctx, log, id)
	}
}

func (m *Manager) processJob(ctx context.Context, log *slog.Logger, id string) {
	j, err := m.store.Get(ctx, id)
	if err != nil {
		log.Error("loading dequeued job failed", "job_id", id, "error", err)
		return
	}
	if j.State != StateQueued {
		// Another worker already claimed or reaped it.
		return
	}
	log = log.With("job_id", id, "correlation_id", j.CorrelationID)

	now := time.Now()
	running := *j
	running.State = StateRunning
	running.StartedAt = &now
	if err := m.store.CompareAndSet(ctx, id, StateQueued, &running); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return // lost the race to another worker
		}
		log.Error("claiming job failed", "error", err)
		return
	}

	jobCtx, cancel := context.WithTimeout(ctx, m.jobTimeout)
	defer cancel()

	// batchCtx is cancelled the moment CancelRequested is observed, rather
	// than only after RunBatch has already drained the whole batch — the
	// Batch Coordinator stops handing not-yet-started items to workers as
	// soon as it sees ctx done (spec.md §4.6, §5).
	batchCtx, cancelBatch := context.WithCancel(jobCtx)
	defer cancelBatch()
	go m.watchCancellation(jobCtx, id, cancelBatch)

	results := m.runner.RunBatch(batchCtx, running.Items, m.perItemTimeout, j.CorrelationID, func(percent, _ int) {
		m.updateProgress(ctx, id, percent)
	})

	if refreshed, err := m.store.Get(ctx, id); err == nil && refreshed.CancelRequested {
		completed := *refreshed
		completed.State = StateCancelled
		done := time.Now()
		completed.CompletedAt = &done
		completed.ErrorKind = models.ErrorKindCancelled
		completed.ErrorMessage = "job was cancelled before completion"
		if err := m.store.CompareAndSet(ctx, id, StateRunning, &completed); err != nil && !errors.Is(err, ErrVersionConflict) {
			log.Error("writing cancelled state failed", "error", err)
		}
		return
	}

	done := time.Now()
	finished := running
	finished.State = StateCompleted
	finished.CompletedAt = &done
	finished.Progress = 100
	finished.Results = results
	if err := jobCtx.Err(); err != nil {
		finished.State = StateFailed
		finished.ErrorKind = models.ErrorKindTimeout
		finished.ErrorMessage = "job exceeded its wall-clock budget"
		finished.Results = nil
	}

	if err := m.store.CompareAndSet(ctx, id, StateRunning, &finished); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return // lost the race: another worker already wrote a terminal state
		}
		log.Error("writing terminal state failed", "error", err)
	}
}

func (m *Manager) updateProgress(ctx context.Context, id string, percent int) {
	j, err := m.store.Get(ctx, id)
	if err != nil || j.State != StateRunning {
		return
	}
	updated := *j
	updated.Progress = percent
	_ = m.store.CompareAndSet(ctx, id, StateRunning, &updated)
}

// RunReaper removes retention-expired jobs and marks orphaned RUNNING
// jobs as EXPIRED, once per reaperInterval, until ctx is cancelled
// (spec.md §4.6).
func (m *Manager) RunReaper(ctx context.Context) {
	ticker := time.NewTicker(m.reaperInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.reapOnce(ctx)
		}
	}
}

func (m *Manager) reapOnce(ctx context.Context) {
	ids, err := m.store.ListExpired(ctx, time.Now(), m.hardCeiling)
	if err != nil {
		slog.Error("listing expired jobs failed", "error", err)
		return
	}
	for _, id := range ids {
		j, err := m.store.Get(ctx, id)
		if err != nil {
			continue
		}
		if j.State == StateRunning {
			expired := *j
			expired.State = StateExpired
			now := time.Now()
			expired.CompletedAt = &now
			expired.ErrorKind = models.ErrorKindTimeout
			expired.ErrorMessage = "job was orphaned in RUNNING past the hard ceiling and marked expired"
			_ = m.store.CompareAndSet(ctx, id, StateRunning, &expired)
			continue
		}
		if j.State.IsTerminal() {
			_ = m.store.Delete(ctx, id)
		}
	}
}
