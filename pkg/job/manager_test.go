package job_test

import (
	"context"
	"testing"
	"time"

	"github.com/codeready-toolchain/ctrleval/pkg/batch"
	"github.com/codeready-toolchain/ctrleval/pkg/job"
	"github.com/codeready-toolchain/ctrleval/pkg/jobstore/memstore"
	"github.com/codeready-toolchain/ctrleval/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRunner implements job.Runner with canned results, so Manager's
// lifecycle plumbing can be exercised without a real Graph Orchestrator.
type stubRunner struct {
	delay   time.Duration
	results []models.EvaluationResult
}

func (r *stubRunner) RunBatch(ctx context.Context, items []models.EvaluationItem, _ time.Duration, _ string, progress batch.ProgressFunc) []models.EvaluationResult {
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return nil
		}
	}
	if progress != nil {
		progress(100, len(items)-1)
	}
	if r.results != nil {
		return r.results
	}
	out := make([]models.EvaluationResult, len(items))
	for i, it := range items {
		out[i] = models.EvaluationResult{ID: it.ID, EvaluationResult: true}
	}
	return out
}

func testItem(id string) models.EvaluationItem {
	return models.EvaluationItem{ID: id, ControlDescription: "desc", TestProcedure: "proc"}
}

func waitForState(t *testing.T, m *job.Manager, id string, want job.State, timeout time.Duration) *job.Job {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		j, err := m.Status(context.Background(), id)
		require.NoError(t, err)
		if j.State == want {
			return j
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s did not reach state %s in time", id, want)
	return nil
}

func TestManager_SubmitAndRunToCompletion(t *testing.T) {
	store := memstore.New()
	runner := &stubRunner{}
	m := job.NewManager(store, runner, 0, time.Second, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.RunWorker(ctx, "worker-1")

	id, _, err := m.Submit(context.Background(), []models.EvaluationItem{testItem("a")}, "corr-1", 60)
	require.NoError(t, err)

	j := waitForState(t, m, id, job.StateCompleted, time.Second)
	assert.Equal(t, "corr-1", j.CorrelationID)
	require.Len(t, j.Results, 1)
	assert.True(t, j.Results[0].EvaluationResult)
}

func TestManager_Results_NotReadyWhileQueued(t *testing.T) {
	store := memstore.New()
	runner := &stubRunner{}
	m := job.NewManager(store, runner, 0, time.Second, time.Hour)

	id, _, err := m.Submit(context.Background(), []models.EvaluationItem{testItem("a")}, "", 60)
	require.NoError(t, err)

	_, err = m.Results(context.Background(), id)
	assert.ErrorIs(t, err, job.ErrNotReady)
}

func TestManager_CancelBeforeRunning(t *testing.T) {
	store := memstore.New()
	runner := &stubRunner{}
	m := job.NewManager(store, runner, 0, time.Second, time.Hour)

	id, _, err := m.Submit(context.Background(), []models.EvaluationItem{testItem("a")}, "", 60)
	require.NoError(t, err)

	require.NoError(t, m.Cancel(context.Background(), id))

	j, err := m.Status(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, job.StateCancelled, j.State)
}

func TestManager_CancelAlreadyTerminal(t *testing.T) {
	store := memstore.New()
	runner := &stubRunner{}
	m := job.NewManager(store, runner, 0, time.Second, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.RunWorker(ctx, "worker-1")

	id, _, err := m.Submit(context.Background(), []models.EvaluationItem{testItem("a")}, "", 60)
	require.NoError(t, err)
	waitForState(t, m, id, job.StateCompleted, time.Second)

	err = m.Cancel(context.Background(), id)
	assert.Error(t, err)
}

func TestManager_QueueDepth(t *testing.T) {
	store := memstore.New()
	runner := &stubRunner{}
	m := job.NewManager(store, runner, 0, time.Second, time.Hour)

	_, _, err := m.Submit(context.Background(), []models.EvaluationItem{testItem("a")}, "", 60)
	require.NoError(t, err)
	_, _, err = m.Submit(context.Background(), []models.EvaluationItem{testItem("b")}, "", 60)
	require.NoError(t, err)

	depth, err := m.QueueDepth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, depth)
}

func TestManager_JobTimeout(t *testing.T) {
	store := memstore.New()
	runner := &stubRunner{delay: 100 * time.Millisecond}
	m := job.NewManager(store, runner, 0, 10*time.Millisecond, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.RunWorker(ctx, "worker-1")

	id, _, err := m.Submit(context.Background(), []models.EvaluationItem{testItem("a")}, "", 60)
	require.NoError(t, err)

	j := waitForState(t, m, id, job.StateFailed, time.Second)
	assert.Equal(t, models.ErrorKindTimeout, j.ErrorKind)
}

func TestManager_Status_NotFound(t *testing.T) {
	store := memstore.New()
	runner := &stubRunner{}
	m := job.NewManager(store, runner, 0, time.Second, time.Hour)

	_, err := m.Status(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestReaper_DeletesTerminalExpiredJobs(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	completed := time.Now().Add(-time.Hour)
	require.NoError(t, store.Put(ctx, &job.Job{ID: "old", State: job.StateCompleted, CompletedAt: &completed, RetentionSec: 1}))

	runner := &stubRunner{}
	m := job.NewManager(store, runner, 0, time.Second, 10*time.Millisecond)

	reapCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	m.RunReaper(reapCtx)

	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, job.ErrNotFound)
}
