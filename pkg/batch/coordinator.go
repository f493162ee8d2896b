// Package batch implements the Batch Coordinator (spec.md §4.5): a
// bounded worker pool that runs one batch of items concurrently, applies
// per-item and global deadlines, and reports progress. Grounded in the
// teacher's pkg/queue.WorkerPool/Worker (pkg/queue/pool.go,
// pkg/queue/worker.go) — same shape of a fixed goroutine pool draining a
// work channel with per-unit status bookkeeping — generalized here from
// "claim one DB row, run one session" to "take one item off an in-memory
// slice, run one graph".
package batch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/codeready-toolchain/ctrleval/pkg/config"
	"github.com/codeready-toolchain/ctrleval/pkg/evidence"
	"github.com/codeready-toolchain/ctrleval/pkg/graph"
	"github.com/codeready-toolchain/ctrleval/pkg/models"
)

// ProgressFunc reports batch progress as an integer percent complete plus
// the index of the item that just finished.
type ProgressFunc func(percent int, itemIndex int)

// Coordinator runs a batch of EvaluationItems through evidence extraction
// and the Graph Orchestrator, with a fixed-size worker pool.
type Coordinator struct {
	orchestrator *graph.Orchestrator
	evidence     *evidence.Processor
	cfg          *config.BatchConfig
}

// NewCoordinator constructs a Coordinator. It holds no per-batch state and
// is safe to reuse across batches and goroutines.
func NewCoordinator(orchestrator *graph.Orchestrator, ev *evidence.Processor, cfg *config.BatchConfig) *Coordinator {
	return &Coordinator{orchestrator: orchestrator, evidence: ev, cfg: cfg}
}

// RunBatch evaluates every item concurrently, bounded by
// cfg.MaxConcurrentEvaluations, and returns a result for every input in
// the same order (spec.md §4.5, §5). ctx should already carry the
// job-level deadline — and, for an async job, should be cancelled promptly
// once cancellation is requested, so workers stop pulling new units rather
// than draining the whole queue first (spec.md §4.6, §5). perItemTimeout
// (0 disables it) applies in addition, per item. correlationID is threaded
// into every item's logger for request/job-wide log correlation (spec.md
// §8).
func (c *Coordinator) RunBatch(ctx context.Context, items []models.EvaluationItem, perItemTimeout time.Duration, correlationID string, progress ProgressFunc) []models.EvaluationResult {
	results := make([]models.EvaluationResult, len(items))
	if len(items) == 0 {
		return results
	}

	type unit struct {
		index int
		item  models.EvaluationItem
	}
	units := make(chan unit, len(items))
	for i, item := range items {
		units <- unit{index: i, item: item}
	}
	close(units)

	workers := c.cfg.MaxConcurrentEvaluations
	if workers > len(items) {
		workers = len(items)
	}
	if workers < 1 {
		workers = 1
	}

	var completed int32
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for u := range units {
				results[u.index] = c.runOne(ctx, u.item, perItemTimeout, correlationID)

				n := atomic.AddInt32(&completed, 1)
				if progress != nil {
					progress(int(n*100/int32(len(items))), u.index)
				}
			}
		}()
	}
	wg.Wait()

	return results
}

func (c *Coordinator) runOne(ctx context.Context, item models.EvaluationItem, perItemTimeout time.Duration, correlationID string) models.EvaluationResult {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.Canceled) {
			return models.Failed(item.ID, models.ErrorKindCancelled, "batch was cancelled before item started")
		}
		return models.Failed(item.ID, models.ErrorKindTimeout, "batch deadline exceeded before item started")
	}
	if err := item.Validate(); err != nil {
		return models.Failed(item.ID, models.ErrorKindBadRequest, err.Error())
	}

	itemCtx := ctx
	if perItemTimeout > 0 {
		var cancel context.CancelFunc
		itemCtx, cancel = context.WithTimeout(ctx, perItemTimeout)
		defer cancel()
	}

	evidenceText, artifacts := c.evidence.Process(itemCtx, item.EvidenceFiles)
	result := c.orchestrator.Run(itemCtx, item, evidenceText, correlationID)
	if !result.IsFailure() {
		result.EvidenceFiles = artifacts
		if len(artifacts) > 0 {
			result.FileName = artifacts[0].FileName
		}
	}
	return result
}
