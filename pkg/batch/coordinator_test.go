package batch

import (
	"context"
	"testing"
	"time"

	"github.com/codeready-toolchain/ctrleval/pkg/config"
	"github.com/codeready-toolchain/ctrleval/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(n int) []models.EvaluationItem {
	items := make([]models.EvaluationItem, n)
	for i := range items {
		items[i] = models.EvaluationItem{
			ID:                 string(rune('a' + i)),
			ControlDescription: "Changes require manager approval before deployment.",
			TestProcedure:      "Inspect a sample of change tickets for approval sign-off.",
		}
	}
	return items
}

func TestRunBatch_Empty(t *testing.T) {
	c := newCoordinator(t, config.DefaultBatchConfig())
	results := c.RunBatch(context.Background(), nil, 0, "", nil)
	assert.Empty(t, results)
}

func TestRunBatch_PreservesOrder(t *testing.T) {
	c := newCoordinator(t, config.DefaultBatchConfig())
	items := testItems(6)

	results := c.RunBatch(context.Background(), items, 0, "", nil)

	require.Len(t, results, len(items))
	for i, r := range results {
		assert.Equal(t, items[i].ID, r.ID)
		assert.False(t, r.IsFailure(), "item %s unexpectedly failed: %s", r.ID, r.ErrorMessage)
	}
}

func TestRunBatch_WorkerCountClampedToItemCount(t *testing.T) {
	cfg := config.DefaultBatchConfig()
	cfg.MaxConcurrentEvaluations = 100
	c := newCoordinator(t, cfg)

	results := c.RunBatch(context.Background(), testItems(3), 0, "", nil)
	assert.Len(t, results, 3)
}

func TestRunBatch_ProgressCallback(t *testing.T) {
	c := newCoordinator(t, config.DefaultBatchConfig())
	items := testItems(4)

	var calls int
	seenIndexes := make(map[int]bool)
	c.RunBatch(context.Background(), items, 0, "", func(percent int, itemIndex int) {
		calls++
		seenIndexes[itemIndex] = true
		assert.GreaterOrEqual(t, percent, 0)
		assert.LessOrEqual(t, percent, 100)
	})

	assert.Equal(t, len(items), calls)
	assert.Len(t, seenIndexes, len(items))
}

func TestRunBatch_InvalidItemFailsWithoutAbortingBatch(t *testing.T) {
	c := newCoordinator(t, config.DefaultBatchConfig())
	items := []models.EvaluationItem{
		{ID: "good", ControlDescription: "desc", TestProcedure: "proc"},
		{ID: "bad"}, // missing required fields
	}

	results := c.RunBatch(context.Background(), items, 0, "", nil)

	require.Len(t, results, 2)
	assert.False(t, results[0].IsFailure())
	assert.True(t, results[1].IsFailure())
	assert.Equal(t, models.ErrorKindBadRequest, results[1].ErrorKind)
}

func TestRunBatch_CancelledContextYieldsCancelledErrorKind(t *testing.T) {
	c := newCoordinator(t, config.DefaultBatchConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := c.RunBatch(ctx, testItems(2), 0, "", nil)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.IsFailure())
		assert.Equal(t, models.ErrorKindCancelled, r.ErrorKind)
	}
}

func TestRunBatch_BatchDeadlineAlreadyExpired(t *testing.T) {
	c := newCoordinator(t, config.DefaultBatchConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	time.Sleep(time.Millisecond)

	results := c.RunBatch(ctx, testItems(2), 0, "", nil)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.IsFailure())
		assert.Equal(t, models.ErrorKindTimeout, r.ErrorKind)
	}
}
