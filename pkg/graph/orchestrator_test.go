package graph

import (
	"context"
	"testing"

	"github.com/codeready-toolchain/ctrleval/pkg/config"
	"github.com/codeready-toolchain/ctrleval/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrchestratorRun_EffectivePath(t *testing.T) {
	llm := newMockLLM(t)
	orch := NewOrchestrator(llm, config.DefaultOrchestratorConfig())

	item := models.EvaluationItem{
		ID:                 "item-1",
		ControlDescription: "Changes require manager approval before deployment.",
		TestProcedure:      "Inspect a sample of change tickets for approval sign-off.",
	}

	result := orch.Run(context.Background(), item, "Finance manager approved the change on file.", "corr-1")

	require.False(t, result.IsFailure())
	assert.True(t, result.EvaluationResult)
	assert.Equal(t, "item-1", result.ID)
	assert.NotEmpty(t, result.ExecutionPlanSummary)
	assert.NotEmpty(t, result.JudgmentBasis)
}

func TestOrchestratorRun_DeficientPath(t *testing.T) {
	llm := newMockLLM(t)
	orch := NewOrchestrator(llm, config.DefaultOrchestratorConfig())

	item := models.EvaluationItem{
		ID:                 "item-2",
		ControlDescription: "Changes require manager approval before deployment.",
		TestProcedure:      "Inspect a sample of change tickets for approval sign-off.",
	}

	result := orch.Run(context.Background(), item, "The change record is deficient; no approval recorded.", "corr-2")

	require.False(t, result.IsFailure())
	assert.False(t, result.EvaluationResult)
}

func TestOrchestratorRun_SkipPlanCreationUsesMechanicalPlan(t *testing.T) {
	llm := newMockLLM(t)
	cfg := config.DefaultOrchestratorConfig()
	cfg.SkipPlanCreation = true
	orch := NewOrchestrator(llm, cfg)

	item := models.EvaluationItem{
		ID:                 "item-3",
		ControlDescription: "Backups run nightly.",
		TestProcedure:      "Confirm backup logs show successful completion.",
	}

	result := orch.Run(context.Background(), item, "Backup log shows success every night this quarter.", "corr-3")

	require.False(t, result.IsFailure())
	assert.Equal(t, "A5", result.ExecutionPlanSummary)
}

func TestOrchestratorRun_SelfReflectionAppendsNote(t *testing.T) {
	llm := newMockLLM(t)
	cfg := config.DefaultOrchestratorConfig()
	cfg.SelfReflectionEnabled = true
	orch := NewOrchestrator(llm, cfg)

	item := models.EvaluationItem{
		ID:                 "item-4",
		ControlDescription: "Changes require manager approval before deployment.",
		TestProcedure:      "Inspect a sample of change tickets for approval sign-off.",
	}

	result := orch.Run(context.Background(), item, "Finance manager approved the change on file.", "corr-1")

	require.False(t, result.IsFailure())
	assert.Contains(t, result.JudgmentBasis, "Self-reflection:")
}

func TestOrchestratorRun_Cancelled(t *testing.T) {
	llm := newMockLLM(t)
	orch := NewOrchestrator(llm, config.DefaultOrchestratorConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	item := models.EvaluationItem{
		ID:                 "item-5",
		ControlDescription: "Changes require manager approval before deployment.",
		TestProcedure:      "Inspect a sample of change tickets for approval sign-off.",
	}

	result := orch.Run(ctx, item, "", "corr-5")

	assert.True(t, result.IsFailure())
	assert.Equal(t, models.ErrorKindCancelled, result.ErrorKind)
}
