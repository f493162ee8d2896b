package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepwiseReasoningTask_Run(t *testing.T) {
	llm := newMockLLM(t)
	tsk := StepwiseReasoningTask{}

	result, err := tsk.Run(context.Background(), PromptInputs{
		TestProcedure: "Verify each reconciliation step was performed in order.",
		EvidenceText:  "Step log shows reconciliation performed on 2026-02-01.",
	}, llm)

	require.NoError(t, err)
	assert.Equal(t, TagStepwiseReasoning, result.Finding.Tag)
	assert.NotEmpty(t, result.Finding.Summary)
}
