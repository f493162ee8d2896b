package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegregationOfDutiesTask_Run_NoRecords(t *testing.T) {
	llm := newMockLLM(t)
	tsk := SegregationOfDutiesTask{}

	result, err := tsk.Run(context.Background(), PromptInputs{}, llm)

	require.NoError(t, err)
	assert.Equal(t, TagSegregationOfDuties, result.Finding.Tag)
	assert.Contains(t, result.Finding.Summary, "no role/approval records")
	assert.Empty(t, result.Finding.Matches)
	assert.Zero(t, result.Usage.PromptTokens)
}

func TestSegregationOfDutiesTask_Run_WithRecords(t *testing.T) {
	llm := newMockLLM(t)
	tsk := SegregationOfDutiesTask{}

	result, err := tsk.Run(context.Background(), PromptInputs{
		Records: []map[string]any{
			{"person": "jdoe", "action": "initiate"},
			{"person": "jdoe", "action": "approve"},
		},
	}, llm)

	require.NoError(t, err)
	assert.Equal(t, TagSegregationOfDuties, result.Finding.Tag)
	assert.NotEmpty(t, result.Finding.Matches)
	assert.Greater(t, result.Usage.PromptTokens, 0)
}
