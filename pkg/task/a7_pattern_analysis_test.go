package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternAnalysisTask_Run_NoRecords(t *testing.T) {
	llm := newMockLLM(t)
	tsk := PatternAnalysisTask{}

	result, err := tsk.Run(context.Background(), PromptInputs{}, llm)

	require.NoError(t, err)
	assert.Contains(t, result.Finding.Summary, "no records to analyze")
}

func TestPatternAnalysisTask_Run_WithRecords(t *testing.T) {
	llm := newMockLLM(t)
	tsk := PatternAnalysisTask{}

	result, err := tsk.Run(context.Background(), PromptInputs{
		Records: []map[string]any{
			{"date": "2026-01-01", "amount": 100},
			{"date": "2026-01-15", "amount": 5000},
		},
	}, llm)

	require.NoError(t, err)
	assert.Equal(t, TagPatternAnalysis, result.Finding.Tag)
	assert.NotEmpty(t, result.Finding.Matches)
}
