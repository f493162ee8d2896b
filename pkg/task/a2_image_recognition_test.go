package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageRecognitionTask_Run_NoFeatures(t *testing.T) {
	llm := newMockLLM(t)
	tsk := ImageRecognitionTask{}

	result, err := tsk.Run(context.Background(), PromptInputs{}, llm)

	require.NoError(t, err)
	assert.Contains(t, result.Finding.Summary, "no expected features configured")
}

func TestImageRecognitionTask_Run_WithFeatures(t *testing.T) {
	llm := newMockLLM(t)
	tsk := ImageRecognitionTask{}

	result, err := tsk.Run(context.Background(), PromptInputs{
		EvidenceText: "signature block, date stamp visible",
		Features:     []string{"signature", "date stamp"},
	}, llm)

	require.NoError(t, err)
	assert.Equal(t, TagImageRecognition, result.Finding.Tag)
	assert.Greater(t, result.Usage.PromptTokens, 0)
}
