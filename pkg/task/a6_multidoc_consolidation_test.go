package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiDocConsolidateTask_Run_NoDocuments(t *testing.T) {
	llm := newMockLLM(t)
	tsk := MultiDocConsolidateTask{}

	result, err := tsk.Run(context.Background(), PromptInputs{}, llm)

	require.NoError(t, err)
	assert.Contains(t, result.Finding.Summary, "no documents to consolidate")
}

func TestMultiDocConsolidateTask_Run_WithDocuments(t *testing.T) {
	llm := newMockLLM(t)
	tsk := MultiDocConsolidateTask{}

	result, err := tsk.Run(context.Background(), PromptInputs{
		Documents: []string{"doc A text", "doc B text"},
	}, llm)

	require.NoError(t, err)
	assert.Equal(t, TagMultiDocConsolidate, result.Finding.Tag)
	assert.NotEmpty(t, result.Finding.Summary)
}
