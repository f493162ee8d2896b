package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemanticSearchTask_Run(t *testing.T) {
	llm := newMockLLM(t)
	tsk := SemanticSearchTask{}

	result, err := tsk.Run(context.Background(), PromptInputs{
		Query:        "approval evidence",
		EvidenceText: "Finance manager approved the change on 2026-01-15.",
	}, llm)

	require.NoError(t, err)
	assert.Equal(t, TagSemanticSearch, result.Finding.Tag)
	assert.NotEmpty(t, result.Finding.Matches)
	assert.Greater(t, result.Usage.PromptTokens, 0)
	for _, m := range result.Finding.Matches {
		assert.NotEmpty(t, m.Text)
	}
}

func TestSemanticSearchTask_Tag(t *testing.T) {
	assert.Equal(t, TagSemanticSearch, SemanticSearchTask{}.Tag())
}
