package graph

import (
	"context"
	"testing"

	"github.com/codeready-toolchain/ctrleval/pkg/config"
	"github.com/codeready-toolchain/ctrleval/pkg/metrics"
	"github.com/codeready-toolchain/ctrleval/pkg/provider"
	"github.com/stretchr/testify/require"
)

// newMockLLM mirrors the task package's fixture: a real Provider Registry
// LLM client backed by the MOCK provider, whose responses are driven
// deterministically by substrings in the prompt (spec.md §4.1).
func newMockLLM(t *testing.T) *provider.LLMClient {
	t.Helper()
	reg, err := provider.NewRegistry(context.Background(),
		&config.LLMConfig{Provider: config.LLMProviderMock, Model: "test-model"},
		&config.OCRConfig{Provider: config.OCRProviderNone},
		metrics.NoopRecorder{})
	require.NoError(t, err)
	return reg.GetLLM()
}
