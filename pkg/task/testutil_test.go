package task

import (
	"context"
	"testing"

	"github.com/codeready-toolchain/ctrleval/pkg/config"
	"github.com/codeready-toolchain/ctrleval/pkg/metrics"
	"github.com/codeready-toolchain/ctrleval/pkg/provider"
	"github.com/stretchr/testify/require"
)

// newMockLLM builds a real Provider Registry LLM client against the MOCK
// backend (spec.md §4.1), which is driven deterministically by substrings
// in the prompt — the simplest way to exercise task parsing without a live
// model, and the same backend spec.md names as the graceful-degradation path.
func newMockLLM(t *testing.T) *provider.LLMClient {
	t.Helper()
	reg, err := provider.NewRegistry(context.Background(),
		&config.LLMConfig{Provider: config.LLMProviderMock, Model: "test-model"},
		&config.OCRConfig{Provider: config.OCRProviderNone},
		metrics.NoopRecorder{})
	require.NoError(t, err)
	return reg.GetLLM()
}
