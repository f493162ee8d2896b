package batch

import (
	"context"
	"testing"

	"github.com/codeready-toolchain/ctrleval/pkg/config"
	"github.com/codeready-toolchain/ctrleval/pkg/evidence"
	"github.com/codeready-toolchain/ctrleval/pkg/graph"
	"github.com/codeready-toolchain/ctrleval/pkg/metrics"
	"github.com/codeready-toolchain/ctrleval/pkg/provider"
	"github.com/stretchr/testify/require"
)

// newCoordinator wires a real Graph Orchestrator against the MOCK LLM
// backend and an Evidence Processor with OCR disabled, so RunBatch can be
// exercised end to end without a live model or any evidence attachments.
func newCoordinator(t *testing.T, cfg *config.BatchConfig) *Coordinator {
	t.Helper()
	reg, err := provider.NewRegistry(context.Background(),
		&config.LLMConfig{Provider: config.LLMProviderMock, Model: "test-model"},
		&config.OCRConfig{Provider: config.OCRProviderNone},
		metrics.NoopRecorder{})
	require.NoError(t, err)

	orch := graph.NewOrchestrator(reg.GetLLM(), config.DefaultOrchestratorConfig())
	ev := evidence.NewProcessor(reg.GetOCR(), 50000, 200)
	return NewCoordinator(orch, ev, cfg)
}
