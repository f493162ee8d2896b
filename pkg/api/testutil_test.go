package api

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/ctrleval/pkg/batch"
	"github.com/codeready-toolchain/ctrleval/pkg/config"
	"github.com/codeready-toolchain/ctrleval/pkg/evidence"
	"github.com/codeready-toolchain/ctrleval/pkg/graph"
	"github.com/codeready-toolchain/ctrleval/pkg/job"
	"github.com/codeready-toolchain/ctrleval/pkg/jobstore/memstore"
	"github.com/codeready-toolchain/ctrleval/pkg/metrics"
	"github.com/codeready-toolchain/ctrleval/pkg/provider"
)

// newTestServer wires a full Server against the MOCK LLM backend, OCR
// disabled, and an in-memory job store — enough to exercise every handler
// without a live model, database, or network dependency.
func newTestServer(t *testing.T) (*Server, *job.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg, err := provider.NewRegistry(context.Background(),
		&config.LLMConfig{Provider: config.LLMProviderMock, Model: "test-model"},
		&config.OCRConfig{Provider: config.OCRProviderNone},
		metrics.NoopRecorder{})
	require.NoError(t, err)

	cfg := &config.Config{
		LLM:          &config.LLMConfig{Provider: config.LLMProviderMock, Model: "test-model"},
		OCR:          &config.OCRConfig{Provider: config.OCRProviderNone},
		Orchestrator: config.DefaultOrchestratorConfig(),
		Batch:        config.DefaultBatchConfig(),
		Job:          config.DefaultJobConfig(),
		HTTP:         config.DefaultHTTPConfig(),
	}

	orch := graph.NewOrchestrator(reg.GetLLM(), cfg.Orchestrator)
	ev := evidence.NewProcessor(reg.GetOCR(), 50000, 200)
	coordinator := batch.NewCoordinator(orch, ev, cfg.Batch)

	store := memstore.New()
	jobs := job.NewManager(store, coordinator, cfg.Orchestrator.FunctionTimeout, 30*time.Minute, time.Hour)

	server := NewServer(cfg, reg, coordinator, jobs, "test/dev")
	return server, jobs
}

func newRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}
