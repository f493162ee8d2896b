package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/ctrleval/pkg/config"
	"github.com/codeready-toolchain/ctrleval/pkg/task"
)

// configHandler handles GET /config: the enumerated provider/task options
// and active orchestrator/batch settings. Never returns a credential,
// endpoint, or API key env var name (spec.md §4.7).
func (s *Server) configHandler(c *gin.Context) {
	tags := make([]string, 0, len(task.AllTags))
	for _, t := range task.AllTags {
		tags = append(tags, string(t))
	}

	oc := s.cfg.Orchestrator
	bc := s.cfg.Batch

	c.JSON(http.StatusOK, ConfigResponse{
		LLMProviders: []string{
			string(config.LLMProviderMock), string(config.LLMProviderLocal),
			string(config.LLMProviderAzure), string(config.LLMProviderAzureFoundry),
			string(config.LLMProviderAWS), string(config.LLMProviderGCP),
		},
		OCRProviders: []string{
			string(config.OCRProviderNone), string(config.OCRProviderTesseract),
			string(config.OCRProviderAzure), string(config.OCRProviderAWS), string(config.OCRProviderGCP),
		},
		TaskTags: tags,
		Orchestrator: OrchestratorInfo{
			MaxPlanRevisions:      oc.MaxPlanRevisions,
			MaxJudgmentRevisions:  oc.MaxJudgmentRevisions,
			SelfReflectionEnabled: oc.SelfReflectionEnabled,
			FunctionTimeout:       oc.FunctionTimeout.String(),
		},
		Batch: BatchInfo{
			MaxConcurrentEvaluations: bc.MaxConcurrentEvaluations,
			MaxSyncBatchSize:         bc.MaxSyncBatchSize,
		},
	})
}
