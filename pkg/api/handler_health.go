package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// healthHandler handles GET /health: a minimal, unauthenticated liveness
// check reporting whether each Provider Registry backend is configured,
// without exercising the upstream providers themselves (spec.md §4.7).
func (s *Server) healthHandler(c *gin.Context) {
	stats := s.cfg.Stats()

	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: s.version,
		LLM: ProviderHealth{
			Provider:   string(stats.LLMProvider),
			Configured: s.registry.GetLLM() != nil,
		},
		OCR: ProviderHealth{
			Provider:   string(stats.OCRProvider),
			Configured: s.registry.GetOCR() != nil,
		},
	})
}
