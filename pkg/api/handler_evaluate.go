package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/ctrleval/pkg/models"
)

// evaluateHandler handles POST /evaluate: synchronous batch evaluation
// bounded by MaxSyncBatchSize and SyncWallClockGuard (spec.md §4.7).
func (s *Server) evaluateHandler(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, models.ErrorKindBadRequest, err.Error())
		return
	}
	if len(req.Items) == 0 {
		writeError(c, models.ErrorKindBadRequest, "items must not be empty")
		return
	}
	if len(req.Items) > s.cfg.Batch.MaxSyncBatchSize {
		writeError(c, models.ErrorKindRequestTooLarge, "batch exceeds the synchronous size limit; use /evaluate/submit instead")
		return
	}
	if err := models.ValidateIDsUnique(req.Items); err != nil {
		writeError(c, models.ErrorKindBadRequest, err.Error())
		return
	}
	for i := range req.Items {
		if err := req.Items[i].DecodeAttachments(s.cfg.Batch.MaxEvidenceFileBytes); err != nil {
			writeError(c, models.ErrorKindBadRequest, err.Error())
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.HTTP.SyncWallClockGuard)
	defer cancel()

	correlationID := correlationIDFromContext(c)
	results := s.coordinator.RunBatch(ctx, req.Items, s.cfg.Orchestrator.FunctionTimeout, correlationID, nil)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		writeError(c, models.ErrorKindTimeout, "synchronous evaluation exceeded the wall-clock guard; resubmit via /evaluate/submit")
		return
	}

	c.JSON(http.StatusOK, results)
}
