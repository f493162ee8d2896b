package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/ctrleval/pkg/models"
)

// submitHandler handles POST /evaluate/submit: async-mode submission,
// rejecting new work once the queue is busier than QueueBusyThreshold
// (spec.md §4.6, §4.7).
func (s *Server) submitHandler(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, models.ErrorKindBadRequest, err.Error())
		return
	}
	if len(req.Items) == 0 {
		writeError(c, models.ErrorKindBadRequest, "items must not be empty")
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

	depth, err := s.jobs.QueueDepth(c.Request.Context())
	if err != nil {
		writeError(c, models.ErrorKindInternal, err.Error())
		return
	}
	if depth >= s.cfg.Batch.QueueBusyThreshold {
		writeError(c, models.ErrorKindBusy, "job queue is at capacity; retry later")
		return
	}

	retention := req.RetentionSeconds
	if retention <= 0 {
		retention = s.cfg.Job.RetentionSeconds
	}

	correlationID, _ := c.Get("correlationID")
	id, estimated, err := s.jobs.Submit(c.Request.Context(), req.Items, correlationID.(string), retention)
	if err != nil {
		writeError(c, models.ErrorKindInternal, err.Error())
		return
	}

	slog.Info("job submitted",
		"job_id", id,
		"principal", extractPrincipal(c, s.cfg.HTTP.JWTPrincipalHeader),
		"item_count", len(req.Items))

	c.JSON(http.StatusAccepted, SubmitResponse{
		JobID:                    id,
		EstimatedDurationSeconds: int(estimated.Seconds()),
	})
}
