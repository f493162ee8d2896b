package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/ctrleval/pkg/job"
	"github.com/codeready-toolchain/ctrleval/pkg/models"
)

// statusHandler handles GET /evaluate/status/:id (spec.md §4.6).
func (s *Server) statusHandler(c *gin.Context) {
	id := c.Param("id")
	j, err := s.jobs.Status(c.Request.Context(), id)
	if errors.Is(err, job.ErrNotFound) {
		writeError(c, models.ErrorKindNotFound, "job not found")
		return
	}
	if err != nil {
		writeError(c, models.ErrorKindInternal, err.Error())
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		JobID:         j.ID,
		Status:        j.State.Status(),
		Progress:      j.Progress,
		SubmittedAt:   j.SubmittedAt,
		StartedAt:     j.StartedAt,
		CompletedAt:   j.CompletedAt,
		CorrelationID: j.CorrelationID,
	})
}

// resultsHandler handles GET /evaluate/results/:id (spec.md §4.6).
func (s *Server) resultsHandler(c *gin.Context) {
	id := c.Param("id")
	j, err := s.jobs.Results(c.Request.Context(), id)
	if errors.Is(err, job.ErrNotFound) {
		writeError(c, models.ErrorKindNotFound, "job not found")
		return
	}
	if errors.Is(err, job.ErrNotReady) {
		writeError(c, models.ErrorKindNotReady, "job has not reached a terminal state yet")
		return
	}
	if err != nil {
		writeError(c, models.ErrorKindInternal, err.Error())
		return
	}

	if j.State != job.StateCompleted {
		writeError(c, j.ErrorKind, j.ErrorMessage)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobId":   j.ID,
		"status":  j.State.Status(),
		"results": j.Results,
	})
}

// cancelHandler handles POST /evaluate/cancel/:id (spec.md §4.6).
func (s *Server) cancelHandler(c *gin.Context) {
	id := c.Param("id")
	err := s.jobs.Cancel(c.Request.Context(), id)
	if errors.Is(err, job.ErrNotFound) {
		writeError(c, models.ErrorKindNotFound, "job not found")
		return
	}
	if err != nil {
		writeError(c, models.ErrorKindBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, CancelResponse{JobID: id, Message: "cancellation requested"})
}
