package api

import "github.com/codeready-toolchain/ctrleval/pkg/models"

// EvaluateRequest is the body of POST /evaluate and POST /evaluate/submit:
// a batch of control evaluation items (spec.md §4.7).
type EvaluateRequest struct {
	Items []models.EvaluationItem `json:"items" binding:"required"`
}

// SubmitRequest is EvaluateRequest plus the async-mode retention override.
type SubmitRequest struct {
	Items            []models.EvaluationItem `json:"items" binding:"required"`
	RetentionSeconds int                      `json:"retentionSeconds,omitempty"`
}
