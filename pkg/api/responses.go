package api

import "time"

// HealthResponse is returned by GET /health (spec.md §4.7).
type HealthResponse struct {
	Status  string              `json:"status"`
	Version string              `json:"version"`
	LLM     ProviderHealth      `json:"llm"`
	OCR     ProviderHealth      `json:"ocr"`
}

// ProviderHealth reports a Provider Registry backend's configured state
// without leaking credentials.
type ProviderHealth struct {
	Provider  string `json:"provider"`
	Configured bool  `json:"configured"`
}

// ConfigResponse is returned by GET /config: the enumerated options a
// client can choose from plus the active orchestrator settings, with
// every credential-shaped field redacted (spec.md §4.7).
type ConfigResponse struct {
	LLMProviders []string          `json:"llmProviders"`
	OCRProviders []string          `json:"ocrProviders"`
	TaskTags     []string          `json:"taskTags"`
	Orchestrator OrchestratorInfo  `json:"orchestrator"`
	Batch        BatchInfo         `json:"batch"`
}

// OrchestratorInfo summarizes the Graph Orchestrator's active settings.
type OrchestratorInfo struct {
	MaxPlanRevisions      int    `json:"maxPlanRevisions"`
	MaxJudgmentRevisions  int    `json:"maxJudgmentRevisions"`
	SelfReflectionEnabled bool   `json:"selfReflectionEnabled"`
	FunctionTimeout       string `json:"functionTimeout"`
}

// BatchInfo summarizes the Batch Coordinator's active settings.
type BatchInfo struct {
	MaxConcurrentEvaluations int `json:"maxConcurrentEvaluations"`
	MaxSyncBatchSize         int `json:"maxSyncBatchSize"`
}

// SubmitResponse is returned by POST /evaluate/submit (spec.md §4.6, §6).
type SubmitResponse struct {
	JobID                    string `json:"jobId"`
	EstimatedDurationSeconds int    `json:"estimatedDurationSeconds"`
}

// StatusResponse is returned by GET /evaluate/status/:id (spec.md §4.6, §6).
// Status carries the external lowercase vocabulary (see job.State.Status),
// not the internal State constant.
type StatusResponse struct {
	JobID         string     `json:"jobId"`
	Status        string     `json:"status"`
	Progress      int        `json:"progress"`
	SubmittedAt   time.Time  `json:"submittedAt"`
	StartedAt     *time.Time `json:"startedAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CorrelationID string     `json:"correlationId,omitempty"`
}

// CancelResponse is returned by POST /evaluate/cancel/:id.
type CancelResponse struct {
	JobID   string `json:"jobId"`
	Message string `json:"message"`
}
