// Package job implements the Job Manager (spec.md §4.6): job lifecycle,
// the Store abstraction, submit/status/results/cancel operations, the
// dequeue worker loop, and the retention reaper. Grounded in the
// teacher's pkg/session.Manager (pkg/session/manager.go) for the
// in-memory shape and pkg/queue/worker.go for the claim/worker-loop shape,
// generalized from ent-backed sessions to a pluggable Store.
package job

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/codeready-toolchain/ctrleval/pkg/models"
)

// State is a Job's lifecycle state (spec.md §3).
type State string

const (
	StateSubmitted State = "SUBMITTED"
	StateQueued    State = "QUEUED"
	StateRunning   State = "RUNNING"
	StateCompleted State = "COMPLETED"
	StateFailed    State = "FAILED"
	StateCancelled State = "CANCELLED"
	StateExpired   State = "EXPIRED"
)

// IsTerminal reports whether s is one of the DAG's terminal states.
func (s State) IsTerminal() bool {
	switch s {
	case StateCompleted, StateFailed, StateCancelled, StateExpired:
		return true
	default:
		return false
	}
}

// Status maps the internal State to the external lowercase vocabulary the
// HTTP Facade exposes (spec.md §6): RUNNING reads as "processing" and
// FAILED as "error", everything else just lowercases.
func (s State) Status() string {
	switch s {
	case StateRunning:
		return "processing"
	case StateFailed:
		return "error"
	default:
		return strings.ToLower(string(s))
	}
}

// Job is the async-mode container for one submitted batch (spec.md §3).
type Job struct {
	ID            string                    `json:"jobId"`
	State         State                     `json:"state"`
	CorrelationID string                    `json:"correlationId"`
	SubmittedAt   time.Time                 `json:"submittedAt"`
	StartedAt     *time.Time                `json:"startedAt,omitempty"`
	CompletedAt   *time.Time                `json:"completedAt,omitempty"`
	Progress      int                       `json:"progress"`
	Items         []models.EvaluationItem  `json:"items"`
	Results       []models.EvaluationResult `json:"results,omitempty"`
	ErrorKind     models.ErrorKind          `json:"errorKind,omitempty"`
	ErrorMessage  string                    `json:"errorMessage,omitempty"`
	RetentionSec  int                       `json:"retentionSeconds"`
	CancelRequested bool                    `json:"cancelRequested,omitempty"`
	// Version counts a record's writes in the memory and Postgres stores.
	// It is not serialized to JSON, so the Redis store does not keep it;
	// every backend's compareAndSet checks State, not Version.
	Version int `json:"-"`
}

// NewID generates a server-assigned, globally unique, random 128-bit
// hex-encoded job id (spec.md §4.6 submit contract).
func NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating job id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// EstimateDuration applies the linear model spec.md §4.6's submit
// response names: a fixed per-item cost plus a small constant overhead.
func EstimateDuration(itemCount int) time.Duration {
	const perItem = 8 * time.Second
	const overhead = 2 * time.Second
	return overhead + time.Duration(itemCount)*perItem
}
