// Package task implements the Task Library (spec.md §4.3): eight
// specialized reasoning tasks, A1 through A8, that the Graph Orchestrator
// composes into a per-item evaluation plan. Each task shares the Controller
// shape the teacher's agent package uses — a single Run method selected by
// a small factory — generalized here from "controller type" to "task tag".
package task

import (
	"context"

	"github.com/codeready-toolchain/ctrleval/pkg/provider"
)

// Tag identifies one of the eight reasoning tasks.
type Tag string

const (
	TagSemanticSearch     Tag = "A1"
	TagImageRecognition   Tag = "A2"
	TagStructuredExtract  Tag = "A3"
	TagStepwiseReasoning  Tag = "A4"
	TagSemanticReasoning  Tag = "A5"
	TagMultiDocConsolidate Tag = "A6"
	TagPatternAnalysis    Tag = "A7"
	TagSegregationOfDuties Tag = "A8"
)

// AllTags lists every recognized task tag in a stable order, used as the
// mechanical fallback plan's universe and for plan validation.
var AllTags = []Tag{
	TagSemanticSearch, TagImageRecognition, TagStructuredExtract, TagStepwiseReasoning,
	TagSemanticReasoning, TagMultiDocConsolidate, TagPatternAnalysis, TagSegregationOfDuties,
}

// IsValid reports whether tag is one of the recognized task tags.
func (t Tag) IsValid() bool {
	for _, tag := range AllTags {
		if tag == t {
			return true
		}
	}
	return false
}

// PromptInputs bundles everything a task needs to build its prompt. Not
// every field is relevant to every task; a task ignores what it doesn't
// use.
type PromptInputs struct {
	ControlDescription string
	TestProcedure      string
	EvidenceText       string
	ImageData          []byte
	ImageMimeType      string
	Query              string
	Features           []string
	Schema             map[string]any
	Documents          []string
	Records            []map[string]any
}

// Finding is one task's contribution to a GraphState's partial findings.
type Finding struct {
	Tag     Tag            `json:"tag"`
	Summary string         `json:"summary"`
	Detail  string         `json:"detail,omitempty"`
	Matches []Match        `json:"matches,omitempty"`
	Extra   map[string]any `json:"extra,omitempty"`
	Failed  bool           `json:"failed,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Match is one matched passage or record a task surfaced.
type Match struct {
	Text  string  `json:"text"`
	Score float64 `json:"score,omitempty"`
}

// TaskResult is the return value of Task.Run.
type TaskResult struct {
	Finding Finding
	Usage   provider.Usage
}

// Task is the common contract every A1–A8 implementation satisfies. Tasks
// must be idempotent given identical inputs (spec.md §4.3) — they are pure
// functions of (PromptInputs, LLMClient) with no hidden state.
type Task interface {
	Tag() Tag
	Run(ctx context.Context, in PromptInputs, llm *provider.LLMClient) (TaskResult, error)
}
