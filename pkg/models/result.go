package models

// EvaluationResult is the output unit produced for one EvaluationItem —
// either a verdict, or an error recorded in place of one.
type EvaluationResult struct {
	ID                   string               `json:"ID"`
	EvaluationResult     bool                 `json:"evaluationResult"`
	ExecutionPlanSummary string               `json:"executionPlanSummary,omitempty"`
	JudgmentBasis        string               `json:"judgmentBasis,omitempty"`
	DocumentReference    string               `json:"documentReference,omitempty"`
	EvidenceFiles        []AnnotatedArtifact  `json:"evidenceFiles,omitempty"`
	FileName             string               `json:"fileName,omitempty"`
	ErrorKind            ErrorKind            `json:"errorKind,omitempty"`
	ErrorMessage         string               `json:"errorMessage,omitempty"`
}

// Failed builds an EvaluationResult recording a non-recoverable error for
// the given item id, per the data-model invariant that either
// evaluationResult is set or a non-recoverable error is recorded.
func Failed(id string, kind ErrorKind, message string) EvaluationResult {
	return EvaluationResult{
		ID:           id,
		ErrorKind:    kind,
		ErrorMessage: message,
	}
}

// IsFailure reports whether this result records an error rather than a verdict.
func (r EvaluationResult) IsFailure() bool {
	return r.ErrorKind != ""
}
