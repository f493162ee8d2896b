// Package graph implements the Graph Orchestrator (spec.md §4.4): the
// per-item reasoning state machine that drives plan → review → execute →
// judge → review → (optional reflect) → done, grounded in the teacher's
// IteratingController.Run bounded-iteration loop
// (pkg/agent/controller/iterating.go), which carries its own
// revision/retry bookkeeping the same way GraphState does here.
package graph

import "github.com/codeready-toolchain/ctrleval/pkg/task"

// state is one node of the orchestrator's explicit state machine.
type state string

const (
	statePlan        state = "S_PLAN"
	statePlanReview  state = "S_PLAN_REVIEW"
	stateExecute     state = "S_EXECUTE"
	stateJudge       state = "S_JUDGE"
	stateJudgeReview state = "S_JUDGE_REVIEW"
	stateReflect     state = "S_REFLECT"
	stateDone        state = "S_DONE"
)

// Verdict is the judgment produced at S_JUDGE and possibly annotated (but
// never flipped past the revision cap) at S_REFLECT.
type Verdict struct {
	EvaluationResult  bool
	JudgmentBasis     string
	DocumentReference string
	SelfReflection    string
}

// GraphState is the per-item working memory the spec.md §3 data model
// describes: created fresh for each item and discarded once the item's
// result is produced.
type GraphState struct {
	Plan                  []task.Tag
	PlanRevisionCount     int
	PartialFindings       map[task.Tag]task.Finding
	JudgmentRevisionCount int
	SelfReflection        string
	TerminalVerdict       *Verdict
}

func newGraphState() *GraphState {
	return &GraphState{PartialFindings: make(map[task.Tag]task.Finding)}
}

// orderedFindings returns findings in plan order, for deterministic
// prompt assembly at S_JUDGE.
func (s *GraphState) orderedFindings() []task.Finding {
	out := make([]task.Finding, 0, len(s.Plan))
	for _, tag := range s.Plan {
		if f, ok := s.PartialFindings[tag]; ok {
			out = append(out, f)
		}
	}
	return out
}

func (s *GraphState) allTasksFailed() bool {
	if len(s.Plan) == 0 {
		return false
	}
	for _, tag := range s.Plan {
		if f, ok := s.PartialFindings[tag]; ok && !f.Failed {
			return false
		}
	}
	return true
}
