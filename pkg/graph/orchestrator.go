package graph

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/codeready-toolchain/ctrleval/pkg/config"
	"github.com/codeready-toolchain/ctrleval/pkg/models"
	"github.com/codeready-toolchain/ctrleval/pkg/provider"
	"github.com/codeready-toolchain/ctrleval/pkg/task"
)

// ErrCancelled's message is recorded on the CANCELLED result Run returns
// when ctx is cancelled (spec.md §5) rather than timed out by the
// per-item deadline.
var ErrCancelled = errors.New("graph: item evaluation cancelled")

// Orchestrator drives one EvaluationItem through the S_PLAN → ... →
// S_DONE state machine.
type Orchestrator struct {
	llm   *provider.LLMClient
	tasks *task.Factory
	cfg   *config.OrchestratorConfig
}

// NewOrchestrator constructs an Orchestrator against a shared LLM client
// and orchestrator config. Orchestrators hold no per-item state and are
// safe to reuse across items and goroutines.
func NewOrchestrator(llm *provider.LLMClient, cfg *config.OrchestratorConfig) *Orchestrator {
	return &Orchestrator{llm: llm, tasks: task.NewFactory(), cfg: cfg}
}

// Run drives item through the graph and returns its EvaluationResult.
// evidenceText is the already-assembled Evidence Processor output for the
// item's attachments; artifacts are attached by the caller after Run
// returns, since the orchestrator itself never touches raw bytes.
// correlationID carries the request/job's correlation id onto every log
// line this item's evaluation produces (spec.md §8).
func (o *Orchestrator) Run(ctx context.Context, item models.EvaluationItem, evidenceText string, correlationID string) models.EvaluationResult {
	timeout := o.cfg.FunctionTimeout
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := slog.With("item_id", item.ID, "correlation_id", correlationID)
	gs := newGraphState()
	in := buildPromptInputs(item, evidenceText)

	cur := statePlan
	if o.cfg.SkipPlanCreation {
		gs.Plan = mechanicalPlan()
		cur = stateExecute
	}

	planFailures := 0
	var planFeedback, judgmentFeedback string

	for cur != stateDone {
		if err := ctx.Err(); err != nil {
			return timeoutOrCancelled(item, err)
		}

		switch cur {
		case statePlan:
			plan, _, err := o.createPlan(ctx, item, planFeedback)
			if err != nil {
				if !provider.IsTransient(err) {
					return models.Failed(item.ID, models.ErrorKindUpstream, err.Error())
				}
				return timeoutOrCancelled(item, err)
			}
			if len(plan) == 0 {
				planFailures++
				if planFailures > 1 {
					log.Warn("planning returned zero tasks twice; using mechanical fallback plan")
					gs.Plan = mechanicalPlan()
					cur = stateExecute
					continue
				}
				continue // retry S_PLAN once, per spec.md §4.4
			}
			gs.Plan = plan
			cur = statePlanReview

		case statePlanReview:
			feedback, hasGap := reviewPlan(gs.Plan)
			if hasGap && gs.PlanRevisionCount < o.cfg.MaxPlanRevisions {
				gs.PlanRevisionCount++
				planFeedback = feedback
				cur = statePlan
				continue
			}
			cur = stateExecute

		case stateExecute:
			o.runPlan(ctx, gs, in)
			if gs.allTasksFailed() {
				return models.Failed(item.ID, models.ErrorKindUpstream, "every planned task failed")
			}
			cur = stateJudge

		case stateJudge:
			v, _, err := o.renderJudgment(ctx, item, gs.orderedFindings(), judgmentFeedback)
			if err != nil {
				if !provider.IsTransient(err) {
					return models.Failed(item.ID, models.ErrorKindUpstream, err.Error())
				}
				return timeoutOrCancelled(item, err)
			}
			gs.TerminalVerdict = &v
			cur = stateJudgeReview

		case stateJudgeReview:
			feedback, unsupported := reviewJudgment(*gs.TerminalVerdict, gs.orderedFindings())
			if unsupported && gs.JudgmentRevisionCount < o.cfg.MaxJudgmentRevisions {
				gs.JudgmentRevisionCount++
				judgmentFeedback = feedback
				cur = stateJudge
				continue
			}
			if o.cfg.SelfReflectionEnabled {
				cur = stateReflect
				continue
			}
			cur = stateDone

		case stateReflect:
			note, _, err := o.selfReflect(ctx, *gs.TerminalVerdict, gs.orderedFindings())
			if err == nil {
				gs.TerminalVerdict.SelfReflection = note
				gs.SelfReflection = note
			}
			cur = stateDone
		}
	}

	return buildResult(item, gs)
}

func buildResult(item models.EvaluationItem, gs *GraphState) models.EvaluationResult {
	v := gs.TerminalVerdict
	return models.EvaluationResult{
		ID:                   item.ID,
		EvaluationResult:     v.EvaluationResult,
		ExecutionPlanSummary: summarizePlan(gs),
		JudgmentBasis:        judgmentBasisWithReflection(*v),
		DocumentReference:    v.DocumentReference,
	}
}

func judgmentBasisWithReflection(v Verdict) string {
	if v.SelfReflection == "" {
		return v.JudgmentBasis
	}
	return v.JudgmentBasis + "\n\nSelf-reflection: " + v.SelfReflection
}

func summarizePlan(gs *GraphState) string {
	var summary string
	for i, tag := range gs.Plan {
		if i > 0 {
			summary += ", "
		}
		summary += string(tag)
	}
	return summary
}

func timeoutOrCancelled(item models.EvaluationItem, err error) models.EvaluationResult {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.Failed(item.ID, models.ErrorKindTimeout, "item evaluation exceeded its wall-clock budget")
	}
	if errors.Is(err, context.Canceled) {
		return models.Failed(item.ID, models.ErrorKindCancelled, ErrCancelled.Error())
	}
	return models.Failed(item.ID, models.ErrorKindUpstream, err.Error())
}
