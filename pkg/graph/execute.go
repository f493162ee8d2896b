package graph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codeready-toolchain/ctrleval/pkg/models"
	"github.com/codeready-toolchain/ctrleval/pkg/provider"
	"github.com/codeready-toolchain/ctrleval/pkg/task"
)

// runPlan executes every task in state.Plan sequentially — spec.md §5
// requires strict in-plan ordering within one item, with no concurrency
// between tasks. Task-level errors become negative findings rather than
// aborting the graph (spec.md §4.4), unless every task in the plan fails.
func (o *Orchestrator) runPlan(ctx context.Context, state *GraphState, in task.PromptInputs) provider.Usage {
	var total provider.Usage
	for _, tag := range state.Plan {
		t, err := o.tasks.Create(tag)
		if err != nil {
			state.PartialFindings[tag] = task.Finding{Tag: tag, Failed: true, Error: err.Error()}
			continue
		}

		result, err := o.runTaskWithRetry(ctx, t, in)
		if err != nil {
			slog.Warn("task execution failed", "tag", tag, "error", err)
			state.PartialFindings[tag] = task.Finding{Tag: tag, Failed: true, Error: err.Error()}
			continue
		}

		state.PartialFindings[tag] = result.Finding
		total.PromptTokens += result.Usage.PromptTokens
		total.CompletionTokens += result.Usage.CompletionTokens
	}
	return total
}

// runTaskWithRetry retries a task once on a transient provider error —
// the graph's own bounded retry distinct from the Provider Registry's
// internal retry/backoff, since a task failure here may reflect a bad
// prompt rather than a transient upstream issue (spec.md §4.4 failure
// semantics: "transient errors ... retried up to a small bounded count").
func (o *Orchestrator) runTaskWithRetry(ctx context.Context, t task.Task, in task.PromptInputs) (task.TaskResult, error) {
	result, err := t.Run(ctx, in, o.llm)
	if err == nil {
		return result, nil
	}
	if !provider.IsTransient(err) {
		return task.TaskResult{}, err
	}
	return t.Run(ctx, in, o.llm)
}

// buildPromptInputs assembles the per-item PromptInputs shared by every
// task in the plan from the item and its already-extracted evidence text.
func buildPromptInputs(item models.EvaluationItem, evidenceText string) task.PromptInputs {
	return task.PromptInputs{
		ControlDescription: item.ControlDescription,
		TestProcedure:      item.TestProcedure,
		EvidenceText:       evidenceText,
		Query:              fmt.Sprintf("%s %s", item.ControlDescription, item.TestProcedure),
	}
}
