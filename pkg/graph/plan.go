package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/codeready-toolchain/ctrleval/pkg/models"
	"github.com/codeready-toolchain/ctrleval/pkg/provider"
	"github.com/codeready-toolchain/ctrleval/pkg/task"
)

// mechanicalPlan is the fallback used when skipPlanCreation is set, or
// when planning fails twice running (spec.md §4.4 tie-break): A5 alone.
func mechanicalPlan() []task.Tag {
	return []task.Tag{task.TagSemanticReasoning}
}

func (o *Orchestrator) createPlan(ctx context.Context, item models.EvaluationItem, feedback string) ([]task.Tag, provider.Usage, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Build a plan: select which of the following reasoning tasks apply to "+
		"this internal control test, and in what order.\n\nAvailable tasks:\n")
	for _, tag := range task.AllTags {
		fmt.Fprintf(&b, "- %s\n", tag)
	}
	fmt.Fprintf(&b, "\nControl description: %s\nTest procedure: %s\n", item.ControlDescription, item.TestProcedure)
	if feedback != "" {
		fmt.Fprintf(&b, "\nPrevious plan feedback: %s\n", feedback)
	}
	b.WriteString("\nReply with a comma-separated list of task tags only, e.g. A1,A5.")

	text, usage, err := o.llm.Invoke(ctx, b.String(), nil, 128, 0.0)
	if err != nil {
		return nil, usage, err
	}

	return parsePlan(text), usage, nil
}

func parsePlan(text string) []task.Tag {
	var plan []task.Tag
	for _, part := range strings.Split(text, ",") {
		tag := task.Tag(strings.ToUpper(strings.TrimSpace(part)))
		if tag.IsValid() {
			plan = append(plan, tag)
		}
	}
	return plan
}

// reviewPlan is the automated critique node at S_PLAN_REVIEW: a mechanical
// check (not an LLM call — spec.md §4.4 calls it "an automated critique
// node", as S_JUDGE_REVIEW's reviewJudgment is) for an obviously thin plan
// missing the baseline reasoning task.
func reviewPlan(plan []task.Tag) (gap string, hasGap bool) {
	if len(plan) == 0 {
		return "", false
	}
	for _, tag := range plan {
		if tag == task.TagSemanticReasoning {
			return "", false
		}
	}
	return "plan omits semantic reasoning (A5); evaluations typically need it to reach a verdict", true
}
