package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/codeready-toolchain/ctrleval/pkg/models"
	"github.com/codeready-toolchain/ctrleval/pkg/provider"
	"github.com/codeready-toolchain/ctrleval/pkg/task"
)

// verdictTrueTerms are the tokens the §4.4 boolean-mapping rule recognizes
// as "effective" (true); everything else maps to false.
var verdictTrueTerms = []string{"effective", "有効", "true", "1", "pass"}

func mapVerdict(raw string) bool {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for _, term := range verdictTrueTerms {
		if strings.Contains(normalized, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func (o *Orchestrator) renderJudgment(ctx context.Context, item models.EvaluationItem, findings []task.Finding, feedback string) (Verdict, provider.Usage, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Control description: %s\nTest procedure: %s\n\nFindings:\n", item.ControlDescription, item.TestProcedure)
	for _, f := range findings {
		fmt.Fprintf(&b, "[%s] %s\n", f.Tag, f.Summary)
	}
	if feedback != "" {
		fmt.Fprintf(&b, "\nPrevious judgment feedback: %s\n", feedback)
	}
	b.WriteString("\nRender a verdict: reply with a first line of \"effective\" or \"deficient\", " +
		"a second line giving the judgment basis, and a third line quoting the " +
		"exact evidence passage that supports the verdict.")

	text, usage, err := o.llm.Invoke(ctx, b.String(), nil, 512, 0.0)
	if err != nil {
		return Verdict{}, usage, err
	}

	lines := strings.SplitN(strings.TrimSpace(text), "\n", 3)
	v := Verdict{}
	if len(lines) > 0 {
		v.EvaluationResult = mapVerdict(lines[0])
	}
	if len(lines) > 1 {
		v.JudgmentBasis = strings.TrimSpace(lines[1])
	}
	if len(lines) > 2 {
		v.DocumentReference = strings.TrimSpace(lines[2])
	}
	return v, usage, nil
}

// reviewJudgment is S_JUDGE_REVIEW's automated critique: the verdict must
// cite support from at least one non-failed finding, or it's unsupported.
func reviewJudgment(v Verdict, findings []task.Finding) (feedback string, unsupported bool) {
	if v.JudgmentBasis == "" {
		return "judgment basis is empty", true
	}
	for _, f := range findings {
		if f.Failed {
			continue
		}
		return "", false
	}
	return "no successful findings support this verdict", true
}
