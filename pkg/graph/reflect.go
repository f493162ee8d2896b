package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/codeready-toolchain/ctrleval/pkg/provider"
	"github.com/codeready-toolchain/ctrleval/pkg/task"
)

// selfReflect (S_REFLECT) may annotate a verdict but must never flip it
// past the judgment-revision cap (spec.md §4.4) — it only appends a
// reflection note.
func (o *Orchestrator) selfReflect(ctx context.Context, v Verdict, findings []task.Finding) (string, provider.Usage, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "A verdict of %q was reached with basis: %s\n\n", verdictLabel(v.EvaluationResult), v.JudgmentBasis)
	b.WriteString("Write a one-sentence self-reflection on whether this judgment was " +
		"well-calibrated, without changing the verdict itself.")

	text, usage, err := o.llm.Invoke(ctx, b.String(), nil, 256, 0.2)
	if err != nil {
		return "", usage, err
	}
	return strings.TrimSpace(text), usage, nil
}

func verdictLabel(effective bool) string {
	if effective {
		return "effective"
	}
	return "deficient"
}
