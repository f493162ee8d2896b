package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/codeready-toolchain/ctrleval/pkg/provider"
)

// StepwiseReasoningTask (A4) walks a numeric or procedural prompt through
// an explicit chain of intermediate conclusions, one per line, ending in a
// final conclusion line.
type StepwiseReasoningTask struct{}

func (StepwiseReasoningTask) Tag() Tag { return TagStepwiseReasoning }

func (StepwiseReasoningTask) Run(ctx context.Context, in PromptInputs, llm *provider.LLMClient) (TaskResult, error) {
	prompt := fmt.Sprintf(
		"Work through the following procedure step by step against the evidence. "+
			"Number each intermediate conclusion on its own line, then give a final "+
			"conclusion on the last line prefixed with \"Conclusion: \".\n\n"+
			"Procedure: %s\n\nEvidence:\n%s",
		in.TestProcedure, in.EvidenceText,
	)

	text, usage, err := llm.Invoke(ctx, prompt, nil, 768, 0.0)
	if err != nil {
		return TaskResult{}, err
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	conclusion := ""
	var steps []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "Conclusion:"); ok {
			conclusion = strings.TrimSpace(rest)
			continue
		}
		steps = append(steps, line)
	}
	if conclusion == "" && len(steps) > 0 {
		conclusion = steps[len(steps)-1]
	}

	return TaskResult{
		Finding: Finding{Tag: TagStepwiseReasoning, Summary: conclusion, Detail: strings.Join(steps, "\n")},
		Usage:   usage,
	}, nil
}
