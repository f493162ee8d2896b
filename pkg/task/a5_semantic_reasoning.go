package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/codeready-toolchain/ctrleval/pkg/provider"
)

// SemanticReasoningTask (A5) is the baseline control-effectiveness
// inference task: given a control description and evidence excerpts, it
// asks the LLM for a supporting inference. It's also the mechanical
// fallback plan's sole member when planning fails twice (spec.md §4.4).
type SemanticReasoningTask struct{}

func (SemanticReasoningTask) Tag() Tag { return TagSemanticReasoning }

func (SemanticReasoningTask) Run(ctx context.Context, in PromptInputs, llm *provider.LLMClient) (TaskResult, error) {
	prompt := fmt.Sprintf(
		"Control description: %s\nTest procedure: %s\n\nEvidence excerpts:\n%s\n\n"+
			"Reason about whether the evidence demonstrates the control operates as "+
			"described. Reply with a one-paragraph inference.",
		in.ControlDescription, in.TestProcedure, in.EvidenceText,
	)

	text, usage, err := llm.Invoke(ctx, prompt, nil, 512, 0.0)
	if err != nil {
		return TaskResult{}, err
	}

	return TaskResult{
		Finding: Finding{Tag: TagSemanticReasoning, Summary: strings.TrimSpace(text)},
		Usage:   usage,
	}, nil
}
