package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/codeready-toolchain/ctrleval/pkg/provider"
)

// MultiDocConsolidateTask (A6) merges several document extractions into a
// single unified summary, called when an item carries more than one
// evidence attachment worth cross-referencing.
type MultiDocConsolidateTask struct{}

func (MultiDocConsolidateTask) Tag() Tag { return TagMultiDocConsolidate }

func (MultiDocConsolidateTask) Run(ctx context.Context, in PromptInputs, llm *provider.LLMClient) (TaskResult, error) {
	if len(in.Documents) == 0 {
		return TaskResult{Finding: Finding{Tag: TagMultiDocConsolidate, Summary: "no documents to consolidate"}}, nil
	}

	var docs strings.Builder
	for i, d := range in.Documents {
		fmt.Fprintf(&docs, "Document %d:\n%s\n\n", i+1, d)
	}

	prompt := fmt.Sprintf(
		"Consolidate the following %d documents into a single unified summary, "+
			"noting any contradictions between them.\n\n%s",
		len(in.Documents), docs.String(),
	)

	text, usage, err := llm.Invoke(ctx, prompt, nil, 768, 0.0)
	if err != nil {
		return TaskResult{}, err
	}

	return TaskResult{
		Finding: Finding{Tag: TagMultiDocConsolidate, Summary: strings.TrimSpace(text)},
		Usage:   usage,
	}, nil
}
