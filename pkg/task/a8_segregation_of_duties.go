package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/codeready-toolchain/ctrleval/pkg/provider"
)

// SegregationOfDutiesTask (A8) checks role/approval records for conflicts
// where the same individual both initiates and approves an action.
type SegregationOfDutiesTask struct{}

func (SegregationOfDutiesTask) Tag() Tag { return TagSegregationOfDuties }

func (SegregationOfDutiesTask) Run(ctx context.Context, in PromptInputs, llm *provider.LLMClient) (TaskResult, error) {
	if len(in.Records) == 0 {
		return TaskResult{Finding: Finding{Tag: TagSegregationOfDuties, Summary: "no role/approval records to check"}}, nil
	}

	var rows strings.Builder
	for i, rec := range in.Records {
		fmt.Fprintf(&rows, "%d: %v\n", i, rec)
	}

	prompt := fmt.Sprintf(
		"Review the following role/approval records for segregation-of-duties "+
			"conflicts — the same individual both initiating and approving the same "+
			"action. List each conflict on its own line as PERSON: ACTION.\n\n%s",
		rows.String(),
	)

	text, usage, err := llm.Invoke(ctx, prompt, nil, 768, 0.0)
	if err != nil {
		return TaskResult{}, err
	}

	var conflicts []Match
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			conflicts = append(conflicts, Match{Text: line})
		}
	}

	return TaskResult{
		Finding: Finding{Tag: TagSegregationOfDuties, Summary: fmt.Sprintf("%d conflict(s) found", len(conflicts)), Matches: conflicts},
		Usage:   usage,
	}, nil
}
