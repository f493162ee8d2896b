package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/codeready-toolchain/ctrleval/pkg/provider"
)

// PatternAnalysisTask (A7) looks for anomalies across an event log or
// record set — exception handling, gap detection, outlier flagging.
type PatternAnalysisTask struct{}

func (PatternAnalysisTask) Tag() Tag { return TagPatternAnalysis }

func (PatternAnalysisTask) Run(ctx context.Context, in PromptInputs, llm *provider.LLMClient) (TaskResult, error) {
	if len(in.Records) == 0 {
		return TaskResult{Finding: Finding{Tag: TagPatternAnalysis, Summary: "no records to analyze"}}, nil
	}

	var rows strings.Builder
	for i, rec := range in.Records {
		fmt.Fprintf(&rows, "%d: %v\n", i, rec)
	}

	prompt := fmt.Sprintf(
		"Analyze the following records for anomalies, gaps, or unexplained "+
			"exceptions. List each anomaly on its own line.\n\n%s",
		rows.String(),
	)

	text, usage, err := llm.Invoke(ctx, prompt, nil, 768, 0.0)
	if err != nil {
		return TaskResult{}, err
	}

	var anomalies []Match
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			anomalies = append(anomalies, Match{Text: line})
		}
	}

	return TaskResult{
		Finding: Finding{Tag: TagPatternAnalysis, Summary: fmt.Sprintf("%d anomaly(ies) found", len(anomalies)), Matches: anomalies},
		Usage:   usage,
	}, nil
}
