package task

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/codeready-toolchain/ctrleval/pkg/provider"
)

// SemanticSearchTask (A1) asks the LLM to rank evidence passages against a
// query phrase, then parses its response into scored matches.
type SemanticSearchTask struct{}

func (SemanticSearchTask) Tag() Tag { return TagSemanticSearch }

func (SemanticSearchTask) Run(ctx context.Context, in PromptInputs, llm *provider.LLMClient) (TaskResult, error) {
	prompt := fmt.Sprintf(
		"Search the following evidence for passages relevant to: %q\n\n"+
			"Evidence:\n%s\n\n"+
			"Reply with one matching passage per line, formatted as:\nSCORE|PASSAGE\n"+
			"where SCORE is a number between 0 and 1. List the strongest match first.",
		in.Query, in.EvidenceText,
	)

	text, usage, err := llm.Invoke(ctx, prompt, nil, 512, 0.0)
	if err != nil {
		return TaskResult{}, err
	}

	var matches []Match
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		scoreStr, passage, ok := strings.Cut(line, "|")
		if !ok {
			matches = append(matches, Match{Text: line})
			continue
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(scoreStr), 64)
		if err != nil {
			score = 0
		}
		matches = append(matches, Match{Text: strings.TrimSpace(passage), Score: score})
	}

	return TaskResult{
		Finding: Finding{Tag: TagSemanticSearch, Summary: fmt.Sprintf("%d candidate passage(s) for %q", len(matches), in.Query), Matches: matches},
		Usage:   usage,
	}, nil
}
