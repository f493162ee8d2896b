package provider

import (
	"context"
	"strings"
)

// mockLLMBackend returns deterministic canned responses, per spec.md §4.1:
// the MOCK backend used for tests and as the graceful-degradation path when
// credentials are absent.
//
// The canned response is driven by the prompt content so scenario tests
// (spec.md §8) can steer it without a real model: a prompt mentioning
// "plan" yields the plan "A1,A5"; otherwise a prompt mentioning
// "deficient" yields a deficient verdict, and everything else yields
// effective.
type mockLLMBackend struct {
	model string
}

func newMockLLMBackend(model string) *mockLLMBackend {
	if model == "" {
		model = "mock-verdict-v1"
	}
	return &mockLLMBackend{model: model}
}

func (b *mockLLMBackend) invoke(ctx context.Context, prompt string, tools []ToolSpec, maxTokens int, temperature float64) (string, Usage, error) {
	if err := ctx.Err(); err != nil {
		return "", Usage{}, ErrTimeout
	}

	var response string
	switch {
	case strings.Contains(strings.ToLower(prompt), "plan"):
		response = "A1,A5"
	case strings.Contains(strings.ToLower(prompt), "deficient"):
		response = "deficient\nBasis: evidence shows the control was not operating as described.\nReference: \"no approval recorded\""
	default:
		response = "effective\nBasis: evidence supports consistent operation of the described control.\nReference: \"approved by finance manager on file\""
	}

	return response, Usage{PromptTokens: len(prompt) / 4, CompletionTokens: len(response) / 4}, nil
}
