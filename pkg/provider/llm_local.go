package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// localLLMBackend speaks plain HTTP to a self-hosted, OpenAI-compatible
// inference server (llama.cpp/vLLM-style /v1/chat/completions). The
// teacher's gRPC-based LOCAL client (pkg/llm/client.go) depends on a proto
// package absent from this codebase's retrieval pack — see DESIGN.md — so
// this backend is a from-scratch, idiomatic net/http replacement that keeps
// the same request/response shape the rest of the registry expects.
type localLLMBackend struct {
	endpoint string
	model    string
	client   *http.Client
}

func newLocalLLMBackend(endpoint, model string, timeout time.Duration) *localLLMBackend {
	return &localLLMBackend{
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: timeout},
	}
}

type chatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []chatMessage   `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (b *localLLMBackend) invoke(ctx context.Context, prompt string, tools []ToolSpec, maxTokens int, temperature float64) (string, Usage, error) {
	reqBody := chatCompletionRequest{
		Model:       b.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", Usage{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", Usage{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", Usage{}, ErrTimeout
		}
		return "", Usage{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", Usage{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return "", Usage{}, ErrRateLimited
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return "", Usage{}, fmt.Errorf("%w: %s", ErrInvalidRequest, string(body))
	}
	if resp.StatusCode >= 500 {
		return "", Usage{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", Usage{}, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var out chatCompletionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", Usage{}, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}
	if out.Error != nil {
		return "", Usage{}, fmt.Errorf("%w: %s", ErrUnavailable, out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", Usage{}, fmt.Errorf("%w: empty choices", ErrUnavailable)
	}

	usage := Usage{PromptTokens: out.Usage.PromptTokens, CompletionTokens: out.Usage.CompletionTokens}
	return out.Choices[0].Message.Content, usage, nil
}
