package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// gcpLLMBackend calls the Generative Language REST API
// (generativelanguage.googleapis.com) through a plain http.Client
// authenticated with an API key, via the endpoints package
// google.golang.org/api documents for this API — no Vertex AI SDK ships in
// the retrieval pack; axonflow uses the same google.golang.org/api module
// for its GCS connector, confirming it's the pack's idiomatic path to
// Google APIs lacking a dedicated SDK.
type gcpLLMBackend struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

func newGCPLLMBackend(endpoint, model, apiKey string) *gcpLLMBackend {
	if endpoint == "" {
		endpoint = "https://generativelanguage.googleapis.com"
	}
	return &gcpLLMBackend{endpoint: endpoint, model: model, apiKey: apiKey, client: http.DefaultClient}
}

type geminiGenerateRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
		Temperature     float64 `json:"temperature,omitempty"`
	} `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
}

func (b *gcpLLMBackend) invoke(ctx context.Context, prompt string, tools []ToolSpec, maxTokens int, temperature float64) (string, Usage, error) {
	reqBody := geminiGenerateRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	}
	reqBody.GenerationConfig.MaxOutputTokens = maxTokens
	reqBody.GenerationConfig.Temperature = temperature

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", Usage{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", b.endpoint, b.model, b.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
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

	if resp.StatusCode != http.StatusOK {
		return "", Usage{}, classifyHTTPStatus(resp.StatusCode)
	}

	var out geminiGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", Usage{}, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", Usage{}, fmt.Errorf("%w: empty candidates", ErrUnavailable)
	}

	usage := Usage{PromptTokens: out.UsageMetadata.PromptTokenCount, CompletionTokens: out.UsageMetadata.CandidatesTokenCount}
	return out.Candidates[0].Content.Parts[0].Text, usage, nil
}

func classifyHTTPStatus(status int) error {
	switch {
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status == http.StatusBadRequest:
		return fmt.Errorf("%w: provider rejected request", ErrInvalidRequest)
	default:
		return fmt.Errorf("%w: provider status %d", ErrUnavailable, status)
	}
}
