package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// azureLLMBackend calls an Azure OpenAI / Azure AI Foundry chat-completions
// deployment. Authentication uses azidentity's DefaultAzureCredential chain
// (managed identity in-cluster, az-cli locally) when no API key is
// configured, falling back to api-key header auth otherwise — grounded in
// axonflow's use of the same azidentity package for its Azure connector.
type azureLLMBackend struct {
	endpoint   string
	deployment string
	apiVersion string
	apiKey     string
	foundry    bool // Azure AI Foundry model endpoint vs classic Azure OpenAI deployment
	cred       *azidentity.DefaultAzureCredential
	client     *http.Client
}

func newAzureLLMBackend(endpoint, deployment, apiVersion, apiKey string, foundry bool, timeout time.Duration) (*azureLLMBackend, error) {
	b := &azureLLMBackend{
		endpoint:   endpoint,
		deployment: deployment,
		apiVersion: apiVersion,
		apiKey:     apiKey,
		foundry:    foundry,
		client:     &http.Client{Timeout: timeout},
	}
	if apiKey == "" {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("azure llm backend: constructing default credential: %w", err)
		}
		b.cred = cred
	}
	return b, nil
}

func (b *azureLLMBackend) authHeader(ctx context.Context) (string, string, error) {
	if b.apiKey != "" {
		return "api-key", b.apiKey, nil
	}
	tok, err := b.cred.GetToken(ctx, policyTokenScope())
	if err != nil {
		return "", "", fmt.Errorf("%w: azure token acquisition failed: %v", ErrUnavailable, err)
	}
	return "Authorization", "Bearer " + tok.Token, nil
}

func (b *azureLLMBackend) invoke(ctx context.Context, prompt string, tools []ToolSpec, maxTokens int, temperature float64) (string, Usage, error) {
	headerName, headerValue, err := b.authHeader(ctx)
	if err != nil {
		return "", Usage{}, err
	}

	reqBody := chatCompletionRequest{
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", Usage{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s", b.endpoint, b.deployment, b.apiVersion)
	if b.foundry {
		url = fmt.Sprintf("%s/models/chat/completions?api-version=%s", b.endpoint, b.apiVersion)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", Usage{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerName, headerValue)

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

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", Usage{}, ErrRateLimited
	case resp.StatusCode == http.StatusBadRequest:
		return "", Usage{}, fmt.Errorf("%w: %s", ErrInvalidRequest, string(body))
	case resp.StatusCode >= 500:
		return "", Usage{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", Usage{}, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var out chatCompletionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", Usage{}, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}
	if len(out.Choices) == 0 {
		return "", Usage{}, fmt.Errorf("%w: empty choices", ErrUnavailable)
	}

	usage := Usage{PromptTokens: out.Usage.PromptTokens, CompletionTokens: out.Usage.CompletionTokens}
	return out.Choices[0].Message.Content, usage, nil
}
