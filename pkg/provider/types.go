// Package provider implements the Provider Registry (spec.md §4.1): it
// selects and instantiates LLM/OCR backends from configuration and exposes
// a uniform invocation contract to the rest of the service.
package provider

import "context"

// ToolSpec describes one tool an LLM invocation may call, used by task
// implementations that need structured data back instead of prose.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any // JSON-schema-shaped parameter description
}

// Usage reports token accounting for one LLM invocation.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// LLMClient is the uniform LLM invocation contract every backend
// (AZURE_FOUNDRY, AZURE, GCP, AWS, LOCAL, MOCK) implements. Clients must be
// safe for concurrent use — the registry constructs one per configured
// provider and shares it across every worker.
type LLMClient struct {
	backend llmBackend
	name    string
}

// llmBackend is the narrow per-provider implementation surface; LLMClient
// wraps it with the shared retry/circuit-breaker/metrics policy so every
// backend gets identical error-classification and telemetry behavior for
// free (see retry.go).
type llmBackend interface {
	invoke(ctx context.Context, prompt string, tools []ToolSpec, maxTokens int, temperature float64) (text string, usage Usage, err error)
}

// Invoke runs one LLM call. Failures are one of ErrRateLimited,
// ErrUnavailable, ErrTimeout, or ErrInvalidRequest (spec.md §4.1).
func (c *LLMClient) Invoke(ctx context.Context, prompt string, tools []ToolSpec, maxTokens int, temperature float64) (string, Usage, error) {
	return c.backend.invoke(ctx, prompt, tools, maxTokens, temperature)
}

// Name returns the provider identifier this client was constructed for,
// used for metrics labeling and log attribution.
func (c *LLMClient) Name() string {
	return c.name
}

// StructuredBlock is one piece of layout-aware OCR output — a table cell, a
// form field, or a bounding-box'd text span. The Evidence Processor turns
// blocks into the page/bounding-box regions of evidence artifacts; tasks
// receive only the flat text.
type StructuredBlock struct {
	Text        string
	PageIndex   int
	BoundingBox [4]float64 // x0, y0, x1, y1, normalized 0..1
}

// OCRClient is the uniform OCR invocation contract every backend (AZURE,
// AWS, GCP, TESSERACT, NONE) implements.
type OCRClient struct {
	backend ocrBackend
	name    string
}

type ocrBackend interface {
	extract(ctx context.Context, buf []byte, mimeType, language string) (text string, blocks []StructuredBlock, err error)
}

// Extract runs one OCR call. NONE returns empty text for non-PDF inputs and
// falls back to plain-text extraction for PDFs (spec.md §4.1).
func (c *OCRClient) Extract(ctx context.Context, buf []byte, mimeType, language string) (string, []StructuredBlock, error) {
	return c.backend.extract(ctx, buf, mimeType, language)
}

// Name returns the provider identifier this client was constructed for.
func (c *OCRClient) Name() string {
	return c.name
}
