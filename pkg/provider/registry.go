package provider

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/textract"

	"github.com/codeready-toolchain/ctrleval/pkg/config"
	"github.com/codeready-toolchain/ctrleval/pkg/metrics"
)

// Registry is the Provider Registry (spec.md §4.1): instantiated once at
// process start, read-only thereafter, and safe for concurrent use by every
// worker. Construction failures here are fatal at startup, per spec.md
// §4.1's failure semantics.
type Registry struct {
	llm *LLMClient
	ocr *OCRClient
}

// NewRegistry constructs the Provider Registry's LLM and OCR clients from
// configuration. It's the only place in the service where a *LLMProviderType
// or *OCRProviderType is switched on to select an SDK.
func NewRegistry(ctx context.Context, llmCfg *config.LLMConfig, ocrCfg *config.OCRConfig, rec metrics.Recorder) (*Registry, error) {
	llmBackendImpl, err := newLLMBackend(ctx, llmCfg)
	if err != nil {
		return nil, fmt.Errorf("constructing llm backend %s: %w", llmCfg.Provider, err)
	}
	ocrBackendImpl, err := newOCRBackend(ctx, ocrCfg)
	if err != nil {
		return nil, fmt.Errorf("constructing ocr backend %s: %w", ocrCfg.Provider, err)
	}

	return &Registry{
		llm: &LLMClient{backend: wrapLLMBackend(string(llmCfg.Provider), llmBackendImpl, rec), name: string(llmCfg.Provider)},
		ocr: &OCRClient{backend: wrapOCRBackend(string(ocrCfg.Provider), ocrBackendImpl, rec), name: string(ocrCfg.Provider)},
	}, nil
}

// GetLLM returns the configured LLM client.
func (r *Registry) GetLLM() *LLMClient {
	return r.llm
}

// GetOCR returns the configured OCR client.
func (r *Registry) GetOCR() *OCRClient {
	return r.ocr
}

func newLLMBackend(ctx context.Context, cfg *config.LLMConfig) (llmBackend, error) {
	switch cfg.Provider {
	case config.LLMProviderMock:
		return newMockLLMBackend(cfg.Model), nil
	case config.LLMProviderLocal:
		return newLocalLLMBackend(cfg.Endpoint, cfg.Model, cfg.Timeout), nil
	case config.LLMProviderAzure:
		return newAzureLLMBackend(cfg.Endpoint, cfg.Model, cfg.APIVersion, config.ResolveSecret(cfg.APIKeyEnv), false, cfg.Timeout)
	case config.LLMProviderAzureFoundry:
		return newAzureLLMBackend(cfg.Endpoint, cfg.Model, cfg.APIVersion, config.ResolveSecret(cfg.APIKeyEnv), true, cfg.Timeout)
	case config.LLMProviderAWS:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, fmt.Errorf("loading aws config: %w", err)
		}
		return newAWSLLMBackend(bedrockruntime.NewFromConfig(awsCfg), cfg.Model), nil
	case config.LLMProviderGCP:
		return newGCPLLMBackend(cfg.Endpoint, cfg.Model, config.ResolveSecret(cfg.APIKeyEnv)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownLLMProvider, cfg.Provider)
	}
}

func newOCRBackend(ctx context.Context, cfg *config.OCRConfig) (ocrBackend, error) {
	switch cfg.Provider {
	case config.OCRProviderNone:
		return newNoneOCRBackend(), nil
	case config.OCRProviderTesseract:
		return newTesseractOCRBackend(cfg.CommandPath), nil
	case config.OCRProviderAzure:
		return newAzureOCRBackend(cfg.Endpoint, config.ResolveSecret(cfg.APIKeyEnv), 60*time.Second)
	case config.OCRProviderAWS:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading aws config: %w", err)
		}
		return newAWSOCRBackend(textract.NewFromConfig(awsCfg)), nil
	case config.OCRProviderGCP:
		return newGCPOCRBackend(ctx, config.ResolveSecret(cfg.APIKeyEnv))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOCRProvider, cfg.Provider)
	}
}
