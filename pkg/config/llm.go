package config

import "time"

// LLMConfig configures the Provider Registry's LLM backend (spec §4.1).
type LLMConfig struct {
	Provider    LLMProviderType `yaml:"provider" validate:"required"`
	Endpoint    string          `yaml:"endpoint,omitempty"`
	APIKeyEnv   string          `yaml:"api_key_env,omitempty"`
	Model       string          `yaml:"model" validate:"required"`
	APIVersion  string          `yaml:"api_version,omitempty"`
	Timeout     time.Duration   `yaml:"timeout,omitempty"`
	Region      string          `yaml:"region,omitempty"`      // AWS Bedrock region
	ProjectEnv  string          `yaml:"project_env,omitempty"` // GCP project
	LocationEnv string          `yaml:"location_env,omitempty"`
}

// DefaultLLMConfig returns the built-in LLM defaults: the MOCK provider,
// which spec §4.1 names as the graceful-degradation path when no
// credentials are configured.
func DefaultLLMConfig() *LLMConfig {
	return &LLMConfig{
		Provider: LLMProviderMock,
		Model:    "mock-verdict-v1",
		Timeout:  60 * time.Second,
	}
}

// OCRConfig configures the Provider Registry's OCR backend (spec §4.1).
type OCRConfig struct {
	Provider                 OCRProviderType `yaml:"provider" validate:"required"`
	Endpoint                 string          `yaml:"endpoint,omitempty"`
	APIKeyEnv                string          `yaml:"api_key_env,omitempty"`
	Language                 string          `yaml:"language,omitempty"`
	CommandPath               string         `yaml:"command_path,omitempty"`
	PDFTextFallbackThreshold int             `yaml:"pdf_text_fallback_threshold,omitempty" validate:"omitempty,min=0"`
	// MaxTextCharsPerFile bounds how much extracted text from a single
	// evidence file is folded into a prompt; the remainder is dropped with
	// a truncation marker (spec.md §4.2).
	MaxTextCharsPerFile int `yaml:"max_text_chars_per_file,omitempty" validate:"omitempty,min=0"`
}

// DefaultOCRConfig returns the built-in OCR defaults.
func DefaultOCRConfig() *OCRConfig {
	return &OCRConfig{
		Provider:                 OCRProviderNone,
		PDFTextFallbackThreshold: 200,
		MaxTextCharsPerFile:      50000,
	}
}
