package config

// LLMProviderType selects the LLM backend the Provider Registry constructs.
type LLMProviderType string

const (
	LLMProviderAzureFoundry LLMProviderType = "AZURE_FOUNDRY"
	LLMProviderAzure        LLMProviderType = "AZURE"
	LLMProviderGCP          LLMProviderType = "GCP"
	LLMProviderAWS          LLMProviderType = "AWS"
	LLMProviderLocal        LLMProviderType = "LOCAL"
	LLMProviderMock         LLMProviderType = "MOCK"
)

// IsValid reports whether t is one of the recognized LLM provider types.
func (t LLMProviderType) IsValid() bool {
	switch t {
	case LLMProviderAzureFoundry, LLMProviderAzure, LLMProviderGCP, LLMProviderAWS, LLMProviderLocal, LLMProviderMock:
		return true
	default:
		return false
	}
}

// OCRProviderType selects the OCR backend the Provider Registry constructs.
type OCRProviderType string

const (
	OCRProviderAzure     OCRProviderType = "AZURE"
	OCRProviderAWS       OCRProviderType = "AWS"
	OCRProviderGCP       OCRProviderType = "GCP"
	OCRProviderTesseract OCRProviderType = "TESSERACT"
	OCRProviderNone      OCRProviderType = "NONE"
)

// IsValid reports whether t is one of the recognized OCR provider types.
func (t OCRProviderType) IsValid() bool {
	switch t {
	case OCRProviderAzure, OCRProviderAWS, OCRProviderGCP, OCRProviderTesseract, OCRProviderNone:
		return true
	default:
		return false
	}
}

// JobStoreBackend selects the Job Manager's durable store implementation.
type JobStoreBackend string

const (
	JobStoreMemory   JobStoreBackend = "memory"
	JobStorePostgres JobStoreBackend = "postgres"
	JobStoreRedis    JobStoreBackend = "redis"
)

// IsValid reports whether b is one of the recognized job store backends.
func (b JobStoreBackend) IsValid() bool {
	switch b {
	case JobStoreMemory, JobStorePostgres, JobStoreRedis:
		return true
	default:
		return false
	}
}
