package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator performs struct-tag validation plus cross-field checks the
// validator library can't express, mirroring the teacher's hand-written
// validation pass layered on top of go-playground/validator.
type Validator struct {
	cfg *Config
	v   *validator.Validate
}

// NewValidator creates a Validator for cfg.
func NewValidator(cfg *Config) *Validator {
	return &Validator{cfg: cfg, v: validator.New()}
}

// ValidateAll runs struct-tag validation over every config section, then
// the cross-field checks spec.md's options table implies but a struct tag
// cannot express (e.g. the chosen job store backend's address present).
func (vd *Validator) ValidateAll() error {
	for component, section := range map[string]any{
		"llm":          vd.cfg.LLM,
		"ocr":          vd.cfg.OCR,
		"orchestrator": vd.cfg.Orchestrator,
		"batch":        vd.cfg.Batch,
		"job":          vd.cfg.Job,
		"http":         vd.cfg.HTTP,
	} {
		if err := vd.v.Struct(section); err != nil {
			return NewValidationError(component, "", err)
		}
	}

	if !vd.cfg.LLM.Provider.IsValid() {
		return NewValidationError("llm", "provider", fmt.Errorf("%w: %s", ErrInvalidValue, vd.cfg.LLM.Provider))
	}
	if !vd.cfg.OCR.Provider.IsValid() {
		return NewValidationError("ocr", "provider", fmt.Errorf("%w: %s", ErrInvalidValue, vd.cfg.OCR.Provider))
	}
	if !vd.cfg.Job.StoreBackend.IsValid() {
		return NewValidationError("job", "store_backend", fmt.Errorf("%w: %s", ErrInvalidValue, vd.cfg.Job.StoreBackend))
	}
	if vd.cfg.Job.StoreBackend == JobStorePostgres && vd.cfg.Job.DatabaseURL == "" {
		return NewValidationError("job", "database_url", fmt.Errorf("%w: required when store_backend is postgres", ErrMissingRequiredField))
	}
	if vd.cfg.Job.StoreBackend == JobStoreRedis && vd.cfg.Job.RedisAddr == "" {
		return NewValidationError("job", "redis_addr", fmt.Errorf("%w: required when store_backend is redis", ErrMissingRequiredField))
	}
	if vd.cfg.Batch.MaxSyncBatchSize > vd.cfg.Batch.QueueBusyThreshold {
		// The synchronous batch cap may not exceed the async queue-depth
		// threshold at which /evaluate/submit starts answering BUSY.
		return NewValidationError("batch", "max_sync_batch_size", fmt.Errorf("%w: must not exceed queue_busy_threshold", ErrInvalidValue))
	}

	return nil
}
