package config

// Config is the umbrella configuration object returned by Initialize() and
// used throughout the application to construct the Provider Registry,
// Graph Orchestrator, Batch Coordinator, Job Manager, and HTTP Facade.
type Config struct {
	configDir string // configuration directory path (for reference)

	LLM          *LLMConfig
	OCR          *OCRConfig
	Orchestrator *OrchestratorConfig
	Batch        *BatchConfig
	Job          *JobConfig
	HTTP         *HTTPConfig
}

// ConfigDir returns the configuration directory path.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// Stats contains a quick summary of loaded configuration, useful for a
// single startup log line.
type Stats struct {
	LLMProvider  LLMProviderType
	OCRProvider  OCRProviderType
	StoreBackend JobStoreBackend
}

// Stats returns configuration statistics for logging/monitoring.
func (c *Config) Stats() Stats {
	return Stats{
		LLMProvider:  c.LLM.Provider,
		OCRProvider:  c.OCR.Provider,
		StoreBackend: c.Job.StoreBackend,
	}
}
