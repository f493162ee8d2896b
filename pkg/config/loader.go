package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the complete ctrleval.yaml file structure.
type YAMLConfig struct {
	LLM          *LLMConfig          `yaml:"llm"`
	OCR          *OCRConfig          `yaml:"ocr"`
	Orchestrator *OrchestratorConfig `yaml:"orchestrator"`
	Batch        *BatchConfig        `yaml:"batch"`
	Job          *JobConfig          `yaml:"job"`
	HTTP         *HTTPConfig         `yaml:"http"`
}

// Initialize loads, validates, and returns ready-to-use configuration.
// This is the primary entry point for configuration loading.
//
// Steps performed:
//  1. Load a local .env file, if present (development convenience).
//  2. Load ctrleval.yaml from configDir.
//  3. Expand environment variables.
//  4. Merge loaded values over built-in defaults.
//  5. Validate all configuration.
func Initialize(_ context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("initializing configuration")

	if err := godotenv.Load(filepath.Join(configDir, ".env")); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to load .env file", "error", err)
	}

	cfg, err := load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := NewValidator(cfg).ValidateAll(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	stats := cfg.Stats()
	log.Info("configuration initialized successfully",
		"llm_provider", stats.LLMProvider,
		"ocr_provider", stats.OCRProvider,
		"store_backend", stats.StoreBackend)

	return cfg, nil
}

func load(configDir string) (*Config, error) {
	yamlCfg, err := loadYAMLConfig(configDir)
	if err != nil {
		return nil, err
	}

	llmCfg := DefaultLLMConfig()
	if yamlCfg.LLM != nil {
		if err := mergo.Merge(llmCfg, yamlCfg.LLM, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge llm config: %w", err)
		}
	}

	ocrCfg := DefaultOCRConfig()
	if yamlCfg.OCR != nil {
		if err := mergo.Merge(ocrCfg, yamlCfg.OCR, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge ocr config: %w", err)
		}
	}

	orchestratorCfg := DefaultOrchestratorConfig()
	if yamlCfg.Orchestrator != nil {
		if err := mergo.Merge(orchestratorCfg, yamlCfg.Orchestrator, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge orchestrator config: %w", err)
		}
	}

	batchCfg := DefaultBatchConfig()
	if yamlCfg.Batch != nil {
		if err := mergo.Merge(batchCfg, yamlCfg.Batch, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge batch config: %w", err)
		}
	}

	jobCfg := DefaultJobConfig()
	if yamlCfg.Job != nil {
		if err := mergo.Merge(jobCfg, yamlCfg.Job, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge job config: %w", err)
		}
	}

	httpCfg := DefaultHTTPConfig()
	if yamlCfg.HTTP != nil {
		if err := mergo.Merge(httpCfg, yamlCfg.HTTP, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge http config: %w", err)
		}
	}

	return &Config{
		configDir:    configDir,
		LLM:          llmCfg,
		OCR:          ocrCfg,
		Orchestrator: orchestratorCfg,
		Batch:        batchCfg,
		Job:          jobCfg,
		HTTP:         httpCfg,
	}, nil
}

func loadYAMLConfig(configDir string) (*YAMLConfig, error) {
	path := filepath.Join(configDir, "ctrleval.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No file on disk is not fatal — built-in defaults (plus
			// env-var expanded secrets) are a valid configuration.
			return &YAMLConfig{}, nil
		}
		return nil, NewLoadError(path, err)
	}

	data = ExpandEnv(data)

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, NewLoadError(path, fmt.Errorf("%w: %v", ErrInvalidYAML, err))
	}

	return &cfg, nil
}

// ResolveSecret reads the named environment variable, returning an empty
// string if it's unset. Used to resolve *Env-suffixed config fields
// (APIKeyEnv, ProjectEnv, ...) to their actual secret value at provider
// construction time, keeping raw secrets out of the parsed config struct.
func ResolveSecret(envVar string) string {
	if envVar == "" {
		return ""
	}
	return os.Getenv(envVar)
}
