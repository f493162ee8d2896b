package config

import "time"

// OrchestratorConfig controls the Graph Orchestrator's revision caps and
// optional stages (spec §4.4).
type OrchestratorConfig struct {
	MaxPlanRevisions      int           `yaml:"max_plan_revisions" validate:"min=0"`
	MaxJudgmentRevisions  int           `yaml:"max_judgment_revisions" validate:"min=0"`
	SkipPlanCreation      bool          `yaml:"skip_plan_creation"`
	SelfReflectionEnabled bool          `yaml:"self_reflection_enabled"`
	FunctionTimeout       time.Duration `yaml:"function_timeout,omitempty"`
}

// DefaultOrchestratorConfig returns the built-in orchestrator defaults.
func DefaultOrchestratorConfig() *OrchestratorConfig {
	return &OrchestratorConfig{
		MaxPlanRevisions:     1,
		MaxJudgmentRevisions: 1,
		FunctionTimeout:      300 * time.Second,
	}
}

// BatchConfig controls the Batch Coordinator's worker pool (spec §4.5).
type BatchConfig struct {
	MaxConcurrentEvaluations int `yaml:"max_concurrent_evaluations" validate:"min=1"`
	MaxSyncBatchSize         int `yaml:"max_sync_batch_size" validate:"min=1"`
	// QueueBusyThreshold is the number of queued (not-yet-running) jobs
	// at or above which /evaluate/submit responds BUSY.
	QueueBusyThreshold int `yaml:"queue_busy_threshold" validate:"min=1"`
	// MaxEvidenceFileBytes bounds one EvidenceFile's decoded size on
	// ingest; oversized attachments are rejected with BAD_REQUEST before
	// the item reaches the Batch Coordinator (spec.md §9 open question).
	MaxEvidenceFileBytes int `yaml:"max_evidence_file_bytes" validate:"min=1"`
}

// DefaultBatchConfig returns the built-in batch coordinator defaults.
func DefaultBatchConfig() *BatchConfig {
	return &BatchConfig{
		MaxConcurrentEvaluations: 10,
		MaxSyncBatchSize:         50,
		QueueBusyThreshold:       100,
		MaxEvidenceFileBytes:     10 << 20,
	}
}

// JobConfig controls the Job Manager: retention, reaping, and per-job
// timeout (spec §4.6, §5).
type JobConfig struct {
	StoreBackend      JobStoreBackend `yaml:"store_backend" validate:"required"`
	RetentionSeconds  int             `yaml:"retention_seconds" validate:"min=1"`
	ReaperInterval    time.Duration   `yaml:"reaper_interval,omitempty"`
	JobTimeout        time.Duration   `yaml:"job_timeout,omitempty"`
	WorkerCount       int             `yaml:"worker_count" validate:"min=1"`
	DatabaseURL       string          `yaml:"database_url,omitempty"`
	RedisAddr         string          `yaml:"redis_addr,omitempty"`
}

// DefaultJobConfig returns the built-in Job Manager defaults.
func DefaultJobConfig() *JobConfig {
	return &JobConfig{
		StoreBackend:     JobStoreMemory,
		RetentionSeconds: 604800,
		ReaperInterval:   60 * time.Second,
		JobTimeout:       30 * time.Minute,
		WorkerCount:      2,
	}
}

// HTTPConfig controls the HTTP Facade (spec §4.7, §5).
type HTTPConfig struct {
	Addr                string        `yaml:"addr,omitempty"`
	SyncWallClockGuard  time.Duration `yaml:"sync_wall_clock_guard,omitempty"`
	CORSAllowedOrigins  []string      `yaml:"cors_allowed_origins,omitempty"`
	JWTPrincipalHeader  string        `yaml:"jwt_principal_header,omitempty"`
}

// DefaultHTTPConfig returns the built-in HTTP Facade defaults.
func DefaultHTTPConfig() *HTTPConfig {
	return &HTTPConfig{
		Addr:               ":8080",
		SyncWallClockGuard: 25 * time.Second,
		CORSAllowedOrigins: []string{"*"},
	}
}
