// ctrleval is the internal-control-test evaluation service: it loads
// configuration, wires the Provider Registry, Evidence Processor, Graph
// Orchestrator, Batch Coordinator, Job Manager, and HTTP Facade together,
// and serves until terminated. Grounded in the teacher's cmd/tarsy/main.go
// startup shape (flag-based config dir, .env loading, gin router), adapted
// to this service's own component graph.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/codeready-toolchain/ctrleval/pkg/api"
	"github.com/codeready-toolchain/ctrleval/pkg/batch"
	"github.com/codeready-toolchain/ctrleval/pkg/config"
	"github.com/codeready-toolchain/ctrleval/pkg/evidence"
	"github.com/codeready-toolchain/ctrleval/pkg/graph"
	"github.com/codeready-toolchain/ctrleval/pkg/job"
	"github.com/codeready-toolchain/ctrleval/pkg/jobstore/memstore"
	"github.com/codeready-toolchain/ctrleval/pkg/jobstore/pgstore"
	"github.com/codeready-toolchain/ctrleval/pkg/jobstore/redisstore"
	"github.com/codeready-toolchain/ctrleval/pkg/metrics"
	"github.com/codeready-toolchain/ctrleval/pkg/provider"
	"github.com/codeready-toolchain/ctrleval/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func main() {
	configDir := flag.String("config-dir", getEnv("CONFIG_DIR", "./deploy/config"), "Path to configuration directory")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting ctrleval", "version", version.Full(), "config_dir", *configDir)

	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		slog.Error("configuration failed", "error", err)
		os.Exit(1)
	}

	registry := metrics.NewPrometheusRecorder(prometheus.DefaultRegisterer)

	providers, err := provider.NewRegistry(ctx, cfg.LLM, cfg.OCR, registry)
	if err != nil {
		slog.Error("provider registry construction failed", "error", err)
		os.Exit(1)
	}

	store, err := newJobStore(ctx, cfg.Job)
	if err != nil {
		slog.Error("job store construction failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	evidenceProcessor := evidence.NewProcessor(providers.GetOCR(), cfg.OCR.MaxTextCharsPerFile, cfg.OCR.PDFTextFallbackThreshold)
	orchestrator := graph.NewOrchestrator(providers.GetLLM(), cfg.Orchestrator)
	coordinator := batch.NewCoordinator(orchestrator, evidenceProcessor, cfg.Batch)
	jobManager := job.NewManager(store, coordinator, cfg.Orchestrator.FunctionTimeout, cfg.Job.JobTimeout, cfg.Job.ReaperInterval)

	for i := 0; i < cfg.Job.WorkerCount; i++ {
		workerID := fmt.Sprintf("worker-%d", i)
		go jobManager.RunWorker(ctx, workerID)
	}
	go jobManager.RunReaper(ctx)

	server := api.NewServer(cfg, providers, coordinator, jobManager, version.Full())

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{Addr: ":9090", Handler: metricsMux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server failed", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", cfg.HTTP.Addr)
		errCh <- server.Start(cfg.HTTP.Addr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("http server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown failed", "error", err)
	}
	_ = metricsServer.Shutdown(shutdownCtx)
}

func newJobStore(ctx context.Context, cfg *config.JobConfig) (job.Store, error) {
	switch cfg.StoreBackend {
	case config.JobStorePostgres:
		return pgstore.New(ctx, cfg.DatabaseURL)
	case config.JobStoreRedis:
		opts, err := redis.ParseURL(cfg.RedisAddr)
		if err != nil {
			// RedisAddr may be a bare host:port rather than a redis:// URL.
			opts = &redis.Options{Addr: cfg.RedisAddr}
		}
		return redisstore.New(redis.NewClient(opts)), nil
	default:
		return memstore.New(), nil
	}
}
