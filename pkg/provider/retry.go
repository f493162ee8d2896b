package provider

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/codeready-toolchain/ctrleval/pkg/metrics"
)

// Retry/backoff defaults ratified by spec.md §9's Open Question decision:
// 3 attempts, 500ms base, ±25% jitter.
const (
	retryMaxAttempts     = 3
	retryBaseInterval    = 500 * time.Millisecond
	retryRandomization   = 0.25
	retryMultiplier      = 2.0
)

func newBackoffPolicy() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryBaseInterval
	b.RandomizationFactor = retryRandomization
	b.Multiplier = retryMultiplier
	b.MaxElapsedTime = 0 // attempt budget governs termination, not elapsed time
	return backoff.WithMaxRetries(b, retryMaxAttempts-1)
}

func newBreaker(name string, rec metrics.Recorder) *gobreaker.CircuitBreaker {
	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			rec.RecordCircuitBreakerState(name, to.String())
			slog.Warn("provider circuit breaker state change", "provider", name, "from", from, "to", to)
		},
	}
	return gobreaker.NewCircuitBreaker(st)
}

// retryingLLMBackend wraps a raw per-provider llmBackend with the shared
// retry-with-backoff, circuit-breaker, and cost-metrics policy so every
// backend gets identical operational behavior (spec.md §4.1, §7).
type retryingLLMBackend struct {
	name    string
	raw     llmBackend
	breaker *gobreaker.CircuitBreaker
	rec     metrics.Recorder
}

func wrapLLMBackend(name string, raw llmBackend, rec metrics.Recorder) llmBackend {
	return &retryingLLMBackend{name: name, raw: raw, breaker: newBreaker(name, rec), rec: rec}
}

func (b *retryingLLMBackend) invoke(ctx context.Context, prompt string, tools []ToolSpec, maxTokens int, temperature float64) (string, Usage, error) {
	var text string
	var usage Usage

	op := func() error {
		start := time.Now()
		result, execErr := b.breaker.Execute(func() (any, error) {
			t, u, err := b.raw.invoke(ctx, prompt, tools, maxTokens, temperature)
			if err != nil {
				return nil, err
			}
			return struct {
				text  string
				usage Usage
			}{t, u}, nil
		})
		elapsed := time.Since(start).Seconds()

		if execErr != nil {
			if errors.Is(execErr, gobreaker.ErrOpenState) || errors.Is(execErr, gobreaker.ErrTooManyRequests) {
				execErr = ErrUnavailable
			}
			b.rec.RecordLLMCall(b.name, "", 0, 0, elapsed, execErr)
			if errors.Is(execErr, ErrInvalidRequest) {
				return backoff.Permanent(execErr)
			}
			if !IsTransient(execErr) {
				return backoff.Permanent(execErr)
			}
			return execErr
		}

		out := result.(struct {
			text  string
			usage Usage
		})
		text, usage = out.text, out.usage
		b.rec.RecordLLMCall(b.name, "", usage.PromptTokens, usage.CompletionTokens, elapsed, nil)
		return nil
	}

	err := backoff.Retry(op, backoff.WithContext(newBackoffPolicy(), ctx))
	if err != nil {
		return "", Usage{}, err
	}
	return text, usage, nil
}

// retryingOCRBackend is the OCR analog of retryingLLMBackend.
type retryingOCRBackend struct {
	name    string
	raw     ocrBackend
	breaker *gobreaker.CircuitBreaker
	rec     metrics.Recorder
}

func wrapOCRBackend(name string, raw ocrBackend, rec metrics.Recorder) ocrBackend {
	return &retryingOCRBackend{name: name, raw: raw, breaker: newBreaker("ocr:"+name, rec), rec: rec}
}

func (b *retryingOCRBackend) extract(ctx context.Context, buf []byte, mimeType, language string) (string, []StructuredBlock, error) {
	var text string
	var blocks []StructuredBlock

	op := func() error {
		start := time.Now()
		result, execErr := b.breaker.Execute(func() (any, error) {
			t, bl, err := b.raw.extract(ctx, buf, mimeType, language)
			if err != nil {
				return nil, err
			}
			return struct {
				text   string
				blocks []StructuredBlock
			}{t, bl}, nil
		})
		elapsed := time.Since(start).Seconds()

		if execErr != nil {
			if errors.Is(execErr, gobreaker.ErrOpenState) || errors.Is(execErr, gobreaker.ErrTooManyRequests) {
				execErr = ErrUnavailable
			}
			b.rec.RecordOCRCall(b.name, elapsed, execErr)
			if !IsTransient(execErr) {
				return backoff.Permanent(execErr)
			}
			return execErr
		}

		out := result.(struct {
			text   string
			blocks []StructuredBlock
		})
		text, blocks = out.text, out.blocks
		b.rec.RecordOCRCall(b.name, elapsed, nil)
		return nil
	}

	err := backoff.Retry(op, backoff.WithContext(newBackoffPolicy(), ctx))
	if err != nil {
		return "", nil, err
	}
	return text, blocks, nil
}
