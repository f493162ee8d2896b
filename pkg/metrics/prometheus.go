package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder is the default Recorder implementation, exposing
// counters and histograms via github.com/prometheus/client_golang.
type PrometheusRecorder struct {
	llmCalls         *prometheus.CounterVec
	llmTokens        *prometheus.CounterVec
	llmDuration      *prometheus.HistogramVec
	ocrCalls         *prometheus.CounterVec
	ocrDuration      *prometheus.HistogramVec
	jobTransitions   *prometheus.CounterVec
	breakerState     *prometheus.GaugeVec
}

// NewPrometheusRecorder creates a PrometheusRecorder and registers its
// collectors with reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		llmCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ctrleval",
			Subsystem: "llm",
			Name:      "calls_total",
			Help:      "Total LLM provider calls, labeled by provider, model, and outcome.",
		}, []string{"provider", "model", "outcome"}),
		llmTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ctrleval",
			Subsystem: "llm",
			Name:      "tokens_total",
			Help:      "Total LLM tokens consumed, labeled by provider, model, and kind (prompt/completion).",
		}, []string{"provider", "model", "kind"}),
		llmDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ctrleval",
			Subsystem: "llm",
			Name:      "call_duration_seconds",
			Help:      "LLM provider call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider", "model"}),
		ocrCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ctrleval",
			Subsystem: "ocr",
			Name:      "calls_total",
			Help:      "Total OCR provider calls, labeled by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ocrDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ctrleval",
			Subsystem: "ocr",
			Name:      "call_duration_seconds",
			Help:      "OCR provider call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
		jobTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ctrleval",
			Subsystem: "job",
			Name:      "transitions_total",
			Help:      "Job state transitions, labeled by from/to state.",
		}, []string{"from", "to"}),
		breakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ctrleval",
			Subsystem: "provider",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state per provider (0=closed, 1=half-open, 2=open).",
		}, []string{"provider"}),
	}

	reg.MustRegister(r.llmCalls, r.llmTokens, r.llmDuration, r.ocrCalls, r.ocrDuration, r.jobTransitions, r.breakerState)
	return r
}

func outcomeLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordLLMCall implements Recorder.
func (r *PrometheusRecorder) RecordLLMCall(provider, model string, promptTokens, completionTokens int, durationSeconds float64, err error) {
	r.llmCalls.WithLabelValues(provider, model, outcomeLabel(err)).Inc()
	r.llmTokens.WithLabelValues(provider, model, "prompt").Add(float64(promptTokens))
	r.llmTokens.WithLabelValues(provider, model, "completion").Add(float64(completionTokens))
	r.llmDuration.WithLabelValues(provider, model).Observe(durationSeconds)
}

// RecordOCRCall implements Recorder.
func (r *PrometheusRecorder) RecordOCRCall(provider string, durationSeconds float64, err error) {
	r.ocrCalls.WithLabelValues(provider, outcomeLabel(err)).Inc()
	r.ocrDuration.WithLabelValues(provider).Observe(durationSeconds)
}

// RecordJobTransition implements Recorder.
func (r *PrometheusRecorder) RecordJobTransition(fromState, toState string) {
	r.jobTransitions.WithLabelValues(fromState, toState).Inc()
}

// breakerStateValue maps a gobreaker.State to the gauge's numeric encoding.
func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}

// RecordCircuitBreakerState implements Recorder.
func (r *PrometheusRecorder) RecordCircuitBreakerState(provider, state string) {
	r.breakerState.WithLabelValues(provider).Set(breakerStateValue(state))
}
