package metrics

// NoopRecorder discards every call. It's the Recorder used by tests and by
// deployments that don't wire a Prometheus registry.
type NoopRecorder struct{}

var _ Recorder = NoopRecorder{}

// RecordLLMCall implements Recorder.
func (NoopRecorder) RecordLLMCall(provider, model string, promptTokens, completionTokens int, durationSeconds float64, err error) {
}

// RecordOCRCall implements Recorder.
func (NoopRecorder) RecordOCRCall(provider string, durationSeconds float64, err error) {}

// RecordJobTransition implements Recorder.
func (NoopRecorder) RecordJobTransition(fromState, toState string) {}

// RecordCircuitBreakerState implements Recorder.
func (NoopRecorder) RecordCircuitBreakerState(provider, state string) {}
