package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncCreated is a no-op.
func (n *NoopRecorder) IncCreated(entity string) {}

// IncUpdated is a no-op.
func (n *NoopRecorder) IncUpdated(entity string) {}

// AddDeleted is a no-op.
func (n *NoopRecorder) AddDeleted(entity string, count int64) {}
