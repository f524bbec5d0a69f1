package recorder

// NoopRecorder discards everything. Used when no sqlite path is configured.
type NoopRecorder struct{}

// NewNoopRecorder creates a no-op recorder.
func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(*RunRecord) error { return nil }
func (n *NoopRecorder) Close() error               { return nil }
