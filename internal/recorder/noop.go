package recorder

import "FarmSentinel/internal/model"

// NoopRecorder is used when no database path is configured.
type NoopRecorder struct{}

// NewNoopRecorder creates a new NoopRecorder.
func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

// RecordEvent discards the event.
func (n *NoopRecorder) RecordEvent(_ model.Event, _ bool) error { return nil }

// RecordDigest discards the digest and returns an empty id.
func (n *NoopRecorder) RecordDigest(_ model.Event, _ bool) (string, error) { return "", nil }

// Close does nothing.
func (n *NoopRecorder) Close() error { return nil }
