package recorder

import "FarmSentinel/internal/model"

// Recorder journals what was sent out. The journal is write-only: nothing
// in the process reads it back.
type Recorder interface {
	// RecordEvent stores a user notification and whether any notifier
	// accepted it.
	RecordEvent(evt model.Event, delivered bool) error
	// RecordDigest stores a periodic digest and returns its id.
	RecordDigest(evt model.Event, delivered bool) (string, error)
	Close() error
}
