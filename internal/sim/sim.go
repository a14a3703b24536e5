// Package sim defines the submission boundary for confirmed uploads and
// bulk saves. The application never persists ingested data; submissions go
// through the Submitter interface so the simulated backend used today and a
// real one later are interchangeable, and failure paths stay testable.
package sim

import (
	"context"
	"time"
)

// Ack describes an accepted submission.
type Ack struct {
	// Records is the number of records the backend accepted.
	Records int `json:"records"`

	// CompletedAt is when the submission finished.
	CompletedAt time.Time `json:"completedAt"`
}

// Submitter accepts a batch of records for storage.
// Submit blocks until the batch is accepted or the context is done.
type Submitter interface {
	Submit(ctx context.Context, records int) (Ack, error)
}

// Simulated is a Submitter that imitates network latency and always accepts.
// It stands in for a real ingestion backend during demos.
type Simulated struct {
	// Delay is the artificial latency applied to every submission.
	Delay time.Duration
}

// NewSimulated returns a Simulated submitter with the given artificial delay.
func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{Delay: delay}
}

// Submit waits for the configured delay, then acknowledges the batch.
// Unlike the UI it replaces, it honors context cancellation during the wait
// so a disconnected client does not hold a goroutine hostage.
func (s *Simulated) Submit(ctx context.Context, records int) (Ack, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Ack{}, ctx.Err()
		case <-timer.C:
		}
	}
	return Ack{Records: records, CompletedAt: time.Now()}, nil
}
