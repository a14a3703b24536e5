package entry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bizsight/bizsight/internal/sim"
)

// ErrNoEntries is returned by SaveAll when the pending list is empty.
var ErrNoEntries = errors.New("no entries to save")

// PendingList holds validated records awaiting a bulk save. It is owned by a
// single session; the mutex guards against concurrent requests on the same
// session, not cross-session sharing.
type PendingList struct {
	mu      sync.Mutex
	records []Record
	// gen counts mutations so SaveAll can tell whether the list changed
	// while a submit was in flight.
	gen uint64
}

// NewPendingList returns an empty pending list.
func NewPendingList() *PendingList {
	return &PendingList{}
}

// Add appends a validated record. Callers must run Validate first; Add
// rejects invalid records to keep the list's contents trustworthy.
func (p *PendingList) Add(r Record) error {
	if errs := Validate(r); len(errs) > 0 {
		return fmt.Errorf("record has %d validation errors", len(errs))
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = append(p.records, r)
	p.gen++
	return nil
}

// Remove deletes the record at index. Indexes are positions in the current
// list, matching what Entries returned.
func (p *PendingList) Remove(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || index >= len(p.records) {
		return fmt.Errorf("no pending entry at index %d", index)
	}
	p.records = append(p.records[:index], p.records[index+1:]...)
	p.gen++
	return nil
}

// Entries returns a snapshot of the pending records.
func (p *PendingList) Entries() []Record {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Record, len(p.records))
	copy(out, p.records)
	return out
}

// Len returns the number of pending records.
func (p *PendingList) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.records)
}

// SaveAll submits every pending record through the submitter and removes the
// submitted records on acknowledgement. The save is all-or-nothing: if the
// submitter fails, every record stays pending. Records added while the submit
// is in flight are not part of the batch and stay pending.
func (p *PendingList) SaveAll(ctx context.Context, submitter sim.Submitter) (sim.Ack, error) {
	// Snapshot outside the submit call so a slow submitter does not block
	// Entries/Remove on the same session.
	p.mu.Lock()
	records := make([]Record, len(p.records))
	copy(records, p.records)
	gen := p.gen
	p.mu.Unlock()

	if len(records) == 0 {
		return sim.Ack{}, ErrNoEntries
	}

	ack, err := submitter.Submit(ctx, len(records))
	if err != nil {
		return sim.Ack{}, fmt.Errorf("save entries: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen == gen {
		p.records = nil
	} else {
		// The list changed while the submit was in flight. Drop only the
		// records that were actually submitted.
		for _, r := range records {
			for i := range p.records {
				if p.records[i] == r {
					p.records = append(p.records[:i], p.records[i+1:]...)
					break
				}
			}
		}
	}
	p.gen++
	return ack, nil
}
