package sim

import (
	"context"
	"testing"
	"time"
)

func TestSimulated_AcksAfterDelay(t *testing.T) {
	s := NewSimulated(10 * time.Millisecond)

	start := time.Now()
	ack, err := s.Submit(context.Background(), 3)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if ack.Records != 3 {
		t.Errorf("ack.Records = %d, want 3", ack.Records)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("Submit() returned after %v, want at least the configured delay", elapsed)
	}
	if ack.CompletedAt.IsZero() {
		t.Error("ack.CompletedAt is zero")
	}
}

func TestSimulated_ZeroDelay(t *testing.T) {
	s := NewSimulated(0)
	if _, err := s.Submit(context.Background(), 1); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
}

func TestSimulated_ContextCancelled(t *testing.T) {
	s := NewSimulated(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := s.Submit(ctx, 1)
	if err == nil {
		t.Fatal("Submit() expected error on cancelled context")
	}
}
