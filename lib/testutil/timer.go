package testutil

import (
	"sync"
	"time"
)

// RecordingTimer is a backoff.Timer that fires immediately and records every
// wait it was asked for.
type RecordingTimer struct {
	mu    sync.Mutex
	waits []time.Duration
	c     chan time.Time
}

func NewRecordingTimer() *RecordingTimer {
	return &RecordingTimer{c: make(chan time.Time, 1)}
}

func (t *RecordingTimer) Start(d time.Duration) {
	t.mu.Lock()
	t.waits = append(t.waits, d)
	t.mu.Unlock()
	t.c <- time.Now()
}

func (t *RecordingTimer) Stop() {}

func (t *RecordingTimer) C() <-chan time.Time {
	return t.c
}

func (t *RecordingTimer) Waits() []time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]time.Duration(nil), t.waits...)
}
