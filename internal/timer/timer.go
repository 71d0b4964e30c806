// Package timer tracks wall-clock runtime of a command and reports progress
// periodically so long LLM batches show signs of life.
package timer

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultInterval is how often a running timer logs elapsed time.
const DefaultInterval = 15 * time.Second

// RuntimeTimer logs elapsed time at a fixed interval until stopped.
type RuntimeTimer struct {
	log      *logrus.Logger
	interval time.Duration

	mu      sync.Mutex
	started time.Time
	done    chan struct{}
}

func New(log *logrus.Logger, interval time.Duration) *RuntimeTimer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &RuntimeTimer{log: log, interval: interval}
}

// Start begins timing and spawns the progress logger. Calling Start on a
// running timer is a no-op.
func (t *RuntimeTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done != nil {
		return
	}
	t.started = time.Now()
	t.done = make(chan struct{})
	go t.loop(t.started, t.done)
}

func (t *RuntimeTimer) loop(started time.Time, done chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			t.log.WithField("elapsed", Format(time.Since(started))).Info("still running")
		}
	}
}

// Stop ends timing and returns the total elapsed duration. Stopping a timer
// that never started returns zero.
func (t *RuntimeTimer) Stop() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done == nil {
		return 0
	}
	close(t.done)
	t.done = nil
	return time.Since(t.started)
}

// Elapsed returns time since Start without stopping the timer.
func (t *RuntimeTimer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done == nil {
		return 0
	}
	return time.Since(t.started)
}

// Format renders a duration as "1m 23.4s" or "12.3s" for runtime reports.
func Format(d time.Duration) string {
	if d < time.Minute {
		return d.Round(100 * time.Millisecond).String()
	}
	m := int(d / time.Minute)
	s := d - time.Duration(m)*time.Minute
	return fmt.Sprintf("%dm %s", m, s.Round(100*time.Millisecond))
}
