// Package refresh re-derives the signed token exactly when the token
// window advances. It samples the clock at a fixed interval, well
// under half the window, and compares the sample's window against the
// last one it acted on.
package refresh

import (
	"context"
	"sync"
	"time"

	"src.goblgobl.com/ticketgimp/token"
)

const DefaultInterval = 500 * time.Millisecond

type Scheduler struct {
	// How often Run samples the clock. Defaults to DefaultInterval.
	Interval time.Duration

	// Clock source, time.Now unless a test swaps it.
	Now func() time.Time

	onChange func(now time.Time)

	mu       sync.Mutex
	window   int64
	observed bool
	stopped  bool
	done     chan struct{}
	stopOnce sync.Once
}

func New(onChange func(now time.Time)) *Scheduler {
	return &Scheduler{
		Interval: DefaultInterval,
		Now:      time.Now,
		onChange: onChange,
		done:     make(chan struct{}),
	}
}

// One step of the state machine. Calls onChange, and returns true, when
// now's window differs from the last window acted on (or nothing has
// been acted on yet). Does nothing once the scheduler is stopped.
//
// onChange runs while the scheduler's lock is held, which is what lets
// Stop promise that no callback is running or will run once it returns.
func (s *Scheduler) Sample(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return false
	}

	window := token.Window(now)
	if s.observed && window == s.window {
		return false
	}

	s.window = window
	s.observed = true
	s.onChange(now)
	return true
}

// Forgets the last window so that the next sample fires regardless.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	s.observed = false
	s.mu.Unlock()
}

// The last window acted on, false if nothing has fired yet.
func (s *Scheduler) Window() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window, s.observed
}

// Samples immediately and then every Interval until ctx is cancelled or
// Stop is called.
func (s *Scheduler) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Sample(s.Now())
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			s.Sample(s.Now())
		}
	}
}

// Safe to call more than once, and from any goroutine. Marks the
// scheduler as stopped before anything else so that a tick racing with
// Stop is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.stopOnce.Do(func() { close(s.done) })
}
