package clock

import (
	"context"
	"sync"
	"time"
)

// Clock provides the current time and blocking delays.
// Both the firmware loop and the host controller pace themselves through it.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Real is the wall clock.
type Real struct{}

var _ Clock = Real{}

// Now returns time.Now().
func (Real) Now() time.Time { return time.Now() }

// Sleep blocks for d.
func (Real) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// SleepContext blocks for d or until ctx is done.
func (Real) SleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// ContextSleeper is a Clock whose delays can be cut short.
type ContextSleeper interface {
	SleepContext(ctx context.Context, d time.Duration)
}

var _ ContextSleeper = Real{}

// SleepContext sleeps d on c. It returns early when ctx is done and c
// implements ContextSleeper.
func SleepContext(ctx context.Context, c Clock, d time.Duration) {
	if s, ok := c.(ContextSleeper); ok {
		s.SleepContext(ctx, d)
		return
	}
	c.Sleep(d)
}

// Sim is a simulated clock. Sleep advances the simulated time instantly,
// which makes acquisition and presentation timing deterministic in tests.
type Sim struct {
	mu    sync.Mutex
	now   time.Time
	slept time.Duration
}

var _ Clock = (*Sim)(nil)

// NewSim creates a simulated clock starting at start.
func NewSim(start time.Time) *Sim {
	return &Sim{now: start}
}

// Now returns the simulated time.
func (s *Sim) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Sleep advances the simulated time by d.
func (s *Sim) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	s.now = s.now.Add(d)
	s.slept += d
	s.mu.Unlock()
}

// Advance moves the clock forward without counting it as sleep.
func (s *Sim) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	s.mu.Unlock()
}

// Slept returns the total duration passed to Sleep.
func (s *Sim) Slept() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slept
}
