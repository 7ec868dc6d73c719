package jogdial

import (
	"sync"
	"time"
)

// Scheduler runs a callback once on the next display frame.
// The returned cancel function prevents a pending callback from running.
type Scheduler interface {
	Schedule(fn func(now time.Time)) (cancel func())
}

// FrameInterval is the frame period of TickerScheduler (60 Hz).
const FrameInterval = time.Second / 60

// TickerScheduler schedules frames on timers.
type TickerScheduler struct {
	Interval time.Duration
}

// NewTickerScheduler creates a 60 Hz scheduler.
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{Interval: FrameInterval}
}

// Schedule runs fn on a timer goroutine after one frame interval.
func (s *TickerScheduler) Schedule(fn func(now time.Time)) func() {
	timer := time.AfterFunc(s.Interval, func() {
		fn(time.Now())
	})
	return func() {
		timer.Stop()
	}
}

// ManualScheduler runs frames only when advanced. It also acts as the clock,
// which makes momentum fully deterministic in simulations and tests.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Time
	pending []*manualFrame
}

type manualFrame struct {
	cancelled bool
	fn        func(now time.Time)
}

// NewManualScheduler creates a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the scheduler's clock. Pass it to WithClock.
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Sleep moves the clock forward without running frames.
func (s *ManualScheduler) Sleep(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

func (s *ManualScheduler) Schedule(fn func(now time.Time)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := &manualFrame{fn: fn}
	s.pending = append(s.pending, frame)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		frame.cancelled = true
	}
}

// Pending returns the number of frames waiting to run.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, f := range s.pending {
		if !f.cancelled {
			n++
		}
	}
	return n
}

// Advance moves the clock by d and runs the frames that were pending before the call.
// Frames scheduled while running wait for the next Advance. It reports whether any frame ran.
func (s *ManualScheduler) Advance(d time.Duration) bool {
	s.mu.Lock()
	s.now = s.now.Add(d)
	now := s.now
	due := s.pending
	s.pending = nil
	s.mu.Unlock()

	ran := false
	for _, f := range due {
		s.mu.Lock()
		cancelled := f.cancelled
		s.mu.Unlock()
		if cancelled {
			continue
		}
		f.fn(now)
		ran = true
	}
	return ran
}
