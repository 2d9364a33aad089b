package testing

import (
	"fmt"
	"time"

	"github.com/go-drift/animatronic/pkg/animation"
)

// FakeScheduler is an animation.Scheduler driven by a FakeClock. Each Tick
// advances the clock by one frame and pumps the underlying FrameLoop, so
// animations progress only when a test says so.
type FakeScheduler struct {
	*animation.FrameLoop

	// Clock is the virtual clock shared with the loop.
	Clock *FakeClock
	// FrameDuration is the time each Tick advances (default 1/60 s).
	FrameDuration time.Duration
}

// NewFakeScheduler returns a scheduler at the FakeClock epoch ticking at
// 60 frames per second.
func NewFakeScheduler() *FakeScheduler {
	clk := NewFakeClock()
	return &FakeScheduler{
		FrameLoop:     animation.NewFrameLoop(clk),
		Clock:         clk,
		FrameDuration: animation.FrameInterval(animation.DefaultFPS),
	}
}

// Tick advances one frame and pumps.
func (s *FakeScheduler) Tick() {
	s.Clock.Advance(s.FrameDuration)
	s.Pump()
}

// TickN advances n frames, pumping after each.
func (s *FakeScheduler) TickN(n int) {
	for range n {
		s.Tick()
	}
}

// Advance ticks whole frames until d has elapsed. A trailing partial frame
// is advanced and pumped as well.
func (s *FakeScheduler) Advance(d time.Duration) {
	for d > 0 {
		step := min(s.FrameDuration, d)
		s.Clock.Advance(step)
		s.Pump()
		d -= step
	}
}

// Elapsed returns the virtual time since the epoch.
func (s *FakeScheduler) Elapsed() time.Duration {
	return s.Clock.Now().Sub(Epoch)
}

// Settle ticks until nothing is pending. It returns an error if work is
// still pending after limit of virtual time.
func (s *FakeScheduler) Settle(limit time.Duration) error {
	start := s.Clock.Now()
	for s.Pending() {
		if s.Clock.Now().Sub(start) > limit {
			return fmt.Errorf("scheduler did not settle within %v", limit)
		}
		s.Tick()
	}
	return nil
}
