package testing

import (
	"testing"
	"time"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestFakeScheduler_TickRunsFrames(t *testing.T) {
	s := NewFakeScheduler()
	var stamps []time.Time
	s.RequestFrame(func(now time.Time) { stamps = append(stamps, now) })

	s.Tick()
	if len(stamps) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(stamps))
	}
	if got := stamps[0].Sub(Epoch); got != s.FrameDuration {
		t.Errorf("frame timestamp offset = %v, want %v", got, s.FrameDuration)
	}

	s.Tick()
	if len(stamps) != 1 {
		t.Error("frame callbacks must not repeat without a new request")
	}
}

func TestFakeScheduler_AdvanceFiresTimers(t *testing.T) {
	s := NewFakeScheduler()
	fired := false
	s.AfterFunc(50*time.Millisecond, func() { fired = true })

	s.Advance(40 * time.Millisecond)
	if fired {
		t.Fatal("timer fired early")
	}
	s.Advance(10 * time.Millisecond)
	if !fired {
		t.Error("timer did not fire at its due time")
	}
	if s.Elapsed() != 50*time.Millisecond {
		t.Errorf("elapsed = %v, want 50ms", s.Elapsed())
	}
}

func TestFakeScheduler_Settle(t *testing.T) {
	s := NewFakeScheduler()
	remaining := 5
	var loop func(time.Time)
	loop = func(time.Time) {
		remaining--
		if remaining > 0 {
			s.RequestFrame(loop)
		}
	}
	s.RequestFrame(loop)

	if err := s.Settle(time.Second); err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if remaining != 0 {
		t.Errorf("remaining = %d, want 0", remaining)
	}

	var forever func(time.Time)
	forever = func(time.Time) { s.RequestFrame(forever) }
	s.RequestFrame(forever)
	if err := s.Settle(100 * time.Millisecond); err == nil {
		t.Error("expected Settle to fail for an endless loop")
	}
}
