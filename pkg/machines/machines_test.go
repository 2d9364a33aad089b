package machines_test

import (
	"testing"
	"time"

	"github.com/go-drift/animatronic/pkg/machines"
	animtest "github.com/go-drift/animatronic/pkg/testing"
)

func TestTimed_RunsUntilDuration(t *testing.T) {
	sched := animtest.NewFakeScheduler()
	m := machines.NewTimed(100*time.Millisecond, sched)

	var ticks []time.Duration
	completed := 0
	m.RegisterJob(func(elapsed time.Duration) { ticks = append(ticks, elapsed) })
	m.RegisterCompleteJob(func() { completed++ })
	m.Start()

	sched.Advance(90 * time.Millisecond)
	if completed != 0 {
		t.Fatal("completed before duration elapsed")
	}
	if len(ticks) == 0 {
		t.Fatal("expected per-frame ticks")
	}

	if err := sched.Settle(time.Second); err != nil {
		t.Fatal(err)
	}
	if completed != 1 {
		t.Errorf("completed = %d, want 1", completed)
	}
	if last := ticks[len(ticks)-1]; last < 100*time.Millisecond {
		t.Errorf("last tick elapsed = %v, want >= 100ms", last)
	}
	if m.Running() {
		t.Error("machine still running after completion")
	}
}

func TestTimed_ZeroDurationCompletesOnFirstFrame(t *testing.T) {
	sched := animtest.NewFakeScheduler()
	m := machines.NewTimed(0, sched)
	ticks, completed := 0, 0
	m.RegisterJob(func(time.Duration) { ticks++ })
	m.RegisterCompleteJob(func() { completed++ })
	m.Start()

	sched.Tick()
	if ticks != 1 || completed != 1 {
		t.Errorf("ticks=%d completed=%d, want 1 and 1", ticks, completed)
	}
}

func TestTimed_StopIsIdempotentAndCancels(t *testing.T) {
	sched := animtest.NewFakeScheduler()
	m := machines.NewTimed(50*time.Millisecond, sched)
	ticks, completed := 0, 0
	m.RegisterJob(func(time.Duration) { ticks++ })
	m.RegisterCompleteJob(func() { completed++ })
	m.Start()
	sched.Tick()

	m.Stop()
	m.Stop()
	sched.Advance(200 * time.Millisecond)

	if ticks != 1 {
		t.Errorf("ticks = %d after stop, want 1", ticks)
	}
	if completed != 0 {
		t.Error("completion ran after stop")
	}
	if sched.Pending() {
		t.Error("frame request left pending after stop")
	}
}

func TestTimed_StopFromCompletionJob(t *testing.T) {
	sched := animtest.NewFakeScheduler()
	m := machines.NewTimed(10*time.Millisecond, sched)
	m.RegisterCompleteJob(func() { m.Stop() })
	m.Start()
	if err := sched.Settle(time.Second); err != nil {
		t.Fatal(err)
	}
}

func TestEndless_RunsUntilStopped(t *testing.T) {
	sched := animtest.NewFakeScheduler()
	m := machines.NewEndless(sched)
	ticks := 0
	m.RegisterJob(func(time.Duration) {
		ticks++
		if ticks == 30 {
			m.Stop()
		}
	})
	m.Start()

	sched.TickN(100)
	if ticks != 30 {
		t.Errorf("ticks = %d, want 30", ticks)
	}
	if m.Running() {
		t.Error("machine still running after Stop")
	}
	if sched.Pending() {
		t.Error("frame request left pending after stop")
	}
}

func TestEndless_ElapsedIsMonotonic(t *testing.T) {
	sched := animtest.NewFakeScheduler()
	m := machines.NewEndless(sched)
	var last time.Duration = -1
	m.RegisterJob(func(elapsed time.Duration) {
		if elapsed <= last {
			t.Errorf("elapsed went from %v to %v", last, elapsed)
		}
		last = elapsed
	})
	m.Start()
	sched.TickN(10)
	m.Stop()
	if want := 10 * sched.FrameDuration; last != want {
		t.Errorf("last elapsed = %v, want %v", last, want)
	}
}
