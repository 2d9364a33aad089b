// Package machines provides the scheduling primitives animations are built
// from: a countdown barrier, a duration-bounded per-frame job runner and an
// unbounded per-frame job runner.
//
// Timed and Endless take their frame source as an explicit
// animation.Scheduler, so tests drive them with a virtual clock:
//
//	sched := animtest.NewFakeScheduler()
//	m := machines.NewTimed(100*time.Millisecond, sched)
//	m.RegisterJob(func(elapsed time.Duration) { ... })
//	m.Start()
//	sched.Advance(100 * time.Millisecond)
package machines
