// Package testing provides deterministic test doubles for animations.
//
// # Virtual Time
//
// FakeScheduler pairs a FrameLoop with a FakeClock so frames only happen
// when a test asks for them:
//
//	sched := animtest.NewFakeScheduler()
//	orch := orchestrator.New(gen, orchestrator.Options{Scheduler: sched})
//	orch.Play("default", nil)
//	sched.Advance(300 * time.Millisecond)
//
// # Recording and Snapshots
//
// A Recorder registers components whose updates are captured with their
// virtual timestamp. The captured frames can be compared against a golden
// file:
//
//	rec := animtest.NewRecorder(sched.Clock)
//	rec.Register(orch.Registry(), "box")
//	...
//	rec.Snapshot().MatchesFile(t, "testdata/slide.snapshot.json")
//
// Update golden files with:
//
//	ANIMATRONIC_UPDATE_SNAPSHOTS=1 go test ./...
package testing
