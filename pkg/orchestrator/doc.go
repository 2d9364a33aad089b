// Package orchestrator plays sequences against a registry of components.
//
// An Orchestrator resolves the sequence for an animation name, validates
// every declaration against its registry and then runs the phases in order.
// All declarations of a phase start together (after their delays); the next
// phase starts when every one of them has completed. Time based
// declarations are driven by a machines.Timed and the time solver, spring
// declarations by a machines.Endless and the spring solver. Each frame the
// computed styles are pushed through the registry.
//
// An Orchestrator is single threaded. All methods must be called on the
// goroutine that drives its scheduler; use animation.FrameLoop.Post from
// other goroutines.
//
//	orch := orchestrator.New(sequence.Static(seq), orchestrator.Options{Scheduler: loop})
//	orch.Registry().Register("box", node, applyStyles, clearStyles)
//	if err := orch.Play("", func() { fmt.Println("done") }); err != nil {
//		return err
//	}
package orchestrator
