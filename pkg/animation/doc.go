// Package animation provides the timing primitives animations are built on.
//
// # Core Components
//
//   - [Scheduler]: the frame-request/cancel pair plus one-shot timers. Every
//     callback runs on a single goroutine.
//
//   - [FrameLoop]: the default Scheduler. Each [FrameLoop.Pump] runs posted
//     functions, then due timers, then the frame callbacks requested before
//     the pump started, all with the same timestamp.
//
//   - [Curve]: easing functions that map linear progress to eased progress.
//     Includes the standard CSS curves, cubic Béziers via [CubicBezier], and
//     the Penner easings registered by name for [ParseCurve].
//
// # Basic Usage
//
// Drive a loop from a host's own frame callback:
//
//	loop := animation.NewFrameLoop(animation.SystemClock{})
//	loop.RequestFrame(func(now time.Time) { ... })
//	loop.Pump()
//
// or, without one, at a fixed rate:
//
//	go loop.Run(ctx, animation.DefaultFPS)
//
// Tests inject a fake [Clock] to control time deterministically.
package animation
