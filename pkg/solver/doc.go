// Package solver computes the styles of a component at a given moment of an
// animation.
//
// [Tween] and [ComputeFrame] interpolate between two style maps for time
// based declarations. [Spring] integrates a damped harmonic oscillator per
// numeric channel for physics based declarations, at a fixed 60 Hz step
// independent of the real frame rate.
package solver
