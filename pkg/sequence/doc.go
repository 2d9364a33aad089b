// Package sequence describes what an animation does: declarations, the
// phases they are grouped into, and the generators that produce phases for
// a named animation.
//
// A Declaration animates one component from one style map to another,
// either over a fixed duration with an easing curve or with a damped spring.
// A Phase maps component names to Tracks of declarations; all tracks of a
// phase start together and the phase ends when every declaration has ended.
// A Sequence is an ordered list of phases.
//
// Sequences come from a Generator, which may be static, computed from the
// currently registered component nodes, or a map of named generators.
// Sequences can also be loaded from YAML, TOML or JSON files with LoadFile.
package sequence
