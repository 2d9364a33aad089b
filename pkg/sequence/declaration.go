package sequence

import (
	"math"
	"time"

	"github.com/go-drift/animatronic/pkg/animation"
	animerrors "github.com/go-drift/animatronic/pkg/errors"
	"github.com/go-drift/animatronic/pkg/style"
)

// Mode is the timing mode of a declaration.
type Mode int

const (
	// ModeNone means no timing fields were declared.
	ModeNone Mode = iota
	// ModeTime runs for a fixed duration along an easing curve.
	ModeTime
	// ModeSpring runs a damped spring until it comes to rest.
	ModeSpring
)

func (m Mode) String() string {
	switch m {
	case ModeTime:
		return "time"
	case ModeSpring:
		return "spring"
	default:
		return "none"
	}
}

// Declaration is one animation of one component. Exactly one timing mode
// must be set: Duration (with an optional Easing) or both Stiffness and
// Damping. From and To are either both set or both nil; a declaration
// without styles only occupies time.
type Declaration struct {
	From  style.Map
	To    style.Map
	Delay time.Duration

	Duration *time.Duration
	// Easing is used in time mode. Nil means animation.StandardCurve.
	Easing animation.Curve

	Stiffness *float64
	Damping   *float64
}

// Timed returns a time based declaration.
func Timed(from, to style.Map, duration time.Duration) Declaration {
	return Declaration{From: from, To: to, Duration: &duration}
}

// Spring returns a spring based declaration.
func Spring(from, to style.Map, stiffness, damping float64) Declaration {
	return Declaration{From: from, To: to, Stiffness: &stiffness, Damping: &damping}
}

// WithDelay returns a copy of d that starts after delay.
func (d Declaration) WithDelay(delay time.Duration) Declaration {
	d.Delay = delay
	return d
}

// WithEasing returns a copy of d using curve.
func (d Declaration) WithEasing(curve animation.Curve) Declaration {
	d.Easing = curve
	return d
}

// Mode reports which timing mode d declares. Call Validate first; Mode does
// not detect conflicts.
func (d Declaration) Mode() Mode {
	switch {
	case d.Duration != nil:
		return ModeTime
	case d.Stiffness != nil && d.Damping != nil:
		return ModeSpring
	default:
		return ModeNone
	}
}

// Curve returns the easing curve, defaulting to animation.StandardCurve.
func (d Declaration) Curve() animation.Curve {
	if d.Easing == nil {
		return animation.StandardCurve
	}
	return d.Easing
}

// Validate checks the timing mode, the from/to pair, the delay and every
// style value. The returned error is an *animerrors.AnimationError.
func (d Declaration) Validate() error {
	const op = "sequence.Declaration.Validate"

	spring := d.Stiffness != nil || d.Damping != nil
	switch {
	case d.Duration != nil && spring:
		return animerrors.New(op, animerrors.KindTimingConflict,
			"duration cannot be combined with stiffness/damping")
	case d.Duration != nil:
		if *d.Duration < 0 {
			return animerrors.New(op, animerrors.KindTimingIncomplete,
				"duration %v is negative", *d.Duration)
		}
	case spring:
		if d.Stiffness == nil || d.Damping == nil {
			return animerrors.New(op, animerrors.KindTimingIncomplete,
				"stiffness and damping must be declared together")
		}
		if !finite(*d.Stiffness) || !finite(*d.Damping) {
			return animerrors.New(op, animerrors.KindTimingIncomplete,
				"stiffness and damping must be finite numbers")
		}
	default:
		return animerrors.New(op, animerrors.KindTimingMissing,
			"declare a duration or stiffness and damping")
	}

	if (d.From == nil) != (d.To == nil) {
		return animerrors.New(op, animerrors.KindFromTo,
			"from and to must be declared together")
	}
	if d.Delay < 0 {
		return animerrors.New(op, animerrors.KindDelay, "delay %v is negative", d.Delay)
	}

	for _, name := range d.From.Keys() {
		raw, ok := d.To[name]
		if !ok {
			raw = d.From[name]
		}
		if _, _, err := style.ParsePair(name, d.From[name], raw); err != nil {
			return animerrors.Wrap(op, animerrors.KindParse, err)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
