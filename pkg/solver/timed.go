package solver

import (
	"math"
	"time"

	"github.com/go-drift/animatronic/pkg/animation"
	animerrors "github.com/go-drift/animatronic/pkg/errors"
	"github.com/go-drift/animatronic/pkg/style"
)

type property struct {
	name     string
	from, to style.Value
}

// Tween holds a parsed from/to pair so that frames can be computed without
// re-parsing.
type Tween struct {
	props []property
}

// NewTween parses every property present in from together with its
// counterpart in to. A property missing from to keeps its from value.
func NewTween(from, to style.Map) (*Tween, error) {
	tw := &Tween{props: make([]property, 0, len(from))}
	for _, name := range from.Keys() {
		raw, ok := to[name]
		if !ok {
			raw = from[name]
		}
		fv, tv, err := style.ParsePair(name, from[name], raw)
		if err != nil {
			return nil, animerrors.Wrap("solver.NewTween", animerrors.KindParse, err)
		}
		tw.props = append(tw.props, property{name: name, from: fv, to: tv})
	}
	return tw, nil
}

// At returns the styles at eased progress p.
func (tw *Tween) At(p float64) style.Map {
	out := make(style.Map, len(tw.props))
	for _, prop := range tw.props {
		out[prop.name] = style.Stringify(style.Interpolate(prop.from, prop.to, p))
	}
	return out
}

// Frame returns the styles after elapsed of an animation lasting duration.
func (tw *Tween) Frame(elapsed, duration time.Duration, curve animation.Curve) style.Map {
	return tw.At(Progress(elapsed, duration, curve))
}

// End returns the final styles.
func (tw *Tween) End() style.Map {
	return tw.At(1)
}

// Progress returns curve(elapsed / duration). A zero duration divides by
// elapsed instead, which forces the end state for zero-length "flash"
// animations. A nil curve uses animation.StandardCurve.
func Progress(elapsed, duration time.Duration, curve animation.Curve) float64 {
	if curve == nil {
		curve = animation.StandardCurve
	}
	div := duration
	if div == 0 {
		div = elapsed
	}
	ratio := 1.0
	if div != 0 {
		ratio = float64(elapsed) / float64(div)
	}
	if math.IsNaN(ratio) || ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	return curve(ratio)
}

// ComputeFrame interpolates from toward to after elapsed of duration using
// curve.
func ComputeFrame(from, to style.Map, elapsed, duration time.Duration, curve animation.Curve) (style.Map, error) {
	tw, err := NewTween(from, to)
	if err != nil {
		return nil, err
	}
	return tw.Frame(elapsed, duration, curve), nil
}
