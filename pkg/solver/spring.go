package solver

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	animerrors "github.com/go-drift/animatronic/pkg/errors"
	"github.com/go-drift/animatronic/pkg/style"
)

const (
	// RestVelocity is the speed below which a channel counts as at rest.
	RestVelocity = 0.01
	// MinIterations is the number of simulated frames before a spring may
	// stop, so a channel that starts at rest does not stop immediately.
	MinIterations = 10
	// MinStableChecks is the number of consecutive all-at-rest frames
	// needed before a spring stops.
	MinStableChecks = 3
	// MaxCatchUpFrames bounds how many whole frames one call may simulate.
	// Time beyond that (a suspended host) is dropped.
	MaxCatchUpFrames = 10
)

var (
	// secondsPerFrame is the fixed simulation step.
	secondsPerFrame = harmonica.FPS(60)
	msPerFrame      = secondsPerFrame * 1000
)

type channel struct {
	position float64
	velocity float64
	end      float64
}

type springProperty struct {
	name      string
	template  style.Value
	to        style.Value
	first     int
	count     int
	animating bool
}

// Spring integrates a damped harmonic oscillator for every numeric channel
// of a from/to style pair. Call RunNextFrame once per animation frame.
type Spring struct {
	stiffness float64
	damping   float64

	props    []springProperty
	channels []channel
	end      style.Map

	accumulated float64 // milliseconds not yet simulated
	iterations  int
	stable      int
	done        bool
}

// NewSpring parses from/to and creates one channel per numeric leaf.
// Properties whose two sides differ in shape jump to their target.
func NewSpring(from, to style.Map, stiffness, damping float64) (*Spring, error) {
	s := &Spring{stiffness: stiffness, damping: damping, end: make(style.Map, len(from))}
	for _, name := range from.Keys() {
		raw, ok := to[name]
		if !ok {
			raw = from[name]
		}
		fv, tv, err := style.ParsePair(name, from[name], raw)
		if err != nil {
			return nil, animerrors.Wrap("solver.NewSpring", animerrors.KindParse, err)
		}
		s.end[name] = style.Stringify(tv)
		prop := springProperty{name: name, template: fv, to: tv, first: len(s.channels)}
		if style.SameShape(fv, tv) {
			start, target := style.Flatten(fv), style.Flatten(tv)
			for i := range start {
				s.channels = append(s.channels, channel{position: start[i], end: target[i]})
			}
			prop.count = len(start)
			prop.animating = prop.count > 0
		}
		s.props = append(s.props, prop)
	}
	return s, nil
}

// Done reports whether the spring has come to rest.
func (s *Spring) Done() bool {
	return s.done
}

// Iterations returns the number of whole frames simulated so far.
func (s *Spring) Iterations() int {
	return s.iterations
}

// RunNextFrame advances the simulation by delta of wall time. Whole 60 Hz
// frames are integrated; the remainder is rendered by interpolating toward
// the next step without committing it. onNext receives the current styles,
// or onComplete receives the exact target styles once every channel has been
// at rest long enough. After completion further calls do nothing.
func (s *Spring) RunNextFrame(delta time.Duration, onNext, onComplete func(style.Map)) {
	if s.done {
		return
	}
	if delta > 0 {
		s.accumulated += float64(delta) / float64(time.Millisecond)
	}
	whole := int(math.Floor(s.accumulated / msPerFrame))
	if whole > MaxCatchUpFrames {
		whole = MaxCatchUpFrames
		s.accumulated = float64(whole) * msPerFrame
	}
	for range whole {
		s.step()
	}
	s.accumulated -= float64(whole) * msPerFrame

	if s.iterations >= MinIterations && s.stable >= MinStableChecks {
		s.done = true
		if onComplete != nil {
			onComplete(s.end.Clone())
		}
		return
	}
	if onNext != nil {
		onNext(s.render(s.accumulated / msPerFrame))
	}
}

func (s *Spring) step() {
	atRest := true
	for i := range s.channels {
		c := &s.channels[i]
		c.position, c.velocity = s.integrate(c.position, c.velocity, c.end)
		if math.Abs(c.velocity) >= RestVelocity {
			atRest = false
		}
	}
	s.iterations++
	if atRest {
		s.stable++
	} else {
		s.stable = 0
	}
}

func (s *Spring) integrate(position, velocity, end float64) (float64, float64) {
	acceleration := -s.stiffness*(position-end) - s.damping*velocity
	velocity += acceleration * secondsPerFrame
	position += velocity * secondsPerFrame
	return position, velocity
}

// render interpolates each channel fraction of the way toward its next
// step and rebuilds the style values.
func (s *Spring) render(fraction float64) style.Map {
	out := make(style.Map, len(s.props))
	values := make([]float64, len(s.channels))
	for i, c := range s.channels {
		next, _ := s.integrate(c.position, c.velocity, c.end)
		values[i] = c.position + (next-c.position)*fraction
	}
	for _, prop := range s.props {
		if !prop.animating {
			out[prop.name] = style.Stringify(prop.to)
			continue
		}
		v := style.Rebuild(prop.template, values[prop.first:prop.first+prop.count])
		out[prop.name] = style.Stringify(v)
	}
	return out
}

// settleLimit bounds EstimateSettle.
const settleLimit = 10 * time.Minute

// EstimateSettle predicts how long s takes to come to rest when started
// now, using harmonica's closed-form damped oscillator with the same
// stiffness, damping and step, and the same rest rule as RunNextFrame. The
// widest channel decides. It reports false for a spring that would not
// settle within ten minutes.
func (s *Spring) EstimateSettle() (time.Duration, bool) {
	if s.stiffness <= 0 {
		return 0, false
	}
	distance := 0.0
	for _, c := range s.channels {
		distance = max(distance, math.Abs(c.end-c.position))
	}
	omega := math.Sqrt(s.stiffness)
	osc := harmonica.NewSpring(secondsPerFrame, omega, s.damping/(2*omega))

	var position, velocity float64
	stable := 0
	frame := time.Duration(msPerFrame * float64(time.Millisecond))
	for n := 1; time.Duration(n)*frame <= settleLimit; n++ {
		position, velocity = osc.Update(position, velocity, distance)
		if math.Abs(velocity) < RestVelocity {
			stable++
		} else {
			stable = 0
		}
		if n >= MinIterations && stable >= MinStableChecks {
			return time.Duration(n) * frame, true
		}
	}
	return 0, false
}
