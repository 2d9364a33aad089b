package orchestrator

import (
	"time"

	"github.com/google/uuid"

	"github.com/go-drift/animatronic/pkg/animation"
	animerrors "github.com/go-drift/animatronic/pkg/errors"
	"github.com/go-drift/animatronic/pkg/machines"
	"github.com/go-drift/animatronic/pkg/sequence"
	"github.com/go-drift/animatronic/pkg/solver"
	"github.com/go-drift/animatronic/pkg/style"
)

type stopper interface {
	Stop()
}

// run is one Play or Rewind. Every callback it schedules checks stopped
// before touching the registry, so a stale frame or timer of a cancelled
// run has no effect.
type run struct {
	o    *Orchestrator
	id   string
	name string
	seq  sequence.Sequence

	phases     *machines.Countdown
	onComplete func()

	active map[stopper]struct{}
	timers map[animation.TimerID]struct{}

	stopped  bool
	finished bool
}

func newRun(o *Orchestrator, name string, seq sequence.Sequence, onComplete func()) *run {
	r := &run{
		o:          o,
		id:         uuid.NewString(),
		name:       name,
		seq:        seq,
		phases:     machines.NewCountdown(len(seq)),
		onComplete: onComplete,
		active:     make(map[stopper]struct{}),
		timers:     make(map[animation.TimerID]struct{}),
	}
	r.phases.SetLogger(o.logger)
	r.phases.RegisterJob(r.finish)
	return r
}

func (r *run) stop() {
	r.stopped = true
	for m := range r.active {
		m.Stop()
	}
	clear(r.active)
	for id := range r.timers {
		r.o.scheduler.CancelTimer(id)
	}
	clear(r.timers)
}

func (r *run) finish() {
	if r.stopped {
		return
	}
	r.finished = true
	r.o.logger.Debug("run complete", "run", r.id, "animation", r.name)
	r.o.setState(StateComplete)
	if r.onComplete != nil {
		r.onComplete()
	}
}

func (r *run) startPhase(i int) {
	if r.stopped || i >= len(r.seq) {
		return
	}
	phase := r.seq[i]
	r.o.phase = i
	r.o.setState(StateRunning)
	r.o.logger.Debug("phase started", "run", r.id, "animation", r.name, "phase", i, "animations", phase.Count())

	barrier := machines.NewCountdown(phase.Count())
	barrier.SetLogger(r.o.logger)
	done := func() {
		if r.stopped {
			return
		}
		r.o.logger.Debug("phase complete", "run", r.id, "phase", i)
		r.phases.Countdown()
		r.startPhase(i + 1)
	}
	if phase.Count() == 0 {
		done()
		return
	}
	barrier.RegisterJob(done)
	for _, name := range phase.Components() {
		r.startTrack(name, phase[name], 0, barrier)
	}
}

// startTrack runs track[j] and, once it completes, track[j+1].
func (r *run) startTrack(component string, track sequence.Track, j int, barrier *machines.Countdown) {
	if r.stopped || j >= len(track) {
		return
	}
	decl := track[j]
	next := func() {
		if r.stopped {
			return
		}
		barrier.Countdown()
		r.startTrack(component, track, j+1, barrier)
	}
	if decl.Delay <= 0 {
		r.startDeclaration(component, decl, next)
		return
	}
	var id animation.TimerID
	id = r.o.scheduler.AfterFunc(decl.Delay, func() {
		delete(r.timers, id)
		if r.stopped {
			return
		}
		r.startDeclaration(component, decl, next)
	})
	r.timers[id] = struct{}{}
}

func (r *run) startDeclaration(component string, decl sequence.Declaration, done func()) {
	switch decl.Mode() {
	case sequence.ModeSpring:
		r.startSpring(component, decl, done)
	default:
		r.startTimed(component, decl, done)
	}
}

func (r *run) startTimed(component string, decl sequence.Declaration, done func()) {
	tween, err := solver.NewTween(decl.From, decl.To)
	if err != nil {
		r.fail(component, err, done)
		return
	}
	curve := decl.Easing
	if curve == nil {
		curve = r.o.easing
	}
	var duration time.Duration
	if decl.Duration != nil {
		duration = *decl.Duration
	}

	m := machines.NewTimed(duration, r.o.scheduler)
	m.RegisterJob(func(elapsed time.Duration) {
		r.apply(component, tween.Frame(elapsed, duration, curve))
	})
	m.RegisterCompleteJob(func() {
		delete(r.active, m)
		done()
	})
	r.active[m] = struct{}{}
	m.Start()
}

func (r *run) startSpring(component string, decl sequence.Declaration, done func()) {
	spring, err := solver.NewSpring(decl.From, decl.To, *decl.Stiffness, *decl.Damping)
	if err != nil {
		r.fail(component, err, done)
		return
	}

	m := machines.NewEndless(r.o.scheduler)
	var last time.Duration
	m.RegisterJob(func(elapsed time.Duration) {
		delta := elapsed - last
		last = elapsed
		spring.RunNextFrame(delta,
			func(styles style.Map) { r.apply(component, styles) },
			func(styles style.Map) {
				r.apply(component, styles)
				m.Stop()
				delete(r.active, m)
				done()
			})
	})
	r.active[m] = struct{}{}
	m.Start()
}

// fail reports a declaration that could not start and counts it as done so
// the phase is not blocked. Validation makes this unreachable in practice.
func (r *run) fail(component string, err error, done func()) {
	ae := animerrors.Wrap("orchestrator.run", animerrors.KindParse, err)
	ae.Animation = r.name
	ae.Phase = r.o.phase
	ae.Component = component
	animerrors.Report(ae)
	done()
}

// apply pushes styles to component. Components that have unregistered are
// skipped; a panicking update callback is reported and the run continues.
func (r *run) apply(component string, styles style.Map) {
	if r.stopped || len(styles) == 0 {
		return
	}
	defer animerrors.RecoverWithCallback("orchestrator.apply", func(any) {
		r.o.logger.Warn("update callback panicked", "run", r.id, "animation", r.name, "component", component)
	})
	if !r.o.registry.Apply(component, styles) {
		r.o.logger.Debug("component not registered, skipping", "run", r.id, "component", component)
	}
}
