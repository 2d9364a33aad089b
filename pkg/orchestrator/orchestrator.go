package orchestrator

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/go-drift/animatronic/pkg/animation"
	animerrors "github.com/go-drift/animatronic/pkg/errors"
	"github.com/go-drift/animatronic/pkg/registry"
	"github.com/go-drift/animatronic/pkg/sequence"
)

// Options configures an Orchestrator.
type Options struct {
	// Scheduler drives every machine. Nil creates an animation.FrameLoop on
	// the system clock, which the caller must then pump via Scheduler().
	Scheduler animation.Scheduler
	// Logger receives run and phase events. Nil logs warnings and errors to
	// stderr.
	Logger *log.Logger
	// Lenient skips the unknown-component check. Declarations for
	// components that are not registered then run without mutating anything.
	Lenient bool
	// DefaultEasing replaces animation.StandardCurve for time based
	// declarations without an easing.
	DefaultEasing animation.Curve
}

// Orchestrator plays sequences from a generator against its own registry.
type Orchestrator struct {
	scheduler animation.Scheduler
	logger    *log.Logger
	lenient   bool
	easing    animation.Curve

	registry  *registry.Registry
	generator sequence.Generator

	run   *run
	state State
	phase int

	listeners      map[int]func(State)
	nextListenerID int
}

// New creates an orchestrator playing sequences from gen. gen may be nil
// until SetSequenceGenerator is called.
func New(gen sequence.Generator, opts Options) *Orchestrator {
	sched := opts.Scheduler
	if sched == nil {
		sched = animation.NewFrameLoop(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel, Prefix: "animatronic"})
	}
	easing := opts.DefaultEasing
	if easing == nil {
		easing = animation.StandardCurve
	}
	return &Orchestrator{
		scheduler: sched,
		logger:    logger,
		lenient:   opts.Lenient,
		easing:    easing,
		registry:  registry.New(),
		generator: gen,
		phase:     -1,
		listeners: make(map[int]func(State)),
	}
}

// Registry returns the component registry owned by o.
func (o *Orchestrator) Registry() *registry.Registry {
	return o.registry
}

// Scheduler returns the scheduler driving o.
func (o *Orchestrator) Scheduler() animation.Scheduler {
	return o.scheduler
}

// SetSequenceGenerator replaces the sequence source. Registrations and any
// run in progress are kept; the new generator is used from the next Play.
func (o *Orchestrator) SetSequenceGenerator(gen sequence.Generator) {
	o.generator = gen
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	return o.state
}

// Phase returns the index of the running phase, or -1 when no run is in
// progress.
func (o *Orchestrator) Phase() int {
	if o.state != StateRunning {
		return -1
	}
	return o.phase
}

// RunID returns the identifier of the current or last run, or "" if
// nothing has been played.
func (o *Orchestrator) RunID() string {
	if o.run == nil {
		return ""
	}
	return o.run.id
}

// AddStateListener adds a callback that fires whenever the state changes.
// Returns an unsubscribe function.
func (o *Orchestrator) AddStateListener(fn func(State)) func() {
	id := o.nextListenerID
	o.nextListenerID++
	o.listeners[id] = fn
	return func() {
		delete(o.listeners, id)
	}
}

func (o *Orchestrator) setState(s State) {
	if o.state == s {
		return
	}
	o.state = s
	for _, listener := range o.listeners {
		listener(s)
	}
}

// Play resolves the sequence for name (sequence.DefaultName when empty),
// validates it and starts its first phase. A run already in progress is
// stopped first. Validation errors are returned before any style is
// mutated; onComplete runs once after the last phase completes.
func (o *Orchestrator) Play(name string, onComplete func()) error {
	return o.start("orchestrator.Play", name, false, onComplete)
}

// Rewind is like Play but runs the sequence reversed: phases in reverse
// order with from and to swapped. See sequence.Reverse.
func (o *Orchestrator) Rewind(name string, onComplete func()) error {
	return o.start("orchestrator.Rewind", name, true, onComplete)
}

func (o *Orchestrator) start(op, name string, reverse bool, onComplete func()) error {
	if name == "" {
		name = sequence.DefaultName
	}
	o.Stop()
	o.setState(StateResolving)

	seq, err := o.resolve(op, name)
	if err != nil {
		o.setState(StateIdle)
		o.logger.Debug("play rejected", "animation", name, "err", err)
		return err
	}
	if reverse {
		seq = sequence.Reverse(seq)
	}

	r := newRun(o, name, seq, onComplete)
	o.run = r
	o.logger.Debug("run started", "run", r.id, "animation", name, "phases", len(seq), "reverse", reverse)
	r.startPhase(0)
	return nil
}

func (o *Orchestrator) resolve(op, name string) (sequence.Sequence, error) {
	if o.generator == nil {
		err := animerrors.New(op, animerrors.KindUnknownAnimation, "no sequence generator set")
		err.Animation = name
		return nil, err
	}
	seq, err := o.generator.Resolve(name, o.registry.Nodes())
	if err != nil {
		ae := animerrors.Wrap(op, animerrors.KindUnknown, err)
		ae.Animation = name
		return nil, ae
	}
	known := o.registry.Has
	if o.lenient {
		known = nil
	}
	if err := seq.Validate(known); err != nil {
		ae := animerrors.Wrap(op, animerrors.KindUnknown, err)
		ae.Animation = name
		return nil, ae
	}
	return seq, nil
}

// Stop cancels the run in progress: every live machine and pending delay
// timer is cancelled and no further style mutation from it occurs. It is
// safe to call at any time, repeatedly, and from inside callbacks.
func (o *Orchestrator) Stop() {
	r := o.run
	if r == nil || r.finished || r.stopped {
		return
	}
	r.stop()
	o.logger.Debug("run stopped", "run", r.id, "animation", r.name, "phase", o.phase)
	o.setState(StateStopped)
}

// Reset stops any run and calls every registered component's reset
// callback.
func (o *Orchestrator) Reset() {
	o.Stop()
	o.registry.ResetAll()
	o.phase = -1
	o.setState(StateIdle)
}
