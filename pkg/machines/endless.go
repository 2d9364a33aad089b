package machines

import (
	"time"

	"github.com/go-drift/animatronic/pkg/animation"
)

// Endless runs registered jobs every frame until stopped. Jobs decide for
// themselves when they are done; the spring solver reports completion to
// its owner, which then calls Stop.
type Endless struct {
	scheduler animation.Scheduler
	jobs      []func(elapsed time.Duration)

	running bool
	start   time.Time
	frame   animation.FrameID
}

// NewEndless creates a machine on scheduler.
func NewEndless(scheduler animation.Scheduler) *Endless {
	return &Endless{scheduler: scheduler}
}

// RegisterJob adds a per-frame job. It receives the time since Start.
func (m *Endless) RegisterJob(fn func(elapsed time.Duration)) {
	m.jobs = append(m.jobs, fn)
}

// Running reports whether the machine is between Start and Stop.
func (m *Endless) Running() bool {
	return m.running
}

// Start records the start time and requests the first frame.
func (m *Endless) Start() {
	if m.running {
		return
	}
	m.running = true
	m.start = m.scheduler.Now()
	m.frame = m.scheduler.RequestFrame(m.tick)
}

func (m *Endless) tick(now time.Time) {
	if !m.running {
		return
	}
	m.frame = 0
	elapsed := max(now.Sub(m.start), 0)
	for _, job := range m.jobs {
		job(elapsed)
		if !m.running {
			return
		}
	}
	m.frame = m.scheduler.RequestFrame(m.tick)
}

// Stop cancels the pending frame and clears all jobs. It is idempotent.
func (m *Endless) Stop() {
	if m.frame != 0 {
		m.scheduler.CancelFrame(m.frame)
		m.frame = 0
	}
	m.running = false
	m.jobs = nil
}
