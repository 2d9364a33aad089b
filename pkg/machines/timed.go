package machines

import (
	"time"

	"github.com/go-drift/animatronic/pkg/animation"
)

// Timed runs registered jobs every frame until duration has elapsed, then
// runs its completion jobs once and stops.
type Timed struct {
	duration  time.Duration
	scheduler animation.Scheduler

	jobs         []func(elapsed time.Duration)
	completeJobs []func()

	running bool
	start   time.Time
	frame   animation.FrameID
}

// NewTimed creates a machine that runs for duration on scheduler.
func NewTimed(duration time.Duration, scheduler animation.Scheduler) *Timed {
	return &Timed{duration: duration, scheduler: scheduler}
}

// RegisterJob adds a per-frame job. It receives the time since Start.
func (m *Timed) RegisterJob(fn func(elapsed time.Duration)) {
	m.jobs = append(m.jobs, fn)
}

// RegisterCompleteJob adds a job run once when the duration has elapsed.
func (m *Timed) RegisterCompleteJob(fn func()) {
	m.completeJobs = append(m.completeJobs, fn)
}

// Duration returns the configured duration.
func (m *Timed) Duration() time.Duration {
	return m.duration
}

// Running reports whether the machine is between Start and completion/Stop.
func (m *Timed) Running() bool {
	return m.running
}

// Start records the start time and requests the first frame.
func (m *Timed) Start() {
	if m.running {
		return
	}
	m.running = true
	m.start = m.scheduler.Now()
	m.frame = m.scheduler.RequestFrame(m.tick)
}

func (m *Timed) tick(now time.Time) {
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
	if elapsed >= m.duration {
		complete := m.completeJobs
		m.Stop()
		for _, job := range complete {
			job()
		}
		return
	}
	m.frame = m.scheduler.RequestFrame(m.tick)
}

// Stop cancels the pending frame and clears all jobs. It is idempotent.
func (m *Timed) Stop() {
	if m.frame != 0 {
		m.scheduler.CancelFrame(m.frame)
		m.frame = 0
	}
	m.running = false
	m.jobs = nil
	m.completeJobs = nil
}
