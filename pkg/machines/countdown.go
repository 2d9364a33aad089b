package machines

import "github.com/charmbracelet/log"

// Countdown is an N-of-N completion barrier. Registered jobs run once, in
// registration order, when Countdown has been called exactly N times.
type Countdown struct {
	expected  int
	remaining int
	jobs      []func()
	fired     bool
	logger    *log.Logger
}

// NewCountdown creates a barrier expecting n completions.
func NewCountdown(n int) *Countdown {
	return &Countdown{expected: n, remaining: n}
}

// SetLogger sets the logger that receives double-completion warnings.
func (c *Countdown) SetLogger(l *log.Logger) {
	c.logger = l
}

// RegisterJob adds fn to the jobs run when the barrier reaches zero.
func (c *Countdown) RegisterJob(fn func()) {
	c.jobs = append(c.jobs, fn)
}

// Countdown reports one completion. Calls after the barrier fired are
// ignored; they would indicate a double completion.
func (c *Countdown) Countdown() {
	if c.fired || c.remaining <= 0 {
		if c.logger != nil {
			c.logger.Warn("countdown called after reaching zero", "expected", c.expected)
		}
		return
	}
	c.remaining--
	if c.remaining > 0 {
		return
	}
	c.fired = true
	jobs := c.jobs
	c.jobs = nil
	for _, job := range jobs {
		job()
	}
}

// Remaining returns the number of completions still expected.
func (c *Countdown) Remaining() int {
	return c.remaining
}

// Fired reports whether the jobs have run.
func (c *Countdown) Fired() bool {
	return c.fired
}
