package animation

import (
	"context"
	"sort"
	"sync"
	"time"

	animerrors "github.com/go-drift/animatronic/pkg/errors"
)

// FrameLoop is the default Scheduler. It queues frame requests and timers
// and runs them when the host calls Pump, once per display frame.
//
// Hosts with their own display-synchronized loop (a bubbletea tick, a game
// Update) call Pump from it. Hosts without one call Run, which pumps on a
// fixed-interval timer. Callbacks requested while a frame is being pumped
// run on the next Pump, matching requestAnimationFrame semantics.
//
// Requests may be issued from any goroutine; callbacks always run on the
// goroutine calling Pump. Use Post to move work onto that goroutine.
type FrameLoop struct {
	clock Clock

	mu     sync.Mutex
	nextID uint64
	frames map[FrameID]FrameCallback
	order  []FrameID
	timers map[TimerID]*timer
	posted []func()
}

type timer struct {
	id  TimerID
	due time.Time
	fn  func()
}

// NewFrameLoop creates a frame loop reading time from clock. A nil clock
// uses SystemClock.
func NewFrameLoop(clock Clock) *FrameLoop {
	if clock == nil {
		clock = SystemClock{}
	}
	return &FrameLoop{
		clock:  clock,
		frames: make(map[FrameID]FrameCallback),
		timers: make(map[TimerID]*timer),
	}
}

// Now returns the current time from the loop's clock.
func (l *FrameLoop) Now() time.Time {
	return l.clock.Now()
}

// RequestFrame schedules cb for the next Pump.
func (l *FrameLoop) RequestFrame(cb FrameCallback) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := FrameID(l.nextID)
	l.frames[id] = cb
	l.order = append(l.order, id)
	return id
}

// CancelFrame drops a pending frame request.
func (l *FrameLoop) CancelFrame(id FrameID) {
	l.mu.Lock()
	delete(l.frames, id)
	l.mu.Unlock()
}

// AfterFunc schedules fn to run on the first Pump at or after now+d.
func (l *FrameLoop) AfterFunc(d time.Duration, fn func()) TimerID {
	due := l.clock.Now().Add(d)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := TimerID(l.nextID)
	l.timers[id] = &timer{id: id, due: due, fn: fn}
	return id
}

// CancelTimer drops a pending timer.
func (l *FrameLoop) CancelTimer(id TimerID) {
	l.mu.Lock()
	delete(l.timers, id)
	l.mu.Unlock()
}

// Post queues fn to run at the start of the next Pump. It is the only
// supported way to call into the engine from another goroutine.
func (l *FrameLoop) Post(fn func()) {
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()
}

// Pending reports whether any frame, timer or posted function is waiting.
func (l *FrameLoop) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames) > 0 || len(l.timers) > 0 || len(l.posted) > 0
}

// Pump runs posted functions, then due timers, then the frame callbacks
// requested before this call.
func (l *FrameLoop) Pump() {
	l.mu.Lock()
	posted := l.posted
	l.posted = nil
	ids := l.order
	l.order = nil
	l.mu.Unlock()

	for _, fn := range posted {
		l.invoke(fn)
	}

	now := l.clock.Now()
	l.fireTimers(now)

	for _, id := range ids {
		l.mu.Lock()
		cb, ok := l.frames[id]
		delete(l.frames, id)
		l.mu.Unlock()
		if ok {
			l.invoke(func() { cb(now) })
		}
	}
}

func (l *FrameLoop) fireTimers(now time.Time) {
	l.mu.Lock()
	var due []*timer
	for _, t := range l.timers {
		if !t.due.After(now) {
			due = append(due, t)
		}
	}
	l.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].id < due[j].id
		}
		return due[i].due.Before(due[j].due)
	})

	for _, t := range due {
		l.mu.Lock()
		_, live := l.timers[t.id]
		delete(l.timers, t.id)
		l.mu.Unlock()
		if live {
			l.invoke(t.fn)
		}
	}
}

func (l *FrameLoop) invoke(fn func()) {
	defer animerrors.Recover("animation.FrameLoop.Pump")
	fn()
}

// Run pumps the loop at fps frames per second until ctx is cancelled. It is
// the fixed-interval fallback for hosts without a display-synchronized
// callback.
func (l *FrameLoop) Run(ctx context.Context, fps int) error {
	ticker := time.NewTicker(FrameInterval(fps))
	defer ticker.Stop()

	l.Pump()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Pump()
		}
	}
}
