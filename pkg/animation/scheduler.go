package animation

import "time"

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

// TimerID identifies a pending timer. Zero is never issued.
type TimerID uint64

// FrameCallback receives the timestamp of the frame being drawn.
type FrameCallback func(now time.Time)

// Scheduler is the frame-request/cancel pair every scheduling primitive is
// built on, plus one-shot timers for delayed starts. Implementations invoke
// all callbacks on a single goroutine.
type Scheduler interface {
	Clock
	// RequestFrame schedules cb for the next frame.
	RequestFrame(cb FrameCallback) FrameID
	// CancelFrame drops a pending frame request. Unknown ids are ignored.
	CancelFrame(id FrameID)
	// AfterFunc schedules fn to run once d has elapsed.
	AfterFunc(d time.Duration, fn func()) TimerID
	// CancelTimer drops a pending timer. Unknown ids are ignored.
	CancelTimer(id TimerID)
}

// DefaultFPS is the nominal display refresh rate.
const DefaultFPS = 60

// FrameInterval returns the duration of one frame at fps frames per second.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}
