package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// handlerBox wraps the handler so atomic.Pointer can hold an interface.
type handlerBox struct {
	h ErrorHandler
}

var current atomic.Pointer[handlerBox]

func init() {
	current.Store(&handlerBox{h: NewLogHandler(nil)})
}

// SetHandler replaces the process-wide error handler. Pass nil to restore
// the default LogHandler. Frame loops on other goroutines pick up the new
// handler on their next report.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = NewLogHandler(nil)
	}
	current.Store(&handlerBox{h: h})
}

// Handler returns the process-wide error handler.
func Handler() ErrorHandler {
	return current.Load().h
}

// Report sends err to the handler, stamping it with the current time if
// it has none.
func Report(err *AnimationError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportPanic sends a recovered panic to the handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

// Recover reports a panic in the calling function and swallows it.
// Usage: defer errors.Recover("orchestrator.apply")
func Recover(op string) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
	}
}

// RecoverWithCallback is like Recover but hands the panic value to
// callback after reporting it.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
		if callback != nil {
			callback(r)
		}
	}
}

func reportRecovered(op string, r any) {
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

// CaptureStack returns the stack of its caller's caller, one
// "function\n\tfile:line" entry per frame.
func CaptureStack() string {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}
