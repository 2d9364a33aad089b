// Package errors provides structured error handling for animatronic.
//
// Declaration and sequence problems are programmer errors: they are returned
// synchronously from validation as *AnimationError values before any frame
// work starts. Every ErrorKind has a sentinel so callers can match with the
// standard library:
//
//	if errors.Is(err, animerrors.ErrUnknownComponent) { ... }
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindTimingConflict indicates both time and spring fields were declared.
	KindTimingConflict
	// KindTimingIncomplete indicates a partial or non-numeric timing mode.
	KindTimingIncomplete
	// KindTimingMissing indicates neither duration nor stiffness/damping were declared.
	KindTimingMissing
	// KindFromTo indicates a from/to pair where one side is missing or not a map.
	KindFromTo
	// KindDelay indicates a delay that is not a non-negative number.
	KindDelay
	// KindUnknownComponent indicates a phase referencing an unregistered component.
	KindUnknownComponent
	// KindMultiEntry indicates mismatched comma-separated entries (box-shadow).
	KindMultiEntry
	// KindEmptySequence indicates a sequence that resolved to zero phases.
	KindEmptySequence
	// KindUnknownAnimation indicates a name missing from a named sequence map.
	KindUnknownAnimation
	// KindParse indicates a style value or sequence file that could not be parsed.
	KindParse
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimingConflict:
		return "timing-conflict"
	case KindTimingIncomplete:
		return "timing-incomplete"
	case KindTimingMissing:
		return "timing-missing"
	case KindFromTo:
		return "from-to"
	case KindDelay:
		return "delay"
	case KindUnknownComponent:
		return "unknown-component"
	case KindMultiEntry:
		return "multi-entry"
	case KindEmptySequence:
		return "empty-sequence"
	case KindUnknownAnimation:
		return "unknown-animation"
	case KindParse:
		return "parse"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per kind.
var (
	ErrTimingConflict   = stderrors.New("both duration and stiffness/damping declared")
	ErrTimingIncomplete = stderrors.New("incomplete timing mode")
	ErrTimingMissing    = stderrors.New("no duration or stiffness/damping declared")
	ErrFromTo           = stderrors.New("from and to must be declared together as maps")
	ErrDelay            = stderrors.New("invalid delay")
	ErrUnknownComponent = stderrors.New("unknown component")
	ErrMultiEntry       = stderrors.New("mismatched multi-entry style")
	ErrEmptySequence    = stderrors.New("sequence has no phases")
	ErrUnknownAnimation = stderrors.New("unknown animation name")
	ErrParse            = stderrors.New("parse failure")
	ErrPanic            = stderrors.New("panic")
)

// Sentinel returns the sentinel error matching k, or nil for KindUnknown.
func (k ErrorKind) Sentinel() error {
	switch k {
	case KindTimingConflict:
		return ErrTimingConflict
	case KindTimingIncomplete:
		return ErrTimingIncomplete
	case KindTimingMissing:
		return ErrTimingMissing
	case KindFromTo:
		return ErrFromTo
	case KindDelay:
		return ErrDelay
	case KindUnknownComponent:
		return ErrUnknownComponent
	case KindMultiEntry:
		return ErrMultiEntry
	case KindEmptySequence:
		return ErrEmptySequence
	case KindUnknownAnimation:
		return ErrUnknownAnimation
	case KindParse:
		return ErrParse
	case KindPanic:
		return ErrPanic
	default:
		return nil
	}
}

// AnimationError represents a structured error raised while resolving,
// validating or running an animation.
type AnimationError struct {
	// Op is the operation that failed (e.g., "sequence.Declaration.Validate").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Animation is the animation name being played, if known.
	Animation string
	// Phase is the zero-based phase index, or -1 when not applicable.
	Phase int
	// Component is the component name, if applicable.
	Component string
	// Property is the style property, if applicable.
	Property string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error was reported.
	Timestamp time.Time
}

// New returns an AnimationError with a formatted underlying error.
func New(op string, kind ErrorKind, format string, args ...any) *AnimationError {
	return &AnimationError{
		Op:    op,
		Kind:  kind,
		Phase: -1,
		Err:   fmt.Errorf(format, args...),
	}
}

// Wrap returns an AnimationError around err. If err is already an
// AnimationError its kind and location are kept and missing context is
// filled in from op.
func Wrap(op string, kind ErrorKind, err error) *AnimationError {
	if err == nil {
		return nil
	}
	var ae *AnimationError
	if stderrors.As(err, &ae) {
		return ae
	}
	return &AnimationError{Op: op, Kind: kind, Phase: -1, Err: err}
}

func (e *AnimationError) Error() string {
	var loc []string
	if e.Animation != "" {
		loc = append(loc, "animation="+e.Animation)
	}
	if e.Phase >= 0 {
		loc = append(loc, fmt.Sprintf("phase=%d", e.Phase))
	}
	if e.Component != "" {
		loc = append(loc, "component="+e.Component)
	}
	if e.Property != "" {
		loc = append(loc, "property="+e.Property)
	}
	if len(loc) > 0 {
		return fmt.Sprintf("%s [%s] %s: %v", e.Op, e.Kind, strings.Join(loc, " "), e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *AnimationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *AnimationError) Is(target error) bool {
	s := e.Kind.Sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of the first AnimationError in err's chain.
func KindOf(err error) ErrorKind {
	var ae *AnimationError
	if stderrors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "animation.FrameLoop.Pump").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported at runtime, outside of a call that
// could return them.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *AnimationError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
