package errors

import (
	"os"

	"github.com/charmbracelet/log"
)

// defaultLogger backs every LogHandler created without a Logger.
var defaultLogger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "animatronic"})

// LogHandler is an ErrorHandler that writes through a charmbracelet logger.
type LogHandler struct {
	// Logger receives the records. Nil means a shared stderr logger.
	Logger *log.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// NewLogHandler returns a LogHandler writing to logger, or to stderr when
// logger is nil.
func NewLogHandler(logger *log.Logger) *LogHandler {
	if logger == nil {
		logger = defaultLogger
	}
	return &LogHandler{Logger: logger}
}

func (h *LogHandler) logger() *log.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return defaultLogger
}

// HandleError logs an AnimationError.
func (h *LogHandler) HandleError(err *AnimationError) {
	if err == nil {
		return
	}
	kv := []any{"op", err.Op, "kind", err.Kind.String()}
	if err.Component != "" {
		kv = append(kv, "component", err.Component)
	}
	if err.Phase >= 0 {
		kv = append(kv, "phase", err.Phase)
	}
	kv = append(kv, "err", err.Err)
	h.logger().Error("animation error", kv...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	kv := []any{"value", err.Value}
	if err.Op != "" {
		kv = append(kv, "op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	h.logger().Error("recovered panic", kv...)
}
