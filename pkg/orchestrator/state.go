package orchestrator

import "fmt"

// State is the lifecycle state of an Orchestrator.
//
//	        Play                     last phase done
//	Idle ────────► Resolving ─► Running ─────────────► Complete
//	                              │
//	                              │ Stop
//	                              ▼
//	                           Stopped
//
// Reset returns to Idle from any state.
type State int

const (
	// StateIdle means nothing has been played since creation or Reset.
	StateIdle State = iota
	// StateResolving means a sequence is being resolved and validated.
	StateResolving
	// StateRunning means a phase is in progress.
	StateRunning
	// StateComplete means the last run finished every phase.
	StateComplete
	// StateStopped means the last run was cancelled by Stop.
	StateStopped
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
