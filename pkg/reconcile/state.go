package reconcile

import "fmt"

// State is the lifecycle position of a Matcher.
type State int

const (
	// Idle is the initial state, and the state after an aborted preview.
	Idle State = iota
	// Previewing means a preview was computed and awaits confirmation.
	Previewing
	// Running means the full comparison task is active.
	Running
	// Completed means the last run delivered a full result list.
	Completed
	// Cancelled means the last run was stopped by the user.
	Cancelled
	// Failed means the last run aborted with an error.
	Failed
)

// String returns a lowercase name for the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Previewing:
		return "previewing"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether the state ends a run.
func (s State) Terminal() bool {
	return s == Completed || s == Cancelled || s == Failed
}
