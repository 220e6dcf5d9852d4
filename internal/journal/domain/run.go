// Package domain provides the pure domain layer of the session journal:
// the Run entity, its lifecycle and the repository interface. It has no
// infrastructure dependencies.
package domain

import "time"

// RunState is the recorded state of an operating run.
type RunState string

const (
	RunStateRunning RunState = "running"
	RunStatePaused  RunState = "paused"
	RunStateStopped RunState = "stopped"
)

// String returns the string representation of the run state.
func (s RunState) String() string {
	return string(s)
}

// IsValid returns true if the state is a recognized run state.
func (s RunState) IsValid() bool {
	switch s {
	case RunStateRunning, RunStatePaused, RunStateStopped:
		return true
	default:
		return false
	}
}

// Run is one operating period from play to stop.
// Fields are unexported; use the constructor and getters.
type Run struct {
	id            int64
	guid          string
	console       string
	state         RunState
	controlSource string
	pauses        int

	startedAt time.Time
	pausedAt  *time.Time
	stoppedAt *time.Time
	updatedAt time.Time
}

// NewRun starts a run at the given time. The ID stays zero until the run is
// persisted.
func NewRun(guid, console string, at time.Time) *Run {
	return &Run{
		guid:      guid,
		console:   console,
		state:     RunStateRunning,
		startedAt: at,
		updatedAt: at,
	}
}

// ReconstituteRun rebuilds a Run from stored data.
func ReconstituteRun(
	id int64,
	guid, console string,
	state RunState,
	controlSource string,
	pauses int,
	startedAt time.Time,
	pausedAt, stoppedAt *time.Time,
	updatedAt time.Time,
) *Run {
	return &Run{
		id:            id,
		guid:          guid,
		console:       console,
		state:         state,
		controlSource: controlSource,
		pauses:        pauses,
		startedAt:     startedAt,
		pausedAt:      pausedAt,
		stoppedAt:     stoppedAt,
		updatedAt:     updatedAt,
	}
}

// ID returns the database identifier, 0 until persisted.
func (r *Run) ID() int64             { return r.id }
func (r *Run) GUID() string          { return r.guid }
func (r *Run) Console() string       { return r.console }
func (r *Run) State() RunState       { return r.state }
func (r *Run) ControlSource() string { return r.controlSource }
func (r *Run) Pauses() int           { return r.pauses }
func (r *Run) StartedAt() time.Time  { return r.startedAt }
func (r *Run) PausedAt() *time.Time  { return r.pausedAt }
func (r *Run) StoppedAt() *time.Time { return r.stoppedAt }
func (r *Run) UpdatedAt() time.Time  { return r.updatedAt }

// IsActive reports whether the run has not been stopped.
func (r *Run) IsActive() bool { return r.state != RunStateStopped }

// SetID is called by the persistence layer after insert.
func (r *Run) SetID(id int64) { r.id = id }

// Duration is the wall time from start to stop, or to now for active runs.
func (r *Run) Duration(now time.Time) time.Duration {
	if r.stoppedAt != nil {
		return r.stoppedAt.Sub(r.startedAt)
	}
	return now.Sub(r.startedAt)
}

// MarkPaused records a pause. Only a running run can pause.
func (r *Run) MarkPaused(at time.Time) error {
	if r.state != RunStateRunning {
		return &InvalidTransitionError{From: r.state, To: RunStatePaused}
	}
	r.state = RunStatePaused
	r.pauses++
	r.pausedAt = &at
	r.updatedAt = at
	return nil
}

// MarkResumed returns a paused run to running.
func (r *Run) MarkResumed(at time.Time) error {
	if r.state != RunStatePaused {
		return &InvalidTransitionError{From: r.state, To: RunStateRunning}
	}
	r.state = RunStateRunning
	r.pausedAt = nil
	r.updatedAt = at
	return nil
}

// MarkStopped ends the run.
func (r *Run) MarkStopped(at time.Time) error {
	if r.state == RunStateStopped {
		return &InvalidTransitionError{From: r.state, To: RunStateStopped}
	}
	r.state = RunStateStopped
	r.pausedAt = nil
	r.stoppedAt = &at
	r.updatedAt = at
	return nil
}

// SetControlSource records which producer drives the actuator ("" for none).
func (r *Run) SetControlSource(name string, at time.Time) {
	r.controlSource = name
	r.updatedAt = at
}
