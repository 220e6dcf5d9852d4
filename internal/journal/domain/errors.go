package domain

import "fmt"

// RunNotFoundError is returned when a run lookup matches nothing.
type RunNotFoundError struct {
	GUID string
}

func (e *RunNotFoundError) Error() string {
	if e.GUID == "" {
		return "run not found"
	}
	return fmt.Sprintf("run not found: %s", e.GUID)
}

// InvalidTransitionError is returned for lifecycle moves a run cannot make.
type InvalidTransitionError struct {
	From RunState
	To   RunState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid run transition %s -> %s", e.From, e.To)
}
