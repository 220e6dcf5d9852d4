// Package session implements the run/pause/stop lifecycle of an operating
// session. Play toggles between running and paused once started; stop
// returns to idle from anywhere but idle.
package session

import (
	"sync"

	"github.com/zjrosen/opdeck/internal/log"
)

// State is the session lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// Icon is the glyph the play button shows.
type Icon int

const (
	IconPlay Icon = iota
	IconPause
)

func (i Icon) String() string {
	if i == IconPause {
		return "pause"
	}
	return "play"
}

// Affordances are the externally visible controls tied to a state.
type Affordances struct {
	PlayIcon    Icon
	StopVisible bool
}

// AffordancesFor derives the controls shown in state s.
func AffordancesFor(s State) Affordances {
	switch s {
	case Running:
		return Affordances{PlayIcon: IconPause, StopVisible: true}
	case Paused:
		return Affordances{PlayIcon: IconPlay, StopVisible: true}
	default:
		return Affordances{PlayIcon: IconPlay, StopVisible: false}
	}
}

// Transition describes the effect of one button press.
type Transition struct {
	From    State
	To      State
	Changed bool
}

// Machine holds the session state. The zero value is not usable; use
// NewMachine.
type Machine struct {
	mu    sync.Mutex
	state State
}

// NewMachine creates a machine in Idle.
func NewMachine() *Machine {
	return &Machine{state: Idle}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Affordances returns the controls for the current state.
func (m *Machine) Affordances() Affordances {
	return AffordancesFor(m.State())
}

// PressPlay starts an idle session, pauses a running one and resumes a
// paused one.
func (m *Machine) PressPlay() Transition {
	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.state
	switch from {
	case Idle, Paused:
		m.state = Running
	case Running:
		m.state = Paused
	}
	return m.record(from)
}

// PressStop returns a running or paused session to Idle. It does nothing
// when already idle.
func (m *Machine) PressStop() Transition {
	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.state
	if from != Idle {
		m.state = Idle
	}
	return m.record(from)
}

func (m *Machine) record(from State) Transition {
	t := Transition{From: from, To: m.state, Changed: from != m.state}
	if t.Changed {
		log.Info(log.CatSession, "Session transition", "from", t.From, "to", t.To)
	}
	return t
}
