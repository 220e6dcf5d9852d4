package console

import (
	"fmt"

	"github.com/zjrosen/opdeck/internal/session"
)

// SignalKind identifies an outward console signal.
type SignalKind int

const (
	// SignalUnitConnectivity carries a unit's startup connectivity.
	SignalUnitConnectivity SignalKind = iota
	// SignalControlAvailability tells the view whether the control toggle
	// should be offered (the input device was open at startup).
	SignalControlAvailability
	// SignalPanelOpened is sent after UnitActivated.
	SignalPanelOpened
	// SignalPanelClosed is sent after PanelClosed.
	SignalPanelClosed
	// SignalControlSource is sent after ControlSourceToggled.
	SignalControlSource
	// SignalSession is sent when a play/stop press changed state.
	SignalSession
)

func (k SignalKind) String() string {
	switch k {
	case SignalUnitConnectivity:
		return "unit_connectivity"
	case SignalControlAvailability:
		return "control_availability"
	case SignalPanelOpened:
		return "panel_opened"
	case SignalPanelClosed:
		return "panel_closed"
	case SignalControlSource:
		return "control_source"
	case SignalSession:
		return "session"
	default:
		return fmt.Sprintf("signal(%d)", int(k))
	}
}

// Signal is one notification for the presentation layer. Only the fields
// relevant to Kind are set.
type Signal struct {
	Kind SignalKind

	// Unit is the unit name for connectivity and panel signals.
	Unit      string
	Connected bool

	// PanelID and Fresh describe SignalPanelOpened.
	PanelID string
	Fresh   bool

	// Enabled is the toggle state for control signals; Source names the
	// bound producer ("" when none).
	Enabled bool
	Source  string

	Transition  session.Transition
	Affordances session.Affordances
}
