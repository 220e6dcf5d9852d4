// Package registry tracks the console's hardware units and guarantees at
// most one live monitor panel per unit. Panels are found by unit name, never
// by scanning the presentation layer.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/zjrosen/opdeck/internal/log"
)

var (
	// ErrDuplicateUnit is returned when a unit name is registered twice.
	ErrDuplicateUnit = errors.New("duplicate unit")
	// ErrUnknownUnit is returned for operations on a name never registered.
	ErrUnknownUnit = errors.New("unknown unit")
)

// Variant is the closed set of panel kinds.
type Variant int

const (
	VariantGeneric Variant = iota
	VariantJoystick
)

func (v Variant) String() string {
	switch v {
	case VariantJoystick:
		return "joystick"
	default:
		return "generic"
	}
}

// Panel is a presentation-layer monitor view bound to one unit.
// Destroyed reports whether the presentation layer tore the panel down
// without telling the registry.
type Panel interface {
	ID() string
	Title() string
	Variant() Variant
	Destroyed() bool
}

// PanelFactory builds a panel for the named unit.
type PanelFactory func(name string) Panel

// UnitInfo is a read-only snapshot of one registered unit.
type UnitInfo struct {
	Name      string
	Connected bool
	PanelOpen bool
}

type unit struct {
	name      string
	connected bool
	factory   PanelFactory
	panel     Panel
}

// Registry owns the name→unit map. All methods are safe for concurrent use,
// which serializes panel-destruction callbacks against operator actions.
type Registry struct {
	mu          sync.Mutex
	units       map[string]*unit
	order       []string
	generic     PanelFactory
	specialized map[string]PanelFactory
}

// Option configures a Registry.
type Option func(*Registry)

// WithPanelFactory routes panels for exactly the unit called name to f.
func WithPanelFactory(name string, f PanelFactory) Option {
	return func(r *Registry) {
		r.specialized[name] = f
	}
}

// New creates a registry whose units get generic panels unless a
// specialized factory was registered for their name.
func New(generic PanelFactory, opts ...Option) *Registry {
	r := &Registry{
		units:       make(map[string]*unit),
		generic:     generic,
		specialized: make(map[string]PanelFactory),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a unit with its connectivity snapshot. The panel factory is
// chosen here, by name.
func (r *Registry) Register(name string, connected bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.units[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateUnit, name)
	}
	factory := r.generic
	if f, ok := r.specialized[name]; ok {
		factory = f
	}
	r.units[name] = &unit{name: name, connected: connected, factory: factory}
	r.order = append(r.order, name)
	log.Info(log.CatRegistry, "Registered unit", "name", name, "connected", connected)
	return nil
}

// OpenPanel returns the unit's live panel, or builds a new one when none is
// open or the previous one was destroyed behind the registry's back.
// opened is true when a new panel was constructed.
func (r *Registry) OpenPanel(name string) (p Panel, opened bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.units[name]
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	if u.panel != nil && !u.panel.Destroyed() {
		return u.panel, false, nil
	}
	if u.panel != nil {
		log.Debug(log.CatRegistry, "Discarding stale panel", "name", name, "panel", u.panel.ID())
	}
	u.panel = u.factory(name)
	log.Info(log.CatRegistry, "Opened panel", "name", name, "panel", u.panel.ID(), "variant", u.panel.Variant())
	return u.panel, true, nil
}

// PanelClosed clears the unit's panel reference. Calling it for a unit with
// no open panel is a no-op.
func (r *Registry) PanelClosed(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.units[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	if u.panel != nil {
		log.Debug(log.CatRegistry, "Panel closed", "name", name, "panel", u.panel.ID())
		u.panel = nil
	}
	return nil
}

// Connectivity returns the connectivity captured at registration.
func (r *Registry) Connectivity(name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.units[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	return u.connected, nil
}

// Units returns every unit in registration order.
func (r *Registry) Units() []UnitInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]UnitInfo, 0, len(r.order))
	for _, name := range r.order {
		u := r.units[name]
		out = append(out, UnitInfo{
			Name:      u.name,
			Connected: u.connected,
			PanelOpen: u.panel != nil && !u.panel.Destroyed(),
		})
	}
	return out
}

// OpenPanels returns live panels in unit registration order.
func (r *Registry) OpenPanels() []Panel {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Panel
	for _, name := range r.order {
		if p := r.units[name].panel; p != nil && !p.Destroyed() {
			out = append(out, p)
		}
	}
	return out
}
