// Package console composes the registry, the control link and the session
// machine behind the operator actions the TUI sends. Every action mutates
// exactly one of them and then publishes a Signal.
package console

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/opdeck/internal/control"
	"github.com/zjrosen/opdeck/internal/hardware"
	"github.com/zjrosen/opdeck/internal/log"
	"github.com/zjrosen/opdeck/internal/pubsub"
	"github.com/zjrosen/opdeck/internal/registry"
	"github.com/zjrosen/opdeck/internal/session"
	"github.com/zjrosen/opdeck/internal/tracing"
)

// Actuator is the unit driven by control events.
type Actuator interface {
	hardware.Unit
	control.Consumer
}

// Hardware is the set of collaborators the console drives.
// InputProducer may be nil when no input driver exists; toggling control on
// then leaves the actuator without a source.
type Hardware struct {
	Actuator      Actuator
	InputDevice   hardware.Unit
	InputProducer control.Producer
}

// Journal receives session and control-source changes. Errors are logged,
// never surfaced to the operator.
type Journal interface {
	SessionChanged(t session.Transition) error
	ControlSourceChanged(name string) error
}

// Console is the orchestrator. Its methods are called from the UI loop but
// are safe for concurrent use.
type Console struct {
	hw       Hardware
	registry *registry.Registry
	link     *control.Link
	machine  *session.Machine
	signals  *pubsub.Broker[Signal]
	tracer   trace.Tracer
	journal  Journal

	mu             sync.Mutex
	controlEnabled bool
	started        bool
}

// Option configures a Console.
type Option func(*options)

type options struct {
	registryOpts []registry.Option
	tracer       trace.Tracer
	journal      Journal
}

// WithPanelFactory gives the unit called name its own panel variant.
func WithPanelFactory(name string, f registry.PanelFactory) Option {
	return func(o *options) {
		o.registryOpts = append(o.registryOpts, registry.WithPanelFactory(name, f))
	}
}

// WithTracer traces every action with t.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithJournal records session runs to j.
func WithJournal(j Journal) Option {
	return func(o *options) { o.journal = j }
}

// New creates a console. panels builds the generic monitor panel for any
// unit without a specialized factory.
func New(hw Hardware, panels registry.PanelFactory, opts ...Option) *Console {
	o := options{tracer: noop.NewTracerProvider().Tracer("console")}
	for _, opt := range opts {
		opt(&o)
	}
	return &Console{
		hw:       hw,
		registry: registry.New(panels, o.registryOpts...),
		link:     control.NewLink(hw.Actuator),
		machine:  session.NewMachine(),
		signals:  pubsub.NewBroker[Signal](),
		tracer:   o.tracer,
		journal:  o.journal,
	}
}

// Signals returns the outward signal stream.
func (c *Console) Signals() *pubsub.Broker[Signal] {
	return c.signals
}

// Startup registers the actuator and the input device with their current
// open state and announces connectivity. No producer is bound and the
// session is Idle afterwards. A duplicate unit name aborts startup.
func (c *Console) Startup(ctx context.Context) error {
	_, span := c.tracer.Start(ctx, tracing.SpanPrefixConsole+"startup")
	defer span.End()

	units := []hardware.Unit{c.hw.Actuator, c.hw.InputDevice}
	for _, u := range units {
		connected := u.IsOpen()
		if err := c.registry.Register(u.Name(), connected); err != nil {
			log.ErrorErr(log.CatConsole, "Startup failed", err, "unit", u.Name())
			tracing.RecordError(span, err)
			return err
		}
		span.AddEvent("unit.registered", trace.WithAttributes(
			attribute.String(tracing.AttrUnitName, u.Name()),
			attribute.Bool(tracing.AttrUnitConnected, connected),
		))
	}

	c.mu.Lock()
	c.started = true
	c.mu.Unlock()

	for _, info := range c.registry.Units() {
		c.publish(Signal{Kind: SignalUnitConnectivity, Unit: info.Name, Connected: info.Connected})
	}
	available := c.ControlAvailable()
	c.publish(Signal{Kind: SignalControlAvailability, Unit: c.hw.InputDevice.Name(), Enabled: available})
	log.Info(log.CatConsole, "Console started", "control_available", available)
	return nil
}

// UnitActivated opens (or returns the open) panel for the named unit.
func (c *Console) UnitActivated(ctx context.Context, name string) (registry.Panel, error) {
	_, span := c.tracer.Start(ctx, tracing.SpanPrefixConsole+"unit_activated",
		trace.WithAttributes(attribute.String(tracing.AttrUnitName, name)))
	defer span.End()

	panel, fresh, err := c.registry.OpenPanel(name)
	if err != nil {
		log.ErrorErr(log.CatConsole, "Cannot open panel", err, "unit", name)
		tracing.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String(tracing.AttrPanelID, panel.ID()),
		attribute.String(tracing.AttrPanelVariant, panel.Variant().String()),
		attribute.Bool(tracing.AttrPanelCreated, fresh),
	)
	c.publish(Signal{Kind: SignalPanelOpened, Unit: name, PanelID: panel.ID(), Fresh: fresh})
	return panel, nil
}

// PanelClosed tells the console the presentation layer closed the unit's
// panel. Repeated notifications are harmless.
func (c *Console) PanelClosed(ctx context.Context, name string) error {
	_, span := c.tracer.Start(ctx, tracing.SpanPrefixConsole+"panel_closed",
		trace.WithAttributes(attribute.String(tracing.AttrUnitName, name)))
	defer span.End()

	if err := c.registry.PanelClosed(name); err != nil {
		log.ErrorErr(log.CatConsole, "Cannot close panel", err, "unit", name)
		tracing.RecordError(span, err)
		return err
	}
	c.publish(Signal{Kind: SignalPanelClosed, Unit: name})
	return nil
}

// ControlSourceToggled binds the input producer to the actuator when
// enabled, or leaves it without a source. The input device's connectivity
// is not consulted: a disconnected device simply never produces events.
func (c *Console) ControlSourceToggled(ctx context.Context, enabled bool) {
	_, span := c.tracer.Start(ctx, tracing.SpanPrefixConsole+"control_source_toggled",
		trace.WithAttributes(attribute.Bool(tracing.AttrControlEnabled, enabled)))
	defer span.End()

	var (
		producer control.Producer
		source   string
	)
	if enabled && c.hw.InputProducer != nil {
		producer = c.hw.InputProducer
		source = producer.Name()
	}
	c.link.Bind(producer)
	span.SetAttributes(attribute.String(tracing.AttrControlSource, source))

	c.mu.Lock()
	c.controlEnabled = enabled
	c.mu.Unlock()

	if c.journal != nil {
		if err := c.journal.ControlSourceChanged(source); err != nil {
			log.ErrorErr(log.CatJournal, "Journal control source failed", err)
		}
	}
	c.publish(Signal{Kind: SignalControlSource, Enabled: enabled, Source: source})
}

// Play presses the play/pause button.
func (c *Console) Play(ctx context.Context) session.Transition {
	return c.press(ctx, "play", c.machine.PressPlay)
}

// Stop presses the stop button.
func (c *Console) Stop(ctx context.Context) session.Transition {
	return c.press(ctx, "stop", c.machine.PressStop)
}

func (c *Console) press(ctx context.Context, action string, press func() session.Transition) session.Transition {
	_, span := c.tracer.Start(ctx, tracing.SpanPrefixConsole+action)
	defer span.End()

	t := press()
	span.SetAttributes(
		attribute.String(tracing.AttrSessionFrom, t.From.String()),
		attribute.String(tracing.AttrSessionTo, t.To.String()),
		attribute.Bool(tracing.AttrSessionChanged, t.Changed),
	)
	if !t.Changed {
		return t
	}
	if c.journal != nil {
		if err := c.journal.SessionChanged(t); err != nil {
			log.ErrorErr(log.CatJournal, "Journal session change failed", err, "to", t.To)
			tracing.RecordError(span, err)
		}
	}
	c.publish(Signal{Kind: SignalSession, Transition: t, Affordances: session.AffordancesFor(t.To)})
	return t
}

// Units returns the registered units for the hardware list.
func (c *Console) Units() []registry.UnitInfo {
	return c.registry.Units()
}

// OpenPanels returns the live panels for the window menu.
func (c *Console) OpenPanels() []registry.Panel {
	return c.registry.OpenPanels()
}

// Session returns the current session state.
func (c *Console) Session() session.State {
	return c.machine.State()
}

// Affordances returns the play/stop controls for the current state.
func (c *Console) Affordances() session.Affordances {
	return c.machine.Affordances()
}

// ControlEnabled reports the last requested toggle state.
func (c *Console) ControlEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controlEnabled
}

// ControlAvailable reports whether the input device was open at startup.
func (c *Console) ControlAvailable() bool {
	c.mu.Lock()
	started := c.started
	c.mu.Unlock()
	if !started {
		return false
	}
	ok, err := c.registry.Connectivity(c.hw.InputDevice.Name())
	return err == nil && ok
}

// Shutdown detaches the control source and closes the signal stream.
func (c *Console) Shutdown() {
	c.link.Bind(nil)
	c.signals.Close()
	log.Debug(log.CatConsole, "Console shut down")
}

func (c *Console) publish(s Signal) {
	log.Debug(log.CatConsole, "Signal", "kind", s.Kind, "unit", s.Unit)
	c.signals.Publish(pubsub.SignalEvent, s)
}
