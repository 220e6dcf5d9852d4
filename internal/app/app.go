// Package app contains the root application model of the console TUI.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/opdeck/internal/config"
	"github.com/zjrosen/opdeck/internal/console"
	"github.com/zjrosen/opdeck/internal/hardware/joystick"
	"github.com/zjrosen/opdeck/internal/keys"
	"github.com/zjrosen/opdeck/internal/log"
	"github.com/zjrosen/opdeck/internal/pubsub"
	"github.com/zjrosen/opdeck/internal/ui/configview"
	"github.com/zjrosen/opdeck/internal/ui/help"
	"github.com/zjrosen/opdeck/internal/ui/logview"
	"github.com/zjrosen/opdeck/internal/ui/statusbar"
	"github.com/zjrosen/opdeck/internal/ui/toaster"
	"github.com/zjrosen/opdeck/internal/ui/unitlist"
	"github.com/zjrosen/opdeck/internal/watcher"
)

// stickStep is how far one virtual-stick key press moves an axis.
const stickStep = 0.25

// Deps are the collaborators the TUI drives. Joystick and Watcher may be nil.
type Deps struct {
	Console    *console.Console
	Config     config.Config
	ConfigPath string
	// Joystick feeds the joystick panels and, when VirtualStick is set,
	// receives samples from the keyboard.
	Joystick     *joystick.Device
	VirtualStick bool
	Watcher      *watcher.Watcher
}

// Model is the root application state.
type Model struct {
	console    *console.Console
	cfg        config.Config
	configPath string
	keys       keys.KeyMap

	width  int
	height int

	units    unitlist.Model
	activeID string
	// listFocused is true while the hardware list owns the cursor keys.
	listFocused      bool
	controlAvailable bool
	source           string

	toaster    toaster.Model
	help       help.Model
	logs       logview.Model
	configView configview.Model
	status     statusbar.Model

	joystick     *joystick.Device
	virtualStick bool
	stick        [2]float64

	ctx            context.Context
	cancel         context.CancelFunc
	signalListener *pubsub.ContinuousListener[console.Signal]
	logListener    *log.LogListener
	watchListener  *pubsub.ContinuousListener[watcher.Change]
	sampleListener *pubsub.ContinuousListener[joystick.Sample]
}

// New creates the root model. The console must already be started so the
// first signals are not missed: New seeds its state from the console.
func New(d Deps) Model {
	ctx, cancel := context.WithCancel(context.Background())
	km := keys.DefaultKeyMap()

	m := Model{
		console:          d.Console,
		cfg:              d.Config,
		configPath:       d.ConfigPath,
		keys:             km,
		units:            unitlist.New().SetUnits(d.Console.Units()),
		listFocused:      true,
		controlAvailable: d.Console.ControlAvailable(),
		toaster:          toaster.New(),
		help:             help.New(km, d.Config.UI.MarkdownStyle),
		logs:             logview.New(),
		configView:       configview.New(d.Config, d.ConfigPath),
		status:           statusbar.New(log.LevelInfo),
		joystick:         d.Joystick,
		virtualStick:     d.VirtualStick && d.Joystick != nil,
		ctx:              ctx,
		cancel:           cancel,
		signalListener:   pubsub.NewContinuousListener(ctx, d.Console.Signals()),
		logListener:      log.NewListener(ctx),
	}
	if d.Watcher != nil {
		m.watchListener = pubsub.NewContinuousListener(ctx, d.Watcher.Broker())
	}
	if d.Joystick != nil {
		m.sampleListener = pubsub.NewContinuousListener(ctx, d.Joystick.SampleBroker())
	}
	if entries := log.Entries(log.LevelInfo); len(entries) > 0 {
		m.status = m.status.Observe(entries[len(entries)-1])
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		pubsub.ListenAll(m.signalListener, m.logListener, m.watchListener),
		m.sampleListener.ListenLatest(),
	}
	if m.cfg.UI.Fullscreen {
		cmds = append(cmds, tea.EnterAltScreen)
	}
	return tea.Batch(cmds...)
}

// Close stops every listener. The console and drivers are owned by the
// caller.
func (m *Model) Close() {
	m.cancel()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.logs = m.logs.SetSize(msg.Width, msg.Height)
		m.configView = m.configView.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case unitlist.ActivateMsg:
		return m.activate(msg.Unit)

	case pubsub.Event[console.Signal]:
		m = m.applySignal(msg.Payload)
		return m, m.signalListener.Listen()

	case log.LogEvent:
		m.status = m.status.Observe(msg.Payload)
		m.logs = m.logs.Refresh()
		return m, m.logListener.Listen()

	case pubsub.Event[watcher.Change]:
		return m.deviceChanged(msg.Payload)

	case pubsub.Event[joystick.Sample]:
		for _, p := range m.openPanels() {
			if jp, ok := p.(sampleObserver); ok {
				jp.Observe(msg.Payload)
			}
		}
		return m, m.sampleListener.ListenLatest()

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case logview.ClosedMsg:
		return m, nil
	}
	return m, nil
}

type sampleObserver interface {
	Observe(joystick.Sample)
}

func (m Model) applySignal(s console.Signal) Model {
	switch s.Kind {
	case console.SignalControlAvailability:
		m.controlAvailable = s.Enabled
	case console.SignalControlSource:
		m.source = s.Source
	case console.SignalPanelOpened:
		m.activeID = s.PanelID
		m.listFocused = false
	case console.SignalPanelClosed:
		m = m.fixActive()
	}
	m.units = m.units.SetUnits(m.console.Units())
	return m
}

func (m Model) deviceChanged(c watcher.Change) (tea.Model, tea.Cmd) {
	verb := "removed"
	if c.Present {
		verb = "appeared"
	}
	log.Info(log.CatWatcher, "Device "+verb+"; restart to re-probe", "device", c.Device)
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show("Device "+verb+": "+c.Device+" (restart to re-probe)", toaster.StyleInfo, toaster.DefaultDuration)
	return m, tea.Batch(cmd, m.watchListener.Listen())
}

func (m Model) showError(err error) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(err.Error(), toaster.StyleError, toaster.DefaultDuration)
	return m, cmd
}
