package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/opdeck/internal/config"
	"github.com/zjrosen/opdeck/internal/hardware/joystick"
	"github.com/zjrosen/opdeck/internal/log"
	"github.com/zjrosen/opdeck/internal/ui/panel"
	"github.com/zjrosen/opdeck/internal/ui/toaster"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The log viewer owns the keyboard while open.
	if m.logs.Visible() {
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}
	if m.configView.Visible() {
		var cmd tea.Cmd
		m.configView, cmd = m.configView.Update(msg)
		return m, cmd
	}
	if m.help.Visible() {
		if key.Matches(msg, m.keys.Help, m.keys.Escape) {
			m.help = m.help.Hide()
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help = m.help.Toggle()
	case key.Matches(msg, m.keys.Logs):
		m.logs = m.logs.Toggle()
	case key.Matches(msg, m.keys.Config):
		m.configView = m.configView.Toggle()
	case key.Matches(msg, m.keys.Up):
		m.units = m.units.Up()
		m.listFocused = true
	case key.Matches(msg, m.keys.Down):
		m.units = m.units.Down()
		m.listFocused = true
	case key.Matches(msg, m.keys.Activate):
		return m, m.units.Activate()
	case key.Matches(msg, m.keys.Play):
		m.console.Play(m.ctx)
	case key.Matches(msg, m.keys.Stop):
		m.console.Stop(m.ctx)
	case key.Matches(msg, m.keys.ToggleControl):
		return m.toggleControl()
	case key.Matches(msg, m.keys.NextPanel):
		m = m.cycle(1)
	case key.Matches(msg, m.keys.PrevPanel):
		m = m.cycle(-1)
	case key.Matches(msg, m.keys.ClosePanel):
		if p := m.activePanel(); p != nil {
			return m.closePanels(p)
		}
	case key.Matches(msg, m.keys.CloseAll):
		return m.closePanels(m.openPanels()...)
	case key.Matches(msg, m.keys.ToggleLayout):
		if m.cfg.UI.Layout == config.LayoutTiled {
			m.cfg.UI.Layout = config.LayoutTabbed
		} else {
			m.cfg.UI.Layout = config.LayoutTiled
		}
		return m.saveUI()
	case key.Matches(msg, m.keys.Fullscreen):
		m.cfg.UI.Fullscreen = !m.cfg.UI.Fullscreen
		next, cmd := m.saveUI()
		screen := tea.ExitAltScreen
		if m.cfg.UI.Fullscreen {
			screen = tea.EnterAltScreen
		}
		return next, tea.Batch(screen, cmd)
	case key.Matches(msg, m.keys.ToggleStatus):
		m.cfg.UI.ShowStatusBar = !m.cfg.UI.ShowStatusBar
		return m.saveUI()
	case key.Matches(msg, m.keys.StickUp):
		return m.moveStick(1, -stickStep)
	case key.Matches(msg, m.keys.StickDown):
		return m.moveStick(1, stickStep)
	case key.Matches(msg, m.keys.StickLeft):
		return m.moveStick(0, -stickStep)
	case key.Matches(msg, m.keys.StickRight):
		return m.moveStick(0, stickStep)
	case key.Matches(msg, m.keys.StickCenter):
		m.stick = [2]float64{}
		return m.moveStick(0, 0)
	case key.Matches(msg, m.keys.Escape):
		m.listFocused = true
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.logs.Visible() || m.help.Visible() || m.configView.Visible() {
		return m, nil
	}
	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
		for _, p := range m.openPanels() {
			if z := zone.Get(tabZoneID(p.ID())); z != nil && z.InBounds(msg) {
				m.activeID = p.ID()
				m.listFocused = false
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.units, cmd = m.units.HandleMouse(msg)
	return m, cmd
}

func (m Model) activate(unit string) (tea.Model, tea.Cmd) {
	if _, err := m.console.UnitActivated(m.ctx, unit); err != nil {
		return m.showError(err)
	}
	return m, nil
}

func (m Model) toggleControl() (tea.Model, tea.Cmd) {
	if !m.controlAvailable {
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Joystick was not connected at startup", toaster.StyleWarn, toaster.DefaultDuration)
		return m, cmd
	}
	m.console.ControlSourceToggled(m.ctx, !m.console.ControlEnabled())
	return m, nil
}

// closePanels destroys the given panels and tells the console about each.
func (m Model) closePanels(panels ...panel.Panel) (tea.Model, tea.Cmd) {
	for _, p := range panels {
		p.Destroy()
		if err := m.console.PanelClosed(m.ctx, p.Unit()); err != nil {
			return m.showError(err)
		}
	}
	return m.fixActive(), nil
}

// openPanels lists the live panels in unit order.
func (m Model) openPanels() []panel.Panel {
	var out []panel.Panel
	for _, p := range m.console.OpenPanels() {
		if pp, ok := p.(panel.Panel); ok {
			out = append(out, pp)
		}
	}
	return out
}

func (m Model) activePanel() panel.Panel {
	for _, p := range m.openPanels() {
		if p.ID() == m.activeID {
			return p
		}
	}
	return nil
}

// fixActive moves the active tab to the first open panel when the active
// one went away.
func (m Model) fixActive() Model {
	if m.activePanel() != nil {
		return m
	}
	m.activeID = ""
	if open := m.openPanels(); len(open) > 0 {
		m.activeID = open[0].ID()
	} else {
		m.listFocused = true
	}
	return m
}

func (m Model) cycle(step int) Model {
	open := m.openPanels()
	if len(open) == 0 {
		return m
	}
	idx := 0
	for i, p := range open {
		if p.ID() == m.activeID {
			idx = (i + step + len(open)) % len(open)
			break
		}
	}
	m.activeID = open[idx].ID()
	m.listFocused = false
	return m
}

// moveStick nudges one virtual-stick axis and feeds the sample to the
// simulated joystick.
func (m Model) moveStick(axis int, delta float64) (tea.Model, tea.Cmd) {
	if !m.virtualStick {
		return m, nil
	}
	m.stick[axis] = min(max(m.stick[axis]+delta, -1), 1)
	m.joystick.Feed(joystick.Sample{Axes: []float64{m.stick[0], m.stick[1]}})
	log.Debug(log.CatUI, "Virtual stick", "x", m.stick[0], "y", m.stick[1])
	return m, nil
}

func (m Model) saveUI() (tea.Model, tea.Cmd) {
	m.configView = m.configView.SetConfig(m.cfg)
	if m.configPath == "" {
		return m, nil
	}
	if err := config.SaveUI(m.configPath, m.cfg.UI); err != nil {
		log.ErrorErr(log.CatConfig, "Saving UI settings failed", err, "path", m.configPath)
		return m.showError(fmt.Errorf("saving settings: %w", err))
	}
	log.Debug(log.CatConfig, "Saved UI settings", "layout", m.cfg.UI.Layout, "status_bar", m.cfg.UI.ShowStatusBar)
	return m, nil
}
