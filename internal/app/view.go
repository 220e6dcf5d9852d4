package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/opdeck/internal/config"
	"github.com/zjrosen/opdeck/internal/ui/panel"
	"github.com/zjrosen/opdeck/internal/ui/statusbar"
	"github.com/zjrosen/opdeck/internal/ui/styles"
)

const (
	listWidth     = 28
	minPanelWidth = 20
)

func tabZoneID(panelID string) string {
	return "tab:" + panelID
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	footer := m.help.ShortView()
	chrome := 2 // window menu and footer
	var bar string
	if m.cfg.UI.ShowStatusBar {
		bar = m.status.View(m.controls(), m.width)
		chrome++
	}
	bodyHeight := max(m.height-chrome, 3)

	list := m.units.View(listWidth, bodyHeight, m.listFocused)
	panels := m.panelArea(max(m.width-listWidth, minPanelWidth), bodyHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, panels)

	rows := []string{m.windowMenu(), body, footer}
	if bar != "" {
		rows = append(rows, bar)
	}
	view := strings.Join(rows, "\n")

	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	view = m.help.Overlay(view)
	view = m.configView.Overlay(view)
	view = m.logs.Overlay(view)
	return zone.Scan(view)
}

func (m Model) controls() statusbar.Controls {
	return statusbar.Controls{
		Session:          m.console.Session(),
		Affordances:      m.console.Affordances(),
		ControlAvailable: m.controlAvailable,
		ControlEnabled:   m.console.ControlEnabled(),
		Source:           m.source,
	}
}

// windowMenu renders one tab per open panel with the active one checked.
func (m Model) windowMenu() string {
	open := m.openPanels()
	if len(open) == 0 {
		return styles.TabStyle.Render("no panels open")
	}
	tabs := make([]string, 0, len(open))
	for _, p := range open {
		if p.ID() == m.activeID {
			tabs = append(tabs, zone.Mark(tabZoneID(p.ID()), styles.ActiveTabStyle.Render("✓ "+p.Title())))
		} else {
			tabs = append(tabs, zone.Mark(tabZoneID(p.ID()), styles.TabStyle.Render(p.Title())))
		}
	}
	line := strings.Join(tabs, "│")
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

func (m Model) panelArea(width, height int) string {
	open := m.openPanels()
	if len(open) == 0 {
		hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor).
			Render("Select a unit and press enter (or double-click) to open its panel")
		return styles.RenderWithTitleBorder(hint, "", width, height, false)
	}
	if m.cfg.UI.Layout != config.LayoutTiled {
		p := m.activePanel()
		if p == nil {
			p = open[0]
		}
		return p.View(width, height, !m.listFocused)
	}
	return m.tile(open, width, height)
}

// tile stacks every open panel, splitting the height evenly and giving the
// remainder to the last one.
func (m Model) tile(open []panel.Panel, width, height int) string {
	n := min(len(open), max(height/3, 1))
	each := height / n
	views := make([]string, 0, n)
	for i, p := range open[:n] {
		h := each
		if i == n-1 {
			h = height - each*(n-1)
		}
		views = append(views, p.View(width, h, !m.listFocused && p.ID() == m.activeID))
	}
	return lipgloss.JoinVertical(lipgloss.Left, views...)
}
