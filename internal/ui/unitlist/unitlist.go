// Package unitlist renders the hardware list: one row per registered unit
// with its connectivity icon. Rows are bubblezone regions so a double click
// opens the unit's panel.
package unitlist

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/opdeck/internal/registry"
	"github.com/zjrosen/opdeck/internal/ui/styles"
)

// DoubleClickWindow is the longest gap between two clicks on the same row
// that still counts as a double click.
const DoubleClickWindow = 400 * time.Millisecond

const (
	iconConnected    = "✓"
	iconDisconnected = "✗"
	markPanelOpen    = "◆"
)

// ActivateMsg asks the app to open the panel of Unit.
type ActivateMsg struct {
	Unit string
}

// Model is the list state.
type Model struct {
	units     []registry.UnitInfo
	cursor    int
	lastClick time.Time
	lastRow   int
	now       func() time.Time
}

// New creates an empty list.
func New() Model {
	return Model{lastRow: -1, now: time.Now}
}

// SetUnits replaces the rows, keeping the cursor on the same unit when it
// is still listed.
func (m Model) SetUnits(units []registry.UnitInfo) Model {
	selected := m.Selected()
	m.units = units
	m.cursor = 0
	for i, u := range units {
		if u.Name == selected {
			m.cursor = i
			break
		}
	}
	return m
}

// Units returns the rows.
func (m Model) Units() []registry.UnitInfo { return m.units }

// Selected returns the unit under the cursor, or "" for an empty list.
func (m Model) Selected() string {
	if m.cursor < 0 || m.cursor >= len(m.units) {
		return ""
	}
	return m.units[m.cursor].Name
}

// Up moves the cursor up.
func (m Model) Up() Model {
	if m.cursor > 0 {
		m.cursor--
	}
	return m
}

// Down moves the cursor down.
func (m Model) Down() Model {
	if m.cursor < len(m.units)-1 {
		m.cursor++
	}
	return m
}

// Activate returns a command requesting the selected unit's panel.
func (m Model) Activate() tea.Cmd {
	name := m.Selected()
	if name == "" {
		return nil
	}
	return func() tea.Msg { return ActivateMsg{Unit: name} }
}

// HandleMouse selects the clicked row and activates it on a double click.
// Zones must have been scanned by the caller's View.
func (m Model) HandleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}
	for i, u := range m.units {
		z := zone.Get(ZoneID(u.Name))
		if z == nil || !z.InBounds(msg) {
			continue
		}
		now := m.now()
		double := i == m.lastRow && now.Sub(m.lastClick) <= DoubleClickWindow
		m.cursor = i
		if double {
			m.lastRow = -1
			return m, m.Activate()
		}
		m.lastRow = i
		m.lastClick = now
		return m, nil
	}
	return m, nil
}

// ZoneID is the bubblezone id of the row for unit.
func ZoneID(unit string) string {
	return "unit:" + unit
}

// View renders the list in a titled box of the given outer size.
func (m Model) View(width, height int, focused bool) string {
	inner := max(width-4, 1)
	rows := make([]string, 0, len(m.units))
	for i, u := range m.units {
		rows = append(rows, zone.Mark(ZoneID(u.Name), m.row(u, i == m.cursor, inner)))
	}
	if len(rows) == 0 {
		rows = append(rows, lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("No hardware"))
	}
	return styles.RenderWithTitleBorder(strings.Join(rows, "\n"), "Hardware", width, height, focused)
}

func (m Model) row(u registry.UnitInfo, selected bool, width int) string {
	icon := lipgloss.NewStyle().Foreground(styles.StatusErrorColor).Render(iconDisconnected)
	if u.Connected {
		icon = lipgloss.NewStyle().Foreground(styles.StatusSuccessColor).Render(iconConnected)
	}
	indicator := " "
	if selected {
		indicator = styles.SelectionIndicatorStyle.Render(">")
	}
	mark := " "
	if u.PanelOpen {
		mark = lipgloss.NewStyle().Foreground(styles.HighlightColor).Render(markPanelOpen)
	}
	name := truncate.StringWithTail(u.Name, uint(max(width-6, 1)), "…")
	if selected {
		name = lipgloss.NewStyle().Bold(true).Render(name)
	}
	return fmt.Sprintf("%s %s %s %s", indicator, icon, name, mark)
}
