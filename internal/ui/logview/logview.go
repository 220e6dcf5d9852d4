// Package logview is the in-console diagnostics viewer. It lists buffered
// log entries in a scrollable box and filters them by minimum level.
package logview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/opdeck/internal/log"
	"github.com/zjrosen/opdeck/internal/ui/overlay"
	"github.com/zjrosen/opdeck/internal/ui/styles"
)

const (
	maxRows     = 20
	minRows     = 4
	boxMaxWidth = 140
	boxMinWidth = 40
	chromeRows  = 6 // title, two dividers, filter line, borders
)

// ClosedMsg is emitted after the viewer hides itself.
type ClosedMsg struct{}

var filterKeys = []struct {
	key   string
	label string
	level log.Level
}{
	{"d", "Debug", log.LevelDebug},
	{"i", "Info", log.LevelInfo},
	{"w", "Warn", log.LevelWarn},
	{"e", "Error", log.LevelError},
}

// Model is the viewer state.
type Model struct {
	visible  bool
	minLevel log.Level
	width    int
	height   int
	vp       viewport.Model
}

// New returns a hidden viewer showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Visible reports whether the viewer is open.
func (m Model) Visible() bool { return m.visible }

// MinLevel returns the active filter.
func (m Model) MinLevel() log.Level { return m.minLevel }

// Toggle opens or closes the viewer.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
	}
	return m
}

// SetSize records the screen size.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	m.refresh()
	return m
}

// Refresh reloads entries, keeping the view pinned to the bottom when it
// already was.
func (m Model) Refresh() Model {
	if !m.visible {
		return m
	}
	atBottom := m.vp.AtBottom()
	offset := m.vp.YOffset
	m.refresh()
	if atBottom {
		m.vp.GotoBottom()
	} else {
		m.vp.SetYOffset(offset)
	}
	return m
}

// Update handles keys while the viewer is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		k := msg.String()
		for _, f := range filterKeys {
			if k == f.key {
				m.minLevel = f.level
				m.refresh()
				return m, nil
			}
		}
		switch k {
		case "c":
			log.ClearBuffer()
			m.refresh()
		case "j", "down":
			m.vp.ScrollDown(1)
		case "k", "up":
			m.vp.ScrollUp(1)
		case "g":
			m.vp.GotoTop()
		case "G":
			m.vp.GotoBottom()
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+x", "esc":
			m.visible = false
			return m, func() tea.Msg { return ClosedMsg{} }
		}
	}
	return m, nil
}

// View renders the box, or nothing while hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	w := m.boxWidth()
	rule := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", w))
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1).Render("Logs")

	body := strings.Join([]string{title, rule, m.vp.View(), rule, m.hints()}, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(w).
		Render(body)
}

// Overlay centers the viewer over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{Width: m.width, Height: m.height, Position: overlay.Center}, m.View(), bg)
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	rows := max(min(maxRows, m.height-chromeRows), minRows)
	m.vp = viewport.New(m.boxWidth()-2, rows)
	m.vp.SetContent(m.content(m.boxWidth() - 2))
	m.vp.GotoBottom()
}

func (m Model) content(width int) string {
	entries := log.Entries(m.minLevel)
	if len(entries) == 0 {
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).Render("No logs to display")
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := strings.TrimSuffix(e.Line, "\n")
		if ansi.StringWidth(line) > width {
			line = ansi.Truncate(line, width, "…")
		}
		lines = append(lines, levelStyle(e.Level).Render(line))
	}
	return strings.Join(lines, "\n")
}

func levelStyle(l log.Level) lipgloss.Style {
	switch l {
	case log.LevelError:
		return lipgloss.NewStyle().Foreground(styles.StatusErrorColor)
	case log.LevelWarn:
		return lipgloss.NewStyle().Foreground(styles.StatusWarningColor)
	case log.LevelInfo:
		return lipgloss.NewStyle().Foreground(styles.StatusInfoColor)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	}
}

func (m Model) hints() string {
	muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)
	parts := []string{muted.Render("[c] Clear")}
	for _, f := range filterKeys {
		s := muted
		if f.level == m.minLevel {
			s = active
		}
		parts = append(parts, s.Render("["+f.key+"] "+f.label))
	}
	return strings.Join(parts, "  ")
}
