// Package statusbar renders the bottom line of the console: session
// buttons, the joystick toggle and the latest diagnostic log line.
package statusbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/opdeck/internal/log"
	"github.com/zjrosen/opdeck/internal/session"
	"github.com/zjrosen/opdeck/internal/ui/styles"
)

// Controls is the console state the bar reflects.
type Controls struct {
	Session          session.State
	Affordances      session.Affordances
	ControlAvailable bool
	ControlEnabled   bool
	Source           string
}

// Model holds the last log entry worth showing.
type Model struct {
	minLevel log.Level
	last     log.Entry
	hasLast  bool
}

// New shows entries at or above minLevel.
func New(minLevel log.Level) Model {
	return Model{minLevel: minLevel}
}

// Observe keeps e when it meets the level threshold.
func (m Model) Observe(e log.Entry) Model {
	if e.Level < m.minLevel {
		return m
	}
	m.last = e
	m.hasLast = true
	return m
}

// Last returns the entry on display.
func (m Model) Last() (log.Entry, bool) {
	return m.last, m.hasLast
}

// View renders the bar at width.
func (m Model) View(c Controls, width int) string {
	left := strings.Join([]string{buttons(c), toggle(c)}, " ")
	room := width - lipgloss.Width(left) - 3
	right := ""
	if m.hasLast && room > 4 {
		msg := ansi.Truncate(string(m.last.Category)+": "+m.last.Message, room, "…")
		right = entryStyle(m.last.Level).Render(msg)
	}
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return styles.StatusBarStyle.Width(width).MaxWidth(width).Render(left + strings.Repeat(" ", gap) + right)
}

func buttons(c Controls) string {
	play := styles.PlayButtonStyle.Render("▶ play")
	if c.Affordances.PlayIcon == session.IconPause {
		play = styles.PauseButtonStyle.Render("⏸ pause")
	}
	out := play
	if c.Affordances.StopVisible {
		out += " " + styles.StopButtonStyle.Render("■ stop")
	}
	return out + " " + c.Session.String()
}

func toggle(c Controls) string {
	switch {
	case !c.ControlAvailable:
		return styles.DisabledButtonStyle.Render("joystick n/a")
	case c.ControlEnabled && c.Source != "":
		return styles.PlayButtonStyle.Render("joystick → " + c.Source)
	case c.ControlEnabled:
		return styles.PlayButtonStyle.Render("joystick on")
	default:
		return styles.DisabledButtonStyle.Render("joystick off")
	}
}

func entryStyle(l log.Level) lipgloss.Style {
	switch l {
	case log.LevelError:
		return lipgloss.NewStyle().Foreground(styles.StatusErrorColor)
	case log.LevelWarn:
		return lipgloss.NewStyle().Foreground(styles.StatusWarningColor)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	}
}
