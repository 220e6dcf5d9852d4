// Package toaster shows short-lived notifications at the bottom of the
// console, for example an unknown unit or a journal failure.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/opdeck/internal/ui/overlay"
	"github.com/zjrosen/opdeck/internal/ui/styles"
)

// Style determines the visual appearance of the toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 3 * time.Second

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	// id increments on every Show so a stale dismissal cannot hide a newer toast.
	id int
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays message and returns the command that dismisses it after d.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.id++
	m.message = message
	m.style = style
	m.visible = true
	id := m.id
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{ID: id} })
}

// Update hides the toast when msg dismisses the current one.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.ID == m.id {
		m.visible = false
		m.message = ""
	}
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	var (
		color lipgloss.TerminalColor
		glyph string
	)
	switch m.style {
	case StyleError:
		color, glyph = styles.StatusErrorColor, "✗"
	case StyleInfo:
		color, glyph = styles.StatusInfoColor, "ℹ"
	case StyleWarn:
		color, glyph = styles.StatusWarningColor, "⚠"
	default:
		color, glyph = styles.StatusSuccessColor, "✓"
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Render(lipgloss.NewStyle().Foreground(color).Render(glyph) + " " + m.message)
}

// Overlay renders the toast bottom-center on top of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}

// DismissMsg hides the toast whose Show produced ID.
type DismissMsg struct {
	ID int
}
