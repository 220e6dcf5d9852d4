// Package help renders the key hints footer and the full help overlay.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/opdeck/internal/keys"
	"github.com/zjrosen/opdeck/internal/log"
	"github.com/zjrosen/opdeck/internal/ui/markdown"
	"github.com/zjrosen/opdeck/internal/ui/overlay"
	"github.com/zjrosen/opdeck/internal/ui/styles"
)

const (
	boxMaxWidth = 72
	boxMinWidth = 30
)

var sectionTitles = []string{"Hardware", "Session", "Panels", "Virtual stick", "General"}

// Model holds the help state. Visible toggles the overlay; the footer is
// always available through ShortView.
type Model struct {
	keys    keys.KeyMap
	footer  help.Model
	visible bool
	style   string
	width   int
	height  int
	body    string
}

// New creates a help model. markdownStyle is "dark" or "light".
func New(km keys.KeyMap, markdownStyle string) Model {
	footer := help.New()
	footer.Styles.ShortKey = lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	footer.Styles.ShortDesc = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	footer.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	return Model{keys: km, footer: footer, style: markdownStyle}
}

// SetSize updates dimensions and re-renders the overlay body.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.footer.Width = width
	m.body = m.render()
	return m
}

// Toggle shows or hides the overlay.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible && m.body == "" {
		m.body = m.render()
	}
	return m
}

// Hide closes the overlay.
func (m Model) Hide() Model {
	m.visible = false
	return m
}

// Visible reports whether the overlay is up.
func (m Model) Visible() bool {
	return m.visible
}

// ShortView renders the one-line key hints.
func (m Model) ShortView() string {
	return m.footer.ShortHelpView(m.keys.ShortHelp())
}

// View renders the overlay box.
func (m Model) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Padding(0, 1).
		Render(m.body)
}

// Overlay draws the help box centered over bg when visible.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{Width: m.width, Height: m.height, Position: overlay.Center}, m.View(), bg)
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

// render turns the key map into markdown and renders it, falling back to
// the plain markdown when glamour fails.
func (m Model) render() string {
	md := Markdown(m.keys)
	r, err := markdown.New(m.boxWidth()-4, m.style)
	if err != nil {
		log.ErrorErr(log.CatUI, "Help renderer unavailable", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		log.ErrorErr(log.CatUI, "Help render failed", err)
		return md
	}
	return out
}

// Markdown describes every binding of km, grouped as in FullHelp.
func Markdown(km keys.KeyMap) string {
	var b strings.Builder
	b.WriteString("# opdeck\n")
	for i, group := range km.FullHelp() {
		title := fmt.Sprintf("Group %d", i+1)
		if i < len(sectionTitles) {
			title = sectionTitles[i]
		}
		fmt.Fprintf(&b, "\n## %s\n\n| Key | Action |\n|---|---|\n", title)
		for _, binding := range group {
			writeRow(&b, binding)
		}
	}
	b.WriteString("\nThe joystick toggle is offered only when the joystick was open at startup.\n")
	return b.String()
}

func writeRow(b *strings.Builder, binding key.Binding) {
	h := binding.Help()
	k := strings.ReplaceAll(h.Key, "|", `\|`)
	fmt.Fprintf(b, "| `%s` | %s |\n", k, h.Desc)
}
