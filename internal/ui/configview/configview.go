// Package configview shows the loaded configuration as a read-only tree,
// section by section, in a scrollable overlay.
package configview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/zjrosen/opdeck/internal/config"
	"github.com/zjrosen/opdeck/internal/ui/overlay"
	"github.com/zjrosen/opdeck/internal/ui/styles"
)

const (
	boxMaxWidth = 80
	boxMinWidth = 36
	chromeRows  = 6 // title, two dividers, hint line, borders
)

// Model is the overlay state.
type Model struct {
	cfg     config.Config
	source  string
	visible bool
	width   int
	height  int
	vp      viewport.Model
}

// New returns a hidden overlay for cfg. source names the file cfg was read
// from and becomes the tree root.
func New(cfg config.Config, source string) Model {
	return Model{cfg: cfg, source: source}
}

// Visible reports whether the overlay is open.
func (m Model) Visible() bool { return m.visible }

// SetConfig replaces the displayed configuration.
func (m Model) SetConfig(cfg config.Config) Model {
	m.cfg = cfg
	m.refresh()
	return m
}

// SetSize records the screen size.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	m.refresh()
	return m
}

// Toggle opens or closes the overlay.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	m.refresh()
	return m
}

// Update scrolls or closes the overlay. Other keys are swallowed.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.visible {
		return m, nil
	}
	switch key.String() {
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
	case "o", "esc", "q":
		m.visible = false
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
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1).Render("Configuration")
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("read-only · [j/k] scroll  [o/esc] close")

	body := strings.Join([]string{title, rule, m.vp.View(), rule, hint}, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(w).
		Render(body)
}

// Overlay centers the box over bg.
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
	content := Tree(m.cfg, m.source).String()
	rows := max(min(lipgloss.Height(content), m.height-chromeRows), 3)
	m.vp = viewport.New(m.boxWidth()-2, rows)
	m.vp.SetContent(content)
}

// Tree builds the configuration tree. Keys use the config file's names.
func Tree(cfg config.Config, source string) *tree.Tree {
	if source == "" {
		source = "defaults"
	}
	hw := cfg.Hardware
	t := tree.Root(source).Child(
		section("hardware",
			section("motor",
				leaf("name", hw.Motor.Name),
				leaf("device", hw.Motor.Device),
				leaf("simulate", hw.Motor.Simulate),
				leaf("max_speed", hw.Motor.MaxSpeed),
			),
			section("joystick",
				leaf("name", hw.Joystick.Name),
				leaf("device", hw.Joystick.Device),
				leaf("simulate", hw.Joystick.Simulate),
				leaf("deadzone", hw.Joystick.Deadzone),
				leaf("axes", hw.Joystick.Axes),
			),
		),
		section("ui",
			leaf("show_status_bar", cfg.UI.ShowStatusBar),
			leaf("fullscreen", cfg.UI.Fullscreen),
			leaf("layout", cfg.UI.Layout),
			leaf("markdown_style", cfg.UI.MarkdownStyle),
		),
		section("theme",
			leaf("highlight", cfg.Theme.Highlight),
			leaf("error", cfg.Theme.Error),
			leaf("success", cfg.Theme.Success),
		),
		section("journal",
			leaf("enabled", cfg.Journal.Enabled),
			leaf("path", cfg.Journal.Path),
		),
		section("tracing",
			leaf("enabled", cfg.Tracing.Enabled),
			leaf("exporter", cfg.Tracing.Exporter),
			leaf("file_path", cfg.Tracing.FilePath),
			leaf("otlp_endpoint", cfg.Tracing.OTLPEndpoint),
			leaf("sample_rate", cfg.Tracing.SampleRate),
		),
		section("hotplug",
			leaf("enabled", cfg.Hotplug.Enabled),
			leaf("debounce", cfg.Hotplug.Debounce),
		),
	)
	return t.
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(styles.TextMutedColor)).
		RootStyle(lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor))
}

func section(name string, children ...any) *tree.Tree {
	return tree.Root(name).Child(children...)
}

func leaf(key string, value any) string {
	if s, ok := value.(string); ok && s == "" {
		value = `""`
	}
	return fmt.Sprintf("%s: %v", key, value)
}
