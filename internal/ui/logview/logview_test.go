package logview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/opdeck/internal/log"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m.Run()
}

func seed(t *testing.T) {
	t.Helper()
	log.SetMinLevel(log.LevelDebug)
	log.ClearBuffer()
	t.Cleanup(func() {
		log.ClearBuffer()
		log.SetMinLevel(log.LevelInfo)
	})
	log.Debug(log.CatUI, "debug line")
	log.Info(log.CatSession, "session started")
	log.Warn(log.CatHardware, "joystick missing")
	log.Error(log.CatJournal, "journal write failed")
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func open(t *testing.T) Model {
	t.Helper()
	m := New().SetSize(120, 40).Toggle()
	require.True(t, m.Visible())
	return m
}

func TestView_ShowsAllLevelsByDefault(t *testing.T) {
	seed(t)
	view := open(t).View()

	require.Contains(t, view, "Logs")
	require.Contains(t, view, "debug line")
	require.Contains(t, view, "session started")
	require.Contains(t, view, "journal write failed")
}

func TestUpdate_LevelFilters(t *testing.T) {
	seed(t)
	m := open(t)

	m, _ = m.Update(key("w"))
	require.Equal(t, log.LevelWarn, m.MinLevel())
	view := m.View()
	require.NotContains(t, view, "session started")
	require.Contains(t, view, "joystick missing")

	m, _ = m.Update(key("e"))
	view = m.View()
	require.NotContains(t, view, "joystick missing")
	require.Contains(t, view, "journal write failed")

	m, _ = m.Update(key("d"))
	require.Contains(t, m.View(), "debug line")
}

func TestUpdate_ClearEmptiesBuffer(t *testing.T) {
	seed(t)
	m := open(t)

	m, _ = m.Update(key("c"))
	require.Empty(t, log.Entries(log.LevelDebug))
	require.Contains(t, m.View(), "No logs to display")
}

func TestUpdate_CloseKeys(t *testing.T) {
	for _, k := range []string{"esc", "ctrl+x"} {
		t.Run(k, func(t *testing.T) {
			seed(t)
			m := open(t)
			m, cmd := m.Update(key(k))
			require.False(t, m.Visible())
			require.NotNil(t, cmd)
			require.IsType(t, ClosedMsg{}, cmd())
			require.Empty(t, m.View())
		})
	}
}

func TestRefresh_PicksUpNewEntries(t *testing.T) {
	seed(t)
	m := open(t)
	log.Info(log.CatConsole, "panel opened")

	require.NotContains(t, m.View(), "panel opened")
	m = m.Refresh()
	require.Contains(t, m.View(), "panel opened")
}

func TestOverlay_HiddenReturnsBackground(t *testing.T) {
	bg := strings.Repeat("x", 10)
	require.Equal(t, bg, New().Overlay(bg))
}

func TestContent_TruncatesLongLines(t *testing.T) {
	seed(t)
	log.Info(log.CatUI, strings.Repeat("y", 300))
	m := New().SetSize(60, 30).Toggle()
	for _, line := range strings.Split(m.View(), "\n") {
		require.LessOrEqual(t, lipgloss.Width(line), 58)
	}
}
