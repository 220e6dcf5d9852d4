package statusbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/opdeck/internal/log"
	"github.com/zjrosen/opdeck/internal/session"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m.Run()
}

func controls(s session.State) Controls {
	return Controls{Session: s, Affordances: session.AffordancesFor(s), ControlAvailable: true}
}

func TestView_SessionButtons(t *testing.T) {
	m := New(log.LevelInfo)

	idle := m.View(controls(session.Idle), 80)
	require.Contains(t, idle, "▶ play")
	require.NotContains(t, idle, "stop")
	require.Contains(t, idle, "idle")

	running := m.View(controls(session.Running), 80)
	require.Contains(t, running, "⏸ pause")
	require.Contains(t, running, "■ stop")

	paused := m.View(controls(session.Paused), 80)
	require.Contains(t, paused, "▶ play")
	require.Contains(t, paused, "■ stop")
}

func TestView_Toggle(t *testing.T) {
	m := New(log.LevelInfo)
	tests := []struct {
		name string
		c    Controls
		want string
	}{
		{"unavailable", Controls{}, "joystick n/a"},
		{"off", Controls{ControlAvailable: true}, "joystick off"},
		{"bound", Controls{ControlAvailable: true, ControlEnabled: true, Source: "Joystick"}, "joystick → Joystick"},
		{"no producer", Controls{ControlAvailable: true, ControlEnabled: true}, "joystick on"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Contains(t, m.View(tt.c, 100), tt.want)
		})
	}
}

func TestObserve_LevelThreshold(t *testing.T) {
	m := New(log.LevelWarn)
	m = m.Observe(log.Entry{Level: log.LevelInfo, Category: log.CatUI, Message: "quiet"})
	_, ok := m.Last()
	require.False(t, ok)

	m = m.Observe(log.Entry{Level: log.LevelWarn, Category: log.CatHardware, Message: "joystick missing"})
	e, ok := m.Last()
	require.True(t, ok)
	require.Equal(t, "joystick missing", e.Message)
	require.Contains(t, m.View(controls(session.Idle), 100), "hw: joystick missing")
}

func TestView_FitsWidth(t *testing.T) {
	m := New(log.LevelDebug).Observe(log.Entry{Level: log.LevelError, Category: log.CatJournal, Message: strings.Repeat("z", 200)})
	view := m.View(controls(session.Running), 70)
	require.Equal(t, 70, lipgloss.Width(view))
	require.Contains(t, view, "…")
}
