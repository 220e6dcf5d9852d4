package unitlist

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/opdeck/internal/registry"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	zone.NewGlobal()
	m.Run()
}

func units() []registry.UnitInfo {
	return []registry.UnitInfo{
		{Name: "Board", Connected: true, PanelOpen: true},
		{Name: "Joystick", Connected: false},
	}
}

func TestView_Icons(t *testing.T) {
	m := New().SetUnits(units())
	view := zone.Scan(m.View(30, 6, true))

	require.Contains(t, view, "Hardware")
	require.Contains(t, view, "> ✓ Board ◆")
	require.Contains(t, view, "  ✗ Joystick")
}

func TestView_Empty(t *testing.T) {
	require.Contains(t, zone.Scan(New().View(30, 5, false)), "No hardware")
}

func TestView_TruncatesLongNames(t *testing.T) {
	m := New().SetUnits([]registry.UnitInfo{{Name: "An Extremely Long Unit Name", Connected: true}})
	view := zone.Scan(m.View(20, 4, false))
	require.Contains(t, view, "…")
	require.NotContains(t, view, "Unit Name")
}

func TestCursor(t *testing.T) {
	m := New().SetUnits(units())
	require.Equal(t, "Board", m.Selected())

	m = m.Up()
	require.Equal(t, "Board", m.Selected())
	m = m.Down()
	require.Equal(t, "Joystick", m.Selected())
	m = m.Down()
	require.Equal(t, "Joystick", m.Selected())

	// Keeps the selection across refreshes.
	m = m.SetUnits(units())
	require.Equal(t, "Joystick", m.Selected())
}

func TestActivate(t *testing.T) {
	require.Nil(t, New().Activate())

	m := New().SetUnits(units()).Down()
	cmd := m.Activate()
	require.NotNil(t, cmd)
	require.Equal(t, ActivateMsg{Unit: "Joystick"}, cmd())
}

func TestHandleMouse_DoubleClick(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := New().SetUnits(units())
	m.now = func() time.Time { return now }

	// Register zones by rendering a scanned frame.
	_ = zone.Scan(m.View(30, 6, true))

	var click tea.MouseMsg
	require.Eventually(t, func() bool {
		z := zone.Get(ZoneID("Joystick"))
		if z == nil || z.IsZero() {
			return false
		}
		click = tea.MouseMsg{X: z.StartX, Y: z.StartY, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}
		return true
	}, time.Second, 10*time.Millisecond)

	m, cmd := m.HandleMouse(click)
	require.Nil(t, cmd)
	require.Equal(t, "Joystick", m.Selected())

	now = now.Add(DoubleClickWindow / 2)
	m, cmd = m.HandleMouse(click)
	require.NotNil(t, cmd)
	require.Equal(t, ActivateMsg{Unit: "Joystick"}, cmd())

	// A slow second click only selects.
	m, _ = m.HandleMouse(click)
	now = now.Add(2 * DoubleClickWindow)
	_, cmd = m.HandleMouse(click)
	require.Nil(t, cmd)
}

func TestHandleMouse_IgnoresOtherButtons(t *testing.T) {
	m := New().SetUnits(units())
	_, cmd := m.HandleMouse(tea.MouseMsg{Button: tea.MouseButtonRight, Action: tea.MouseActionRelease})
	require.Nil(t, cmd)
}
