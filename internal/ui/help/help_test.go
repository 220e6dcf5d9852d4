package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/opdeck/internal/keys"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m.Run()
}

func TestMarkdown_ListsEveryBinding(t *testing.T) {
	km := keys.DefaultKeyMap()
	md := Markdown(km)

	for _, title := range sectionTitles {
		require.Contains(t, md, "## "+title)
	}
	for _, group := range km.FullHelp() {
		for _, b := range group {
			require.Contains(t, md, b.Help().Desc)
		}
	}
}

func TestModel_ToggleAndOverlay(t *testing.T) {
	m := New(keys.DefaultKeyMap(), "dark").SetSize(100, 120)
	require.False(t, m.Visible())

	bg := strings.Repeat(strings.Repeat(" ", 100)+"\n", 119) + strings.Repeat(" ", 100)
	require.Equal(t, bg, m.Overlay(bg))

	m = m.Toggle()
	require.True(t, m.Visible())
	out := m.Overlay(bg)
	require.Contains(t, out, "play/pause")
	require.Contains(t, out, "close all panels")

	m = m.Hide()
	require.False(t, m.Visible())
}

func TestModel_ShortView(t *testing.T) {
	m := New(keys.DefaultKeyMap(), "").SetSize(200, 40)
	short := m.ShortView()
	require.Contains(t, short, "play/pause")
	require.Contains(t, short, "quit")
	require.NotContains(t, short, "\n")
}
