package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m.Run()
}

func TestRenderWithTitleBorder_Dimensions(t *testing.T) {
	out := RenderWithTitleBorder("line one\nline two", "Motor Board", 30, 6, false)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 6)
	for i, line := range lines {
		require.Equal(t, 30, lipgloss.Width(line), "line %d width", i)
	}
	require.True(t, strings.HasPrefix(lines[0], "╭─ Motor Board ─"))
	require.True(t, strings.HasSuffix(lines[0], "╮"))
	require.Contains(t, lines[1], "line one")
	require.True(t, strings.HasPrefix(lines[5], "╰"))
}

func TestRenderWithTitleBorder_TruncatesTitle(t *testing.T) {
	out := RenderWithTitleBorder("", "A very long unit name indeed", 16, 3, true)
	top := strings.Split(out, "\n")[0]
	require.Equal(t, 16, lipgloss.Width(top))
	require.Contains(t, top, "…")
}

func TestRenderWithTitleBorder_ClipsOverflowingContent(t *testing.T) {
	content := strings.Repeat("row\n", 20)
	out := RenderWithTitleBorder(content, "", 10, 5, false)
	require.Len(t, strings.Split(out, "\n"), 5)
}

func TestBuildTopBorder_NarrowOrEmptyTitle(t *testing.T) {
	plain := lipgloss.NewStyle()
	require.Equal(t, "╭───╮", buildTopBorder("Joystick", 3, plain, plain))
	require.Equal(t, "╭──────╮", buildTopBorder("", 6, plain, plain))
}
