package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func background(w, h int) string {
	lines := make([]string, h)
	for i := range lines {
		lines[i] = strings.Repeat(".", w)
	}
	return strings.Join(lines, "\n")
}

func TestPlace_Center(t *testing.T) {
	out := Place(Config{Width: 10, Height: 5, Position: Center}, "XX\nXX", background(10, 5))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 5)
	require.Equal(t, "..........", lines[0])
	require.Equal(t, "....XX....", lines[1])
	require.Equal(t, "....XX....", lines[2])
	require.Equal(t, "..........", lines[3])
}

func TestPlace_BottomWithPadding(t *testing.T) {
	out := Place(Config{Width: 6, Height: 4, Position: Bottom, PadY: 1}, "ab", background(6, 4))
	lines := strings.Split(out, "\n")
	require.Equal(t, "..ab..", lines[2])
	require.Equal(t, "......", lines[3])
}

func TestPlace_Top(t *testing.T) {
	out := Place(Config{Width: 4, Height: 3, Position: Top}, "zz", background(4, 3))
	require.Equal(t, ".zz.", strings.Split(out, "\n")[0])
}

func TestPlace_ShortBackgroundIsPadded(t *testing.T) {
	out := Place(Config{Width: 6, Height: 3, Position: Center}, "M", "ab")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "  M   ", lines[1])
}

func TestPlace_ForegroundWiderThanBackground(t *testing.T) {
	out := Place(Config{Width: 3, Height: 1}, "abcdef", "...")
	require.Equal(t, "abcdef", out)
}

func TestPlace_PreservesStyledBackground(t *testing.T) {
	styled := "\x1b[31mredredred\x1b[0m"
	out := Place(Config{Width: 9, Height: 1}, "X", styled)
	require.Contains(t, out, "X")
	require.Contains(t, out, "\x1b[31m")
}
