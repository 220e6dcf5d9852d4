package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderWithTitleBorder renders content in a rounded box of the given outer
// size with title embedded in the top border: ╭─ Title ─────╮.
// The border takes HighlightColor when focused.
func RenderWithTitleBorder(content, title string, width, height int, focused bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	titleColor := lipgloss.TerminalColor(TextSecondaryColor)
	if focused {
		borderColor = HighlightColor
		titleColor = HighlightColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor)

	innerWidth := max(width-2, 1)
	innerHeight := max(height-2, 1)

	body := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Height(innerHeight).
		MaxHeight(innerHeight).
		Render(content)
	side := borderStyle.Render(borderVertical)

	lines := make([]string, 0, innerHeight+2)
	lines = append(lines, buildTopBorder(title, innerWidth, borderStyle, titleStyle))
	for _, line := range strings.Split(body, "\n") {
		if pad := innerWidth - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		lines = append(lines, side+line+side)
	}
	lines = append(lines, borderStyle.Render(borderBottomLeft+strings.Repeat(borderHorizontal, innerWidth)+borderBottomRight))
	return strings.Join(lines, "\n")
}

func buildTopBorder(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	plain := borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	// "─ " + title + " " needs room for at least one title cell and a dash.
	if title == "" || innerWidth < 5 {
		return plain
	}

	title = ansi.Truncate(title, innerWidth-4, "…")
	dashes := max(innerWidth-3-lipgloss.Width(title), 0)

	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, dashes)+borderTopRight)
}
