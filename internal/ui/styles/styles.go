// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, footers

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// HighlightColor marks the focused panel, selected unit and active tab.
	HighlightColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Session button colors
	ButtonTextColor       = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPlayBgColor     = lipgloss.AdaptiveColor{Light: "#1E8449", Dark: "#1E8449"}
	ButtonPauseBgColor    = lipgloss.AdaptiveColor{Light: "#B9770E", Dark: "#B9770E"}
	ButtonStopBgColor     = lipgloss.AdaptiveColor{Light: "#922B21", Dark: "#922B21"}
	ButtonDisabledBgColor = lipgloss.AdaptiveColor{Light: "#2D2D2D", Dark: "#2D2D2D"}

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(HighlightColor)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(ButtonTextColor)

	PlayButtonStyle     = baseButtonStyle.Background(ButtonPlayBgColor)
	PauseButtonStyle    = baseButtonStyle.Background(ButtonPauseBgColor)
	StopButtonStyle     = baseButtonStyle.Background(ButtonStopBgColor)
	DisabledButtonStyle = baseButtonStyle.Bold(false).Background(ButtonDisabledBgColor)

	// Tabs of the window menu
	TabStyle       = lipgloss.NewStyle().Foreground(TextSecondaryColor).Padding(0, 1)
	ActiveTabStyle = lipgloss.NewStyle().Foreground(HighlightColor).Bold(true).Padding(0, 1)

	// Overlay
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)

// ApplyTheme applies custom theme colors from configuration.
// Empty strings keep the defaults. Styles derived from a color are rebuilt.
func ApplyTheme(highlight, errorColor, success string) {
	if highlight != "" {
		HighlightColor = lipgloss.AdaptiveColor{Light: highlight, Dark: highlight}
		StatusInfoColor = HighlightColor
		SelectionIndicatorStyle = SelectionIndicatorStyle.Foreground(HighlightColor)
		ActiveTabStyle = ActiveTabStyle.Foreground(HighlightColor)
	}
	if errorColor != "" {
		StatusErrorColor = lipgloss.AdaptiveColor{Light: errorColor, Dark: errorColor}
		ErrorStyle = ErrorStyle.Foreground(StatusErrorColor)
	}
	if success != "" {
		StatusSuccessColor = lipgloss.AdaptiveColor{Light: success, Dark: success}
	}
}
