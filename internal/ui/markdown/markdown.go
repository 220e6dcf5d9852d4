// Package markdown renders the console's help overlay with glamour. The
// overlay box draws its own border and padding, so documents render flush.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Style names accepted by ui.markdown_style.
const (
	StyleDark  = "dark"
	StyleLight = "light"
)

const flushDocument = `{"document": {"margin": 0, "block_prefix": "", "block_suffix": ""}}`

// Renderer renders markdown at a fixed wrap width in one named style.
type Renderer struct {
	tr    *glamour.TermRenderer
	width int
	style string
}

// New creates a renderer wrapping at width. An empty style means dark.
// Auto detection is never used: it queries the terminal, which races with
// bubbletea for stdin.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = StyleDark
	}
	if style != StyleDark && style != StyleLight {
		return nil, fmt.Errorf("unknown markdown style %q", style)
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithStylesFromJSONBytes([]byte(flushDocument)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s renderer: %w", style, err)
	}
	return &Renderer{tr: tr, width: width, style: style}, nil
}

// Width is the wrap width.
func (r *Renderer) Width() int { return r.width }

// Style is the resolved style name.
func (r *Renderer) Style() string { return r.style }

// Render returns the styled document without trailing blank lines.
func (r *Renderer) Render(md string) (string, error) {
	out, err := r.tr.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
