package panel

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/opdeck/internal/hardware/joystick"
	"github.com/zjrosen/opdeck/internal/registry"
	"github.com/zjrosen/opdeck/internal/ui/styles"
)

const maxButtons = 8

var axisNames = []string{"X", "Y", "Z", "R"}

// Joystick visualizes the latest raw sample of the input device.
// Observe and View run on the UI loop.
type Joystick struct {
	base
	axes    int
	sample  joystick.Sample
	samples uint64
}

var _ Panel = (*Joystick)(nil)

// NewJoystickFactory builds joystick panels showing axes axes.
func NewJoystickFactory(axes int) registry.PanelFactory {
	return func(name string) registry.Panel {
		j := &Joystick{axes: max(axes, 1)}
		j.init(name)
		return j
	}
}

// Variant implements registry.Panel.
func (j *Joystick) Variant() registry.Variant { return registry.VariantJoystick }

// Observe records a raw sample.
func (j *Joystick) Observe(s joystick.Sample) {
	j.sample = s
	j.samples++
}

// Samples counts observed samples.
func (j *Joystick) Samples() uint64 { return j.samples }

// View renders one bar per axis and the button row.
func (j *Joystick) View(width, height int, focused bool) string {
	barWidth := max(width-14, 5)
	lines := make([]string, 0, j.axes+2)
	for i := range j.axes {
		v := 0.0
		if i < len(j.sample.Axes) {
			v = j.sample.Axes[i]
		}
		lines = append(lines, fmt.Sprintf("%-2s %s %+.2f", axisName(i), axisBar(v, barWidth), v))
	}
	lines = append(lines, "", j.buttonRow())
	if j.samples == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("waiting for input"))
	}
	return styles.RenderWithTitleBorder(strings.Join(lines, "\n"), j.Title(), width, height, focused)
}

func (j *Joystick) buttonRow() string {
	var b strings.Builder
	b.WriteString("btn")
	for n := range maxButtons {
		if j.sample.Buttons&(1<<uint(n)) != 0 {
			b.WriteString(" ●")
		} else {
			b.WriteString(" ○")
		}
	}
	return b.String()
}

func axisName(i int) string {
	if i < len(axisNames) {
		return axisNames[i]
	}
	return fmt.Sprintf("A%d", i)
}

// axisBar draws a track of width cells with a marker at v in [-1, 1].
// NaN is drawn centered.
func axisBar(v float64, width int) string {
	if math.IsNaN(v) {
		v = 0
	}
	v = min(max(v, -1), 1)
	pos := int((v + 1) / 2 * float64(width-1))
	cells := []rune(strings.Repeat("─", width))
	cells[width/2] = '┼'
	cells[pos] = '●'
	return string(cells)
}
