// Package panel implements the monitor panels opened from the hardware
// list. Each panel is bound to one unit and satisfies registry.Panel.
package panel

import (
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/opdeck/internal/registry"
	"github.com/zjrosen/opdeck/internal/ui/styles"
)

// Panel is the presentation side of a monitor panel.
type Panel interface {
	registry.Panel
	Unit() string
	// Destroy tears the panel down without telling the registry.
	Destroy()
	View(width, height int, focused bool) string
}

// StatusFunc supplies the body lines of a generic panel.
type StatusFunc func(unit string) []string

type base struct {
	id        string
	unit      string
	destroyed atomic.Bool
}

func (b *base) init(unit string) {
	b.id = uuid.NewString()
	b.unit = unit
}

func (b *base) ID() string      { return b.id }
func (b *base) Title() string   { return b.unit }
func (b *base) Unit() string    { return b.unit }
func (b *base) Destroy()        { b.destroyed.Store(true) }
func (b *base) Destroyed() bool { return b.destroyed.Load() }

// Generic shows free-form status lines for any unit.
type Generic struct {
	base
	status StatusFunc
}

var _ Panel = (*Generic)(nil)

// NewGenericFactory builds generic panels whose body comes from status.
func NewGenericFactory(status StatusFunc) registry.PanelFactory {
	return func(name string) registry.Panel {
		g := &Generic{status: status}
		g.init(name)
		return g
	}
}

// Variant implements registry.Panel.
func (g *Generic) Variant() registry.Variant { return registry.VariantGeneric }

// View renders the panel in a titled box of the given outer size.
func (g *Generic) View(width, height int, focused bool) string {
	var lines []string
	if g.status != nil {
		lines = g.status(g.unit)
	}
	if len(lines) == 0 {
		lines = []string{"No status reported"}
	}
	body := wordwrap.String(strings.Join(lines, "\n"), max(width-4, 1))
	return styles.RenderWithTitleBorder(body, g.Title(), width, height, focused)
}
