// Package control routes control events from exactly one upstream producer
// (an input device driver) to one actuator. The producer can be swapped at
// any time; once a swap returns, the actuator sees nothing more from the
// producer it replaced.
package control

import (
	"context"
	"time"

	"github.com/zjrosen/opdeck/internal/pubsub"
)

// Event is one control sample bound for an actuator.
// Axes are normalized to [-1, 1]; Buttons is a bitmask.
type Event struct {
	Source    string
	Seq       uint64
	Axes      []float64
	Buttons   uint32
	Timestamp time.Time
}

// Pressed reports whether button n is held.
func (e Event) Pressed(n int) bool {
	if n < 0 || n > 31 {
		return false
	}
	return e.Buttons&(1<<uint(n)) != 0
}

// Axis returns axis i, or 0 when the producer reports fewer axes.
func (e Event) Axis(i int) float64 {
	if i < 0 || i >= len(e.Axes) {
		return 0
	}
	return e.Axes[i]
}

// Producer is a source of control events. Health is not part of the
// contract: a producer that is not connected simply never publishes.
type Producer interface {
	Name() string
	Subscribe(ctx context.Context) <-chan pubsub.Event[Event]
}

// Consumer is the actuator side. SetControlSource(nil) detaches the current
// producer; a non-nil producer becomes the sole source.
type Consumer interface {
	SetControlSource(p Producer)
}
