package joystick

import (
	"context"
	"math"
	"sync"

	"github.com/zjrosen/opdeck/internal/control"
	"github.com/zjrosen/opdeck/internal/log"
	"github.com/zjrosen/opdeck/internal/pubsub"
)

// Driver converts device samples into control events. It is the
// control.Producer the console binds to the motor board.
type Driver struct {
	*control.Feed

	device   *Device
	deadzone float64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewDriver creates a driver for device. Axis values with magnitude below
// deadzone are reported as zero.
func NewDriver(device *Device, deadzone float64) *Driver {
	return &Driver{
		Feed:     control.NewFeed(device.Name()),
		device:   device,
		deadzone: math.Abs(deadzone),
	}
}

// Start begins forwarding samples until ctx is cancelled or Stop is called.
// Starting an already running driver is a no-op.
func (d *Driver) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	go d.run(ctx, d.device.Samples(ctx), d.done)
	log.Debug(log.CatHardware, "Joystick driver started", "device", d.device.Name())
}

// Stop halts forwarding and waits for the forwarding goroutine to exit.
func (d *Driver) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (d *Driver) run(ctx context.Context, samples <-chan pubsub.Event[Sample], done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-samples:
			if !ok {
				return
			}
			d.Publish(d.translate(ev.Payload))
		}
	}
}

func (d *Driver) translate(s Sample) control.Event {
	axes := make([]float64, len(s.Axes))
	for i, v := range s.Axes {
		// NaN fails every comparison and would pass the deadzone.
		if math.IsNaN(v) || math.Abs(v) < d.deadzone {
			continue
		}
		axes[i] = math.Max(-1, math.Min(1, v))
	}
	return control.Event{Axes: axes, Buttons: s.Buttons}
}
