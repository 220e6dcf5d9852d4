// Package joystick provides the input device and the driver that turns its
// raw samples into control events.
package joystick

import (
	"context"

	"github.com/zjrosen/opdeck/internal/hardware"
	"github.com/zjrosen/opdeck/internal/log"
	"github.com/zjrosen/opdeck/internal/pubsub"
)

// Sample is one raw reading: axes in [-1, 1] and a button bitmask.
type Sample struct {
	Axes    []float64
	Buttons uint32
}

// Device is the joystick unit. Samples fed to a device that is not open are
// dropped, so a disconnected joystick never produces input.
type Device struct {
	name    string
	device  string
	open    bool
	axes    int
	samples *pubsub.Broker[Sample]
}

var _ hardware.Unit = (*Device)(nil)

// Open probes the joystick described by opts.
func Open(opts hardware.Opts, axes int) *Device {
	if axes <= 0 {
		axes = 2
	}
	d := &Device{
		name:    opts.Name,
		device:  opts.Device,
		open:    opts.Connected(),
		axes:    axes,
		samples: pubsub.NewBroker[Sample](),
	}
	if d.open {
		log.Info(log.CatHardware, "Joystick open", "name", d.name, "device", d.device, "axes", axes)
	} else {
		log.Warn(log.CatHardware, "Joystick not open", "name", d.name, "device", d.device)
	}
	return d
}

// Name implements hardware.Unit.
func (d *Device) Name() string { return d.name }

// IsOpen implements hardware.Unit.
func (d *Device) IsOpen() bool { return d.open }

// Axes returns the number of axes the device reports.
func (d *Device) Axes() int { return d.axes }

// Feed publishes a raw sample to every listener. It is a no-op when the
// device is not open.
func (d *Device) Feed(s Sample) {
	if !d.open {
		return
	}
	d.samples.Publish(pubsub.SampledEvent, s)
}

// Samples subscribes to raw samples for the lifetime of ctx.
func (d *Device) Samples(ctx context.Context) <-chan pubsub.Event[Sample] {
	return d.samples.Subscribe(ctx)
}

// SampleBroker exposes the raw sample broker for UI listeners.
func (d *Device) SampleBroker() *pubsub.Broker[Sample] { return d.samples }

// Close stops delivering samples.
func (d *Device) Close() { d.samples.Close() }
