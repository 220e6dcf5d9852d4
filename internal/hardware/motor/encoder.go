// Package motor is the actuator side of the console: an encoder-board
// driver that consumes control events and turns them into velocity
// commands.
package motor

import (
	"sync"
	"time"

	"github.com/zjrosen/opdeck/internal/control"
	"github.com/zjrosen/opdeck/internal/hardware"
	"github.com/zjrosen/opdeck/internal/log"
)

// Command is the velocity set-point derived from the latest control event.
type Command struct {
	Source   string
	Seq      uint64
	Velocity []float64
	At       time.Time
}

// EncoderDriver drives the motor board. It implements hardware.Unit and
// control.Consumer.
type EncoderDriver struct {
	*control.Receiver

	name     string
	device   string
	open     bool
	maxSpeed float64

	mu      sync.Mutex
	last    Command
	applied uint64
}

var (
	_ hardware.Unit    = (*EncoderDriver)(nil)
	_ control.Consumer = (*EncoderDriver)(nil)
)

// New opens the encoder board described by opts. maxSpeed scales the
// normalized axes; values <= 0 fall back to 1.
func New(opts hardware.Opts, maxSpeed float64) *EncoderDriver {
	if maxSpeed <= 0 {
		maxSpeed = 1
	}
	d := &EncoderDriver{
		name:     opts.Name,
		device:   opts.Device,
		open:     opts.Connected(),
		maxSpeed: maxSpeed,
	}
	d.Receiver = control.NewReceiver(d.apply)
	if d.open {
		log.Info(log.CatHardware, "Motor board open", "name", d.name, "device", d.device)
	} else {
		log.Warn(log.CatHardware, "Motor board not open", "name", d.name, "device", d.device)
	}
	return d
}

// Name implements hardware.Unit.
func (d *EncoderDriver) Name() string { return d.name }

// IsOpen implements hardware.Unit.
func (d *EncoderDriver) IsOpen() bool { return d.open }

func (d *EncoderDriver) apply(ev control.Event) {
	vel := make([]float64, len(ev.Axes))
	for i, a := range ev.Axes {
		vel[i] = clamp(a) * d.maxSpeed
	}
	d.mu.Lock()
	d.last = Command{Source: ev.Source, Seq: ev.Seq, Velocity: vel, At: ev.Timestamp}
	d.applied++
	d.mu.Unlock()
}

// LastCommand returns the most recent command and whether one was applied.
func (d *EncoderDriver) LastCommand() (Command, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last, d.applied > 0
}

// Applied counts control events turned into commands.
func (d *EncoderDriver) Applied() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.applied
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
