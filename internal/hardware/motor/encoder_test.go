package motor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/opdeck/internal/control"
	"github.com/zjrosen/opdeck/internal/hardware"
)

func TestEncoderDriver_OpenState(t *testing.T) {
	sim := New(hardware.Opts{Name: "Motor Board", Simulate: true}, 2)
	defer sim.Close()
	require.True(t, sim.IsOpen())
	require.Equal(t, "Motor Board", sim.Name())

	missing := New(hardware.Opts{Name: "Motor Board", Device: "/nonexistent/ttyUSB0"}, 2)
	defer missing.Close()
	require.False(t, missing.IsOpen())
}

func TestEncoderDriver_AppliesScaledClampedCommands(t *testing.T) {
	d := New(hardware.Opts{Name: "Motor Board", Simulate: true}, 2)
	defer d.Close()

	_, ok := d.LastCommand()
	require.False(t, ok)

	feed := control.NewFeed("joystick")
	control.NewLink(d).Bind(feed)
	feed.Publish(control.Event{Axes: []float64{0.5, -3}})

	require.Eventually(t, func() bool { return d.Applied() == 1 }, time.Second, time.Millisecond)
	cmd, ok := d.LastCommand()
	require.True(t, ok)
	require.Equal(t, "joystick", cmd.Source)
	require.InDeltaSlice(t, []float64{1, -2}, cmd.Velocity, 1e-9)
	require.NotZero(t, cmd.Seq)
}

func TestEncoderDriver_DefaultMaxSpeed(t *testing.T) {
	d := New(hardware.Opts{Name: "m", Simulate: true}, 0)
	defer d.Close()
	require.Equal(t, 1.0, d.maxSpeed)
}
