package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/zjrosen/opdeck/internal/config"
	"github.com/zjrosen/opdeck/internal/console"
	"github.com/zjrosen/opdeck/internal/hardware"
	"github.com/zjrosen/opdeck/internal/hardware/joystick"
	"github.com/zjrosen/opdeck/internal/hardware/motor"
	"github.com/zjrosen/opdeck/internal/infrastructure/sqlite"
	"github.com/zjrosen/opdeck/internal/journal"
	"github.com/zjrosen/opdeck/internal/ui/panel"
	"github.com/zjrosen/opdeck/internal/ui/styles"
)

// rig holds the opened drivers.
type rig struct {
	motor  *motor.EncoderDriver
	device *joystick.Device
	driver *joystick.Driver
}

// openRig probes both units. Neither failing to open is an error; the unit
// is registered as disconnected.
func openRig(hw config.HardwareConfig) *rig {
	m := motor.New(hardware.Opts{
		Name:     hw.Motor.Name,
		Device:   hw.Motor.Device,
		Simulate: hw.Motor.Simulate,
	}, hw.Motor.MaxSpeed)
	dev := joystick.Open(hardware.Opts{
		Name:     hw.Joystick.Name,
		Device:   hw.Joystick.Device,
		Simulate: hw.Joystick.Simulate,
	}, hw.Joystick.Axes)
	return &rig{motor: m, device: dev, driver: joystick.NewDriver(dev, hw.Joystick.Deadzone)}
}

func (r *rig) close() {
	r.driver.Stop()
	r.device.Close()
	r.motor.Close()
}

func newConsole(r *rig, hw config.HardwareConfig, opts ...console.Option) *console.Console {
	opts = append(opts, console.WithPanelFactory(hw.Joystick.Name, panel.NewJoystickFactory(hw.Joystick.Axes)))
	return console.New(
		console.Hardware{Actuator: r.motor, InputDevice: r.device, InputProducer: r.driver},
		panel.NewGenericFactory(motorStatus(r.motor)),
		opts...,
	)
}

// motorStatus describes the motor board for its generic panel.
func motorStatus(m *motor.EncoderDriver) panel.StatusFunc {
	return func(unit string) []string {
		if unit != m.Name() {
			return []string{"No status reported"}
		}
		state := "connected"
		if !m.IsOpen() {
			state = "not connected"
		}
		lines := []string{"Board " + state}
		source := m.Source()
		if source == "" {
			source = "none"
		}
		lines = append(lines, "Control source: "+source)
		cmd, ok := m.LastCommand()
		if !ok {
			return append(lines, "No commands applied")
		}
		vel := make([]string, len(cmd.Velocity))
		for i, v := range cmd.Velocity {
			vel[i] = fmt.Sprintf("%+.2f", v)
		}
		return append(lines,
			fmt.Sprintf("Commands applied: %d", m.Applied()),
			"Velocity: "+strings.Join(vel, " "),
			"From: "+cmd.Source,
		)
	}
}

// openJournal opens the sqlite journal and returns a recorder plus its
// cleanup.
func openJournal(c config.Config) (*journal.Recorder, func(), error) {
	db, err := sqlite.NewDB(c.Journal.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening journal: %w", err)
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "opdeck"
	}
	rec := journal.NewRecorder(db.RunRepository(), host)
	return rec, func() { _ = db.Close() }, nil
}

func applyTheme(t config.ThemeConfig) {
	styles.ApplyTheme(t.Highlight, t.Error, t.Success)
}
