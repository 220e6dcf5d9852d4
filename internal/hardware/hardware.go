// Package hardware defines the capability every console unit exposes and
// the shared probing helper used by the drivers.
package hardware

import (
	"os"

	"github.com/zjrosen/opdeck/internal/log"
)

// Unit is a discrete piece of controllable or observable hardware.
type Unit interface {
	Name() string
	IsOpen() bool
}

// Probe reports whether the device node at path exists. An empty path is
// never present.
func Probe(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		log.Debug(log.CatHardware, "Device probe failed", "device", path, "error", err)
		return false
	}
	return !info.IsDir()
}

// Opts configures a simulated or device-backed driver.
type Opts struct {
	Name     string
	Device   string
	Simulate bool
}

// Connected resolves the open state for o: simulated drivers are always
// open, real ones when their device node exists.
func (o Opts) Connected() bool {
	if o.Simulate {
		return true
	}
	return Probe(o.Device)
}
