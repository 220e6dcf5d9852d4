// Package watcher reports hardware device nodes appearing or disappearing.
// Connectivity stays a startup snapshot; these notices only tell the
// operator that a restart would see different hardware.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/opdeck/internal/hardware"
	"github.com/zjrosen/opdeck/internal/log"
	"github.com/zjrosen/opdeck/internal/pubsub"
)

// Change is published when a watched device node changes presence.
type Change struct {
	Device  string
	Present bool
}

// Watcher monitors device directories and publishes debounced Changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	broker    *pubsub.Broker[Change]

	// present is only touched by loop after Start.
	present map[string]bool

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Config holds watcher configuration options.
type Config struct {
	Devices     []string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(devices ...string) Config {
	return Config{
		Devices:     devices,
		DebounceDur: 500 * time.Millisecond,
	}
}

// New creates a watcher for the given device paths. Empty paths are skipped.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	present := make(map[string]bool, len(cfg.Devices))
	for _, dev := range cfg.Devices {
		if dev == "" {
			continue
		}
		present[filepath.Clean(dev)] = false
	}

	return &Watcher{
		fsWatcher: fsw,
		debounce:  cfg.DebounceDur,
		broker:    pubsub.NewBroker[Change](),
		present:   present,
		done:      make(chan struct{}),
	}, nil
}

// Subscribe returns a channel of device changes until ctx is cancelled or
// the watcher stops.
func (w *Watcher) Subscribe(ctx context.Context) <-chan pubsub.Event[Change] {
	return w.broker.Subscribe(ctx)
}

// Broker exposes the change broker for tea listeners.
func (w *Watcher) Broker() *pubsub.Broker[Change] {
	return w.broker
}

// Start snapshots current presence and begins watching each device's
// directory. A directory that cannot be watched is logged and skipped.
func (w *Watcher) Start() error {
	dirs := make(map[string]struct{})
	for dev := range w.present {
		w.present[dev] = hardware.Probe(dev)
		dirs[filepath.Dir(dev)] = struct{}{}
	}

	watched := 0
	for _, dir := range sortedKeys(dirs) {
		if err := w.fsWatcher.Add(dir); err != nil {
			log.Warn(log.CatWatcher, "Cannot watch device directory", "dir", dir, "error", err)
			continue
		}
		watched++
	}
	if watched == 0 && len(dirs) > 0 {
		return fmt.Errorf("no device directories could be watched")
	}

	w.wg.Add(1)
	go w.loop()
	log.Debug(log.CatWatcher, "Watching devices", "dirs", watched)
	return nil
}

// Stop terminates the watcher and closes subscriber channels.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.wg.Wait()
		w.broker.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var (
		timer   *time.Timer
		pending = make(map[string]struct{})
	)
	timerC := func() <-chan time.Time {
		if timer != nil {
			return timer.C
		}
		return nil
	}

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			dev := filepath.Clean(event.Name)
			if _, watched := w.present[dev]; !watched {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending[dev] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC():
			timer = nil
			w.flush(pending)
			pending = make(map[string]struct{})

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatWatcher, "Watcher error", "error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// flush re-probes every pending device and publishes those whose presence
// actually changed.
func (w *Watcher) flush(pending map[string]struct{}) {
	for _, dev := range sortedKeys(pending) {
		now := hardware.Probe(dev)
		if now == w.present[dev] {
			continue
		}
		w.present[dev] = now

		typ := pubsub.DeviceRemovedEvent
		if now {
			typ = pubsub.DeviceAddedEvent
		}
		log.Info(log.CatWatcher, "Device presence changed; restart to re-probe", "device", dev, "present", now)
		w.broker.Publish(typ, Change{Device: dev, Present: now})
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
