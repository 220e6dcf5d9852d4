// Package journal records operating sessions to a run repository so past
// runs can be listed from the CLI.
package journal

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/opdeck/internal/journal/domain"
	"github.com/zjrosen/opdeck/internal/log"
	"github.com/zjrosen/opdeck/internal/session"
)

// Recorder turns session transitions into persisted runs. A run is created
// when a session leaves Idle and stopped when it returns there.
type Recorder struct {
	mu      sync.Mutex
	repo    domain.RunRepository
	console string
	current *domain.Run
	source  string

	now     func() time.Time
	newGUID func() string
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithGUIDs overrides run GUID generation.
func WithGUIDs(gen func() string) Option {
	return func(r *Recorder) { r.newGUID = gen }
}

// NewRecorder creates a recorder writing runs for the named console.
func NewRecorder(repo domain.RunRepository, console string, opts ...Option) *Recorder {
	r := &Recorder{
		repo:    repo,
		console: console,
		now:     time.Now,
		newGUID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SessionChanged applies a session transition to the active run.
// Transitions that did not change state are ignored.
func (r *Recorder) SessionChanged(t session.Transition) error {
	if !t.Changed {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	at := r.now()
	switch {
	case t.From == session.Idle && t.To == session.Running:
		run := domain.NewRun(r.newGUID(), r.console, at)
		if r.source != "" {
			run.SetControlSource(r.source, at)
		}
		if err := r.repo.Save(run); err != nil {
			return fmt.Errorf("starting run: %w", err)
		}
		r.current = run
		log.Info(log.CatJournal, "Run started", "guid", run.GUID())
		return nil

	case r.current == nil:
		// Session started before the journal was attached.
		return nil

	case t.To == session.Paused:
		if err := r.current.MarkPaused(at); err != nil {
			return err
		}

	case t.From == session.Paused && t.To == session.Running:
		if err := r.current.MarkResumed(at); err != nil {
			return err
		}

	case t.To == session.Idle:
		if err := r.current.MarkStopped(at); err != nil {
			return err
		}
	}

	run := r.current
	if !run.IsActive() {
		r.current = nil
	}
	if err := r.repo.Save(run); err != nil {
		return fmt.Errorf("saving run %s: %w", run.GUID(), err)
	}
	log.Debug(log.CatJournal, "Run updated", "guid", run.GUID(), "state", run.State())
	return nil
}

// ControlSourceChanged records the producer now driving the actuator, or ""
// when detached. The value carries over into runs started later.
func (r *Recorder) ControlSourceChanged(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.source = name
	if r.current == nil {
		return nil
	}
	r.current.SetControlSource(name, r.now())
	if err := r.repo.Save(r.current); err != nil {
		return fmt.Errorf("saving run %s: %w", r.current.GUID(), err)
	}
	return nil
}

// Current returns the active run, or nil.
func (r *Recorder) Current() *domain.Run {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Recent lists up to limit runs, newest first.
func (r *Recorder) Recent(limit int) ([]*domain.Run, error) {
	return r.repo.List(domain.ListFilter{Limit: limit})
}
