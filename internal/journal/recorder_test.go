package journal

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/opdeck/internal/journal/domain"
	"github.com/zjrosen/opdeck/internal/session"
)

// memRepo is an in-memory RunRepository.
type memRepo struct {
	runs    map[string]*domain.Run
	order   []string
	nextID  int64
	saves   int
	failErr error
}

func newMemRepo() *memRepo {
	return &memRepo{runs: make(map[string]*domain.Run)}
}

func (m *memRepo) Save(run *domain.Run) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.saves++
	if run.ID() == 0 {
		m.nextID++
		run.SetID(m.nextID)
		m.order = append(m.order, run.GUID())
	}
	m.runs[run.GUID()] = run
	return nil
}

func (m *memRepo) FindByGUID(guid string) (*domain.Run, error) {
	run, ok := m.runs[guid]
	if !ok {
		return nil, &domain.RunNotFoundError{GUID: guid}
	}
	return run, nil
}

func (m *memRepo) List(filter domain.ListFilter) ([]*domain.Run, error) {
	var out []*domain.Run
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, m.runs[m.order[i]])
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (m *memRepo) Close() error { return nil }

func newTestRecorder(repo *memRepo) *Recorder {
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	n := 0
	return NewRecorder(repo, "bench",
		WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
		WithGUIDs(func() string {
			n++
			return fmt.Sprintf("run-%d", n)
		}),
	)
}

func TestRecorder_FullLifecycle(t *testing.T) {
	repo := newMemRepo()
	rec := newTestRecorder(repo)
	m := session.NewMachine()

	require.NoError(t, rec.SessionChanged(m.PressPlay()))
	require.NotNil(t, rec.Current())
	require.Equal(t, "run-1", rec.Current().GUID())

	require.NoError(t, rec.SessionChanged(m.PressPlay()))
	require.Equal(t, domain.RunStatePaused, rec.Current().State())

	require.NoError(t, rec.SessionChanged(m.PressPlay()))
	require.Equal(t, domain.RunStateRunning, rec.Current().State())

	require.NoError(t, rec.SessionChanged(m.PressStop()))
	require.Nil(t, rec.Current())

	run, err := repo.FindByGUID("run-1")
	require.NoError(t, err)
	require.Equal(t, domain.RunStateStopped, run.State())
	require.Equal(t, 1, run.Pauses())
	require.Equal(t, 3*time.Second, run.Duration(time.Time{}))
}

func TestRecorder_IgnoresUnchangedTransitions(t *testing.T) {
	repo := newMemRepo()
	rec := newTestRecorder(repo)
	m := session.NewMachine()

	require.NoError(t, rec.SessionChanged(m.PressStop()))
	require.Zero(t, repo.saves)
	require.Nil(t, rec.Current())
}

func TestRecorder_ControlSourceCarriesIntoNewRun(t *testing.T) {
	repo := newMemRepo()
	rec := newTestRecorder(repo)
	m := session.NewMachine()

	require.NoError(t, rec.ControlSourceChanged("Joystick"))
	require.Zero(t, repo.saves)

	require.NoError(t, rec.SessionChanged(m.PressPlay()))
	require.Equal(t, "Joystick", rec.Current().ControlSource())

	require.NoError(t, rec.ControlSourceChanged(""))
	require.Empty(t, rec.Current().ControlSource())
	require.Equal(t, 2, repo.saves)
}

func TestRecorder_EachStartCreatesNewRun(t *testing.T) {
	repo := newMemRepo()
	rec := newTestRecorder(repo)
	m := session.NewMachine()

	for i := 0; i < 3; i++ {
		require.NoError(t, rec.SessionChanged(m.PressPlay()))
		require.NoError(t, rec.SessionChanged(m.PressStop()))
	}

	runs, err := rec.Recent(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "run-3", runs[0].GUID())
	require.Equal(t, "run-2", runs[1].GUID())
}

func TestRecorder_SaveErrorIsWrapped(t *testing.T) {
	repo := newMemRepo()
	repo.failErr = errors.New("disk full")
	rec := newTestRecorder(repo)

	err := rec.SessionChanged(session.Transition{From: session.Idle, To: session.Running, Changed: true})
	require.Error(t, err)
	require.ErrorIs(t, err, repo.failErr)
	require.Contains(t, err.Error(), "starting run")
	require.Nil(t, rec.Current())
}

func TestRecorder_TransitionWithoutRunIsIgnored(t *testing.T) {
	repo := newMemRepo()
	rec := newTestRecorder(repo)

	err := rec.SessionChanged(session.Transition{From: session.Running, To: session.Paused, Changed: true})
	require.NoError(t, err)
	require.Zero(t, repo.saves)
}
