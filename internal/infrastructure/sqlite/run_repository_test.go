package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/opdeck/internal/journal/domain"
)

// setupTestRepo creates a new DB and returns the run repository.
func setupTestRepo(t *testing.T) domain.RunRepository {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { db.Close() })
	return db.RunRepository()
}

func TestRunRepository_SaveInsertAndFind(t *testing.T) {
	repo := setupTestRepo(t)
	start := time.Now().Truncate(time.Millisecond)

	run := domain.NewRun("guid-1", "bench-a", start)
	require.NoError(t, repo.Save(run))
	require.Greater(t, run.ID(), int64(0))

	found, err := repo.FindByGUID("guid-1")
	require.NoError(t, err)
	require.Equal(t, run.ID(), found.ID())
	require.Equal(t, "bench-a", found.Console())
	require.Equal(t, domain.RunStateRunning, found.State())
	require.True(t, start.Equal(found.StartedAt()))
	require.Nil(t, found.StoppedAt())
	require.Empty(t, found.ControlSource())
}

func TestRunRepository_SaveUpdate(t *testing.T) {
	repo := setupTestRepo(t)
	start := time.Now().Truncate(time.Millisecond)

	run := domain.NewRun("guid-1", "bench-a", start)
	require.NoError(t, repo.Save(run))

	require.NoError(t, run.MarkPaused(start.Add(time.Second)))
	run.SetControlSource("Joystick", start.Add(2*time.Second))
	require.NoError(t, repo.Save(run))

	found, err := repo.FindByGUID("guid-1")
	require.NoError(t, err)
	require.Equal(t, domain.RunStatePaused, found.State())
	require.Equal(t, 1, found.Pauses())
	require.Equal(t, "Joystick", found.ControlSource())
	require.NotNil(t, found.PausedAt())

	require.NoError(t, run.MarkStopped(start.Add(time.Minute)))
	require.NoError(t, repo.Save(run))

	found, err = repo.FindByGUID("guid-1")
	require.NoError(t, err)
	require.Equal(t, domain.RunStateStopped, found.State())
	require.NotNil(t, found.StoppedAt())
	require.Nil(t, found.PausedAt())
	require.Equal(t, time.Minute, found.Duration(time.Now()))
}

func TestRunRepository_FindByGUID_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindByGUID("missing")
	var notFound *domain.RunNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "missing", notFound.GUID)
}

func TestRunRepository_ListNewestFirstWithFilter(t *testing.T) {
	repo := setupTestRepo(t)
	base := time.Now().Add(-time.Hour).Truncate(time.Millisecond)

	for i := 0; i < 4; i++ {
		run := domain.NewRun(uuid.NewString(), "bench", base.Add(time.Duration(i)*time.Minute))
		if i%2 == 0 {
			require.NoError(t, run.MarkStopped(base.Add(time.Duration(i)*time.Minute+time.Second)))
		}
		require.NoError(t, repo.Save(run))
	}

	all, err := repo.List(domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		require.True(t, all[i-1].StartedAt().After(all[i].StartedAt()), "newest first")
	}

	stopped, err := repo.List(domain.ListFilter{State: domain.RunStateStopped})
	require.NoError(t, err)
	require.Len(t, stopped, 2)

	limited, err := repo.List(domain.ListFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, all[0].GUID(), limited[0].GUID())
}

func TestRunRepository_DuplicateGUID(t *testing.T) {
	repo := setupTestRepo(t)
	now := time.Now()
	require.NoError(t, repo.Save(domain.NewRun("dup", "bench", now)))
	require.Error(t, repo.Save(domain.NewRun("dup", "bench", now)))
}

// TestRunRepository_RoundTripProperty saves random lifecycles and checks the
// stored state matches the entity.
func TestRunRepository_RoundTripProperty(t *testing.T) {
	repo := setupTestRepo(t)

	rapid.Check(t, func(rt *rapid.T) {
		start := time.UnixMilli(rapid.Int64Range(1, 1<<40).Draw(rt, "start"))
		run := domain.NewRun(uuid.NewString(), "bench", start)
		at := start
		for _, op := range rapid.SliceOfN(rapid.IntRange(0, 2), 0, 8).Draw(rt, "ops") {
			at = at.Add(time.Second)
			switch op {
			case 0:
				_ = run.MarkPaused(at)
			case 1:
				_ = run.MarkResumed(at)
			case 2:
				run.SetControlSource(rapid.SampledFrom([]string{"", "Joystick"}).Draw(rt, "src"), at)
			}
		}
		if err := repo.Save(run); err != nil {
			rt.Fatalf("save: %v", err)
		}
		found, err := repo.FindByGUID(run.GUID())
		if err != nil {
			rt.Fatalf("find: %v", err)
		}
		if found.State() != run.State() || found.Pauses() != run.Pauses() ||
			found.ControlSource() != run.ControlSource() || !found.UpdatedAt().Equal(run.UpdatedAt()) {
			rt.Fatalf("round trip mismatch: got %+v want %+v", found, run)
		}
	})
}
