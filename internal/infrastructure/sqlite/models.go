package sqlite

import (
	"time"

	"github.com/zjrosen/opdeck/internal/journal/domain"
)

// RunModel is the row shape of the runs table. Times are Unix milliseconds.
type RunModel struct {
	ID            int64
	GUID          string
	Console       string
	State         string
	ControlSource *string
	Pauses        int
	StartedAt     int64
	PausedAt      *int64
	StoppedAt     *int64
	UpdatedAt     int64
}

func toRunModel(r *domain.Run) *RunModel {
	m := &RunModel{
		ID:        r.ID(),
		GUID:      r.GUID(),
		Console:   r.Console(),
		State:     r.State().String(),
		Pauses:    r.Pauses(),
		StartedAt: r.StartedAt().UnixMilli(),
		PausedAt:  toMillis(r.PausedAt()),
		StoppedAt: toMillis(r.StoppedAt()),
		UpdatedAt: r.UpdatedAt().UnixMilli(),
	}
	if src := r.ControlSource(); src != "" {
		m.ControlSource = &src
	}
	return m
}

func (m *RunModel) toDomain() *domain.Run {
	var src string
	if m.ControlSource != nil {
		src = *m.ControlSource
	}
	return domain.ReconstituteRun(
		m.ID,
		m.GUID, m.Console,
		domain.RunState(m.State),
		src,
		m.Pauses,
		time.UnixMilli(m.StartedAt),
		fromMillis(m.PausedAt), fromMillis(m.StoppedAt),
		time.UnixMilli(m.UpdatedAt),
	)
}

func toMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.UnixMilli()
	return &v
}

func fromMillis(v *int64) *time.Time {
	if v == nil {
		return nil
	}
	t := time.UnixMilli(*v)
	return &t
}
