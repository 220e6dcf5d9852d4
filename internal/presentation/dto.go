package presentation

import (
	"time"

	"github.com/zjrosen/opdeck/internal/journal/domain"
	"github.com/zjrosen/opdeck/internal/registry"
)

// UnitDTO represents a registered hardware unit for presentation
type UnitDTO struct {
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
	Panel     string `json:"panel"`
}

// FromUnit converts a registry snapshot to a DTO.
func FromUnit(u registry.UnitInfo, variant registry.Variant) UnitDTO {
	return UnitDTO{Name: u.Name, Connected: u.Connected, Panel: variant.String()}
}

// RunDTO represents a recorded session run for presentation
type RunDTO struct {
	GUID          string     `json:"guid"`
	Console       string     `json:"console"`
	State         string     `json:"state"`
	ControlSource string     `json:"control_source,omitempty"`
	Pauses        int        `json:"pauses"`
	StartedAt     time.Time  `json:"started_at"`
	StoppedAt     *time.Time `json:"stopped_at,omitempty"`
	DurationSec   float64    `json:"duration_seconds"`
}

// FromDomainRuns converts runs to DTOs. now bounds the duration of runs
// that are still active.
func FromDomainRuns(runs []*domain.Run, now time.Time) []RunDTO {
	out := make([]RunDTO, 0, len(runs))
	for _, r := range runs {
		out = append(out, RunDTO{
			GUID:          r.GUID(),
			Console:       r.Console(),
			State:         r.State().String(),
			ControlSource: r.ControlSource(),
			Pauses:        r.Pauses(),
			StartedAt:     r.StartedAt(),
			StoppedAt:     r.StoppedAt(),
			DurationSec:   r.Duration(now).Seconds(),
		})
	}
	return out
}
