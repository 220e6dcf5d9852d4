package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMachine_PlayPlayPlayStop(t *testing.T) {
	m := NewMachine()
	require.Equal(t, Idle, m.State())

	steps := []struct {
		press func() Transition
		want  State
		icon  Icon
		stop  bool
	}{
		{m.PressPlay, Running, IconPause, true},
		{m.PressPlay, Paused, IconPlay, true},
		{m.PressPlay, Running, IconPause, true},
		{m.PressStop, Idle, IconPlay, false},
	}
	for i, step := range steps {
		tr := step.press()
		require.True(t, tr.Changed, "step %d", i)
		require.Equal(t, step.want, tr.To, "step %d", i)
		require.Equal(t, step.want, m.State(), "step %d", i)
		assert.Equal(t, Affordances{PlayIcon: step.icon, StopVisible: step.stop}, m.Affordances(), "step %d", i)
	}
}

func TestMachine_StopFromIdleIsNoop(t *testing.T) {
	m := NewMachine()
	tr := m.PressStop()
	require.Equal(t, Transition{From: Idle, To: Idle, Changed: false}, tr)
	require.Equal(t, Idle, m.State())
}

func TestMachine_StopFromPaused(t *testing.T) {
	m := NewMachine()
	m.PressPlay()
	m.PressPlay()
	require.Equal(t, Paused, m.State())

	tr := m.PressStop()
	require.Equal(t, Transition{From: Paused, To: Idle, Changed: true}, tr)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "paused", Paused.String())
	assert.Equal(t, "play", IconPlay.String())
	assert.Equal(t, "pause", IconPause.String())
}

// TestMachine_Properties checks, over random press sequences, that Paused is
// only ever entered from Running and stop from Idle changes nothing.
func TestMachine_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := NewMachine()
		presses := rapid.SliceOfN(rapid.Bool(), 0, 100).Draw(rt, "presses")
		for _, play := range presses {
			before := m.State()
			var tr Transition
			if play {
				tr = m.PressPlay()
			} else {
				tr = m.PressStop()
			}
			if tr.From != before || tr.To != m.State() {
				rt.Fatalf("transition %+v does not match states %v -> %v", tr, before, m.State())
			}
			if tr.To == Paused && tr.Changed && tr.From != Running {
				rt.Fatalf("entered Paused from %v", tr.From)
			}
			if !play && before == Idle && tr.Changed {
				rt.Fatalf("stop from Idle changed state to %v", tr.To)
			}
			if tr.To == Idle && tr.Changed && play {
				rt.Fatalf("play returned to Idle")
			}
			if tr.Changed == (tr.From == tr.To) {
				rt.Fatalf("Changed flag wrong: %+v", tr)
			}
		}
	})
}
