package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd turns the next event on ch into a tea.Msg. The command yields
// nil when ctx ends or ch closes, and a nil ch gives a nil command, so an
// absent source simply never feeds the update loop.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			return ev
		}
	}
}

// Listener is anything the root model re-arms after each event.
type Listener interface {
	Listen() tea.Cmd
}

// ListenAll arms every listener at once. Nil listeners are skipped.
func ListenAll(ls ...Listener) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(ls))
	for _, l := range ls {
		if l == nil {
			continue
		}
		if cmd := l.Listen(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// ContinuousListener holds one broker subscription for the life of the TUI.
// The console's signal, log, device and joystick streams each get one; the
// model calls Listen (or ListenLatest) again after handling every event.
type ContinuousListener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewContinuousListener subscribes to broker until ctx ends. A nil broker
// (an optional source such as a missing watcher) yields a nil listener.
func NewContinuousListener[T any](ctx context.Context, broker *Broker[T]) *ContinuousListener[T] {
	if broker == nil {
		return nil
	}
	return &ContinuousListener[T]{ctx: ctx, ch: broker.Subscribe(ctx)}
}

// Listen waits for the next event. It is nil-safe.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	if l == nil {
		return nil
	}
	return ListenCmd(l.ctx, l.ch)
}

// ListenLatest waits for an event, then drains whatever else is already
// buffered and delivers only the newest. High-rate streams like joystick
// samples use it so a slow frame never replays stale positions.
func (l *ContinuousListener[T]) ListenLatest() tea.Cmd {
	next := l.Listen()
	if next == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := next().(Event[T])
		if !ok {
			return nil
		}
		for {
			select {
			case newer, open := <-l.ch:
				if !open {
					return ev
				}
				ev = newer
			default:
				return ev
			}
		}
	}
}
