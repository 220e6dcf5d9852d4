package control

import (
	"context"
	"sync"

	"github.com/zjrosen/opdeck/internal/pubsub"
)

// Handler receives control events on the receiver's pump goroutine.
// It must not call back into the Receiver.
type Handler func(Event)

// Receiver is a Consumer that pumps events from the bound producer into a
// Handler. SetControlSource joins the old pump before starting a new one, so
// after it returns the handler is never invoked for the previous producer.
type Receiver struct {
	mu         sync.Mutex
	handler    Handler
	cancel     context.CancelFunc
	done       chan struct{}
	source     string
	generation uint64
}

var _ Consumer = (*Receiver)(nil)

// NewReceiver creates a receiver that calls h for every delivered event.
func NewReceiver(h Handler) *Receiver {
	return &Receiver{handler: h}
}

// SetControlSource detaches the current producer, waits for its pump to
// exit, then attaches p (if non-nil).
func (r *Receiver) SetControlSource(p Producer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
		<-r.done
		r.cancel = nil
		r.done = nil
		r.source = ""
	}
	if p == nil {
		return
	}

	r.generation++
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	r.source = p.Name()

	go r.pump(ctx, p.Subscribe(ctx), done)
}

// Source returns the name of the attached producer, or "" when detached.
func (r *Receiver) Source() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.source
}

// Generation counts attachments; it changes on every non-nil bind.
func (r *Receiver) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// Close detaches any producer.
func (r *Receiver) Close() {
	r.SetControlSource(nil)
}

func (r *Receiver) pump(ctx context.Context, ch <-chan pubsub.Event[Event], done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			// select picks randomly among ready cases; re-check so a
			// detach that raced with a ready event wins.
			if ctx.Err() != nil {
				return
			}
			payload := ev.Payload
			if payload.Seq == 0 {
				payload.Seq = ev.Seq
			}
			if payload.Timestamp.IsZero() {
				payload.Timestamp = ev.Timestamp
			}
			r.handler(payload)
		}
	}
}
