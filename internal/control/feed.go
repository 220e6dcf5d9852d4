package control

import (
	"context"

	"github.com/zjrosen/opdeck/internal/pubsub"
)

// Feed is a named Producer backed by a pubsub broker. Drivers embed it and
// call Publish from their own goroutines.
type Feed struct {
	name   string
	broker *pubsub.Broker[Event]
}

var _ Producer = (*Feed)(nil)

// NewFeed creates a producer named name.
func NewFeed(name string) *Feed {
	return &Feed{name: name, broker: pubsub.NewBroker[Event]()}
}

// Name implements Producer.
func (f *Feed) Name() string { return f.name }

// Subscribe implements Producer.
func (f *Feed) Subscribe(ctx context.Context) <-chan pubsub.Event[Event] {
	return f.broker.Subscribe(ctx)
}

// Publish stamps ev with the feed name and delivers it to every subscriber.
func (f *Feed) Publish(ev Event) {
	ev.Source = f.name
	f.broker.Publish(pubsub.CommandEvent, ev)
}

// Listeners returns the number of live subscriptions.
func (f *Feed) Listeners() int { return f.broker.SubscriberCount() }

// Close ends every subscription.
func (f *Feed) Close() { f.broker.Close() }
