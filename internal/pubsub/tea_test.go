package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReceivesEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	broker.Publish(SignalEvent, "panel opened")

	msg := ListenCmd(ctx, ch)()

	event, ok := msg.(Event[string])
	require.True(t, ok, "msg should be Event[string]")
	require.Equal(t, "panel opened", event.Payload)
	require.Equal(t, SignalEvent, event.Type)
}

func TestListenCmd_ContextCancelled(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	require.Nil(t, ListenCmd(ctx, ch)(), "should return nil when context cancelled")
}

func TestListenCmd_ChannelClosed(t *testing.T) {
	broker := NewBroker[string]()
	ch := broker.Subscribe(context.Background())
	broker.Close()

	require.Nil(t, ListenCmd(context.Background(), ch)())
}

func TestContinuousListener_ListensRepeatedly(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener(ctx, broker)
	broker.Publish(SampledEvent, 1)
	broker.Publish(SampledEvent, 2)

	first := listener.Listen()().(Event[int])
	second := listener.Listen()().(Event[int])
	require.Equal(t, 1, first.Payload)
	require.Equal(t, 2, second.Payload)
}

func TestContinuousListener_NilBroker(t *testing.T) {
	listener := NewContinuousListener[int](context.Background(), nil)
	require.Nil(t, listener)
	require.Nil(t, listener.Listen())
}

func TestListenCmd_NilChannel(t *testing.T) {
	require.Nil(t, ListenCmd[int](context.Background(), nil))
}

func TestContinuousListener_ListenLatestSkipsBacklog(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener(ctx, broker)
	for i := 1; i <= 5; i++ {
		broker.Publish(SampledEvent, i)
	}

	ev := listener.ListenLatest()().(Event[int])
	require.Equal(t, 5, ev.Payload)

	broker.Publish(SampledEvent, 6)
	ev = listener.ListenLatest()().(Event[int])
	require.Equal(t, 6, ev.Payload)
}

func TestContinuousListener_ListenLatestCancelled(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	listener := NewContinuousListener(ctx, broker)
	cancel()
	require.Nil(t, listener.ListenLatest()())

	var none *ContinuousListener[int]
	require.Nil(t, none.ListenLatest())
}

func TestListenAll_SkipsNilListeners(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var missing *ContinuousListener[string]
	require.Nil(t, ListenAll(missing, nil))

	listener := NewContinuousListener(ctx, broker)
	broker.Publish(SampledEvent, 7)
	msg := ListenAll(missing, listener)()
	require.Equal(t, 7, msg.(Event[int]).Payload)
}
