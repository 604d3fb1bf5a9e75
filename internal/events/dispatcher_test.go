package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcherFansOutToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var got []string
	dispatcher.Subscribe(EventListingCreated, func(_ context.Context, event Event) error {
		got = append(got, string(event.Type))
		return nil
	})
	dispatcher.Subscribe(EventListingCreated, func(_ context.Context, event Event) error {
		got = append(got, string(event.Type))
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventListingCreated})
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestDispatcherIgnoresHandlerErrors(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(EventReportFiled, func(context.Context, Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventReportFiled, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventReportFiled})
	require.NoError(t, err)
	require.True(t, called)
}

func TestDispatcherUnsubscribedTypeIsNoop(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventMessageSent}))
}
