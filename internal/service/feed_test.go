package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFeedDeliversToAllSubscribers(t *testing.T) {
	feed := NewTemplateFeed(zap.NewNop())
	defer feed.Close()

	first, stopFirst := feed.Subscribe(2)
	second, stopSecond := feed.Subscribe(2)
	defer stopFirst()
	defer stopSecond()

	feed.Publish(TemplateEvent{Kind: TemplateCreated, TemplateID: 1, Weekday: 1})

	for _, events := range []<-chan TemplateEvent{first, second} {
		select {
		case event := <-events:
			assert.Equal(t, TemplateCreated, event.Kind)
			assert.Equal(t, uint(1), event.TemplateID)
		default:
			t.Fatal("expected a delivered event")
		}
	}
}

func TestFeedUnsubscribeClosesChannel(t *testing.T) {
	feed := NewTemplateFeed(zap.NewNop())
	defer feed.Close()

	events, stop := feed.Subscribe(1)
	stop()

	_, open := <-events
	assert.False(t, open)

	// Publishing after unsubscribe must not panic.
	feed.Publish(TemplateEvent{Kind: TemplateUpdated, TemplateID: 2, Weekday: 3})

	// A second stop is a no-op.
	stop()
}

func TestFeedFullBufferDropsEventWithoutBlocking(t *testing.T) {
	feed := NewTemplateFeed(zap.NewNop())
	defer feed.Close()

	events, stop := feed.Subscribe(1)
	defer stop()

	feed.Publish(TemplateEvent{Kind: TemplateCreated, TemplateID: 1, Weekday: 1})
	feed.Publish(TemplateEvent{Kind: TemplateCreated, TemplateID: 2, Weekday: 1}) // dropped

	event := <-events
	assert.Equal(t, uint(1), event.TemplateID)
	select {
	case extra := <-events:
		t.Fatalf("unexpected extra event: %+v", extra)
	default:
	}
}

func TestFeedCloseTerminatesSubscribers(t *testing.T) {
	feed := NewTemplateFeed(zap.NewNop())
	events, stop := feed.Subscribe(1)
	defer stop()

	feed.Close()
	_, open := <-events
	require.False(t, open)

	// Subscribing after close yields an already-closed channel.
	late, stopLate := feed.Subscribe(1)
	defer stopLate()
	_, open = <-late
	assert.False(t, open)
}
