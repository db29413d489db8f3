package service

import (
	"sync"

	"go.uber.org/zap"
)

// ChangeKind classifies a template mutation.
type ChangeKind string

const (
	TemplateCreated   ChangeKind = "template.created"
	TemplateUpdated   ChangeKind = "template.updated"
	TemplateDeleted   ChangeKind = "template.deleted"
	CompletionChanged ChangeKind = "completion.changed"
)

// TemplateEvent notifies subscribers that template state changed. It carries
// no template data on purpose: consumers re-derive their view from the store
// on every event, so there is no shared mutable cache to go stale.
type TemplateEvent struct {
	Kind       ChangeKind
	TemplateID uint
	Weekday    int
}

// TemplateFeed fans template change notifications out to subscribers.
type TemplateFeed struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan TemplateEvent
	closed bool
	logger *zap.Logger
}

func NewTemplateFeed(logger *zap.Logger) *TemplateFeed {
	return &TemplateFeed{
		subs:   make(map[int]chan TemplateEvent),
		logger: logger.Named("template_feed"),
	}
}

// Subscribe registers a new subscriber and returns its event channel plus an
// unsubscribe func. The channel is closed on unsubscribe or feed close.
func (f *TemplateFeed) Subscribe(buffer int) (<-chan TemplateEvent, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if buffer < 1 {
		buffer = 1
	}
	id := f.nextID
	f.nextID++
	ch := make(chan TemplateEvent, buffer)
	if f.closed {
		close(ch)
		return ch, func() {}
	}
	f.subs[id] = ch

	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub)
		}
	}
}

// Publish delivers an event to every subscriber without blocking. A
// subscriber whose buffer is full misses the event; it will catch up on the
// next one since consumers always requery.
func (f *TemplateFeed) Publish(event TemplateEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, sub := range f.subs {
		select {
		case sub <- event:
		default:
			f.logger.Warn("subscriber buffer full, dropping event",
				zap.String("kind", string(event.Kind)),
				zap.Int("subscriber", id))
		}
	}
}

// Close closes all subscriber channels; further publishes are dropped.
func (f *TemplateFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	for id, sub := range f.subs {
		delete(f.subs, id)
		close(sub)
	}
}
