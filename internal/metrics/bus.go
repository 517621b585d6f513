package metrics

import (
	"context"

	"github.com/mintforge/packvault/internal/event"
)

// InstrumentedBus decorates an event bus with publish counters.
type InstrumentedBus struct {
	inner event.Bus
}

// InstrumentBus wraps a bus so every publish outcome is counted.
func InstrumentBus(inner event.Bus) *InstrumentedBus {
	return &InstrumentedBus{inner: inner}
}

// Publish delegates and counts the outcome per event type.
func (b *InstrumentedBus) Publish(ctx context.Context, e event.Event) error {
	err := b.inner.Publish(ctx, e)
	if err != nil {
		EventHandlerErrors.WithLabelValues(string(e.Type)).Inc()
		return err
	}
	EventsPublished.WithLabelValues(string(e.Type)).Inc()
	return nil
}

// Subscribe delegates to the inner bus.
func (b *InstrumentedBus) Subscribe(eventType event.Type, handler event.Handler) {
	b.inner.Subscribe(eventType, handler)
}

// CountDeadLetter records an event that exhausted its publish retries.
// Passed to the publisher as its dead-letter hook.
func CountDeadLetter(e event.Event) {
	EventsDeadLettered.WithLabelValues(string(e.Type)).Inc()
}
