package metrics

import (
	"context"

	"github.com/mintforge/packvault/internal/domain"
	"github.com/mintforge/packvault/internal/event"
)

// EventMetricsCollector subscribes to allocation events and records business
// metrics. It deduplicates by allocation ID so redelivered events do not
// double-count.
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// DedupWindow bounds the number of allocation IDs remembered for
// deduplication.
const DedupWindow = 4096

// Register subscribes to allocation events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	settled, err := event.Deduplicate(DedupWindow, e.handleSettled)
	if err != nil {
		return err
	}
	bus.Subscribe(event.AllocationSettled, settled)
	return nil
}

func (e *EventMetricsCollector) handleSettled(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.AllocationSettledPayload)
	if !ok {
		return nil
	}

	if payload.SerialNumber != nil {
		SerialsMinted.WithLabelValues(payload.ItemID).Inc()
	}
	return nil
}
