package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mintforge/packvault/internal/domain"
)

// Type represents the type of an event
type Type string

// Allocation event types
const (
	AllocationSettled Type = Type(domain.EventTypeAllocationSettled)
	AllocationDenied  Type = Type(domain.EventTypeAllocationDenied)
)

// Event represents a generic event in the system. Key is the idempotency
// key: delivery downstream is at-least-once, and consumers deduplicate on it.
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Key     string      `json:"key"`
	Payload interface{} `json:"payload"`
}

// NewAllocationSettledEvent builds the post-commit event for a successful
// allocation. The allocation ID doubles as the idempotency key.
func NewAllocationSettledEvent(rec domain.AllocationRecord, tier domain.RarityTier) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AllocationSettled,
		Key:     rec.AllocationID,
		Payload: domain.AllocationSettledPayload{
			AllocationID: rec.AllocationID,
			PackID:       rec.PackID,
			UserID:       rec.UserID,
			ItemID:       rec.ItemID,
			Rarity:       string(tier),
			SerialNumber: rec.SerialNumber,
			Amount:       rec.Amount,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewAllocationDeniedEvent builds the event for a terminal denial that
// reached the transaction boundary.
func NewAllocationDeniedEvent(rec domain.AllocationRecord) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AllocationDenied,
		Key:     rec.AllocationID,
		Payload: domain.AllocationDeniedPayload{
			AllocationID: rec.AllocationID,
			PackID:       rec.PackID,
			UserID:       rec.UserID,
			Reason:       rec.Reason,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Deduplicate wraps a handler so replays of the same event key are dropped.
// Downstream effects (stats, achievements) must not double-count when the
// publisher redelivers. Keys are remembered in a bounded LRU; size should
// comfortably exceed the redelivery window.
func Deduplicate(size int, handler Handler) (Handler, error) {
	seen, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create dedup cache: %w", err)
	}

	var mu sync.Mutex
	return func(ctx context.Context, e Event) error {
		mu.Lock()
		if _, dup := seen.Get(e.Key); dup {
			mu.Unlock()
			return nil
		}
		mu.Unlock()

		if err := handler(ctx, e); err != nil {
			return err
		}

		// Only remember keys that were handled successfully so a failed
		// delivery can be retried.
		mu.Lock()
		seen.Add(e.Key, struct{}{})
		mu.Unlock()
		return nil
	}, nil
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
