package allocation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mintforge/packvault/internal/domain"
	"github.com/mintforge/packvault/internal/event"
	"github.com/mintforge/packvault/internal/repository"
)

// seqSource replays a scripted sequence of draws, cycling when it runs out.
// Each sample is clamped to the requested range so scripts stay readable.
type seqSource struct {
	samples []int
	idx     int
}

func (s *seqSource) IntN(n int) int {
	v := s.samples[s.idx%len(s.samples)]
	s.idx++
	if v >= n {
		v = n - 1
	}
	return v
}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *capturePublisher) PublishWithRetry(_ context.Context, e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *capturePublisher) Events() []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]event.Event(nil), p.events...)
}

// conflictAllocator fails BeginTx with a serialization conflict a fixed
// number of times before delegating to the real allocator.
type conflictAllocator struct {
	inner    repository.Allocator
	mu       sync.Mutex
	failures int
	attempts int
}

func (a *conflictAllocator) BeginTx(ctx context.Context) (repository.AllocationTx, error) {
	a.mu.Lock()
	a.attempts++
	fail := a.failures > 0
	if fail {
		a.failures--
	}
	a.mu.Unlock()

	if fail {
		return nil, fmt.Errorf("%w: could not serialize access", domain.ErrTemporaryConflict)
	}
	return a.inner.BeginTx(ctx)
}

func (a *conflictAllocator) ListAllocations(ctx context.Context, userID string, limit int) ([]domain.AllocationRecord, error) {
	return a.inner.ListAllocations(ctx, userID, limit)
}

// raceAllocator makes TryReserve lose the race for one item a fixed number
// of times, simulating another transaction grabbing the last copy between
// candidate resolution and reservation.
type raceAllocator struct {
	inner    repository.Allocator
	failItem string
	mu       sync.Mutex
	failures int
}

func (a *raceAllocator) BeginTx(ctx context.Context) (repository.AllocationTx, error) {
	tx, err := a.inner.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &raceTx{AllocationTx: tx, parent: a}, nil
}

func (a *raceAllocator) ListAllocations(ctx context.Context, userID string, limit int) ([]domain.AllocationRecord, error) {
	return a.inner.ListAllocations(ctx, userID, limit)
}

type raceTx struct {
	repository.AllocationTx
	parent *raceAllocator
}

func (t *raceTx) TryReserve(ctx context.Context, itemID string) (int, error) {
	t.parent.mu.Lock()
	lose := itemID == t.parent.failItem && t.parent.failures > 0
	if lose {
		t.parent.failures--
	}
	t.parent.mu.Unlock()

	if lose {
		return 0, fmt.Errorf("%w: %s", domain.ErrExhausted, itemID)
	}
	return t.AllocationTx.TryReserve(ctx, itemID)
}

// sleepRecorder captures backoff delays instead of sleeping.
type sleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *sleepRecorder) Sleep(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, d)
}

func (r *sleepRecorder) Delays() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.delays...)
}
