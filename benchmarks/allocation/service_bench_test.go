package allocation_bench

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/mintforge/packvault/internal/allocation"
	"github.com/mintforge/packvault/internal/catalog"
	"github.com/mintforge/packvault/internal/domain"
	"github.com/mintforge/packvault/internal/event"
	"github.com/mintforge/packvault/internal/ledger"
)

// nopPublisher drops events so publish cost stays out of the measurement.
type nopPublisher struct{}

func (nopPublisher) PublishWithRetry(context.Context, event.Event) {}

const benchPackPrice = 25

func newBenchService(b *testing.B) (allocation.Service, *ledger.Memory) {
	b.Helper()

	store := ledger.NewMemory()
	store.AddPack(domain.Pack{
		ID:          "pack-bench",
		Name:        "Benchmark Pack",
		Price:       benchPackPrice,
		WeightTotal: 100,
		Active:      true,
		Version:     1,
		Weights: []domain.RarityWeight{
			{Rarity: domain.RarityCommon, Weight: 60},
			{Rarity: domain.RarityUncommon, Weight: 25},
			{Rarity: domain.RarityRare, Weight: 10},
			{Rarity: domain.RarityEpic, Weight: 4},
			{Rarity: domain.RarityLegendary, Weight: 1},
		},
	}, "item-common", "item-uncommon", "item-rare", "item-epic", "item-legendary")

	for _, item := range []struct {
		id   string
		tier domain.RarityTier
	}{
		{"item-common", domain.RarityCommon},
		{"item-uncommon", domain.RarityUncommon},
		{"item-rare", domain.RarityRare},
		{"item-epic", domain.RarityEpic},
		{"item-legendary", domain.RarityLegendary},
	} {
		store.AddItem(domain.ItemDefinition{
			ID:     item.id,
			Name:   item.id,
			Rarity: item.tier,
			Policy: domain.ScarcityUnlimited,
			Active: true,
		})
	}

	cat, err := catalog.NewService(store)
	if err != nil {
		b.Fatalf("failed to build catalog service: %v", err)
	}

	return allocation.NewService(cat, store, store, nopPublisher{}), store
}

func BenchmarkOpenPack(b *testing.B) {
	svc, store := newBenchService(b)
	store.SetBalance("bench-user", (b.N+1)*benchPackPrice)

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.OpenPack(ctx, "pack-bench", "bench-user"); err != nil {
			b.Fatalf("open failed: %v", err)
		}
	}
}

func BenchmarkOpenPack_Parallel(b *testing.B) {
	svc, store := newBenchService(b)

	// One funded wallet per worker keeps the wallet row lock out of the
	// contention being measured.
	var workers atomic.Int32
	b.RunParallel(func(pb *testing.PB) {
		id := fmt.Sprintf("bench-user-%d", workers.Add(1))
		store.SetBalance(id, (b.N+1)*benchPackPrice)

		ctx := context.Background()
		for pb.Next() {
			if _, err := svc.OpenPack(ctx, "pack-bench", id); err != nil {
				b.Fatalf("open failed: %v", err)
			}
		}
	})
}
