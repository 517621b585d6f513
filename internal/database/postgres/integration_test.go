package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mintforge/packvault/internal/domain"
	"github.com/mintforge/packvault/internal/repository"
)

func TestCatalogRepository_Integration(t *testing.T) {
	pool := startPostgres(t)
	repo := NewCatalogRepository(pool)
	ctx := context.Background()

	t.Run("GetPack", func(t *testing.T) {
		pack, err := repo.GetPack(ctx, "pack_bronze")
		if err != nil {
			t.Fatalf("GetPack failed: %v", err)
		}
		if pack.Price != 25 {
			t.Errorf("expected price 25, got %d", pack.Price)
		}
		if pack.WeightTotal != 100 {
			t.Errorf("expected weight total 100, got %d", pack.WeightTotal)
		}
		if len(pack.Weights) != 5 {
			t.Fatalf("expected 5 weight rows, got %d", len(pack.Weights))
		}
		// Declaration order must survive the round trip.
		if pack.Weights[0].Rarity != domain.RarityCommon || pack.Weights[4].Rarity != domain.RarityLegendary {
			t.Errorf("weights out of declaration order: %+v", pack.Weights)
		}
	})

	t.Run("GetPack_NotFound", func(t *testing.T) {
		_, err := repo.GetPack(ctx, "pack_missing")
		if !errors.Is(err, domain.ErrPackNotFound) {
			t.Errorf("expected ErrPackNotFound, got %v", err)
		}
	})

	t.Run("ListActivePacks", func(t *testing.T) {
		packs, err := repo.ListActivePacks(ctx)
		if err != nil {
			t.Fatalf("ListActivePacks failed: %v", err)
		}
		if len(packs) != 1 || packs[0].ID != "pack_bronze" {
			t.Errorf("expected the seeded bronze pack, got %+v", packs)
		}
		if len(packs[0].Weights) != 5 {
			t.Errorf("expected weights on listed packs, got %d rows", len(packs[0].Weights))
		}
	})

	t.Run("GetPackItems", func(t *testing.T) {
		items, err := repo.GetPackItems(ctx, "pack_bronze")
		if err != nil {
			t.Fatalf("GetPackItems failed: %v", err)
		}
		if len(items) != 5 {
			t.Fatalf("expected 5 items, got %d", len(items))
		}
		if items[0].ID != "item_pebble" || items[4].ID != "item_excalibur" {
			t.Errorf("items out of position order: %+v", items)
		}
		if items[4].Policy != domain.ScarcityUnique {
			t.Errorf("expected excalibur to be unique, got %s", items[4].Policy)
		}
	})

	t.Run("GetPackItems_NotFound", func(t *testing.T) {
		_, err := repo.GetPackItems(ctx, "pack_missing")
		if !errors.Is(err, domain.ErrPackNotFound) {
			t.Errorf("expected ErrPackNotFound, got %v", err)
		}
	})
}

func TestWalletRepository_Integration(t *testing.T) {
	pool := startPostgres(t)
	repo := NewWalletRepository(pool)
	ctx := context.Background()

	t.Run("GetWallet_NotFound", func(t *testing.T) {
		_, err := repo.GetWallet(ctx, "nobody")
		if !errors.Is(err, domain.ErrWalletNotFound) {
			t.Errorf("expected ErrWalletNotFound, got %v", err)
		}
	})

	t.Run("CreditCreatesAndAccumulates", func(t *testing.T) {
		balance, err := repo.CreditWallet(ctx, "wallet_user", 100)
		if err != nil {
			t.Fatalf("CreditWallet failed: %v", err)
		}
		if balance != 100 {
			t.Errorf("expected balance 100, got %d", balance)
		}

		balance, err = repo.CreditWallet(ctx, "wallet_user", 50)
		if err != nil {
			t.Fatalf("CreditWallet failed: %v", err)
		}
		if balance != 150 {
			t.Errorf("expected balance 150, got %d", balance)
		}

		w, err := repo.GetWallet(ctx, "wallet_user")
		if err != nil {
			t.Fatalf("GetWallet failed: %v", err)
		}
		if w.Balance != 150 {
			t.Errorf("expected balance 150, got %d", w.Balance)
		}
	})
}

func TestAllocatorRepository_Integration(t *testing.T) {
	pool := startPostgres(t)
	wallets := NewWalletRepository(pool)
	allocator := NewAllocatorRepository(pool)
	ctx := context.Background()

	if _, err := wallets.CreditWallet(ctx, "alloc_user", 100); err != nil {
		t.Fatalf("failed to fund wallet: %v", err)
	}

	t.Run("FullTransaction", func(t *testing.T) {
		tx, err := allocator.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}
		defer repository.SafeRollback(ctx, tx)

		w, err := tx.GetWalletForUpdate(ctx, "alloc_user")
		if err != nil {
			t.Fatalf("GetWalletForUpdate failed: %v", err)
		}
		if w.Balance != 100 {
			t.Errorf("expected balance 100, got %d", w.Balance)
		}

		serial, err := tx.TryReserve(ctx, "item_excalibur")
		if err != nil {
			t.Fatalf("TryReserve failed: %v", err)
		}
		if serial != 1 {
			t.Errorf("expected serial 1 for the unique item, got %d", serial)
		}

		// Same transaction, same item: the guard is already closed.
		if _, err := tx.TryReserve(ctx, "item_excalibur"); !errors.Is(err, domain.ErrExhausted) {
			t.Errorf("expected ErrExhausted, got %v", err)
		}

		if _, err := tx.TryReserve(ctx, "item_missing"); !errors.Is(err, domain.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}

		balance, err := tx.DebitWallet(ctx, "alloc_user", 25)
		if err != nil {
			t.Fatalf("DebitWallet failed: %v", err)
		}
		if balance != 75 {
			t.Errorf("expected balance 75, got %d", balance)
		}

		one := 1
		rec := domain.AllocationRecord{
			AllocationID: uuid.NewString(),
			PackID:       "pack_bronze",
			UserID:       "alloc_user",
			Amount:       25,
			ItemID:       "item_excalibur",
			SerialNumber: &one,
			Outcome:      domain.OutcomeSuccess,
			CreatedAt:    time.Now(),
		}
		if err := tx.InsertGrant(ctx, domain.OwnershipGrant{
			GrantID:      uuid.NewString(),
			UserID:       "alloc_user",
			ItemID:       "item_excalibur",
			SerialNumber: &one,
			GrantedAt:    time.Now(),
		}); err != nil {
			t.Fatalf("InsertGrant failed: %v", err)
		}
		if err := tx.InsertAllocationRecord(ctx, rec); err != nil {
			t.Fatalf("InsertAllocationRecord failed: %v", err)
		}
		if err := tx.Commit(ctx); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}

		records, err := allocator.ListAllocations(ctx, "alloc_user", 10)
		if err != nil {
			t.Fatalf("ListAllocations failed: %v", err)
		}
		if len(records) != 1 || records[0].AllocationID != rec.AllocationID {
			t.Errorf("expected the committed record, got %+v", records)
		}
		if records[0].SerialNumber == nil || *records[0].SerialNumber != 1 {
			t.Errorf("expected serial 1 on the record, got %v", records[0].SerialNumber)
		}
	})

	t.Run("RollbackRestoresSupply", func(t *testing.T) {
		tx, err := allocator.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}

		if _, err := tx.TryReserve(ctx, "item_medallion"); err != nil {
			t.Fatalf("TryReserve failed: %v", err)
		}
		if err := tx.Rollback(ctx); err != nil {
			t.Fatalf("Rollback failed: %v", err)
		}

		var mintCount int
		if err := pool.QueryRow(ctx,
			`SELECT mint_count FROM item_definitions WHERE item_id = 'item_medallion'`).Scan(&mintCount); err != nil {
			t.Fatalf("failed to read mint count: %v", err)
		}
		if mintCount != 0 {
			t.Errorf("expected mint count 0 after rollback, got %d", mintCount)
		}
	})

	t.Run("DebitBeyondBalanceIsInternalError", func(t *testing.T) {
		tx, err := allocator.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}
		defer repository.SafeRollback(ctx, tx)

		if _, err := tx.DebitWallet(ctx, "alloc_user", 1_000_000); !errors.Is(err, domain.ErrInternal) {
			t.Errorf("expected ErrInternal, got %v", err)
		}
	})
}
