// Package ledger provides an in-memory implementation of the engine's
// storage contracts: catalog reads, wallet reads, and the allocation
// transaction with its scarcity ledger. It honors the same per-item
// linearizability guarantee as the postgres layer and backs unit tests,
// race tests, and local development without a database.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mintforge/packvault/internal/domain"
	"github.com/mintforge/packvault/internal/repository"
)

// Memory is a thread-safe in-memory store implementing repository.Catalog,
// repository.Wallet, and repository.Allocator.
type Memory struct {
	mu          sync.Mutex
	packs       map[string]*domain.Pack
	items       map[string]*domain.ItemDefinition
	packItems   map[string][]string // item IDs in declaration order
	wallets     map[string]*domain.Wallet
	grants      []domain.OwnershipGrant
	records     []domain.AllocationRecord
	walletLocks map[string]*sync.Mutex // models SELECT ... FOR UPDATE
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		packs:       make(map[string]*domain.Pack),
		items:       make(map[string]*domain.ItemDefinition),
		packItems:   make(map[string][]string),
		wallets:     make(map[string]*domain.Wallet),
		walletLocks: make(map[string]*sync.Mutex),
	}
}

// Seeding helpers. Not safe to call concurrently with allocations.

// AddPack registers a pack and its eligible catalog in declaration order.
func (m *Memory) AddPack(pack domain.Pack, itemIDs ...string) {
	m.packs[pack.ID] = &pack
	m.packItems[pack.ID] = append([]string(nil), itemIDs...)
}

// AddItem registers an item definition.
func (m *Memory) AddItem(item domain.ItemDefinition) {
	m.items[item.ID] = &item
}

// SetBalance creates or replaces a wallet.
func (m *Memory) SetBalance(userID string, balance int) {
	m.wallets[userID] = &domain.Wallet{UserID: userID, Balance: balance}
	if _, ok := m.walletLocks[userID]; !ok {
		m.walletLocks[userID] = &sync.Mutex{}
	}
}

// Grants returns a snapshot of all ownership grants.
func (m *Memory) Grants() []domain.OwnershipGrant {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.OwnershipGrant(nil), m.grants...)
}

// Records returns a snapshot of the allocation audit log.
func (m *Memory) Records() []domain.AllocationRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.AllocationRecord(nil), m.records...)
}

// Item returns the current state of an item definition.
func (m *Memory) Item(itemID string) domain.ItemDefinition {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.items[itemID]
}

// repository.Catalog

func (m *Memory) GetPack(_ context.Context, packID string) (*domain.Pack, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pack, ok := m.packs[packID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPackNotFound, packID)
	}
	cp := *pack
	cp.Weights = append([]domain.RarityWeight(nil), pack.Weights...)
	return &cp, nil
}

func (m *Memory) ListActivePacks(_ context.Context) ([]domain.Pack, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.Pack
	for _, pack := range m.packs {
		if pack.Active {
			out = append(out, *pack)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetPackItems(_ context.Context, packID string) ([]domain.ItemDefinition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids, ok := m.packItems[packID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPackNotFound, packID)
	}

	out := make([]domain.ItemDefinition, 0, len(ids))
	for _, id := range ids {
		if item, ok := m.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

// repository.Wallet

func (m *Memory) GetWallet(_ context.Context, userID string) (*domain.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.wallets[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrWalletNotFound, userID)
	}
	cp := *w
	return &cp, nil
}

func (m *Memory) CreditWallet(_ context.Context, userID string, amount int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.wallets[userID]
	if !ok {
		w = &domain.Wallet{UserID: userID}
		m.wallets[userID] = w
		m.walletLocks[userID] = &sync.Mutex{}
	}
	w.Balance += amount
	return w.Balance, nil
}

// repository.Allocator

func (m *Memory) BeginTx(_ context.Context) (repository.AllocationTx, error) {
	return &memoryTx{store: m}, nil
}

func (m *Memory) ListAllocations(_ context.Context, userID string, limit int) ([]domain.AllocationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.AllocationRecord
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		if m.records[i].UserID == userID {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

// memoryTx applies mutations immediately under the store lock and keeps an
// undo log; Rollback replays the undos in reverse. The wallet row lock is
// held from GetWalletForUpdate until the transaction ends, mirroring
// SELECT ... FOR UPDATE.
type memoryTx struct {
	store        *Memory
	undo         []func()
	lockedWallet string
	done         bool
}

func (t *memoryTx) GetWalletForUpdate(ctx context.Context, userID string) (*domain.Wallet, error) {
	t.store.mu.Lock()
	lock, ok := t.store.walletLocks[userID]
	t.store.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrWalletNotFound, userID)
	}

	if t.lockedWallet == "" {
		lock.Lock()
		t.lockedWallet = userID
	}
	return t.store.GetWallet(ctx, userID)
}

func (t *memoryTx) DebitWallet(_ context.Context, userID string, amount int) (int, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	w, ok := t.store.wallets[userID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrWalletNotFound, userID)
	}
	if w.Balance < amount {
		// The funds check ran under the row lock; reaching this means the
		// check was skipped.
		return 0, fmt.Errorf("%w: debit %d exceeds balance %d", domain.ErrInternal, amount, w.Balance)
	}

	w.Balance -= amount
	t.undo = append(t.undo, func() { w.Balance += amount })
	return w.Balance, nil
}

func (t *memoryTx) TryReserve(_ context.Context, itemID string) (int, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	item, ok := t.store.items[itemID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}

	// Compare-and-increment under the store lock: the in-memory equivalent
	// of the conditional UPDATE the postgres ledger runs.
	if total := item.SupplyCap(); total >= 0 && item.MintCount >= total {
		return 0, fmt.Errorf("%w: %s", domain.ErrExhausted, itemID)
	}

	item.MintCount++
	t.undo = append(t.undo, func() { item.MintCount-- })
	return item.MintCount, nil
}

func (t *memoryTx) InsertGrant(_ context.Context, grant domain.OwnershipGrant) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	t.store.grants = append(t.store.grants, grant)
	t.undo = append(t.undo, func() {
		t.store.grants = t.store.grants[:len(t.store.grants)-1]
	})
	return nil
}

func (t *memoryTx) InsertAllocationRecord(_ context.Context, rec domain.AllocationRecord) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	t.store.records = append(t.store.records, rec)
	t.undo = append(t.undo, func() {
		t.store.records = t.store.records[:len(t.store.records)-1]
	})
	return nil
}

func (t *memoryTx) Commit(_ context.Context) error {
	if t.done {
		return fmt.Errorf("%s", domain.ErrMsgTxClosed)
	}
	t.finish()
	return nil
}

func (t *memoryTx) Rollback(_ context.Context) error {
	if t.done {
		return fmt.Errorf("%s", domain.ErrMsgTxClosed)
	}

	t.store.mu.Lock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.store.mu.Unlock()

	t.finish()
	return nil
}

func (t *memoryTx) finish() {
	t.undo = nil
	t.done = true
	if t.lockedWallet != "" {
		t.store.walletLocks[t.lockedWallet].Unlock()
		t.lockedWallet = ""
	}
}
