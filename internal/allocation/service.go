// Package allocation implements the pack-opening allocation engine: one
// atomic transaction that verifies funds, selects an item under the pack's
// rarity weights, reserves scarce supply, debits the wallet, and records the
// grant. Nothing else in the system mutates wallet balances or mint counts.
package allocation

import (
	"context"
	"fmt"
	"time"

	"github.com/mintforge/packvault/internal/catalog"
	"github.com/mintforge/packvault/internal/domain"
	"github.com/mintforge/packvault/internal/event"
	"github.com/mintforge/packvault/internal/logger"
	"github.com/mintforge/packvault/internal/rarity"
	"github.com/mintforge/packvault/internal/repository"
)

// Publisher is the post-commit event sink. Emission is fire-and-forget: it
// never blocks the caller and never fails the allocation.
type Publisher interface {
	PublishWithRetry(ctx context.Context, e event.Event)
}

// Service is the inbound contract of the engine.
type Service interface {
	// OpenPack runs one complete allocation for the given user and pack.
	// Terminal denials return domain.ErrInsufficientFunds or
	// domain.ErrNoItemsAvailable; contention past the retry budget returns
	// domain.ErrTemporaryConflict.
	OpenPack(ctx context.Context, packID, userID string) (*domain.OpenResult, error)

	// GetWallet reads a user's current balance.
	GetWallet(ctx context.Context, userID string) (*domain.Wallet, error)

	// CreditWallet funds a user's wallet and returns the new balance. This
	// is the operational entry point for grants and top-ups; it never runs
	// inside an allocation.
	CreditWallet(ctx context.Context, userID string, amount int) (int, error)

	// ListAllocations reads a user's allocation history, newest first.
	ListAllocations(ctx context.Context, userID string, limit int) ([]domain.AllocationRecord, error)
}

type service struct {
	catalog   catalog.Service
	wallets   repository.Wallet
	allocator repository.Allocator
	selector  *rarity.Selector
	src       rarity.Source
	publisher Publisher
	now       func() time.Time
	sleep     func(time.Duration)
}

// Option customizes service construction. Used by tests to pin the random
// source and clock.
type Option func(*service)

// WithSource injects the random source used for the rarity draw and the
// uniform pick among tied candidates.
func WithSource(src rarity.Source) Option {
	return func(s *service) {
		s.src = src
		s.selector = rarity.NewSelector(src)
	}
}

// WithClock injects the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithSleep injects the backoff sleeper.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *service) { s.sleep = sleep }
}

// NewService creates the allocation engine. publisher may be nil when no
// downstream consumers are wired (tests, tooling).
func NewService(cat catalog.Service, wallets repository.Wallet, allocator repository.Allocator, publisher Publisher, opts ...Option) Service {
	src := rarity.NewSource()
	s := &service{
		catalog:   cat,
		wallets:   wallets,
		allocator: allocator,
		selector:  rarity.NewSelector(src),
		src:       src,
		publisher: publisher,
		now:       time.Now,
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	return s.wallets.GetWallet(ctx, userID)
}

func (s *service) CreditWallet(ctx context.Context, userID string, amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: credit amount must be positive, got %d", domain.ErrInvalidInput, amount)
	}
	balance, err := s.wallets.CreditWallet(ctx, userID, amount)
	if err != nil {
		return 0, err
	}
	logger.FromContext(ctx).Info(LogMsgWalletCredited, "user", userID, "amount", amount, "balance", balance)
	return balance, nil
}

func (s *service) ListAllocations(ctx context.Context, userID string, limit int) ([]domain.AllocationRecord, error) {
	if limit <= 0 {
		limit = HistoryDefaultLimit
	}
	return s.allocator.ListAllocations(ctx, userID, limit)
}
