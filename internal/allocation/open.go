package allocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mintforge/packvault/internal/catalog"
	"github.com/mintforge/packvault/internal/domain"
	"github.com/mintforge/packvault/internal/event"
	"github.com/mintforge/packvault/internal/logger"
	"github.com/mintforge/packvault/internal/metrics"
	"github.com/mintforge/packvault/internal/repository"
)

// attemptOutcome carries everything the post-commit path needs out of one
// committed transaction.
type attemptOutcome struct {
	result *domain.OpenResult
	record domain.AllocationRecord
	tier   domain.RarityTier
	// denial is the terminal error committed into the audit log, nil on
	// success.
	denial error
}

func (s *service) OpenPack(ctx context.Context, packID, userID string) (*domain.OpenResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgOpenPackCalled, "pack", packID, "user", userID)

	start := s.now()

	pack, err := s.catalog.GetPack(ctx, packID)
	if err != nil {
		return nil, err
	}

	outcome, err := s.openWithConflictRetry(ctx, pack, userID)
	if err != nil {
		// Contention or storage failure: nothing committed, no record, no
		// event.
		return nil, err
	}

	metrics.AllocationsTotal.WithLabelValues(pack.ID, string(outcome.record.Outcome)).Inc()
	metrics.AllocationDuration.WithLabelValues(pack.ID).Observe(s.now().Sub(start).Seconds())

	if outcome.denial != nil {
		log.Warn(LogMsgAllocationDenied,
			"pack", packID, "user", userID, "reason", outcome.record.Reason)
		s.emit(ctx, event.NewAllocationDeniedEvent(outcome.record))
		return nil, outcome.denial
	}

	log.Info(LogMsgPackOpened,
		"pack", packID,
		"user", userID,
		"item", outcome.result.ItemID,
		"rarity", outcome.tier,
		"allocation", outcome.result.AllocationID)
	s.emit(ctx, event.NewAllocationSettledEvent(outcome.record, outcome.tier))

	return outcome.result, nil
}

// openWithConflictRetry retries the transaction on storage serialization
// failures with bounded exponential backoff. Terminal denials and unexpected
// errors pass straight through.
func (s *service) openWithConflictRetry(ctx context.Context, pack *domain.Pack, userID string) (*attemptOutcome, error) {
	deadline := s.now().Add(ConflictBudget)

	var lastErr error
	for attempt := 1; attempt <= ConflictMaxAttempts; attempt++ {
		outcome, err := s.attempt(ctx, pack, userID)
		if err == nil {
			return outcome, nil
		}
		if !isSerializationFailure(err) {
			return nil, err
		}

		lastErr = err
		metrics.ConflictRetries.Inc()
		logger.FromContext(ctx).Warn(LogMsgConflictRetry,
			"pack", pack.ID, "user", userID, "attempt", attempt, "error", err)

		if attempt == ConflictMaxAttempts || s.now().After(deadline) {
			break
		}
		s.sleep(ConflictBaseDelay << (attempt - 1))
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrTemporaryConflict, lastErr)
}

// attempt runs the allocation state machine once:
// Started -> FundsVerified -> ItemReserved -> Committed, or Aborted(reason).
// Terminal denials (insufficient funds, catalog exhaustion) commit only the
// FAILED audit record; wallet and ledger are untouched.
func (s *service) attempt(ctx context.Context, pack *domain.Pack, userID string) (*attemptOutcome, error) {
	log := logger.FromContext(ctx)

	tx, err := s.allocator.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	allocationID := uuid.NewString()

	// FundsVerified: read under row lock, no mutation yet.
	wallet, err := tx.GetWalletForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet.Balance < pack.Price {
		denial := fmt.Errorf("%w: balance %d, pack price %d",
			domain.ErrInsufficientFunds, wallet.Balance, pack.Price)
		return s.abort(ctx, tx, allocationID, pack, userID, domain.ErrMsgInsufficientFunds, denial)
	}

	// Rarity draw: pure, no I/O.
	tier, err := s.selector.SelectRarity(pack.Weights)
	if err != nil {
		return nil, err
	}
	metrics.RarityDrawn.WithLabelValues(pack.ID, string(tier)).Inc()

	// Candidate resolution is a read-only query; TryReserve below is the
	// authoritative check, so a stale snapshot only costs a fallback step.
	candidates, err := s.catalog.ResolveCandidates(ctx, pack.ID, tier)
	if err != nil {
		if errors.Is(err, domain.ErrNoItemsAvailable) {
			log.Error(LogMsgCatalogExhausted, "pack", pack.ID, "rarity", tier)
			return s.abort(ctx, tx, allocationID, pack, userID, domain.ErrMsgNoItemsAvailable, err)
		}
		return nil, err
	}

	// ItemReserved: walk candidates until one reservation sticks.
	item, serial, err := s.reserve(ctx, tx, candidates)
	if err != nil {
		if errors.Is(err, domain.ErrNoItemsAvailable) {
			log.Error(LogMsgCatalogExhausted, "pack", pack.ID, "rarity", tier)
			return s.abort(ctx, tx, allocationID, pack, userID, domain.ErrMsgNoItemsAvailable, err)
		}
		return nil, err
	}

	newBalance, err := tx.DebitWallet(ctx, userID, pack.Price)
	if err != nil {
		return nil, err
	}

	var serialPtr *int
	if item.Capped() {
		serialPtr = &serial
	}

	grant := domain.OwnershipGrant{
		GrantID:      uuid.NewString(),
		UserID:       userID,
		ItemID:       item.ID,
		SerialNumber: serialPtr,
		GrantedAt:    s.now(),
	}
	if err := tx.InsertGrant(ctx, grant); err != nil {
		return nil, err
	}

	record := domain.AllocationRecord{
		AllocationID: allocationID,
		PackID:       pack.ID,
		UserID:       userID,
		Amount:       pack.Price,
		ItemID:       item.ID,
		SerialNumber: serialPtr,
		Outcome:      domain.OutcomeSuccess,
		CreatedAt:    s.now(),
	}
	if err := tx.InsertAllocationRecord(ctx, record); err != nil {
		return nil, err
	}

	// Committed: debit, grant, serial, and audit row land atomically.
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	return &attemptOutcome{
		result: &domain.OpenResult{
			AllocationID: allocationID,
			ItemID:       item.ID,
			ItemName:     item.Name,
			Rarity:       item.Rarity,
			SerialNumber: serialPtr,
			NewBalance:   newBalance,
		},
		record: record,
		tier:   tier,
	}, nil
}

// reserve picks uniformly within the top availability-score band and calls
// TryReserve. An Exhausted result drops that candidate and retries against
// the remainder rather than failing the allocation.
func (s *service) reserve(ctx context.Context, tx repository.AllocationTx, candidates []catalog.Candidate) (domain.ItemDefinition, int, error) {
	log := logger.FromContext(ctx)

	for attempt := 0; attempt < MaxReserveAttempts && len(candidates) > 0; attempt++ {
		band := catalog.TopBand(candidates)
		pick := s.src.IntN(len(band))
		item := band[pick].Item

		serial, err := tx.TryReserve(ctx, item.ID)
		if err == nil {
			return item, serial, nil
		}
		if !errors.Is(err, domain.ErrExhausted) {
			return domain.ItemDefinition{}, 0, err
		}

		metrics.ReservationConflicts.WithLabelValues(item.ID).Inc()
		log.Info(LogMsgCandidateReserved, "item", item.ID)
		candidates = removeCandidate(candidates, pick)
	}

	return domain.ItemDefinition{}, 0, domain.ErrNoItemsAvailable
}

// removeCandidate drops index i while preserving score order.
func removeCandidate(cands []catalog.Candidate, i int) []catalog.Candidate {
	out := make([]catalog.Candidate, 0, len(cands)-1)
	out = append(out, cands[:i]...)
	return append(out, cands[i+1:]...)
}

// abort commits a FAILED audit record for a terminal denial and returns it.
// Only the record is written; the deferred rollback is a no-op after commit.
func (s *service) abort(ctx context.Context, tx repository.AllocationTx, allocationID string, pack *domain.Pack, userID, reason string, denial error) (*attemptOutcome, error) {
	record := domain.AllocationRecord{
		AllocationID: allocationID,
		PackID:       pack.ID,
		UserID:       userID,
		Amount:       0,
		Outcome:      domain.OutcomeFailed,
		Reason:       reason,
		CreatedAt:    s.now(),
	}
	if err := tx.InsertAllocationRecord(ctx, record); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	return &attemptOutcome{record: record, denial: denial}, nil
}

func (s *service) emit(ctx context.Context, e event.Event) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishWithRetry(ctx, e)
}
