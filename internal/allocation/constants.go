package allocation

import "time"

// Conflict retry configuration. Storage serialization failures are retried
// internally; the budget keeps a hot item from starving unrelated requests.
const (
	// ConflictMaxAttempts bounds internal retries before surfacing
	// TemporaryConflict to the caller.
	ConflictMaxAttempts = 3

	// ConflictBaseDelay is the first backoff step; later attempts double it.
	ConflictBaseDelay = 25 * time.Millisecond

	// ConflictBudget caps total wall-clock time spent retrying.
	ConflictBudget = 250 * time.Millisecond
)

// MaxReserveAttempts bounds the candidate walk inside one transaction.
// The walk also stops when the candidate list is exhausted; this cap only
// matters for pathologically large catalogs under heavy contention.
const MaxReserveAttempts = 16

// HistoryDefaultLimit is the default page size for allocation history reads.
const HistoryDefaultLimit = 50

// Log message constants
const (
	LogMsgOpenPackCalled    = "OpenPack called"
	LogMsgPackOpened        = "Pack opened"
	LogMsgAllocationDenied  = "Allocation denied"
	LogMsgCandidateReserved = "Candidate exhausted during reserve, falling back"
	LogMsgConflictRetry     = "Serialization conflict, retrying allocation"
	LogMsgCatalogExhausted  = "Catalog exhausted after fallback widening"
	LogMsgWalletCredited    = "Wallet credited"
)

// Error message formats
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
)
