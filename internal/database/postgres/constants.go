package postgres

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
)

// Error Messages - Catalog Operations
const (
	ErrMsgFailedToGetPack        = "failed to get pack"
	ErrMsgFailedToGetPackWeights = "failed to get pack weights"
	ErrMsgFailedToListPacks      = "failed to list packs"
	ErrMsgFailedToGetPackItems   = "failed to get pack items"
)

// Error Messages - Allocation Operations
const (
	ErrMsgFailedToGetWallet        = "failed to get wallet"
	ErrMsgFailedToDebitWallet      = "failed to debit wallet"
	ErrMsgFailedToReserveItem      = "failed to reserve item"
	ErrMsgFailedToInsertGrant      = "failed to insert grant"
	ErrMsgFailedToInsertRecord     = "failed to insert allocation record"
	ErrMsgFailedToListAllocations  = "failed to list allocation records"
)
