package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"

	// Pack operation error messages
	ErrMsgOpenPackFailed     = "Failed to open pack"
	ErrMsgListPacksFailed    = "Failed to list packs"
	ErrMsgGetPackItemsFailed = "Failed to get pack items"

	// Wallet operation error messages
	ErrMsgGetWalletFailed    = "Failed to get wallet"
	ErrMsgCreditWalletFailed = "Failed to credit wallet"

	// History error messages
	ErrMsgGetAllocationsFailed = "Failed to get allocation history"
)

// User-facing error messages mapped from service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgUnavailableError   = "Server is busy. Please try again."

	ErrMsgPackNotFoundError     = "Pack not found"
	ErrMsgPackInactiveError     = "Pack is not available"
	ErrMsgPackMisconfiguredErr  = "Pack is misconfigured and cannot be opened"
	ErrMsgItemNotFoundError     = "Item not found"
	ErrMsgWalletNotFoundError   = "Wallet not found"
	ErrMsgNotEnoughCoinsError   = "Not enough coins"
	ErrMsgNothingAvailableError = "No items are available in this pack right now"
)

// Success messages for API responses
const (
	MsgPackValidSuccess     = "Pack configuration is valid"
	MsgWalletCreditedFormat = "Wallet credited with %d coins"
)
