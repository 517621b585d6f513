package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Configuration errors
	ErrMsgInvalidConfiguration = "invalid pack configuration"

	// Wallet errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgWalletNotFound    = "wallet not found"

	// Catalog errors
	ErrMsgPackNotFound     = "pack not found"
	ErrMsgPackInactive     = "pack is not active"
	ErrMsgItemNotFound     = "item not found"
	ErrMsgNoItemsAvailable = "no items available"

	// Ledger errors
	ErrMsgExhausted = "item supply exhausted"

	// Storage errors
	ErrMsgTemporaryConflict = "temporary conflict"
	ErrMsgInternal          = "internal error"
	ErrMsgTxClosed          = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors.
// These errors are used consistently across all layers of the engine.
// Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	// ErrInvalidConfiguration means a pack's weight table is malformed.
	// Detected at activation time, fatal for that pack version.
	ErrInvalidConfiguration = errors.New(ErrMsgInvalidConfiguration)

	// ErrInsufficientFunds is user-facing and terminal; the engine never
	// retries it.
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrWalletNotFound    = errors.New(ErrMsgWalletNotFound)

	ErrPackNotFound = errors.New(ErrMsgPackNotFound)
	ErrPackInactive = errors.New(ErrMsgPackInactive)
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// ErrNoItemsAvailable means the eligible catalog is exhausted even after
	// widening past the rolled rarity. Terminal, and a signal of an
	// operational or catalog problem rather than routine failure.
	ErrNoItemsAvailable = errors.New(ErrMsgNoItemsAvailable)

	// ErrExhausted is returned by TryReserve when an item has no remaining
	// supply. Callers fall back to the next candidate rather than failing
	// the whole allocation.
	ErrExhausted = errors.New(ErrMsgExhausted)

	// ErrTemporaryConflict surfaces storage contention after the bounded
	// internal retry budget is spent. Retriable by the caller.
	ErrTemporaryConflict = errors.New(ErrMsgTemporaryConflict)

	// ErrInternal is an unexpected storage or transport failure, logged with
	// full context and surfaced opaquely.
	ErrInternal = errors.New(ErrMsgInternal)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
