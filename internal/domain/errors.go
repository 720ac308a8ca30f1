package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Cart errors
	ErrMsgInvalidQuantity = "quantity must be at least 1"
	ErrMsgLineNotFound    = "cart line not found"
	ErrMsgMergeIncomplete = "cart merge incomplete"

	// Catalog errors
	ErrMsgItemNotFound   = "item not found"
	ErrMsgInvalidItemRef = "invalid item reference"

	// Money errors
	ErrMsgCurrencyMismatch = "currency mismatch"

	// Store errors
	ErrMsgPersistence = "persistence failure"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrInvalidQuantity rejects an add with quantity below 1.
	ErrInvalidQuantity = errors.New(ErrMsgInvalidQuantity)

	// ErrLineNotFound reports a line id that is absent from the active store.
	ErrLineNotFound = errors.New(ErrMsgLineNotFound)

	// ErrMergeIncomplete reports a merge pass that left ephemeral lines behind;
	// the caller is expected to re-invoke the merge, which is idempotent.
	ErrMergeIncomplete = errors.New(ErrMsgMergeIncomplete)

	// ErrItemNotFound reports a price lookup for an item that no longer exists
	// in the catalog or auction listings.
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// ErrInvalidItemRef reports a reference that names no kind, both kinds,
	// or a malformed id.
	ErrInvalidItemRef = errors.New(ErrMsgInvalidItemRef)

	// ErrCurrencyMismatch reports arithmetic across currencies.
	ErrCurrencyMismatch = errors.New(ErrMsgCurrencyMismatch)

	// ErrPersistence wraps store read/write failures so callers can tell a
	// transient store fault apart from a catalog miss when deciding whether
	// to offer a retry.
	ErrPersistence = errors.New(ErrMsgPersistence)
)
