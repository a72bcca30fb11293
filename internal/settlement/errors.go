package settlement

import "errors"

// Sentinel errors for settlement validation, authorization and lifecycle
// failures. Callers branch with errors.Is.
var (
	// Validation errors
	ErrSelfSettlement  = errors.New("settlement: payer and recipient must differ")
	ErrInvalidAmount   = errors.New("settlement: amount must be positive")
	ErrCreatorNotParty = errors.New("settlement: creator must be the payer or the recipient")

	// Authorization errors
	ErrNotRecipient = errors.New("settlement: only the recipient may confirm")
	ErrNotPayer     = errors.New("settlement: only the payer may perform this action")
	ErrNotParty     = errors.New("settlement: only the payer or recipient may perform this action")
	ErrNotCreator   = errors.New("settlement: only the creator may delete")

	// State-conflict errors
	ErrInvalidStatus    = errors.New("settlement: transition not allowed from current status")
	ErrConcurrentChange = errors.New("settlement: status changed concurrently")
)
