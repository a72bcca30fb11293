package models

// SettlementStatus is the lifecycle state of a settlement record.
type SettlementStatus string

const (
	// StatusPending is the initial state: the payer (or recipient)
	// recorded an intended payment, not yet acknowledged.
	StatusPending SettlementStatus = "PENDING"

	// StatusConfirmed means the recipient acknowledged receiving the
	// payment. Confirmed settlements reduce outstanding balances.
	StatusConfirmed SettlementStatus = "CONFIRMED"

	// StatusCompleted is terminal: the payer marked the settlement paid
	// after confirmation.
	StatusCompleted SettlementStatus = "COMPLETED"

	// StatusCancelled is terminal: either party withdrew the settlement
	// before completion.
	StatusCancelled SettlementStatus = "CANCELLED"
)

// Valid reports whether s is one of the defined statuses.
func (s SettlementStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible out of s.
func (s SettlementStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Effective reports whether a settlement in this status reduces
// outstanding balances. Only acknowledged payments count; a pending or
// cancelled settlement has no effect on the balance sheet.
func (s SettlementStatus) Effective() bool {
	return s == StatusConfirmed || s == StatusCompleted
}

// Settlement represents a payment between two group members to clear debt.
// It is a two-party joint resource: the payer owns it (only the payer may
// edit it pre-confirmation) but the recipient drives confirmation.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// PayerID is the member who paid (debtor settling up).
	PayerID string

	// RecipientID is the member who received payment (creditor being paid).
	RecipientID string

	// Amount is the payment amount, two-decimal precision.
	Amount float64

	// Note is an optional free-text description.
	Note string

	// ExpenseIDs optionally links the expenses this payment settles.
	ExpenseIDs []string

	// Status is the lifecycle state; see the transition rules in
	// internal/settlement.
	Status SettlementStatus

	// CreatedBy is the member who recorded this settlement. Always equal
	// to PayerID or RecipientID.
	CreatedBy string

	// CancelReason is the optional reason recorded on cancellation.
	CancelReason string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// ConfirmedAt, CompletedAt and CancelledAt are Unix timestamps of the
	// corresponding transitions, zero while unset.
	ConfirmedAt int64
	CompletedAt int64
	CancelledAt int64
}

// Party reports whether memberID is the payer or the recipient.
func (s *Settlement) Party(memberID string) bool {
	return memberID == s.PayerID || memberID == s.RecipientID
}
