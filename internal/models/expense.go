package models

// Expense represents a shared expense paid by one group member on behalf
// of several. Once recorded it is treated as an immutable historical fact;
// corrections are made with new expenses, not edits.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is a human-readable label (e.g., "Dinner", "Gas").
	Description string

	// Amount is the total expense amount, two-decimal precision.
	Amount float64

	// PayerID is the member who paid the full amount up front.
	PayerID string

	// Splits is how the amount divides across members. The split amounts
	// must sum to Amount within a 0.01 tolerance.
	Splits []Split

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Split is one member's share of an expense.
type Split struct {
	// MemberID is the member who owes this share.
	MemberID string

	// Amount is the share owed, two-decimal precision.
	Amount float64
}

// SplitTotal returns the sum of all split amounts.
func (e *Expense) SplitTotal() float64 {
	var total float64
	for _, s := range e.Splits {
		total += s.Amount
	}
	return total
}
