package models

// Balance is a positive directed debt: Debtor owes Creditor Amount.
// Balances are derived values; a zero or negative computed balance is
// dropped rather than represented.
type Balance struct {
	DebtorID   string
	CreditorID string
	Amount     float64
}

// NetPosition is one member's signed balance across all counterparties.
// Negative = net debtor, positive = net creditor, zero = settled.
type NetPosition struct {
	MemberID string
	Amount   float64
}

// Suggestion is a recommended payment produced by the optimizer.
// Same shape as Balance, never persisted, always recomputed.
type Suggestion struct {
	FromID string
	ToID   string
	Amount float64
}

// Progress summarizes how far a group's spending has been settled.
type Progress struct {
	// TotalExpense is the sum of all expense amounts in the group.
	TotalExpense float64

	// Settled is the sum of all effective settlement amounts.
	Settled float64

	// Outstanding is the sum of all outstanding balance amounts.
	Outstanding float64

	// Percent is Settled relative to the total debt ever derived,
	// in [0, 100].
	Percent float64

	// FullySettled is true when no outstanding balance remains.
	FullySettled bool
}

// ConsistencyReport cross-checks expense totals against split totals for
// a group. A diagnostic value, not on the balance computation path.
type ConsistencyReport struct {
	ExpenseTotal float64
	SplitTotal   float64

	// Discrepancy is SplitTotal - ExpenseTotal.
	Discrepancy float64

	// Consistent is true when the totals match within tolerance.
	Consistent bool
}
