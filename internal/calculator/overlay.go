package calculator

import (
	"errors"
	"fmt"

	"github.com/tmalik/settler/internal/models"
)

// ErrMalformed reports upstream data the overlay cannot reconcile into a
// consistent balance sheet (self-loops, non-positive amounts). The engine
// catches it at the boundary and falls back to un-netted balances.
var ErrMalformed = errors.New("calculator: malformed balance input")

// ApplySettlements nets effective (confirmed or completed) settlements
// against the pairwise debts and returns the outstanding balances.
//
// Each settlement reduces the matching (payer, recipient) debt. A
// reduction that lands within epsilon of zero removes the entry. An
// overpayment reverses the debt: the recipient owes the payer the excess.
// Reversal keeps the balance sheet self-consistent under overpayment
// instead of rejecting it.
//
// Pending and cancelled settlements are ignored: a settlement only reduces
// debt once the recipient has acknowledged it.
func ApplySettlements(balances []models.Balance, settlements []models.Settlement, epsilon float64) ([]models.Balance, error) {
	debts := make(map[pair]float64, len(balances))
	for _, b := range balances {
		if b.DebtorID == b.CreditorID {
			return nil, fmt.Errorf("%w: self-loop balance for %q", ErrMalformed, b.DebtorID)
		}
		if b.Amount <= 0 {
			return nil, fmt.Errorf("%w: non-positive balance %.2f from %q to %q",
				ErrMalformed, b.Amount, b.DebtorID, b.CreditorID)
		}
		debts[pair{debtor: b.DebtorID, creditor: b.CreditorID}] += b.Amount
	}

	for _, s := range settlements {
		if !s.Status.Effective() {
			continue
		}
		if s.PayerID == s.RecipientID {
			return nil, fmt.Errorf("%w: self-settlement %q", ErrMalformed, s.ID)
		}
		if s.Amount <= 0 {
			return nil, fmt.Errorf("%w: non-positive settlement amount %.2f in %q",
				ErrMalformed, s.Amount, s.ID)
		}

		forward := pair{debtor: s.PayerID, creditor: s.RecipientID}
		remaining := debts[forward] - s.Amount

		switch {
		case remaining > epsilon:
			// Partial settlement.
			debts[forward] = remaining
		case remaining >= -epsilon:
			// Fully settled within tolerance.
			delete(debts, forward)
		default:
			// Overpayment: the excess flows back the other way.
			delete(debts, forward)
			debts[pair{debtor: s.RecipientID, creditor: s.PayerID}] += -remaining
		}
	}

	// Drop residue within tolerance left by reversal accumulation.
	for p, amount := range debts {
		if amount <= epsilon {
			delete(debts, p)
		}
	}

	return sortedBalances(debts), nil
}
