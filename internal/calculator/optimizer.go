package calculator

import (
	"sort"

	"github.com/tmalik/settler/internal/models"
	"github.com/tmalik/settler/internal/money"
)

// MinimizeTransfers produces the payment set that clears all net
// positions. Members within epsilon of zero are ignored; debtors are
// sorted most-negative first and creditors largest-credit first, then
// matched greedily with two cursors, each payment being the smaller of
// what the debtor still owes and what the creditor is still owed.
//
// Pairing the largest debtor with the largest creditor first zeroes out
// positions fastest and runs in a single scan, but is a heuristic: for
// some inputs a cleverer pairing could need one payment fewer. The count
// never exceeds the naive pairwise list, which is the bound we care about.
//
// Amounts are rounded half-up to two decimals at emission.
func MinimizeTransfers(positions []models.NetPosition, epsilon float64) []models.Suggestion {
	var debtors, creditors []models.NetPosition
	for _, p := range positions {
		switch {
		case p.Amount < -epsilon:
			debtors = append(debtors, p)
		case p.Amount > epsilon:
			creditors = append(creditors, p)
		}
	}

	// Ties broken by member ID so the output is deterministic.
	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].Amount != debtors[j].Amount {
			return debtors[i].Amount < debtors[j].Amount
		}
		return debtors[i].MemberID < debtors[j].MemberID
	})
	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].Amount != creditors[j].Amount {
			return creditors[i].Amount > creditors[j].Amount
		}
		return creditors[i].MemberID < creditors[j].MemberID
	})

	var suggestions []models.Suggestion
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		owed := -debtors[i].Amount
		credit := creditors[j].Amount

		amount := owed
		if credit < amount {
			amount = credit
		}

		if amount > epsilon {
			suggestions = append(suggestions, models.Suggestion{
				FromID: debtors[i].MemberID,
				ToID:   creditors[j].MemberID,
				Amount: money.Round(amount),
			})
		}

		debtors[i].Amount += amount
		creditors[j].Amount -= amount

		if -debtors[i].Amount <= epsilon {
			i++
		}
		if creditors[j].Amount <= epsilon {
			j++
		}
	}

	return suggestions
}
