package calculator

import (
	"github.com/tmalik/settler/internal/models"
	"github.com/tmalik/settler/internal/money"
)

// SettlementProgress summarizes how far a group's debts have been paid
// down: total spending, the sum of effective settlements, what is still
// outstanding, and the settled share of all debt ever derived. An empty
// group (no debt at all) reports as fully settled.
func SettlementProgress(expenses []models.Expense, settlements []models.Settlement, outstanding []models.Balance, epsilon float64) models.Progress {
	var total, settled, open float64
	for _, e := range expenses {
		total += e.Amount
	}
	for _, s := range settlements {
		if s.Status.Effective() {
			settled += s.Amount
		}
	}
	for _, b := range outstanding {
		open += b.Amount
	}

	percent := 100.0
	if settled+open > epsilon {
		percent = settled / (settled + open) * 100
	}

	return models.Progress{
		TotalExpense: money.Round(total),
		Settled:      money.Round(settled),
		Outstanding:  money.Round(open),
		Percent:      money.Round(percent),
		FullySettled: open <= epsilon,
	}
}
