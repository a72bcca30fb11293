package calculator

import (
	"github.com/tmalik/settler/internal/models"
	"github.com/tmalik/settler/internal/money"
)

// ValidateConsistency sums expense amounts and split amounts independently
// and reports whether they reconcile within tolerance. Drift here means
// a malformed expense slipped past creation-time validation; the report is
// a diagnostic for the caller, never fatal to balance computation.
func ValidateConsistency(expenses []models.Expense, tolerance float64) models.ConsistencyReport {
	var expenseTotal, splitTotal float64
	for _, e := range expenses {
		expenseTotal += e.Amount
		splitTotal += e.SplitTotal()
	}

	discrepancy := splitTotal - expenseTotal
	return models.ConsistencyReport{
		ExpenseTotal: money.Round(expenseTotal),
		SplitTotal:   money.Round(splitTotal),
		Discrepancy:  money.Round(discrepancy),
		Consistent:   discrepancy >= -tolerance && discrepancy <= tolerance,
	}
}
