package calculator

import (
	"sort"

	"github.com/tmalik/settler/internal/models"
)

// pair is an ordered (debtor, creditor) key for balance accumulation.
type pair struct {
	debtor   string
	creditor string
}

// PairwiseBalances derives directed debts from a group's expenses. For
// every split whose member is not the expense's payer, the member owes the
// payer that split amount. Debts between the same ordered pair accumulate;
// opposite directions are NOT netted here — that happens once settlements
// are overlaid. Pure and deterministic: the result is sorted by debtor
// then creditor, and only positive amounts appear.
func PairwiseBalances(expenses []models.Expense) []models.Balance {
	debts := make(map[pair]float64)

	for _, e := range expenses {
		// An expense without a payer cannot produce debts.
		if e.PayerID == "" {
			continue
		}
		for _, s := range e.Splits {
			if s.MemberID == e.PayerID || s.Amount <= 0 {
				continue
			}
			debts[pair{debtor: s.MemberID, creditor: e.PayerID}] += s.Amount
		}
	}

	return sortedBalances(debts)
}

// sortedBalances converts an accumulation map into the canonical edge
// list: positive amounts only, ordered by debtor then creditor.
func sortedBalances(debts map[pair]float64) []models.Balance {
	balances := make([]models.Balance, 0, len(debts))
	for p, amount := range debts {
		if amount <= 0 {
			continue
		}
		balances = append(balances, models.Balance{
			DebtorID:   p.debtor,
			CreditorID: p.creditor,
			Amount:     amount,
		})
	}
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].DebtorID != balances[j].DebtorID {
			return balances[i].DebtorID < balances[j].DebtorID
		}
		return balances[i].CreditorID < balances[j].CreditorID
	})
	return balances
}
