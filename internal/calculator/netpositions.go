package calculator

import (
	"sort"

	"github.com/tmalik/settler/internal/models"
)

// NetPositions collapses the outstanding-balance graph into one signed
// position per member: every debt subtracts from the debtor and adds to
// the creditor. The positions of a closed group always sum to zero within
// floating rounding tolerance — the conservation invariant that anchors
// the whole pipeline. Output is sorted by member ID.
func NetPositions(balances []models.Balance) []models.NetPosition {
	totals := make(map[string]float64)
	for _, b := range balances {
		totals[b.DebtorID] -= b.Amount
		totals[b.CreditorID] += b.Amount
	}

	positions := make([]models.NetPosition, 0, len(totals))
	for id, amount := range totals {
		positions = append(positions, models.NetPosition{MemberID: id, Amount: amount})
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].MemberID < positions[j].MemberID
	})
	return positions
}
