package service

import (
	"context"

	"github.com/tmalik/settler/internal/calculator"
	"github.com/tmalik/settler/internal/models"
	"github.com/tmalik/settler/internal/money"
)

// BalanceService exposes the engine's computed views of a group.
type BalanceService struct {
	engine *calculator.Engine
}

// NewBalanceService creates a BalanceService over the given engine.
func NewBalanceService(engine *calculator.Engine) *BalanceService {
	return &BalanceService{engine: engine}
}

// Report returns the group's full computed report.
func (s *BalanceService) Report(ctx context.Context, groupID string) (*calculator.Report, error) {
	return s.engine.Report(ctx, groupID)
}

// Balances returns the group's outstanding pairwise balances.
func (s *BalanceService) Balances(ctx context.Context, groupID string) ([]models.Balance, error) {
	report, err := s.engine.Report(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return report.Balances, nil
}

// Suggestions returns the minimized payment set that clears the group.
func (s *BalanceService) Suggestions(ctx context.Context, groupID string) ([]models.Suggestion, error) {
	report, err := s.engine.Report(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return report.Suggestions, nil
}

// Progress returns the group's settlement progress summary.
func (s *BalanceService) Progress(ctx context.Context, groupID string) (models.Progress, error) {
	report, err := s.engine.Report(ctx, groupID)
	if err != nil {
		return models.Progress{}, err
	}
	return report.Progress, nil
}

// Consistency returns the group's expense/split reconciliation report.
func (s *BalanceService) Consistency(ctx context.Context, groupID string) (models.ConsistencyReport, error) {
	report, err := s.engine.Report(ctx, groupID)
	if err != nil {
		return models.ConsistencyReport{}, err
	}
	return report.Consistency, nil
}

// MemberSummary is one member's view of a group: what they owe, what they
// are owed, and their net position.
type MemberSummary struct {
	MemberID string
	Net      float64
	Owes     []models.Balance
	OwedBy   []models.Balance
}

// MemberSummary collects the balances touching one member.
func (s *BalanceService) MemberSummary(ctx context.Context, groupID, memberID string) (MemberSummary, error) {
	report, err := s.engine.Report(ctx, groupID)
	if err != nil {
		return MemberSummary{}, err
	}

	summary := MemberSummary{MemberID: memberID}
	var net float64
	for _, b := range report.Balances {
		switch memberID {
		case b.DebtorID:
			summary.Owes = append(summary.Owes, b)
			net -= b.Amount
		case b.CreditorID:
			summary.OwedBy = append(summary.OwedBy, b)
			net += b.Amount
		}
	}
	summary.Net = money.Round(net)
	return summary, nil
}
