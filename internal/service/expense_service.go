package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tmalik/settler/internal/calculator"
	"github.com/tmalik/settler/internal/models"
	"github.com/tmalik/settler/internal/money"
	"github.com/tmalik/settler/internal/storage"
)

// Expense validation errors.
var (
	ErrNoSplits      = errors.New("service: expense needs at least one split")
	ErrSplitMismatch = errors.New("service: split amounts do not sum to the expense amount")
	ErrBadAmount     = errors.New("service: expense amount must be positive")
)

// splitTolerance is how far split totals may drift from the expense
// amount before creation is rejected.
const splitTolerance = 0.01

// ExpenseService records shared expenses.
type ExpenseService struct {
	store  storage.Store
	engine *calculator.Engine
}

// NewExpenseService creates an ExpenseService over the given store and
// engine.
func NewExpenseService(store storage.Store, engine *calculator.Engine) *ExpenseService {
	return &ExpenseService{store: store, engine: engine}
}

// CreateExpenseInput carries the fields for a new expense. Leave Splits
// nil to divide the amount evenly across Participants, with the remainder
// cents going to the last participants.
type CreateExpenseInput struct {
	GroupID      string
	Description  string
	Amount       float64
	PayerID      string
	Splits       []models.Split
	Participants []string
}

// Create validates and records a new expense. Split amounts must sum to
// the expense amount within tolerance.
func (s *ExpenseService) Create(ctx context.Context, in CreateExpenseInput) (*models.Expense, error) {
	amount := money.Round(in.Amount)
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %.2f", ErrBadAmount, amount)
	}

	splits := in.Splits
	if len(splits) == 0 {
		if len(in.Participants) == 0 {
			return nil, ErrNoSplits
		}
		shares := money.SplitEven(amount, len(in.Participants))
		splits = make([]models.Split, len(in.Participants))
		for i, memberID := range in.Participants {
			splits[i] = models.Split{MemberID: memberID, Amount: shares[i]}
		}
	}

	expense := &models.Expense{
		GroupID:     in.GroupID,
		Description: in.Description,
		Amount:      amount,
		PayerID:     in.PayerID,
		Splits:      splits,
	}

	diff := expense.SplitTotal() - amount
	if diff < -splitTolerance || diff > splitTolerance {
		return nil, fmt.Errorf("%w: splits %.2f vs amount %.2f",
			ErrSplitMismatch, expense.SplitTotal(), amount)
	}

	if _, err := s.store.GetGroup(ctx, in.GroupID); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	s.engine.Invalidate(expense.GroupID)
	slog.Info("expense created",
		"expense_id", expense.ID, "group_id", expense.GroupID,
		"payer_id", expense.PayerID, "amount", expense.Amount,
		"splits", len(expense.Splits))
	return expense, nil
}

// Get retrieves an expense by ID.
func (s *ExpenseService) Get(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, expenseID)
}

// List returns all expenses for a group, oldest first.
func (s *ExpenseService) List(ctx context.Context, groupID string) ([]models.Expense, error) {
	return s.store.ListExpenses(ctx, groupID)
}
