// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/tmalik/settler/internal/models"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store defines the persistence operations the services need. It doubles
// as the engine's ledger source. Implementations must be safe for
// concurrent use.
type Store interface {
	// CreateGroup persists a new group, assigning ID and CreatedAt.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// AddGroupMembers appends member IDs to a group, skipping duplicates.
	AddGroupMembers(ctx context.Context, groupID string, memberIDs []string) error

	// CreateExpense persists a new expense with its splits, assigning ID
	// and CreatedAt.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense (with splits) by ID.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenses returns all expenses (with splits) for a group,
	// oldest first.
	ListExpenses(ctx context.Context, groupID string) ([]models.Expense, error)

	// CreateSettlement persists a new settlement, assigning ID and
	// CreatedAt.
	CreateSettlement(ctx context.Context, s *models.Settlement) error

	// GetSettlement retrieves a settlement by ID.
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)

	// ListSettlements returns all settlements for a group, any status,
	// newest first.
	ListSettlements(ctx context.Context, groupID string) ([]models.Settlement, error)

	// UpdateSettlement writes the settlement back, guarded on the status
	// the caller read (fromStatus). A guard mismatch means the record
	// changed concurrently and surfaces as settlement.ErrConcurrentChange.
	UpdateSettlement(ctx context.Context, s *models.Settlement, fromStatus models.SettlementStatus) error

	// DeleteSettlement removes a settlement by ID.
	DeleteSettlement(ctx context.Context, settlementID string) error

	// Close releases any resources held by the store.
	Close() error
}
