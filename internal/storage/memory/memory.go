// Package memory provides an in-memory implementation of storage.Store.
// Used by tests and as the CLI default when no database path is given.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tmalik/settler/internal/models"
	"github.com/tmalik/settler/internal/settlement"
	"github.com/tmalik/settler/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store with mutex-guarded maps.
type Store struct {
	mu          sync.RWMutex
	groups      map[string]*models.Group
	expenses    map[string]*models.Expense
	settlements map[string]*models.Settlement
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		groups:      make(map[string]*models.Group),
		expenses:    make(map[string]*models.Expense),
		settlements: make(map[string]*models.Settlement),
	}
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }

// CreateGroup stores a copy of the group, assigning ID and CreatedAt.
func (s *Store) CreateGroup(_ context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	s.groups[group.ID] = copyGroup(group)
	return nil
}

// GetGroup returns a copy of the group.
func (s *Store) GetGroup(_ context.Context, groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return copyGroup(group), nil
}

// AddGroupMembers appends member IDs, skipping duplicates.
func (s *Store) AddGroupMembers(_ context.Context, groupID string, memberIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupID]
	if !ok {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	for _, id := range memberIDs {
		if !group.HasMember(id) {
			group.MemberIDs = append(group.MemberIDs, id)
		}
	}
	return nil
}

// CreateExpense stores a copy of the expense, assigning ID and CreatedAt.
func (s *Store) CreateExpense(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	s.expenses[expense.ID] = copyExpense(expense)
	return nil
}

// GetExpense returns a copy of the expense.
func (s *Store) GetExpense(_ context.Context, expenseID string) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expense, ok := s.expenses[expenseID]
	if !ok {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return copyExpense(expense), nil
}

// ListExpenses returns the group's expenses, oldest first.
func (s *Store) ListExpenses(_ context.Context, groupID string) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var expenses []models.Expense
	for _, e := range s.expenses {
		if e.GroupID == groupID {
			expenses = append(expenses, *copyExpense(e))
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		if expenses[i].CreatedAt != expenses[j].CreatedAt {
			return expenses[i].CreatedAt < expenses[j].CreatedAt
		}
		return expenses[i].ID < expenses[j].ID
	})
	return expenses, nil
}

// CreateSettlement stores a copy of the settlement, assigning ID,
// CreatedAt and the initial status.
func (s *Store) CreateSettlement(_ context.Context, st *models.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	if st.CreatedAt == 0 {
		st.CreatedAt = time.Now().Unix()
	}
	if st.Status == "" {
		st.Status = models.StatusPending
	}
	s.settlements[st.ID] = copySettlement(st)
	return nil
}

// GetSettlement returns a copy of the settlement.
func (s *Store) GetSettlement(_ context.Context, settlementID string) (*models.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.settlements[settlementID]
	if !ok {
		return nil, fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	return copySettlement(st), nil
}

// ListSettlements returns the group's settlements, newest first.
func (s *Store) ListSettlements(_ context.Context, groupID string) ([]models.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var settlements []models.Settlement
	for _, st := range s.settlements {
		if st.GroupID == groupID {
			settlements = append(settlements, *copySettlement(st))
		}
	}
	sort.Slice(settlements, func(i, j int) bool {
		if settlements[i].CreatedAt != settlements[j].CreatedAt {
			return settlements[i].CreatedAt > settlements[j].CreatedAt
		}
		return settlements[i].ID < settlements[j].ID
	})
	return settlements, nil
}

// UpdateSettlement writes the settlement back, guarded on the status the
// caller read.
func (s *Store) UpdateSettlement(_ context.Context, st *models.Settlement, fromStatus models.SettlementStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.settlements[st.ID]
	if !ok {
		return fmt.Errorf("settlement %s: %w", st.ID, storage.ErrNotFound)
	}
	if current.Status != fromStatus {
		return fmt.Errorf("settlement %s: %w", st.ID, settlement.ErrConcurrentChange)
	}
	s.settlements[st.ID] = copySettlement(st)
	return nil
}

// DeleteSettlement removes the settlement.
func (s *Store) DeleteSettlement(_ context.Context, settlementID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.settlements[settlementID]; !ok {
		return fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	delete(s.settlements, settlementID)
	return nil
}

func copyGroup(g *models.Group) *models.Group {
	out := *g
	out.MemberIDs = append([]string(nil), g.MemberIDs...)
	return &out
}

func copyExpense(e *models.Expense) *models.Expense {
	out := *e
	out.Splits = append([]models.Split(nil), e.Splits...)
	return &out
}

func copySettlement(st *models.Settlement) *models.Settlement {
	out := *st
	out.ExpenseIDs = append([]string(nil), st.ExpenseIDs...)
	return &out
}
