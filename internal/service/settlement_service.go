// Package service is the library boundary used by the surrounding API
// layer. It works on already-authenticated actor IDs and already-parsed
// values, applies the domain rules, and keeps the report cache coherent
// with every write.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmalik/settler/internal/calculator"
	"github.com/tmalik/settler/internal/models"
	"github.com/tmalik/settler/internal/money"
	"github.com/tmalik/settler/internal/settlement"
	"github.com/tmalik/settler/internal/storage"
)

// SettlementService manages the settlement lifecycle.
type SettlementService struct {
	store  storage.Store
	engine *calculator.Engine
	now    func() time.Time
}

// NewSettlementService creates a SettlementService over the given store
// and engine.
func NewSettlementService(store storage.Store, engine *calculator.Engine) *SettlementService {
	return &SettlementService{store: store, engine: engine, now: time.Now}
}

// CreateSettlementInput carries the fields for a new settlement. CreatedBy
// is the acting member and must be the payer or the recipient.
type CreateSettlementInput struct {
	GroupID     string
	PayerID     string
	RecipientID string
	Amount      float64
	Note        string
	ExpenseIDs  []string
	CreatedBy   string
}

// Create records a new PENDING settlement.
func (s *SettlementService) Create(ctx context.Context, in CreateSettlementInput) (*models.Settlement, error) {
	st := &models.Settlement{
		GroupID:     in.GroupID,
		PayerID:     in.PayerID,
		RecipientID: in.RecipientID,
		Amount:      money.Round(in.Amount),
		Note:        in.Note,
		ExpenseIDs:  in.ExpenseIDs,
		Status:      models.StatusPending,
		CreatedBy:   in.CreatedBy,
	}
	if err := settlement.ValidateNew(st); err != nil {
		return nil, err
	}
	if _, err := s.store.GetGroup(ctx, in.GroupID); err != nil {
		return nil, fmt.Errorf("create settlement: %w", err)
	}

	if err := s.store.CreateSettlement(ctx, st); err != nil {
		return nil, fmt.Errorf("create settlement: %w", err)
	}

	s.engine.Invalidate(st.GroupID)
	slog.Info("settlement created",
		"settlement_id", st.ID, "group_id", st.GroupID,
		"payer_id", st.PayerID, "recipient_id", st.RecipientID,
		"amount", st.Amount)
	return st, nil
}

// Update changes the amount and note of a pending settlement. Payer only.
func (s *SettlementService) Update(ctx context.Context, settlementID, actorID string, amount float64, note string) (*models.Settlement, error) {
	st, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if err := settlement.CanEdit(st, actorID); err != nil {
		return nil, err
	}

	amount = money.Round(amount)
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %.2f", settlement.ErrInvalidAmount, amount)
	}

	fromStatus := st.Status
	st.Amount = amount
	st.Note = note
	if err := s.store.UpdateSettlement(ctx, st, fromStatus); err != nil {
		return nil, fmt.Errorf("update settlement: %w", err)
	}

	s.engine.Invalidate(st.GroupID)
	slog.Info("settlement updated", "settlement_id", st.ID, "amount", st.Amount)
	return st, nil
}

// Delete removes a pending settlement. Creator only; once a settlement
// leaves PENDING it stays in the history.
func (s *SettlementService) Delete(ctx context.Context, settlementID, actorID string) error {
	st, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return err
	}
	if err := settlement.CanDelete(st, actorID); err != nil {
		return err
	}

	if err := s.store.DeleteSettlement(ctx, settlementID); err != nil {
		return fmt.Errorf("delete settlement: %w", err)
	}

	s.engine.Invalidate(st.GroupID)
	slog.Info("settlement deleted", "settlement_id", settlementID, "actor_id", actorID)
	return nil
}

// Confirm applies PENDING -> CONFIRMED as actorID (must be the recipient).
func (s *SettlementService) Confirm(ctx context.Context, settlementID, actorID string) (*models.Settlement, error) {
	return s.transition(ctx, settlementID, "confirm", func(st *models.Settlement) error {
		return settlement.Confirm(st, actorID, s.now())
	})
}

// Complete applies CONFIRMED -> COMPLETED as actorID (must be the payer).
func (s *SettlementService) Complete(ctx context.Context, settlementID, actorID string) (*models.Settlement, error) {
	return s.transition(ctx, settlementID, "complete", func(st *models.Settlement) error {
		return settlement.Complete(st, actorID, s.now())
	})
}

// Cancel applies PENDING/CONFIRMED -> CANCELLED as actorID (either party)
// with an optional reason.
func (s *SettlementService) Cancel(ctx context.Context, settlementID, actorID, reason string) (*models.Settlement, error) {
	return s.transition(ctx, settlementID, "cancel", func(st *models.Settlement) error {
		return settlement.Cancel(st, actorID, reason, s.now())
	})
}

// transition loads the settlement, applies the state change, and writes it
// back guarded on the status it read. The guard turns a concurrent
// transition into settlement.ErrConcurrentChange instead of a lost update.
func (s *SettlementService) transition(ctx context.Context, settlementID, action string, apply func(*models.Settlement) error) (*models.Settlement, error) {
	st, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}

	fromStatus := st.Status
	if err := apply(st); err != nil {
		return nil, err
	}

	if err := s.store.UpdateSettlement(ctx, st, fromStatus); err != nil {
		return nil, fmt.Errorf("%s settlement: %w", action, err)
	}

	s.engine.Invalidate(st.GroupID)
	slog.Info("settlement transition",
		"settlement_id", st.ID, "action", action,
		"from", fromStatus, "to", st.Status)
	return st, nil
}
