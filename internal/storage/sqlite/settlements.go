package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tmalik/settler/internal/models"
	"github.com/tmalik/settler/internal/settlement"
	"github.com/tmalik/settler/internal/storage"
)

// CreateSettlement persists a new settlement to the database.
func (s *Store) CreateSettlement(ctx context.Context, st *models.Settlement) error {
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	if st.CreatedAt == 0 {
		st.CreatedAt = time.Now().Unix()
	}
	if st.Status == "" {
		st.Status = models.StatusPending
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, payer_id, recipient_id, amount, note,
		    status, created_by, cancel_reason, created_at, confirmed_at, completed_at, cancelled_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.ID, st.GroupID, st.PayerID, st.RecipientID, st.Amount, nullable(st.Note),
		string(st.Status), st.CreatedBy, nullable(st.CancelReason),
		st.CreatedAt, st.ConfirmedAt, st.CompletedAt, st.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	for _, expenseID := range st.ExpenseIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO settlement_expenses (settlement_id, expense_id) VALUES (?, ?)",
			st.ID, expenseID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement expense link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSettlement retrieves a settlement by ID.
func (s *Store) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	st := &models.Settlement{}
	var note, cancelReason sql.NullString
	var status string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, payer_id, recipient_id, amount, note, status,
		    created_by, cancel_reason, created_at, confirmed_at, completed_at, cancelled_at
		 FROM settlements WHERE id = ?`,
		settlementID,
	).Scan(&st.ID, &st.GroupID, &st.PayerID, &st.RecipientID, &st.Amount, &note, &status,
		&st.CreatedBy, &cancelReason, &st.CreatedAt, &st.ConfirmedAt, &st.CompletedAt, &st.CancelledAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	st.Status = models.SettlementStatus(status)
	if note.Valid {
		st.Note = note.String
	}
	if cancelReason.Valid {
		st.CancelReason = cancelReason.String
	}

	if err := s.loadExpenseLinks(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// ListSettlements returns all settlements for a group, newest first.
func (s *Store) ListSettlements(ctx context.Context, groupID string) ([]models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, payer_id, recipient_id, amount, note, status,
		    created_by, cancel_reason, created_at, confirmed_at, completed_at, cancelled_at
		 FROM settlements WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		var st models.Settlement
		var note, cancelReason sql.NullString
		var status string

		if err := rows.Scan(&st.ID, &st.GroupID, &st.PayerID, &st.RecipientID, &st.Amount,
			&note, &status, &st.CreatedBy, &cancelReason,
			&st.CreatedAt, &st.ConfirmedAt, &st.CompletedAt, &st.CancelledAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}

		st.Status = models.SettlementStatus(status)
		if note.Valid {
			st.Note = note.String
		}
		if cancelReason.Valid {
			st.CancelReason = cancelReason.String
		}
		settlements = append(settlements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	for i := range settlements {
		if err := s.loadExpenseLinks(ctx, &settlements[i]); err != nil {
			return nil, err
		}
	}
	return settlements, nil
}

// UpdateSettlement writes the settlement back, guarded on the status the
// caller read. Zero rows affected with an existing record means another
// transition landed first.
func (s *Store) UpdateSettlement(ctx context.Context, st *models.Settlement, fromStatus models.SettlementStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE settlements
		 SET amount = ?, note = ?, status = ?, cancel_reason = ?,
		     confirmed_at = ?, completed_at = ?, cancelled_at = ?
		 WHERE id = ? AND status = ?`,
		st.Amount, nullable(st.Note), string(st.Status), nullable(st.CancelReason),
		st.ConfirmedAt, st.CompletedAt, st.CancelledAt,
		st.ID, string(fromStatus),
	)
	if err != nil {
		return fmt.Errorf("failed to update settlement: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		var exists int
		err := s.db.QueryRowContext(ctx, "SELECT 1 FROM settlements WHERE id = ?", st.ID).Scan(&exists)
		if err == sql.ErrNoRows {
			return fmt.Errorf("settlement %s: %w", st.ID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check settlement existence: %w", err)
		}
		return fmt.Errorf("settlement %s: %w", st.ID, settlement.ErrConcurrentChange)
	}
	return nil
}

// DeleteSettlement removes a settlement by ID.
func (s *Store) DeleteSettlement(ctx context.Context, settlementID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM settlements WHERE id = ?", settlementID)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) loadExpenseLinks(ctx context.Context, st *models.Settlement) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_id FROM settlement_expenses WHERE settlement_id = ? ORDER BY expense_id",
		st.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get settlement expense links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID string
		if err := rows.Scan(&expenseID); err != nil {
			return fmt.Errorf("failed to scan settlement expense link: %w", err)
		}
		st.ExpenseIDs = append(st.ExpenseIDs, expenseID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate settlement expense links: %w", err)
	}
	return nil
}

// nullable maps an empty string to NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
