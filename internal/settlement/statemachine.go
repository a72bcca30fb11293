// Package settlement enforces the settlement lifecycle:
//
//	PENDING -> CONFIRMED -> COMPLETED
//	PENDING or CONFIRMED -> CANCELLED
//
// COMPLETED and CANCELLED are terminal. Each transition is tied to a
// party: the recipient confirms receipt, the payer marks paid, and either
// party may cancel. Authorization is checked before the status, so a
// non-party probing a completed settlement gets an authorization error,
// not a hint about its state.
//
// The functions here mutate the in-memory record only; persisting the
// change (and serializing concurrent transitions) is the caller's job.
package settlement

import (
	"fmt"
	"time"

	"github.com/tmalik/settler/internal/models"
)

// transitions lists the allowed status changes.
var transitions = map[models.SettlementStatus][]models.SettlementStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted: {},
	models.StatusCancelled: {},
}

// CanTransition reports whether a settlement may move from one status to
// another, ignoring who is asking.
func CanTransition(from, to models.SettlementStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateNew checks a settlement about to be created. The creator must
// name themselves as one of the two parties, the parties must differ, and
// the amount must be positive.
func ValidateNew(s *models.Settlement) error {
	if s.PayerID == s.RecipientID {
		return ErrSelfSettlement
	}
	if s.Amount <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrInvalidAmount, s.Amount)
	}
	if !s.Party(s.CreatedBy) {
		return ErrCreatorNotParty
	}
	return nil
}

// Confirm applies PENDING -> CONFIRMED. Only the recipient may confirm
// receipt of the payment.
func Confirm(s *models.Settlement, actorID string, now time.Time) error {
	if actorID != s.RecipientID {
		return ErrNotRecipient
	}
	if s.Status != models.StatusPending {
		return statusError(s.Status, models.StatusConfirmed)
	}
	s.Status = models.StatusConfirmed
	s.ConfirmedAt = now.Unix()
	return nil
}

// Complete applies CONFIRMED -> COMPLETED. Only the payer may mark the
// settlement paid, and not before the recipient has confirmed.
func Complete(s *models.Settlement, actorID string, now time.Time) error {
	if actorID != s.PayerID {
		return ErrNotPayer
	}
	if s.Status != models.StatusConfirmed {
		return statusError(s.Status, models.StatusCompleted)
	}
	s.Status = models.StatusCompleted
	s.CompletedAt = now.Unix()
	return nil
}

// Cancel applies PENDING or CONFIRMED -> CANCELLED. Either party may
// cancel; an optional free-text reason is recorded.
func Cancel(s *models.Settlement, actorID, reason string, now time.Time) error {
	if !s.Party(actorID) {
		return ErrNotParty
	}
	if s.Status.Terminal() {
		return statusError(s.Status, models.StatusCancelled)
	}
	s.Status = models.StatusCancelled
	s.CancelReason = reason
	s.CancelledAt = now.Unix()
	return nil
}

// CanEdit checks whether actorID may update the settlement's amount or
// note. Edits are payer-only and blocked once the settlement leaves
// PENDING: both parties acted on the confirmed figures.
func CanEdit(s *models.Settlement, actorID string) error {
	if actorID != s.PayerID {
		return ErrNotPayer
	}
	if s.Status != models.StatusPending {
		return fmt.Errorf("%w: cannot edit %s settlement", ErrInvalidStatus, s.Status)
	}
	return nil
}

// CanDelete checks whether actorID may delete the settlement. Deletion is
// an escape hatch for the creator while the record is still pending; a
// settlement that reached any other status stays in the history.
func CanDelete(s *models.Settlement, actorID string) error {
	if actorID != s.CreatedBy {
		return ErrNotCreator
	}
	if s.Status != models.StatusPending {
		return fmt.Errorf("%w: cannot delete %s settlement", ErrInvalidStatus, s.Status)
	}
	return nil
}

func statusError(from, to models.SettlementStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, from, to)
}
