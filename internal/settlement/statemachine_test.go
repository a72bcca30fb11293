package settlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmalik/settler/internal/models"
)

func pending() *models.Settlement {
	return &models.Settlement{
		ID:          "s1",
		GroupID:     "g1",
		PayerID:     "bob",
		RecipientID: "alice",
		Amount:      25.0,
		Status:      models.StatusPending,
		CreatedBy:   "bob",
	}
}

var now = time.Unix(1700000000, 0)

// -- ValidateNew tests --

func TestValidateNew(t *testing.T) {
	assert.NoError(t, ValidateNew(pending()))

	self := pending()
	self.RecipientID = self.PayerID
	assert.ErrorIs(t, ValidateNew(self), ErrSelfSettlement)

	zero := pending()
	zero.Amount = 0
	assert.ErrorIs(t, ValidateNew(zero), ErrInvalidAmount)

	negative := pending()
	negative.Amount = -5
	assert.ErrorIs(t, ValidateNew(negative), ErrInvalidAmount)

	outsider := pending()
	outsider.CreatedBy = "mallory"
	assert.ErrorIs(t, ValidateNew(outsider), ErrCreatorNotParty)
}

// -- Transition tests --

func TestConfirm(t *testing.T) {
	s := pending()
	require.NoError(t, Confirm(s, "alice", now))
	assert.Equal(t, models.StatusConfirmed, s.Status)
	assert.Equal(t, now.Unix(), s.ConfirmedAt)
}

func TestConfirmAuthorization(t *testing.T) {
	// Neither the payer nor an outsider may confirm receipt.
	for _, actor := range []string{"bob", "mallory"} {
		s := pending()
		assert.ErrorIs(t, Confirm(s, actor, now), ErrNotRecipient, "actor %s", actor)
		assert.Equal(t, models.StatusPending, s.Status)
	}
}

func TestComplete(t *testing.T) {
	s := pending()
	require.NoError(t, Confirm(s, "alice", now))
	require.NoError(t, Complete(s, "bob", now))
	assert.Equal(t, models.StatusCompleted, s.Status)
	assert.Equal(t, now.Unix(), s.CompletedAt)
}

func TestCompleteRequiresConfirmation(t *testing.T) {
	// A settlement cannot be completed before the recipient confirms.
	s := pending()
	assert.ErrorIs(t, Complete(s, "bob", now), ErrInvalidStatus)
	assert.Equal(t, models.StatusPending, s.Status)
}

func TestCompleteAuthorization(t *testing.T) {
	s := pending()
	require.NoError(t, Confirm(s, "alice", now))
	assert.ErrorIs(t, Complete(s, "alice", now), ErrNotPayer)
	assert.ErrorIs(t, Complete(s, "mallory", now), ErrNotPayer)
}

func TestCancel(t *testing.T) {
	t.Run("payer cancels pending", func(t *testing.T) {
		s := pending()
		require.NoError(t, Cancel(s, "bob", "typo in amount", now))
		assert.Equal(t, models.StatusCancelled, s.Status)
		assert.Equal(t, "typo in amount", s.CancelReason)
		assert.Equal(t, now.Unix(), s.CancelledAt)
	})

	t.Run("recipient cancels confirmed", func(t *testing.T) {
		s := pending()
		require.NoError(t, Confirm(s, "alice", now))
		require.NoError(t, Cancel(s, "alice", "", now))
		assert.Equal(t, models.StatusCancelled, s.Status)
	})

	t.Run("outsider may not cancel", func(t *testing.T) {
		s := pending()
		assert.ErrorIs(t, Cancel(s, "mallory", "", now), ErrNotParty)
	})
}

func TestTerminalStatesRejectAllTransitions(t *testing.T) {
	terminal := func(status models.SettlementStatus) *models.Settlement {
		s := pending()
		s.Status = status
		return s
	}

	for _, status := range []models.SettlementStatus{models.StatusCompleted, models.StatusCancelled} {
		s := terminal(status)
		assert.ErrorIs(t, Confirm(s, "alice", now), ErrInvalidStatus, "confirm from %s", status)
		assert.ErrorIs(t, Cancel(s, "bob", "", now), ErrInvalidStatus, "cancel from %s", status)
		assert.Equal(t, status, s.Status)
	}

	// Complete from a terminal state fails on the status check.
	s := terminal(models.StatusCompleted)
	assert.ErrorIs(t, Complete(s, "bob", now), ErrInvalidStatus)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.StatusPending, models.StatusConfirmed))
	assert.True(t, CanTransition(models.StatusPending, models.StatusCancelled))
	assert.True(t, CanTransition(models.StatusConfirmed, models.StatusCompleted))
	assert.True(t, CanTransition(models.StatusConfirmed, models.StatusCancelled))

	assert.False(t, CanTransition(models.StatusPending, models.StatusCompleted))
	assert.False(t, CanTransition(models.StatusCompleted, models.StatusCancelled))
	assert.False(t, CanTransition(models.StatusCancelled, models.StatusPending))
	assert.False(t, CanTransition(models.StatusCompleted, models.StatusConfirmed))
}

// -- Edit/delete gating --

func TestCanEdit(t *testing.T) {
	assert.NoError(t, CanEdit(pending(), "bob"))
	assert.ErrorIs(t, CanEdit(pending(), "alice"), ErrNotPayer)

	confirmed := pending()
	require.NoError(t, Confirm(confirmed, "alice", now))
	assert.ErrorIs(t, CanEdit(confirmed, "bob"), ErrInvalidStatus)

	completed := pending()
	completed.Status = models.StatusCompleted
	assert.ErrorIs(t, CanEdit(completed, "bob"), ErrInvalidStatus)
}

func TestCanDelete(t *testing.T) {
	assert.NoError(t, CanDelete(pending(), "bob"))

	// The recipient did not create this record.
	assert.ErrorIs(t, CanDelete(pending(), "alice"), ErrNotCreator)

	confirmed := pending()
	require.NoError(t, Confirm(confirmed, "alice", now))
	assert.ErrorIs(t, CanDelete(confirmed, "bob"), ErrInvalidStatus)
}
