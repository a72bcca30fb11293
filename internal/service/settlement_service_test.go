package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmalik/settler/internal/calculator"
	"github.com/tmalik/settler/internal/models"
	"github.com/tmalik/settler/internal/settlement"
	"github.com/tmalik/settler/internal/storage"
	"github.com/tmalik/settler/internal/storage/memory"
)

func newTestServices(t *testing.T) (*SettlementService, *ExpenseService, *BalanceService, storage.Store) {
	t.Helper()
	store := memory.New()
	engine := calculator.NewEngine(store, calculator.Config{}, nil)
	return NewSettlementService(store, engine),
		NewExpenseService(store, engine),
		NewBalanceService(engine),
		store
}

func createTestGroup(t *testing.T, store storage.Store) string {
	t.Helper()
	group := &models.Group{Name: "Trip", MemberIDs: []string{"alice", "bob", "carol"}}
	require.NoError(t, store.CreateGroup(context.Background(), group))
	return group.ID
}

// -- Create tests --

func TestCreateSettlement(t *testing.T) {
	svc, _, _, store := newTestServices(t)
	groupID := createTestGroup(t, store)
	ctx := context.Background()

	st, err := svc.Create(ctx, CreateSettlementInput{
		GroupID:     groupID,
		PayerID:     "bob",
		RecipientID: "alice",
		Amount:      25.005,
		Note:        "venmo",
		CreatedBy:   "bob",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, st.ID)
	assert.Equal(t, models.StatusPending, st.Status)
	assert.Equal(t, 25.01, st.Amount, "amount rounded half-up at the boundary")

	stored, err := store.GetSettlement(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestCreateSettlementValidation(t *testing.T) {
	svc, _, _, store := newTestServices(t)
	groupID := createTestGroup(t, store)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateSettlementInput{
		GroupID: groupID, PayerID: "bob", RecipientID: "bob",
		Amount: 10, CreatedBy: "bob",
	})
	assert.ErrorIs(t, err, settlement.ErrSelfSettlement)

	_, err = svc.Create(ctx, CreateSettlementInput{
		GroupID: groupID, PayerID: "bob", RecipientID: "alice",
		Amount: 0, CreatedBy: "bob",
	})
	assert.ErrorIs(t, err, settlement.ErrInvalidAmount)

	// The creator must name themselves as one of the two parties.
	_, err = svc.Create(ctx, CreateSettlementInput{
		GroupID: groupID, PayerID: "bob", RecipientID: "alice",
		Amount: 10, CreatedBy: "carol",
	})
	assert.ErrorIs(t, err, settlement.ErrCreatorNotParty)

	_, err = svc.Create(ctx, CreateSettlementInput{
		GroupID: "missing", PayerID: "bob", RecipientID: "alice",
		Amount: 10, CreatedBy: "bob",
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// -- Lifecycle tests --

func TestSettlementLifecycle(t *testing.T) {
	svc, _, _, store := newTestServices(t)
	groupID := createTestGroup(t, store)
	ctx := context.Background()

	st, err := svc.Create(ctx, CreateSettlementInput{
		GroupID: groupID, PayerID: "bob", RecipientID: "alice",
		Amount: 25, CreatedBy: "bob",
	})
	require.NoError(t, err)

	confirmed, err := svc.Confirm(ctx, st.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)
	assert.NotZero(t, confirmed.ConfirmedAt)

	completed, err := svc.Complete(ctx, st.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)
	assert.NotZero(t, completed.CompletedAt)

	// Terminal: no further transitions.
	_, err = svc.Cancel(ctx, st.ID, "bob", "changed my mind")
	assert.ErrorIs(t, err, settlement.ErrInvalidStatus)
}

func TestSettlementLifecycleAuthorization(t *testing.T) {
	svc, _, _, store := newTestServices(t)
	groupID := createTestGroup(t, store)
	ctx := context.Background()

	st, err := svc.Create(ctx, CreateSettlementInput{
		GroupID: groupID, PayerID: "bob", RecipientID: "alice",
		Amount: 25, CreatedBy: "bob",
	})
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, st.ID, "bob")
	assert.ErrorIs(t, err, settlement.ErrNotRecipient)

	_, err = svc.Complete(ctx, st.ID, "bob")
	assert.ErrorIs(t, err, settlement.ErrInvalidStatus, "complete before confirm")

	_, err = svc.Cancel(ctx, st.ID, "mallory", "")
	assert.ErrorIs(t, err, settlement.ErrNotParty)
}

func TestCancelRecordsReason(t *testing.T) {
	svc, _, _, store := newTestServices(t)
	groupID := createTestGroup(t, store)
	ctx := context.Background()

	st, err := svc.Create(ctx, CreateSettlementInput{
		GroupID: groupID, PayerID: "bob", RecipientID: "alice",
		Amount: 25, CreatedBy: "alice",
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, st.ID, "alice", "duplicate entry")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, "duplicate entry", cancelled.CancelReason)
}

// -- Update/Delete gating --

func TestUpdateSettlement(t *testing.T) {
	svc, _, _, store := newTestServices(t)
	groupID := createTestGroup(t, store)
	ctx := context.Background()

	st, err := svc.Create(ctx, CreateSettlementInput{
		GroupID: groupID, PayerID: "bob", RecipientID: "alice",
		Amount: 25, CreatedBy: "bob",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, st.ID, "bob", 30, "corrected")
	require.NoError(t, err)
	assert.Equal(t, 30.0, updated.Amount)
	assert.Equal(t, "corrected", updated.Note)

	// Recipient may not edit.
	_, err = svc.Update(ctx, st.ID, "alice", 5, "")
	assert.ErrorIs(t, err, settlement.ErrNotPayer)

	// Edits are blocked once the settlement leaves PENDING.
	_, err = svc.Confirm(ctx, st.ID, "alice")
	require.NoError(t, err)
	_, err = svc.Update(ctx, st.ID, "bob", 40, "")
	assert.ErrorIs(t, err, settlement.ErrInvalidStatus)
}

func TestDeleteSettlement(t *testing.T) {
	svc, _, _, store := newTestServices(t)
	groupID := createTestGroup(t, store)
	ctx := context.Background()

	st, err := svc.Create(ctx, CreateSettlementInput{
		GroupID: groupID, PayerID: "bob", RecipientID: "alice",
		Amount: 25, CreatedBy: "bob",
	})
	require.NoError(t, err)

	// Only the creator may delete, and only while pending.
	assert.ErrorIs(t, svc.Delete(ctx, st.ID, "alice"), settlement.ErrNotCreator)

	_, err = svc.Confirm(ctx, st.ID, "alice")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Delete(ctx, st.ID, "bob"), settlement.ErrInvalidStatus)

	// A fresh pending record deletes cleanly.
	st2, err := svc.Create(ctx, CreateSettlementInput{
		GroupID: groupID, PayerID: "bob", RecipientID: "alice",
		Amount: 10, CreatedBy: "bob",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, st2.ID, "bob"))

	_, err = store.GetSettlement(ctx, st2.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTransitionNotFound(t *testing.T) {
	svc, _, _, _ := newTestServices(t)
	_, err := svc.Confirm(context.Background(), "missing", "alice")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// -- Cache coherence --

func TestTransitionsInvalidateCachedBalances(t *testing.T) {
	settlements, expenses, balances, store := newTestServices(t)
	groupID := createTestGroup(t, store)
	ctx := context.Background()

	_, err := expenses.Create(ctx, CreateExpenseInput{
		GroupID: groupID, Description: "dinner", Amount: 50,
		PayerID: "alice", Splits: []models.Split{
			{MemberID: "alice", Amount: 25},
			{MemberID: "bob", Amount: 25},
		},
	})
	require.NoError(t, err)

	before, err := balances.Balances(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, 25.0, before[0].Amount)

	st, err := settlements.Create(ctx, CreateSettlementInput{
		GroupID: groupID, PayerID: "bob", RecipientID: "alice",
		Amount: 25, CreatedBy: "bob",
	})
	require.NoError(t, err)

	// Pending settlements do not move balances.
	mid, err := balances.Balances(ctx, groupID)
	require.NoError(t, err)
	assert.Len(t, mid, 1)

	_, err = settlements.Confirm(ctx, st.ID, "alice")
	require.NoError(t, err)

	// Confirmation invalidated the cache; the debt is now cleared.
	after, err := balances.Balances(ctx, groupID)
	require.NoError(t, err)
	assert.Empty(t, after)

	progress, err := balances.Progress(ctx, groupID)
	require.NoError(t, err)
	assert.True(t, progress.FullySettled)
	assert.Equal(t, 100.0, progress.Percent)
}
