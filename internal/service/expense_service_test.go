package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmalik/settler/internal/models"
	"github.com/tmalik/settler/internal/storage"
)

func TestCreateExpenseWithSplits(t *testing.T) {
	_, svc, _, store := newTestServices(t)
	groupID := createTestGroup(t, store)
	ctx := context.Background()

	expense, err := svc.Create(ctx, CreateExpenseInput{
		GroupID: groupID, Description: "groceries", Amount: 40,
		PayerID: "alice", Splits: []models.Split{
			{MemberID: "alice", Amount: 20},
			{MemberID: "bob", Amount: 20},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, expense.ID)
	assert.NotZero(t, expense.CreatedAt)

	listed, err := svc.List(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Len(t, listed[0].Splits, 2)
}

func TestCreateExpenseEvenSplit(t *testing.T) {
	_, svc, _, store := newTestServices(t)
	groupID := createTestGroup(t, store)

	expense, err := svc.Create(context.Background(), CreateExpenseInput{
		GroupID: groupID, Description: "rent", Amount: 100,
		PayerID:      "alice",
		Participants: []string{"alice", "bob", "carol"},
	})
	require.NoError(t, err)

	// Remainder cent lands on the last participant.
	require.Len(t, expense.Splits, 3)
	assert.Equal(t, 33.33, expense.Splits[0].Amount)
	assert.Equal(t, 33.33, expense.Splits[1].Amount)
	assert.Equal(t, 33.34, expense.Splits[2].Amount)
	assert.Equal(t, "carol", expense.Splits[2].MemberID)
}

func TestCreateExpenseValidation(t *testing.T) {
	_, svc, _, store := newTestServices(t)
	groupID := createTestGroup(t, store)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateExpenseInput{
		GroupID: groupID, Amount: 0, PayerID: "alice",
		Participants: []string{"alice"},
	})
	assert.ErrorIs(t, err, ErrBadAmount)

	_, err = svc.Create(ctx, CreateExpenseInput{
		GroupID: groupID, Amount: 10, PayerID: "alice",
	})
	assert.ErrorIs(t, err, ErrNoSplits)

	// Splits drifting more than a cent from the total are rejected.
	_, err = svc.Create(ctx, CreateExpenseInput{
		GroupID: groupID, Amount: 40, PayerID: "alice",
		Splits: []models.Split{
			{MemberID: "alice", Amount: 20},
			{MemberID: "bob", Amount: 19},
		},
	})
	assert.ErrorIs(t, err, ErrSplitMismatch)

	_, err = svc.Create(ctx, CreateExpenseInput{
		GroupID: "missing", Amount: 10, PayerID: "alice",
		Participants: []string{"alice"},
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMemberSummary(t *testing.T) {
	settlements, expenses, balances, store := newTestServices(t)
	groupID := createTestGroup(t, store)
	ctx := context.Background()
	_ = settlements

	_, err := expenses.Create(ctx, CreateExpenseInput{
		GroupID: groupID, Description: "dinner", Amount: 90,
		PayerID:      "alice",
		Participants: []string{"alice", "bob", "carol"},
	})
	require.NoError(t, err)

	summary, err := balances.MemberSummary(ctx, groupID, "alice")
	require.NoError(t, err)
	assert.Equal(t, 60.0, summary.Net)
	assert.Empty(t, summary.Owes)
	assert.Len(t, summary.OwedBy, 2)

	summary, err = balances.MemberSummary(ctx, groupID, "bob")
	require.NoError(t, err)
	assert.Equal(t, -30.0, summary.Net)
	assert.Len(t, summary.Owes, 1)
}
