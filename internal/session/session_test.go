package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/bizledger/internal/common"
	"github.com/joseph-ayodele/bizledger/internal/entity"
	"github.com/joseph-ayodele/bizledger/internal/importer"
	"github.com/joseph-ayodele/bizledger/internal/repository"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func memoryStore(t *testing.T, durable bool) *repository.SQLStore {
	t.Helper()
	drv, err := repository.OpenLocal(":memory:", quiet)
	require.NoError(t, err)
	t.Cleanup(func() { _ = drv.Close() })
	require.NoError(t, repository.Migrate(context.Background(), drv, quiet))
	return repository.NewSQLStore(drv, durable, quiet)
}

func newSession(t *testing.T) *Session {
	t.Helper()
	return New(memoryStore(t, false), memoryStore(t, true), ContextIdentity{}, quiet)
}

func signedIn(id uuid.UUID) context.Context {
	return common.WithUserID(context.Background(), id)
}

func income(amount int64, d int) entity.Transaction {
	return entity.Transaction{
		Amount:   decimal.NewFromInt(amount),
		Category: "Advertisements",
		Type:     entity.Income,
		Date:     time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC),
	}
}

func TestBackendFollowsIdentity(t *testing.T) {
	s := newSession(t)
	anon := context.Background()
	alice := signedIn(uuid.New())

	_, err := s.AddTransaction(anon, income(100, 1))
	require.NoError(t, err)
	saved, err := s.AddTransaction(alice, income(200, 2))
	require.NoError(t, err)

	snap, err := s.Snapshot(alice)
	require.NoError(t, err)
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, saved.ID, snap.Transactions[0].ID)

	snap, err = s.Snapshot(anon)
	require.NoError(t, err)
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, uuid.Nil, snap.Transactions[0].OwnerID)
}

func TestCacheHoldsOnlyActiveOwner(t *testing.T) {
	s := newSession(t)
	alice, bob := uuid.New(), uuid.New()

	_, err := s.Snapshot(signedIn(alice))
	require.NoError(t, err)
	assert.Contains(t, s.cache, alice)

	_, err = s.Snapshot(signedIn(bob))
	require.NoError(t, err)
	assert.Len(t, s.cache, 1)
	assert.Contains(t, s.cache, bob)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newSession(t)
	ctx := signedIn(uuid.New())
	_, err := s.AddTransaction(ctx, income(100, 1))
	require.NoError(t, err)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	snap.Transactions[0].Category = "changed"

	again, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Advertisements", again.Transactions[0].Category)
}

func TestAddValidates(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	bad := income(100, 1)
	bad.Amount = decimal.NewFromInt(-5)
	bad.Category = " "
	_, err := s.AddTransaction(ctx, bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))
	assert.Contains(t, err.Error(), "amount")
	assert.Contains(t, err.Error(), "category")

	_, err = s.AddPettyCashEntry(ctx, entity.PettyCashEntry{Amount: decimal.NewFromInt(1), Type: "borrow", Date: time.Now()})
	assert.True(t, errors.Is(err, common.ErrValidation))

	_, err = s.AddBalanceSheetItem(ctx, entity.BalanceSheetItem{Category: "income", Subcategory: "Cash", Amount: decimal.NewFromInt(1), Date: time.Now()})
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestAddBudgetDerivesEndDate(t *testing.T) {
	s := newSession(t)
	start := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	b, err := s.AddBudget(context.Background(), entity.Budget{
		Category: "Events Department", BudgetedAmount: decimal.NewFromInt(50000), Period: entity.Monthly, StartDate: start,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), b.EndDate)

	_, err = s.AddBudget(context.Background(), entity.Budget{
		Category: "Events Department", BudgetedAmount: decimal.NewFromInt(1), Period: entity.Monthly,
		StartDate: start, EndDate: start.AddDate(0, 0, -1),
	})
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestUpdateAndDeleteRefreshCache(t *testing.T) {
	s := newSession(t)
	ctx := signedIn(uuid.New())

	saved, err := s.AddTransaction(ctx, income(100, 1))
	require.NoError(t, err)
	require.NoError(t, s.Update(ctx, repository.Transactions, saved.ID, repository.Fields{"receipt_url": "https://files/r1.pdf"}))

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, "https://files/r1.pdf", snap.Transactions[0].ReceiptURL)

	require.NoError(t, s.Delete(ctx, repository.Transactions, saved.ID))
	snap, err = s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Transactions)

	err = s.Update(ctx, repository.Transactions, saved.ID, repository.Fields{"amount": decimal.NewFromInt(-1)})
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestMigrateLocalOncePerOwner(t *testing.T) {
	s := newSession(t)
	anon := context.Background()
	alice, bob := signedIn(uuid.New()), signedIn(uuid.New())

	_, err := s.AddTransaction(anon, income(100, 1))
	require.NoError(t, err)
	_, err = s.AddPettyCashEntry(anon, entity.PettyCashEntry{Amount: decimal.NewFromInt(50), Type: entity.PettyCashAdd, Date: time.Now()})
	require.NoError(t, err)

	_, err = s.Snapshot(alice)
	require.NoError(t, err)

	n, err := s.MigrateLocal(alice)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.MigrateLocal(alice)
	require.NoError(t, err)
	assert.Zero(t, n)

	snap, err := s.Snapshot(alice)
	require.NoError(t, err)
	assert.Len(t, snap.Transactions, 1)
	assert.Len(t, snap.PettyCashEntries, 1)

	// the marker is per owner
	n, err = s.MigrateLocal(bob)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMigrateLocalPreconditions(t *testing.T) {
	s := newSession(t)
	_, err := s.MigrateLocal(context.Background())
	assert.True(t, errors.Is(err, common.ErrUnauthorized))

	localOnly := New(memoryStore(t, false), nil, ContextIdentity{}, quiet)
	_, err = localOnly.MigrateLocal(signedIn(uuid.New()))
	assert.ErrorIs(t, err, ErrNoDurableStore)
}

func TestLocalOnlySessionKeepsOwnersApart(t *testing.T) {
	s := New(memoryStore(t, false), nil, ContextIdentity{}, quiet)
	alice := signedIn(uuid.New())

	_, err := s.AddTransaction(alice, income(100, 1))
	require.NoError(t, err)

	snap, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Transactions)
}

func TestRestore(t *testing.T) {
	s := newSession(t)
	ctx := signedIn(uuid.New())

	n, err := s.Restore(ctx, entity.Snapshot{
		Transactions: []entity.Transaction{income(100, 1), income(200, 2)},
		BalanceSheetItems: []entity.BalanceSheetItem{
			{Category: entity.Assets, Subcategory: "Cash", Amount: decimal.NewFromInt(300), Date: time.Now()},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Transactions, 2)

	bad := income(1, 1)
	bad.Type = "transfer"
	n, err = s.Restore(ctx, entity.Snapshot{Transactions: []entity.Transaction{income(1, 1), bad}})
	assert.Zero(t, n)
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestSessionAsImportSink(t *testing.T) {
	s := newSession(t)
	ctx := signedIn(uuid.New())
	svc := importer.NewService(s, quiet)

	table, err := importer.Parse("date,category,description,amount\n2024-01-10,Advertisements,Billboard,15000\n2024-01-11,Events,Expo,2500\n", importer.ParseOptions{})
	require.NoError(t, err)

	res, err := svc.Import(ctx, importer.KindIncome, table)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Transactions, 2)
}

func TestFixedIdentity(t *testing.T) {
	id := uuid.New()
	p, ok := Fixed(id).Principal(context.Background())
	assert.True(t, ok)
	assert.Equal(t, id, p.ID)

	_, ok = Fixed(uuid.Nil).Principal(context.Background())
	assert.False(t, ok)
}
