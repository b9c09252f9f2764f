package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Travelintrips/travelindashboard-sub001/internal/adapters/memory"
	"github.com/Travelintrips/travelindashboard-sub001/internal/apperrors"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
)

func seedAccounts(t *testing.T, store *memory.LedgerStore) {
	t.Helper()
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountID: "1100", Code: "1100", Name: "Kas", Category: domain.Asset, IsActive: true},
		{AccountID: "4101", Code: "4101", Name: "Penjualan Barang", Category: domain.Revenue, IsActive: true},
	}
	for _, a := range accounts {
		require.NoError(t, store.SaveAccount(ctx, a))
	}
}

func postedTransaction(code string, amount int64) domain.Transaction {
	return domain.Transaction{
		ID:            code + "-id",
		TransactionID: code,
		Date:          time.Now(),
		Description:   "Sale",
		Status:        domain.Posted,
		Entries: []domain.TransactionEntry{
			{EntryID: code + "-e1", AccountCode: "1100", Debit: decimal.NewFromInt(amount)},
			{EntryID: code + "-e2", AccountCode: "4101", Credit: decimal.NewFromInt(amount)},
		},
	}
}

func TestLedgerStore_PostTransactionUpdatesBalances(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	seedAccounts(t, store)

	require.NoError(t, store.PostTransaction(ctx, postedTransaction("ACC-1", 500000)))

	kas, err := store.FindAccountByCode(ctx, "1100")
	require.NoError(t, err)
	assert.True(t, kas.Balance.Equal(decimal.NewFromInt(500000)))

	revenue, err := store.FindAccountByCode(ctx, "4101")
	require.NoError(t, err)
	assert.True(t, revenue.Balance.Equal(decimal.NewFromInt(-500000)))
}

func TestLedgerStore_PostTransactionReplayIsNoop(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	seedAccounts(t, store)
	txn := postedTransaction("ACC-1", 500000)

	require.NoError(t, store.PostTransaction(ctx, txn))
	require.NoError(t, store.PostTransaction(ctx, txn))

	// The replay must not double-apply balances.
	kas, err := store.FindAccountByCode(ctx, "1100")
	require.NoError(t, err)
	assert.True(t, kas.Balance.Equal(decimal.NewFromInt(500000)))
}

func TestLedgerStore_TwoStepFallbackPath(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	seedAccounts(t, store)
	txn := postedTransaction("ACC-2", 300000)
	entries := txn.Entries

	require.NoError(t, store.InsertTransactionHeader(ctx, txn))
	require.NoError(t, store.InsertTransactionEntries(ctx, txn.ID, entries))

	found, err := store.FindTransactionByCode(ctx, "ACC-2")
	require.NoError(t, err)
	assert.Len(t, found.Entries, 2)

	kas, err := store.FindAccountByCode(ctx, "1100")
	require.NoError(t, err)
	assert.True(t, kas.Balance.Equal(decimal.NewFromInt(300000)))
}

func TestLedgerStore_VoidTransaction(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	seedAccounts(t, store)

	require.NoError(t, store.PostTransaction(ctx, postedTransaction("ACC-3", 100000)))
	require.NoError(t, store.VoidTransaction(ctx, "ACC-3", "admin", time.Now()))

	found, err := store.FindTransactionByCode(ctx, "ACC-3")
	require.NoError(t, err)
	assert.Equal(t, domain.Voided, found.Status)

	// Voiding twice fails: only Posted transactions are voidable.
	err = store.VoidTransaction(ctx, "ACC-3", "admin", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLedgerStore_AccountActivityAggregation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	seedAccounts(t, store)

	require.NoError(t, store.PostTransaction(ctx, postedTransaction("ACC-4", 200000)))
	require.NoError(t, store.PostTransaction(ctx, postedTransaction("ACC-5", 300000)))

	rows, err := store.GetAccountActivity(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byCode := map[string]domain.AccountActivityRow{}
	for _, r := range rows {
		byCode[r.AccountCode] = r
	}
	assert.True(t, byCode["1100"].Debit.Equal(decimal.NewFromInt(500000)))
	assert.True(t, byCode["4101"].Credit.Equal(decimal.NewFromInt(500000)))

	// The period aggregation only covers revenue and expense accounts.
	periodRows, err := store.GetAccountActivityBetween(ctx, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, periodRows, 1)
	assert.Equal(t, "4101", periodRows[0].AccountCode)
}
