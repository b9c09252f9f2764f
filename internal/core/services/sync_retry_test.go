package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Travelintrips/travelindashboard-sub001/internal/adapters/memory"
	"github.com/Travelintrips/travelindashboard-sub001/internal/adapters/notify"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portsrepo "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/repositories"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/services"
)

// unreliableSalesStore fails a configured number of synced-flag writes before
// behaving normally, simulating an event store outage between persisting a
// transaction and recording the mark.
type unreliableSalesStore struct {
	portsrepo.SalesEventStore
	markFailures int
}

func (s *unreliableSalesStore) MarkSalesSynced(ctx context.Context, transactionID string) error {
	if s.markFailures > 0 {
		s.markFailures--
		return errors.New("connection reset")
	}
	return s.SalesEventStore.MarkSalesSynced(ctx, transactionID)
}

// A retried event must land on the transaction stored by the earlier run
// instead of posting a second copy of it.
func TestRetriedEventIsNotPostedTwice(t *testing.T) {
	ctx := context.Background()

	ledgerStore := memory.NewLedgerStore()
	for _, a := range []domain.Account{
		{AccountID: "1200", Code: "1200", Name: "Piutang Usaha", Category: domain.Asset, IsActive: true},
		{AccountID: "4201", Code: "4201", Name: "Pendapatan Tiket Pesawat", Category: domain.Revenue, IsActive: true},
	} {
		require.NoError(t, ledgerStore.SaveAccount(ctx, a))
	}

	eventStore := memory.NewEventStore()
	flaky := &unreliableSalesStore{SalesEventStore: eventStore, markFailures: 1}

	mapping := services.NewMappingService(services.DefaultMappings())
	queue := services.NewPendingQueueService(flaky, eventStore)
	ledger := services.NewLedgerService(ledgerStore, ledgerStore)
	translator := services.NewTranslatorService(mapping, eventStore, ledgerStore)
	syncSvc := services.NewSyncService(queue, translator, ledger, eventStore, notify.Noop{}, "admin")

	amount := decimal.NewFromInt(750000)
	_, err := queue.EnqueueSale(ctx, domain.SalesTransaction{
		TransactionID:   "SAL-1",
		TransactionType: domain.SalesFlight,
		CustomerName:    "Budi",
		TotalAmount:     amount,
	})
	require.NoError(t, err)

	// First run: the transaction is stored but the mark write fails, so the
	// event stays pending.
	result, err := syncSvc.RunSalesSync(ctx)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Zero(t, result.SyncedCount)

	// Second run replays the event. Its deterministic code collides with the
	// stored transaction and the mark now succeeds.
	result, err = syncSvc.RunSalesSync(ctx)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.SyncedCount)

	receivable, err := ledgerStore.FindAccountByCode(ctx, "1200")
	require.NoError(t, err)
	assert.True(t, receivable.Balance.Equal(amount), "balance %s reflects a double-posted event", receivable.Balance)

	txn, err := ledgerStore.FindTransactionByCode(ctx, "ACC-SAL-1")
	require.NoError(t, err)
	assert.Len(t, txn.Entries, 2)

	pending, err := eventStore.ListUnsyncedSales(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
