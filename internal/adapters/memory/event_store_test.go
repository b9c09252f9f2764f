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

func TestEventStore_UnsyncedListingIsLive(t *testing.T) {
	ctx := context.Background()
	store := memory.NewEventStore()

	for _, id := range []string{"SAL-1", "SAL-2", "SAL-3"} {
		err := store.SaveSalesTransaction(ctx, domain.SalesTransaction{
			TransactionID:   id,
			TransactionType: domain.SalesFlight,
			TotalAmount:     decimal.NewFromInt(100000),
			Date:            time.Now(),
		})
		require.NoError(t, err)
	}

	pending, err := store.ListUnsyncedSales(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 3)

	// A mark applied between listings must be visible on the next call.
	require.NoError(t, store.MarkSalesSynced(ctx, "SAL-2"))

	pending, err = store.ListUnsyncedSales(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "SAL-1", pending[0].TransactionID)
	assert.Equal(t, "SAL-3", pending[1].TransactionID)
}

func TestEventStore_MarkSyncedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewEventStore()

	err := store.SaveInventoryTransaction(ctx, domain.InventoryTransaction{
		TransactionID:   "INV-1",
		TransactionType: domain.InventoryPurchase,
		ProductID:       "PRD-1",
		TotalAmount:     decimal.NewFromInt(80000000),
		Date:            time.Now(),
	})
	require.NoError(t, err)

	// Marking twice, and marking an absent ID, are no-ops.
	require.NoError(t, store.MarkInventorySynced(ctx, "INV-1"))
	require.NoError(t, store.MarkInventorySynced(ctx, "INV-1"))
	require.NoError(t, store.MarkInventorySynced(ctx, "INV-MISSING"))

	pending, err := store.ListUnsyncedInventory(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestEventStore_ListBetweenFiltersByDate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewEventStore()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"SAL-1", "SAL-2", "SAL-3"} {
		err := store.SaveSalesTransaction(ctx, domain.SalesTransaction{
			TransactionID:   id,
			TransactionType: domain.SalesHotel,
			TotalAmount:     decimal.NewFromInt(100000),
			Date:            base.AddDate(0, 0, i*10),
		})
		require.NoError(t, err)
	}

	events, err := store.ListSalesBetween(ctx, base.AddDate(0, 0, 5), base.AddDate(0, 0, 15))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "SAL-2", events[0].TransactionID)
}

func TestEventStore_ProductLookup(t *testing.T) {
	ctx := context.Background()
	store := memory.NewEventStore()
	store.SeedProduct(domain.Product{
		ProductID: "PRD-1",
		Name:      "Modem",
		CostPrice: decimal.NewFromInt(100000),
	})

	product, err := store.FindProductByID(ctx, "PRD-1")
	require.NoError(t, err)
	assert.Equal(t, "Modem", product.Name)

	_, err = store.FindProductByID(ctx, "PRD-MISSING")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEventStore_IntegrationLog(t *testing.T) {
	ctx := context.Background()
	store := memory.NewEventStore()

	err := store.AppendLog(ctx, domain.IntegrationLogEntry{
		LogID:               "log-1",
		SourceTransactionID: "SAL-1",
		SourceSystem:        "sales",
		Action:              "persist",
		Status:              domain.IntegrationSuccess,
		CreatedAt:           time.Now(),
	})
	require.NoError(t, err)

	logs := store.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "SAL-1", logs[0].SourceTransactionID)
}
