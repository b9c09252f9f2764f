package services

import (
	"context"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
)

// PendingQueueSvcFacade manages the pending queues of domain events not yet
// posted to the ledger. Insertion order is preserved; an event, once marked
// synced, is never re-emitted by the unsynced listings.
type PendingQueueSvcFacade interface {
	EnqueueSale(ctx context.Context, ev domain.SalesTransaction) (*domain.SalesTransaction, error)
	EnqueueInventory(ctx context.Context, ev domain.InventoryTransaction) (*domain.InventoryTransaction, error)

	ListUnsyncedSales(ctx context.Context) ([]domain.SalesTransaction, error)
	ListUnsyncedInventory(ctx context.Context) ([]domain.InventoryTransaction, error)

	// The marks are idempotent: absent or already-synced IDs are a no-op.
	MarkSaleSynced(ctx context.Context, transactionID string) error
	MarkInventorySynced(ctx context.Context, transactionID string) error
}
