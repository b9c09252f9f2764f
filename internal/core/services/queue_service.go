package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Travelintrips/travelindashboard-sub001/internal/apperrors"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portsrepo "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/repositories"
	portssvc "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/services"
)

// pendingQueueService manages the pending queues of domain events over the
// injected event stores. It owns event ID assignment and forces the synced
// flag to false on enqueue; everything else delegates to the stores, which
// re-filter the live collection on every listing.
type pendingQueueService struct {
	BaseService

	sales     portsrepo.SalesEventStore
	inventory portsrepo.InventoryEventStore
}

// NewPendingQueueService creates the pending queue manager.
func NewPendingQueueService(sales portsrepo.SalesEventStore, inventory portsrepo.InventoryEventStore) portssvc.PendingQueueSvcFacade {
	return &pendingQueueService{
		sales:     sales,
		inventory: inventory,
	}
}

var _ portssvc.PendingQueueSvcFacade = (*pendingQueueService)(nil)

// EnqueueSale appends a sales event to the pending queue.
func (s *pendingQueueService) EnqueueSale(ctx context.Context, ev domain.SalesTransaction) (*domain.SalesTransaction, error) {
	if ev.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("sales amount must not be negative: %w", apperrors.ErrValidation)
	}
	if ev.TransactionID == "" {
		ev.TransactionID = uuid.NewString()
	}
	ev.SyncedToAccounting = false
	now := time.Now()
	ev.CreatedAt = now
	ev.LastUpdatedAt = now

	if err := s.sales.SaveSalesTransaction(ctx, ev); err != nil {
		return nil, fmt.Errorf("failed to enqueue sales transaction %s: %w", ev.TransactionID, err)
	}
	return &ev, nil
}

// EnqueueInventory appends an inventory event to the pending queue.
func (s *pendingQueueService) EnqueueInventory(ctx context.Context, ev domain.InventoryTransaction) (*domain.InventoryTransaction, error) {
	if ev.ProductID == "" {
		return nil, fmt.Errorf("inventory product ID is required: %w", apperrors.ErrValidation)
	}
	if ev.TransactionID == "" {
		ev.TransactionID = uuid.NewString()
	}
	ev.SyncedToAccounting = false
	now := time.Now()
	ev.CreatedAt = now
	ev.LastUpdatedAt = now

	if err := s.inventory.SaveInventoryTransaction(ctx, ev); err != nil {
		return nil, fmt.Errorf("failed to enqueue inventory transaction %s: %w", ev.TransactionID, err)
	}
	return &ev, nil
}

// ListUnsyncedSales returns the sales events still pending, in insertion order.
func (s *pendingQueueService) ListUnsyncedSales(ctx context.Context) ([]domain.SalesTransaction, error) {
	return s.sales.ListUnsyncedSales(ctx)
}

// ListUnsyncedInventory returns the inventory events still pending, in insertion order.
func (s *pendingQueueService) ListUnsyncedInventory(ctx context.Context) ([]domain.InventoryTransaction, error) {
	return s.inventory.ListUnsyncedInventory(ctx)
}

// MarkSaleSynced flips the synced flag for one sales event. Idempotent.
func (s *pendingQueueService) MarkSaleSynced(ctx context.Context, transactionID string) error {
	return s.sales.MarkSalesSynced(ctx, transactionID)
}

// MarkInventorySynced flips the synced flag for one inventory event. Idempotent.
func (s *pendingQueueService) MarkInventorySynced(ctx context.Context, transactionID string) error {
	return s.inventory.MarkInventorySynced(ctx, transactionID)
}
