package repositories

import (
	"context"
	"time"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
)

// SalesEventStore holds sales domain events and their sync flags.
//
// ListUnsyncedSales must re-filter the live collection on every call so that
// marks applied between calls are always visible; implementations must not
// cache a snapshot.
type SalesEventStore interface {
	SaveSalesTransaction(ctx context.Context, ev domain.SalesTransaction) error
	ListUnsyncedSales(ctx context.Context) ([]domain.SalesTransaction, error)
	// MarkSalesSynced flips the synced flag for one event. Absent or
	// already-synced IDs are a no-op, not an error.
	MarkSalesSynced(ctx context.Context, transactionID string) error
	ListSalesBetween(ctx context.Context, from, to time.Time) ([]domain.SalesTransaction, error)
}

// InventoryEventStore holds inventory domain events and their sync flags.
// The same live-filter and idempotent-mark rules as SalesEventStore apply.
type InventoryEventStore interface {
	SaveInventoryTransaction(ctx context.Context, ev domain.InventoryTransaction) error
	ListUnsyncedInventory(ctx context.Context) ([]domain.InventoryTransaction, error)
	MarkInventorySynced(ctx context.Context, transactionID string) error
	ListInventoryBetween(ctx context.Context, from, to time.Time) ([]domain.InventoryTransaction, error)
}

// ProductReader resolves product master data for COGS computation.
type ProductReader interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
}

// IntegrationLogWriter appends integration activity records. Append failures
// are the caller's problem to swallow; this port never guarantees delivery.
type IntegrationLogWriter interface {
	AppendLog(ctx context.Context, entry domain.IntegrationLogEntry) error
}
