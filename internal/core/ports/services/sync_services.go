package services

import (
	"context"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
)

// SyncSvcFacade drains the pending queues into the ledger.
//
// At most one run may be in flight at a time; a second concurrent invocation
// fails fast with ErrSyncInProgress instead of double-posting events.
type SyncSvcFacade interface {
	RunSalesSync(ctx context.Context) (*domain.SyncResult, error)
	RunInventorySync(ctx context.Context) (*domain.SyncResult, error)

	// RunFullSync runs the sales and inventory syncs as two independent
	// sub-runs; failure of one never blocks or rolls back the other.
	RunFullSync(ctx context.Context) (*domain.FullSyncResult, error)

	Status(ctx context.Context) (*domain.SyncStatus, error)
}

// Notifier is the outbound notification collaborator. Delivery is best-effort:
// callers swallow its errors so a notification failure can never mask the
// primary sync outcome.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}
