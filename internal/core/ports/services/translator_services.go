package services

import (
	"context"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
)

// TranslatorSvcFacade converts one domain event into exactly one balanced
// ledger transaction using the account mapping table. Failures are per-event:
// the caller collects them and continues with the rest of the batch.
type TranslatorSvcFacade interface {
	TranslateInventory(ctx context.Context, ev domain.InventoryTransaction) (*domain.Transaction, error)
	TranslateSales(ctx context.Context, ev domain.SalesTransaction) (*domain.Transaction, error)
}
