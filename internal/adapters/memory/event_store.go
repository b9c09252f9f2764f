// Package memory provides in-memory implementations of the event stores and
// the integration log. They back the unit tests and the no-database
// development mode of the server.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Travelintrips/travelindashboard-sub001/internal/apperrors"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portsrepo "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/repositories"
)

// EventStore holds sales and inventory events, products and integration log
// entries in process memory. All operations are safe for concurrent use.
type EventStore struct {
	mu        sync.RWMutex
	sales     []domain.SalesTransaction
	inventory []domain.InventoryTransaction
	products  map[string]domain.Product
	logs      []domain.IntegrationLogEntry
}

// NewEventStore creates an empty in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{
		products: make(map[string]domain.Product),
	}
}

var (
	_ portsrepo.SalesEventStore      = (*EventStore)(nil)
	_ portsrepo.InventoryEventStore  = (*EventStore)(nil)
	_ portsrepo.ProductReader        = (*EventStore)(nil)
	_ portsrepo.IntegrationLogWriter = (*EventStore)(nil)
)

// SeedProduct registers product master data for COGS resolution.
func (s *EventStore) SeedProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ProductID] = p
}

// SaveSalesTransaction appends a sales event in insertion order.
func (s *EventStore) SaveSalesTransaction(ctx context.Context, ev domain.SalesTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append(s.sales, ev)
	return nil
}

// ListUnsyncedSales re-filters the live collection on every call.
func (s *EventStore) ListUnsyncedSales(ctx context.Context) ([]domain.SalesTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.SalesTransaction
	for _, ev := range s.sales {
		if !ev.SyncedToAccounting {
			out = append(out, ev)
		}
	}
	return out, nil
}

// ListSalesBetween returns sales events within the date range.
func (s *EventStore) ListSalesBetween(ctx context.Context, from, to time.Time) ([]domain.SalesTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.SalesTransaction
	for _, ev := range s.sales {
		if !ev.Date.Before(from) && !ev.Date.After(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

// MarkSalesSynced flips the flag for the matching event. Idempotent.
func (s *EventStore) MarkSalesSynced(ctx context.Context, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sales {
		if s.sales[i].TransactionID == transactionID {
			s.sales[i].SyncedToAccounting = true
			s.sales[i].LastUpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

// SaveInventoryTransaction appends an inventory event in insertion order.
func (s *EventStore) SaveInventoryTransaction(ctx context.Context, ev domain.InventoryTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory = append(s.inventory, ev)
	return nil
}

// ListUnsyncedInventory re-filters the live collection on every call.
func (s *EventStore) ListUnsyncedInventory(ctx context.Context) ([]domain.InventoryTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.InventoryTransaction
	for _, ev := range s.inventory {
		if !ev.SyncedToAccounting {
			out = append(out, ev)
		}
	}
	return out, nil
}

// ListInventoryBetween returns inventory events within the date range.
func (s *EventStore) ListInventoryBetween(ctx context.Context, from, to time.Time) ([]domain.InventoryTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.InventoryTransaction
	for _, ev := range s.inventory {
		if !ev.Date.Before(from) && !ev.Date.After(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

// MarkInventorySynced flips the flag for the matching event. Idempotent.
func (s *EventStore) MarkInventorySynced(ctx context.Context, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.inventory {
		if s.inventory[i].TransactionID == transactionID {
			s.inventory[i].SyncedToAccounting = true
			s.inventory[i].LastUpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

// FindProductByID resolves seeded product master data.
func (s *EventStore) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[productID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

// AppendLog records an integration activity entry.
func (s *EventStore) AppendLog(ctx context.Context, entry domain.IntegrationLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
	return nil
}

// Logs returns a copy of the integration activity log, oldest first.
func (s *EventStore) Logs() []domain.IntegrationLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.IntegrationLogEntry, len(s.logs))
	copy(out, s.logs)
	return out
}
