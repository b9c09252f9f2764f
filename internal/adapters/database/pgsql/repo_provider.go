package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	events := NewEventRepository(pool)
	return &portsrepo.RepositoryProvider{
		Ledger:          NewLedgerRepository(pool),
		Account:         NewAccountRepository(pool),
		SalesEvents:     events,
		InventoryEvents: events,
		Products:        events,
		IntegrationLog:  NewIntegrationLogRepository(pool),
	}
}
