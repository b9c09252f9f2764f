package services

import (
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portsrepo "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/repositories"
	portssvc "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/services"
)

// ContainerConfig carries the wiring knobs the container cannot derive from
// the repositories alone.
type ContainerConfig struct {
	MappingSeed     []domain.AccountMapping
	Notifier        portssvc.Notifier
	NotifyRecipient string
}

// NewContainer creates the service container with properly initialized
// dependencies.
func NewContainer(repos *portsrepo.RepositoryProvider, cfg ContainerConfig) *portssvc.ServiceContainer {
	seed := cfg.MappingSeed
	if seed == nil {
		seed = DefaultMappings()
	}

	mapping := NewMappingService(seed)
	queue := NewPendingQueueService(repos.SalesEvents, repos.InventoryEvents)
	ledger := NewLedgerService(repos.Ledger, repos.Account)
	translator := NewTranslatorService(mapping, repos.Products, repos.Account)
	syncSvc := NewSyncService(queue, translator, ledger, repos.IntegrationLog, cfg.Notifier, cfg.NotifyRecipient)
	reporting := NewReportingService(repos.Ledger, repos.SalesEvents, repos.InventoryEvents)

	return &portssvc.ServiceContainer{
		Mapping:   mapping,
		Queue:     queue,
		Ledger:    ledger,
		Sync:      syncSvc,
		Reporting: reporting,
	}
}
