package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	Ledger          LedgerRepositoryFacade
	Account         AccountRepositoryFacade
	SalesEvents     SalesEventStore
	InventoryEvents InventoryEventStore
	Products        ProductReader
	IntegrationLog  IntegrationLogWriter
}
