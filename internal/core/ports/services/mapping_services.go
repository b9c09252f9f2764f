package services

import (
	"context"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
)

// MappingSvcFacade manages the static account mapping table that translates
// a domain transaction type into ledger account codes.
type MappingSvcFacade interface {
	// GetMapping looks a mapping up by its exact type key. Returns
	// apperrors.ErrNotFound when no mapping is registered for the key.
	GetMapping(ctx context.Context, transactionType string) (*domain.AccountMapping, error)

	// UpsertMapping replaces the mapping whose type key matches, or appends it.
	UpsertMapping(ctx context.Context, mapping domain.AccountMapping) error

	// ListMappings returns all mappings in registration order. The order is
	// stable for display and defines the first-mapping fallback for sales
	// events, but carries no other meaning.
	ListMappings(ctx context.Context) ([]domain.AccountMapping, error)
}
