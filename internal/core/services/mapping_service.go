package services

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/Travelintrips/travelindashboard-sub001/internal/apperrors"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portssvc "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/services"
	"gopkg.in/yaml.v3"
)

// mappingService holds the account mapping table in registration order with
// upsert-by-key semantics. It owns its state explicitly instead of relying on
// package-level globals, so tests get a fresh table per construction.
type mappingService struct {
	BaseService

	mu       sync.RWMutex
	mappings []domain.AccountMapping
	index    map[string]int // transaction type -> position in mappings
}

// NewMappingService creates a mapping service seeded with the given mappings,
// in order. Duplicate keys in the seed follow upsert semantics: the
// last-registered mapping for a key wins.
func NewMappingService(seed []domain.AccountMapping) portssvc.MappingSvcFacade {
	s := &mappingService{
		index: make(map[string]int),
	}
	for _, m := range seed {
		s.upsertLocked(m)
	}
	return s
}

var _ portssvc.MappingSvcFacade = (*mappingService)(nil)

// DefaultMappings returns the seed mapping table covering every inventory and
// sales transaction type against the standard chart of accounts.
func DefaultMappings() []domain.AccountMapping {
	sales := func(t domain.SalesTransactionType, revenueCode, desc string) domain.AccountMapping {
		return domain.AccountMapping{
			TransactionType:    string(t),
			CashAccountCode:    "1200",
			RevenueAccountCode: revenueCode,
			Description:        desc,
		}
	}
	return []domain.AccountMapping{
		{
			TransactionType:      string(domain.InventoryPurchase),
			InventoryAccountCode: "1101",
			CashAccountCode:      "1100",
			Description:          "Inventory purchase",
		},
		{
			TransactionType:      string(domain.InventorySale),
			CashAccountCode:      "1100",
			RevenueAccountCode:   "4101",
			COGSAccountCode:      "5101",
			InventoryAccountCode: "1101",
			Description:          "Inventory sale with cost of goods sold",
		},
		{
			TransactionType:       string(domain.InventoryAdjustment),
			InventoryAccountCode:  "1101",
			AdjustmentAccountCode: "5102",
			Description:           "Inventory adjustment",
		},
		sales(domain.SalesFlight, "4201", "Flight ticket sales"),
		sales(domain.SalesHotel, "4202", "Hotel booking sales"),
		sales(domain.SalesExecutiveLounge, "4203", "Executive lounge sales"),
		sales(domain.SalesTransportation, "4204", "Transportation sales"),
		sales(domain.SalesSapphireHandling, "4205", "Sapphire handling sales"),
		sales(domain.SalesPorterService, "4206", "Porter service sales"),
		sales(domain.SalesModemRental, "4207", "Modem rental sales"),
		sales(domain.SalesSportCenter, "4208", "Sport center sales"),
	}
}

// LoadMappingFile reads account mapping overrides from a YAML file. The file
// holds a flat list of mappings that are upserted on top of the seed table.
func LoadMappingFile(path string) ([]domain.AccountMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	var doc struct {
		Mappings []domain.AccountMapping `yaml:"mappings"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse mapping file %s: %w", path, err)
	}
	return doc.Mappings, nil
}

func (s *mappingService) upsertLocked(m domain.AccountMapping) {
	if pos, ok := s.index[m.TransactionType]; ok {
		s.mappings[pos] = m
		return
	}
	s.index[m.TransactionType] = len(s.mappings)
	s.mappings = append(s.mappings, m)
}

// GetMapping looks a mapping up by its exact type key.
func (s *mappingService) GetMapping(ctx context.Context, transactionType string) (*domain.AccountMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[transactionType]
	if !ok {
		return nil, fmt.Errorf("no account mapping for transaction type %q: %w", transactionType, apperrors.ErrNotFound)
	}
	m := s.mappings[pos]
	return &m, nil
}

// UpsertMapping replaces the mapping whose type key matches, or appends it.
func (s *mappingService) UpsertMapping(ctx context.Context, mapping domain.AccountMapping) error {
	if mapping.TransactionType == "" {
		return fmt.Errorf("mapping transaction type is required: %w", apperrors.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(mapping)
	return nil
}

// ListMappings returns a copy of the table in registration order.
func (s *mappingService) ListMappings(ctx context.Context) ([]domain.AccountMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.AccountMapping, len(s.mappings))
	copy(out, s.mappings)
	return out, nil
}
