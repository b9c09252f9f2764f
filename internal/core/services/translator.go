package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Travelintrips/travelindashboard-sub001/internal/apperrors"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portsrepo "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/repositories"
	portssvc "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/services"
)

var (
	// ErrMappingNotFound means no account mapping is registered for the
	// event's transaction type. Per-event, recoverable on a later run.
	ErrMappingNotFound = errors.New("no account mapping for transaction type")

	// ErrProductNotFound means the product referenced by an inventory sale
	// could not be resolved, so cost of goods sold cannot be computed. The
	// whole event fails rather than posting an unbalanced revenue-only
	// transaction.
	ErrProductNotFound = errors.New("referenced product not found")
)

// TranslationError wraps a per-event translation failure with the identity of
// the event that caused it, so the orchestrator can report it and move on.
type TranslationError struct {
	EventID string
	Source  string // "sales" or "inventory"
	Err     error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translation failed for %s event %s: %v", e.Source, e.EventID, e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// translatorService converts domain events into balanced ledger transactions.
// Account names on entries are denormalized best-effort from the chart of
// accounts; an unknown code keeps the entry valid with an empty name.
type translatorService struct {
	BaseService

	mappings portssvc.MappingSvcFacade
	products portsrepo.ProductReader
	accounts portsrepo.AccountReader
}

// NewTranslatorService creates the event-to-ledger translator.
func NewTranslatorService(mappings portssvc.MappingSvcFacade, products portsrepo.ProductReader, accounts portsrepo.AccountReader) portssvc.TranslatorSvcFacade {
	return &translatorService{
		mappings: mappings,
		products: products,
		accounts: accounts,
	}
}

var _ portssvc.TranslatorSvcFacade = (*translatorService)(nil)

// newTransactionID derives the external transaction code from the source
// event ID. The code is deterministic: when an event is retried after a
// partial sync run, the replayed posting collides with the stored transaction
// instead of double-counting it.
func newTransactionID(eventID string) string {
	return "ACC-" + eventID
}

// newEntry builds one ledger line for the given account code, denormalizing
// the account ID and name when the account is known.
func (s *translatorService) newEntry(ctx context.Context, code string, debit, credit decimal.Decimal, description string) domain.TransactionEntry {
	entry := domain.TransactionEntry{
		EntryID:     uuid.NewString(),
		AccountCode: code,
		Debit:       debit,
		Credit:      credit,
		Description: description,
	}
	account, err := s.accounts.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Account lookup failed during translation",
				slog.String("account_code", code), slog.String("error", err.Error()))
		}
		return entry
	}
	entry.AccountID = account.AccountID
	entry.AccountName = account.Name
	return entry
}

// TranslateInventory converts one inventory movement into a balanced ledger
// transaction according to its movement type.
func (s *translatorService) TranslateInventory(ctx context.Context, ev domain.InventoryTransaction) (*domain.Transaction, error) {
	mapping, err := s.mappings.GetMapping(ctx, string(ev.TransactionType))
	if err != nil {
		return nil, &TranslationError{EventID: ev.TransactionID, Source: "inventory", Err: fmt.Errorf("%w: %s", ErrMappingNotFound, ev.TransactionType)}
	}

	txn := domain.Transaction{
		ID:            uuid.NewString(),
		TransactionID: newTransactionID(ev.TransactionID),
		Date:          ev.Date,
		Reference:     ev.TransactionID,
		Status:        domain.Posted,
	}

	switch ev.TransactionType {
	case domain.InventoryPurchase:
		txn.Description = fmt.Sprintf("Inventory purchase %s", ev.TransactionID)
		txn.Entries = []domain.TransactionEntry{
			s.newEntry(ctx, mapping.InventoryAccountCode, ev.TotalAmount, decimal.Zero, "Inventory received"),
			s.newEntry(ctx, mapping.CashAccountCode, decimal.Zero, ev.TotalAmount, "Payment for inventory"),
		}

	case domain.InventorySale:
		product, perr := s.products.FindProductByID(ctx, ev.ProductID)
		if perr != nil {
			return nil, &TranslationError{EventID: ev.TransactionID, Source: "inventory", Err: fmt.Errorf("%w: %s", ErrProductNotFound, ev.ProductID)}
		}
		cogs := product.CostPrice.Mul(ev.Quantity.Abs())
		txn.Description = fmt.Sprintf("Inventory sale %s", ev.TransactionID)
		txn.Entries = []domain.TransactionEntry{
			s.newEntry(ctx, mapping.CashAccountCode, ev.TotalAmount, decimal.Zero, "Sale proceeds"),
			s.newEntry(ctx, mapping.RevenueAccountCode, decimal.Zero, ev.TotalAmount, "Sales revenue"),
			s.newEntry(ctx, mapping.COGSAccountCode, cogs, decimal.Zero, "Cost of goods sold"),
			s.newEntry(ctx, mapping.InventoryAccountCode, decimal.Zero, cogs, "Inventory reduction"),
		}

	case domain.InventoryAdjustment:
		amount := ev.TotalAmount.Abs()
		txn.Description = fmt.Sprintf("Inventory adjustment %s", ev.TransactionID)
		if ev.Quantity.IsNegative() {
			// Shrinkage: value leaves inventory into the adjustment account.
			txn.Entries = []domain.TransactionEntry{
				s.newEntry(ctx, mapping.AdjustmentAccountCode, amount, decimal.Zero, "Inventory write-down"),
				s.newEntry(ctx, mapping.InventoryAccountCode, decimal.Zero, amount, "Inventory decrease"),
			}
		} else {
			txn.Entries = []domain.TransactionEntry{
				s.newEntry(ctx, mapping.InventoryAccountCode, amount, decimal.Zero, "Inventory increase"),
				s.newEntry(ctx, mapping.AdjustmentAccountCode, decimal.Zero, amount, "Inventory write-up"),
			}
		}

	default:
		return nil, &TranslationError{EventID: ev.TransactionID, Source: "inventory", Err: fmt.Errorf("unknown inventory transaction type %q", ev.TransactionType)}
	}

	if err := domain.ValidateBalance(txn); err != nil {
		return nil, &TranslationError{EventID: ev.TransactionID, Source: "inventory", Err: err}
	}
	return &txn, nil
}

// inventoryMappingKeys are the table keys owned by inventory movements. The
// sales fallback must never land on one: an inventory mapping may carry no
// revenue account, and posting against an empty code breaks the ledger's
// account reference.
var inventoryMappingKeys = map[string]bool{
	string(domain.InventoryPurchase):   true,
	string(domain.InventoryAdjustment): true,
	string(domain.InventorySale):       true,
}

// fallbackSalesMapping returns the first registered sales mapping with both
// posting sides configured, or nil when none qualifies.
func (s *translatorService) fallbackSalesMapping(ctx context.Context) *domain.AccountMapping {
	all, err := s.mappings.ListMappings(ctx)
	if err != nil {
		return nil
	}
	for i := range all {
		m := all[i]
		if inventoryMappingKeys[m.TransactionType] || m.CashAccountCode == "" || m.RevenueAccountCode == "" {
			continue
		}
		return &m
	}
	return nil
}

// TranslateSales converts one sales event into a two-entry ledger transaction.
// When no mapping matches the event's type, the first registered sales
// mapping is substituted; that fallback is intentional legacy behavior and is
// logged so it stays visible.
func (s *translatorService) TranslateSales(ctx context.Context, ev domain.SalesTransaction) (*domain.Transaction, error) {
	mapping, err := s.mappings.GetMapping(ctx, string(ev.TransactionType))
	if err != nil {
		mapping = s.fallbackSalesMapping(ctx)
		if mapping == nil {
			return nil, &TranslationError{EventID: ev.TransactionID, Source: "sales", Err: fmt.Errorf("%w: %s", ErrMappingNotFound, ev.TransactionType)}
		}
		s.LogWarn(ctx, "No mapping for sales type, falling back to first registered sales mapping",
			slog.String("transaction_type", string(ev.TransactionType)),
			slog.String("fallback_type", mapping.TransactionType))
	}

	txn := domain.Transaction{
		ID:            uuid.NewString(),
		TransactionID: newTransactionID(ev.TransactionID),
		Date:          ev.Date,
		Description:   fmt.Sprintf("%s sale to %s", ev.TransactionType, ev.CustomerName),
		Reference:     ev.TransactionID,
		Status:        domain.Posted,
		Entries: []domain.TransactionEntry{
			s.newEntry(ctx, mapping.CashAccountCode, ev.TotalAmount, decimal.Zero, fmt.Sprintf("Receivable for %s", ev.ProductName)),
			s.newEntry(ctx, mapping.RevenueAccountCode, decimal.Zero, ev.TotalAmount, fmt.Sprintf("Revenue for %s", ev.ProductName)),
		},
	}

	if err := domain.ValidateBalance(txn); err != nil {
		return nil, &TranslationError{EventID: ev.TransactionID, Source: "sales", Err: err}
	}
	return &txn, nil
}
