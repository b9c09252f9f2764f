package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Travelintrips/travelindashboard-sub001/internal/apperrors"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portsrepo "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/repositories"
	portssvc "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/services"
	"github.com/Travelintrips/travelindashboard-sub001/internal/dto"
)

var (
	ErrTransactionUnbalanced = errors.New("transaction entries do not balance")
	ErrTransactionMinEntries = errors.New("transaction must have at least two entries")

	// ErrPersistenceFailed means both the primary composite path and the
	// manual two-step fallback failed for a transaction. Batch level.
	ErrPersistenceFailed = errors.New("both persistence paths failed")
)

// ledgerService manages the chart of accounts and posts validated ledger
// transactions through the primary path with a two-step fallback.
type ledgerService struct {
	BaseService

	ledger   portsrepo.LedgerRepositoryFacade
	accounts portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledger portsrepo.LedgerRepositoryFacade, accounts portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledger:   ledger,
		accounts: accounts,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateAccount registers a new ledger account with a zero balance.
func (s *ledgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if existing, err := s.accounts.FindAccountByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("account code %s: %w", req.Code, apperrors.ErrDuplicate)
	}

	now := time.Now()
	account := domain.Account{
		AccountID: uuid.NewString(),
		Code:      req.Code,
		Name:      req.Name,
		Category:  domain.AccountCategory(req.Category),
		Balance:   decimal.Zero,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.accounts.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account %s: %w", req.Code, err)
	}
	s.LogInfo(ctx, "Account created", slog.String("code", account.Code), slog.String("category", req.Category))
	return &account, nil
}

// ListAccounts returns the chart of accounts.
func (s *ledgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.ListAccounts(ctx)
}

// DeactivateAccount flags an account inactive. Entries referencing it remain.
func (s *ledgerService) DeactivateAccount(ctx context.Context, code string, userID string) error {
	return s.accounts.DeactivateAccount(ctx, code, userID)
}

// validateTransaction applies the checks every posting must pass before it
// reaches a persistence path.
func (s *ledgerService) validateTransaction(txn domain.Transaction) error {
	if len(txn.Entries) < 2 {
		return fmt.Errorf("%w: got %d", ErrTransactionMinEntries, len(txn.Entries))
	}
	if err := domain.ValidateBalance(txn); err != nil {
		return fmt.Errorf("%w: %v", ErrTransactionUnbalanced, err)
	}
	return nil
}

// resolveEntryAccounts fills in denormalized account IDs and names for
// entries that arrived with only a code, as API postings do.
func (s *ledgerService) resolveEntryAccounts(ctx context.Context, txn *domain.Transaction) {
	for i := range txn.Entries {
		e := &txn.Entries[i]
		if e.AccountID != "" {
			continue
		}
		account, err := s.accounts.FindAccountByCode(ctx, e.AccountCode)
		if err != nil {
			continue
		}
		e.AccountID = account.AccountID
		e.AccountName = account.Name
	}
}

// PostTransaction validates the posting and persists it: primary composite
// path first, then the manual header-plus-entries fallback. Both paths are
// idempotent on the external transaction code, so a retry of a transaction
// that already landed is harmless.
func (s *ledgerService) PostTransaction(ctx context.Context, txn domain.Transaction) error {
	if err := s.validateTransaction(txn); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.TransactionID == "" {
		txn.TransactionID = fmt.Sprintf("ACC-%s-%d", txn.ID[:8], time.Now().UnixNano())
	}
	if txn.Status == "" {
		txn.Status = domain.Posted
	}
	for i := range txn.Entries {
		if txn.Entries[i].EntryID == "" {
			txn.Entries[i].EntryID = uuid.NewString()
		}
		txn.Entries[i].TransactionID = txn.ID
	}
	s.resolveEntryAccounts(ctx, &txn)

	primaryErr := s.ledger.PostTransaction(ctx, txn)
	if primaryErr == nil {
		return nil
	}
	s.LogWarn(ctx, "Primary persistence path failed, using two-step fallback",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("error", primaryErr.Error()))

	if err := s.ledger.InsertTransactionHeader(ctx, txn); err != nil {
		return fmt.Errorf("%w: primary: %v, fallback header: %v", ErrPersistenceFailed, primaryErr, err)
	}
	if err := s.ledger.InsertTransactionEntries(ctx, txn.ID, txn.Entries); err != nil {
		return fmt.Errorf("%w: primary: %v, fallback entries: %v", ErrPersistenceFailed, primaryErr, err)
	}
	return nil
}

// GetTransaction retrieves a transaction with its entries by external code.
func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.ledger.FindTransactionByCode(ctx, transactionID)
}

// VoidTransaction transitions a posted transaction to voided.
func (s *ledgerService) VoidTransaction(ctx context.Context, transactionID string, userID string, at time.Time) error {
	if err := s.ledger.VoidTransaction(ctx, transactionID, userID, at); err != nil {
		return fmt.Errorf("failed to void transaction %s: %w", transactionID, err)
	}
	s.LogInfo(ctx, "Transaction voided", slog.String("transaction_id", transactionID))
	return nil
}
