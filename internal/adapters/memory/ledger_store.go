package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Travelintrips/travelindashboard-sub001/internal/apperrors"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portsrepo "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/repositories"
)

// LedgerStore keeps the chart of accounts and posted transactions in process
// memory. It mirrors the postgres repository semantics, including the
// idempotent replay behaviour of the persistence paths.
type LedgerStore struct {
	mu       sync.RWMutex
	accounts []domain.Account
	txns     []domain.Transaction
	byCode   map[string]int // external transaction code -> index
	byID     map[string]int // internal id -> index
}

// NewLedgerStore creates an empty in-memory ledger store.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		byCode: make(map[string]int),
		byID:   make(map[string]int),
	}
}

var (
	_ portsrepo.LedgerRepositoryFacade  = (*LedgerStore)(nil)
	_ portsrepo.AccountRepositoryFacade = (*LedgerStore)(nil)
)

// SaveAccount inserts or updates an account keyed by code.
func (s *LedgerStore) SaveAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].Code == account.Code {
			s.accounts[i] = account
			return nil
		}
	}
	s.accounts = append(s.accounts, account)
	return nil
}

// FindAccountByCode looks an account up by its ledger code.
func (s *LedgerStore) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.accounts {
		if s.accounts[i].Code == code {
			a := s.accounts[i]
			return &a, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// ListAccounts returns all accounts in insertion order.
func (s *LedgerStore) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, len(s.accounts))
	copy(out, s.accounts)
	return out, nil
}

// DeactivateAccount marks an account inactive.
func (s *LedgerStore) DeactivateAccount(ctx context.Context, code string, updatedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].Code == code {
			s.accounts[i].IsActive = false
			s.accounts[i].LastUpdatedBy = updatedBy
			s.accounts[i].LastUpdatedAt = time.Now()
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// PostTransaction atomically stores the transaction and applies its entries
// to the account balances. Replays of an already posted transaction code are
// a no-op.
func (s *LedgerStore) PostTransaction(ctx context.Context, txn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byCode[txn.TransactionID]; ok {
		return nil
	}
	txn.Status = domain.Posted
	s.txns = append(s.txns, txn)
	s.byCode[txn.TransactionID] = len(s.txns) - 1
	s.byID[txn.ID] = len(s.txns) - 1
	s.applyBalances(txn.Entries)
	return nil
}

// InsertTransactionHeader stores the transaction without entries. Part of the
// manual two-step fallback path.
func (s *LedgerStore) InsertTransactionHeader(ctx context.Context, txn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byCode[txn.TransactionID]; ok {
		return nil
	}
	txn.Status = domain.Posted
	txn.Entries = nil
	s.txns = append(s.txns, txn)
	s.byCode[txn.TransactionID] = len(s.txns) - 1
	s.byID[txn.ID] = len(s.txns) - 1
	return nil
}

// InsertTransactionEntries attaches entries to a previously inserted header
// and applies the balance updates. The key is the internal transaction id.
func (s *LedgerStore) InsertTransactionEntries(ctx context.Context, transactionID string, entries []domain.TransactionEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.byID[transactionID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if len(s.txns[idx].Entries) > 0 {
		return nil
	}
	s.txns[idx].Entries = append([]domain.TransactionEntry(nil), entries...)
	s.applyBalances(entries)
	return nil
}

// VoidTransaction transitions a posted transaction to voided.
func (s *LedgerStore) VoidTransaction(ctx context.Context, transactionID string, updatedBy string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.byCode[transactionID]
	if !ok || s.txns[idx].Status != domain.Posted {
		return apperrors.ErrNotFound
	}
	s.txns[idx].Status = domain.Voided
	s.txns[idx].LastUpdatedBy = updatedBy
	s.txns[idx].LastUpdatedAt = updatedAt
	return nil
}

// FindTransactionByCode looks a transaction up by its external code.
func (s *LedgerStore) FindTransactionByCode(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byCode[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	txn := s.txns[idx]
	return &txn, nil
}

// ListTransactions returns posted transactions within the date range, newest
// first, capped at limit when positive.
func (s *LedgerStore) ListTransactions(ctx context.Context, from, to time.Time, limit int) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Transaction
	for i := len(s.txns) - 1; i >= 0; i-- {
		t := s.txns[i]
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		out = append(out, t)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// GetAccountActivity aggregates posted entry sums per account up to asOf.
func (s *LedgerStore) GetAccountActivity(ctx context.Context, asOf time.Time) ([]domain.AccountActivityRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aggregate(func(t domain.Transaction) bool {
		return !t.Date.After(asOf)
	}, nil), nil
}

// GetAccountActivityBetween aggregates posted revenue and expense entry sums
// per account within the period.
func (s *LedgerStore) GetAccountActivityBetween(ctx context.Context, from, to time.Time) ([]domain.AccountActivityRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	periodCats := map[domain.AccountCategory]bool{
		domain.Revenue: true,
		domain.Expense: true,
	}
	return s.aggregate(func(t domain.Transaction) bool {
		return !t.Date.Before(from) && !t.Date.After(to)
	}, periodCats), nil
}

func (s *LedgerStore) aggregate(include func(domain.Transaction) bool, categories map[domain.AccountCategory]bool) []domain.AccountActivityRow {
	type agg struct {
		row domain.AccountActivityRow
	}
	byAccount := make(map[string]*agg)
	var order []string
	for _, t := range s.txns {
		if t.Status != domain.Posted || !include(t) {
			continue
		}
		for _, e := range t.Entries {
			acct := s.accountByCode(e.AccountCode)
			if acct == nil {
				continue
			}
			if categories != nil && !categories[acct.Category] {
				continue
			}
			a, ok := byAccount[e.AccountCode]
			if !ok {
				a = &agg{row: domain.AccountActivityRow{
					AccountID:   acct.AccountID,
					AccountCode: acct.Code,
					AccountName: acct.Name,
					Category:    acct.Category,
				}}
				byAccount[e.AccountCode] = a
				order = append(order, e.AccountCode)
			}
			a.row.Debit = a.row.Debit.Add(e.Debit)
			a.row.Credit = a.row.Credit.Add(e.Credit)
		}
	}
	rows := make([]domain.AccountActivityRow, 0, len(order))
	for _, code := range order {
		rows = append(rows, byAccount[code].row)
	}
	return rows
}

func (s *LedgerStore) accountByCode(code string) *domain.Account {
	for i := range s.accounts {
		if s.accounts[i].Code == code {
			return &s.accounts[i]
		}
	}
	return nil
}

func (s *LedgerStore) applyBalances(entries []domain.TransactionEntry) {
	for _, e := range entries {
		if acct := s.accountByCode(e.AccountCode); acct != nil {
			acct.Balance = acct.Balance.Add(e.Debit.Sub(e.Credit))
		}
	}
}
