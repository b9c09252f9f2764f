package repositories

import (
	"context"
	"time"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
)

// LedgerWriter defines the write paths to the ledger store.
//
// PostTransaction is the primary path: an atomic composite that persists the
// header and all entries, or nothing. InsertTransactionHeader plus
// InsertTransactionEntries form the manual two-step fallback used when the
// primary path fails. All three must be safe to retry: a replay of an already
// persisted transaction is a no-op, keyed on the external transaction code.
type LedgerWriter interface {
	PostTransaction(ctx context.Context, txn domain.Transaction) error
	InsertTransactionHeader(ctx context.Context, txn domain.Transaction) error
	InsertTransactionEntries(ctx context.Context, transactionID string, entries []domain.TransactionEntry) error

	// VoidTransaction transitions a Posted transaction to Voided.
	VoidTransaction(ctx context.Context, transactionID string, updatedBy string, updatedAt time.Time) error
}

// LedgerReader defines read operations for posted ledger data.
type LedgerReader interface {
	FindTransactionByCode(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, from, to time.Time, limit int) ([]domain.Transaction, error)
}

// ReportingReader defines the aggregation read paths consumed by the
// balance-sheet and income-statement reports.
type ReportingReader interface {
	// GetAccountActivity aggregates posted debit/credit sums per account up to asOf.
	GetAccountActivity(ctx context.Context, asOf time.Time) ([]domain.AccountActivityRow, error)

	// GetAccountActivityBetween aggregates posted debit/credit sums per account
	// for revenue and expense accounts within the period.
	GetAccountActivityBetween(ctx context.Context, from, to time.Time) ([]domain.AccountActivityRow, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerWriter
	LedgerReader
	ReportingReader
}
