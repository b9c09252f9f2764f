package services

import (
	"context"
	"time"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	"github.com/Travelintrips/travelindashboard-sub001/internal/dto"
)

// LedgerSvcFacade manages the chart of accounts and the posting of validated
// ledger transactions.
type LedgerSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, code string, userID string) error

	// PostTransaction validates the double-entry balance invariant and then
	// persists the transaction through the primary path, falling back to the
	// manual two-step path on a primary failure.
	PostTransaction(ctx context.Context, txn domain.Transaction) error

	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	VoidTransaction(ctx context.Context, transactionID string, userID string, at time.Time) error
}

// ReportingSvcFacade generates the financial and operational reports consumed
// by the edge endpoints.
type ReportingSvcFacade interface {
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)
	IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error)
	SalesReport(ctx context.Context, from, to time.Time) ([]domain.SalesReportRow, error)
	InventoryReport(ctx context.Context, from, to time.Time) ([]domain.InventoryReportRow, error)
}
