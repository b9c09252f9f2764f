package dto

import (
	"time"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating a ledger account.
type CreateAccountRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
}

// EntryRequest is one ledger line of a postTransaction request.
type EntryRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// PostTransactionRequest is the payload of the postTransaction action.
type PostTransactionRequest struct {
	Date        time.Time      `json:"date" binding:"required"`
	Description string         `json:"description" binding:"required"`
	Reference   string         `json:"reference"`
	Entries     []EntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// BalanceSheetRequest is the payload of the getBalanceSheet action.
type BalanceSheetRequest struct {
	AsOf time.Time `json:"asOf" binding:"required"`
}

// PeriodRequest is the payload of the period-scoped report actions.
type PeriodRequest struct {
	From time.Time `json:"from" binding:"required"`
	To   time.Time `json:"to" binding:"required,gtefield=From"`
}

// ToTransaction converts a PostTransactionRequest into a domain transaction.
// Account IDs and names are resolved later by the ledger service.
func (r PostTransactionRequest) ToTransaction() domain.Transaction {
	entries := make([]domain.TransactionEntry, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = domain.TransactionEntry{
			AccountCode: e.AccountCode,
			Debit:       e.Debit,
			Credit:      e.Credit,
			Description: e.Description,
		}
	}
	return domain.Transaction{
		Date:        r.Date,
		Description: r.Description,
		Reference:   r.Reference,
		Entries:     entries,
	}
}
