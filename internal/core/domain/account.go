package domain

import (
	"github.com/shopspring/decimal"
)

// AccountCategory defines the fundamental accounting category of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// Account represents one ledger account in the chart of accounts.
// This is the primary representation used by services.
type Account struct {
	AccountID string          `json:"accountID"` // Primary Key (UUID)
	Code      string          `json:"code"`      // Human-assigned, unique (e.g. "1101")
	Name      string          `json:"name"`
	Category  AccountCategory `json:"category"`
	Balance   decimal.Decimal `json:"balance"` // Accumulated net of posted entries (debit - credit)
	IsActive  bool            `json:"isActive"`
	AuditFields
}
