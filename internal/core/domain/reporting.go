package domain

import (
	"github.com/shopspring/decimal"
)

// AccountActivityRow is one account's aggregated debit and credit activity,
// as returned by the reporting read path.
type AccountActivityRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Category    AccountCategory `json:"category"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// BalanceSheetReport groups net account balances as of a date.
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// IncomeStatementReport groups revenue and expense activity over a period.
type IncomeStatementReport struct {
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// SalesReportRow aggregates sales transactions by service type.
type SalesReportRow struct {
	TransactionType  SalesTransactionType `json:"transactionType"`
	TransactionCount int                  `json:"transactionCount"`
	TotalAmount      decimal.Decimal      `json:"totalAmount"`
}

// InventoryReportRow aggregates inventory movements by movement type.
type InventoryReportRow struct {
	TransactionType  InventoryTransactionType `json:"transactionType"`
	TransactionCount int                      `json:"transactionCount"`
	TotalQuantity    decimal.Decimal          `json:"totalQuantity"`
	TotalAmount      decimal.Decimal          `json:"totalAmount"`
}
