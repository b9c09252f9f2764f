package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the lifecycle state of a ledger transaction.
type TransactionStatus string

const (
	Draft  TransactionStatus = "DRAFT"
	Posted TransactionStatus = "POSTED"
	Voided TransactionStatus = "VOIDED"
)

// Transaction represents a single, balanced ledger posting composed of multiple entries.
// A transaction is created atomically with its entries and is immutable once
// Posted, except for the status transition to Voided.
type Transaction struct {
	ID            string             `json:"id"`            // Primary Key (UUID)
	TransactionID string             `json:"transactionID"` // External-facing code, unique
	Date          time.Time          `json:"date"`
	Description   string             `json:"description"`
	Reference     string             `json:"reference"` // Link back to the source domain event, nullable
	Entries       []TransactionEntry `json:"entries"`
	Status        TransactionStatus  `json:"status"`
	AuditFields
}

// TransactionEntry represents a single ledger line within a Transaction,
// affecting one account. Account code and name are denormalized for reporting.
type TransactionEntry struct {
	EntryID       string          `json:"entryID"`       // Primary Key (UUID)
	TransactionID string          `json:"transactionID"` // FK -> Transaction.ID
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	Debit         decimal.Decimal `json:"debit"`  // >= 0
	Credit        decimal.Decimal `json:"credit"` // >= 0
	Description   string          `json:"description"`
}

// EntryTotals returns the sum of debits and the sum of credits across all entries.
func (t Transaction) EntryTotals() (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, e := range t.Entries {
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}
	return debits, credits
}

// Balanced reports whether the transaction satisfies the double-entry
// invariant: sum(debit) == sum(credit) over all entries.
func (t Transaction) Balanced() bool {
	debits, credits := t.EntryTotals()
	return debits.Equal(credits)
}

// ValidateBalance checks the double-entry invariant and that no entry carries
// a negative amount. Any translator output must pass this check before it is
// treated as valid.
func ValidateBalance(t Transaction) error {
	for _, e := range t.Entries {
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return fmt.Errorf("entry for account %s has a negative amount", e.AccountCode)
		}
	}
	debits, credits := t.EntryTotals()
	if !debits.Equal(credits) {
		return fmt.Errorf("transaction %s does not balance: debits %s, credits %s",
			t.TransactionID, debits.String(), credits.String())
	}
	return nil
}
