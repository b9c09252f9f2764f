package dto

import (
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
)

// SyncResultResponse is the wire shape of one sync run's outcome.
type SyncResultResponse struct {
	Success            bool                  `json:"success"`
	SyncedCount        int                   `json:"syncedCount"`
	FailedCount        int                   `json:"failedCount"`
	Errors             []string              `json:"errors"`
	SyncedTransactions []TransactionResponse `json:"syncedTransactions"`
}

// TransactionResponse is the wire shape of a posted ledger transaction.
type TransactionResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transactionID"`
	Description   string          `json:"description"`
	Reference     string          `json:"reference,omitempty"`
	Status        string          `json:"status"`
	Entries       []EntryResponse `json:"entries"`
}

// EntryResponse is the wire shape of one ledger line.
type EntryResponse struct {
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName,omitempty"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	Description string `json:"description,omitempty"`
}

// ToTransactionResponse converts a domain transaction to its wire shape.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	entries := make([]EntryResponse, len(txn.Entries))
	for i, e := range txn.Entries {
		entries[i] = EntryResponse{
			AccountCode: e.AccountCode,
			AccountName: e.AccountName,
			Debit:       e.Debit.String(),
			Credit:      e.Credit.String(),
			Description: e.Description,
		}
	}
	return TransactionResponse{
		ID:            txn.ID,
		TransactionID: txn.TransactionID,
		Description:   txn.Description,
		Reference:     txn.Reference,
		Status:        string(txn.Status),
		Entries:       entries,
	}
}

// ToSyncResultResponse converts a domain sync result to its wire shape.
func ToSyncResultResponse(res *domain.SyncResult) SyncResultResponse {
	txns := make([]TransactionResponse, len(res.SyncedTransactions))
	for i := range res.SyncedTransactions {
		txns[i] = ToTransactionResponse(&res.SyncedTransactions[i])
	}
	errs := res.Errors
	if errs == nil {
		errs = []string{}
	}
	return SyncResultResponse{
		Success:            res.Success,
		SyncedCount:        res.SyncedCount,
		FailedCount:        res.FailedCount,
		Errors:             errs,
		SyncedTransactions: txns,
	}
}
