package domain

import "time"

// SyncResult aggregates the outcome of one synchronization run.
// Success is true iff Errors is empty.
type SyncResult struct {
	Success            bool          `json:"success"`
	SyncedCount        int           `json:"syncedCount"`
	FailedCount        int           `json:"failedCount"`
	Errors             []string      `json:"errors"`
	SyncedTransactions []Transaction `json:"syncedTransactions"`
}

// FullSyncResult carries the results of the two independent sub-runs of a
// full synchronization. Failure of one sub-run does not affect the other.
type FullSyncResult struct {
	Sales     SyncResult `json:"sales"`
	Inventory SyncResult `json:"inventory"`
}

// SyncStatus is a point-in-time snapshot of the pending queues and the most
// recent run, consumed by external callers.
type SyncStatus struct {
	PendingSalesCount     int        `json:"pendingSalesCount"`
	PendingInventoryCount int        `json:"pendingInventoryCount"`
	LastSyncTime          *time.Time `json:"lastSyncTime"`
	SyncErrorCount        int        `json:"syncErrorCount"`
}
