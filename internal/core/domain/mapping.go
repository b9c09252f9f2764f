package domain

// AccountMapping is a static configuration row keyed by a domain transaction
// type. It names the ledger account codes used for each role an entry of that
// type can play. Role fields not used by a given type stay empty.
type AccountMapping struct {
	TransactionType       string `json:"transactionType" yaml:"transactionType"` // exact key, e.g. "PURCHASE" or "flight"
	CashAccountCode       string `json:"cashAccountCode" yaml:"cashAccountCode"` // cash or receivable side
	RevenueAccountCode    string `json:"revenueAccountCode" yaml:"revenueAccountCode"`
	InventoryAccountCode  string `json:"inventoryAccountCode" yaml:"inventoryAccountCode"`
	COGSAccountCode       string `json:"cogsAccountCode" yaml:"cogsAccountCode"`
	AdjustmentAccountCode string `json:"adjustmentAccountCode" yaml:"adjustmentAccountCode"`
	Description           string `json:"description" yaml:"description"`
}
