package dto

import "encoding/json"

// ActionRequest is the tagged-union envelope accepted by the action-verb
// endpoints: {"action": "...", "data": {...}}. The action tag selects the
// typed payload the handler decodes Data into; unknown actions are rejected
// at the boundary.
type ActionRequest struct {
	Action string          `json:"action" binding:"required"`
	Data   json.RawMessage `json:"data"`
}

// Accounting-data action verbs.
const (
	ActionGetBalanceSheet    = "getBalanceSheet"
	ActionGetIncomeStatement = "getIncomeStatement"
	ActionPostTransaction    = "postTransaction"
)

// Sales-data action verbs.
const (
	ActionCreateSale     = "createSale"
	ActionGetSalesReport = "getSalesReport"
)

// Inventory-data action verbs.
const (
	ActionCreateInventoryTransaction = "createInventoryTransaction"
	ActionGetInventoryReport         = "getInventoryReport"
)
