package dto

import (
	"time"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInventoryTransactionRequest is the payload of the
// createInventoryTransaction action.
type CreateInventoryTransactionRequest struct {
	TransactionType string          `json:"transactionType" binding:"required,oneof=PURCHASE SALE ADJUSTMENT"`
	ProductID       string          `json:"productID" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	TotalAmount     decimal.Decimal `json:"totalAmount" binding:"required"`
	Date            time.Time       `json:"date"`
}

// ToInventoryTransaction converts the request into an inventory domain event.
func (r CreateInventoryTransactionRequest) ToInventoryTransaction() domain.InventoryTransaction {
	date := r.Date
	if date.IsZero() {
		date = time.Now()
	}
	return domain.InventoryTransaction{
		TransactionType:    domain.InventoryTransactionType(r.TransactionType),
		ProductID:          r.ProductID,
		Quantity:           r.Quantity,
		UnitPrice:          r.UnitPrice,
		TotalAmount:        r.TotalAmount,
		Date:               date,
		SyncedToAccounting: false,
	}
}
