package dto

import (
	"time"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest is the payload of the createSale action.
type CreateSaleRequest struct {
	TransactionType string          `json:"transactionType" binding:"required,oneof=flight hotel executive_lounge transportation sapphire_handling porter_service modem_rental sport_center"`
	CustomerName    string          `json:"customerName" binding:"required"`
	ProductName     string          `json:"productName" binding:"required"`
	TotalAmount     decimal.Decimal `json:"totalAmount" binding:"required"`
	Date            time.Time       `json:"date"`
}

// ToSalesTransaction converts the request into a sales domain event. The
// synced flag always starts false; the queue service owns the rest of the
// lifecycle fields.
func (r CreateSaleRequest) ToSalesTransaction() domain.SalesTransaction {
	date := r.Date
	if date.IsZero() {
		date = time.Now()
	}
	return domain.SalesTransaction{
		TransactionType:    domain.SalesTransactionType(r.TransactionType),
		CustomerName:       r.CustomerName,
		ProductName:        r.ProductName,
		TotalAmount:        r.TotalAmount,
		Date:               date,
		SyncedToAccounting: false,
	}
}
