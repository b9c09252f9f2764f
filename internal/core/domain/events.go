package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryTransactionType classifies an inventory movement.
type InventoryTransactionType string

const (
	InventoryPurchase   InventoryTransactionType = "PURCHASE"
	InventorySale       InventoryTransactionType = "SALE"
	InventoryAdjustment InventoryTransactionType = "ADJUSTMENT"
)

// SalesTransactionType classifies a point-of-sale service transaction.
type SalesTransactionType string

const (
	SalesFlight           SalesTransactionType = "flight"
	SalesHotel            SalesTransactionType = "hotel"
	SalesExecutiveLounge  SalesTransactionType = "executive_lounge"
	SalesTransportation   SalesTransactionType = "transportation"
	SalesSapphireHandling SalesTransactionType = "sapphire_handling"
	SalesPorterService    SalesTransactionType = "porter_service"
	SalesModemRental      SalesTransactionType = "modem_rental"
	SalesSportCenter      SalesTransactionType = "sport_center"
)

// InventoryTransaction is a domain event describing an inventory movement that
// has to be reflected in the ledger. SyncedToAccounting is the sole authority
// for pending-queue membership: it starts false and is flipped exactly once by
// the sync orchestrator.
type InventoryTransaction struct {
	TransactionID      string                   `json:"transactionID"` // Primary Key (UUID)
	TransactionType    InventoryTransactionType `json:"transactionType"`
	ProductID          string                   `json:"productID"`
	Quantity           decimal.Decimal          `json:"quantity"` // Signed for adjustments
	UnitPrice          decimal.Decimal          `json:"unitPrice"`
	TotalAmount        decimal.Decimal          `json:"totalAmount"`
	Date               time.Time                `json:"date"`
	SyncedToAccounting bool                     `json:"syncedToAccounting"`
	AuditFields
}

// SalesTransaction is a domain event describing a completed service sale.
type SalesTransaction struct {
	TransactionID      string               `json:"transactionID"` // Primary Key (UUID)
	TransactionType    SalesTransactionType `json:"transactionType"`
	CustomerName       string               `json:"customerName"`
	ProductName        string               `json:"productName"`
	TotalAmount        decimal.Decimal      `json:"totalAmount"`
	Date               time.Time            `json:"date"`
	SyncedToAccounting bool                 `json:"syncedToAccounting"`
	AuditFields
}

// Product holds the product master data the translator needs to compute cost
// of goods sold for inventory sales.
type Product struct {
	ProductID    string          `json:"productID"`
	Name         string          `json:"name"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	StockQty     decimal.Decimal `json:"stockQty"`
}
