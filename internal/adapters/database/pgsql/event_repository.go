package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Travelintrips/travelindashboard-sub001/internal/apperrors"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portsrepo "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/repositories"
)

// EventRepository implements the sales, inventory and product ports over one
// connection pool.
type EventRepository struct {
	BaseRepository
}

// NewEventRepository creates a repository covering the sales and inventory
// event stores plus the product read path.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.SalesEventStore     = (*EventRepository)(nil)
	_ portsrepo.InventoryEventStore = (*EventRepository)(nil)
	_ portsrepo.ProductReader       = (*EventRepository)(nil)
)

const salesColumns = `transaction_id, transaction_type, customer_name, product_name, total_amount, date, synced_to_accounting, created_at, created_by, last_updated_at, last_updated_by`

// SaveSalesTransaction appends a sales event.
func (r *EventRepository) SaveSalesTransaction(ctx context.Context, ev domain.SalesTransaction) error {
	query := `
		INSERT INTO sales_transactions (` + salesColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		ev.TransactionID,
		ev.TransactionType,
		ev.CustomerName,
		ev.ProductName,
		ev.TotalAmount,
		ev.Date,
		ev.SyncedToAccounting,
		ev.CreatedAt,
		ev.CreatedBy,
		ev.LastUpdatedAt,
		ev.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sales transaction %s: %w", ev.TransactionID, err)
	}
	return nil
}

func (r *EventRepository) querySales(ctx context.Context, query string, args ...any) ([]domain.SalesTransaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales transactions: %w", err)
	}
	defer rows.Close()

	var events []domain.SalesTransaction
	for rows.Next() {
		var ev domain.SalesTransaction
		if err := rows.Scan(
			&ev.TransactionID,
			&ev.TransactionType,
			&ev.CustomerName,
			&ev.ProductName,
			&ev.TotalAmount,
			&ev.Date,
			&ev.SyncedToAccounting,
			&ev.CreatedAt,
			&ev.CreatedBy,
			&ev.LastUpdatedAt,
			&ev.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sales transaction row: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// ListUnsyncedSales returns pending sales events in insertion order.
func (r *EventRepository) ListUnsyncedSales(ctx context.Context) ([]domain.SalesTransaction, error) {
	query := `SELECT ` + salesColumns + ` FROM sales_transactions WHERE NOT synced_to_accounting ORDER BY created_at;`
	return r.querySales(ctx, query)
}

// ListSalesBetween returns sales events within the date range.
func (r *EventRepository) ListSalesBetween(ctx context.Context, from, to time.Time) ([]domain.SalesTransaction, error) {
	query := `SELECT ` + salesColumns + ` FROM sales_transactions WHERE date BETWEEN $1 AND $2 ORDER BY date;`
	return r.querySales(ctx, query, from, to)
}

// MarkSalesSynced flips the synced flag. A missing or already-synced ID
// affects zero rows and is not an error.
func (r *EventRepository) MarkSalesSynced(ctx context.Context, transactionID string) error {
	query := `
		UPDATE sales_transactions
		SET synced_to_accounting = TRUE, last_updated_at = $2
		WHERE transaction_id = $1 AND NOT synced_to_accounting;
	`
	if _, err := r.Pool.Exec(ctx, query, transactionID, time.Now()); err != nil {
		return fmt.Errorf("failed to mark sales transaction %s synced: %w", transactionID, err)
	}
	return nil
}

const inventoryColumns = `transaction_id, transaction_type, product_id, quantity, unit_price, total_amount, date, synced_to_accounting, created_at, created_by, last_updated_at, last_updated_by`

// SaveInventoryTransaction appends an inventory event.
func (r *EventRepository) SaveInventoryTransaction(ctx context.Context, ev domain.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		ev.TransactionID,
		ev.TransactionType,
		ev.ProductID,
		ev.Quantity,
		ev.UnitPrice,
		ev.TotalAmount,
		ev.Date,
		ev.SyncedToAccounting,
		ev.CreatedAt,
		ev.CreatedBy,
		ev.LastUpdatedAt,
		ev.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert inventory transaction %s: %w", ev.TransactionID, err)
	}
	return nil
}

func (r *EventRepository) queryInventory(ctx context.Context, query string, args ...any) ([]domain.InventoryTransaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory transactions: %w", err)
	}
	defer rows.Close()

	var events []domain.InventoryTransaction
	for rows.Next() {
		var ev domain.InventoryTransaction
		if err := rows.Scan(
			&ev.TransactionID,
			&ev.TransactionType,
			&ev.ProductID,
			&ev.Quantity,
			&ev.UnitPrice,
			&ev.TotalAmount,
			&ev.Date,
			&ev.SyncedToAccounting,
			&ev.CreatedAt,
			&ev.CreatedBy,
			&ev.LastUpdatedAt,
			&ev.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan inventory transaction row: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// ListUnsyncedInventory returns pending inventory events in insertion order.
func (r *EventRepository) ListUnsyncedInventory(ctx context.Context) ([]domain.InventoryTransaction, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_transactions WHERE NOT synced_to_accounting ORDER BY created_at;`
	return r.queryInventory(ctx, query)
}

// ListInventoryBetween returns inventory events within the date range.
func (r *EventRepository) ListInventoryBetween(ctx context.Context, from, to time.Time) ([]domain.InventoryTransaction, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_transactions WHERE date BETWEEN $1 AND $2 ORDER BY date;`
	return r.queryInventory(ctx, query, from, to)
}

// MarkInventorySynced flips the synced flag. Idempotent like the sales mark.
func (r *EventRepository) MarkInventorySynced(ctx context.Context, transactionID string) error {
	query := `
		UPDATE inventory_transactions
		SET synced_to_accounting = TRUE, last_updated_at = $2
		WHERE transaction_id = $1 AND NOT synced_to_accounting;
	`
	if _, err := r.Pool.Exec(ctx, query, transactionID, time.Now()); err != nil {
		return fmt.Errorf("failed to mark inventory transaction %s synced: %w", transactionID, err)
	}
	return nil
}

// FindProductByID resolves product master data for COGS computation.
func (r *EventRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT product_id, name, cost_price, selling_price, stock_qty FROM products WHERE product_id = $1;`
	var p domain.Product
	err := r.Pool.QueryRow(ctx, query, productID).Scan(&p.ProductID, &p.Name, &p.CostPrice, &p.SellingPrice, &p.StockQty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return &p, nil
}
