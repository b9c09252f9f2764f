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

type ledgerRepository struct {
	BaseRepository
}

// NewLedgerRepository creates a new repository for ledger transaction data.
func NewLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &ledgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

const insertHeaderQuery = `
	INSERT INTO transactions (id, transaction_id, date, description, reference, status, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (transaction_id) DO NOTHING;
`

const insertEntryQuery = `
	INSERT INTO transaction_entries (entry_id, transaction_id, account_id, account_code, account_name, debit, credit, description)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (entry_id) DO NOTHING;
`

// PostTransaction persists the header, all entries and the account balance
// deltas atomically within one database transaction. Replaying a transaction
// whose external code already landed is a no-op.
func (r *ledgerRepository) PostTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, insertHeaderQuery,
		txn.ID,
		txn.TransactionID,
		txn.Date,
		txn.Description,
		nullable(txn.Reference),
		txn.Status,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		// Retry of an already-posted transaction.
		return tx.Commit(ctx)
	}

	batch := &pgx.Batch{}
	for _, e := range txn.Entries {
		batch.Queue(insertEntryQuery,
			e.EntryID,
			txn.ID,
			nullable(e.AccountID),
			e.AccountCode,
			nullable(e.AccountName),
			e.Debit,
			e.Credit,
			nullable(e.Description),
		)
		batch.Queue(
			`UPDATE accounts SET balance = balance + $2 - $3, last_updated_at = $4 WHERE code = $1;`,
			e.AccountCode, e.Debit, e.Credit, time.Now(),
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute entry batch for transaction %s: %w", txn.TransactionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// InsertTransactionHeader is step one of the manual fallback path.
func (r *ledgerRepository) InsertTransactionHeader(ctx context.Context, txn domain.Transaction) error {
	_, err := r.Pool.Exec(ctx, insertHeaderQuery,
		txn.ID,
		txn.TransactionID,
		txn.Date,
		txn.Description,
		nullable(txn.Reference),
		txn.Status,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction header %s: %w", txn.TransactionID, err)
	}
	return nil
}

// InsertTransactionEntries is step two of the manual fallback path.
func (r *ledgerRepository) InsertTransactionEntries(ctx context.Context, transactionID string, entries []domain.TransactionEntry) error {
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(insertEntryQuery,
			e.EntryID,
			transactionID,
			nullable(e.AccountID),
			e.AccountCode,
			nullable(e.AccountName),
			e.Debit,
			e.Credit,
			nullable(e.Description),
		)
		batch.Queue(
			`UPDATE accounts SET balance = balance + $2 - $3, last_updated_at = $4 WHERE code = $1;`,
			e.AccountCode, e.Debit, e.Credit, time.Now(),
		)
	}
	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert entries for transaction %s: %w", transactionID, err)
	}
	return nil
}

// VoidTransaction transitions a Posted transaction to Voided.
func (r *ledgerRepository) VoidTransaction(ctx context.Context, transactionID string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND status = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, domain.Voided, updatedAt, updatedBy, domain.Posted)
	if err != nil {
		return fmt.Errorf("failed to void transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const transactionColumns = `id, transaction_id, date, description, COALESCE(reference, ''), status, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.ID,
		&t.TransactionID,
		&t.Date,
		&t.Description,
		&t.Reference,
		&t.Status,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindTransactionByCode retrieves a transaction with its entries by its
// external-facing code.
func (r *ledgerRepository) FindTransactionByCode(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	entries, err := r.findEntries(ctx, txn.ID)
	if err != nil {
		return nil, err
	}
	txn.Entries = entries
	return txn, nil
}

func (r *ledgerRepository) findEntries(ctx context.Context, id string) ([]domain.TransactionEntry, error) {
	query := `
		SELECT entry_id, transaction_id, COALESCE(account_id, ''), account_code, COALESCE(account_name, ''), debit, credit, COALESCE(description, '')
		FROM transaction_entries
		WHERE transaction_id = $1
		ORDER BY entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for transaction %s: %w", id, err)
	}
	defer rows.Close()

	var entries []domain.TransactionEntry
	for rows.Next() {
		var e domain.TransactionEntry
		if err := rows.Scan(&e.EntryID, &e.TransactionID, &e.AccountID, &e.AccountCode, &e.AccountName, &e.Debit, &e.Credit, &e.Description); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListTransactions returns posted transactions within the date range, newest first.
func (r *ledgerRepository) ListTransactions(ctx context.Context, from, to time.Time, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE date BETWEEN $1 AND $2
		ORDER BY date DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	return txns, rows.Err()
}

// GetAccountActivity aggregates posted debit and credit sums per account up to asOf.
func (r *ledgerRepository) GetAccountActivity(ctx context.Context, asOf time.Time) ([]domain.AccountActivityRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.category,
			COALESCE(SUM(e.debit), 0) AS total_debit,
			COALESCE(SUM(e.credit), 0) AS total_credit
		FROM transaction_entries e
		JOIN accounts a ON e.account_code = a.code
		JOIN transactions t ON e.transaction_id = t.id
		WHERE t.date <= $1
			AND t.status = 'POSTED'
		GROUP BY a.account_id, a.code, a.name, a.category
		ORDER BY a.code;
	`
	return r.queryActivity(ctx, query, asOf)
}

// GetAccountActivityBetween aggregates revenue and expense activity within a period.
func (r *ledgerRepository) GetAccountActivityBetween(ctx context.Context, from, to time.Time) ([]domain.AccountActivityRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.category,
			COALESCE(SUM(e.debit), 0) AS total_debit,
			COALESCE(SUM(e.credit), 0) AS total_credit
		FROM transaction_entries e
		JOIN accounts a ON e.account_code = a.code
		JOIN transactions t ON e.transaction_id = t.id
		WHERE t.date BETWEEN $1 AND $2
			AND t.status = 'POSTED'
			AND a.category IN ('REVENUE', 'EXPENSE')
		GROUP BY a.account_id, a.code, a.name, a.category
		ORDER BY a.code;
	`
	return r.queryActivity(ctx, query, from, to)
}

func (r *ledgerRepository) queryActivity(ctx context.Context, query string, args ...any) ([]domain.AccountActivityRow, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account activity: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountActivityRow{}
	for rows.Next() {
		var row domain.AccountActivityRow
		if err := rows.Scan(&row.AccountID, &row.AccountCode, &row.AccountName, &row.Category, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan account activity row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating account activity rows: %w", err)
	}
	return result, nil
}

// nullable maps empty strings to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
