package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portsrepo "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/repositories"
)

type integrationLogRepository struct {
	BaseRepository
}

// NewIntegrationLogRepository creates the append-only integration activity log.
func NewIntegrationLogRepository(pool *pgxpool.Pool) portsrepo.IntegrationLogWriter {
	return &integrationLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// AppendLog appends one integration activity record.
func (r *integrationLogRepository) AppendLog(ctx context.Context, entry domain.IntegrationLogEntry) error {
	query := `
		INSERT INTO integration_logs (log_id, source_transaction_id, source_system, action, status, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.LogID,
		entry.SourceTransactionID,
		entry.SourceSystem,
		entry.Action,
		entry.Status,
		nullable(entry.Detail),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append integration log for %s: %w", entry.SourceTransactionID, err)
	}
	return nil
}
