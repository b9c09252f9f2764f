package repositories

import (
	"context"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	DeactivateAccount(ctx context.Context, code string, updatedBy string) error
}

// AccountRepositoryFacade combines account reader and writer.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
