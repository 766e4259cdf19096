package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/omnibooks/ledger-engine/internal/core/domain"
)

// AccountDirectory exposes read-only access to the chart of accounts.
// The directory is owned by master-data flows outside this core: no write
// path exists here.
type AccountDirectory interface {
	// FindAccountByID retrieves one account, or apperrors.ErrNotFound.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the given accounts keyed by id. Missing
	// ids are simply absent from the result map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountsByIDsForUpdate locks the directory rows of the given
	// accounts inside tx, in sorted id order, and returns them. The row
	// locks are the per-account serialization point for posting: two
	// journals touching the same account cannot interleave their
	// resolve-balance/write-row steps while one holds the lock.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
}
