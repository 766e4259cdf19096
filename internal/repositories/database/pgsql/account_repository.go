package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/omnibooks/ledger-engine/internal/apperrors"
	"github.com/omnibooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/omnibooks/ledger-engine/internal/core/ports/repositories"
)

// PgxAccountRepository reads the chart of accounts. The directory is
// maintained by master-data flows elsewhere; this core only reads it and
// uses its rows as per-account lock anchors during posting.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool PgxPool) portsrepo.AccountDirectory {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountDirectory = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, code, name, account_type, sub_type, parent_account_id, status, created_at`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var acc domain.Account
	var parentID *string
	err := row.Scan(
		&acc.AccountID,
		&acc.Code,
		&acc.Name,
		&acc.AccountType,
		&acc.SubType,
		&parentID,
		&acc.Status,
		&acc.CreatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}
	if parentID != nil {
		acc.ParentAccountID = *parentID
	}
	return acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountID, err)
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves the given accounts keyed by id. Missing ids
// are absent from the result; the validator decides what that means.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// FindAccountsByIDsForUpdate locks the directory rows of the given accounts
// inside tx and returns them. Rows are locked in sorted id order so that
// concurrent postings sharing accounts acquire locks in the same sequence
// and cannot deadlock each other.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	sorted := make([]string, len(accountIDs))
	copy(sorted, accountIDs)
	sort.Strings(sorted)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, translatePgError("failed to lock accounts", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(sorted))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked account row", err)
		}
		accounts[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError("error iterating locked account rows", err)
	}

	for _, id := range sorted {
		if _, ok := accounts[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accounts, nil
}
