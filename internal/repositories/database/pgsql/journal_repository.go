package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/omnibooks/ledger-engine/internal/apperrors"
	"github.com/omnibooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/omnibooks/ledger-engine/internal/core/ports/repositories"
	"github.com/omnibooks/ledger-engine/internal/utils/accounting"
	"github.com/omnibooks/ledger-engine/internal/utils/pagination"
)

// PgxJournalRepository persists journals and their ledger rows.
type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountDirectory
}

func newPgxJournalRepository(pool PgxPool, accountRepo portsrepo.AccountDirectory) portsrepo.JournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

const insertJournalQuery = `
	INSERT INTO journals (
		journal_id, journal_date, narration, ref_kind, ref_id, branch_id,
		total_debit, total_credit, status, original_journal_id, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

const insertRowQuery = `
	INSERT INTO ledger_rows (
		row_id, journal_id, account_id, debit, credit, balance,
		ref_kind, ref_id, related_entity_type, related_entity_id,
		narration, row_date, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

const lastBalanceQuery = `
	SELECT balance FROM ledger_rows
	WHERE account_id = $1
	ORDER BY position DESC
	LIMIT 1;
`

const markReversedQuery = `
	UPDATE journals
	SET status = 'REVERSED', reversing_journal_id = $2
	WHERE journal_id = $1 AND status = 'POSTED' AND reversing_journal_id IS NULL;
`

// SaveJournal commits one journal plus one ledger row per entry line as a
// single all-or-nothing unit. Within the transaction it locks the touched
// accounts' directory rows (sorted, FOR UPDATE) so that resolve-balance and
// write-row cannot interleave with another posting on the same account,
// then chains each row's balance from the account's latest committed row.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, rows []domain.LedgerRow) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op once committed

	_, err = tx.Exec(ctx, insertJournalQuery,
		journal.JournalID,
		journal.JournalDate,
		journal.Narration,
		journal.RefKind,
		journal.RefID,
		journal.BranchID,
		journal.TotalDebit,
		journal.TotalCredit,
		journal.Status,
		journal.OriginalJournalID,
		journal.CreatedAt,
	)
	if err != nil {
		return translatePgError("failed to insert journal "+journal.JournalID, err)
	}

	accountIDs := uniqueAccountIDs(rows)
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}

	// Prior balance per account, resolved after the locks are held.
	balances := make(map[string]decimal.Decimal, len(accountIDs))
	for _, accID := range accountIDs {
		var balance decimal.Decimal
		err := tx.QueryRow(ctx, lastBalanceQuery, accID).Scan(&balance)
		if errors.Is(err, pgx.ErrNoRows) {
			balance = decimal.Zero
		} else if err != nil {
			return translatePgError("failed to resolve balance for account "+accID, err)
		}
		balances[accID] = balance
	}

	for i := range rows {
		balance := accounting.RunningBalance(balances[rows[i].AccountID], rows[i].Debit, rows[i].Credit)
		balances[rows[i].AccountID] = balance
		rows[i].Balance = balance

		_, err = tx.Exec(ctx, insertRowQuery,
			rows[i].RowID,
			rows[i].JournalID,
			rows[i].AccountID,
			rows[i].Debit,
			rows[i].Credit,
			rows[i].Balance,
			rows[i].RefKind,
			rows[i].RefID,
			rows[i].RelatedEntityType,
			rows[i].RelatedEntityID,
			rows[i].Narration,
			rows[i].RowDate,
			rows[i].CreatedAt,
		)
		if err != nil {
			return translatePgError("failed to insert ledger row for journal "+journal.JournalID, err)
		}
	}

	if journal.RefKind == domain.RefReversal && journal.OriginalJournalID != nil {
		cmdTag, err := tx.Exec(ctx, markReversedQuery, *journal.OriginalJournalID, journal.JournalID)
		if err != nil {
			return translatePgError("failed to mark journal "+*journal.OriginalJournalID+" reversed", err)
		}
		if cmdTag.RowsAffected() == 0 {
			// Original vanished or was reversed by a concurrent caller.
			return fmt.Errorf("%w: journal %s is not reversible", apperrors.ErrConflict, *journal.OriginalJournalID)
		}
	}

	return r.Commit(ctx, tx)
}

func uniqueAccountIDs(rows []domain.LedgerRow) []string {
	seen := make(map[string]struct{}, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.AccountID]; ok {
			continue
		}
		seen[row.AccountID] = struct{}{}
		ids = append(ids, row.AccountID)
	}
	sort.Strings(ids)
	return ids
}

const journalColumns = `
	journal_id, journal_date, narration, ref_kind, ref_id, branch_id,
	total_debit, total_credit, status, original_journal_id, reversing_journal_id, created_at
`

// FindJournalByID retrieves a journal header by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`

	var journal domain.Journal
	var originalID, reversingID sql.NullString

	err := r.Pool.QueryRow(ctx, query, journalID).Scan(
		&journal.JournalID,
		&journal.JournalDate,
		&journal.Narration,
		&journal.RefKind,
		&journal.RefID,
		&journal.BranchID,
		&journal.TotalDebit,
		&journal.TotalCredit,
		&journal.Status,
		&originalID,
		&reversingID,
		&journal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal "+journalID, err)
	}

	if originalID.Valid {
		journal.OriginalJournalID = &originalID.String
	}
	if reversingID.Valid {
		journal.ReversingJournalID = &reversingID.String
	}
	return &journal, nil
}

const rowColumns = `
	row_id, journal_id, account_id, debit, credit, balance,
	ref_kind, ref_id, related_entity_type, related_entity_id,
	narration, row_date, position, created_at
`

func scanLedgerRow(rows pgx.Rows) (domain.LedgerRow, error) {
	var row domain.LedgerRow
	err := rows.Scan(
		&row.RowID,
		&row.JournalID,
		&row.AccountID,
		&row.Debit,
		&row.Credit,
		&row.Balance,
		&row.RefKind,
		&row.RefID,
		&row.RelatedEntityType,
		&row.RelatedEntityID,
		&row.Narration,
		&row.RowDate,
		&row.Position,
		&row.CreatedAt,
	)
	return row, err
}

// FindRowsByJournalID retrieves the ledger rows of one journal in commit order.
func (r *PgxJournalRepository) FindRowsByJournalID(ctx context.Context, journalID string) ([]domain.LedgerRow, error) {
	query := `SELECT ` + rowColumns + ` FROM ledger_rows WHERE journal_id = $1 ORDER BY position;`

	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query rows for journal "+journalID, err)
	}
	defer rows.Close()

	result := []domain.LedgerRow{}
	for rows.Next() {
		row, err := scanLedgerRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger row for journal "+journalID, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger rows for journal "+journalID, err)
	}
	return result, nil
}

// ListRowsByAccountID retrieves a page of an account's ledger rows, newest
// first, using a position cursor. It returns the rows, a token for the next
// page (nil on the last page), and an error.
func (r *PgxJournalRepository) ListRowsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerRow, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	var rows pgx.Rows
	var err error
	if nextToken != nil && *nextToken != "" {
		lastPosition, decodeErr := pagination.DecodePositionToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query := `SELECT ` + rowColumns + ` FROM ledger_rows WHERE account_id = $1 AND position < $2 ORDER BY position DESC LIMIT $3;`
		rows, err = r.Pool.Query(ctx, query, accountID, lastPosition, fetchLimit)
	} else {
		query := `SELECT ` + rowColumns + ` FROM ledger_rows WHERE account_id = $1 ORDER BY position DESC LIMIT $2;`
		rows, err = r.Pool.Query(ctx, query, accountID, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query rows for account "+accountID, err)
	}
	defer rows.Close()

	result := make([]domain.LedgerRow, 0, fetchLimit)
	for rows.Next() {
		row, err := scanLedgerRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger row for account "+accountID, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(result) > limit {
		result = result[:limit]
		token := pagination.EncodePositionToken(result[limit-1].Position)
		nextTokenVal = &token
	}
	return result, nextTokenVal, nil
}
