package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/omnibooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/omnibooks/ledger-engine/internal/core/ports/repositories"
)

// reportingRepository implements the read-only aggregate queries behind the
// report views. Reads run outside any posting transaction; journal-granular
// write visibility guarantees they never see a half-written journal.
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(pool PgxPool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetTrialBalanceData retrieves per-account debit/credit totals as of a
// cutoff date. An empty branchID means all branches.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time, branchID string) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			COALESCE(SUM(lr.debit), 0) AS total_debit,
			COALESCE(SUM(lr.credit), 0) AS total_credit
		FROM ledger_rows lr
		JOIN accounts a ON lr.account_id = a.account_id
		JOIN journals j ON lr.journal_id = j.journal_id
		WHERE lr.row_date <= $1
			AND ($2 = '' OR j.branch_id = $2)
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, asOf, branchID)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&row.AccountType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// GetProfitAndLossData retrieves raw debit-minus-credit nets per INCOME and
// EXPENSE account within [from, to].
func (r *reportingRepository) GetProfitAndLossData(ctx context.Context, from, to time.Time, branchID string) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT
			a.account_type,
			a.account_id,
			a.name,
			SUM(lr.debit - lr.credit) AS net
		FROM ledger_rows lr
		JOIN accounts a ON lr.account_id = a.account_id
		JOIN journals j ON lr.journal_id = j.journal_id
		WHERE lr.row_date BETWEEN $1 AND $2
			AND ($3 = '' OR j.branch_id = $3)
			AND a.account_type IN ('INCOME', 'EXPENSE')
		GROUP BY a.account_type, a.account_id, a.name
		ORDER BY a.account_type, a.name;
	`

	rows, err := r.Pool.Query(ctx, query, from, to, branchID)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying profit and loss data: %w", err)
	}
	defer rows.Close()

	income := []domain.AccountAmount{}
	expenses := []domain.AccountAmount{}
	for rows.Next() {
		var accountType domain.AccountType
		var amount domain.AccountAmount
		if err := rows.Scan(&accountType, &amount.AccountID, &amount.Name, &amount.NetAmount); err != nil {
			return nil, nil, fmt.Errorf("error scanning profit and loss row: %w", err)
		}
		switch accountType {
		case domain.Income:
			income = append(income, amount)
		case domain.Expense:
			expenses = append(expenses, amount)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating profit and loss rows: %w", err)
	}
	return income, expenses, nil
}

// GetCashFlowData retrieves inflow/outflow totals grouped by the CASH and
// BANK subtypes within [from, to].
func (r *reportingRepository) GetCashFlowData(ctx context.Context, from, to time.Time) ([]domain.CashFlowGroup, error) {
	query := `
		SELECT
			a.sub_type,
			COALESCE(SUM(lr.debit), 0) AS inflow,
			COALESCE(SUM(lr.credit), 0) AS outflow
		FROM ledger_rows lr
		JOIN accounts a ON lr.account_id = a.account_id
		WHERE lr.row_date BETWEEN $1 AND $2
			AND a.sub_type IN ('CASH', 'BANK')
		GROUP BY a.sub_type
		ORDER BY a.sub_type;
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying cash flow data: %w", err)
	}
	defer rows.Close()

	groups := []domain.CashFlowGroup{}
	for rows.Next() {
		var group domain.CashFlowGroup
		if err := rows.Scan(&group.SubType, &group.Inflow, &group.Outflow); err != nil {
			return nil, fmt.Errorf("error scanning cash flow row: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash flow rows: %w", err)
	}
	return groups, nil
}

// GetStatementRows retrieves one account's ledger rows within [from, to] in
// commit order.
func (r *reportingRepository) GetStatementRows(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerRow, error) {
	query := `SELECT ` + rowColumns + `
		FROM ledger_rows
		WHERE account_id = $1 AND row_date BETWEEN $2 AND $3
		ORDER BY position;
	`

	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying statement rows for account %s: %w", accountID, err)
	}
	defer rows.Close()

	result := []domain.LedgerRow{}
	for rows.Next() {
		row, err := scanLedgerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning statement row for account %s: %w", accountID, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement rows for account %s: %w", accountID, err)
	}
	return result, nil
}
