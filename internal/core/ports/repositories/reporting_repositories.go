package repositories

import (
	"context"
	"time"

	"github.com/omnibooks/ledger-engine/internal/core/domain"
)

// ReportingRepository defines the read-only aggregate queries behind the
// report views. All queries run over committed rows only; they never
// re-derive or correct balances.
type ReportingRepository interface {
	// GetTrialBalanceData returns per-account debit/credit totals for rows
	// dated on or before asOf, optionally filtered by branch (empty string
	// means all branches). Net is left zero; the service applies the
	// normal-balance convention.
	GetTrialBalanceData(ctx context.Context, asOf time.Time, branchID string) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData returns net amounts per INCOME account and per
	// EXPENSE account within [from, to], optionally filtered by branch.
	// Nets are raw debit-minus-credit sums; the service orients them.
	GetProfitAndLossData(ctx context.Context, from, to time.Time, branchID string) (income []domain.AccountAmount, expenses []domain.AccountAmount, err error)

	// GetCashFlowData returns debit (inflow) and credit (outflow) totals
	// grouped by the CASH and BANK subtypes within [from, to].
	GetCashFlowData(ctx context.Context, from, to time.Time) ([]domain.CashFlowGroup, error)

	// GetStatementRows returns one account's ledger rows within [from, to]
	// in commit order, for party-statement bucketing.
	GetStatementRows(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerRow, error)
}
