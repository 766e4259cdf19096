package services

import (
	"context"
	"time"

	"github.com/omnibooks/ledger-engine/internal/core/domain"
)

// ReportingSvc exposes the read-only report views. Reads may run
// concurrently with posting at any time; visibility is atomic at journal
// granularity.
type ReportingSvc interface {
	// TrialBalance reports per-account totals and normal-balance nets as
	// of a cutoff date, optionally filtered by branch.
	TrialBalance(ctx context.Context, asOf time.Time, branchID string) ([]domain.TrialBalanceRow, error)

	// ProfitAndLoss reports income minus expenses within [from, to],
	// optionally filtered by branch.
	ProfitAndLoss(ctx context.Context, from, to time.Time, branchID string) (*domain.PAndLReport, error)

	// CashFlow reports inflow/outflow grouped by CASH and BANK subtypes
	// within [from, to].
	CashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowReport, error)

	// PartyStatement groups one account's rows into per-document buckets
	// with a running closing balance.
	PartyStatement(ctx context.Context, accountID string, from, to time.Time) (*domain.PartyStatement, error)
}
