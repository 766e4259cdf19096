package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/omnibooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/omnibooks/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/omnibooks/ledger-engine/internal/core/ports/services"
	"github.com/omnibooks/ledger-engine/internal/logging"
	"github.com/omnibooks/ledger-engine/internal/utils/accounting"
)

// reportingService implements the read-only report views over committed
// ledger rows. It never re-derives or corrects balances: correctness rests
// entirely on the posting invariants.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates the report aggregator.
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingSvc {
	return &reportingService{reportingRepo: repo}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// TrialBalance implements portssvc.ReportingSvc.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time, branchID string) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	for i := range rows {
		rows[i].Net = accounting.NormalNet(rows[i].AccountType, rows[i].Debit, rows[i].Credit)
	}

	logging.FromContext(ctx).Debug("Trial balance generated",
		slog.Time("as_of", asOf),
		slog.Int("accounts", len(rows)))
	return rows, nil
}

// ProfitAndLoss implements portssvc.ReportingSvc. The repository returns
// raw debit-minus-credit nets; income accounts are credit-normal, so their
// nets are flipped here.
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time, branchID string) (*domain.PAndLReport, error) {
	income, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, from, to, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	totalIncome := decimal.Zero
	for i := range income {
		income[i].NetAmount = income[i].NetAmount.Neg()
		totalIncome = totalIncome.Add(income[i].NetAmount)
	}
	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.NetAmount)
	}

	report := &domain.PAndLReport{
		Income:        income,
		Expenses:      expenses,
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		NetProfit:     totalIncome.Sub(totalExpenses),
	}

	logging.FromContext(ctx).Debug("Profit and loss generated",
		slog.Time("from", from), slog.Time("to", to),
		slog.Int("income_accounts", len(income)),
		slog.Int("expense_accounts", len(expenses)))
	return report, nil
}

// CashFlow implements portssvc.ReportingSvc.
func (s *reportingService) CashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowReport, error) {
	groups, err := s.reportingRepo.GetCashFlowData(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cash flow data: %w", err)
	}

	net := decimal.Zero
	for i := range groups {
		groups[i].Net = groups[i].Inflow.Sub(groups[i].Outflow)
		net = net.Add(groups[i].Net)
	}

	return &domain.CashFlowReport{Groups: groups, Net: net}, nil
}

// PartyStatement implements portssvc.ReportingSvc. Rows are grouped by
// originating reference id: invoicing kinds open a bucket, payment kinds
// settle the bucket of their reference (or a standalone PAYMENT bucket
// when no invoice shares the reference), the rest adjust it. Buckets
// accumulate in commit order and carry the statement's running closing
// balance.
func (s *reportingService) PartyStatement(ctx context.Context, accountID string, from, to time.Time) (*domain.PartyStatement, error) {
	rows, err := s.reportingRepo.GetStatementRows(ctx, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve statement rows for account %s: %w", accountID, err)
	}

	buckets := make(map[string]*domain.StatementBucket)
	order := make([]string, 0, len(rows))

	bucketFor := func(row domain.LedgerRow, kind domain.RefKind) *domain.StatementBucket {
		if b, ok := buckets[row.RefID]; ok {
			return b
		}
		b := &domain.StatementBucket{
			RefID:   row.RefID,
			RefKind: kind,
			Date:    row.RowDate,
		}
		buckets[row.RefID] = b
		order = append(order, row.RefID)
		return b
	}

	for _, row := range rows {
		amount := row.Amount()
		switch row.RefKind.StatementRole() {
		case domain.RoleInvoice:
			b := bucketFor(row, row.RefKind)
			b.InvoiceAmount = b.InvoiceAmount.Add(amount)
		case domain.RolePayment:
			// A payment against an invoiced document lands in that
			// document's bucket; a standalone payment gets its own
			// synthetic PAYMENT bucket.
			b := bucketFor(row, domain.RefPayment)
			b.PaidAmount = b.PaidAmount.Add(amount)
		case domain.RoleAdjustment:
			b := bucketFor(row, row.RefKind)
			b.Adjustments = b.Adjustments.Add(amount)
		}
	}

	statement := &domain.PartyStatement{
		AccountID: accountID,
		Buckets:   make([]domain.StatementBucket, 0, len(order)),
	}
	closing := decimal.Zero
	for _, refID := range order {
		b := buckets[refID]
		b.Balance = b.InvoiceAmount.Sub(b.PaidAmount).Sub(b.Adjustments)
		closing = closing.Add(b.Balance)
		b.ClosingBalance = closing
		statement.Buckets = append(statement.Buckets, *b)
	}
	statement.ClosingBalance = closing

	logging.FromContext(ctx).Debug("Party statement generated",
		slog.String("account_id", accountID),
		slog.Int("buckets", len(statement.Buckets)))
	return statement, nil
}
