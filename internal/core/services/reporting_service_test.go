package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/omnibooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/omnibooks/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/omnibooks/ledger-engine/internal/core/ports/services"
	"github.com/omnibooks/ledger-engine/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time, branchID string) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, asOf, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetProfitAndLossData(ctx context.Context, from, to time.Time, branchID string) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	args := m.Called(ctx, from, to, branchID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.AccountAmount), args.Get(1).([]domain.AccountAmount), args.Error(2)
}

func (m *MockReportingRepository) GetCashFlowData(ctx context.Context, from, to time.Time) ([]domain.CashFlowGroup, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashFlowGroup), args.Error(1)
}

func (m *MockReportingRepository) GetStatementRows(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerRow, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerRow), args.Error(1)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvc
	from     time.Time
	to       time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
	suite.from = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_AppliesNormalBalanceConvention() {
	ctx := context.Background()
	asOf := suite.to

	raw := []domain.TrialBalanceRow{
		{AccountID: "a1", AccountCode: "1001", AccountType: domain.Asset, Debit: dec("900.00"), Credit: dec("400.00")},
		{AccountID: "a2", AccountCode: "2001", AccountType: domain.Liability, Debit: dec("100.00"), Credit: dec("600.00")},
		{AccountID: "a3", AccountCode: "4001", AccountType: domain.Income, Debit: dec("0"), Credit: dec("500.00")},
		{AccountID: "a4", AccountCode: "5001", AccountType: domain.Expense, Debit: dec("250.00"), Credit: dec("0")},
	}
	suite.mockRepo.On("GetTrialBalanceData", ctx, asOf, "").Return(raw, nil).Once()

	rows, err := suite.service.TrialBalance(ctx, asOf, "")

	suite.Require().NoError(err)
	suite.Require().Len(rows, 4)
	suite.True(rows[0].Net.Equal(dec("500.00")))  // asset: debit - credit
	suite.True(rows[1].Net.Equal(dec("500.00")))  // liability: credit - debit
	suite.True(rows[2].Net.Equal(dec("500.00")))  // income: credit - debit
	suite.True(rows[3].Net.Equal(dec("250.00")))  // expense: debit - credit
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_OrientsIncomeAndTotals() {
	ctx := context.Background()

	// Repository nets are raw debit-minus-credit: income accounts come
	// back negative when they have credit activity.
	income := []domain.AccountAmount{
		{AccountID: "sales", Name: "Sales Revenue", NetAmount: dec("-1200.00")},
		{AccountID: "comm", Name: "Commission Income", NetAmount: dec("-300.00")},
	}
	expenses := []domain.AccountAmount{
		{AccountID: "rent", Name: "Rent", NetAmount: dec("400.00")},
	}
	suite.mockRepo.On("GetProfitAndLossData", ctx, suite.from, suite.to, "BR-01").
		Return(income, expenses, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.from, suite.to, "BR-01")

	suite.Require().NoError(err)
	suite.True(report.Income[0].NetAmount.Equal(dec("1200.00")))
	suite.True(report.TotalIncome.Equal(dec("1500.00")))
	suite.True(report.TotalExpenses.Equal(dec("400.00")))
	suite.True(report.NetProfit.Equal(dec("1100.00")))
}

func (suite *ReportingServiceTestSuite) TestCashFlow_NetsPerGroupAndOverall() {
	ctx := context.Background()

	groups := []domain.CashFlowGroup{
		{SubType: domain.SubTypeCash, Inflow: dec("800.00"), Outflow: dec("300.00")},
		{SubType: domain.SubTypeBank, Inflow: dec("1000.00"), Outflow: dec("1250.00")},
	}
	suite.mockRepo.On("GetCashFlowData", ctx, suite.from, suite.to).Return(groups, nil).Once()

	report, err := suite.service.CashFlow(ctx, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(report.Groups[0].Net.Equal(dec("500.00")))
	suite.True(report.Groups[1].Net.Equal(dec("-250.00")))
	suite.True(report.Net.Equal(dec("250.00")))
}

func (suite *ReportingServiceTestSuite) TestPartyStatement_PaymentSettlesInvoiceBucket() {
	ctx := context.Background()
	customerAcc := "acc-customer"
	day := func(d int) time.Time { return suite.from.AddDate(0, 0, d) }

	// A 500 credit sale to the customer, then a 300 payment against the
	// same invoice reference.
	rows := []domain.LedgerRow{
		{AccountID: customerAcc, Debit: dec("500.00"), RefKind: domain.RefSale, RefID: "INV-1", RowDate: day(1), Position: 1},
		{AccountID: customerAcc, Credit: dec("300.00"), RefKind: domain.RefPayment, RefID: "INV-1", RowDate: day(5), Position: 2},
	}
	suite.mockRepo.On("GetStatementRows", ctx, customerAcc, suite.from, suite.to).Return(rows, nil).Once()

	statement, err := suite.service.PartyStatement(ctx, customerAcc, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(statement.Buckets, 1)
	b := statement.Buckets[0]
	suite.Equal("INV-1", b.RefID)
	suite.Equal(domain.RefSale, b.RefKind)
	suite.True(b.InvoiceAmount.Equal(dec("500.00")))
	suite.True(b.PaidAmount.Equal(dec("300.00")))
	suite.True(b.Balance.Equal(dec("200.00")))
	suite.True(b.ClosingBalance.Equal(dec("200.00")))
	suite.True(statement.ClosingBalance.Equal(dec("200.00")))
}

func (suite *ReportingServiceTestSuite) TestPartyStatement_StandalonePaymentGetsOwnBucket() {
	ctx := context.Background()
	customerAcc := "acc-customer"
	day := func(d int) time.Time { return suite.from.AddDate(0, 0, d) }

	rows := []domain.LedgerRow{
		{AccountID: customerAcc, Debit: dec("1000.00"), RefKind: domain.RefSale, RefID: "INV-1", RowDate: day(1), Position: 1},
		// Advance received with no invoice reference in common.
		{AccountID: customerAcc, Credit: dec("250.00"), RefKind: domain.RefPayment, RefID: "RCPT-7", RowDate: day(2), Position: 2},
		// A return adjusting the invoice.
		{AccountID: customerAcc, Credit: dec("100.00"), RefKind: domain.RefSaleReturn, RefID: "INV-1", RowDate: day(3), Position: 3},
	}
	suite.mockRepo.On("GetStatementRows", ctx, customerAcc, suite.from, suite.to).Return(rows, nil).Once()

	statement, err := suite.service.PartyStatement(ctx, customerAcc, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(statement.Buckets, 2)

	invoice := statement.Buckets[0]
	suite.Equal("INV-1", invoice.RefID)
	suite.True(invoice.InvoiceAmount.Equal(dec("1000.00")))
	suite.True(invoice.Adjustments.Equal(dec("100.00")))
	suite.True(invoice.Balance.Equal(dec("900.00")))

	payment := statement.Buckets[1]
	suite.Equal("RCPT-7", payment.RefID)
	suite.Equal(domain.RefPayment, payment.RefKind)
	suite.True(payment.PaidAmount.Equal(dec("250.00")))
	suite.True(payment.Balance.Equal(dec("-250.00")))

	// Running closing balance walks bucket order: 900, then 650.
	suite.True(invoice.ClosingBalance.Equal(dec("900.00")))
	suite.True(payment.ClosingBalance.Equal(dec("650.00")))
	suite.True(statement.ClosingBalance.Equal(dec("650.00")))
}

func (suite *ReportingServiceTestSuite) TestPartyStatement_Empty() {
	ctx := context.Background()

	suite.mockRepo.On("GetStatementRows", ctx, "acc-x", suite.from, suite.to).
		Return([]domain.LedgerRow{}, nil).Once()

	statement, err := suite.service.PartyStatement(ctx, "acc-x", suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Empty(statement.Buckets)
	suite.True(statement.ClosingBalance.IsZero())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
