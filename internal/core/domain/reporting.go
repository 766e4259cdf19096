package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account in a trial balance report.
// Net carries the account's normal-balance sign convention.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Net         decimal.Decimal `json:"net"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report over a period.
type PAndLReport struct {
	Income        []AccountAmount `json:"income"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// CashFlowGroup aggregates cash movement for one cash-like subtype.
// Inflow is the debit total (money in), outflow the credit total.
type CashFlowGroup struct {
	SubType AccountSubType  `json:"subType"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
}

// CashFlowReport groups cash movement by CASH and BANK subtypes.
type CashFlowReport struct {
	Groups []CashFlowGroup `json:"groups"`
	Net    decimal.Decimal `json:"net"`
}

// StatementBucket accumulates one business document (sale, purchase,
// payment, ...) on a party statement. Balance is the document's open
// amount; ClosingBalance is the statement's running balance after this
// bucket in chronological order.
type StatementBucket struct {
	RefID          string          `json:"refID"`
	RefKind        RefKind         `json:"refKind"`
	Date           time.Time       `json:"date"`
	InvoiceAmount  decimal.Decimal `json:"invoiceAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	Adjustments    decimal.Decimal `json:"adjustments"`
	Balance        decimal.Decimal `json:"balance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// PartyStatement is a customer/supplier statement: one account's ledger
// rows grouped per originating business document.
type PartyStatement struct {
	AccountID      string            `json:"accountID"`
	Buckets        []StatementBucket `json:"buckets"`
	ClosingBalance decimal.Decimal   `json:"closingBalance"`
}
