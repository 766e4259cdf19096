package domain

import "time"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// DebitNormal reports whether accounts of this type grow on the debit side.
// ASSET/EXPENSE are debit-normal; LIABILITY/EQUITY/INCOME are credit-normal.
func (t AccountType) DebitNormal() bool {
	return t == Asset || t == Expense
}

// AccountSubType refines the account type for subsidiary ledgers and
// cash-flow grouping.
type AccountSubType string

const (
	SubTypeCash     AccountSubType = "CASH"
	SubTypeBank     AccountSubType = "BANK"
	SubTypeCustomer AccountSubType = "CUSTOMER"
	SubTypeSupplier AccountSubType = "SUPPLIER"
	SubTypeGeneral  AccountSubType = "GENERAL"
)

// AccountStatus indicates whether an account may appear on new postings.
type AccountStatus string

const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusInactive AccountStatus = "INACTIVE"
)

// Account is one entry of the chart of accounts. The directory is owned by
// master-data flows outside this core; ledger rows reference accounts but
// never modify them. There is deliberately no balance field here: the
// current balance of an account is the balance on its latest ledger row.
type Account struct {
	AccountID       string         `json:"accountID"`
	Code            string         `json:"code"`
	Name            string         `json:"name"`
	AccountType     AccountType    `json:"accountType"`
	SubType         AccountSubType `json:"subType"`
	ParentAccountID string         `json:"parentAccountID"` // optional, forms the account hierarchy
	Status          AccountStatus  `json:"status"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// IsActive reports whether the account accepts new postings.
func (a Account) IsActive() bool {
	return a.Status == StatusActive
}
