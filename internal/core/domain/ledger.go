package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRow is one immutable, account-scoped debit/credit/balance record
// produced from one entry line of one journal. Rows are append-only: no
// update or delete path exists in the core.
//
// Balance is the chained running balance for the row's account:
// the balance of the account's previous row (by commit order) plus
// debit minus credit. The sign convention of the account type is NOT
// applied here; reports apply it when presenting nets.
type LedgerRow struct {
	RowID             string          `json:"rowID"`
	JournalID         string          `json:"journalID"`
	AccountID         string          `json:"accountID"`
	Debit             decimal.Decimal `json:"debit"`
	Credit            decimal.Decimal `json:"credit"`
	Balance           decimal.Decimal `json:"balance"`
	RefKind           RefKind         `json:"refKind"`
	RefID             string          `json:"refID"`
	RelatedEntityType string          `json:"relatedEntityType,omitempty"`
	RelatedEntityID   string          `json:"relatedEntityID,omitempty"`
	Narration         string          `json:"narration"`
	RowDate           time.Time       `json:"rowDate"`
	Position          int64           `json:"position"` // global commit order, assigned by the store
	CreatedAt         time.Time       `json:"createdAt"`
}

// Amount returns the non-zero side of the row.
func (r LedgerRow) Amount() decimal.Decimal {
	if r.Debit.IsPositive() {
		return r.Debit
	}
	return r.Credit
}
