package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefKind identifies the business document that caused a journal. The set is
// closed: statement generation and reversal handling switch over it rather
// than comparing free-form strings.
type RefKind string

const (
	RefSale           RefKind = "SALE"
	RefSaleReturn     RefKind = "SALE_RETURN"
	RefPurchase       RefKind = "PURCHASE"
	RefPurchaseReturn RefKind = "PURCHASE_RETURN"
	RefPayment        RefKind = "PAYMENT"
	RefCommission     RefKind = "COMMISSION"
	RefManual         RefKind = "MANUAL"
	RefReversal       RefKind = "REVERSAL"
)

// Valid reports whether k is one of the known reference kinds.
func (k RefKind) Valid() bool {
	switch k {
	case RefSale, RefSaleReturn, RefPurchase, RefPurchaseReturn,
		RefPayment, RefCommission, RefManual, RefReversal:
		return true
	}
	return false
}

// StatementRole is the side of a party-statement bucket a ledger row
// contributes to.
type StatementRole int

const (
	RoleInvoice StatementRole = iota
	RolePayment
	RoleAdjustment
)

// StatementRole maps each reference kind to its statement contribution:
// invoicing documents open a bucket, payments and commission settlements
// reduce it, returns/reversals/manual entries adjust it.
func (k RefKind) StatementRole() StatementRole {
	switch k {
	case RefSale, RefPurchase:
		return RoleInvoice
	case RefPayment, RefCommission:
		return RolePayment
	default: // SALE_RETURN, PURCHASE_RETURN, MANUAL, REVERSAL
		return RoleAdjustment
	}
}

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// EntryLine is a single debit-or-credit line of a journal. It is part of its
// journal, not a standalone entity; persisting a line produces exactly one
// ledger row.
type EntryLine struct {
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	PartyType string          `json:"partyType,omitempty"` // customer/supplier sub-ledger tag
	PartyID   string          `json:"partyID,omitempty"`
}

// Amount returns the non-zero side of the line. Validation guarantees
// exactly one side is positive.
func (l EntryLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// Journal represents one balanced financial event composed of two or more
// entry lines. Journals and their ledger rows are immutable once committed;
// corrections are new reversing journals.
type Journal struct {
	JournalID          string          `json:"journalID"`
	JournalDate        time.Time       `json:"journalDate"`
	Narration          string          `json:"narration"`
	RefKind            RefKind         `json:"refKind"`
	RefID              string          `json:"refID"`
	BranchID           string          `json:"branchID"`
	Entries            []EntryLine     `json:"entries,omitempty"`
	TotalDebit         decimal.Decimal `json:"totalDebit"`
	TotalCredit        decimal.Decimal `json:"totalCredit"`
	Status             JournalStatus   `json:"status"`
	OriginalJournalID  *string         `json:"originalJournalID,omitempty"`  // set on a reversal, points at the reversed journal
	ReversingJournalID *string         `json:"reversingJournalID,omitempty"` // set on the original once reversed
	CreatedAt          time.Time       `json:"createdAt"`
}
