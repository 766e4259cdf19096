package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/omnibooks/ledger-engine/internal/core/domain"
)

// EntryLineRequest is one proposed debit-or-credit line. Exactly one of
// Debit/Credit must be positive; semantic checks beyond the struct tags are
// the validator's job.
type EntryLineRequest struct {
	AccountID string          `json:"accountID" validate:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	PartyType string          `json:"partyType,omitempty"`
	PartyID   string          `json:"partyID,omitempty"`
}

// PostJournalRequest is the inbound shape of a posting call.
type PostJournalRequest struct {
	Date      time.Time          `json:"date" validate:"required"`
	Narration string             `json:"narration"`
	RefKind   domain.RefKind     `json:"refKind" validate:"required"`
	RefID     string             `json:"refID" validate:"required"`
	BranchID  string             `json:"branchID"`
	Entries   []EntryLineRequest `json:"entries" validate:"required,dive"`
}

// ListRowsParams holds pagination parameters for account ledger listings.
type ListRowsParams struct {
	Limit     int     `json:"limit"`
	NextToken *string `json:"nextToken,omitempty"`
}

// ListRowsResponse is one page of an account's ledger rows.
type ListRowsResponse struct {
	Rows      []domain.LedgerRow `json:"rows"`
	NextToken *string            `json:"nextToken,omitempty"`
}
