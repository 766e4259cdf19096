package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/omnibooks/ledger-engine/internal/apperrors"
	"github.com/omnibooks/ledger-engine/internal/core/domain"
	"github.com/omnibooks/ledger-engine/internal/core/services"
)

func activeAccount(id string, accountType domain.AccountType) domain.Account {
	return domain.Account{
		AccountID:   id,
		AccountType: accountType,
		SubType:     domain.SubTypeGeneral,
		Status:      domain.StatusActive,
	}
}

func TestJournalValidator(t *testing.T) {
	cashID := uuid.NewString()
	salesID := uuid.NewString()
	inactiveID := uuid.NewString()

	inactive := activeAccount(inactiveID, domain.Liability)
	inactive.Status = domain.StatusInactive

	accounts := map[string]domain.Account{
		cashID:     activeAccount(cashID, domain.Asset),
		salesID:    activeAccount(salesID, domain.Income),
		inactiveID: inactive,
	}

	debit := func(id string, amount string) domain.EntryLine {
		return domain.EntryLine{AccountID: id, Debit: decimal.RequireFromString(amount)}
	}
	credit := func(id string, amount string) domain.EntryLine {
		return domain.EntryLine{AccountID: id, Credit: decimal.RequireFromString(amount)}
	}

	testCases := []struct {
		name    string
		entries []domain.EntryLine
		wantErr error
	}{
		{
			name:    "balanced pair",
			entries: []domain.EntryLine{debit(cashID, "100.00"), credit(salesID, "100.00")},
			wantErr: nil,
		},
		{
			name: "split credit side",
			entries: []domain.EntryLine{
				debit(cashID, "150.75"),
				credit(salesID, "100.25"),
				credit(salesID, "50.50"),
			},
			wantErr: nil,
		},
		{
			name:    "empty journal",
			entries: nil,
			wantErr: apperrors.ErrInsufficientEntries,
		},
		{
			name:    "single line",
			entries: []domain.EntryLine{debit(cashID, "100")},
			wantErr: apperrors.ErrInsufficientEntries,
		},
		{
			name: "negative amount",
			entries: []domain.EntryLine{
				{AccountID: cashID, Debit: decimal.RequireFromString("-10")},
				credit(salesID, "10"),
			},
			wantErr: apperrors.ErrInvalidLine,
		},
		{
			name: "neither side set",
			entries: []domain.EntryLine{
				{AccountID: cashID},
				credit(salesID, "10"),
			},
			wantErr: apperrors.ErrInvalidLine,
		},
		{
			name: "both sides set",
			entries: []domain.EntryLine{
				{AccountID: cashID, Debit: decimal.NewFromInt(10), Credit: decimal.NewFromInt(10)},
				credit(salesID, "10"),
			},
			wantErr: apperrors.ErrInvalidLine,
		},
		{
			name: "sub-cent precision",
			entries: []domain.EntryLine{
				debit(cashID, "10.005"),
				credit(salesID, "10.005"),
			},
			wantErr: apperrors.ErrInvalidLine,
		},
		{
			name:    "unknown account",
			entries: []domain.EntryLine{debit(uuid.NewString(), "10"), credit(salesID, "10")},
			wantErr: apperrors.ErrUnknownAccount,
		},
		{
			name:    "inactive account",
			entries: []domain.EntryLine{debit(cashID, "10"), credit(inactiveID, "10")},
			wantErr: apperrors.ErrInactiveAccount,
		},
		{
			name:    "imbalanced totals",
			entries: []domain.EntryLine{debit(cashID, "100.00"), credit(salesID, "99.99")},
			wantErr: apperrors.ErrImbalancedEntry,
		},
	}

	checker := services.NewJournalValidator()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := checker.Validate(tc.entries, accounts)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
			// Every validation failure must also match the family root.
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestJournalValidator_ExactEqualityNotRounded(t *testing.T) {
	a := uuid.NewString()
	b := uuid.NewString()
	accounts := map[string]domain.Account{
		a: activeAccount(a, domain.Asset),
		b: activeAccount(b, domain.Income),
	}

	// 0.01 apart at full precision: must fail, never round to equal.
	entries := []domain.EntryLine{
		{AccountID: a, Debit: decimal.RequireFromString("10.01")},
		{AccountID: b, Credit: decimal.RequireFromString("10.00")},
	}
	err := services.NewJournalValidator().Validate(entries, accounts)
	assert.ErrorIs(t, err, apperrors.ErrImbalancedEntry)
}
