package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/omnibooks/ledger-engine/internal/apperrors"
	"github.com/omnibooks/ledger-engine/internal/core/domain"
	"github.com/omnibooks/ledger-engine/internal/utils/accounting"
)

// JournalValidator checks a proposed journal's structural and balance
// invariants against a directory snapshot before anything is written.
// It is pure: no side effects, no partial state.
type JournalValidator struct{}

// NewJournalValidator creates a JournalValidator.
func NewJournalValidator() *JournalValidator {
	return &JournalValidator{}
}

// Validate runs the posting checks in order: entry count, per-line shape,
// account existence and status, then exact balance at currency precision.
// accounts is the directory snapshot for every account id the entries
// reference.
func (v *JournalValidator) Validate(entries []domain.EntryLine, accounts map[string]domain.Account) error {
	if len(entries) < 2 {
		return fmt.Errorf("%w: got %d", apperrors.ErrInsufficientEntries, len(entries))
	}

	for i, line := range entries {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrInvalidLine, i)
		}
		if !line.Debit.IsPositive() && !line.Credit.IsPositive() {
			return fmt.Errorf("%w: line %d has neither debit nor credit", apperrors.ErrInvalidLine, i)
		}
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			return fmt.Errorf("%w: line %d has both debit and credit", apperrors.ErrInvalidLine, i)
		}
		if accounting.ExceedsPrecision(line.Debit) || accounting.ExceedsPrecision(line.Credit) {
			return fmt.Errorf("%w: line %d exceeds currency precision of %d places", apperrors.ErrInvalidLine, i, accounting.CurrencyPrecision)
		}
	}

	for i, line := range entries {
		acc, found := accounts[line.AccountID]
		if !found {
			return fmt.Errorf("%w: line %d references %s", apperrors.ErrUnknownAccount, i, line.AccountID)
		}
		if !acc.IsActive() {
			return fmt.Errorf("%w: line %d references %s", apperrors.ErrInactiveAccount, i, line.AccountID)
		}
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range entries {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("%w: debits sum to %s, credits to %s",
			apperrors.ErrImbalancedEntry, totalDebit.String(), totalCredit.String())
	}
	if !totalDebit.IsPositive() {
		// Unreachable once the per-line checks pass, kept as a guard on the
		// sum(debit) == sum(credit) > 0 invariant.
		return fmt.Errorf("%w: journal total is zero", apperrors.ErrImbalancedEntry)
	}

	return nil
}
