package accounting

import (
	"github.com/omnibooks/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyPrecision is the fixed number of decimal places for all monetary
// amounts. The balance invariant is an exact-equality check at this
// precision, so inputs carrying finer precision are rejected up front and
// the core never rounds.
const CurrencyPrecision int32 = 2

// ExceedsPrecision reports whether d carries more decimal places than the
// configured currency precision.
func ExceedsPrecision(d decimal.Decimal) bool {
	return d.Exponent() < -CurrencyPrecision
}

// NormalNet nets a debit and credit total under the account type's
// normal-balance convention: debit minus credit for debit-normal types
// (ASSET, EXPENSE), credit minus debit otherwise.
func NormalNet(accountType domain.AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	if accountType.DebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// RunningBalance chains the next raw balance for an account:
// previous balance plus debit minus credit, independent of account type.
func RunningBalance(prev, debit, credit decimal.Decimal) decimal.Decimal {
	return prev.Add(debit).Sub(credit)
}
