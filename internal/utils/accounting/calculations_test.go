package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/omnibooks/ledger-engine/internal/core/domain"
)

func TestExceedsPrecision(t *testing.T) {
	assert.False(t, ExceedsPrecision(decimal.RequireFromString("100")))
	assert.False(t, ExceedsPrecision(decimal.RequireFromString("100.5")))
	assert.False(t, ExceedsPrecision(decimal.RequireFromString("100.55")))
	assert.True(t, ExceedsPrecision(decimal.RequireFromString("100.555")))
	assert.True(t, ExceedsPrecision(decimal.RequireFromString("0.001")))
}

func TestNormalNet(t *testing.T) {
	debit := decimal.RequireFromString("700.00")
	credit := decimal.RequireFromString("200.00")

	// Debit-normal types grow on the debit side.
	assert.True(t, NormalNet(domain.Asset, debit, credit).Equal(decimal.RequireFromString("500.00")))
	assert.True(t, NormalNet(domain.Expense, debit, credit).Equal(decimal.RequireFromString("500.00")))

	// Credit-normal types flip.
	assert.True(t, NormalNet(domain.Liability, debit, credit).Equal(decimal.RequireFromString("-500.00")))
	assert.True(t, NormalNet(domain.Equity, debit, credit).Equal(decimal.RequireFromString("-500.00")))
	assert.True(t, NormalNet(domain.Income, debit, credit).Equal(decimal.RequireFromString("-500.00")))
}

func TestRunningBalance(t *testing.T) {
	// A fresh account credited 100 carries a raw balance of -100,
	// regardless of its account type.
	next := RunningBalance(decimal.Zero, decimal.Zero, decimal.RequireFromString("100.00"))
	assert.True(t, next.Equal(decimal.RequireFromString("-100.00")))

	// Chains from the previous balance.
	next = RunningBalance(next, decimal.RequireFromString("250.00"), decimal.Zero)
	assert.True(t, next.Equal(decimal.RequireFromString("150.00")))
}
