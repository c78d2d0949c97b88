package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthlyPaymentPaidOff(t *testing.T) {
	assert.True(t, MonthlyPayment{Balance: -100, TotalPayment: 100}.PaidOff())
	assert.False(t, MonthlyPayment{Balance: -100, TotalPayment: 50}.PaidOff())
	assert.False(t, MonthlyPayment{Balance: 0, TotalPayment: 0}.PaidOff())
}

func TestPayoffPlanTotalInterest(t *testing.T) {
	plan := PayoffPlan{OriginalBalance: -5000, TotalPayments: 5600}
	assert.InDelta(t, 600.0, plan.TotalInterest(), 1e-9)
}

func TestPayoffPlanDebtFreeDate(t *testing.T) {
	plan := PayoffPlan{MonthsToPayoff: 14}
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), plan.DebtFreeDate(from))
}

func TestAccountHelpers(t *testing.T) {
	accounts := []Account{
		{Name: "A", Balance: -100, MinPayment: 25},
		{Name: "B", Balance: 0, MinPayment: 50},
		{Name: "C", Balance: -300, MinPayment: 40},
	}

	active := ActiveAccounts(accounts)
	assert.Len(t, active, 2)
	assert.Equal(t, "A", active[0].Name)
	assert.Equal(t, "C", active[1].Name)

	assert.Equal(t, -400.0, TotalBalance(accounts))
	assert.Equal(t, 115.0, TotalMinPayments(accounts))
}
