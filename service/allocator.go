package service

import (
	"math"

	"github.com/tkuminecz/ynab-reports/models"
)

// AllocateMonth computes one month of payments for accounts already ranked
// by a Strategy, distributing the snowball pool in priority order. The
// caller is responsible for filtering out paid-off accounts first.
//
// Two accumulators thread through the iteration: snowballLeft, the portion
// of the pool not yet spent, and overflow, payment capacity freed by
// accounts that needed less than they were offered. Overflow cascades to
// the next account within the same month; snowball is drawn down across
// the whole month.
func AllocateMonth(ordered []models.Account, snowballPool float64) []models.MonthlyPayment {
	payments := make([]models.MonthlyPayment, 0, len(ordered))
	snowballLeft := snowballPool
	overflow := 0.0

	for _, acct := range ordered {
		balanceAfterMin := acct.Balance + acct.MinPayment

		overflowToApply := 0.0
		if balanceAfterMin < 0 {
			overflowToApply = math.Max(balanceAfterMin, overflow)
		}

		balanceAfterOverflow := balanceAfterMin + overflowToApply
		snowballToApply := 0.0
		if balanceAfterOverflow < 0 {
			snowballToApply = math.Max(balanceAfterOverflow, snowballLeft)
		}

		// Never pay more than it takes to zero the balance.
		offered := acct.MinPayment + overflowToApply + snowballToApply
		totalPayment := math.Min(-acct.Balance, offered)

		payments = append(payments, models.MonthlyPayment{
			Account:      acct.Name,
			Balance:      acct.Balance,
			MinPayment:   acct.MinPayment,
			Overflow:     overflowToApply,
			Snowball:     snowballToApply,
			TotalPayment: totalPayment,
		})

		snowballLeft = math.Max(0, snowballLeft-snowballToApply)
		overflow = math.Min(0, overflow-overflowToApply)
		if totalPayment < offered {
			// The cap bound; the unused capacity cascades to the next
			// account this month.
			overflow += offered - totalPayment
		}
		if totalPayment == 0 {
			// A non-paying account does not pass capacity along.
			overflow = 0
		}
	}

	return payments
}
