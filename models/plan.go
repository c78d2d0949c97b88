package models

import "time"

// MonthlyPayment records what one account is paid during one simulated
// month. Balance is the balance entering the month; Overflow and Snowball
// are the extra amounts applied on top of the minimum payment.
// TotalPayment is capped so the account is never overpaid:
// total = min(-balance, min_payment + overflow + snowball).
type MonthlyPayment struct {
	Account      string
	Balance      float64
	MinPayment   float64
	Overflow     float64
	Snowball     float64
	TotalPayment float64
}

// PaidOff reports whether this payment exactly zeroes the account's
// balance. Accounts that pay nothing do not count.
func (p MonthlyPayment) PaidOff() bool {
	return p.TotalPayment == -p.Balance && p.TotalPayment > 0
}

// PlanMonth is one simulated month of a payoff plan.
type PlanMonth struct {
	Month            Month
	Snowball         float64 // snowball pool entering the month
	Payments         []MonthlyPayment
	NewBalances      []Account // every account, including ones already at zero
	TotalMinPayments float64
	TotalPayment     float64
	TotalOverflow    float64
	SnowballIncrease float64 // freed minimum payments rolling into next month's pool
}

// TotalBalance returns the signed total balance after this month's payments.
func (pm PlanMonth) TotalBalance() float64 {
	return TotalBalance(pm.NewBalances)
}

// PayoffPlan is the complete result of one payoff simulation. Plans are
// immutable once returned; every simulation run builds a fresh one.
type PayoffPlan struct {
	OriginalBalance float64 // signed total balance entering the simulation
	Months          []PlanMonth
	TotalPayments   float64
	MonthsToPayoff  int
}

// TotalInterest returns the interest paid over the life of the plan: the
// cumulative payments beyond the original amount owed.
func (p PayoffPlan) TotalInterest() float64 {
	return p.TotalPayments + p.OriginalBalance
}

// DebtFreeDate returns the calendar date the plan reaches zero balance,
// counted from the given start date.
func (p PayoffPlan) DebtFreeDate(from time.Time) time.Time {
	return from.AddDate(0, p.MonthsToPayoff, 0)
}

// PlanComparison captures how an alternative plan differs from a baseline,
// e.g. after a refinance or a snowball change. Negative deltas mean the
// alternative does better.
type PlanComparison struct {
	BalanceDelta  float64 // difference in starting debt magnitude
	PaymentsDelta float64 // difference in cumulative payments
	InterestDelta float64 // difference in total interest paid
	MonthsDelta   int     // difference in months to payoff
}
