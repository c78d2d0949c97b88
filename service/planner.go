package service

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/tkuminecz/ynab-reports/models"
)

// DefaultMaxPlanMonths caps the simulation loop. Minimum payments that
// never outpace interest would otherwise spin forever.
const DefaultMaxPlanMonths = 3600

// PlanConfig carries the knobs for one payoff simulation.
type PlanConfig struct {
	Strategy          Strategy
	SnowballStart     float64
	SnowballIncrement float64      // fixed extra added to the pool each month
	StartMonth        models.Month // zero value means next calendar month
	InterestMode      InterestMode
	MaxMonths         int // zero value means DefaultMaxPlanMonths
}

// GeneratePlan runs the month-by-month payoff simulation until every
// account reaches zero balance. Each call is independent and deterministic
// for identical inputs; the input slice is never mutated.
func GeneratePlan(accounts []models.Account, cfg PlanConfig) (*models.PayoffPlan, error) {
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: no accounts to plan", ErrInvalidConfiguration)
	}
	if _, err := ParseStrategy(string(cfg.Strategy)); err != nil {
		return nil, err
	}

	maxMonths := cfg.MaxMonths
	if maxMonths <= 0 {
		maxMonths = DefaultMaxPlanMonths
	}
	month := cfg.StartMonth
	if month.IsZero() {
		month = models.CurrentMonth().Next()
	}

	originalBalance := models.TotalBalance(accounts)
	balances := make([]models.Account, len(accounts))
	copy(balances, accounts)

	plan := &models.PayoffPlan{OriginalBalance: originalBalance}
	if originalBalance >= 0 {
		// Nothing owed; an empty plan is already terminal.
		return plan, nil
	}
	snowball := cfg.SnowballStart

	for n := 1; ; n++ {
		if n > maxMonths {
			return nil, fmt.Errorf("%w: no payoff after %d months", ErrNonConvergence, maxMonths)
		}

		active := models.ActiveAccounts(balances)
		ordered := cfg.Strategy.Order(active)
		payments := AllocateMonth(ordered, snowball)
		newBalances := ApplyPayments(balances, payments, cfg.InterestMode)

		var totalMinPayments, totalPayment, totalOverflow, snowballIncrease float64
		for _, p := range payments {
			if p.MinPayment <= p.TotalPayment {
				totalMinPayments += p.MinPayment
			}
			totalPayment += p.TotalPayment
			totalOverflow += p.Overflow
			if p.PaidOff() {
				snowballIncrease += p.MinPayment
				log.WithFields(log.Fields{
					"account": p.Account,
					"month":   month.String(),
				}).Debug("Account paid off")
			}
		}

		plan.Months = append(plan.Months, models.PlanMonth{
			Month:            month,
			Snowball:         snowball,
			Payments:         payments,
			NewBalances:      newBalances,
			TotalMinPayments: totalMinPayments,
			TotalPayment:     totalPayment,
			TotalOverflow:    totalOverflow,
			SnowballIncrease: snowballIncrease,
		})
		plan.TotalPayments += totalPayment
		plan.MonthsToPayoff = n

		month = month.Next()
		balances = newBalances
		snowball = snowball + snowballIncrease + cfg.SnowballIncrement

		if models.TotalBalance(newBalances) >= 0 {
			break
		}
	}

	return plan, nil
}

// ComparePlans reports how an alternative plan differs from a baseline.
// Negative deltas mean the alternative wins.
func ComparePlans(base, alt *models.PayoffPlan) models.PlanComparison {
	return models.PlanComparison{
		BalanceDelta:  math.Abs(alt.OriginalBalance) - math.Abs(base.OriginalBalance),
		PaymentsDelta: alt.TotalPayments - base.TotalPayments,
		InterestDelta: alt.TotalInterest() - base.TotalInterest(),
		MonthsDelta:   alt.MonthsToPayoff - base.MonthsToPayoff,
	}
}
