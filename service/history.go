package service

import (
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tkuminecz/ynab-reports/models"
)

// Defaults applied when an account has no configured rate or minimum
// payment. The rate is a deliberately pessimistic credit-card APR.
const (
	DefaultInterestRate = 0.20
	DefaultMinPayment   = 25.0
)

// ReconstructBalanceAt rewinds an account's current balance to a past
// date by backing out every ledger entry dated strictly after it. Both
// inputs and the result are milliunits.
func ReconstructBalanceAt(current int64, entries []models.LedgerEntry, target time.Time) int64 {
	balance := current
	for _, e := range entries {
		if e.Date.After(target) {
			balance -= e.Amount
		}
	}
	return balance
}

// ReconstructMonthlyBalances builds each account's month-end balance
// series over the lookback window, oldest month first. The series spans
// numMonths+1 points, ending with the month containing today.
func ReconstructMonthlyBalances(ledgers []models.AccountLedger, numMonths int, today time.Time) []models.AccountHistory {
	histories := make([]models.AccountHistory, 0, len(ledgers))
	current := models.MonthOf(today)

	for _, ledger := range ledgers {
		history := models.AccountHistory{
			AccountID:   ledger.AccountID,
			Name:        ledger.Name,
			AccountType: ledger.AccountType,
			Balances:    make([]models.MonthlyBalance, 0, numMonths+1),
		}
		for i := numMonths; i >= 0; i-- {
			month := current.AddMonths(-i)
			monthEnd := month.End()
			milliunits := ReconstructBalanceAt(ledger.Balance, ledger.Entries, monthEnd)
			history.Balances = append(history.Balances, models.MonthlyBalance{
				Month:      month,
				Date:       monthEnd,
				Balance:    float64(milliunits) / 1000,
				Milliunits: milliunits,
			})
		}
		histories = append(histories, history)
	}
	return histories
}

// EstimateInterestAndPrincipal splits a month's balance movement into an
// interest estimate and a principal estimate, given the annual rate in
// effect. A non-negative previous balance means no debt carried, so the
// whole movement is principal.
func EstimateInterestAndPrincipal(prevBalance, currBalance, annualRate float64) (interest, principal, totalPayment float64) {
	balanceChange := currBalance - prevBalance
	if prevBalance >= 0 {
		return 0, balanceChange, balanceChange
	}
	interest = -prevBalance * (annualRate / 12)
	totalPayment = balanceChange + interest
	principal = totalPayment - interest
	return interest, principal, totalPayment
}

// InferPayments derives the implied payment for each month of a balance
// series: the amount that, net of estimated interest, produced the
// observed balance movement. The first month has no predecessor and
// yields no entry.
func InferPayments(balances []models.MonthlyBalance, annualRate, minPayment float64) []models.InferredPayment {
	if len(balances) < 2 {
		return nil
	}
	payments := make([]models.InferredPayment, 0, len(balances)-1)
	for i := 1; i < len(balances); i++ {
		prev, curr := balances[i-1], balances[i]
		interest, principal, total := EstimateInterestAndPrincipal(prev.Balance, curr.Balance, annualRate)
		payments = append(payments, models.InferredPayment{
			Month:         curr.Month,
			Date:          curr.Date,
			BalanceChange: curr.Balance - prev.Balance,
			PrevBalance:   prev.Balance,
			CurrBalance:   curr.Balance,
			InterestRate:  annualRate,
			Interest:      interest,
			Principal:     principal,
			TotalPayment:  total,
			MinPayment:    minPayment,
			Snowball:      math.Max(0, total-minPayment),
		})
	}
	return payments
}

// BuildSnapshots reconstructs the set of indebted accounts as of each
// month-end in the lookback window, oldest first. Rates and minimum
// payments come from the config accounts, matched by name; unmatched
// accounts get the defaults.
func BuildSnapshots(ledgers []models.AccountLedger, configs []models.Account, numMonths int, today time.Time) []models.HistoricalSnapshot {
	configByName := make(map[string]models.Account, len(configs))
	for _, c := range configs {
		configByName[c.Name] = c
	}

	current := models.MonthOf(today)
	snapshots := make([]models.HistoricalSnapshot, 0, numMonths+1)

	for i := numMonths; i >= 0; i-- {
		month := current.AddMonths(-i)
		monthEnd := month.End()

		snapshot := models.HistoricalSnapshot{
			Month: month,
			Date:  month.Start(),
		}
		for _, ledger := range ledgers {
			milliunits := ReconstructBalanceAt(ledger.Balance, ledger.Entries, monthEnd)
			if milliunits >= 0 {
				continue
			}
			acct := models.Account{
				Name:         ledger.Name,
				Balance:      float64(milliunits) / 1000,
				InterestRate: DefaultInterestRate,
				MinPayment:   DefaultMinPayment,
			}
			if cfg, ok := configByName[ledger.Name]; ok {
				acct.InterestRate = cfg.InterestRate
				acct.MinPayment = cfg.MinPayment
			}
			snapshot.Accounts = append(snapshot.Accounts, acct)
			snapshot.TotalBalance += acct.Balance
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots
}

// GenerateProjections runs a payoff simulation from each snapshot's point
// in time and records how far out the debt-free date looked from there.
// Months whose simulation fails are logged and skipped so one bad month
// cannot sink the whole rebuild.
func GenerateProjections(snapshots []models.HistoricalSnapshot, cfg PlanConfig) []models.Projection {
	projections := make([]models.Projection, 0, len(snapshots))
	for _, snap := range snapshots {
		if len(snap.Accounts) == 0 {
			log.WithField("month", snap.Month.String()).Debug("No indebted accounts in snapshot, skipping")
			continue
		}

		planCfg := cfg
		planCfg.StartMonth = snap.Month.Next()
		plan, err := GeneratePlan(snap.Accounts, planCfg)
		if err != nil {
			log.WithFields(log.Fields{
				"month": snap.Month.String(),
				"error": err,
			}).Warn("Skipping month, payoff simulation failed")
			continue
		}

		projections = append(projections, models.Projection{
			SnapshotMonth:    snap.Month.String(),
			SnapshotDate:     snap.Date,
			TotalBalance:     snap.TotalBalance,
			MonthsToPayoff:   plan.MonthsToPayoff,
			DebtFreeDate:     snap.Date.AddDate(0, plan.MonthsToPayoff, 0),
			TotalPayments:    plan.TotalPayments,
			TotalInterest:    plan.TotalInterest(),
			SnowballAmount:   cfg.SnowballStart,
			SnowballIncrease: cfg.SnowballIncrement,
			Strategy:         string(cfg.Strategy),
			NumAccounts:      len(snap.Accounts),
			Source:           models.ProjectionSourceReconstructed,
		})
	}
	return projections
}

// CalculateTrends summarizes how the payoff outlook moved across a
// projection sequence ordered by snapshot date. It needs at least two
// projections to say anything.
func CalculateTrends(projections []models.Projection) *models.ProjectionTrends {
	if len(projections) < 2 {
		return nil
	}

	first := projections[0]
	last := projections[len(projections)-1]
	best, worst := first, first
	for _, p := range projections[1:] {
		if p.DebtFreeDate.Before(best.DebtFreeDate) {
			best = p
		}
		if p.DebtFreeDate.After(worst.DebtFreeDate) {
			worst = p
		}
	}

	trends := &models.ProjectionTrends{
		First:               &first,
		Last:                &last,
		Best:                &best,
		Worst:               &worst,
		TotalDateChangeDays: int(last.DebtFreeDate.Sub(first.DebtFreeDate).Hours() / 24),
		TotalMonthsChange:   last.MonthsToPayoff - first.MonthsToPayoff,
		BalanceReduction:    math.Abs(first.TotalBalance) - math.Abs(last.TotalBalance),
	}
	if first.TotalBalance != 0 {
		trends.BalanceReductionPct = trends.BalanceReduction / math.Abs(first.TotalBalance) * 100
	}
	trends.AvgMonthlyBalanceDrop = trends.BalanceReduction / float64(len(projections))

	for i := 1; i < len(projections); i++ {
		prev, curr := projections[i-1], projections[i]
		change := models.MonthChange{
			Month:        curr.SnapshotMonth,
			ChangeMonths: curr.MonthsToPayoff - prev.MonthsToPayoff,
			PrevMonths:   prev.MonthsToPayoff,
			CurrMonths:   curr.MonthsToPayoff,
		}
		trends.MonthOverMonth = append(trends.MonthOverMonth, change)

		if trends.BiggestImprovement == nil || change.ChangeMonths < trends.BiggestImprovement.ChangeMonths {
			c := change
			trends.BiggestImprovement = &c
		}
		if trends.BiggestSetback == nil || change.ChangeMonths > trends.BiggestSetback.ChangeMonths {
			c := change
			trends.BiggestSetback = &c
		}
	}

	return trends
}
