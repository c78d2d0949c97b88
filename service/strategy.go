package service

import (
	"fmt"
	"sort"

	"github.com/tkuminecz/ynab-reports/models"
)

// Strategy names a payoff ordering policy: which debt gets extra payment
// capacity first. The set is closed; ParseStrategy rejects anything else.
type Strategy string

const (
	// StrategySmart pays zero-interest accounts first (smallest debt
	// leading), then interest-bearing accounts largest debt first.
	StrategySmart Strategy = "smart"

	// StrategyLowestBalance is the classic snowball: smallest debt first.
	StrategyLowestBalance Strategy = "lowest_balance"

	// StrategyInterestRate is the avalanche: highest rate first.
	StrategyInterestRate Strategy = "interest_rate"
)

// ValidStrategies lists every recognized strategy name.
var ValidStrategies = []Strategy{StrategySmart, StrategyLowestBalance, StrategyInterestRate}

// ParseStrategy validates a strategy name from configuration.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case StrategySmart, StrategyLowestBalance, StrategyInterestRate:
		return Strategy(name), nil
	default:
		return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfiguration, name)
	}
}

// Order ranks accounts for payoff priority under the strategy. The result
// is a stable permutation of the input: ties keep their input order, and
// the input slice is never modified.
func (s Strategy) Order(accounts []models.Account) []models.Account {
	ordered := make([]models.Account, len(accounts))
	copy(ordered, accounts)

	switch s {
	case StrategyLowestBalance:
		// Balances are negative, so descending balance puts the smallest
		// debt first.
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Balance > ordered[j].Balance
		})
	case StrategyInterestRate:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].InterestRate > ordered[j].InterestRate
		})
	case StrategySmart:
		sort.SliceStable(ordered, func(i, j int) bool {
			gi, gj := smartGroup(ordered[i]), smartGroup(ordered[j])
			if gi != gj {
				return gi < gj
			}
			if gi == 0 {
				// Zero-rate group: smallest debt first.
				return ordered[i].Balance > ordered[j].Balance
			}
			// Interest-bearing group: largest debt first.
			return ordered[i].Balance < ordered[j].Balance
		})
	}
	return ordered
}

func smartGroup(a models.Account) int {
	if a.InterestRate == 0 {
		return 0
	}
	return 1
}
