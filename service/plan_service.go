package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/tkuminecz/ynab-reports/models"
)

// planService implements the PlanService interface
type planService struct{}

// NewPlanService creates a new plan service
func NewPlanService() PlanService {
	return &planService{}
}

// GeneratePlan runs a payoff simulation for the given accounts
func (s *planService) GeneratePlan(ctx context.Context, accounts []models.Account, cfg PlanConfig) (*models.PayoffPlan, error) {
	plan, err := GeneratePlan(accounts, cfg)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"strategy":       cfg.Strategy,
		"accounts":       len(accounts),
		"monthsToPayoff": plan.MonthsToPayoff,
		"totalPayments":  plan.TotalPayments,
	}).Debug("Generated payoff plan")

	return plan, nil
}

// CompareStrategies runs one simulation per strategy and reports each
// alternative against the first as baseline.
func (s *planService) CompareStrategies(ctx context.Context, accounts []models.Account, cfg PlanConfig, strategies []Strategy) (map[Strategy]models.PlanComparison, error) {
	if len(strategies) == 0 {
		return nil, fmt.Errorf("%w: no strategies to compare", ErrInvalidConfiguration)
	}

	baseCfg := cfg
	baseCfg.Strategy = strategies[0]
	base, err := GeneratePlan(accounts, baseCfg)
	if err != nil {
		return nil, fmt.Errorf("baseline strategy %s failed: %w", strategies[0], err)
	}

	comparisons := make(map[Strategy]models.PlanComparison, len(strategies))
	for _, strategy := range strategies[1:] {
		altCfg := cfg
		altCfg.Strategy = strategy
		alt, err := GeneratePlan(accounts, altCfg)
		if err != nil {
			return nil, fmt.Errorf("strategy %s failed: %w", strategy, err)
		}
		comparisons[strategy] = ComparePlans(base, alt)
	}
	return comparisons, nil
}
