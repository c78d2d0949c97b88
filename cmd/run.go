package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tkuminecz/ynab-reports/config"
	"github.com/tkuminecz/ynab-reports/database"
	"github.com/tkuminecz/ynab-reports/events"
	"github.com/tkuminecz/ynab-reports/models"
	"github.com/tkuminecz/ynab-reports/repository"
	"github.com/tkuminecz/ynab-reports/service"
	"github.com/tkuminecz/ynab-reports/ynab"
)

// Run wires the application together and executes one reporting batch:
// rebuild historical payoff projections from the budget ledger, record
// inferred payments, and log the current outlook.
func Run(ctx context.Context) error {
	cfg := config.Get()

	strategy, err := service.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}
	planCfg := service.PlanConfig{
		Strategy:          strategy,
		SnowballStart:     cfg.SnowballStart,
		SnowballIncrement: cfg.SnowballIncrement,
	}

	source, err := newSource(cfg)
	if err != nil {
		return err
	}
	if cached, ok := source.(*ynab.CachedSource); ok && cfg.RefreshCache {
		if err := cached.Invalidate(ctx); err != nil {
			return fmt.Errorf("failed to refresh budget cache: %w", err)
		}
		log.Info("Budget cache invalidated, fetching fresh data")
	}

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	eventBus := events.NewBus()
	eventBus.Subscribe(events.EventTypeProjectionsSaved, func(ctx context.Context, e events.Event) {
		saved := e.(events.ProjectionsSavedEvent)
		log.WithFields(log.Fields{
			"count":    saved.Count,
			"strategy": saved.Strategy,
		}).Info("Projections saved")
	})

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	historyService := service.NewHistoryService(uowFactory, planCfg)
	planService := service.NewPlanService()

	// Pull the budget data once; everything below is derived from it.
	accounts, err := source.Accounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	categories, err := source.Categories(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}
	since := time.Now().UTC().AddDate(0, -cfg.LookbackMonths-1, 0)
	transactions, err := source.Transactions(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}

	debts := ynab.DebtsFromRecords(accounts, categories)
	ledgers := ynab.LedgersFromRecords(accounts, transactions)
	log.WithFields(log.Fields{
		"debts":   len(debts),
		"ledgers": len(ledgers),
	}).Info("Mapped budget data")

	projections, err := historyService.RebuildProjections(ctx, ledgers, debts, cfg.LookbackMonths)
	if err != nil {
		return fmt.Errorf("failed to rebuild projections: %w", err)
	}

	// Persist the payment activity implied by each account's history.
	debtsByName := make(map[string]models.Account, len(debts))
	for _, d := range debts {
		debtsByName[d.Name] = d
	}
	histories := service.ReconstructMonthlyBalances(ledgers, cfg.LookbackMonths, time.Now().UTC())
	for _, history := range histories {
		debt, ok := debtsByName[history.Name]
		if !ok {
			continue
		}
		if _, err := historyService.RecordInferredPayments(ctx, history, debt); err != nil {
			log.WithFields(log.Fields{
				"account": history.Name,
				"error":   err,
			}).Warn("Failed to record inferred payments")
		}
	}

	// Current outlook from today's balances.
	if len(debts) > 0 {
		plan, err := planService.GeneratePlan(ctx, debts, planCfg)
		if err != nil {
			return fmt.Errorf("failed to generate current plan: %w", err)
		}
		log.WithFields(log.Fields{
			"monthsToPayoff": plan.MonthsToPayoff,
			"debtFreeDate":   plan.DebtFreeDate(time.Now().UTC()).Format("2006-01"),
			"totalInterest":  fmt.Sprintf("%.2f", plan.TotalInterest()),
		}).Info("Current payoff outlook")

		// How the alternatives stack up against the configured strategy.
		ordered := []service.Strategy{strategy}
		for _, s := range service.ValidStrategies {
			if s != strategy {
				ordered = append(ordered, s)
			}
		}
		comparisons, err := planService.CompareStrategies(ctx, debts, planCfg, ordered)
		if err != nil {
			log.WithField("error", err).Warn("Failed to compare strategies")
		} else {
			for alt, comparison := range comparisons {
				log.WithFields(log.Fields{
					"baseline":      strategy,
					"alternative":   alt,
					"monthsDelta":   comparison.MonthsDelta,
					"interestDelta": fmt.Sprintf("%.2f", comparison.InterestDelta),
				}).Info("Strategy comparison")
			}
		}
	}

	trends, err := historyService.ProjectionTrends(ctx)
	if err != nil {
		log.WithField("error", err).Warn("Failed to compute projection trends")
	} else if trends != nil {
		log.WithFields(log.Fields{
			"monthsChange":     trends.TotalMonthsChange,
			"balanceReduction": fmt.Sprintf("%.2f", trends.BalanceReduction),
			"bestMonth":        trends.Best.SnapshotMonth,
		}).Info("Projection trends")
	}

	log.WithField("projections", len(projections)).Info("Reporting batch complete")
	return nil
}

func newSource(cfg *config.Config) (ynab.Source, error) {
	if cfg.BudgetFilePath == "" {
		return nil, fmt.Errorf("BUDGET_FILE is required")
	}

	var source ynab.Source = ynab.NewFileSource(cfg.BudgetFilePath)
	if cfg.RedisAddr != "" {
		ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
		source = ynab.NewCachedSource(source, cfg.RedisAddr, cfg.YnabBudgetID, ttl)
		log.WithField("ttl", ttl).Info("Budget source cache enabled")
	}
	return source, nil
}
