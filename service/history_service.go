package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tkuminecz/ynab-reports/events"
	"github.com/tkuminecz/ynab-reports/models"
)

// Lookback window bounds, in months. Anything outside is a caller error.
const (
	MinLookbackMonths = 3
	MaxLookbackMonths = 24
)

// historyService implements the HistoryService interface
type historyService struct {
	uowFactory UnitOfWorkFactory
	planCfg    PlanConfig
	now        func() time.Time
}

// NewHistoryService creates a new history service. The plan config sets the
// strategy and snowball parameters used for every reconstructed month.
func NewHistoryService(uowFactory UnitOfWorkFactory, planCfg PlanConfig) HistoryService {
	return &historyService{
		uowFactory: uowFactory,
		planCfg:    planCfg,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// RebuildProjections reconstructs balances from the given ledgers, simulates
// a payoff plan from each historical month, and upserts the results in one
// transaction.
func (s *historyService) RebuildProjections(ctx context.Context, ledgers []models.AccountLedger, configs []models.Account, lookbackMonths int) ([]*models.Projection, error) {
	if lookbackMonths < MinLookbackMonths || lookbackMonths > MaxLookbackMonths {
		return nil, fmt.Errorf("%w: lookback must be between %d and %d months, got %d",
			ErrInvalidConfiguration, MinLookbackMonths, MaxLookbackMonths, lookbackMonths)
	}
	if len(ledgers) == 0 {
		return nil, fmt.Errorf("%w: no account ledgers to reconstruct", ErrInvalidConfiguration)
	}

	today := s.now()
	snapshots := BuildSnapshots(ledgers, configs, lookbackMonths, today)
	projections := GenerateProjections(snapshots, s.planCfg)
	if len(projections) == 0 {
		return nil, fmt.Errorf("no projections could be generated from %d months of history", lookbackMonths)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	saved := make([]*models.Projection, 0, len(projections))
	for i := range projections {
		p := projections[i]
		if err := uow.ProjectionRepository().Upsert(ctx, &p); err != nil {
			return nil, fmt.Errorf("failed to save projection for %s: %w", p.SnapshotMonth, err)
		}
		saved = append(saved, &p)
	}

	uow.EventBus().Publish(events.ProjectionsSavedEvent{
		Count:    len(saved),
		Strategy: string(s.planCfg.Strategy),
		From:     saved[0].SnapshotDate,
		To:       saved[len(saved)-1].SnapshotDate,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit projections: %w", err)
	}

	log.WithFields(log.Fields{
		"projections": len(saved),
		"lookback":    lookbackMonths,
		"strategy":    s.planCfg.Strategy,
	}).Info("Rebuilt payoff projections from transaction history")

	return saved, nil
}

// StoredProjections returns all persisted projections, oldest first
func (s *historyService) StoredProjections(ctx context.Context) ([]*models.Projection, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	projections, err := uow.ProjectionRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get projections: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return projections, nil
}

// LatestProjection returns the most recent persisted projection
func (s *historyService) LatestProjection(ctx context.Context) (*models.Projection, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	projection, err := uow.ProjectionRepository().GetLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest projection: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return projection, nil
}

// ProjectionTrends summarizes how the stored payoff outlook has moved
func (s *historyService) ProjectionTrends(ctx context.Context) (*models.ProjectionTrends, error) {
	stored, err := s.StoredProjections(ctx)
	if err != nil {
		return nil, err
	}

	projections := make([]models.Projection, len(stored))
	for i, p := range stored {
		projections[i] = *p
	}
	return CalculateTrends(projections), nil
}

// RecordInferredPayments persists the payment activity implied by a
// reconstructed balance series.
func (s *historyService) RecordInferredPayments(ctx context.Context, history models.AccountHistory, account models.Account) (int, error) {
	inferred := InferPayments(history.Balances, account.InterestRate, account.MinPayment)
	if len(inferred) == 0 {
		return 0, nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	recorded := 0
	for _, p := range inferred {
		// Months with no payment activity carry no signal worth storing.
		if p.TotalPayment <= 0 {
			continue
		}
		record := &models.PaymentRecord{
			PaymentDate:   p.Date,
			AccountName:   history.Name,
			TotalPayment:  p.TotalPayment,
			MinPayment:    p.MinPayment,
			SnowballPaid:  p.Snowball,
			InterestPaid:  p.Interest,
			PrincipalPaid: p.Principal,
			BalanceAfter:  p.CurrBalance,
		}
		if err := uow.PaymentRepository().Record(ctx, record); err != nil {
			return 0, fmt.Errorf("failed to record payment for %s in %s: %w", history.Name, p.Month, err)
		}
		recorded++
	}

	uow.EventBus().Publish(events.PaymentsRecordedEvent{
		AccountName: history.Name,
		Count:       recorded,
	})

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit payments: %w", err)
	}
	return recorded, nil
}

// ClearHistory deletes all stored projections and payment records
func (s *historyService) ClearHistory(ctx context.Context) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	numProjections, _, _, err := uow.ProjectionRepository().Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count projections: %w", err)
	}
	numPayments, err := uow.PaymentRepository().Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count payments: %w", err)
	}

	if err := uow.ProjectionRepository().Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear projections: %w", err)
	}
	if err := uow.PaymentRepository().Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear payments: %w", err)
	}

	uow.EventBus().Publish(events.HistoryClearedEvent{
		ProjectionsDeleted: numProjections,
		PaymentsDeleted:    numPayments,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}

	log.WithFields(log.Fields{
		"projections": numProjections,
		"payments":    numPayments,
	}).Info("Cleared projection history")
	return nil
}

// StoreStats reports what the store currently holds
func (s *historyService) StoreStats(ctx context.Context) (*models.StoreStats, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	numProjections, oldest, newest, err := uow.ProjectionRepository().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count projections: %w", err)
	}
	numPayments, err := uow.PaymentRepository().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count payments: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return &models.StoreStats{
		NumProjections: numProjections,
		OldestDate:     oldest,
		NewestDate:     newest,
		NumPayments:    numPayments,
	}, nil
}
