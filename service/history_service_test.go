package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tkuminecz/ynab-reports/events"
	"github.com/tkuminecz/ynab-reports/models"
)

func newHistoryServiceForTest(factory UnitOfWorkFactory) *historyService {
	svc := NewHistoryService(factory, PlanConfig{
		Strategy:     StrategyLowestBalance,
		InterestMode: InterestNone,
	}).(*historyService)
	svc.now = func() time.Time {
		return time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestHistoryService_RebuildProjections(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockProjectionRepo := new(MockProjectionRepository)
	mockPaymentRepo := new(MockPaymentRepository)
	mockEventBus := new(MockEventPublisher)
	mockUoW.SetRepositories(mockProjectionRepo, mockPaymentRepo, mockEventBus)

	svc := newHistoryServiceForTest(mockFactory)

	ledgers := []models.AccountLedger{
		{Name: "Card", Balance: -500000},
	}
	configs := []models.Account{
		{Name: "Card", InterestRate: 0, MinPayment: 100},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	// Lookback 3 yields four monthly snapshots, each with the same $500
	// debt since the ledger has no entries to rewind.
	mockProjectionRepo.On("Upsert", ctx, mock.MatchedBy(func(p *models.Projection) bool {
		return p.TotalBalance == -500 &&
			p.MonthsToPayoff == 5 &&
			p.Source == models.ProjectionSourceReconstructed &&
			p.Strategy == string(StrategyLowestBalance)
	})).Return(nil).Times(4)

	mockEventBus.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		saved, ok := e.(events.ProjectionsSavedEvent)
		return ok && saved.Count == 4
	})).Return()

	saved, err := svc.RebuildProjections(ctx, ledgers, configs, 3)

	require.NoError(t, err)
	require.Len(t, saved, 4)
	assert.Equal(t, "2025-06", saved[0].SnapshotMonth)
	assert.Equal(t, "2025-09", saved[3].SnapshotMonth)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockProjectionRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestHistoryService_RebuildProjections_LookbackOutOfRange(t *testing.T) {
	ctx := context.Background()
	svc := newHistoryServiceForTest(new(MockUnitOfWorkFactory))

	ledgers := []models.AccountLedger{{Name: "Card", Balance: -500000}}

	for _, lookback := range []int{0, 2, 25} {
		_, err := svc.RebuildProjections(ctx, ledgers, nil, lookback)
		require.Error(t, err, "lookback %d", lookback)
		assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	}
}

func TestHistoryService_RebuildProjections_NoLedgers(t *testing.T) {
	ctx := context.Background()
	svc := newHistoryServiceForTest(new(MockUnitOfWorkFactory))

	_, err := svc.RebuildProjections(ctx, nil, nil, 12)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestHistoryService_RebuildProjections_UpsertFailureRollsBack(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockProjectionRepo := new(MockProjectionRepository)
	mockUoW.SetRepositories(mockProjectionRepo, new(MockPaymentRepository), new(MockEventPublisher))

	svc := newHistoryServiceForTest(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockProjectionRepo.On("Upsert", ctx, mock.Anything).Return(errors.New("disk full"))

	ledgers := []models.AccountLedger{{Name: "Card", Balance: -500000}}
	configs := []models.Account{{Name: "Card", MinPayment: 100}}

	_, err := svc.RebuildProjections(ctx, ledgers, configs, 3)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	mockUoW.AssertNotCalled(t, "Commit")
	mockUoW.AssertCalled(t, "Rollback")
}

func TestHistoryService_RecordInferredPayments(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockPaymentRepo := new(MockPaymentRepository)
	mockEventBus := new(MockEventPublisher)
	mockUoW.SetRepositories(new(MockProjectionRepository), mockPaymentRepo, mockEventBus)

	svc := newHistoryServiceForTest(mockFactory)

	history := models.AccountHistory{
		Name: "Card",
		Balances: []models.MonthlyBalance{
			{Month: models.Month{Year: 2025, Month: time.June}, Date: date(2025, time.June, 30), Balance: -1200},
			{Month: models.Month{Year: 2025, Month: time.July}, Date: date(2025, time.July, 31), Balance: -1100},
			// Balance grew: no payment worth recording.
			{Month: models.Month{Year: 2025, Month: time.August}, Date: date(2025, time.August, 31), Balance: -1300},
		},
	}
	account := models.Account{Name: "Card", InterestRate: 0, MinPayment: 50}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockPaymentRepo.On("Record", ctx, mock.MatchedBy(func(r *models.PaymentRecord) bool {
		return r.AccountName == "Card" &&
			r.TotalPayment == 100 &&
			r.BalanceAfter == -1100
	})).Return(nil).Once()

	mockEventBus.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		recorded, ok := e.(events.PaymentsRecordedEvent)
		return ok && recorded.Count == 1 && recorded.AccountName == "Card"
	})).Return()

	recorded, err := svc.RecordInferredPayments(ctx, history, account)

	require.NoError(t, err)
	assert.Equal(t, 1, recorded)
	mockPaymentRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestHistoryService_ClearHistory(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockProjectionRepo := new(MockProjectionRepository)
	mockPaymentRepo := new(MockPaymentRepository)
	mockEventBus := new(MockEventPublisher)
	mockUoW.SetRepositories(mockProjectionRepo, mockPaymentRepo, mockEventBus)

	svc := newHistoryServiceForTest(mockFactory)

	oldest := date(2025, time.January, 1)
	newest := date(2025, time.August, 1)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockProjectionRepo.On("Count", ctx).Return(8, &oldest, &newest, nil)
	mockPaymentRepo.On("Count", ctx).Return(3, nil)
	mockProjectionRepo.On("Clear", ctx).Return(nil)
	mockPaymentRepo.On("Clear", ctx).Return(nil)
	mockEventBus.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		cleared, ok := e.(events.HistoryClearedEvent)
		return ok && cleared.ProjectionsDeleted == 8 && cleared.PaymentsDeleted == 3
	})).Return()

	err := svc.ClearHistory(ctx)

	require.NoError(t, err)
	mockProjectionRepo.AssertExpectations(t)
	mockPaymentRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestHistoryService_StoreStats(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockProjectionRepo := new(MockProjectionRepository)
	mockPaymentRepo := new(MockPaymentRepository)
	mockUoW.SetRepositories(mockProjectionRepo, mockPaymentRepo, new(MockEventPublisher))

	svc := newHistoryServiceForTest(mockFactory)

	oldest := date(2025, time.January, 1)
	newest := date(2025, time.August, 1)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockProjectionRepo.On("Count", ctx).Return(8, &oldest, &newest, nil)
	mockPaymentRepo.On("Count", ctx).Return(3, nil)

	stats, err := svc.StoreStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, 8, stats.NumProjections)
	assert.Equal(t, 3, stats.NumPayments)
	assert.Equal(t, &oldest, stats.OldestDate)
	assert.Equal(t, &newest, stats.NewestDate)
}

func TestHistoryService_ProjectionTrends(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockProjectionRepo := new(MockProjectionRepository)
	mockUoW.SetRepositories(mockProjectionRepo, new(MockPaymentRepository), new(MockEventPublisher))

	svc := newHistoryServiceForTest(mockFactory)

	stored := []*models.Projection{
		{SnapshotMonth: "2025-01", SnapshotDate: date(2025, time.January, 1), TotalBalance: -1000, MonthsToPayoff: 20, DebtFreeDate: date(2026, time.September, 1)},
		{SnapshotMonth: "2025-02", SnapshotDate: date(2025, time.February, 1), TotalBalance: -900, MonthsToPayoff: 18, DebtFreeDate: date(2026, time.July, 1)},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockProjectionRepo.On("GetAll", ctx).Return(stored, nil)

	trends, err := svc.ProjectionTrends(ctx)

	require.NoError(t, err)
	require.NotNil(t, trends)
	assert.Equal(t, "2025-01", trends.First.SnapshotMonth)
	assert.Equal(t, -2, trends.TotalMonthsChange)
}
