package service

import (
	"context"
	"time"

	"github.com/tkuminecz/ynab-reports/events"
	"github.com/tkuminecz/ynab-reports/models"
)

// ProjectionRepository defines the interface for payoff projection storage
type ProjectionRepository interface {
	// Upsert inserts a projection, replacing any existing row for the same snapshot date
	Upsert(ctx context.Context, projection *models.Projection) error

	// GetAll returns every stored projection ordered by snapshot date ascending
	GetAll(ctx context.Context) ([]*models.Projection, error)

	// GetByMonth returns the projection for a snapshot month in "YYYY-MM" form
	GetByMonth(ctx context.Context, month string) (*models.Projection, error)

	// GetLatest returns the projection with the most recent snapshot date
	GetLatest(ctx context.Context) (*models.Projection, error)

	// GetByDateRange returns projections with snapshot dates within [from, to]
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*models.Projection, error)

	// Clear deletes all stored projections
	Clear(ctx context.Context) error

	// Count returns the number of stored projections and the snapshot date bounds
	Count(ctx context.Context) (int, *time.Time, *time.Time, error)
}

// PaymentRepository defines the interface for payment history storage
type PaymentRepository interface {
	// Record inserts a payment, replacing any existing row for the same date and account
	Record(ctx context.Context, payment *models.PaymentRecord) error

	// GetHistory returns payments ordered by payment date ascending, optionally
	// filtered to one account when accountName is non-empty
	GetHistory(ctx context.Context, accountName string) ([]*models.PaymentRecord, error)

	// Count returns the number of stored payment records
	Count(ctx context.Context) (int, error)

	// Clear deletes all stored payment records
	Clear(ctx context.Context) error
}

// HistoryService defines the interface for projection rebuild and retrieval
type HistoryService interface {
	// RebuildProjections reconstructs balances from the given ledgers, runs a
	// payoff simulation per historical month, and replaces the stored
	// projections for those months. Returns the projections it persisted.
	RebuildProjections(ctx context.Context, ledgers []models.AccountLedger, configs []models.Account, lookbackMonths int) ([]*models.Projection, error)

	// StoredProjections returns all persisted projections, oldest first
	StoredProjections(ctx context.Context) ([]*models.Projection, error)

	// LatestProjection returns the most recent persisted projection
	LatestProjection(ctx context.Context) (*models.Projection, error)

	// ProjectionTrends summarizes how the stored payoff outlook has moved over time
	ProjectionTrends(ctx context.Context) (*models.ProjectionTrends, error)

	// RecordInferredPayments persists the payment activity implied by a
	// reconstructed balance series
	RecordInferredPayments(ctx context.Context, history models.AccountHistory, account models.Account) (int, error)

	// ClearHistory deletes all stored projections and payment records
	ClearHistory(ctx context.Context) error

	// StoreStats reports what the store currently holds
	StoreStats(ctx context.Context) (*models.StoreStats, error)
}

// PlanService defines the interface for forward-looking payoff planning
type PlanService interface {
	// GeneratePlan runs a payoff simulation for the given accounts
	GeneratePlan(ctx context.Context, accounts []models.Account, cfg PlanConfig) (*models.PayoffPlan, error)

	// CompareStrategies runs one simulation per strategy and reports each
	// alternative against the first as baseline
	CompareStrategies(ctx context.Context, accounts []models.Account, cfg PlanConfig, strategies []Strategy) (map[Strategy]models.PlanComparison, error)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	ProjectionRepository() ProjectionRepository
	PaymentRepository() PaymentRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event)
}
