package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tkuminecz/ynab-reports/database"
	"github.com/tkuminecz/ynab-reports/models"
)

// ProjectionRepository implements the ProjectionRepository interface
type ProjectionRepository struct {
	q queryable
}

// NewProjectionRepository creates a new projection repository
func NewProjectionRepository(db *database.DB) *ProjectionRepository {
	return &ProjectionRepository{q: db.Pool}
}

// newProjectionRepositoryWithTx creates a new projection repository with a transaction
func newProjectionRepositoryWithTx(tx queryable) *ProjectionRepository {
	return &ProjectionRepository{q: tx}
}

const projectionColumns = `id, snapshot_month, snapshot_date, total_balance, months_to_payoff,
       projected_debt_free_date, total_payments, total_interest,
       snowball_amount, snowball_increase, strategy, num_accounts, source, created_at`

// Upsert inserts a projection, replacing any existing row for the same snapshot date
func (r *ProjectionRepository) Upsert(ctx context.Context, projection *models.Projection) error {
	query := `
		INSERT INTO payoff_projections
		(snapshot_month, snapshot_date, total_balance, months_to_payoff, projected_debt_free_date,
		 total_payments, total_interest, snowball_amount, snowball_increase, strategy, num_accounts, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (snapshot_date) DO UPDATE SET
			snapshot_month = EXCLUDED.snapshot_month,
			total_balance = EXCLUDED.total_balance,
			months_to_payoff = EXCLUDED.months_to_payoff,
			projected_debt_free_date = EXCLUDED.projected_debt_free_date,
			total_payments = EXCLUDED.total_payments,
			total_interest = EXCLUDED.total_interest,
			snowball_amount = EXCLUDED.snowball_amount,
			snowball_increase = EXCLUDED.snowball_increase,
			strategy = EXCLUDED.strategy,
			num_accounts = EXCLUDED.num_accounts,
			source = EXCLUDED.source
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		projection.SnapshotMonth,
		projection.SnapshotDate,
		projection.TotalBalance,
		projection.MonthsToPayoff,
		projection.DebtFreeDate,
		projection.TotalPayments,
		projection.TotalInterest,
		projection.SnowballAmount,
		projection.SnowballIncrease,
		projection.Strategy,
		projection.NumAccounts,
		projection.Source,
	).Scan(&projection.ID, &projection.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert projection for %s: %w", projection.SnapshotMonth, err)
	}
	return nil
}

// GetAll returns every stored projection ordered by snapshot date ascending
func (r *ProjectionRepository) GetAll(ctx context.Context) ([]*models.Projection, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM payoff_projections
		ORDER BY snapshot_date ASC
	`, projectionColumns)

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get projections: %w", err)
	}
	defer rows.Close()

	return scanProjections(rows)
}

// GetByMonth returns the projection for a snapshot month in "YYYY-MM" form
func (r *ProjectionRepository) GetByMonth(ctx context.Context, month string) (*models.Projection, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM payoff_projections
		WHERE snapshot_month = $1
	`, projectionColumns)

	projection, err := scanProjection(r.q.QueryRow(ctx, query, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get projection for month %s: %w", month, err)
	}
	return projection, nil
}

// GetLatest returns the projection with the most recent snapshot date
func (r *ProjectionRepository) GetLatest(ctx context.Context) (*models.Projection, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM payoff_projections
		ORDER BY snapshot_date DESC
		LIMIT 1
	`, projectionColumns)

	projection, err := scanProjection(r.q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest projection: %w", err)
	}
	return projection, nil
}

// GetByDateRange returns projections with snapshot dates within [from, to]
func (r *ProjectionRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*models.Projection, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM payoff_projections
		WHERE snapshot_date >= $1 AND snapshot_date <= $2
		ORDER BY snapshot_date ASC
	`, projectionColumns)

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get projections by date range: %w", err)
	}
	defer rows.Close()

	return scanProjections(rows)
}

// Clear deletes all stored projections
func (r *ProjectionRepository) Clear(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM payoff_projections`); err != nil {
		return fmt.Errorf("failed to clear projections: %w", err)
	}
	return nil
}

// Count returns the number of stored projections and the snapshot date bounds
func (r *ProjectionRepository) Count(ctx context.Context) (int, *time.Time, *time.Time, error) {
	query := `
		SELECT COUNT(*), MIN(snapshot_date), MAX(snapshot_date)
		FROM payoff_projections
	`

	var count int
	var oldest, newest *time.Time
	if err := r.q.QueryRow(ctx, query).Scan(&count, &oldest, &newest); err != nil {
		return 0, nil, nil, fmt.Errorf("failed to count projections: %w", err)
	}
	return count, oldest, newest, nil
}

func scanProjection(row pgx.Row) (*models.Projection, error) {
	var p models.Projection
	err := row.Scan(
		&p.ID,
		&p.SnapshotMonth,
		&p.SnapshotDate,
		&p.TotalBalance,
		&p.MonthsToPayoff,
		&p.DebtFreeDate,
		&p.TotalPayments,
		&p.TotalInterest,
		&p.SnowballAmount,
		&p.SnowballIncrease,
		&p.Strategy,
		&p.NumAccounts,
		&p.Source,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProjections(rows pgx.Rows) ([]*models.Projection, error) {
	var projections []*models.Projection
	for rows.Next() {
		projection, err := scanProjection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan projection: %w", err)
		}
		projections = append(projections, projection)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projections: %w", err)
	}
	return projections, nil
}
