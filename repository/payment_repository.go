package repository

import (
	"context"
	"fmt"

	"github.com/tkuminecz/ynab-reports/database"
	"github.com/tkuminecz/ynab-reports/models"
)

// PaymentRepository implements the PaymentRepository interface
type PaymentRepository struct {
	q queryable
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *database.DB) *PaymentRepository {
	return &PaymentRepository{q: db.Pool}
}

// newPaymentRepositoryWithTx creates a new payment repository with a transaction
func newPaymentRepositoryWithTx(tx queryable) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

// Record inserts a payment, replacing any existing row for the same date and account
func (r *PaymentRepository) Record(ctx context.Context, payment *models.PaymentRecord) error {
	query := `
		INSERT INTO payment_history
		(payment_date, account_name, total_payment, min_payment, snowball_payment,
		 interest_paid, principal_paid, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (payment_date, account_name) DO UPDATE SET
			total_payment = EXCLUDED.total_payment,
			min_payment = EXCLUDED.min_payment,
			snowball_payment = EXCLUDED.snowball_payment,
			interest_paid = EXCLUDED.interest_paid,
			principal_paid = EXCLUDED.principal_paid,
			balance_after = EXCLUDED.balance_after
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		payment.PaymentDate,
		payment.AccountName,
		payment.TotalPayment,
		payment.MinPayment,
		payment.SnowballPaid,
		payment.InterestPaid,
		payment.PrincipalPaid,
		payment.BalanceAfter,
	).Scan(&payment.ID, &payment.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record payment for %s: %w", payment.AccountName, err)
	}
	return nil
}

// GetHistory returns payments ordered by payment date ascending, optionally
// filtered to one account when accountName is non-empty
func (r *PaymentRepository) GetHistory(ctx context.Context, accountName string) ([]*models.PaymentRecord, error) {
	query := `
		SELECT id, payment_date, account_name, total_payment, min_payment,
		       snowball_payment, interest_paid, principal_paid, balance_after, created_at
		FROM payment_history
		WHERE ($1 = '' OR account_name = $1)
		ORDER BY payment_date ASC, account_name ASC
	`

	rows, err := r.q.Query(ctx, query, accountName)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment history: %w", err)
	}
	defer rows.Close()

	var payments []*models.PaymentRecord
	for rows.Next() {
		var p models.PaymentRecord
		err := rows.Scan(
			&p.ID,
			&p.PaymentDate,
			&p.AccountName,
			&p.TotalPayment,
			&p.MinPayment,
			&p.SnowballPaid,
			&p.InterestPaid,
			&p.PrincipalPaid,
			&p.BalanceAfter,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// Count returns the number of stored payment records
func (r *PaymentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM payment_history`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return count, nil
}

// Clear deletes all stored payment records
func (r *PaymentRepository) Clear(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM payment_history`); err != nil {
		return fmt.Errorf("failed to clear payments: %w", err)
	}
	return nil
}
