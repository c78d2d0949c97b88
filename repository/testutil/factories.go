package testutil

import (
	"time"

	"github.com/tkuminecz/ynab-reports/models"
)

// CreateTestProjection creates a test projection with default values
func CreateTestProjection(month string, snapshotDate time.Time) *models.Projection {
	return &models.Projection{
		SnapshotMonth:  month,
		SnapshotDate:   snapshotDate,
		TotalBalance:   -5000,
		MonthsToPayoff: 24,
		DebtFreeDate:   snapshotDate.AddDate(0, 24, 0),
		TotalPayments:  5600,
		TotalInterest:  600,
		SnowballAmount: 100,
		Strategy:       "smart",
		NumAccounts:    3,
		Source:         models.ProjectionSourceReconstructed,
	}
}

// CreateTestProjectionWithBalance creates a test projection with a specific balance
func CreateTestProjectionWithBalance(month string, snapshotDate time.Time, totalBalance float64, monthsToPayoff int) *models.Projection {
	projection := CreateTestProjection(month, snapshotDate)
	projection.TotalBalance = totalBalance
	projection.MonthsToPayoff = monthsToPayoff
	projection.DebtFreeDate = snapshotDate.AddDate(0, monthsToPayoff, 0)
	return projection
}

// CreateTestPaymentRecord creates a test payment record with default values
func CreateTestPaymentRecord(accountName string, paymentDate time.Time) *models.PaymentRecord {
	return &models.PaymentRecord{
		PaymentDate:   paymentDate,
		AccountName:   accountName,
		TotalPayment:  150,
		MinPayment:    50,
		SnowballPaid:  100,
		InterestPaid:  20,
		PrincipalPaid: 130,
		BalanceAfter:  -1870,
	}
}
