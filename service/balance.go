package service

import "github.com/tkuminecz/ynab-reports/models"

// InterestMode selects how a month's payments turn into new balances.
type InterestMode int

const (
	// InterestAccruing charges one month of interest on the outstanding
	// balance before the payment reduces principal. This is the canonical
	// mode.
	InterestAccruing InterestMode = iota

	// InterestNone applies the payment directly to the balance with no
	// interest term.
	InterestNone
)

// ApplyPayments produces each account's balance after a month's payments
// and accrued interest. Accounts without a matching payment are carried
// over unchanged. Neither input is mutated.
func ApplyPayments(accounts []models.Account, payments []models.MonthlyPayment, mode InterestMode) []models.Account {
	byAccount := make(map[string]models.MonthlyPayment, len(payments))
	for _, p := range payments {
		byAccount[p.Account] = p
	}

	updated := make([]models.Account, len(accounts))
	for i, acct := range accounts {
		updated[i] = acct
		p, ok := byAccount[acct.Name]
		if !ok {
			continue
		}

		if mode == InterestNone {
			updated[i].Balance = acct.Balance + p.TotalPayment
			continue
		}

		// A payment that reaches zero stops interest for the month;
		// otherwise interest consumes part of the payment before any
		// principal is reduced.
		var interest float64
		if acct.Balance+p.TotalPayment < 0 {
			interest = -acct.Balance * (acct.InterestRate / 12)
		}
		principal := p.TotalPayment - interest
		updated[i].Balance = acct.Balance + principal
	}
	return updated
}
