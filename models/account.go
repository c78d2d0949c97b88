package models

// Account represents one debt account inside a payoff plan. Balances are
// signed currency amounts: a negative balance is money owed, and an account
// whose balance has reached zero (or above) is considered paid off.
// MinPayment is the required monthly payment, expressed as a positive
// amount that moves the balance toward zero when applied.
type Account struct {
	Name         string  `db:"account_name"`
	Balance      float64 `db:"balance"`
	InterestRate float64 `db:"interest_rate"` // annual rate as a fraction, e.g. 0.20
	MinPayment   float64 `db:"min_payment"`
}

// Active reports whether the account still carries debt.
func (a Account) Active() bool {
	return a.Balance < 0
}

// ActiveAccounts returns the subset of accounts that still carry debt,
// preserving input order. The input is not modified.
func ActiveAccounts(accounts []Account) []Account {
	active := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if a.Active() {
			active = append(active, a)
		}
	}
	return active
}

// TotalBalance sums the signed balances of all accounts.
func TotalBalance(accounts []Account) float64 {
	var total float64
	for _, a := range accounts {
		total += a.Balance
	}
	return total
}

// TotalMinPayments sums the minimum payments of all accounts.
func TotalMinPayments(accounts []Account) float64 {
	var total float64
	for _, a := range accounts {
		total += a.MinPayment
	}
	return total
}
