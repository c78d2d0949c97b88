package ynab

import (
	"context"
	"time"
)

// AccountRecord is a budget account as the ledger source reports it.
// All monetary fields are milliunits (1000 = one currency unit).
type AccountRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Balance int64  `json:"balance"`
	Note    string `json:"note"`
	Closed  bool   `json:"closed"`

	// Loan accounts carry date-keyed rate and payment schedules. Rates are
	// scaled by 1000 on top of being percentages.
	DebtInterestRates   map[string]int64 `json:"debt_interest_rates"`
	DebtMinimumPayments map[string]int64 `json:"debt_minimum_payments"`
}

// CategoryRecord is a budget category; for credit cards the payment
// category's balance is money already set aside toward the card.
type CategoryRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

// TransactionRecord is one ledger transaction on an account.
type TransactionRecord struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Date      time.Time `json:"date"`
	Amount    int64     `json:"amount"`
}

// Source supplies budget data for debt mapping and balance reconstruction.
type Source interface {
	Accounts(ctx context.Context) ([]AccountRecord, error)
	Categories(ctx context.Context) ([]CategoryRecord, error)
	Transactions(ctx context.Context, since time.Time) ([]TransactionRecord, error)
}

// Account types that represent debt.
const (
	TypeCreditCard   = "creditCard"
	TypeLineOfCredit = "lineOfCredit"
	TypeAutoLoan     = "autoLoan"
	TypeStudentLoan  = "studentLoan"
	TypePersonalLoan = "personalLoan"
	TypeMortgage     = "mortgage"
	TypeMedicalDebt  = "medicalDebt"
	TypeOtherDebt    = "otherDebt"
)

var debtAccountTypes = map[string]bool{
	TypeCreditCard:   true,
	TypeLineOfCredit: true,
	TypeAutoLoan:     true,
	TypeStudentLoan:  true,
	TypePersonalLoan: true,
	TypeMortgage:     true,
	TypeMedicalDebt:  true,
	TypeOtherDebt:    true,
}

// IsDebtAccount reports whether the account type represents debt.
func IsDebtAccount(accountType string) bool {
	return debtAccountTypes[accountType]
}

// revolvingTypes get the credit-card minimum payment heuristic instead of
// a lender-supplied payment schedule.
var revolvingTypes = map[string]bool{
	TypeCreditCard:   true,
	TypeLineOfCredit: true,
}
