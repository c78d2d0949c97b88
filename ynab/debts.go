package ynab

import (
	"math"
	"regexp"
	"strconv"

	"github.com/tkuminecz/ynab-reports/models"
)

// DefaultNoteRate is assumed when an account note carries no rate.
const DefaultNoteRate = 0.20

var (
	noteRatePattern       = regexp.MustCompile(`interest_rate=(\d+\.\d+)`)
	noteMinPaymentPattern = regexp.MustCompile(`min_payment=(\d+\.\d+)`)
)

// ParseNoteRate extracts an annual interest rate from an account note,
// written as a percentage like "interest_rate=19.99".
func ParseNoteRate(note string) float64 {
	m := noteRatePattern.FindStringSubmatch(note)
	if m == nil {
		return DefaultNoteRate
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return DefaultNoteRate
	}
	return pct / 100
}

// ParseNoteMinPayment extracts a minimum payment override from an account
// note, written like "min_payment=45.00".
func ParseNoteMinPayment(note string) (float64, bool) {
	m := noteMinPaymentPattern.FindStringSubmatch(note)
	if m == nil {
		return 0, false
	}
	payment, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return payment, true
}

// RevolvingMinPayment estimates a credit-card style minimum payment from a
// milliunit balance: 1% of the balance, floored at $25, or the full balance
// when less than $25 is owed.
func RevolvingMinPayment(balanceMilliunits int64) float64 {
	dollars := float64(balanceMilliunits) / 1000
	if dollars >= -25 {
		return -dollars
	}
	onePercent := math.Floor(dollars * 0.01)
	return math.Max(25, -onePercent)
}

// DebtsFromRecords maps raw budget accounts to payoff accounts. Closed and
// non-debt accounts are dropped, as are accounts that carry no debt. For
// credit cards, the payment category named after the card holds money
// already set aside, so it nets against the card's balance.
func DebtsFromRecords(accounts []AccountRecord, categories []CategoryRecord) []models.Account {
	categoryByName := make(map[string]CategoryRecord, len(categories))
	for _, c := range categories {
		categoryByName[c.Name] = c
	}

	var debts []models.Account
	for _, acct := range accounts {
		if acct.Closed || !IsDebtAccount(acct.Type) {
			continue
		}

		balanceMilliunits := acct.Balance
		if revolvingTypes[acct.Type] {
			if category, ok := categoryByName[acct.Name]; ok {
				balanceMilliunits += category.Balance
			}
		}
		if balanceMilliunits >= 0 {
			continue
		}

		debt := models.Account{
			Name:    acct.Name,
			Balance: float64(balanceMilliunits) / 1000,
		}

		if revolvingTypes[acct.Type] {
			debt.InterestRate = ParseNoteRate(acct.Note)
			if override, ok := ParseNoteMinPayment(acct.Note); ok {
				debt.MinPayment = override
			} else {
				debt.MinPayment = RevolvingMinPayment(balanceMilliunits)
			}
		} else {
			debt.InterestRate = latestScheduleValue(acct.DebtInterestRates, 0) / 1000 / 100
			debt.MinPayment = latestScheduleValue(acct.DebtMinimumPayments, 0) / 1000
			if override, ok := ParseNoteMinPayment(acct.Note); ok {
				debt.MinPayment = override
			}
		}

		debts = append(debts, debt)
	}
	return debts
}

// LedgersFromRecords bundles debt accounts with their transactions for
// balance reconstruction. Closed debt accounts are kept here: their history
// still shaped past balances.
func LedgersFromRecords(accounts []AccountRecord, transactions []TransactionRecord) []models.AccountLedger {
	byAccount := make(map[string][]models.LedgerEntry)
	for _, txn := range transactions {
		byAccount[txn.AccountID] = append(byAccount[txn.AccountID], models.LedgerEntry{
			Date:   txn.Date,
			Amount: txn.Amount,
		})
	}

	var ledgers []models.AccountLedger
	for _, acct := range accounts {
		if !IsDebtAccount(acct.Type) {
			continue
		}
		ledgers = append(ledgers, models.AccountLedger{
			AccountID:   acct.ID,
			Name:        acct.Name,
			AccountType: acct.Type,
			Balance:     acct.Balance,
			Entries:     byAccount[acct.ID],
		})
	}
	return ledgers
}

// latestScheduleValue picks the value under the lexicographically greatest
// key. Schedule keys are ISO dates, so that is the most recent entry.
func latestScheduleValue(schedule map[string]int64, fallback float64) float64 {
	latestKey := ""
	for key := range schedule {
		if key > latestKey {
			latestKey = key
		}
	}
	if latestKey == "" {
		return fallback
	}
	return float64(schedule[latestKey])
}
