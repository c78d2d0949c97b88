package models

import "time"

// LedgerEntry is one transaction on a debt account, as supplied by the
// ledger source. Amount is in milliunits (1000 = one currency unit),
// signed the same way as balances.
type LedgerEntry struct {
	Date   time.Time
	Amount int64
}

// AccountLedger bundles an account's present state with its transaction
// history, the raw material for balance reconstruction.
type AccountLedger struct {
	AccountID   string
	Name        string
	AccountType string
	Balance     int64 // current balance in milliunits
	Entries     []LedgerEntry
}

// MonthlyBalance is an account's reconstructed balance at one month-end.
type MonthlyBalance struct {
	Month      Month
	Date       time.Time // month-end date
	Balance    float64   // currency units, signed
	Milliunits int64
}

// AccountHistory is the reconstructed month-end balance series for one
// account over the lookback window.
type AccountHistory struct {
	AccountID   string
	Name        string
	AccountType string
	Balances    []MonthlyBalance
}

// InferredPayment is the implied payment activity for one historical
// month, derived from consecutive month-end balances. Interest and
// principal are estimates based on the account's annual rate; Snowball is
// the inferred amount paid beyond the minimum.
type InferredPayment struct {
	Month         Month
	Date          time.Time
	BalanceChange float64 // positive = debt reduced
	PrevBalance   float64
	CurrBalance   float64
	InterestRate  float64
	Interest      float64
	Principal     float64
	TotalPayment  float64
	MinPayment    float64
	Snowball      float64
}

// HistoricalSnapshot is a reconstructed point-in-time state: every account
// that carried debt at the end of the given month, with the rates and
// minimum payments in effect.
type HistoricalSnapshot struct {
	Month        Month
	Date         time.Time // first day of the month
	Accounts     []Account
	TotalBalance float64
}

// Projection is a payoff plan computed as of one historical month: how far
// out the debt-free date looked from that point in time. A sequence of
// Projections, one per reconstructed month, forms the plan-evolution
// timeline.
type Projection struct {
	ID               int64     `db:"id"`
	SnapshotMonth    string    `db:"snapshot_month"` // "YYYY-MM"
	SnapshotDate     time.Time `db:"snapshot_date"`
	TotalBalance     float64   `db:"total_balance"`
	MonthsToPayoff   int       `db:"months_to_payoff"`
	DebtFreeDate     time.Time `db:"projected_debt_free_date"`
	TotalPayments    float64   `db:"total_payments"`
	TotalInterest    float64   `db:"total_interest"`
	SnowballAmount   float64   `db:"snowball_amount"`
	SnowballIncrease float64   `db:"snowball_increase"`
	Strategy         string    `db:"strategy"`
	NumAccounts      int       `db:"num_accounts"`
	Source           string    `db:"source"`
	CreatedAt        time.Time `db:"created_at"`
}

// ProjectionSourceReconstructed marks projections rebuilt from transaction
// history, as opposed to ones captured live.
const (
	ProjectionSourceReconstructed = "reconstructed"
	ProjectionSourceLive          = "live"
)

// MonthChange is the month-over-month movement of the projected payoff
// timeline. Negative ChangeMonths means the debt-free date moved closer.
type MonthChange struct {
	Month        string
	ChangeMonths int
	PrevMonths   int
	CurrMonths   int
}

// ProjectionTrends summarizes how the payoff outlook moved across a stored
// projection sequence.
type ProjectionTrends struct {
	First                 *Projection
	Last                  *Projection
	Best                  *Projection // earliest projected debt-free date
	Worst                 *Projection
	TotalDateChangeDays   int
	TotalMonthsChange     int
	BalanceReduction      float64
	BalanceReductionPct   float64
	MonthOverMonth        []MonthChange
	BiggestImprovement    *MonthChange
	BiggestSetback        *MonthChange
	AvgMonthlyBalanceDrop float64
}

// PaymentRecord is one observed (or inferred) payment against a debt
// account, persisted for actual-versus-projected tracking.
type PaymentRecord struct {
	ID            int64     `db:"id"`
	PaymentDate   time.Time `db:"payment_date"`
	AccountName   string    `db:"account_name"`
	TotalPayment  float64   `db:"total_payment"`
	MinPayment    float64   `db:"min_payment"`
	SnowballPaid  float64   `db:"snowball_payment"`
	InterestPaid  float64   `db:"interest_paid"`
	PrincipalPaid float64   `db:"principal_paid"`
	BalanceAfter  float64   `db:"balance_after"`
	CreatedAt     time.Time `db:"created_at"`
}

// StoreStats describes what the projection store currently holds.
type StoreStats struct {
	NumProjections int
	OldestDate     *time.Time
	NewestDate     *time.Time
	NumPayments    int
}
