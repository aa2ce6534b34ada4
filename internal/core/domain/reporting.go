package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSummary folds the transaction set into the derived balance views
// for one period.
//
// Income and Expense cover the period regardless of payment status.
// RealBalance is the all-time signed sum of paid transactions only, and
// AccountBalances is the same sum scoped per account; both are global
// because cash position does not depend on the viewed month.
// ProjectedBalance is the end-of-period forecast: RealBalance plus the
// period's pending income minus its pending expense.
type BalanceSummary struct {
	Income           decimal.Decimal            `json:"income"`
	Expense          decimal.Decimal            `json:"expense"`
	RealBalance      decimal.Decimal            `json:"realBalance"`
	ProjectedBalance decimal.Decimal            `json:"projectedBalance"`
	AccountBalances  map[string]decimal.Decimal `json:"accountBalances"`
}

// MonthTotals carries income/expense sums for one calendar month of the
// comparison window.
type MonthTotals struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"` // 0-11
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// RepairReport summarizes one integrity repair pass. Skipped counts records
// whose calendar day could not be recovered; they are left untouched.
type RepairReport struct {
	Count   int `json:"count"`
	Skipped int `json:"skipped"`
}

// RecurrenceLinkReport summarizes a legacy recurrence linking pass.
type RecurrenceLinkReport struct {
	Legacy  int `json:"legacy"`  // Recurring records found without a series id
	Created int `json:"created"` // Future occurrences created
	Updated int `json:"updated"` // Existing records linked into a series
}

// SyncReport summarizes a store-to-store copy. Errors collects per-record
// failures; a bad record never aborts the rest of the batch.
type SyncReport struct {
	Categories   int      `json:"categories"`
	Accounts     int      `json:"accounts"`
	Transactions int      `json:"transactions"`
	Errors       []string `json:"errors,omitempty"`
}

// CloseMonthResult reports how many adjustment transactions a month close
// produced.
type CloseMonthResult struct {
	AccountsClosed int       `json:"accountsClosed"`
	ClosedAt       time.Time `json:"closedAt"`
}
