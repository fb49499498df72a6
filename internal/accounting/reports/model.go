// Package reports produces financial statements from posted ledger data.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/accounting/accounts"
)

// AccountTotal aggregates posted debits and credits for one account.
type AccountTotal struct {
	AccountID     int64                `json:"accountId"`
	AccountNumber string               `json:"accountNumber"`
	Name          string               `json:"name"`
	Type          accounts.AccountType `json:"accountType"`
	Debit         decimal.Decimal      `json:"debit"`
	Credit        decimal.Decimal      `json:"credit"`
}

// TrialBalanceRow is one line of the trial balance.
type TrialBalanceRow struct {
	AccountNumber string          `json:"accountNumber"`
	Name          string          `json:"name"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TrialBalance lists per-account totals with grand totals.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Balanced    bool              `json:"balanced"`
}

// ProfitLoss summarises revenue and expense over a range.
type ProfitLoss struct {
	Revenue   []AccountTotal  `json:"revenue"`
	Expenses  []AccountTotal  `json:"expenses"`
	TotalRev  decimal.Decimal `json:"totalRevenue"`
	TotalExp  decimal.Decimal `json:"totalExpenses"`
	NetIncome decimal.Decimal `json:"netIncome"`
}

// BalanceSheet reports financial position as of a date.
type BalanceSheet struct {
	Assets           []AccountTotal  `json:"assets"`
	Liabilities      []AccountTotal  `json:"liabilities"`
	Equity           []AccountTotal  `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	Balanced         bool            `json:"balanced"`
}

// CashMovement is bank-side cash activity in one month bucket.
type CashMovement struct {
	Period   string          `json:"period"`
	Inflows  decimal.Decimal `json:"inflows"`
	Outflows decimal.Decimal `json:"outflows"`
}

// CashFlow is the cash-flow statement built from bank transactions.
type CashFlow struct {
	Buckets  []CashFlowBucket `json:"buckets"`
	NetCash  decimal.Decimal  `json:"netCash"`
	From     time.Time        `json:"from"`
	To       time.Time        `json:"to"`
}

// CashFlowBucket carries one period's movement and the running net.
type CashFlowBucket struct {
	Period   string          `json:"period"`
	Inflows  decimal.Decimal `json:"inflows"`
	Outflows decimal.Decimal `json:"outflows"`
	Net      decimal.Decimal `json:"net"`
	Running  decimal.Decimal `json:"running"`
}
