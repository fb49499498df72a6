// Package ledger exposes the append-only general ledger rows produced by
// journal posting, one row per posted journal line.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Row is one immutable ledger record with the account's running balance
// after applying this movement.
type Row struct {
	ID             int64           `json:"id"`
	CompanyID      int64           `json:"companyId"`
	AccountID      int64           `json:"accountId"`
	JournalEntryID int64           `json:"journalEntryId"`
	Date           time.Time       `json:"date"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Balance        decimal.Decimal `json:"balance"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Filter narrows ledger queries.
type Filter struct {
	AccountID *int64
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// AccountBalance is the closing balance of one account as of a date.
type AccountBalance struct {
	AccountID int64           `json:"accountId"`
	AsOf      time.Time       `json:"asOf"`
	Balance   decimal.Decimal `json:"balance"`
}
