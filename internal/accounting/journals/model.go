package journals

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalStatus enumerates the entry lifecycle.
type JournalStatus string

const (
	JournalStatusDraft     JournalStatus = "DRAFT"
	JournalStatusPosted    JournalStatus = "POSTED"
	JournalStatusReversed  JournalStatus = "REVERSED"
	JournalStatusCancelled JournalStatus = "CANCELLED"
)

// JournalEntry is one accounting transaction. EntryNumber comes from a
// global sequence; Reference is the external idempotency handle.
type JournalEntry struct {
	ID          int64           `json:"id"`
	CompanyID   int64           `json:"companyId"`
	EntryNumber int64           `json:"entryNumber"`
	Reference   uuid.UUID       `json:"reference"`
	Date        time.Time       `json:"date"`
	Memo        string          `json:"memo"`
	Status      JournalStatus   `json:"status"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	PostedBy    *int64          `json:"postedBy,omitempty"`
	PostedAt    *time.Time      `json:"postedAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Lines       []JournalLine   `json:"entries,omitempty"`
}

// JournalLine stores the debit or credit amount for one account.
type JournalLine struct {
	ID        int64           `json:"id"`
	EntryID   int64           `json:"journalEntryId"`
	AccountID int64           `json:"accountId"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// balanceTolerance is the accepted rounding slack between total debit and
// total credit of a posted entry.
var balanceTolerance = decimal.RequireFromString("0.01")
