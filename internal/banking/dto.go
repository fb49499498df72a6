package banking

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountRequest opens a bank account.
type CreateAccountRequest struct {
	AccountNumber string `json:"accountNumber" validate:"required,max=64"`
	BankName      string `json:"bankName" validate:"required,max=255"`
	Currency      string `json:"currency" validate:"required,len=3"`
}

// UpdateAccountRequest patches mutable account fields.
type UpdateAccountRequest struct {
	BankName *string `json:"bankName" validate:"omitempty,max=255"`
	Currency *string `json:"currency" validate:"omitempty,len=3"`
	IsActive *bool   `json:"isActive"`
}

// CreateTransactionRequest records a single movement.
type CreateTransactionRequest struct {
	BankAccountID int64           `json:"bankAccountId" validate:"required,gt=0"`
	Date          time.Time       `json:"date" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Type          TransactionType `json:"transactionType" validate:"required"`
	Description   string          `json:"description" validate:"max=500"`
	Reference     string          `json:"reference" validate:"max=100"`
}

// ReconcileRequest marks transactions reconciled, optionally linking a
// journal entry.
type ReconcileRequest struct {
	TransactionIDs []int64 `json:"transactionIds" validate:"required,min=1,dive,gt=0"`
	JournalEntryID *int64  `json:"journalEntryId" validate:"omitempty,gt=0"`
}

// TransferRequest moves money between two accounts of the company.
type TransferRequest struct {
	FromAccountID int64           `json:"fromAccountId" validate:"required,gt=0"`
	ToAccountID   int64           `json:"toAccountId" validate:"required,gt=0"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Date          time.Time       `json:"date" validate:"required"`
	Description   string          `json:"description" validate:"max=500"`
}

// TransferResult returns both legs of a completed transfer.
type TransferResult struct {
	Reference string          `json:"reference"`
	Outgoing  BankTransaction `json:"outgoing"`
	Incoming  BankTransaction `json:"incoming"`
}

// ImportRowError describes one rejected statement line.
type ImportRowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportResult summarises a statement import.
type ImportResult struct {
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	BankAccountID *int64
	Type          *TransactionType
	Status        *ReconciliationStatus
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// AccountFilter narrows account listings.
type AccountFilter struct {
	Active *bool
	Limit  int
	Offset int
}
