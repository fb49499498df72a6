// Package banking manages bank accounts, statement transactions and
// reconciliation.
package banking

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a bank transaction.
type TransactionType string

const (
	TypeDebit    TransactionType = "DEBIT"
	TypeCredit   TransactionType = "CREDIT"
	TypeTransfer TransactionType = "TRANSFER"
)

// Valid reports whether the type is a known value.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeDebit, TypeCredit, TypeTransfer:
		return true
	}
	return false
}

// ReconciliationStatus tracks how far a transaction is through
// reconciliation.
type ReconciliationStatus string

const (
	StatusUnreconciled ReconciliationStatus = "UNRECONCILED"
	StatusCleared      ReconciliationStatus = "CLEARED"
	StatusReconciled   ReconciliationStatus = "RECONCILED"
)

// BankAccount is one bank account of a company.
type BankAccount struct {
	ID                int64           `json:"id"`
	CompanyID         int64           `json:"companyId"`
	AccountNumber     string          `json:"accountNumber"`
	BankName          string          `json:"bankName"`
	Currency          string          `json:"currency"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	ReconciledBalance decimal.Decimal `json:"reconciledBalance"`
	IsActive          bool            `json:"isActive"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// BankTransaction is one movement on a bank account.
type BankTransaction struct {
	ID             int64                `json:"id"`
	CompanyID      int64                `json:"companyId"`
	BankAccountID  int64                `json:"bankAccountId"`
	Date           time.Time            `json:"date"`
	Amount         decimal.Decimal      `json:"amount"`
	Type           TransactionType      `json:"transactionType"`
	Description    string               `json:"description"`
	Reference      string               `json:"reference"`
	Status         ReconciliationStatus `json:"reconciliationStatus"`
	JournalEntryID *int64               `json:"journalEntryId,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// SignedAmount is the transaction's effect on the account balance.
// Credits are inflows; debits and outbound transfer legs are outflows.
func (t BankTransaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeCredit {
		return t.Amount
	}
	return t.Amount.Neg()
}
