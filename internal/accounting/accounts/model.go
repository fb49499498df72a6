package accounts

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType enumerates chart-of-accounts categories.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// Valid reports whether the type is a known category.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// DebitNormal reports whether the account increases on the debit side.
// Assets and expenses are debit-normal; the rest are credit-normal.
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Account models a chart-of-accounts node scoped to one tenant.
type Account struct {
	ID            int64           `json:"id"`
	CompanyID     int64           `json:"companyId"`
	AccountNumber string          `json:"accountNumber"`
	Name          string          `json:"name"`
	Type          AccountType     `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
