package accounts

import "github.com/shopspring/decimal"

// CreateAccountRequest carries fields for a new account.
type CreateAccountRequest struct {
	AccountNumber string           `json:"accountNumber" validate:"required,max=50"`
	Name          string           `json:"name" validate:"required,max=200"`
	Type          AccountType      `json:"accountType" validate:"required"`
	Currency      string           `json:"currency" validate:"required,len=3"`
	Balance       *decimal.Decimal `json:"balance,omitempty"`
}

// UpdateAccountRequest carries partial updates; nil fields are untouched.
type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Currency *string `json:"currency,omitempty" validate:"omitempty,len=3"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ListFilter narrows account listings.
type ListFilter struct {
	Type     *AccountType
	IsActive *bool
	Search   string
	Limit    int
	Offset   int
}
