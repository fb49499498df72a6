package customers

import "github.com/shopspring/decimal"

// CreateCustomerRequest registers a customer.
type CreateCustomerRequest struct {
	Code        string          `json:"code" validate:"required,max=32"`
	Name        string          `json:"name" validate:"required,max=255"`
	Email       string          `json:"email" validate:"omitempty,email"`
	Phone       string          `json:"phone" validate:"max=32"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
}

// UpdateCustomerRequest patches a customer. Code is immutable.
type UpdateCustomerRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=255"`
	Email       *string          `json:"email" validate:"omitempty,email"`
	Phone       *string          `json:"phone" validate:"omitempty,max=32"`
	CreditLimit *decimal.Decimal `json:"creditLimit"`
	IsActive    *bool            `json:"isActive"`
}

// ListFilter narrows customer listings.
type ListFilter struct {
	Active *bool
	Search string
	Limit  int
	Offset int
}
