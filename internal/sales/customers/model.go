// Package customers manages the customer master data of a company.
package customers

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

// Customer is one customer record.
type Customer struct {
	ID          int64           `json:"id"`
	CompanyID   int64           `json:"companyId"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

var (
	ErrNotFound      = fmt.Errorf("customer %w", httpx.ErrNotFound)
	ErrDuplicateCode = fmt.Errorf("customer code %w", httpx.ErrDuplicate)
	ErrNegativeLimit = fmt.Errorf("%w: credit limit must not be negative", httpx.ErrValidation)
)
