package payrates

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePayRateRequest registers a compensation rate.
type CreatePayRateRequest struct {
	EmployeeID    int64           `json:"employeeId" validate:"required,gt=0"`
	Name          string          `json:"name" validate:"required,max=255"`
	RateType      RateType        `json:"rateType" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Currency      string          `json:"currency" validate:"required,len=3"`
	EffectiveDate time.Time       `json:"effectiveDate" validate:"required"`
}

// UpdatePayRateRequest patches a pay rate.
type UpdatePayRateRequest struct {
	Name          *string          `json:"name" validate:"omitempty,max=255"`
	RateType      *RateType        `json:"rateType"`
	Amount        *decimal.Decimal `json:"amount"`
	Currency      *string          `json:"currency" validate:"omitempty,len=3"`
	EffectiveDate *time.Time       `json:"effectiveDate"`
	IsActive      *bool            `json:"isActive"`
}

// ListFilter narrows pay rate listings.
type ListFilter struct {
	EmployeeID *int64
	Active     *bool
	Limit      int
	Offset     int
}
