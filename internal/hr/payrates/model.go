// Package payrates manages employee compensation rates.
package payrates

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

// RateType distinguishes hourly wages from salaries.
type RateType string

const (
	RateHourly RateType = "HOURLY"
	RateSalary RateType = "SALARY"
)

// Valid reports whether the rate type is known.
func (t RateType) Valid() bool {
	return t == RateHourly || t == RateSalary
}

// PayRate is one compensation arrangement for an employee. Deleting a pay
// rate deactivates it; the row is kept for payroll history.
type PayRate struct {
	ID            int64           `json:"id"`
	CompanyID     int64           `json:"companyId"`
	EmployeeID    int64           `json:"employeeId"`
	Name          string          `json:"name"`
	RateType      RateType        `json:"rateType"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

var (
	ErrNotFound          = fmt.Errorf("pay rate %w", httpx.ErrNotFound)
	ErrInvalidRateType   = fmt.Errorf("%w: invalid rate type", httpx.ErrValidation)
	ErrNonPositiveAmount = fmt.Errorf("%w: amount must be positive", httpx.ErrValidation)
)
