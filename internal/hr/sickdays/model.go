// Package sickdays tracks employee sick leave.
package sickdays

import (
	"fmt"
	"time"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

// Status is the review state of a sick day record.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Valid reports whether the status is known.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// SickDay is one sick leave record.
type SickDay struct {
	ID         int64     `json:"id"`
	CompanyID  int64     `json:"companyId"`
	EmployeeID int64     `json:"employeeId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Reason     string    `json:"reason"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

var (
	ErrNotFound      = fmt.Errorf("sick day record %w", httpx.ErrNotFound)
	ErrInvalidStatus = fmt.Errorf("%w: invalid status", httpx.ErrValidation)
	ErrInvalidPeriod = fmt.Errorf("%w: end date must not precede start date", httpx.ErrValidation)
)
