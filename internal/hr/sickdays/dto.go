package sickdays

import "time"

// CreateSickDayRequest files a sick leave record.
type CreateSickDayRequest struct {
	EmployeeID int64     `json:"employeeId" validate:"required,gt=0"`
	StartDate  time.Time `json:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" validate:"required"`
	Reason     string    `json:"reason" validate:"max=500"`
}

// UpdateSickDayRequest patches a record, including status transitions.
type UpdateSickDayRequest struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Reason    *string    `json:"reason" validate:"omitempty,max=500"`
	Status    *Status    `json:"status"`
}

// ListFilter narrows sick day listings.
type ListFilter struct {
	EmployeeID *int64
	Status     *Status
	Limit      int
	Offset     int
}
