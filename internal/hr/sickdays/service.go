package sickdays

import "context"

// Service implements sick day operations.
type Service struct {
	repo Repository
}

// NewService wires the service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create files a record as Pending.
func (s *Service) Create(ctx context.Context, companyID int64, req CreateSickDayRequest) (SickDay, error) {
	if req.EndDate.Before(req.StartDate) {
		return SickDay{}, ErrInvalidPeriod
	}
	return s.repo.Create(ctx, SickDay{
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
		Status:     StatusPending,
	})
}

// Get fetches one record.
func (s *Service) Get(ctx context.Context, companyID, id int64) (SickDay, error) {
	return s.repo.Get(ctx, companyID, id)
}

// List pages through records.
func (s *Service) List(ctx context.Context, companyID int64, filter ListFilter) ([]SickDay, int, error) {
	return s.repo.List(ctx, companyID, filter)
}

// Update patches a record. Status moves by direct update.
func (s *Service) Update(ctx context.Context, companyID, id int64, req UpdateSickDayRequest) (SickDay, error) {
	current, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return SickDay{}, err
	}

	start, end := current.StartDate, current.EndDate
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}
	if end.Before(start) {
		return SickDay{}, ErrInvalidPeriod
	}

	updates := map[string]any{}
	if req.StartDate != nil {
		updates["start_date"] = start
	}
	if req.EndDate != nil {
		updates["end_date"] = end
	}
	if req.Reason != nil {
		updates["reason"] = *req.Reason
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return SickDay{}, ErrInvalidStatus
		}
		updates["status"] = *req.Status
	}
	if err := s.repo.Update(ctx, companyID, id, updates); err != nil {
		return SickDay{}, err
	}
	return s.repo.Get(ctx, companyID, id)
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, companyID, id int64) error {
	return s.repo.Delete(ctx, companyID, id)
}
