package payrates

import "context"

// Service implements pay rate operations.
type Service struct {
	repo Repository
}

// NewService wires the service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a pay rate.
func (s *Service) Create(ctx context.Context, companyID int64, req CreatePayRateRequest) (PayRate, error) {
	if !req.RateType.Valid() {
		return PayRate{}, ErrInvalidRateType
	}
	if !req.Amount.IsPositive() {
		return PayRate{}, ErrNonPositiveAmount
	}
	return s.repo.Create(ctx, PayRate{
		CompanyID:     companyID,
		EmployeeID:    req.EmployeeID,
		Name:          req.Name,
		RateType:      req.RateType,
		Amount:        req.Amount,
		Currency:      req.Currency,
		EffectiveDate: req.EffectiveDate,
	})
}

// Get fetches one pay rate.
func (s *Service) Get(ctx context.Context, companyID, id int64) (PayRate, error) {
	return s.repo.Get(ctx, companyID, id)
}

// List pages through pay rates, inactive rows included unless filtered.
func (s *Service) List(ctx context.Context, companyID int64, filter ListFilter) ([]PayRate, int, error) {
	return s.repo.List(ctx, companyID, filter)
}

// Update patches a pay rate.
func (s *Service) Update(ctx context.Context, companyID, id int64, req UpdatePayRateRequest) (PayRate, error) {
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.RateType != nil {
		if !req.RateType.Valid() {
			return PayRate{}, ErrInvalidRateType
		}
		updates["rate_type"] = *req.RateType
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return PayRate{}, ErrNonPositiveAmount
		}
		updates["amount"] = *req.Amount
	}
	if req.Currency != nil {
		updates["currency"] = *req.Currency
	}
	if req.EffectiveDate != nil {
		updates["effective_date"] = *req.EffectiveDate
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if err := s.repo.Update(ctx, companyID, id, updates); err != nil {
		return PayRate{}, err
	}
	return s.repo.Get(ctx, companyID, id)
}

// Delete deactivates the pay rate. The row stays for payroll history.
func (s *Service) Delete(ctx context.Context, companyID, id int64) error {
	return s.repo.Deactivate(ctx, companyID, id)
}
