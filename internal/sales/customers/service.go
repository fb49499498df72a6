package customers

import "context"

// Service implements customer operations.
type Service struct {
	repo Repository
}

// NewService wires the service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a customer.
func (s *Service) Create(ctx context.Context, companyID int64, req CreateCustomerRequest) (Customer, error) {
	if req.CreditLimit.IsNegative() {
		return Customer{}, ErrNegativeLimit
	}
	return s.repo.Create(ctx, Customer{
		CompanyID:   companyID,
		Code:        req.Code,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		CreditLimit: req.CreditLimit,
	})
}

// Get fetches one customer.
func (s *Service) Get(ctx context.Context, companyID, id int64) (Customer, error) {
	return s.repo.Get(ctx, companyID, id)
}

// List pages through customers.
func (s *Service) List(ctx context.Context, companyID int64, filter ListFilter) ([]Customer, int, error) {
	return s.repo.List(ctx, companyID, filter)
}

// Update patches a customer. Code is immutable.
func (s *Service) Update(ctx context.Context, companyID, id int64, req UpdateCustomerRequest) (Customer, error) {
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return Customer{}, ErrNegativeLimit
		}
		updates["credit_limit"] = *req.CreditLimit
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if err := s.repo.Update(ctx, companyID, id, updates); err != nil {
		return Customer{}, err
	}
	return s.repo.Get(ctx, companyID, id)
}

// Delete removes a customer.
func (s *Service) Delete(ctx context.Context, companyID, id int64) error {
	return s.repo.Delete(ctx, companyID, id)
}
