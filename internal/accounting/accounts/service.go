package accounts

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/accounting/shared"
)

// Service implements account business rules.
type Service struct {
	repo Repository
}

// NewService wires the service with its repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts a new account for the tenant. Opening balance defaults to
// zero; the unique (company, number) constraint is enforced by the database.
func (s *Service) Create(ctx context.Context, companyID int64, req CreateAccountRequest) (Account, error) {
	if !req.Type.Valid() {
		return Account{}, fmt.Errorf("%w: unknown account type %q", shared.ErrInvalidStatus, req.Type)
	}
	balance := decimal.Zero
	if req.Balance != nil {
		balance = *req.Balance
	}
	account := Account{
		CompanyID:     companyID,
		AccountNumber: req.AccountNumber,
		Name:          req.Name,
		Type:          req.Type,
		Balance:       balance,
		Currency:      req.Currency,
	}
	return s.repo.Create(ctx, account)
}

// Get fetches one account within the tenant scope.
func (s *Service) Get(ctx context.Context, companyID, id int64) (Account, error) {
	return s.repo.Get(ctx, companyID, id)
}

// List returns accounts and the total count for pagination.
func (s *Service) List(ctx context.Context, companyID int64, filter ListFilter) ([]Account, int, error) {
	return s.repo.List(ctx, companyID, filter)
}

// Update applies partial changes. Account number and type are immutable once
// created; balance only moves through journal postings.
func (s *Service) Update(ctx context.Context, companyID, id int64, req UpdateAccountRequest) (Account, error) {
	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Currency != nil {
		updates["currency"] = *req.Currency
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if err := s.repo.Update(ctx, companyID, id, updates); err != nil {
		return Account{}, err
	}
	return s.repo.Get(ctx, companyID, id)
}

// Delete removes an account that has no ledger activity.
func (s *Service) Delete(ctx context.Context, companyID, id int64) error {
	if _, err := s.repo.Get(ctx, companyID, id); err != nil {
		return err
	}
	inUse, err := s.repo.HasLedgerRows(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return shared.ErrAccountInUse
	}
	return s.repo.Delete(ctx, companyID, id)
}
