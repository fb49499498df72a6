package ledger

import (
	"context"
	"time"
)

// Service answers ledger queries.
type Service struct {
	repo Repository
}

// NewService wires the service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns ledger rows matching the filter plus the total count.
func (s *Service) List(ctx context.Context, companyID int64, filter Filter) ([]Row, int, error) {
	return s.repo.List(ctx, companyID, filter)
}

// Balance returns an account's closing balance as of a date.
func (s *Service) Balance(ctx context.Context, companyID, accountID int64, asOf time.Time) (AccountBalance, error) {
	return s.repo.Balance(ctx, companyID, accountID, asOf)
}
