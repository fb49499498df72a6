package reports

import (
	"context"
	"time"
)

// Service builds financial statements, consulting the cache first.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService constructs the reports service.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func rangeKey(from, to *time.Time) string {
	key := "all"
	if from != nil {
		key = from.Format("2006-01-02")
	}
	key += "_"
	if to != nil {
		key += to.Format("2006-01-02")
	} else {
		key += "all"
	}
	return key
}

// TrialBalance returns the trial balance for the range.
func (s *Service) TrialBalance(ctx context.Context, companyID int64, from, to *time.Time) (TrialBalance, error) {
	key := s.cache.Key(ctx, companyID, "tb", rangeKey(from, to))
	var cached TrialBalance
	if s.cache.Fetch(ctx, key, &cached) {
		return cached, nil
	}
	totals, err := s.repo.AccountTotals(ctx, companyID, from, to)
	if err != nil {
		return TrialBalance{}, err
	}
	tb := BuildTrialBalance(totals)
	s.cache.Store(ctx, key, tb)
	return tb, nil
}

// ProfitLoss returns the income statement for the range.
func (s *Service) ProfitLoss(ctx context.Context, companyID int64, from, to *time.Time) (ProfitLoss, error) {
	key := s.cache.Key(ctx, companyID, "pl", rangeKey(from, to))
	var cached ProfitLoss
	if s.cache.Fetch(ctx, key, &cached) {
		return cached, nil
	}
	totals, err := s.repo.AccountTotals(ctx, companyID, from, to)
	if err != nil {
		return ProfitLoss{}, err
	}
	pl := BuildProfitLoss(totals)
	s.cache.Store(ctx, key, pl)
	return pl, nil
}

// BalanceSheet returns financial position as of the given date.
func (s *Service) BalanceSheet(ctx context.Context, companyID int64, asOf *time.Time) (BalanceSheet, error) {
	key := s.cache.Key(ctx, companyID, "bs", rangeKey(nil, asOf))
	var cached BalanceSheet
	if s.cache.Fetch(ctx, key, &cached) {
		return cached, nil
	}
	totals, err := s.repo.AccountTotals(ctx, companyID, nil, asOf)
	if err != nil {
		return BalanceSheet{}, err
	}
	bs := BuildBalanceSheet(totals)
	s.cache.Store(ctx, key, bs)
	return bs, nil
}

// CashFlow returns monthly cash movement between from and to.
func (s *Service) CashFlow(ctx context.Context, companyID int64, from, to time.Time) (CashFlow, error) {
	key := s.cache.Key(ctx, companyID, "cf", from.Format("2006-01-02"), to.Format("2006-01-02"))
	var cached CashFlow
	if s.cache.Fetch(ctx, key, &cached) {
		return cached, nil
	}
	movements, err := s.repo.CashMovements(ctx, companyID, from, to)
	if err != nil {
		return CashFlow{}, err
	}
	cf := BuildCashFlow(movements)
	cf.From = from
	cf.To = to
	s.cache.Store(ctx, key, cf)
	return cf, nil
}
