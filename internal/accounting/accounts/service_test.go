package accounts

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/accounting/shared"
)

type memoryRepo struct {
	accounts map[int64]Account
	ledgered map[int64]bool
	nextID   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{accounts: make(map[int64]Account), ledgered: make(map[int64]bool)}
}

func (r *memoryRepo) List(ctx context.Context, companyID int64, filter ListFilter) ([]Account, int, error) {
	var out []Account
	for _, a := range r.accounts {
		if a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (r *memoryRepo) Get(ctx context.Context, companyID, id int64) (Account, error) {
	a, ok := r.accounts[id]
	if !ok || a.CompanyID != companyID {
		return Account{}, shared.ErrAccountNotFound
	}
	return a, nil
}

func (r *memoryRepo) Create(ctx context.Context, account Account) (Account, error) {
	for _, existing := range r.accounts {
		if existing.CompanyID == account.CompanyID && existing.AccountNumber == account.AccountNumber {
			return Account{}, shared.ErrDuplicateNumber
		}
	}
	r.nextID++
	account.ID = r.nextID
	account.IsActive = true
	r.accounts[account.ID] = account
	return account, nil
}

func (r *memoryRepo) Update(ctx context.Context, companyID, id int64, updates map[string]any) error {
	a, ok := r.accounts[id]
	if !ok || a.CompanyID != companyID {
		return shared.ErrAccountNotFound
	}
	if name, ok := updates["name"]; ok {
		a.Name = name.(string)
	}
	if currency, ok := updates["currency"]; ok {
		a.Currency = currency.(string)
	}
	if active, ok := updates["is_active"]; ok {
		a.IsActive = active.(bool)
	}
	r.accounts[id] = a
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, companyID, id int64) error {
	a, ok := r.accounts[id]
	if !ok || a.CompanyID != companyID {
		return shared.ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *memoryRepo) HasLedgerRows(ctx context.Context, id int64) (bool, error) {
	return r.ledgered[id], nil
}

func TestCreateDuplicateNumberRejected(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	req := CreateAccountRequest{AccountNumber: "1000", Name: "Cash", Type: AccountTypeAsset, Currency: "USD"}

	_, err := svc.Create(ctx, 1, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, 1, req)
	require.ErrorIs(t, err, shared.ErrDuplicateNumber)

	// same number under another tenant is fine
	_, err = svc.Create(ctx, 2, req)
	require.NoError(t, err)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), 1, CreateAccountRequest{
		AccountNumber: "1000", Name: "Cash", Type: AccountType("PIGGYBANK"), Currency: "USD",
	})
	require.Error(t, err)
}

func TestCreateDefaultsBalanceToZero(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), 1, CreateAccountRequest{
		AccountNumber: "1000", Name: "Cash", Type: AccountTypeAsset, Currency: "USD",
	})
	require.NoError(t, err)
	require.True(t, created.Balance.Equal(decimal.Zero))
}

func TestDeleteRefusedWithLedgerActivity(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateAccountRequest{
		AccountNumber: "4000", Name: "Sales", Type: AccountTypeRevenue, Currency: "USD",
	})
	require.NoError(t, err)

	repo.ledgered[created.ID] = true
	err = svc.Delete(ctx, 1, created.ID)
	require.ErrorIs(t, err, shared.ErrAccountInUse)

	repo.ledgered[created.ID] = false
	require.NoError(t, svc.Delete(ctx, 1, created.ID))

	_, err = svc.Get(ctx, 1, created.ID)
	require.ErrorIs(t, err, shared.ErrAccountNotFound)
}

func TestNormalBalanceSides(t *testing.T) {
	require.True(t, AccountTypeAsset.DebitNormal())
	require.True(t, AccountTypeExpense.DebitNormal())
	require.False(t, AccountTypeLiability.DebitNormal())
	require.False(t, AccountTypeEquity.DebitNormal())
	require.False(t, AccountTypeRevenue.DebitNormal())
}
