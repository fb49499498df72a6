package customers

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	customers map[int64]Customer
	nextID    int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{customers: make(map[int64]Customer)}
}

func (r *memoryRepo) List(ctx context.Context, companyID int64, filter ListFilter) ([]Customer, int, error) {
	var out []Customer
	for _, c := range r.customers {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (r *memoryRepo) Get(ctx context.Context, companyID, id int64) (Customer, error) {
	c, ok := r.customers[id]
	if !ok || c.CompanyID != companyID {
		return Customer{}, ErrNotFound
	}
	return c, nil
}

func (r *memoryRepo) Create(ctx context.Context, customer Customer) (Customer, error) {
	for _, existing := range r.customers {
		if existing.CompanyID == customer.CompanyID && existing.Code == customer.Code {
			return Customer{}, ErrDuplicateCode
		}
	}
	r.nextID++
	customer.ID = r.nextID
	customer.IsActive = true
	r.customers[customer.ID] = customer
	return customer, nil
}

func (r *memoryRepo) Update(ctx context.Context, companyID, id int64, updates map[string]any) error {
	c, ok := r.customers[id]
	if !ok || c.CompanyID != companyID {
		return ErrNotFound
	}
	if v, ok := updates["name"]; ok {
		c.Name = v.(string)
	}
	if v, ok := updates["credit_limit"]; ok {
		c.CreditLimit = v.(decimal.Decimal)
	}
	if v, ok := updates["is_active"]; ok {
		c.IsActive = v.(bool)
	}
	r.customers[id] = c
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, companyID, id int64) error {
	c, ok := r.customers[id]
	if !ok || c.CompanyID != companyID {
		return ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

func TestCreateDuplicateCodePerTenant(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	req := CreateCustomerRequest{Code: "ACME", Name: "Acme Corp"}
	_, err := svc.Create(ctx, 1, req)
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, req)
	require.ErrorIs(t, err, ErrDuplicateCode)
	_, err = svc.Create(ctx, 2, req)
	require.NoError(t, err)
}

func TestCreditLimitMustNotBeNegative(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CreateCustomerRequest{
		Code: "ACME", Name: "Acme Corp", CreditLimit: decimal.RequireFromString("-1"),
	})
	require.ErrorIs(t, err, ErrNegativeLimit)

	created, err := svc.Create(ctx, 1, CreateCustomerRequest{
		Code: "ACME", Name: "Acme Corp", CreditLimit: decimal.RequireFromString("5000"),
	})
	require.NoError(t, err)

	bad := decimal.RequireFromString("-10")
	_, err = svc.Update(ctx, 1, created.ID, UpdateCustomerRequest{CreditLimit: &bad})
	require.ErrorIs(t, err, ErrNegativeLimit)
}

func TestUpdateAndDeleteTenantScoped(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateCustomerRequest{Code: "ACME", Name: "Acme Corp"})
	require.NoError(t, err)

	name := "Renamed"
	_, err = svc.Update(ctx, 2, created.ID, UpdateCustomerRequest{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, 2, created.ID), ErrNotFound)

	updated, err := svc.Update(ctx, 1, created.ID, UpdateCustomerRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.NoError(t, svc.Delete(ctx, 1, created.ID))
}
