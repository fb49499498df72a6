package customers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/platform/db"
)

// Repository encapsulates customer persistence.
type Repository interface {
	List(ctx context.Context, companyID int64, filter ListFilter) ([]Customer, int, error)
	Get(ctx context.Context, companyID, id int64) (Customer, error)
	Create(ctx context.Context, customer Customer) (Customer, error)
	Update(ctx context.Context, companyID, id int64, updates map[string]any) error
	Delete(ctx context.Context, companyID, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const customerColumns = `id, company_id, code, name, email, phone, credit_limit, is_active, created_at, updated_at`

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.CompanyID, &c.Code, &c.Name, &c.Email, &c.Phone,
		&c.CreditLimit, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *repository) List(ctx context.Context, companyID int64, filter ListFilter) ([]Customer, int, error) {
	conditions := []string{"company_id = $1"}
	args := []any{companyID}
	argPos := 2

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filter.Active)
		argPos++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}
	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM customers "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + customerColumns + " FROM customers " + where + " ORDER BY code"
	if filter.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(argPos) + " OFFSET $" + strconv.Itoa(argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, companyID, id int64) (Customer, error) {
	customer, err := scanCustomer(r.pool.QueryRow(ctx,
		"SELECT "+customerColumns+" FROM customers WHERE company_id = $1 AND id = $2", companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, ErrNotFound
		}
		return Customer{}, err
	}
	return customer, nil
}

func (r *repository) Create(ctx context.Context, customer Customer) (Customer, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO customers (company_id, code, name, email, phone, credit_limit, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		 RETURNING id, is_active, created_at, updated_at`,
		customer.CompanyID, customer.Code, customer.Name, customer.Email, customer.Phone, customer.CreditLimit)
	inserted := customer
	if err := row.Scan(&inserted.ID, &inserted.IsActive, &inserted.CreatedAt, &inserted.UpdatedAt); err != nil {
		if db.IsUniqueViolation(err, "uq_customers_company_code") {
			return Customer{}, ErrDuplicateCode
		}
		return Customer{}, err
	}
	return inserted, nil
}

func (r *repository) Update(ctx context.Context, companyID, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	set := make([]string, 0, len(updates)+1)
	args := []any{companyID, id}
	argPos := 3
	for column, value := range updates {
		set = append(set, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}
	set = append(set, "updated_at = NOW()")

	cmd, err := r.pool.Exec(ctx,
		"UPDATE customers SET "+strings.Join(set, ", ")+" WHERE company_id = $1 AND id = $2", args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, companyID, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM customers WHERE company_id = $1 AND id = $2", companyID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
