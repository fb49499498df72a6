package payrates

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository encapsulates pay rate persistence.
type Repository interface {
	List(ctx context.Context, companyID int64, filter ListFilter) ([]PayRate, int, error)
	Get(ctx context.Context, companyID, id int64) (PayRate, error)
	Create(ctx context.Context, rate PayRate) (PayRate, error)
	Update(ctx context.Context, companyID, id int64, updates map[string]any) error
	Deactivate(ctx context.Context, companyID, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const rateColumns = `id, company_id, employee_id, name, rate_type, amount, currency, effective_date, is_active, created_at, updated_at`

func scanRate(row pgx.Row) (PayRate, error) {
	var p PayRate
	err := row.Scan(&p.ID, &p.CompanyID, &p.EmployeeID, &p.Name, &p.RateType, &p.Amount,
		&p.Currency, &p.EffectiveDate, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *repository) List(ctx context.Context, companyID int64, filter ListFilter) ([]PayRate, int, error) {
	conditions := []string{"company_id = $1"}
	args := []any{companyID}
	argPos := 2

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filter.Active)
		argPos++
	}
	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM pay_rates "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + rateColumns + " FROM pay_rates " + where + " ORDER BY effective_date DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(argPos) + " OFFSET $" + strconv.Itoa(argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rates []PayRate
	for rows.Next() {
		p, err := scanRate(rows)
		if err != nil {
			return nil, 0, err
		}
		rates = append(rates, p)
	}
	return rates, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, companyID, id int64) (PayRate, error) {
	rate, err := scanRate(r.pool.QueryRow(ctx,
		"SELECT "+rateColumns+" FROM pay_rates WHERE company_id = $1 AND id = $2", companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PayRate{}, ErrNotFound
		}
		return PayRate{}, err
	}
	return rate, nil
}

func (r *repository) Create(ctx context.Context, rate PayRate) (PayRate, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO pay_rates (company_id, employee_id, name, rate_type, amount, currency, effective_date, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		 RETURNING id, is_active, created_at, updated_at`,
		rate.CompanyID, rate.EmployeeID, rate.Name, rate.RateType, rate.Amount, rate.Currency, rate.EffectiveDate)
	inserted := rate
	if err := row.Scan(&inserted.ID, &inserted.IsActive, &inserted.CreatedAt, &inserted.UpdatedAt); err != nil {
		return PayRate{}, err
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
		"UPDATE pay_rates SET "+strings.Join(set, ", ")+" WHERE company_id = $1 AND id = $2", args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Deactivate(ctx context.Context, companyID, id int64) error {
	cmd, err := r.pool.Exec(ctx,
		"UPDATE pay_rates SET is_active = FALSE, updated_at = NOW() WHERE company_id = $1 AND id = $2",
		companyID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
