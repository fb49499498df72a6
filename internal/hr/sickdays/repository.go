package sickdays

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository encapsulates sick day persistence.
type Repository interface {
	List(ctx context.Context, companyID int64, filter ListFilter) ([]SickDay, int, error)
	Get(ctx context.Context, companyID, id int64) (SickDay, error)
	Create(ctx context.Context, record SickDay) (SickDay, error)
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

const sickDayColumns = `id, company_id, employee_id, start_date, end_date, reason, status, created_at, updated_at`

func scanSickDay(row pgx.Row) (SickDay, error) {
	var s SickDay
	err := row.Scan(&s.ID, &s.CompanyID, &s.EmployeeID, &s.StartDate, &s.EndDate,
		&s.Reason, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *repository) List(ctx context.Context, companyID int64, filter ListFilter) ([]SickDay, int, error) {
	conditions := []string{"company_id = $1"}
	args := []any{companyID}
	argPos := 2

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM sick_days "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + sickDayColumns + " FROM sick_days " + where + " ORDER BY start_date DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(argPos) + " OFFSET $" + strconv.Itoa(argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []SickDay
	for rows.Next() {
		s, err := scanSickDay(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, s)
	}
	return records, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, companyID, id int64) (SickDay, error) {
	record, err := scanSickDay(r.pool.QueryRow(ctx,
		"SELECT "+sickDayColumns+" FROM sick_days WHERE company_id = $1 AND id = $2", companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SickDay{}, ErrNotFound
		}
		return SickDay{}, err
	}
	return record, nil
}

func (r *repository) Create(ctx context.Context, record SickDay) (SickDay, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO sick_days (company_id, employee_id, start_date, end_date, reason, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		record.CompanyID, record.EmployeeID, record.StartDate, record.EndDate, record.Reason, record.Status)
	inserted := record
	if err := row.Scan(&inserted.ID, &inserted.CreatedAt, &inserted.UpdatedAt); err != nil {
		return SickDay{}, err
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
		"UPDATE sick_days SET "+strings.Join(set, ", ")+" WHERE company_id = $1 AND id = $2", args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, companyID, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM sick_days WHERE company_id = $1 AND id = $2", companyID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
