package accounts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/accounting/shared"
	"github.com/meridian-erp/meridian-erp/internal/platform/db"
)

// Repository encapsulates account persistence.
type Repository interface {
	List(ctx context.Context, companyID int64, filter ListFilter) ([]Account, int, error)
	Get(ctx context.Context, companyID, id int64) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
	Update(ctx context.Context, companyID, id int64, updates map[string]any) error
	Delete(ctx context.Context, companyID, id int64) error
	HasLedgerRows(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const accountColumns = `id, company_id, account_number, name, account_type, balance, currency, is_active, created_at, updated_at`

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.CompanyID, &a.AccountNumber, &a.Name, &a.Type, &a.Balance, &a.Currency, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *repository) List(ctx context.Context, companyID int64, filter ListFilter) ([]Account, int, error) {
	conditions := []string{"company_id = $1"}
	args := []any{companyID}
	argPos := 2

	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("account_type = $%d", argPos))
		args = append(args, *filter.Type)
		argPos++
	}
	if filter.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filter.IsActive)
		argPos++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(account_number ILIKE $%d OR name ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM accounts "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + accountColumns + " FROM accounts " + where + " ORDER BY account_number"
	if filter.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(argPos) + " OFFSET $" + strconv.Itoa(argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	return accounts, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, companyID, id int64) (Account, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE company_id = $1 AND id = $2", companyID, id)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, shared.ErrAccountNotFound
		}
		return Account{}, err
	}
	return a, nil
}

func (r *repository) Create(ctx context.Context, account Account) (Account, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO accounts (company_id, account_number, name, account_type, balance, currency, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		 RETURNING `+accountColumns,
		account.CompanyID, account.AccountNumber, account.Name, account.Type, account.Balance, account.Currency)
	created, err := scanAccount(row)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_accounts_company_number") {
			return Account{}, shared.ErrDuplicateNumber
		}
		return Account{}, err
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, companyID, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	sets := make([]string, 0, len(updates)+1)
	args := make([]any, 0, len(updates)+2)
	argPos := 1
	for _, col := range []string{"name", "currency", "is_active"} {
		if val, ok := updates[col]; ok {
			sets = append(sets, fmt.Sprintf("%s = $%d", col, argPos))
			args = append(args, val)
			argPos++
		}
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, companyID, id)

	query := fmt.Sprintf("UPDATE accounts SET %s WHERE company_id = $%d AND id = $%d",
		strings.Join(sets, ", "), argPos, argPos+1)
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrAccountNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, companyID, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM accounts WHERE company_id = $1 AND id = $2", companyID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrAccountNotFound
	}
	return nil
}

func (r *repository) HasLedgerRows(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM ledger_rows WHERE account_id = $1)", id).Scan(&exists)
	return exists, err
}
