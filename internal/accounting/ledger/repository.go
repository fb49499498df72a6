package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository reads ledger rows. Writes happen only inside the journal
// posting transaction.
type Repository interface {
	List(ctx context.Context, companyID int64, filter Filter) ([]Row, int, error)
	Balance(ctx context.Context, companyID, accountID int64, asOf time.Time) (AccountBalance, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, companyID int64, filter Filter) ([]Row, int, error) {
	conditions := []string{"company_id = $1"}
	args := []any{companyID}
	argPos := 2

	if filter.AccountID != nil {
		conditions = append(conditions, fmt.Sprintf("account_id = $%d", argPos))
		args = append(args, *filter.AccountID)
		argPos++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argPos))
		args = append(args, *filter.From)
		argPos++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argPos))
		args = append(args, *filter.To)
		argPos++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM ledger_rows "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, company_id, account_id, journal_entry_id, date, debit, credit, balance, created_at
FROM ledger_rows ` + where + " ORDER BY account_id, id"
	if filter.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(argPos) + " OFFSET $" + strconv.Itoa(argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.CompanyID, &row.AccountID, &row.JournalEntryID, &row.Date,
			&row.Debit, &row.Credit, &row.Balance, &row.CreatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, row)
	}
	return result, total, rows.Err()
}

// Balance returns the latest running balance at or before asOf. An account
// without movement reports zero.
func (r *repository) Balance(ctx context.Context, companyID, accountID int64, asOf time.Time) (AccountBalance, error) {
	var balance decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT balance FROM ledger_rows
		 WHERE company_id = $1 AND account_id = $2 AND date <= $3
		 ORDER BY id DESC LIMIT 1`, companyID, accountID, asOf).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AccountBalance{AccountID: accountID, AsOf: asOf, Balance: decimal.Zero}, nil
		}
		return AccountBalance{}, err
	}
	return AccountBalance{AccountID: accountID, AsOf: asOf, Balance: balance}, nil
}
