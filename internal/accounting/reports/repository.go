package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/accounting/accounts"
)

// Repository reads aggregated posting data for statement builders.
type Repository interface {
	AccountTotals(ctx context.Context, companyID int64, from, to *time.Time) ([]AccountTotal, error)
	CashMovements(ctx context.Context, companyID int64, from, to time.Time) ([]CashMovement, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a Postgres-backed reports repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) AccountTotals(ctx context.Context, companyID int64, from, to *time.Time) ([]AccountTotal, error) {
	query := `
		SELECT a.id, a.account_number, a.name, a.account_type,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM accounts a
		JOIN ledger_rows l ON l.account_id = a.id`
	args := []any{companyID}
	where := ` WHERE a.company_id = $1`
	idx := 2
	if from != nil {
		where += fmt.Sprintf(" AND l.date >= $%d", idx)
		args = append(args, *from)
		idx++
	}
	if to != nil {
		where += fmt.Sprintf(" AND l.date <= $%d", idx)
		args = append(args, *to)
		idx++
	}
	query += where + ` GROUP BY a.id, a.account_number, a.name, a.account_type ORDER BY a.account_number`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query account totals: %w", err)
	}
	defer rows.Close()

	var totals []AccountTotal
	for rows.Next() {
		var t AccountTotal
		var accType string
		if err := rows.Scan(&t.AccountID, &t.AccountNumber, &t.Name, &accType, &t.Debit, &t.Credit); err != nil {
			return nil, fmt.Errorf("scan account total: %w", err)
		}
		t.Type = accounts.AccountType(accType)
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// Cash flow buckets follow the bank balance sign convention: CREDIT rows
// raise the balance, DEBIT and TRANSFER rows lower it.
const (
	cashInflowTypes  = `('CREDIT')`
	cashOutflowTypes = `('DEBIT', 'TRANSFER')`
)

func (r *repository) CashMovements(ctx context.Context, companyID int64, from, to time.Time) ([]CashMovement, error) {
	query := `
		SELECT to_char(date_trunc('month', t.transaction_date), 'YYYY-MM'),
		       COALESCE(SUM(CASE WHEN t.transaction_type IN ` + cashInflowTypes + ` THEN t.amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN t.transaction_type IN ` + cashOutflowTypes + ` THEN t.amount ELSE 0 END), 0)
		FROM bank_transactions t
		WHERE t.company_id = $1 AND t.transaction_date >= $2 AND t.transaction_date <= $3
		GROUP BY 1
		ORDER BY 1`
	rows, err := r.pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query cash movements: %w", err)
	}
	defer rows.Close()

	var movements []CashMovement
	for rows.Next() {
		m := CashMovement{Inflows: decimal.Zero, Outflows: decimal.Zero}
		if err := rows.Scan(&m.Period, &m.Inflows, &m.Outflows); err != nil {
			return nil, fmt.Errorf("scan cash movement: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
