package banking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/platform/db"
)

// Repository encapsulates banking persistence.
type Repository interface {
	ListAccounts(ctx context.Context, companyID int64, filter AccountFilter) ([]BankAccount, int, error)
	GetAccount(ctx context.Context, companyID, id int64) (BankAccount, error)
	CreateAccount(ctx context.Context, account BankAccount) (BankAccount, error)
	UpdateAccount(ctx context.Context, companyID, id int64, updates map[string]any) error
	ListTransactions(ctx context.Context, companyID int64, filter TransactionFilter) ([]BankTransaction, int, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes operations available inside a banking transaction.
type TxRepository interface {
	GetAccountForUpdate(ctx context.Context, companyID, id int64) (BankAccount, error)
	InsertTransaction(ctx context.Context, txn BankTransaction) (BankTransaction, error)
	AdjustBalance(ctx context.Context, accountID int64, delta decimal.Decimal) error
	GetTransactionForUpdate(ctx context.Context, companyID, id int64) (BankTransaction, error)
	SetReconciled(ctx context.Context, id int64, journalEntryID *int64) error
	ReconciledSum(ctx context.Context, accountID int64) (decimal.Decimal, error)
	SetReconciledBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const accountColumns = `id, company_id, account_number, bank_name, currency, current_balance, reconciled_balance, is_active, created_at, updated_at`

func scanAccount(row pgx.Row) (BankAccount, error) {
	var a BankAccount
	err := row.Scan(&a.ID, &a.CompanyID, &a.AccountNumber, &a.BankName, &a.Currency,
		&a.CurrentBalance, &a.ReconciledBalance, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *repository) ListAccounts(ctx context.Context, companyID int64, filter AccountFilter) ([]BankAccount, int, error) {
	conditions := []string{"company_id = $1"}
	args := []any{companyID}
	argPos := 2

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filter.Active)
		argPos++
	}
	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM bank_accounts "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + accountColumns + " FROM bank_accounts " + where + " ORDER BY account_number"
	if filter.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(argPos) + " OFFSET $" + strconv.Itoa(argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var accounts []BankAccount
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	return accounts, total, rows.Err()
}

func (r *repository) GetAccount(ctx context.Context, companyID, id int64) (BankAccount, error) {
	account, err := scanAccount(r.pool.QueryRow(ctx,
		"SELECT "+accountColumns+" FROM bank_accounts WHERE company_id = $1 AND id = $2", companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BankAccount{}, ErrAccountNotFound
		}
		return BankAccount{}, err
	}
	return account, nil
}

func (r *repository) CreateAccount(ctx context.Context, account BankAccount) (BankAccount, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO bank_accounts (company_id, account_number, bank_name, currency, current_balance, reconciled_balance, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		 RETURNING id, is_active, created_at, updated_at`,
		account.CompanyID, account.AccountNumber, account.BankName, account.Currency,
		account.CurrentBalance, account.ReconciledBalance)
	inserted := account
	if err := row.Scan(&inserted.ID, &inserted.IsActive, &inserted.CreatedAt, &inserted.UpdatedAt); err != nil {
		if db.IsUniqueViolation(err, "uq_bank_accounts_company_number") {
			return BankAccount{}, ErrDuplicateAccount
		}
		return BankAccount{}, err
	}
	return inserted, nil
}

func (r *repository) UpdateAccount(ctx context.Context, companyID, id int64, updates map[string]any) error {
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
		"UPDATE bank_accounts SET "+strings.Join(set, ", ")+" WHERE company_id = $1 AND id = $2", args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

const txnColumns = `id, company_id, bank_account_id, transaction_date, amount, transaction_type, description, reference, reconciliation_status, journal_entry_id, created_at, updated_at`

func scanTransaction(row pgx.Row) (BankTransaction, error) {
	var t BankTransaction
	err := row.Scan(&t.ID, &t.CompanyID, &t.BankAccountID, &t.Date, &t.Amount, &t.Type,
		&t.Description, &t.Reference, &t.Status, &t.JournalEntryID, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *repository) ListTransactions(ctx context.Context, companyID int64, filter TransactionFilter) ([]BankTransaction, int, error) {
	conditions := []string{"company_id = $1"}
	args := []any{companyID}
	argPos := 2

	if filter.BankAccountID != nil {
		conditions = append(conditions, fmt.Sprintf("bank_account_id = $%d", argPos))
		args = append(args, *filter.BankAccountID)
		argPos++
	}
	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("transaction_type = $%d", argPos))
		args = append(args, *filter.Type)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("reconciliation_status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("transaction_date >= $%d", argPos))
		args = append(args, *filter.From)
		argPos++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("transaction_date <= $%d", argPos))
		args = append(args, *filter.To)
		argPos++
	}
	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM bank_transactions "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + txnColumns + " FROM bank_transactions " + where + " ORDER BY transaction_date DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(argPos) + " OFFSET $" + strconv.Itoa(argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txns []BankTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		txns = append(txns, t)
	}
	return txns, total, rows.Err()
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) GetAccountForUpdate(ctx context.Context, companyID, id int64) (BankAccount, error) {
	account, err := scanAccount(r.tx.QueryRow(ctx,
		"SELECT "+accountColumns+" FROM bank_accounts WHERE company_id = $1 AND id = $2 FOR UPDATE", companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BankAccount{}, ErrAccountNotFound
		}
		return BankAccount{}, err
	}
	return account, nil
}

func (r *txRepository) InsertTransaction(ctx context.Context, txn BankTransaction) (BankTransaction, error) {
	row := r.tx.QueryRow(ctx,
		`INSERT INTO bank_transactions (company_id, bank_account_id, transaction_date, amount, transaction_type, description, reference, reconciliation_status, journal_entry_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		txn.CompanyID, txn.BankAccountID, txn.Date, txn.Amount, txn.Type,
		txn.Description, txn.Reference, txn.Status, txn.JournalEntryID)
	inserted := txn
	if err := row.Scan(&inserted.ID, &inserted.CreatedAt, &inserted.UpdatedAt); err != nil {
		return BankTransaction{}, err
	}
	return inserted, nil
}

func (r *txRepository) AdjustBalance(ctx context.Context, accountID int64, delta decimal.Decimal) error {
	_, err := r.tx.Exec(ctx,
		`UPDATE bank_accounts SET current_balance = current_balance + $2, updated_at = NOW() WHERE id = $1`,
		accountID, delta)
	return err
}

func (r *txRepository) GetTransactionForUpdate(ctx context.Context, companyID, id int64) (BankTransaction, error) {
	txn, err := scanTransaction(r.tx.QueryRow(ctx,
		"SELECT "+txnColumns+" FROM bank_transactions WHERE company_id = $1 AND id = $2 FOR UPDATE", companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BankTransaction{}, ErrTransactionNotFound
		}
		return BankTransaction{}, err
	}
	return txn, nil
}

func (r *txRepository) SetReconciled(ctx context.Context, id int64, journalEntryID *int64) error {
	_, err := r.tx.Exec(ctx,
		`UPDATE bank_transactions
		 SET reconciliation_status = 'RECONCILED', journal_entry_id = COALESCE($2, journal_entry_id), updated_at = NOW()
		 WHERE id = $1`,
		id, journalEntryID)
	return err
}

func (r *txRepository) ReconciledSum(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(CASE WHEN transaction_type = 'CREDIT' THEN amount ELSE -amount END), 0)
		 FROM bank_transactions
		 WHERE bank_account_id = $1 AND reconciliation_status = 'RECONCILED'`,
		accountID).Scan(&sum)
	return sum, err
}

func (r *txRepository) SetReconciledBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error {
	_, err := r.tx.Exec(ctx,
		`UPDATE bank_accounts SET reconciled_balance = $2, updated_at = NOW() WHERE id = $1`,
		accountID, balance)
	return err
}
