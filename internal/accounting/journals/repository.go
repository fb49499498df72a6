package journals

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

	"github.com/meridian-erp/meridian-erp/internal/accounting/accounts"
	"github.com/meridian-erp/meridian-erp/internal/accounting/ledger"
	"github.com/meridian-erp/meridian-erp/internal/accounting/shared"
	"github.com/meridian-erp/meridian-erp/internal/platform/db"
)

// PostingAccount is the slice of an account the posting transaction needs.
type PostingAccount struct {
	ID      int64
	Type    accounts.AccountType
	Balance decimal.Decimal
}

// Repository encapsulates journal persistence.
type Repository interface {
	List(ctx context.Context, companyID int64, filter ListFilter) ([]JournalEntry, int, error)
	Get(ctx context.Context, companyID, id int64) (JournalEntry, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the operations available inside a posting transaction.
type TxRepository interface {
	InsertEntry(ctx context.Context, entry JournalEntry) (JournalEntry, error)
	InsertLines(ctx context.Context, entryID int64, lines []JournalLine) error
	ReplaceLines(ctx context.Context, entryID int64, lines []JournalLine) error
	GetEntryForUpdate(ctx context.Context, companyID, entryID int64) (JournalEntry, error)
	GetLines(ctx context.Context, entryID int64) ([]JournalLine, error)
	UpdateDraft(ctx context.Context, entry JournalEntry) error
	MarkPosted(ctx context.Context, entryID int64, totalDebit, totalCredit decimal.Decimal, postedBy int64, postedAt time.Time) error
	SetStatus(ctx context.Context, entryID int64, status JournalStatus) error

	GetAccountForUpdate(ctx context.Context, companyID, accountID int64) (PostingAccount, error)
	AddToAccountBalance(ctx context.Context, accountID int64, delta decimal.Decimal) error
	LastLedgerBalance(ctx context.Context, companyID, accountID int64) (decimal.Decimal, error)
	InsertLedgerRow(ctx context.Context, row ledger.Row) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const entryColumns = `id, company_id, entry_number, reference, date, memo, status, total_debit, total_credit, posted_by, posted_at, created_at, updated_at`

func scanEntry(row pgx.Row) (JournalEntry, error) {
	var e JournalEntry
	err := row.Scan(&e.ID, &e.CompanyID, &e.EntryNumber, &e.Reference, &e.Date, &e.Memo, &e.Status,
		&e.TotalDebit, &e.TotalCredit, &e.PostedBy, &e.PostedAt, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *repository) List(ctx context.Context, companyID int64, filter ListFilter) ([]JournalEntry, int, error) {
	conditions := []string{"company_id = $1"}
	args := []any{companyID}
	argPos := 2

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
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
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM journal_entries "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + entryColumns + " FROM journal_entries " + where + " ORDER BY entry_number DESC"
	if filter.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(argPos) + " OFFSET $" + strconv.Itoa(argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, companyID, id int64) (JournalEntry, error) {
	entry, err := scanEntry(r.pool.QueryRow(ctx,
		"SELECT "+entryColumns+" FROM journal_entries WHERE company_id = $1 AND id = $2", companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JournalEntry{}, shared.ErrJournalNotFound
		}
		return JournalEntry{}, err
	}
	lines, err := queryLines(ctx, r.pool, id)
	if err != nil {
		return JournalEntry{}, err
	}
	entry.Lines = lines
	return entry, nil
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func queryLines(ctx context.Context, q queryer, entryID int64) ([]JournalLine, error) {
	rows, err := q.Query(ctx,
		`SELECT id, journal_entry_id, account_id, debit, credit
		 FROM journal_lines WHERE journal_entry_id = $1 ORDER BY id`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []JournalLine
	for rows.Next() {
		var line JournalLine
		if err := rows.Scan(&line.ID, &line.EntryID, &line.AccountID, &line.Debit, &line.Credit); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) InsertEntry(ctx context.Context, entry JournalEntry) (JournalEntry, error) {
	row := r.tx.QueryRow(ctx,
		`INSERT INTO journal_entries (company_id, reference, date, memo, status, total_debit, total_credit)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, entry_number, created_at, updated_at`,
		entry.CompanyID, entry.Reference, entry.Date, entry.Memo, entry.Status, entry.TotalDebit, entry.TotalCredit)
	inserted := entry
	if err := row.Scan(&inserted.ID, &inserted.EntryNumber, &inserted.CreatedAt, &inserted.UpdatedAt); err != nil {
		return JournalEntry{}, err
	}
	return inserted, nil
}

func (r *txRepository) InsertLines(ctx context.Context, entryID int64, lines []JournalLine) error {
	for _, line := range lines {
		if _, err := r.tx.Exec(ctx,
			`INSERT INTO journal_lines (journal_entry_id, account_id, debit, credit) VALUES ($1, $2, $3, $4)`,
			entryID, line.AccountID, line.Debit, line.Credit); err != nil {
			return err
		}
	}
	return nil
}

func (r *txRepository) ReplaceLines(ctx context.Context, entryID int64, lines []JournalLine) error {
	if _, err := r.tx.Exec(ctx, `DELETE FROM journal_lines WHERE journal_entry_id = $1`, entryID); err != nil {
		return err
	}
	return r.InsertLines(ctx, entryID, lines)
}

func (r *txRepository) GetEntryForUpdate(ctx context.Context, companyID, entryID int64) (JournalEntry, error) {
	entry, err := scanEntry(r.tx.QueryRow(ctx,
		"SELECT "+entryColumns+" FROM journal_entries WHERE company_id = $1 AND id = $2 FOR UPDATE",
		companyID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JournalEntry{}, shared.ErrJournalNotFound
		}
		return JournalEntry{}, err
	}
	return entry, nil
}

func (r *txRepository) GetLines(ctx context.Context, entryID int64) ([]JournalLine, error) {
	return queryLines(ctx, r.tx, entryID)
}

func (r *txRepository) UpdateDraft(ctx context.Context, entry JournalEntry) error {
	cmd, err := r.tx.Exec(ctx,
		`UPDATE journal_entries SET date = $2, memo = $3, total_debit = $4, total_credit = $5, updated_at = NOW()
		 WHERE id = $1 AND status = 'DRAFT'`,
		entry.ID, entry.Date, entry.Memo, entry.TotalDebit, entry.TotalCredit)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrNotDraft
	}
	return nil
}

func (r *txRepository) MarkPosted(ctx context.Context, entryID int64, totalDebit, totalCredit decimal.Decimal, postedBy int64, postedAt time.Time) error {
	cmd, err := r.tx.Exec(ctx,
		`UPDATE journal_entries
		 SET status = 'POSTED', total_debit = $2, total_credit = $3, posted_by = $4, posted_at = $5, updated_at = NOW()
		 WHERE id = $1 AND status = 'DRAFT'`,
		entryID, totalDebit, totalCredit, postedBy, postedAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrNotDraft
	}
	return nil
}

func (r *txRepository) SetStatus(ctx context.Context, entryID int64, status JournalStatus) error {
	cmd, err := r.tx.Exec(ctx,
		`UPDATE journal_entries SET status = $2, updated_at = NOW() WHERE id = $1`, entryID, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrJournalNotFound
	}
	return nil
}

func (r *txRepository) GetAccountForUpdate(ctx context.Context, companyID, accountID int64) (PostingAccount, error) {
	var a PostingAccount
	err := r.tx.QueryRow(ctx,
		`SELECT id, account_type, balance FROM accounts WHERE company_id = $1 AND id = $2 FOR UPDATE`,
		companyID, accountID).Scan(&a.ID, &a.Type, &a.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PostingAccount{}, shared.ErrAccountNotFound
		}
		return PostingAccount{}, err
	}
	return a, nil
}

func (r *txRepository) AddToAccountBalance(ctx context.Context, accountID int64, delta decimal.Decimal) error {
	_, err := r.tx.Exec(ctx,
		`UPDATE accounts SET balance = balance + $2, updated_at = NOW() WHERE id = $1`, accountID, delta)
	return err
}

func (r *txRepository) LastLedgerBalance(ctx context.Context, companyID, accountID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.tx.QueryRow(ctx,
		`SELECT balance FROM ledger_rows WHERE company_id = $1 AND account_id = $2 ORDER BY id DESC LIMIT 1`,
		companyID, accountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return balance, nil
}

func (r *txRepository) InsertLedgerRow(ctx context.Context, row ledger.Row) error {
	_, err := r.tx.Exec(ctx,
		`INSERT INTO ledger_rows (company_id, account_id, journal_entry_id, date, debit, credit, balance)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		row.CompanyID, row.AccountID, row.JournalEntryID, row.Date, row.Debit, row.Credit, row.Balance)
	return err
}
