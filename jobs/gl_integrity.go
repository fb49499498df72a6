package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// CompanyLedgerTotals aggregates posted debits and credits of one tenant.
type CompanyLedgerTotals struct {
	CompanyID int64
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// AccountDrift is an account whose stored balance disagrees with its last
// ledger running balance.
type AccountDrift struct {
	CompanyID     int64
	AccountID     int64
	StoredBalance decimal.Decimal
	LedgerBalance decimal.Decimal
}

// IntegrityStore reads the aggregates the scan verifies.
type IntegrityStore interface {
	CompanyLedgerTotals(ctx context.Context) ([]CompanyLedgerTotals, error)
	AccountDrifts(ctx context.Context) ([]AccountDrift, error)
}

type pgIntegrityStore struct {
	pool *pgxpool.Pool
}

// NewIntegrityStore builds the Postgres-backed store.
func NewIntegrityStore(pool *pgxpool.Pool) IntegrityStore {
	return &pgIntegrityStore{pool: pool}
}

func (s *pgIntegrityStore) CompanyLedgerTotals(ctx context.Context) ([]CompanyLedgerTotals, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT company_id, COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		 FROM ledger_rows GROUP BY company_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []CompanyLedgerTotals
	for rows.Next() {
		var t CompanyLedgerTotals
		if err := rows.Scan(&t.CompanyID, &t.Debit, &t.Credit); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (s *pgIntegrityStore) AccountDrifts(ctx context.Context) ([]AccountDrift, error) {
	// compare each account's stored balance with its newest running balance
	rows, err := s.pool.Query(ctx,
		`SELECT a.company_id, a.id, a.balance, l.balance
		 FROM accounts a
		 JOIN LATERAL (
		     SELECT balance FROM ledger_rows
		     WHERE account_id = a.id ORDER BY id DESC LIMIT 1
		 ) l ON TRUE
		 WHERE a.balance <> l.balance`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drifts []AccountDrift
	for rows.Next() {
		var d AccountDrift
		if err := rows.Scan(&d.CompanyID, &d.AccountID, &d.StoredBalance, &d.LedgerBalance); err != nil {
			return nil, err
		}
		drifts = append(drifts, d)
	}
	return drifts, rows.Err()
}

// integrityTolerance matches the posting tolerance: per-company totals may
// legitimately differ by up to a cent per entry, so only larger drift is
// flagged.
var integrityTolerance = decimal.RequireFromString("0.01")

// RunGLIntegrityScan verifies that posted debits equal credits per company
// and that stored account balances match the ledger. Discrepancies are
// logged, not repaired.
func RunGLIntegrityScan(ctx context.Context, logger *slog.Logger, store IntegrityStore) (int, error) {
	findings := 0

	totals, err := store.CompanyLedgerTotals(ctx)
	if err != nil {
		return 0, err
	}
	for _, t := range totals {
		diff := t.Debit.Sub(t.Credit).Abs()
		if diff.GreaterThan(integrityTolerance) {
			findings++
			logger.Error("ledger out of balance",
				slog.Int64("companyId", t.CompanyID),
				slog.String("debit", t.Debit.String()),
				slog.String("credit", t.Credit.String()),
				slog.String("diff", diff.String()))
		}
	}

	drifts, err := store.AccountDrifts(ctx)
	if err != nil {
		return findings, err
	}
	for _, d := range drifts {
		findings++
		logger.Error("account balance drift",
			slog.Int64("companyId", d.CompanyID),
			slog.Int64("accountId", d.AccountID),
			slog.String("stored", d.StoredBalance.String()),
			slog.String("ledger", d.LedgerBalance.String()))
	}

	if findings == 0 {
		logger.Info("ledger integrity scan clean", slog.Int("companies", len(totals)))
	}
	return findings, nil
}

// HandleGLIntegrityScan returns the handler for the nightly scan.
func HandleGLIntegrityScan(logger *slog.Logger, store IntegrityStore) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		_, err := RunGLIntegrityScan(ctx, logger, store)
		return err
	}
}
