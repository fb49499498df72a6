package banking

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	internalShared "github.com/meridian-erp/meridian-erp/internal/shared"
)

// AuditPort records banking activity.
type AuditPort interface {
	Record(ctx context.Context, log internalShared.AuditLog) error
}

// Service implements banking operations.
type Service struct {
	repo  Repository
	audit AuditPort
	now   func() time.Time
}

// NewService wires the service. audit may be nil.
func NewService(repo Repository, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateAccount opens a bank account with zero balances.
func (s *Service) CreateAccount(ctx context.Context, companyID int64, req CreateAccountRequest) (BankAccount, error) {
	return s.repo.CreateAccount(ctx, BankAccount{
		CompanyID:         companyID,
		AccountNumber:     req.AccountNumber,
		BankName:          req.BankName,
		Currency:          req.Currency,
		CurrentBalance:    decimal.Zero,
		ReconciledBalance: decimal.Zero,
	})
}

// GetAccount fetches one account.
func (s *Service) GetAccount(ctx context.Context, companyID, id int64) (BankAccount, error) {
	return s.repo.GetAccount(ctx, companyID, id)
}

// ListAccounts pages through the company's accounts.
func (s *Service) ListAccounts(ctx context.Context, companyID int64, filter AccountFilter) ([]BankAccount, int, error) {
	return s.repo.ListAccounts(ctx, companyID, filter)
}

// UpdateAccount patches mutable account fields. Balances are never
// writable through this path.
func (s *Service) UpdateAccount(ctx context.Context, companyID, id int64, req UpdateAccountRequest) (BankAccount, error) {
	updates := map[string]any{}
	if req.BankName != nil {
		updates["bank_name"] = *req.BankName
	}
	if req.Currency != nil {
		updates["currency"] = *req.Currency
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if err := s.repo.UpdateAccount(ctx, companyID, id, updates); err != nil {
		return BankAccount{}, err
	}
	return s.repo.GetAccount(ctx, companyID, id)
}

// ListTransactions pages through transactions.
func (s *Service) ListTransactions(ctx context.Context, companyID int64, filter TransactionFilter) ([]BankTransaction, int, error) {
	return s.repo.ListTransactions(ctx, companyID, filter)
}

// CreateTransaction records a movement and adjusts the account's current
// balance by the signed amount, atomically.
func (s *Service) CreateTransaction(ctx context.Context, companyID, actorID int64, req CreateTransactionRequest) (BankTransaction, error) {
	if !req.Type.Valid() {
		return BankTransaction{}, ErrInvalidType
	}
	if !req.Amount.IsPositive() {
		return BankTransaction{}, ErrNonPositiveAmount
	}

	var created BankTransaction
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		account, err := tx.GetAccountForUpdate(ctx, companyID, req.BankAccountID)
		if err != nil {
			return err
		}
		if !account.IsActive {
			return ErrInactiveAccount
		}
		created, err = tx.InsertTransaction(ctx, BankTransaction{
			CompanyID:     companyID,
			BankAccountID: account.ID,
			Date:          req.Date,
			Amount:        req.Amount,
			Type:          req.Type,
			Description:   req.Description,
			Reference:     req.Reference,
			Status:        StatusUnreconciled,
		})
		if err != nil {
			return err
		}
		return tx.AdjustBalance(ctx, account.ID, created.SignedAmount())
	})
	if err != nil {
		return BankTransaction{}, err
	}
	s.recordAudit(ctx, companyID, actorID, "bank.transaction.create", fmt.Sprintf("%d", created.ID), nil)
	return created, nil
}

// Import parses a CSV statement and inserts the valid rows as
// unreconciled transactions against one account. Malformed rows are
// reported back, not fatal.
func (s *Service) Import(ctx context.Context, companyID, actorID, bankAccountID int64, statement io.Reader) (ImportResult, error) {
	rows, rowErrs, err := ParseStatement(statement)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Errors: rowErrs, Failed: len(rowErrs)}
	if len(rows) > 0 {
		err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
			account, err := tx.GetAccountForUpdate(ctx, companyID, bankAccountID)
			if err != nil {
				return err
			}
			if !account.IsActive {
				return ErrInactiveAccount
			}
			for _, row := range rows {
				txn, err := tx.InsertTransaction(ctx, BankTransaction{
					CompanyID:     companyID,
					BankAccountID: account.ID,
					Date:          row.Date,
					Amount:        row.Amount,
					Type:          row.Type,
					Description:   row.Description,
					Reference:     row.Reference,
					Status:        StatusUnreconciled,
				})
				if err != nil {
					return err
				}
				if err := tx.AdjustBalance(ctx, account.ID, txn.SignedAmount()); err != nil {
					return err
				}
				result.Imported++
			}
			return nil
		})
		if err != nil {
			return ImportResult{}, err
		}
	}

	s.recordAudit(ctx, companyID, actorID, "bank.statement.import", fmt.Sprintf("%d", bankAccountID), map[string]any{
		"imported": result.Imported,
		"failed":   result.Failed,
	})
	return result, nil
}

// Reconcile marks the listed transactions reconciled, optionally linking a
// journal entry, then recomputes the reconciled balance of every touched
// account from its reconciled transactions.
func (s *Service) Reconcile(ctx context.Context, companyID, actorID int64, req ReconcileRequest) ([]BankTransaction, error) {
	var reconciled []BankTransaction
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		touched := map[int64]struct{}{}
		for _, id := range req.TransactionIDs {
			txn, err := tx.GetTransactionForUpdate(ctx, companyID, id)
			if err != nil {
				return err
			}
			if err := tx.SetReconciled(ctx, txn.ID, req.JournalEntryID); err != nil {
				return err
			}
			txn.Status = StatusReconciled
			if req.JournalEntryID != nil {
				txn.JournalEntryID = req.JournalEntryID
			}
			reconciled = append(reconciled, txn)
			touched[txn.BankAccountID] = struct{}{}
		}
		for accountID := range touched {
			sum, err := tx.ReconciledSum(ctx, accountID)
			if err != nil {
				return err
			}
			if err := tx.SetReconciledBalance(ctx, accountID, sum); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.recordAudit(ctx, companyID, actorID, "bank.reconcile", "batch", map[string]any{
		"transactionIds": req.TransactionIDs,
	})
	return reconciled, nil
}

// Transfer moves money between two accounts of the company by creating a
// debit leg on the source and a credit leg on the destination under one
// shared reference, in a single transaction.
func (s *Service) Transfer(ctx context.Context, companyID, actorID int64, req TransferRequest) (TransferResult, error) {
	if req.FromAccountID == req.ToAccountID {
		return TransferResult{}, ErrSameAccountTransfer
	}
	if !req.Amount.IsPositive() {
		return TransferResult{}, ErrNonPositiveAmount
	}

	reference := "TRF-" + uuid.NewString()
	var result TransferResult
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		// lock in id order so concurrent opposite transfers cannot deadlock
		firstID, secondID := req.FromAccountID, req.ToAccountID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}
		locked := map[int64]BankAccount{}
		for _, id := range []int64{firstID, secondID} {
			account, err := tx.GetAccountForUpdate(ctx, companyID, id)
			if err != nil {
				return err
			}
			if !account.IsActive {
				return ErrInactiveAccount
			}
			locked[id] = account
		}
		from := locked[req.FromAccountID]
		to := locked[req.ToAccountID]

		description := req.Description
		if description == "" {
			description = fmt.Sprintf("Transfer %s -> %s", from.AccountNumber, to.AccountNumber)
		}

		outgoing, err := tx.InsertTransaction(ctx, BankTransaction{
			CompanyID:     companyID,
			BankAccountID: from.ID,
			Date:          req.Date,
			Amount:        req.Amount,
			Type:          TypeDebit,
			Description:   description,
			Reference:     reference,
			Status:        StatusUnreconciled,
		})
		if err != nil {
			return err
		}
		incoming, err := tx.InsertTransaction(ctx, BankTransaction{
			CompanyID:     companyID,
			BankAccountID: to.ID,
			Date:          req.Date,
			Amount:        req.Amount,
			Type:          TypeCredit,
			Description:   description,
			Reference:     reference,
			Status:        StatusUnreconciled,
		})
		if err != nil {
			return err
		}
		if err := tx.AdjustBalance(ctx, from.ID, req.Amount.Neg()); err != nil {
			return err
		}
		if err := tx.AdjustBalance(ctx, to.ID, req.Amount); err != nil {
			return err
		}
		result = TransferResult{Reference: reference, Outgoing: outgoing, Incoming: incoming}
		return nil
	})
	if err != nil {
		return TransferResult{}, err
	}
	s.recordAudit(ctx, companyID, actorID, "bank.transfer", reference, map[string]any{
		"reference": reference,
		"amount":    req.Amount.String(),
	})
	return result, nil
}

func (s *Service) recordAudit(ctx context.Context, companyID, actorID int64, action, entityID string, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, internalShared.AuditLog{
		CompanyID: companyID,
		ActorID:   actorID,
		Action:    action,
		Entity:    "banking",
		EntityID:  entityID,
		Meta:      meta,
		At:        s.now(),
	})
}
