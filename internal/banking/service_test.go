package banking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

type memoryRepo struct {
	accounts map[int64]BankAccount
	txns     map[int64]BankTransaction
	nextID   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{accounts: make(map[int64]BankAccount), txns: make(map[int64]BankTransaction)}
}

func (r *memoryRepo) addAccount(companyID int64, number string) BankAccount {
	r.nextID++
	a := BankAccount{
		ID: r.nextID, CompanyID: companyID, AccountNumber: number, BankName: "Test Bank",
		Currency: "USD", CurrentBalance: decimal.Zero, ReconciledBalance: decimal.Zero, IsActive: true,
	}
	r.accounts[a.ID] = a
	return a
}

func (r *memoryRepo) ListAccounts(ctx context.Context, companyID int64, filter AccountFilter) ([]BankAccount, int, error) {
	var out []BankAccount
	for _, a := range r.accounts {
		if a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (r *memoryRepo) GetAccount(ctx context.Context, companyID, id int64) (BankAccount, error) {
	a, ok := r.accounts[id]
	if !ok || a.CompanyID != companyID {
		return BankAccount{}, ErrAccountNotFound
	}
	return a, nil
}

func (r *memoryRepo) CreateAccount(ctx context.Context, account BankAccount) (BankAccount, error) {
	for _, existing := range r.accounts {
		if existing.CompanyID == account.CompanyID && existing.AccountNumber == account.AccountNumber {
			return BankAccount{}, ErrDuplicateAccount
		}
	}
	r.nextID++
	account.ID = r.nextID
	account.IsActive = true
	r.accounts[account.ID] = account
	return account, nil
}

func (r *memoryRepo) UpdateAccount(ctx context.Context, companyID, id int64, updates map[string]any) error {
	a, ok := r.accounts[id]
	if !ok || a.CompanyID != companyID {
		return ErrAccountNotFound
	}
	if v, ok := updates["bank_name"]; ok {
		a.BankName = v.(string)
	}
	if v, ok := updates["currency"]; ok {
		a.Currency = v.(string)
	}
	if v, ok := updates["is_active"]; ok {
		a.IsActive = v.(bool)
	}
	r.accounts[id] = a
	return nil
}

func (r *memoryRepo) ListTransactions(ctx context.Context, companyID int64, filter TransactionFilter) ([]BankTransaction, int, error) {
	var out []BankTransaction
	for _, t := range r.txns {
		if t.CompanyID != companyID {
			continue
		}
		if filter.BankAccountID != nil && t.BankAccountID != *filter.BankAccountID {
			continue
		}
		out = append(out, t)
	}
	return out, len(out), nil
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, r)
}

func (r *memoryRepo) GetAccountForUpdate(ctx context.Context, companyID, id int64) (BankAccount, error) {
	return r.GetAccount(ctx, companyID, id)
}

func (r *memoryRepo) InsertTransaction(ctx context.Context, txn BankTransaction) (BankTransaction, error) {
	r.nextID++
	txn.ID = r.nextID
	r.txns[txn.ID] = txn
	return txn, nil
}

func (r *memoryRepo) AdjustBalance(ctx context.Context, accountID int64, delta decimal.Decimal) error {
	a := r.accounts[accountID]
	a.CurrentBalance = a.CurrentBalance.Add(delta)
	r.accounts[accountID] = a
	return nil
}

func (r *memoryRepo) GetTransactionForUpdate(ctx context.Context, companyID, id int64) (BankTransaction, error) {
	t, ok := r.txns[id]
	if !ok || t.CompanyID != companyID {
		return BankTransaction{}, ErrTransactionNotFound
	}
	return t, nil
}

func (r *memoryRepo) SetReconciled(ctx context.Context, id int64, journalEntryID *int64) error {
	t := r.txns[id]
	t.Status = StatusReconciled
	if journalEntryID != nil {
		t.JournalEntryID = journalEntryID
	}
	r.txns[id] = t
	return nil
}

func (r *memoryRepo) ReconciledSum(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range r.txns {
		if t.BankAccountID == accountID && t.Status == StatusReconciled {
			sum = sum.Add(t.SignedAmount())
		}
	}
	return sum, nil
}

func (r *memoryRepo) SetReconciledBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error {
	a := r.accounts[accountID]
	a.ReconciledBalance = balance
	r.accounts[accountID] = a
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var testDate = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

func TestCreateTransactionAdjustsBalance(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()
	account := repo.addAccount(1, "NL01")

	_, err := svc.CreateTransaction(ctx, 1, 7, CreateTransactionRequest{
		BankAccountID: account.ID, Date: testDate, Amount: dec("500"), Type: TypeCredit,
	})
	require.NoError(t, err)
	require.True(t, repo.accounts[account.ID].CurrentBalance.Equal(dec("500")))

	_, err = svc.CreateTransaction(ctx, 1, 7, CreateTransactionRequest{
		BankAccountID: account.ID, Date: testDate, Amount: dec("120.25"), Type: TypeDebit,
	})
	require.NoError(t, err)
	require.True(t, repo.accounts[account.ID].CurrentBalance.Equal(dec("379.75")))
}

func TestCreateTransactionRejectsInvalidInput(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()
	account := repo.addAccount(1, "NL01")

	_, err := svc.CreateTransaction(ctx, 1, 7, CreateTransactionRequest{
		BankAccountID: account.ID, Date: testDate, Amount: dec("-1"), Type: TypeDebit,
	})
	require.ErrorIs(t, err, ErrNonPositiveAmount)

	_, err = svc.CreateTransaction(ctx, 1, 7, CreateTransactionRequest{
		BankAccountID: account.ID, Date: testDate, Amount: dec("1"), Type: TransactionType("WIRE"),
	})
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestCreateTransactionInactiveAccount(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	account := repo.addAccount(1, "NL01")
	a := repo.accounts[account.ID]
	a.IsActive = false
	repo.accounts[account.ID] = a

	_, err := svc.CreateTransaction(context.Background(), 1, 7, CreateTransactionRequest{
		BankAccountID: account.ID, Date: testDate, Amount: dec("1"), Type: TypeCredit,
	})
	require.ErrorIs(t, err, ErrInactiveAccount)
}

func TestImportInsertsValidRowsAndReportsBad(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	account := repo.addAccount(1, "NL01")

	statement := strings.Join([]string{
		"date,description,amount,type,reference",
		"2026-03-01,Payment in,1000,CREDIT,A",
		"2026-03-02,Payment out,400,DEBIT,B",
		"garbage,row,here,nope,X",
	}, "\n")

	result, err := svc.Import(context.Background(), 1, 7, account.ID, strings.NewReader(statement))
	require.NoError(t, err)
	require.Equal(t, 2, result.Imported)
	require.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	require.True(t, repo.accounts[account.ID].CurrentBalance.Equal(dec("600")))
}

func TestReconcileRecomputesReconciledBalance(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()
	account := repo.addAccount(1, "NL01")

	in, err := svc.CreateTransaction(ctx, 1, 7, CreateTransactionRequest{
		BankAccountID: account.ID, Date: testDate, Amount: dec("1000"), Type: TypeCredit,
	})
	require.NoError(t, err)
	out, err := svc.CreateTransaction(ctx, 1, 7, CreateTransactionRequest{
		BankAccountID: account.ID, Date: testDate, Amount: dec("300"), Type: TypeDebit,
	})
	require.NoError(t, err)

	journalID := int64(99)
	reconciled, err := svc.Reconcile(ctx, 1, 7, ReconcileRequest{
		TransactionIDs: []int64{in.ID, out.ID},
		JournalEntryID: &journalID,
	})
	require.NoError(t, err)
	require.Len(t, reconciled, 2)

	require.True(t, repo.accounts[account.ID].ReconciledBalance.Equal(dec("700")))
	require.Equal(t, StatusReconciled, repo.txns[in.ID].Status)
	require.NotNil(t, repo.txns[in.ID].JournalEntryID)
	require.Equal(t, journalID, *repo.txns[in.ID].JournalEntryID)
}

func TestReconcileUnknownTransaction(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	_, err := svc.Reconcile(context.Background(), 1, 7, ReconcileRequest{TransactionIDs: []int64{404}})
	require.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestTransferCreatesPairedLegs(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()
	from := repo.addAccount(1, "NL01")
	to := repo.addAccount(1, "NL02")

	a := repo.accounts[from.ID]
	a.CurrentBalance = dec("1000")
	repo.accounts[from.ID] = a

	result, err := svc.Transfer(ctx, 1, 7, TransferRequest{
		FromAccountID: from.ID, ToAccountID: to.ID, Amount: dec("250"), Date: testDate,
	})
	require.NoError(t, err)

	require.Equal(t, TypeDebit, result.Outgoing.Type)
	require.Equal(t, TypeCredit, result.Incoming.Type)
	require.Equal(t, result.Outgoing.Reference, result.Incoming.Reference)
	require.True(t, strings.HasPrefix(result.Reference, "TRF-"))

	require.True(t, repo.accounts[from.ID].CurrentBalance.Equal(dec("750")))
	require.True(t, repo.accounts[to.ID].CurrentBalance.Equal(dec("250")))
}

func TestTransferSameAccountRejected(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	account := repo.addAccount(1, "NL01")

	_, err := svc.Transfer(context.Background(), 1, 7, TransferRequest{
		FromAccountID: account.ID, ToAccountID: account.ID, Amount: dec("1"), Date: testDate,
	})
	require.ErrorIs(t, err, ErrSameAccountTransfer)
}

func TestTransferTenantScoped(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	mine := repo.addAccount(1, "NL01")
	theirs := repo.addAccount(2, "NL02")

	_, err := svc.Transfer(context.Background(), 1, 7, TransferRequest{
		FromAccountID: mine.ID, ToAccountID: theirs.ID, Amount: dec("1"), Date: testDate,
	})
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestDomainErrorsWrapSharedSentinels(t *testing.T) {
	require.ErrorIs(t, ErrAccountNotFound, httpx.ErrNotFound)
	require.ErrorIs(t, ErrTransactionNotFound, httpx.ErrNotFound)
	require.ErrorIs(t, ErrDuplicateAccount, httpx.ErrDuplicate)
	require.ErrorIs(t, ErrInvalidType, httpx.ErrValidation)
	require.ErrorIs(t, ErrInactiveAccount, httpx.ErrValidation)
}
