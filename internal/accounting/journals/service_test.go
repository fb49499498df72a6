package journals

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/accounting/accounts"
	"github.com/meridian-erp/meridian-erp/internal/accounting/ledger"
	"github.com/meridian-erp/meridian-erp/internal/accounting/shared"
)

type memAccount struct {
	companyID int64
	account   PostingAccount
}

type memoryRepo struct {
	entries  map[int64]JournalEntry
	lines    map[int64][]JournalLine
	accounts map[int64]*memAccount
	rows     []ledger.Row
	nextID   int64
	nextNum  int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		entries:  make(map[int64]JournalEntry),
		lines:    make(map[int64][]JournalLine),
		accounts: make(map[int64]*memAccount),
	}
}

func (r *memoryRepo) addAccount(companyID, id int64, typ accounts.AccountType) {
	r.accounts[id] = &memAccount{companyID: companyID, account: PostingAccount{ID: id, Type: typ, Balance: decimal.Zero}}
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, r)
}

func (r *memoryRepo) List(ctx context.Context, companyID int64, filter ListFilter) ([]JournalEntry, int, error) {
	var out []JournalEntry
	for _, e := range r.entries {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (r *memoryRepo) Get(ctx context.Context, companyID, id int64) (JournalEntry, error) {
	e, ok := r.entries[id]
	if !ok || e.CompanyID != companyID {
		return JournalEntry{}, shared.ErrJournalNotFound
	}
	e.Lines = r.lines[id]
	return e, nil
}

func (r *memoryRepo) InsertEntry(ctx context.Context, entry JournalEntry) (JournalEntry, error) {
	r.nextID++
	r.nextNum++
	entry.ID = r.nextID
	entry.EntryNumber = r.nextNum
	r.entries[entry.ID] = entry
	return entry, nil
}

func (r *memoryRepo) InsertLines(ctx context.Context, entryID int64, lines []JournalLine) error {
	copied := make([]JournalLine, len(lines))
	copy(copied, lines)
	r.lines[entryID] = copied
	return nil
}

func (r *memoryRepo) ReplaceLines(ctx context.Context, entryID int64, lines []JournalLine) error {
	return r.InsertLines(ctx, entryID, lines)
}

func (r *memoryRepo) GetEntryForUpdate(ctx context.Context, companyID, entryID int64) (JournalEntry, error) {
	return r.Get(ctx, companyID, entryID)
}

func (r *memoryRepo) GetLines(ctx context.Context, entryID int64) ([]JournalLine, error) {
	return r.lines[entryID], nil
}

func (r *memoryRepo) UpdateDraft(ctx context.Context, entry JournalEntry) error {
	stored, ok := r.entries[entry.ID]
	if !ok || stored.Status != JournalStatusDraft {
		return shared.ErrNotDraft
	}
	stored.Date = entry.Date
	stored.Memo = entry.Memo
	stored.TotalDebit = entry.TotalDebit
	stored.TotalCredit = entry.TotalCredit
	r.entries[entry.ID] = stored
	return nil
}

func (r *memoryRepo) MarkPosted(ctx context.Context, entryID int64, totalDebit, totalCredit decimal.Decimal, postedBy int64, postedAt time.Time) error {
	stored, ok := r.entries[entryID]
	if !ok || stored.Status != JournalStatusDraft {
		return shared.ErrNotDraft
	}
	stored.Status = JournalStatusPosted
	stored.TotalDebit = totalDebit
	stored.TotalCredit = totalCredit
	stored.PostedBy = &postedBy
	stored.PostedAt = &postedAt
	r.entries[entryID] = stored
	return nil
}

func (r *memoryRepo) SetStatus(ctx context.Context, entryID int64, status JournalStatus) error {
	stored, ok := r.entries[entryID]
	if !ok {
		return shared.ErrJournalNotFound
	}
	stored.Status = status
	r.entries[entryID] = stored
	return nil
}

func (r *memoryRepo) GetAccountForUpdate(ctx context.Context, companyID, accountID int64) (PostingAccount, error) {
	stored, ok := r.accounts[accountID]
	if !ok || stored.companyID != companyID {
		return PostingAccount{}, shared.ErrAccountNotFound
	}
	return stored.account, nil
}

func (r *memoryRepo) AddToAccountBalance(ctx context.Context, accountID int64, delta decimal.Decimal) error {
	stored := r.accounts[accountID]
	stored.account.Balance = stored.account.Balance.Add(delta)
	return nil
}

func (r *memoryRepo) LastLedgerBalance(ctx context.Context, companyID, accountID int64) (decimal.Decimal, error) {
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].CompanyID == companyID && r.rows[i].AccountID == accountID {
			return r.rows[i].Balance, nil
		}
	}
	return decimal.Zero, nil
}

func (r *memoryRepo) InsertLedgerRow(ctx context.Context, row ledger.Row) error {
	r.rows = append(r.rows, row)
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func draftRequest(debit, credit string) CreateJournalRequest {
	return CreateJournalRequest{
		Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Memo: "office supplies",
		Lines: []LineInput{
			{AccountID: 1, Debit: dec(debit)},
			{AccountID: 2, Credit: dec(credit)},
		},
	}
}

func newTestService(repo *memoryRepo) *Service {
	svc := NewService(repo, nil, nil)
	svc.WithNow(func() time.Time { return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC) })
	return svc
}

const testCompany = int64(7)

func setupAccounts(repo *memoryRepo) {
	repo.addAccount(testCompany, 1, accounts.AccountTypeAsset)
	repo.addAccount(testCompany, 2, accounts.AccountTypeRevenue)
	repo.addAccount(testCompany, 3, accounts.AccountTypeExpense)
}

func TestPostBalancedEntry(t *testing.T) {
	repo := newMemoryRepo()
	setupAccounts(repo)
	svc := newTestService(repo)
	ctx := context.Background()

	entry, err := svc.Create(ctx, testCompany, draftRequest("150.00", "150.00"))
	require.NoError(t, err)
	require.Equal(t, JournalStatusDraft, entry.Status)
	require.True(t, entry.TotalDebit.Equal(dec("150.00")))

	posted, err := svc.Post(ctx, testCompany, entry.ID, 99)
	require.NoError(t, err)
	require.Equal(t, JournalStatusPosted, posted.Status)
	require.NotNil(t, posted.PostedAt)
	require.Equal(t, int64(99), *posted.PostedBy)

	// one ledger row per line, running balances set
	require.Len(t, repo.rows, 2)
	require.True(t, repo.rows[0].Balance.Equal(dec("150.00")))
	require.True(t, repo.rows[1].Balance.Equal(dec("150.00")))

	// account balances move on the normal side
	require.True(t, repo.accounts[1].account.Balance.Equal(dec("150.00")))
	require.True(t, repo.accounts[2].account.Balance.Equal(dec("150.00")))
}

func TestPostUnbalancedEntryFails(t *testing.T) {
	repo := newMemoryRepo()
	setupAccounts(repo)
	svc := newTestService(repo)
	ctx := context.Background()

	entry, err := svc.Create(ctx, testCompany, draftRequest("100.00", "90.00"))
	require.NoError(t, err)

	_, err = svc.Post(ctx, testCompany, entry.ID, 99)
	require.ErrorIs(t, err, shared.ErrUnbalanced)
	require.Empty(t, repo.rows)
	require.True(t, repo.accounts[1].account.Balance.IsZero())
}

func TestPostToleranceBoundary(t *testing.T) {
	repo := newMemoryRepo()
	setupAccounts(repo)
	svc := newTestService(repo)
	ctx := context.Background()

	// 0.01 difference is accepted
	entry, err := svc.Create(ctx, testCompany, draftRequest("100.00", "99.99"))
	require.NoError(t, err)
	_, err = svc.Post(ctx, testCompany, entry.ID, 99)
	require.NoError(t, err)

	// 0.02 is not
	entry, err = svc.Create(ctx, testCompany, draftRequest("100.00", "99.98"))
	require.NoError(t, err)
	_, err = svc.Post(ctx, testCompany, entry.ID, 99)
	require.ErrorIs(t, err, shared.ErrUnbalanced)
}

func TestRepostRejected(t *testing.T) {
	repo := newMemoryRepo()
	setupAccounts(repo)
	svc := newTestService(repo)
	ctx := context.Background()

	entry, err := svc.Create(ctx, testCompany, draftRequest("50.00", "50.00"))
	require.NoError(t, err)
	_, err = svc.Post(ctx, testCompany, entry.ID, 99)
	require.NoError(t, err)

	_, err = svc.Post(ctx, testCompany, entry.ID, 99)
	require.ErrorIs(t, err, shared.ErrAlreadyPosted)

	// ledger rows emitted exactly once
	require.Len(t, repo.rows, 2)
}

func TestRunningBalanceAccumulates(t *testing.T) {
	repo := newMemoryRepo()
	setupAccounts(repo)
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, testCompany, draftRequest("100.00", "100.00"))
	require.NoError(t, err)
	_, err = svc.Post(ctx, testCompany, first.ID, 99)
	require.NoError(t, err)

	second, err := svc.Create(ctx, testCompany, draftRequest("25.50", "25.50"))
	require.NoError(t, err)
	_, err = svc.Post(ctx, testCompany, second.ID, 99)
	require.NoError(t, err)

	require.Len(t, repo.rows, 4)
	// rows for account 1 carry 100.00 then 125.50
	require.True(t, repo.rows[2].Balance.Equal(dec("125.50")))
	require.True(t, repo.accounts[1].account.Balance.Equal(dec("125.50")))
}

func TestReverseMirrorsAndMarksOriginal(t *testing.T) {
	repo := newMemoryRepo()
	setupAccounts(repo)
	svc := newTestService(repo)
	ctx := context.Background()

	entry, err := svc.Create(ctx, testCompany, draftRequest("80.00", "80.00"))
	require.NoError(t, err)
	_, err = svc.Post(ctx, testCompany, entry.ID, 99)
	require.NoError(t, err)

	reversal, err := svc.Reverse(ctx, testCompany, entry.ID, 99, "")
	require.NoError(t, err)
	require.Equal(t, JournalStatusPosted, reversal.Status)
	require.Equal(t, "Reversal of JE 1", reversal.Memo)
	require.True(t, reversal.Lines[0].Credit.Equal(dec("80.00")))
	require.True(t, reversal.Lines[1].Debit.Equal(dec("80.00")))

	original, err := svc.Get(ctx, testCompany, entry.ID)
	require.NoError(t, err)
	require.Equal(t, JournalStatusReversed, original.Status)

	// balances net out
	require.True(t, repo.accounts[1].account.Balance.IsZero())
	require.True(t, repo.accounts[2].account.Balance.IsZero())
}

func TestReverseDraftRejected(t *testing.T) {
	repo := newMemoryRepo()
	setupAccounts(repo)
	svc := newTestService(repo)
	ctx := context.Background()

	entry, err := svc.Create(ctx, testCompany, draftRequest("80.00", "80.00"))
	require.NoError(t, err)

	_, err = svc.Reverse(ctx, testCompany, entry.ID, 99, "")
	require.ErrorIs(t, err, shared.ErrInvalidStatus)
}

func TestCancelOnlyFromDraft(t *testing.T) {
	repo := newMemoryRepo()
	setupAccounts(repo)
	svc := newTestService(repo)
	ctx := context.Background()

	entry, err := svc.Create(ctx, testCompany, draftRequest("80.00", "80.00"))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, testCompany, entry.ID, 99)
	require.NoError(t, err)
	require.Equal(t, JournalStatusCancelled, cancelled.Status)

	posted, err := svc.Create(ctx, testCompany, draftRequest("10.00", "10.00"))
	require.NoError(t, err)
	_, err = svc.Post(ctx, testCompany, posted.ID, 99)
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, testCompany, posted.ID, 99)
	require.ErrorIs(t, err, shared.ErrInvalidStatus)
}

func TestUpdateOnlyWhileDraft(t *testing.T) {
	repo := newMemoryRepo()
	setupAccounts(repo)
	svc := newTestService(repo)
	ctx := context.Background()

	entry, err := svc.Create(ctx, testCompany, draftRequest("80.00", "80.00"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, testCompany, entry.ID, UpdateJournalRequest{
		Date: entry.Date,
		Memo: "adjusted",
		Lines: []LineInput{
			{AccountID: 3, Debit: dec("40.00")},
			{AccountID: 2, Credit: dec("40.00")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "adjusted", updated.Memo)
	require.True(t, updated.TotalDebit.Equal(dec("40.00")))

	_, err = svc.Post(ctx, testCompany, entry.ID, 99)
	require.NoError(t, err)

	_, err = svc.Update(ctx, testCompany, entry.ID, UpdateJournalRequest{
		Date:  entry.Date,
		Memo:  "too late",
		Lines: []LineInput{{AccountID: 3, Debit: dec("1")}, {AccountID: 2, Credit: dec("1")}},
	})
	require.ErrorIs(t, err, shared.ErrNotDraft)
}

func TestCreateStructuralValidation(t *testing.T) {
	repo := newMemoryRepo()
	setupAccounts(repo)
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, testCompany, CreateJournalRequest{
		Date:  time.Now(),
		Lines: []LineInput{{AccountID: 1, Debit: dec("10")}},
	})
	require.ErrorIs(t, err, shared.ErrTooFewLines)

	_, err = svc.Create(ctx, testCompany, CreateJournalRequest{
		Date: time.Now(),
		Lines: []LineInput{
			{AccountID: 1, Debit: dec("10"), Credit: dec("5")},
			{AccountID: 2, Credit: dec("5")},
		},
	})
	require.ErrorIs(t, err, shared.ErrLineBothSides)

	_, err = svc.Create(ctx, testCompany, CreateJournalRequest{
		Date: time.Now(),
		Lines: []LineInput{
			{AccountID: 1, Debit: dec("-10")},
			{AccountID: 2, Credit: dec("-10")},
		},
	})
	require.ErrorIs(t, err, shared.ErrNegativeAmount)

	_, err = svc.Create(ctx, testCompany, CreateJournalRequest{
		Date: time.Now(),
		Lines: []LineInput{
			{AccountID: 999, Debit: dec("10")},
			{AccountID: 2, Credit: dec("10")},
		},
	})
	require.ErrorIs(t, err, shared.ErrAccountNotFound)
}

func TestTenantScopeEnforced(t *testing.T) {
	repo := newMemoryRepo()
	setupAccounts(repo)
	svc := newTestService(repo)
	ctx := context.Background()

	entry, err := svc.Create(ctx, testCompany, draftRequest("80.00", "80.00"))
	require.NoError(t, err)

	_, err = svc.Post(ctx, testCompany+1, entry.ID, 99)
	require.ErrorIs(t, err, shared.ErrJournalNotFound)
}
