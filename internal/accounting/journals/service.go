package journals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/accounting/ledger"
	"github.com/meridian-erp/meridian-erp/internal/accounting/shared"
	internalShared "github.com/meridian-erp/meridian-erp/internal/shared"
)

// AuditPort records audit trail entries.
type AuditPort interface {
	Record(ctx context.Context, log internalShared.AuditLog) error
}

// ReportInvalidator drops cached report payloads after postings change the
// ledger.
type ReportInvalidator interface {
	Invalidate(ctx context.Context, companyID int64) error
}

// Service implements the journal lifecycle: draft, post, reverse, cancel.
type Service struct {
	repo    Repository
	audit   AuditPort
	reports ReportInvalidator
	now     func() time.Time
}

// NewService wires the service. audit and reports may be nil.
func NewService(repo Repository, audit AuditPort, reports ReportInvalidator) *Service {
	return &Service{repo: repo, audit: audit, reports: reports, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// List returns entries matching the filter.
func (s *Service) List(ctx context.Context, companyID int64, filter ListFilter) ([]JournalEntry, int, error) {
	return s.repo.List(ctx, companyID, filter)
}

// Get fetches one entry with its lines.
func (s *Service) Get(ctx context.Context, companyID, id int64) (JournalEntry, error) {
	return s.repo.Get(ctx, companyID, id)
}

// Create inserts a draft entry. Totals are recomputed from the lines; the
// balance invariant is only enforced when the entry posts.
func (s *Service) Create(ctx context.Context, companyID int64, req CreateJournalRequest) (JournalEntry, error) {
	if err := validateLines(req.Lines); err != nil {
		return JournalEntry{}, err
	}
	lines := toLines(req.Lines)
	totalDebit, totalCredit := sumLines(lines)

	entry := JournalEntry{
		CompanyID:   companyID,
		Reference:   uuid.New(),
		Date:        req.Date,
		Memo:        req.Memo,
		Status:      JournalStatusDraft,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		for _, line := range lines {
			if _, err := tx.GetAccountForUpdate(ctx, companyID, line.AccountID); err != nil {
				return err
			}
		}
		inserted, err := tx.InsertEntry(ctx, entry)
		if err != nil {
			return err
		}
		if err := tx.InsertLines(ctx, inserted.ID, lines); err != nil {
			return err
		}
		inserted.Lines = lines
		entry = inserted
		return nil
	})
	if err != nil {
		return JournalEntry{}, err
	}
	return entry, nil
}

// Update replaces the lines and metadata of a draft entry.
func (s *Service) Update(ctx context.Context, companyID, entryID int64, req UpdateJournalRequest) (JournalEntry, error) {
	if err := validateLines(req.Lines); err != nil {
		return JournalEntry{}, err
	}
	lines := toLines(req.Lines)
	totalDebit, totalCredit := sumLines(lines)

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetEntryForUpdate(ctx, companyID, entryID)
		if err != nil {
			return err
		}
		if current.Status != JournalStatusDraft {
			return shared.ErrNotDraft
		}
		for _, line := range lines {
			if _, err := tx.GetAccountForUpdate(ctx, companyID, line.AccountID); err != nil {
				return err
			}
		}
		current.Date = req.Date
		current.Memo = req.Memo
		current.TotalDebit = totalDebit
		current.TotalCredit = totalCredit
		if err := tx.ReplaceLines(ctx, entryID, lines); err != nil {
			return err
		}
		return tx.UpdateDraft(ctx, current)
	})
	if err != nil {
		return JournalEntry{}, err
	}
	return s.repo.Get(ctx, companyID, entryID)
}

// Post transitions a draft to Posted inside one transaction: it validates
// the balance invariant, emits one immutable ledger row per line carrying
// the account's running balance, and moves each account balance on its
// normal side. Re-posting is rejected.
func (s *Service) Post(ctx context.Context, companyID, entryID, actorID int64) (JournalEntry, error) {
	var posted JournalEntry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		entry, err := tx.GetEntryForUpdate(ctx, companyID, entryID)
		if err != nil {
			return err
		}
		switch entry.Status {
		case JournalStatusDraft:
		case JournalStatusPosted:
			return shared.ErrAlreadyPosted
		default:
			return shared.ErrNotDraft
		}
		lines, err := tx.GetLines(ctx, entryID)
		if err != nil {
			return err
		}
		if err := s.postLocked(ctx, tx, &entry, lines, actorID); err != nil {
			return err
		}
		posted = entry
		posted.Lines = lines
		return nil
	})
	if err != nil {
		return JournalEntry{}, err
	}
	s.afterPosting(ctx, companyID, actorID, "journal.post", posted, nil)
	return posted, nil
}

// Reverse creates and posts a mirror entry for a posted journal and marks
// the original Reversed.
func (s *Service) Reverse(ctx context.Context, companyID, entryID, actorID int64, memo string) (JournalEntry, error) {
	var reversal JournalEntry
	var originalID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		original, err := tx.GetEntryForUpdate(ctx, companyID, entryID)
		if err != nil {
			return err
		}
		if original.Status != JournalStatusPosted {
			return shared.ErrInvalidStatus
		}
		lines, err := tx.GetLines(ctx, entryID)
		if err != nil {
			return err
		}
		mirrored := mirrorLines(lines)
		totalDebit, totalCredit := sumLines(mirrored)

		entry := JournalEntry{
			CompanyID:   companyID,
			Reference:   uuid.New(),
			Date:        s.now(),
			Memo:        reversalMemo(memo, original.EntryNumber),
			Status:      JournalStatusDraft,
			TotalDebit:  totalDebit,
			TotalCredit: totalCredit,
		}
		inserted, err := tx.InsertEntry(ctx, entry)
		if err != nil {
			return err
		}
		if err := tx.InsertLines(ctx, inserted.ID, mirrored); err != nil {
			return err
		}
		if err := s.postLocked(ctx, tx, &inserted, mirrored, actorID); err != nil {
			return err
		}
		if err := tx.SetStatus(ctx, original.ID, JournalStatusReversed); err != nil {
			return err
		}
		reversal = inserted
		reversal.Lines = mirrored
		originalID = original.ID
		return nil
	})
	if err != nil {
		return JournalEntry{}, err
	}
	s.afterPosting(ctx, companyID, actorID, "journal.reverse", reversal, map[string]any{
		"reversed_entry_id": originalID,
	})
	return reversal, nil
}

// Cancel moves a draft to Cancelled. Posted entries can only be reversed.
func (s *Service) Cancel(ctx context.Context, companyID, entryID, actorID int64) (JournalEntry, error) {
	var cancelled JournalEntry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		entry, err := tx.GetEntryForUpdate(ctx, companyID, entryID)
		if err != nil {
			return err
		}
		if entry.Status != JournalStatusDraft {
			return shared.ErrInvalidStatus
		}
		if err := tx.SetStatus(ctx, entry.ID, JournalStatusCancelled); err != nil {
			return err
		}
		entry.Status = JournalStatusCancelled
		cancelled = entry
		return nil
	})
	if err != nil {
		return JournalEntry{}, err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, internalShared.AuditLog{
			CompanyID: companyID,
			ActorID:   actorID,
			Action:    "journal.cancel",
			Entity:    "journal_entry",
			EntityID:  fmt.Sprintf("%d", cancelled.ID),
			At:        s.now(),
		})
	}
	return cancelled, nil
}

// postLocked performs the posting steps for an entry already locked in tx.
// The entry's status, totals and posting metadata are updated in place.
func (s *Service) postLocked(ctx context.Context, tx TxRepository, entry *JournalEntry, lines []JournalLine, actorID int64) error {
	if len(lines) < 2 {
		return shared.ErrTooFewLines
	}
	totalDebit, totalCredit := sumLines(lines)
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return shared.ErrNegativeAmount
		}
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			return shared.ErrLineBothSides
		}
	}
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceTolerance) {
		return shared.ErrUnbalanced
	}

	now := s.now()
	for _, line := range lines {
		account, err := tx.GetAccountForUpdate(ctx, entry.CompanyID, line.AccountID)
		if err != nil {
			return err
		}
		delta := line.Debit.Sub(line.Credit)
		if !account.Type.DebitNormal() {
			delta = line.Credit.Sub(line.Debit)
		}
		previous, err := tx.LastLedgerBalance(ctx, entry.CompanyID, line.AccountID)
		if err != nil {
			return err
		}
		row := ledger.Row{
			CompanyID:      entry.CompanyID,
			AccountID:      line.AccountID,
			JournalEntryID: entry.ID,
			Date:           entry.Date,
			Debit:          line.Debit,
			Credit:         line.Credit,
			Balance:        previous.Add(delta),
			CreatedAt:      now,
		}
		if err := tx.InsertLedgerRow(ctx, row); err != nil {
			return err
		}
		if err := tx.AddToAccountBalance(ctx, line.AccountID, delta); err != nil {
			return err
		}
	}

	if err := tx.MarkPosted(ctx, entry.ID, totalDebit, totalCredit, actorID, now); err != nil {
		return err
	}
	entry.Status = JournalStatusPosted
	entry.TotalDebit = totalDebit
	entry.TotalCredit = totalCredit
	entry.PostedBy = &actorID
	entry.PostedAt = &now
	return nil
}

func (s *Service) afterPosting(ctx context.Context, companyID, actorID int64, action string, entry JournalEntry, extra map[string]any) {
	if s.reports != nil {
		_ = s.reports.Invalidate(ctx, companyID)
	}
	if s.audit == nil {
		return
	}
	meta := map[string]any{
		"entry_number": entry.EntryNumber,
		"reference":    entry.Reference.String(),
	}
	for k, v := range extra {
		meta[k] = v
	}
	_ = s.audit.Record(ctx, internalShared.AuditLog{
		CompanyID: companyID,
		ActorID:   actorID,
		Action:    action,
		Entity:    "journal_entry",
		EntityID:  fmt.Sprintf("%d", entry.ID),
		Meta:      meta,
		At:        s.now(),
	})
}

func mirrorLines(lines []JournalLine) []JournalLine {
	out := make([]JournalLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, JournalLine{
			AccountID: line.AccountID,
			Debit:     line.Credit,
			Credit:    line.Debit,
		})
	}
	return out
}

func reversalMemo(memo string, number int64) string {
	if memo != "" {
		return memo
	}
	return fmt.Sprintf("Reversal of JE %d", number)
}
