package journals

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/accounting/shared"
)

// LineInput is one requested journal line.
type LineInput struct {
	AccountID int64           `json:"accountId" validate:"required,gt=0"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateJournalRequest creates a draft entry.
type CreateJournalRequest struct {
	Date  time.Time   `json:"date" validate:"required"`
	Memo  string      `json:"memo" validate:"max=500"`
	Lines []LineInput `json:"entries" validate:"required,min=2,dive"`
}

// UpdateJournalRequest mutates a draft entry; all fields replace the
// existing values.
type UpdateJournalRequest struct {
	Date  time.Time   `json:"date" validate:"required"`
	Memo  string      `json:"memo" validate:"max=500"`
	Lines []LineInput `json:"entries" validate:"required,min=2,dive"`
}

// ReverseJournalRequest reverses a posted entry.
type ReverseJournalRequest struct {
	Memo string `json:"memo" validate:"max=500"`
}

// ListFilter narrows journal listings.
type ListFilter struct {
	Status *JournalStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// validateLines performs the structural checks shared by create and update:
// at least two lines, non-negative amounts, never both sides on one line.
// Balance is only enforced at posting time.
func validateLines(lines []LineInput) error {
	if len(lines) < 2 {
		return shared.ErrTooFewLines
	}
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return shared.ErrNegativeAmount
		}
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			return shared.ErrLineBothSides
		}
	}
	return nil
}

// sumLines returns the debit and credit totals.
func sumLines(lines []JournalLine) (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, line := range lines {
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	return debit, credit
}

func toLines(inputs []LineInput) []JournalLine {
	lines := make([]JournalLine, 0, len(inputs))
	for _, in := range inputs {
		lines = append(lines, JournalLine{
			AccountID: in.AccountID,
			Debit:     in.Debit,
			Credit:    in.Credit,
		})
	}
	return lines
}
