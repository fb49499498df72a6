// Package shared holds sentinel errors common to the accounting packages.
// Each value wraps one of the httpx sentinels so handlers can delegate
// status mapping to httpx.RespondError.
package shared

import (
	"fmt"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

var (
	// ErrUnbalanced indicates total debit != total credit beyond tolerance.
	ErrUnbalanced = fmt.Errorf("%w: journal lines must balance", httpx.ErrValidation)
	// ErrTooFewLines indicates less than two lines.
	ErrTooFewLines = fmt.Errorf("%w: journal requires at least two lines", httpx.ErrValidation)
	// ErrLineBothSides indicates a line with both debit and credit amounts.
	ErrLineBothSides = fmt.Errorf("%w: line cannot carry both debit and credit", httpx.ErrValidation)
	// ErrNegativeAmount indicates a negative debit or credit.
	ErrNegativeAmount = fmt.Errorf("%w: amounts must be non-negative", httpx.ErrValidation)
	// ErrJournalNotFound indicates a missing entry.
	ErrJournalNotFound = fmt.Errorf("journal entry %w", httpx.ErrNotFound)
	// ErrAccountNotFound indicates a line references an unknown account.
	ErrAccountNotFound = fmt.Errorf("account %w", httpx.ErrNotFound)
	// ErrNotDraft indicates a mutation on a non-draft entry.
	ErrNotDraft = fmt.Errorf("%w: entry is no longer a draft", httpx.ErrValidation)
	// ErrAlreadyPosted guards against re-posting.
	ErrAlreadyPosted = fmt.Errorf("%w: entry already posted", httpx.ErrValidation)
	// ErrInvalidStatus indicates a disallowed status transition.
	ErrInvalidStatus = fmt.Errorf("%w: invalid status transition", httpx.ErrValidation)
	// ErrDuplicateNumber indicates an account number collision within a tenant.
	ErrDuplicateNumber = fmt.Errorf("account number %w", httpx.ErrDuplicate)
	// ErrAccountInUse indicates ledger rows reference the account.
	ErrAccountInUse = fmt.Errorf("%w: account has ledger activity", httpx.ErrValidation)
)
