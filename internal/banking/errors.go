package banking

import (
	"fmt"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

// Domain errors wrap the httpx sentinels so httpx.RespondError picks the
// right status for them.
var (
	ErrAccountNotFound     = fmt.Errorf("bank account %w", httpx.ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("bank transaction %w", httpx.ErrNotFound)
	ErrDuplicateAccount    = fmt.Errorf("bank account number %w", httpx.ErrDuplicate)
	ErrInvalidType         = fmt.Errorf("%w: invalid transaction type", httpx.ErrValidation)
	ErrNonPositiveAmount   = fmt.Errorf("%w: amount must be positive", httpx.ErrValidation)
	ErrInactiveAccount     = fmt.Errorf("%w: bank account is inactive", httpx.ErrValidation)
	ErrSameAccountTransfer = fmt.Errorf("%w: transfer requires two distinct accounts", httpx.ErrValidation)
)
