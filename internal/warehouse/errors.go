package warehouse

import (
	"fmt"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

// Domain errors wrap the httpx sentinels so httpx.RespondError picks the
// right status for them.
var (
	ErrWarehouseNotFound = fmt.Errorf("warehouse %w", httpx.ErrNotFound)
	ErrLocationNotFound  = fmt.Errorf("warehouse location %w", httpx.ErrNotFound)
	ErrDuplicateCode     = fmt.Errorf("warehouse code %w", httpx.ErrDuplicate)
	ErrDuplicateLocation = fmt.Errorf("location name %w in warehouse", httpx.ErrDuplicate)
	ErrNegativeQuantity  = fmt.Errorf("%w: quantity must not be negative", httpx.ErrValidation)
	ErrWarehouseInUse    = fmt.Errorf("%w: warehouse has stored inventory", httpx.ErrValidation)
)
