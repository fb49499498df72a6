package reports

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/banking"
)

// Every transaction type that moves a bank balance must land in exactly one
// cash flow bucket, on the same side as its signed balance effect.
func TestCashMovementBucketsMatchSignConvention(t *testing.T) {
	types := []banking.TransactionType{banking.TypeDebit, banking.TypeCredit, banking.TypeTransfer}
	for _, typ := range types {
		txn := banking.BankTransaction{Amount: decimal.NewFromInt(100), Type: typ}
		inflow := strings.Contains(cashInflowTypes, string(typ))
		outflow := strings.Contains(cashOutflowTypes, string(typ))
		require.NotEqual(t, inflow, outflow, "type %s must be in exactly one bucket", typ)
		if txn.SignedAmount().IsPositive() {
			require.True(t, inflow, "type %s raises the balance and belongs to inflows", typ)
		} else {
			require.True(t, outflow, "type %s lowers the balance and belongs to outflows", typ)
		}
	}
}
