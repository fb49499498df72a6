package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/accounting/accounts"
)

// roundingTolerance mirrors the posting tolerance: statements built from
// entries balanced within a cent may themselves be off by a cent.
var roundingTolerance = decimal.RequireFromString("0.01")

// BuildTrialBalance converts account totals into an ordered trial balance.
func BuildTrialBalance(totals []AccountTotal) TrialBalance {
	sorted := make([]AccountTotal, len(totals))
	copy(sorted, totals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].AccountNumber < sorted[j].AccountNumber
	})

	tb := TrialBalance{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, total := range sorted {
		tb.Rows = append(tb.Rows, TrialBalanceRow{
			AccountNumber: total.AccountNumber,
			Name:          total.Name,
			Debit:         total.Debit,
			Credit:        total.Credit,
		})
		tb.TotalDebit = tb.TotalDebit.Add(total.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(total.Credit)
	}
	tb.Balanced = tb.TotalDebit.Sub(tb.TotalCredit).Abs().LessThanOrEqual(roundingTolerance)
	return tb
}

// netCreditSide returns credit-debit, the net amount for credit-normal
// accounts.
func netCreditSide(t AccountTotal) decimal.Decimal {
	return t.Credit.Sub(t.Debit)
}

// netDebitSide returns debit-credit, the net amount for debit-normal
// accounts.
func netDebitSide(t AccountTotal) decimal.Decimal {
	return t.Debit.Sub(t.Credit)
}

// BuildProfitLoss splits totals into revenue and expense sections.
func BuildProfitLoss(totals []AccountTotal) ProfitLoss {
	pl := ProfitLoss{TotalRev: decimal.Zero, TotalExp: decimal.Zero}
	for _, total := range totals {
		switch total.Type {
		case accounts.AccountTypeRevenue:
			pl.Revenue = append(pl.Revenue, total)
			pl.TotalRev = pl.TotalRev.Add(netCreditSide(total))
		case accounts.AccountTypeExpense:
			pl.Expenses = append(pl.Expenses, total)
			pl.TotalExp = pl.TotalExp.Add(netDebitSide(total))
		}
	}
	pl.NetIncome = pl.TotalRev.Sub(pl.TotalExp)
	return pl
}

// BuildBalanceSheet assembles financial position. Retained earnings carry
// net income to date into the equity section so the statement balances.
func BuildBalanceSheet(totals []AccountTotal) BalanceSheet {
	bs := BalanceSheet{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	pl := BuildProfitLoss(totals)
	for _, total := range totals {
		switch total.Type {
		case accounts.AccountTypeAsset:
			bs.Assets = append(bs.Assets, total)
			bs.TotalAssets = bs.TotalAssets.Add(netDebitSide(total))
		case accounts.AccountTypeLiability:
			bs.Liabilities = append(bs.Liabilities, total)
			bs.TotalLiabilities = bs.TotalLiabilities.Add(netCreditSide(total))
		case accounts.AccountTypeEquity:
			bs.Equity = append(bs.Equity, total)
			bs.TotalEquity = bs.TotalEquity.Add(netCreditSide(total))
		}
	}
	bs.RetainedEarnings = pl.NetIncome
	bs.TotalEquity = bs.TotalEquity.Add(bs.RetainedEarnings)
	bs.Balanced = bs.TotalAssets.Sub(bs.TotalLiabilities.Add(bs.TotalEquity)).Abs().LessThanOrEqual(roundingTolerance)
	return bs
}

// BuildCashFlow turns monthly bank movements into a statement with running
// net cash.
func BuildCashFlow(movements []CashMovement) CashFlow {
	sorted := make([]CashMovement, len(movements))
	copy(sorted, movements)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Period < sorted[j].Period })

	cf := CashFlow{NetCash: decimal.Zero}
	running := decimal.Zero
	for _, m := range sorted {
		net := m.Inflows.Sub(m.Outflows)
		running = running.Add(net)
		cf.Buckets = append(cf.Buckets, CashFlowBucket{
			Period:   m.Period,
			Inflows:  m.Inflows,
			Outflows: m.Outflows,
			Net:      net,
			Running:  running,
		})
	}
	cf.NetCash = running
	return cf
}
