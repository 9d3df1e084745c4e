package balance

import (
	"sync"

	"github.com/Flimm/hledger/journal"
	"github.com/shopspring/decimal"
)

// Pools for commonly allocated scratch maps, grounded on the teacher's
// ledger/pool.go sync.Pool for per-transaction balance accumulation maps,
// extended here to also pool the journal balancer's running-balance map.
// residualMapPool backs the checker's and the amount inferrer's per-class
// commodity sums; balanceMapPool backs the journal balancer's running
// per-account table.

var residualMapPool = sync.Pool{
	New: func() any {
		return make(map[journal.Commodity]decimal.Decimal, 4)
	},
}

func getResidualMap() map[journal.Commodity]decimal.Decimal {
	return residualMapPool.Get().(map[journal.Commodity]decimal.Decimal)
}

func putResidualMap(m map[journal.Commodity]decimal.Decimal) {
	for k := range m {
		delete(m, k)
	}
	residualMapPool.Put(m)
}

// addResidual folds amt's quantity into residuals, keyed by commodity.
func addResidual(residuals map[journal.Commodity]decimal.Decimal, amt *journal.Amount) {
	if existing, ok := residuals[amt.Commodity]; ok {
		residuals[amt.Commodity] = existing.Add(amt.Quantity)
	} else {
		residuals[amt.Commodity] = amt.Quantity
	}
}

// mixedAmountFromResiduals turns an accumulated residual map back into a
// MixedAmount, styled per styles (falling back to the default style for any
// commodity styles has no entry for).
func mixedAmountFromResiduals(residuals map[journal.Commodity]decimal.Decimal, styles map[journal.Commodity]journal.AmountStyle) *journal.MixedAmount {
	amounts := make([]*journal.Amount, 0, len(residuals))
	for c, q := range residuals {
		style, ok := styles[c]
		if !ok {
			style = journal.DefaultAmountStyle()
		}
		amounts = append(amounts, &journal.Amount{Commodity: c, Quantity: q, Style: style})
	}
	return journal.NewMixedAmount(amounts...)
}

var balanceMapPool = sync.Pool{
	New: func() any {
		return make(map[journal.Account]*journal.MixedAmount, 16)
	},
}

func getBalanceTable() map[journal.Account]*journal.MixedAmount {
	return balanceMapPool.Get().(map[journal.Account]*journal.MixedAmount)
}

func putBalanceTable(m map[journal.Account]*journal.MixedAmount) {
	for k := range m {
		delete(m, k)
	}
	balanceMapPool.Put(m)
}
