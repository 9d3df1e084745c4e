// Package balance implements the transaction-balancing engine: per-transaction
// sign/sum checking, missing-amount and missing-price inference, balance
// assignment execution against running balances, and balance-assertion
// verification — all driven in date order across a whole journal.
package balance

import "github.com/Flimm/hledger/journal"

// Options carries the three knobs the engine's entry points accept (spec's
// BalancingOpts). The zero value is not valid; use DefaultOptions.
type Options struct {
	// IgnoreAssertions skips balance-assertion verification entirely.
	IgnoreAssertions bool

	// InferTransactionPrices enables the price inferrer (§4.4) before
	// amount inference runs.
	InferTransactionPrices bool

	// CommodityStyles, if non-nil, overrides the styles the journal
	// balancer would otherwise derive from the journal itself.
	CommodityStyles map[journal.Commodity]journal.AmountStyle
}

// DefaultOptions returns the spec's stated defaults: assertions checked,
// prices inferred, styles derived from the journal (nil here; the journal
// balancer fills this in from the journal when nil).
func DefaultOptions() Options {
	return Options{
		IgnoreAssertions:       false,
		InferTransactionPrices: true,
		CommodityStyles:        nil,
	}
}

// styles returns opts.CommodityStyles, falling back to an empty map so
// callers never need a nil check.
func (o Options) styles() map[journal.Commodity]journal.AmountStyle {
	if o.CommodityStyles != nil {
		return o.CommodityStyles
	}
	return map[journal.Commodity]journal.AmountStyle{}
}
