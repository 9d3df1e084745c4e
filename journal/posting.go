package journal

import "time"

// BalanceAssertion declares the expected running balance of a posting's
// account at the point that posting is processed in date order.
//
//	=  partial, exclusive  — this commodity only, this account only
//	== total, exclusive    — every commodity in this account must match
//	                          (others implicitly zero)
//	=* partial, inclusive  — this commodity, summed over this account and
//	                          its subaccounts
//	==* total, inclusive   — every commodity, summed over this account and
//	                          its subaccounts
type BalanceAssertion struct {
	Pos       Position
	Amount    *Amount
	Total     bool // true: "==", all commodities must match; false: "=", this commodity only
	Inclusive bool // true: "=*"/"==*", include subaccounts; false: exclusive
}

// Posting is a single leg of a Transaction. Amount is nil when the posting
// is "missing" — its value is to be inferred by the balancer. A posting may
// instead carry a BalanceAssertion with no Amount at all: a balance
// assignment, whose delta is derived from running balances rather than
// written down directly.
type Posting struct {
	Pos         Position
	Account     Account
	Amount      *MixedAmount // nil means missing/to-be-inferred
	Type        PostingType
	PostingDate *time.Time // explicit posting-date override, nil = use transaction date
	Assertion   *BalanceAssertion

	Transaction *Transaction // back-reference, tied once the posting is balanced

	// Original preserves the posting's pre-inference form so that a caller
	// wanting to reproduce the user's input verbatim can tell an inferred
	// amount apart from one the user wrote down. Set only when the amount
	// inferrer fills in a missing Amount; nil otherwise.
	Original *Posting
}

// IsAssignment reports whether this posting is a balance assignment: no
// explicit amount, but a BalanceAssertion whose delta must be derived.
func (p *Posting) IsAssignment() bool {
	return p.Amount == nil && p.Assertion != nil
}

// EffectiveDate returns the date this posting is considered to occur on:
// its own PostingDate override if set, otherwise the parent transaction's date.
func (p *Posting) EffectiveDate() time.Time {
	if p.PostingDate != nil {
		return *p.PostingDate
	}
	return p.Transaction.Date
}

// Snapshot returns a shallow copy of p suitable for stashing in Original
// before the engine mutates Amount. It does not copy Original itself, to
// avoid an ever-growing chain.
func (p *Posting) Snapshot() *Posting {
	cp := *p
	cp.Original = nil
	return &cp
}
