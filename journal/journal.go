package journal

// Journal is an ordered sequence of Transactions plus the commodity-style
// map used to canonicalize amounts for display-precision comparisons, and
// the set of accounts that transaction-modifier rules name — those accounts
// may never receive a balance-assignment posting.
type Journal struct {
	Transactions         []*Transaction
	CommodityStyles      map[Commodity]AmountStyle
	UnassignableAccounts map[Account]bool
}

// NewJournal builds an empty Journal ready to accept transactions.
func NewJournal() *Journal {
	return &Journal{
		CommodityStyles:      make(map[Commodity]AmountStyle),
		UnassignableAccounts: make(map[Account]bool),
	}
}

// Number assigns 1-based, input-order indices to every transaction. It is
// idempotent: calling it again after balancing renumbers consistently
// because the slice order does not change across a balancing pass.
func (j *Journal) Number() {
	for i, t := range j.Transactions {
		t.Index = i + 1
	}
}

// InferredStyles scans every posting's explicit (non-inferred) amounts and
// returns the widest style observed per commodity: the highest explicit
// precision, and the side/spacing/mark/grouping of the first amount seen
// for that commodity. This is the "commodity styles derived from the
// journal" default that balance.Options falls back to when the caller
// supplies none.
func (j *Journal) InferredStyles() map[Commodity]AmountStyle {
	styles := make(map[Commodity]AmountStyle)
	seen := make(map[Commodity]bool)

	observe := func(a *Amount) {
		if a == nil {
			return
		}
		if !seen[a.Commodity] {
			styles[a.Commodity] = a.Style
			seen[a.Commodity] = true
			return
		}
		cur := styles[a.Commodity]
		if a.Style.Precision != NaturalPrecision &&
			(cur.Precision == NaturalPrecision || a.Style.Precision > cur.Precision) {
			cur.Precision = a.Style.Precision
			styles[a.Commodity] = cur
		}
	}

	for _, t := range j.Transactions {
		for _, p := range t.Postings {
			if p.Amount == nil {
				continue
			}
			for _, a := range p.Amount.Raw() {
				observe(a)
				if a.Price != nil {
					observe(a.Price.Amount)
				}
			}
			if p.Assertion != nil {
				observe(p.Assertion.Amount)
			}
		}
	}

	return styles
}

// Clone returns a copy of the journal with its own Transactions slice and
// its own Transaction and Posting values (each copied posting points back at
// its copied transaction), used by the journal balancer to build its working
// array without mutating the caller's journal. Amounts, assertions and the
// style and unassignable-account maps are shared, not copied.
func (j *Journal) Clone() *Journal {
	cp := &Journal{
		CommodityStyles:      j.CommodityStyles,
		UnassignableAccounts: j.UnassignableAccounts,
	}
	cp.Transactions = make([]*Transaction, len(j.Transactions))
	for i, t := range j.Transactions {
		tc := *t
		tc.Postings = make([]*Posting, len(t.Postings))
		for k, p := range t.Postings {
			pc := *p
			pc.Transaction = &tc
			tc.Postings[k] = &pc
		}
		cp.Transactions[i] = &tc
	}
	return cp
}
