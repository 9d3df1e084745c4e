package balance

import "github.com/Flimm/hledger/journal"

// inferPrices implements §4.4, independently per posting class. It only
// attaches a price when the class's postings reduce to exactly two
// commodities of opposite sign, neither already priced.
func inferPrices(txn *journal.Transaction, opts Options) {
	styles := opts.styles()

	for _, class := range checkedClasses {
		postings := txn.PostingsByType(class.typ)
		inferPricesForClass(postings, styles)
	}
}

func inferPricesForClass(postings []*journal.Posting, styles map[journal.Commodity]journal.AmountStyle) {
	sum := journal.NewMixedAmount()
	anyPriced := false
	for _, p := range postings {
		if p.Amount == nil {
			continue
		}
		for _, a := range p.Amount.Raw() {
			if a.Price != nil {
				anyPriced = true
			}
		}
		sum = sum.Add(p.Amount)
	}
	if anyPriced {
		return
	}

	totals := sum.Amounts()
	if len(totals) != 2 {
		return
	}
	a, b := totals[0], totals[1]
	if a.IsZero() || b.IsZero() {
		return
	}
	if a.IsNegative() == b.IsNegative() {
		return // not strictly opposite signs
	}

	from, to := firstAppearanceOrder(postings, a, b)

	var fromPostings []*journal.Posting
	for _, p := range postings {
		if p.Amount == nil {
			continue
		}
		entries := p.Amount.Amounts()
		if len(entries) != 1 {
			continue
		}
		if entries[0].Commodity != from.Commodity {
			continue
		}
		fromPostings = append(fromPostings, p)
	}
	if len(fromPostings) == 0 {
		return
	}

	if len(fromPostings) == 1 {
		price := journal.TotalPrice(to.Neg())
		attachPrice(fromPostings[0], price)
		return
	}

	unitAmount, ok := journal.DivideAmount(to.Neg(), journal.NewMixedAmount(from))
	if !ok {
		return
	}
	unitAmount.Style = unitPriceStyle(from.Commodity, to.Commodity, styles)
	price := journal.UnitPrice(unitAmount)
	for _, p := range fromPostings {
		attachPrice(p, price)
	}
}

// firstAppearanceOrder scans postings left to right and returns (from, to)
// ordered by whichever of a's or b's commodity is seen first.
func firstAppearanceOrder(postings []*journal.Posting, a, b *journal.Amount) (from, to *journal.Amount) {
	for _, p := range postings {
		if p.Amount == nil {
			continue
		}
		for _, amt := range p.Amount.Raw() {
			switch amt.Commodity {
			case a.Commodity:
				return a, b
			case b.Commodity:
				return b, a
			}
		}
	}
	return a, b
}

// attachPrice rewrites posting's single-Amount MixedAmount to carry price,
// preserving the posting's Original shadow semantics (price attachment is
// not amount inference, so no Original snapshot is taken here).
func attachPrice(p *journal.Posting, price *journal.Price) {
	entries := p.Amount.Amounts()
	if len(entries) != 1 {
		return
	}
	priced := *entries[0]
	priced.Price = price
	p.Amount = journal.NewMixedAmount(&priced)
}

// unitPriceStyle computes the shared unit-price precision: saturating sum
// of the two commodities' display precisions, floored at 2, or Natural if
// either commodity's style is Natural.
func unitPriceStyle(from, to journal.Commodity, styles map[journal.Commodity]journal.AmountStyle) journal.AmountStyle {
	fromStyle, toStyle := styles[from], styles[to]

	style := toStyle
	if fromStyle.Precision == journal.NaturalPrecision || toStyle.Precision == journal.NaturalPrecision {
		style.Precision = journal.NaturalPrecision
		return style
	}

	precision := fromStyle.Precision + toStyle.Precision
	if precision < 2 {
		precision = 2
	}
	style.Precision = precision
	return style
}
