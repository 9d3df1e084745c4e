package balance

import (
	"github.com/Flimm/hledger/journal"
	"github.com/shopspring/decimal"
)

// checkAssertion implements §4.7 against the already-updated running
// balance table: it rolls the relevant account(s) up if the assertion is
// inclusive, compares the asserted commodity's quantity exactly against
// the rollup, and for a total assertion additionally requires every other
// commodity present in the rollup to be zero.
func checkAssertion(p *journal.Posting, bals map[journal.Account]*journal.MixedAmount) error {
	assertion := p.Assertion
	rollup := bals[p.Account]
	if assertion.Inclusive {
		rollup = inclusiveRollup(bals, p.Account)
	}

	commodity := assertion.Amount.Commodity
	calculated := rollup.AmountInCommodity(commodity)
	if !calculated.Quantity.Equal(assertion.Amount.Quantity) {
		return assertionFailure(p, commodity, calculated.Quantity, assertion.Amount.Quantity)
	}

	if assertion.Total {
		zero := decimal.Zero
		for _, a := range rollup.Amounts() {
			if a.Commodity == commodity {
				continue
			}
			if !a.Quantity.IsZero() {
				return assertionFailure(p, a.Commodity, a.Quantity, zero)
			}
		}
	}

	return nil
}

func assertionFailure(p *journal.Posting, commodity journal.Commodity, calculated, asserted decimal.Decimal) error {
	return &AssertionFailedError{
		Pos:         p.Assertion.Pos,
		Date:        p.EffectiveDate().Format("2006-01-02"),
		Account:     p.Account,
		Inclusive:   p.Assertion.Inclusive,
		Commodity:   commodity,
		Calculated:  calculated.String(),
		Asserted:    asserted.String(),
		Difference:  calculated.Sub(asserted).String(),
		Transaction: p.Transaction,
	}
}

// inclusiveRollup sums bals[account] with every account bals has an entry
// for that is a proper subaccount of account.
func inclusiveRollup(bals map[journal.Account]*journal.MixedAmount, account journal.Account) *journal.MixedAmount {
	sum := bals[account]
	for acct, amt := range bals {
		if acct.IsSubAccountOf(account) {
			sum = sum.Add(amt)
		}
	}
	return sum
}

// properSubaccountsSum sums bals entries for accounts strictly under
// account, excluding account's own entry. Used by assignment resolution to
// derive the new exclusive balance from a desired inclusive total.
func properSubaccountsSum(bals map[journal.Account]*journal.MixedAmount, account journal.Account) *journal.MixedAmount {
	sum := journal.NewMixedAmount()
	for acct, amt := range bals {
		if acct.IsSubAccountOf(account) {
			sum = sum.Add(amt)
		}
	}
	return sum
}
