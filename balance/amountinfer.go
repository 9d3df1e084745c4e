package balance

import "github.com/Flimm/hledger/journal"

// InferredAmount records a (account, amount) pair produced by inferring a
// posting's missing amount. The journal balancer folds these into its
// running-balance table for postings it did not already walk itself.
type InferredAmount struct {
	Account journal.Account
	Amount  *journal.MixedAmount
}

// inferAmounts implements §4.3: separately for real and balanced-virtual
// postings, fill in at most one missing amount per class from the
// negation of the others' cost-converted, commodity-styled sum.
func inferAmounts(txn *journal.Transaction, opts Options) ([]InferredAmount, error) {
	styles := opts.styles()
	var inferred []InferredAmount

	for _, class := range checkedClasses {
		postings := txn.PostingsByType(class.typ)

		var amountless []*journal.Posting
		for _, p := range postings {
			if p.Amount == nil {
				amountless = append(amountless, p)
			}
		}

		if len(amountless) > 1 {
			return nil, &TooManyMissingAmountsError{
				Pos:         txn.Pos,
				Class:       class.noun,
				Transaction: txn,
			}
		}
		if len(amountless) == 0 {
			continue
		}

		target := amountless[0]
		residuals := getResidualMap()
		for _, p := range postings {
			if p == target || p.Amount == nil {
				continue
			}
			for _, a := range p.Amount.ToCost().Amounts() {
				addResidual(residuals, a)
			}
		}

		value := mixedAmountFromResiduals(residuals, styles).Negate().Canonicalize(styles)
		putResidualMap(residuals)

		target.Original = target.Snapshot()
		target.Amount = value

		inferred = append(inferred, InferredAmount{Account: target.Account, Amount: value})
	}

	return inferred, nil
}
