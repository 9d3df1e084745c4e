package balance

import (
	"context"
	"fmt"
	"time"

	"github.com/Flimm/hledger/journal"
	"github.com/Flimm/hledger/telemetry"
	"golang.org/x/exp/slices"
)

// itemKind distinguishes the two shapes pass 1 can hand pass 2.
type itemKind int

const (
	itemPosting itemKind = iota
	itemAssignmentTxn
)

// pass2Item is one entry of the date-sorted stream §4.6 walks in pass 2: a
// single already-balanced posting, or a whole transaction still carrying
// unresolved assignments.
type pass2Item struct {
	kind    itemKind
	date    time.Time
	posting *journal.Posting
	txn     *journal.Transaction
}

// BalanceJournal implements §4.6: number the transactions, derive
// (or accept) commodity styles and the unassignable-account set, balance
// every assignment-free transaction in input order, then walk the
// date-sorted stream of postings and pending assignment transactions
// maintaining a running per-account balance, resolving assignments and
// checking assertions along the way.
func BalanceJournal(ctx context.Context, j *journal.Journal, opts Options) (*journal.Journal, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("balance.journal (%d transactions)", len(j.Transactions)))
	defer timer.End()

	work := j.Clone()
	work.Number()

	if opts.CommodityStyles == nil {
		opts.CommodityStyles = work.InferredStyles()
	}

	txnArr := make([]*journal.Transaction, len(work.Transactions)+1)
	for _, t := range work.Transactions {
		txnArr[t.Index] = t
	}

	bals := getBalanceTable()
	defer putBalanceTable(bals)

	items, err := runPass1(ctx, work, txnArr, opts)
	if err != nil {
		return nil, err
	}

	if err := runPass2(ctx, work, txnArr, items, bals, opts); err != nil {
		return nil, err
	}

	result := journal.NewJournal()
	result.CommodityStyles = opts.CommodityStyles
	result.UnassignableAccounts = work.UnassignableAccounts
	result.Transactions = txnArr[1:]
	return result, nil
}

func runPass1(ctx context.Context, work *journal.Journal, txnArr []*journal.Transaction, opts Options) ([]pass2Item, error) {
	timer := telemetry.StartTimer(ctx, "balance.pass1")
	defer timer.End()

	var items []pass2Item
	for _, t := range work.Transactions {
		if t.HasAssignment() {
			for _, p := range t.Postings {
				p.Transaction = t
			}
			items = append(items, pass2Item{kind: itemAssignmentTxn, date: t.Date, txn: t})
			continue
		}

		balanced, _, err := balanceWithInferred(t, opts)
		if err != nil {
			return nil, err
		}
		txnArr[t.Index] = balanced

		for _, p := range balanced.Postings {
			items = append(items, pass2Item{kind: itemPosting, date: p.EffectiveDate(), posting: p})
		}
	}
	return items, nil
}

func runPass2(ctx context.Context, work *journal.Journal, txnArr []*journal.Transaction, items []pass2Item, bals map[journal.Account]*journal.MixedAmount, opts Options) error {
	timer := telemetry.StartTimer(ctx, "balance.pass2")
	defer timer.End()

	slices.SortStableFunc(items, func(a, b pass2Item) int {
		return a.date.Compare(b.date)
	})

	for _, item := range items {
		switch item.kind {
		case itemPosting:
			if err := applyPostingItem(item.posting, bals, opts); err != nil {
				return err
			}
		case itemAssignmentTxn:
			if err := applyAssignmentTransaction(item.txn, txnArr, bals, work, opts); err != nil {
				return err
			}
		}
	}
	return nil
}

func applyPostingItem(p *journal.Posting, bals map[journal.Account]*journal.MixedAmount, opts Options) error {
	stripped := p.Amount.WithoutPrices()
	bals[p.Account] = bals[p.Account].Add(stripped)

	if !opts.IgnoreAssertions && p.Assertion != nil {
		if err := checkAssertion(p, bals); err != nil {
			return err
		}
	}
	return nil
}

func applyAssignmentTransaction(t *journal.Transaction, txnArr []*journal.Transaction, bals map[journal.Account]*journal.MixedAmount, work *journal.Journal, opts Options) error {
	for _, p := range t.Postings {
		if p.IsAssignment() {
			if p.PostingDate != nil {
				return &AssignmentWithPostingDateError{Pos: p.Pos, Account: p.Account, Transaction: t}
			}
			if work.UnassignableAccounts[p.Account] {
				return &AssignmentOnUnassignableAccountError{Pos: p.Pos, Account: p.Account, Transaction: t}
			}
		}

		switch {
		case p.Amount != nil:
			stripped := p.Amount.WithoutPrices()
			p.Amount = stripped
			bals[p.Account] = bals[p.Account].Add(stripped)
			if !opts.IgnoreAssertions && p.Assertion != nil {
				if err := checkAssertion(p, bals); err != nil {
					return err
				}
			}

		case p.IsAssignment():
			if err := resolveAssignment(p, bals); err != nil {
				return err
			}
			if !opts.IgnoreAssertions {
				if err := checkAssertion(p, bals); err != nil {
					return err
				}
			}
		}
	}

	balanced, inferred, err := balanceWithInferred(t, opts)
	if err != nil {
		return err
	}
	for _, ia := range inferred {
		bals[ia.Account] = bals[ia.Account].Add(ia.Amount)
	}
	txnArr[t.Index] = balanced
	return nil
}

// resolveAssignment derives the delta implied by an assignment posting's
// target balance and stores it back as the posting's amount, per §4.6
// step 6's assignment branch.
func resolveAssignment(p *journal.Posting, bals map[journal.Account]*journal.MixedAmount) error {
	assertion := p.Assertion
	current := bals[p.Account]

	var target *journal.MixedAmount
	if assertion.Total {
		target = journal.NewMixedAmount(assertion.Amount)
	} else {
		others := current.Filter(func(a *journal.Amount) bool { return a.Commodity != assertion.Amount.Commodity })
		target = others.Add(journal.NewMixedAmount(assertion.Amount))
	}

	newExclusive := target
	if assertion.Inclusive {
		newExclusive = target.Sub(properSubaccountsSum(bals, p.Account))
	}

	delta := newExclusive.Sub(current)
	bals[p.Account] = newExclusive
	p.Amount = delta.WithoutZeros()
	return nil
}
